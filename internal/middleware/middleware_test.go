package middleware

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "backoffice/internal/errors"
)

const (
	testSecret = "test-secret"
	testIssuer = "backoffice-idp"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func protectedRouter() *gin.Engine {
	r := gin.New()
	r.GET("/me", AuthMiddleware(testSecret, testIssuer), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"subject": c.GetString(SubjectKey)})
	})
	return r
}

func get(r *gin.Engine, path, auth string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if auth != "" {
		req.Header.Set("Authorization", auth)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec
}

func TestAuthMiddleware(t *testing.T) {
	r := protectedRouter()

	t.Run("valid token sets subject", func(t *testing.T) {
		token, err := GenerateAccessToken("ana@example.com", testSecret, testIssuer, time.Minute)
		if err != nil {
			t.Fatalf("generate token: %v", err)
		}
		rec := get(r, "/me", "Bearer "+token)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		var body map[string]string
		_ = json.Unmarshal(rec.Body.Bytes(), &body)
		if body["subject"] != "ana@example.com" {
			t.Errorf("unexpected subject %q", body["subject"])
		}
	})

	cases := map[string]func() string{
		"missing header": func() string { return "" },
		"wrong scheme":   func() string { return "Basic abc" },
		"bad signature": func() string {
			tok, _ := GenerateAccessToken("x", "other-secret", testIssuer, time.Minute)
			return "Bearer " + tok
		},
		"expired": func() string {
			tok, _ := GenerateAccessToken("x", testSecret, testIssuer, -time.Minute)
			return "Bearer " + tok
		},
		"wrong issuer": func() string {
			tok, _ := GenerateAccessToken("x", testSecret, "someone-else", time.Minute)
			return "Bearer " + tok
		},
		"none algorithm": func() string {
			tok := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{Subject: "x"})
			s, _ := tok.SignedString(jwt.UnsafeAllowNoneSignatureType)
			return "Bearer " + s
		},
	}
	for name, header := range cases {
		t.Run(name, func(t *testing.T) {
			rec := get(r, "/me", header())
			if rec.Code != http.StatusUnauthorized {
				t.Fatalf("expected 401, got %d", rec.Code)
			}
			var body map[string]map[string]interface{}
			_ = json.Unmarshal(rec.Body.Bytes(), &body)
			if body["error"]["code"] != "UNAUTHORIZED" {
				t.Errorf("unexpected body %s", rec.Body.String())
			}
		})
	}
}

func TestErrorHandler(t *testing.T) {
	r := gin.New()
	r.Use(ErrorHandler())
	r.GET("/invalid", func(c *gin.Context) {
		_ = c.Error(apperrors.InvalidField("month", "must be between 1 and 12"))
	})
	r.GET("/boom", func(c *gin.Context) {
		_ = c.Error(errors.New("db password is hunter2"))
	})

	rec := get(r, "/invalid", "")
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", rec.Code)
	}
	var body struct {
		Error apperrors.AppError `json:"error"`
	}
	_ = json.Unmarshal(rec.Body.Bytes(), &body)
	if len(body.Error.Details) != 1 || body.Error.Details[0].Field != "month" {
		t.Errorf("expected month detail, got %s", rec.Body.String())
	}

	rec = get(r, "/boom", "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if got := rec.Body.String(); got == "" || contains(got, "hunter2") {
		t.Errorf("internal cause must not leak: %s", got)
	}
}

func TestRequestLogging_PropagatesRequestID(t *testing.T) {
	r := gin.New()
	r.Use(RequestLogging())
	r.GET("/ping", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-ID", "req-123")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("X-Request-ID") != "req-123" {
		t.Errorf("expected propagated request id, got %q", rec.Header().Get("X-Request-ID"))
	}

	rec = get(r, "/ping", "")
	if rec.Header().Get("X-Request-ID") == "" {
		t.Error("expected generated request id")
	}
}

func TestCORS(t *testing.T) {
	r := gin.New()
	r.Use(CORS([]string{"https://admin.example.com"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "https://admin.example.com")
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204 preflight, got %d", rec.Code)
	}
	if rec.Header().Get("Access-Control-Allow-Origin") != "https://admin.example.com" {
		t.Errorf("unexpected allow origin %q", rec.Header().Get("Access-Control-Allow-Origin"))
	}

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "https://evil.example.com")
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	if rec.Header().Get("Access-Control-Allow-Origin") != "" {
		t.Error("unknown origin must not be allowed")
	}
}

func contains(s, sub string) bool {
	return len(sub) > 0 && len(s) >= len(sub) && (s == sub || indexOf(s, sub) >= 0)
}

func indexOf(s, sub string) int {
	for i := 0; i+len(sub) <= len(s); i++ {
		if s[i:i+len(sub)] == sub {
			return i
		}
	}
	return -1
}
