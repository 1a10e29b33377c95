package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"backoffice/internal/logger"
	"backoffice/internal/middleware"
	"backoffice/internal/services"
	"backoffice/internal/storage"
	"backoffice/internal/testutil"
	"backoffice/internal/validator"
)

const (
	testSecret = "flow-secret"
	testIssuer = "backoffice-idp"
	testActor  = "ana@example.com"
)

// testApp holds the full application stack for flow tests.
type testApp struct {
	t      *testing.T
	DB     *gorm.DB
	Router *gin.Engine
	Store  *storage.MemoryStore
	token  string
}

func init() {
	gin.SetMode(gin.TestMode)
	logger.Init("test")
	validator.Register()
}

// setupApp creates a full application stack backed by an isolated in-memory SQLite.
func setupApp(t *testing.T) *testApp {
	t.Helper()

	db := testutil.SetupTestDB(t)
	t.Cleanup(func() { testutil.TeardownTestDB(t, db) })

	store := storage.NewMemoryStore("http://files.test/files")
	router := NewRouter(Deps{
		DB:          db,
		Files:       services.Files{Store: store, URLTTL: storage.DefaultURLTTL},
		JWTSecret:   testSecret,
		JWTIssuer:   testIssuer,
		CORSOrigins: []string{"*"},
	})

	token, err := middleware.GenerateAccessToken(testActor, testSecret, testIssuer, time.Hour)
	require.NoError(t, err)

	return &testApp{t: t, DB: db, Router: router, Store: store, token: token}
}

// do sends an authenticated JSON request.
func (a *testApp) do(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, "/api/v1"+path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+a.token)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

// upload sends an authenticated multipart request with a single file field.
func (a *testApp) upload(path, filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(a.t, err)
	_, _ = part.Write(content)
	require.NoError(a.t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1"+path, &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+a.token)
	rec := httptest.NewRecorder()
	a.Router.ServeHTTP(rec, req)
	return rec
}

// expect asserts the status code and decodes the JSON body.
func (a *testApp) expect(rec *httptest.ResponseRecorder, status int) map[string]interface{} {
	a.t.Helper()
	require.Equal(a.t, status, rec.Code, "body: %s", rec.Body.String())
	if rec.Body.Len() == 0 {
		return nil
	}
	var result map[string]interface{}
	require.NoError(a.t, json.Unmarshal(rec.Body.Bytes(), &result), "body: %s", rec.Body.String())
	return result
}

// create posts body and returns the id of the created resource.
func (a *testApp) create(path, body string) string {
	a.t.Helper()
	return a.expect(a.do(http.MethodPost, path, body), http.StatusCreated)["id"].(string)
}

func errorOf(t *testing.T, body map[string]interface{}) (code, message string) {
	t.Helper()
	errObj, ok := body["error"].(map[string]interface{})
	require.True(t, ok, "expected error object, got %v", body)
	return errObj["code"].(string), errObj["message"].(string)
}

func assertMoney(t *testing.T, body map[string]interface{}, field, want string) {
	t.Helper()
	raw, ok := body[field].(string)
	require.True(t, ok, "expected %s as string, got %v", field, body[field])
	got, err := decimal.NewFromString(raw)
	require.NoError(t, err)
	require.True(t, got.Equal(decimal.RequireFromString(want)), "%s: got %s, want %s", field, raw, want)
}
