package middleware

import (
	"fmt"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	apperrors "backoffice/internal/errors"
)

// SubjectKey is the context key holding the authenticated token subject.
const SubjectKey = "subject"

// Claims are the JWT claims accepted by the API. Tokens are issued by the
// identity provider; the API only verifies them.
type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// GenerateAccessToken signs an HS256 token for subject. It exists for local
// tooling and tests.
func GenerateAccessToken(subject, secret, issuer string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			Issuer:    issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// ParseToken verifies tokenString and returns its claims.
func ParseToken(tokenString, secret, issuer string) (*Claims, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
	}
	if issuer != "" {
		opts = append(opts, jwt.WithIssuer(issuer))
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return []byte(secret), nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !token.Valid || claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}
	return claims, nil
}

func unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(apperrors.ErrUnauthorized.StatusCode, gin.H{
		"error": gin.H{
			"code":    apperrors.ErrUnauthorized.Code,
			"message": message,
		},
	})
}

// AuthMiddleware verifies the bearer token and sets its subject in the context.
func AuthMiddleware(secret, issuer string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			unauthorized(c, "Authorization header is required")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			unauthorized(c, "Invalid authorization header format")
			return
		}

		claims, err := ParseToken(parts[1], secret, issuer)
		if err != nil {
			unauthorized(c, "Invalid or expired token")
			return
		}

		c.Set(SubjectKey, claims.Subject)
		c.Next()
	}
}
