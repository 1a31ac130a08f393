package middleware

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/noah-isme/lernplan-api/internal/models"
	"github.com/noah-isme/lernplan-api/pkg/config"
	appErrors "github.com/noah-isme/lernplan-api/pkg/errors"
	"github.com/noah-isme/lernplan-api/pkg/logger"
	"github.com/noah-isme/lernplan-api/pkg/response"
)

// ContextUserKey is the gin context key storing the verified claims.
const ContextUserKey = "currentUser"

// TokenVerifier checks HS256 access tokens against the shared project secret.
type TokenVerifier struct {
	secret []byte
}

// NewTokenVerifier constructs a verifier. An empty secret rejects every token.
func NewTokenVerifier(secret string) *TokenVerifier {
	return &TokenVerifier{secret: []byte(secret)}
}

// Verify parses and validates a raw token.
func (v *TokenVerifier) Verify(raw string) (*models.AuthClaims, error) {
	if len(v.secret) == 0 {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "token verification is not configured")
	}
	token, err := jwt.ParseWithClaims(raw, &models.AuthClaims{}, func(token *jwt.Token) (interface{}, error) {
		if token.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return v.secret, nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrUnauthorized.Code, appErrors.ErrUnauthorized.Status, "invalid token")
	}

	claims, ok := token.Claims.(*models.AuthClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, appErrors.Clone(appErrors.ErrUnauthorized, "invalid token claims")
	}
	return claims, nil
}

// JWT attaches the caller's claims. Without cfg.Required, requests carrying no
// Authorization header pass through anonymously and operate on unscoped plans.
// A header that is present must always hold a valid token.
func JWT(cfg config.AuthConfig) gin.HandlerFunc {
	verifier := NewTokenVerifier(cfg.JWTSecret)
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			if cfg.Required {
				response.Error(c, appErrors.ErrUnauthorized)
				c.Abort()
				return
			}
			c.Next()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := verifier.Verify(strings.TrimSpace(parts[1]))
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		c.Set(ContextUserKey, claims)
		c.Set(logger.UserIDKey, claims.UserID())
		c.Next()
	}
}

// CurrentUser returns the verified claims, or nil for anonymous requests.
func CurrentUser(c *gin.Context) *models.AuthClaims {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.AuthClaims)
	if !ok {
		return nil
	}
	return claims
}
