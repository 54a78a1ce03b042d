package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"mcq-practice-service/internal/app"
	"mcq-practice-service/internal/response"
)

// ContextKeyClaims is the gin context key for validated token claims.
const ContextKeyClaims = "claims"

// TokenValidator checks bearer tokens issued by the local login.
type TokenValidator interface {
	ParseToken(raw string) (*app.Claims, error)
}

// RequireJWT rejects requests without a valid "Authorization: Bearer" token.
func RequireJWT(tokens TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := bearerToken(c)
		if raw == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}
		claims, err := tokens.ParseToken(raw)
		if err != nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			return
		}
		c.Set(ContextKeyClaims, claims)
		c.Next()
	}
}

// GetClaims returns the claims set by RequireJWT, or nil.
func GetClaims(c *gin.Context) *app.Claims {
	val, ok := c.Get(ContextKeyClaims)
	if !ok {
		return nil
	}
	claims, _ := val.(*app.Claims)
	return claims
}

func bearerToken(c *gin.Context) string {
	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}
