package middleware

import (
	"net/http"
	"os"
	"strings"

	"backend/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const authContextKey = "auth_context"

// JWTSecret returns the signing key; override with JWT_SECRET in production.
func JWTSecret() []byte {
	if s := strings.TrimSpace(os.Getenv("JWT_SECRET")); s != "" {
		return []byte(s)
	}
	return []byte("super-secret-key-change-me")
}

// RequireAuth parses the bearer token and stores an AuthContext for handlers.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth, ok := parseToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "token tidak valid"})
			return
		}
		c.Set(authContextKey, auth)
		c.Next()
	}
}

// AuthOptional attaches an AuthContext when a valid token is present but
// never rejects. Dipakai endpoint publik yang tetap ingin tahu siapa user.
func AuthOptional() gin.HandlerFunc {
	return func(c *gin.Context) {
		if auth, ok := parseToken(c); ok {
			c.Set(authContextKey, auth)
		}
		c.Next()
	}
}

// RequireAdmin gates catalog mutation behind the admin role.
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		auth := GetAuthContext(c)
		if !auth.IsAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "butuh role admin"})
			return
		}
		c.Next()
	}
}

// GetAuthContext returns the AuthContext set by RequireAuth/AuthOptional.
func GetAuthContext(c *gin.Context) domain.AuthContext {
	if c == nil {
		return domain.AuthContext{}
	}
	if v, ok := c.Get(authContextKey); ok {
		if a, ok := v.(domain.AuthContext); ok {
			return a
		}
	}
	return domain.AuthContext{}
}

func parseToken(c *gin.Context) (domain.AuthContext, bool) {
	header := c.GetHeader("Authorization")
	if !strings.HasPrefix(header, "Bearer ") {
		return domain.AuthContext{}, false
	}
	raw := strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
	if raw == "" {
		return domain.AuthContext{}, false
	}

	token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return JWTSecret(), nil
	})
	if err != nil || !token.Valid {
		return domain.AuthContext{}, false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return domain.AuthContext{}, false
	}

	auth := domain.AuthContext{}
	if v, ok := claims["user_id"].(float64); ok {
		auth.UserID = domain.ID(int64(v))
	}
	if v, ok := claims["role"].(string); ok {
		auth.Role = v
	}
	if v, ok := claims["email"].(string); ok {
		auth.Email = v
	}
	if auth.UserID <= 0 {
		return domain.AuthContext{}, false
	}
	return auth, true
}
