package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/agedcare_server/internal/pkg/jwt"
	"github.com/qs3c/agedcare_server/internal/pkg/response"
)

const (
	UserEmailKey = "userEmail"
)

// Auth 从 Bearer token 中取出用户邮箱，只做身份识别
func Auth(jwtSecret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.AuthError(c, "missing authorization header")
			c.Abort()
			return
		}

		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			response.AuthError(c, "authorization header must use Bearer scheme")
			c.Abort()
			return
		}

		claims, err := jwt.ParseToken(tokenString, jwtSecret)
		if err != nil {
			response.AuthError(c, err.Error())
			c.Abort()
			return
		}
		if strings.TrimSpace(claims.Email) == "" {
			response.AuthError(c, "token carries no email")
			c.Abort()
			return
		}

		c.Set(UserEmailKey, claims.Email)
		c.Next()
	}
}

// GetUserEmail 从上下文获取用户邮箱
func GetUserEmail(c *gin.Context) (string, bool) {
	v, exists := c.Get(UserEmailKey)
	if !exists {
		return "", false
	}
	email, ok := v.(string)
	return email, ok && email != ""
}
