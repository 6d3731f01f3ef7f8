package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Brunilda90/judging26-app/models"
	"github.com/Brunilda90/judging26-app/utils"
)

func bearerToken(c *gin.Context) (string, bool) {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return "", false
	}
	return strings.TrimPrefix(authHeader, "Bearer "), true
}

// JWTAuthAdminMiddleware admits only tokens carrying the admin role.
func JWTAuthAdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil || role != models.RoleAdmin {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized admin access"})
			return
		}
		c.Set("userID", subject)
		c.Set("isAdmin", true)
		c.Next()
	}
}

// JWTAuthJudgeMiddleware admits judge and admin tokens. Judge pages are also
// reachable by admins for troubleshooting during the event.
func JWTAuthJudgeMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString, ok := bearerToken(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
			return
		}
		subject, role, err := utils.ExtractClaims(tokenString)
		if err != nil || (role != models.RoleJudge && role != models.RoleAdmin) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized judge access"})
			return
		}
		c.Set("userID", subject)
		c.Set("userRole", role)
		c.Next()
	}
}
