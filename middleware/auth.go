package middleware

import (
	"net/http"
	"os"
	"peer-review-api/config"
	"peer-review-api/models"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	NetID       string `json:"net_id"`
	SectionCode string `json:"section_code"`
	TeamNum     string `json:"team_num"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates JWT token
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		// Get token from header
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header is required"})
			c.Abort()
			return
		}

		// Check Bearer prefix
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")
		if tokenString == authHeader {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid authorization header format"})
			c.Abort()
			return
		}

		// Parse token
		token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
			c.Abort()
			return
		}

		// Get claims
		claims, ok := token.Claims.(*Claims)
		if !ok {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
			c.Abort()
			return
		}

		// Check if student still exists and is enrolled
		var student models.Student
		if err := config.DB.Where("stu_net_id = ? AND delete_at IS NULL", claims.NetID).First(&student).Error; err != nil {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Student not found"})
			c.Abort()
			return
		}

		// Set student info in context
		c.Set("netID", claims.NetID)
		c.Set("sectionCode", claims.SectionCode)
		c.Set("teamNum", claims.TeamNum)

		c.Next()
	}
}
