package middleware

import (
	"net/http"
	"os"
	"strings"

	"student-concern-api/config"
	"student-concern-api/models"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

type Claims struct {
	ReviewerID int                 `json:"reviewer_id"`
	Email      string              `json:"email"`
	Role       models.ReviewerRole `json:"role"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the JWT token and resolves the reviewer profile.
// A missing or invalid token is an authentication failure; a valid token
// whose identity has no reviewer row is a distinct "role not found" failure.
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

		// Check if reviewer still exists
		var reviewer models.Reviewer
		if err := config.DB.Where("reviewer_id = ? AND delete_at IS NULL", claims.ReviewerID).First(&reviewer).Error; err != nil {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		// Set reviewer info in context
		c.Set("reviewerID", claims.ReviewerID)
		c.Set("email", claims.Email)
		c.Set("role", reviewer.Role)

		c.Next()
	}
}

// RequireRole checks if the caller holds one of the given reviewer roles.
func RequireRole(roles ...models.ReviewerRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		roleValue, exists := c.Get("role")
		if !exists {
			c.JSON(http.StatusForbidden, gin.H{"error": "Role not found"})
			c.Abort()
			return
		}

		role := roleValue.(models.ReviewerRole)
		allowed := false
		for _, candidate := range roles {
			if role == candidate {
				allowed = true
				break
			}
		}

		if !allowed {
			c.JSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			c.Abort()
			return
		}

		c.Next()
	}
}
