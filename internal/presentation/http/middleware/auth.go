package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
	domainRepo "github.com/prospecta/prospecta-api/internal/domain/repository"
	"github.com/prospecta/prospecta-api/internal/presentation/http/dto/response"
	"github.com/prospecta/prospecta-api/pkg/utils"
)

// AuthMiddleware creates a JWT authentication middleware
func AuthMiddleware(jwtManager *utils.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			response.Unauthorized(c, "Authorization header is required")
			c.Abort()
			return
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			response.Unauthorized(c, "Invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := jwtManager.ValidateAccessToken(parts[1])
		if err != nil {
			response.Unauthorized(c, "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("user_email", claims.Email)
		c.Set("user_role", claims.Role)

		c.Next()
	}
}

// ActorMiddleware loads the authenticated user record and stores it in the
// context. Handlers need the full record because saves stamp the actor's
// name into observation blocks.
func ActorMiddleware(userRepo domainRepo.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		userIDVal, exists := c.Get("user_id")
		if !exists {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		userID, ok := userIDVal.(uuid.UUID)
		if !ok {
			response.Unauthorized(c, "User not authenticated")
			c.Abort()
			return
		}

		user, err := userRepo.GetByID(c.Request.Context(), userID)
		if err != nil || user == nil {
			response.Unauthorized(c, "User account not found")
			c.Abort()
			return
		}

		c.Set("actor", user)
		c.Next()
	}
}

// RequireManager restricts a route to admins and supervisors
func RequireManager() gin.HandlerFunc {
	return func(c *gin.Context) {
		roleVal, exists := c.Get("user_role")
		if !exists {
			response.Forbidden(c, "Access denied")
			c.Abort()
			return
		}

		role, ok := roleVal.(string)
		if !ok || !enum.Role(role).IsManager() {
			response.Forbidden(c, "This action requires a manager role")
			c.Abort()
			return
		}

		c.Next()
	}
}
