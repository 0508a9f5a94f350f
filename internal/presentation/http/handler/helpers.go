package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prospecta/prospecta-api/internal/domain/entity"
	"github.com/prospecta/prospecta-api/internal/domain/enum"
)

// GetUserID extracts the user ID from the Gin context
func GetUserID(c *gin.Context) *uuid.UUID {
	userIDVal, exists := c.Get("user_id")
	if !exists {
		return nil
	}
	userID, ok := userIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &userID
}

// GetUserEmail extracts the user email from the Gin context
func GetUserEmail(c *gin.Context) string {
	email, exists := c.Get("user_email")
	if !exists {
		return ""
	}
	return email.(string)
}

// GetUserRole extracts the user role from the Gin context
func GetUserRole(c *gin.Context) enum.Role {
	roleVal, exists := c.Get("user_role")
	if !exists {
		return ""
	}
	role, ok := roleVal.(string)
	if !ok {
		return ""
	}
	return enum.Role(role)
}

// IsManager reports whether the authenticated user is an admin or supervisor
func IsManager(c *gin.Context) bool {
	return GetUserRole(c).IsManager()
}

// GetActor extracts the full user record loaded by the actor middleware
func GetActor(c *gin.Context) *entity.User {
	actorVal, exists := c.Get("actor")
	if !exists {
		return nil
	}
	actor, ok := actorVal.(*entity.User)
	if !ok {
		return nil
	}
	return actor
}
