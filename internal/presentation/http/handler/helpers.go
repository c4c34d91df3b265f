package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// GetEmployeeID extracts the authenticated employee ID from the Gin context
func GetEmployeeID(c *gin.Context) *uuid.UUID {
	employeeIDVal, exists := c.Get("employee_id")
	if !exists {
		return nil
	}
	employeeID, ok := employeeIDVal.(uuid.UUID)
	if !ok {
		return nil
	}
	return &employeeID
}
