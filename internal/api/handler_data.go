package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// APIUsers handles GET /api/users.
func (h *Handler) APIUsers(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load users"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": users})
}

// APIUsageLogs handles GET /api/usage-logs.
func (h *Handler) APIUsageLogs(c *gin.Context) {
	logs, err := h.store.ListUsageLogs(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load usage logs"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": logs})
}
