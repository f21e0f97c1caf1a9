package api

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/model"
	"sciequip-backend/internal/mw"
)

// ListInventorySessions handles GET /api/inventory/sessions?year=.
func (h *Handler) ListInventorySessions(c *gin.Context) {
	year := 0
	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		year = y
	}

	sessions, err := h.store.ListInventorySessions(c.Request.Context(), year)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load inventory sessions"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sessions})
}

type inventorySessionRequest struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Date   string `json:"date"`
	Status string `json:"status"`
	Notes  string `json:"notes"`
}

// CreateInventorySession handles POST /api/inventory/sessions.
func (h *Handler) CreateInventorySession(c *gin.Context) {
	var req inventorySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	sess := model.InventorySession{
		ID:        req.ID,
		Name:      req.Name,
		Date:      req.Date,
		Status:    req.Status,
		Notes:     req.Notes,
		CreatedBy: mw.CurrentUser(c).ID,
	}
	if err := h.store.CreateInventorySession(c.Request.Context(), &sess); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create inventory session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": sess})
}

// UpdateInventorySession handles PUT /api/inventory/sessions/:id. Fields
// present in the payload are merged into the stored record.
func (h *Handler) UpdateInventorySession(c *gin.Context) {
	var req inventorySessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	patch := model.InventorySession{
		Name:   req.Name,
		Date:   req.Date,
		Status: req.Status,
		Notes:  req.Notes,
	}
	updated, err := h.store.UpdateInventorySession(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to update inventory session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "updated": updated})
}

// DeleteInventorySession handles DELETE /api/inventory/sessions/:id.
func (h *Handler) DeleteInventorySession(c *gin.Context) {
	deleted, err := h.store.DeleteInventorySession(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to delete inventory session"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "deleted": deleted})
}
