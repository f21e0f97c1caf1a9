package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/view"
)

// EquipmentList handles GET /equipment?search=&status=ALL.
func (h *Handler) EquipmentList(c *gin.Context) {
	search := c.Query("search")
	status := c.DefaultQuery("status", view.StatusAll)

	items, err := h.store.ListEquipment(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load equipment"})
		return
	}

	resp := pageContext(c, "Thiết bị")
	resp["equipment"] = view.FilterEquipment(items, search, status)
	resp["search"] = search
	resp["statusFilter"] = status
	c.JSON(http.StatusOK, resp)
}

// EquipmentDetail handles GET /equipment/:id. An unknown ID sends the
// browser back to the list, never a hard error.
func (h *Handler) EquipmentDetail(c *gin.Context) {
	ctx := c.Request.Context()
	id := c.Param("id")

	item, err := h.store.GetEquipment(ctx, id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load equipment"})
		return
	}
	if item == nil {
		c.Redirect(http.StatusFound, "/equipment")
		return
	}

	logs, err := h.store.ListUsageLogsForEquipment(ctx, id)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage logs"})
		return
	}

	// Manager may have been removed; the page shows it as unassigned.
	manager, err := h.store.GetUser(ctx, item.ManagerID)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load manager"})
		return
	}

	resp := pageContext(c, "Chi tiết thiết bị")
	resp["item"] = item
	resp["manager"] = manager
	resp["logs"] = logs
	c.JSON(http.StatusOK, resp)
}

// EquipmentStatsPage handles GET /equipment-stats.
func (h *Handler) EquipmentStatsPage(c *gin.Context) {
	items, err := h.store.ListEquipment(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load equipment"})
		return
	}

	stats := view.EquipmentStats(items)
	resp := pageContext(c, "Thống kê thiết bị")
	resp["totalEquipment"] = stats.Total
	resp["byStatus"] = stats.ByStatus
	resp["byDepartment"] = stats.ByDepartment
	c.JSON(http.StatusOK, resp)
}

// APIEquipment handles GET /api/equipment.
func (h *Handler) APIEquipment(c *gin.Context) {
	items, err := h.store.ListEquipment(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to load equipment"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": items})
}
