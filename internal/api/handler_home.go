package api

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/model"
	"sciequip-backend/internal/mw"
)

// Home handles GET /. Serving the page bumps the visitor counter.
func (h *Handler) Home(c *gin.Context) {
	ctx := c.Request.Context()

	visitCount, err := h.store.IncrementVisitorCount(ctx)
	if err != nil {
		log.Printf("Error incrementing visitor count: %v", err)
	}

	home, err := h.store.HomeConfig(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load home config"})
		return
	}

	equipment, err := h.store.ListEquipment(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load equipment"})
		return
	}

	labs, err := h.store.ListLabs(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load labs"})
		return
	}

	var featured []model.Equipment
	if home != nil {
		ids := make(map[string]struct{}, len(home.FeaturedEquipmentIDs))
		for _, id := range home.FeaturedEquipmentIDs {
			ids[id] = struct{}{}
		}
		for _, e := range equipment {
			if _, ok := ids[e.ID]; ok {
				featured = append(featured, e)
			}
		}
	}

	resp := pageContext(c, "Trang chủ")
	resp["homeConfig"] = home
	resp["visitCount"] = visitCount
	resp["featuredEquipment"] = featured
	resp["labs"] = labs
	c.JSON(http.StatusOK, resp)
}

// Profile handles GET /profile.
func (h *Handler) Profile(c *gin.Context) {
	resp := pageContext(c, "Hồ sơ cá nhân")
	resp["profileUser"] = mw.CurrentUser(c)
	c.JSON(http.StatusOK, resp)
}

// StaticPage returns a handler serving just the page context, for routes
// whose content is entirely frontend-rendered.
func (h *Handler) StaticPage(title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, pageContext(c, title))
	}
}

// UsageLogsPage handles GET /usage-logs.
func (h *Handler) UsageLogsPage(c *gin.Context) {
	logs, err := h.store.ListUsageLogs(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage logs"})
		return
	}
	resp := pageContext(c, "Usage Logs")
	resp["logs"] = logs
	c.JSON(http.StatusOK, resp)
}

// InventoryPage handles GET /inventory.
func (h *Handler) InventoryPage(c *gin.Context) {
	sessions, err := h.store.ListInventorySessions(c.Request.Context(), 0)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load inventory sessions"})
		return
	}
	resp := pageContext(c, "Inventory")
	resp["inventorySessions"] = sessions
	c.JSON(http.StatusOK, resp)
}

// AdminPanel handles GET /admin and its alias /admin-panel.
func (h *Handler) AdminPanel(c *gin.Context) {
	users, err := h.store.ListUsers(c.Request.Context())
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load users"})
		return
	}
	resp := pageContext(c, "Quản trị")
	resp["users"] = users
	c.JSON(http.StatusOK, resp)
}
