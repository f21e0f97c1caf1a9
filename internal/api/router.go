package api

import (
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"sciequip-backend/config"
	"sciequip-backend/internal/assistant"
	"sciequip-backend/internal/mw"
	"sciequip-backend/internal/notification"
	"sciequip-backend/internal/session"
	"sciequip-backend/internal/store"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.Config, s store.Store, sessions session.Store, ai *assistant.Service, pool *notification.WorkerPool, webpushOptions *webpush.Options) *gin.Engine {
	r := gin.Default()

	if cfg.Server.WebOrigin != "" {
		r.Use(cors.New(cors.Config{
			AllowOrigins:     []string{cfg.Server.WebOrigin},
			AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowHeaders:     []string{"Authorization", "Content-Type"},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	// Every request resolves its user once; guards only read the result.
	r.Use(mw.Resolve(s, sessions))

	handler := NewHandler(s, sessions, ai, pool, webpushOptions)

	// Page routes: guard failures redirect the browser.
	r.GET("/", handler.Home)
	r.GET("/login", handler.LoginPage)
	r.GET("/logout", handler.Logout)
	r.GET("/equipment", handler.EquipmentList)
	r.GET("/equipment/:id", handler.EquipmentDetail)
	r.GET("/equipment-stats", mw.RequireStaff(mw.PageGuard), handler.EquipmentStatsPage)
	r.GET("/bookings", mw.RequireLogin(mw.PageGuard), handler.BookingsPage)
	r.GET("/profile", mw.RequireLogin(mw.PageGuard), handler.Profile)
	r.GET("/layout", mw.RequireLogin(mw.PageGuard), handler.StaticPage("Layout"))
	r.GET("/dashboard", mw.RequireStaff(mw.PageGuard), handler.StaticPage("Dashboard"))
	r.GET("/ai-assistant", mw.RequireLogin(mw.PageGuard), handler.StaticPage("AI Assistant"))
	r.GET("/maintenance", mw.RequireStaff(mw.PageGuard), handler.StaticPage("Bảo trì & Sửa chữa"))
	r.GET("/maintenance-list", mw.RequireStaff(mw.PageGuard), handler.StaticPage("Maintenance List"))
	r.GET("/scan", handler.StaticPage("Quét QR"))
	r.GET("/qr-scanner", handler.StaticPage("Quét QR"))
	r.GET("/usage-logs", mw.RequireStaff(mw.PageGuard), handler.UsageLogsPage)
	r.GET("/inventory", mw.RequireStaff(mw.PageGuard), handler.InventoryPage)
	r.GET("/admin", mw.RequireAdmin(mw.PageGuard), handler.AdminPanel)
	r.GET("/admin-panel", mw.RequireAdmin(mw.PageGuard), handler.AdminPanel)

	// API routes: guard failures answer 401 JSON.
	api := r.Group("/api")
	api.Use(mw.RateLimiter(rate.Limit(cfg.Server.RateLimitPerSec), cfg.Server.RateLimitBurst))
	{
		api.POST("/login", handler.Login)
		api.GET("/me", mw.RequireLogin(mw.APIGuard), handler.Me)
		api.GET("/equipment", mw.RequireLogin(mw.APIGuard), handler.APIEquipment)
		api.GET("/users", mw.RequireStaff(mw.APIGuard), handler.APIUsers)
		api.GET("/usage-logs", mw.RequireStaff(mw.APIGuard), handler.APIUsageLogs)
		api.POST("/usage-logs", mw.RequireStaff(mw.APIGuard), handler.CreateUsageLog)

		api.POST("/bookings/create", mw.RequireLogin(mw.APIGuard), handler.CreateBooking)

		api.GET("/inventory/sessions", mw.RequireStaff(mw.APIGuard), handler.ListInventorySessions)
		api.POST("/inventory/sessions", mw.RequireStaff(mw.APIGuard), handler.CreateInventorySession)
		api.PUT("/inventory/sessions/:id", mw.RequireStaff(mw.APIGuard), handler.UpdateInventorySession)
		api.DELETE("/inventory/sessions/:id", mw.RequireStaff(mw.APIGuard), handler.DeleteInventorySession)

		api.POST("/ai/chat", mw.RequireLogin(mw.APIGuard), handler.AIChat)

		api.PUT("/subscriptions", mw.RequireStaff(mw.APIGuard), handler.PutSubscription)
		api.DELETE("/subscriptions", mw.RequireStaff(mw.APIGuard), handler.DeleteSubscription)
		api.GET("/vapid_public_key", mw.RequireStaff(mw.APIGuard), handler.GetVAPIDPublicKey)
	}

	return r
}
