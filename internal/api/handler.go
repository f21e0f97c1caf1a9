package api

import (
	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/assistant"
	"sciequip-backend/internal/mw"
	"sciequip-backend/internal/notification"
	"sciequip-backend/internal/session"
	"sciequip-backend/internal/store"
)

// Handler holds shared dependencies for API handlers.
type Handler struct {
	store     store.Store
	sessions  session.Store
	assistant *assistant.Service
	pool      *notification.WorkerPool
	webpush   *webpush.Options
}

// NewHandler creates a new API handler.
func NewHandler(s store.Store, sessions session.Store, ai *assistant.Service, pool *notification.WorkerPool, webpushOptions *webpush.Options) *Handler {
	return &Handler{
		store:     s,
		sessions:  sessions,
		assistant: ai,
		pool:      pool,
		webpush:   webpushOptions,
	}
}

// pageContext is the base view model shared by every page response.
func pageContext(c *gin.Context, title string) gin.H {
	return gin.H{
		"pageTitle":   title,
		"currentUser": mw.CurrentUser(c),
		"path":        c.Request.URL.Path,
	}
}
