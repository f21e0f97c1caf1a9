package api

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/mw"
)

const aiFailureMessage = "Lỗi máy chủ AI"

type aiChatRequest struct {
	Message string `json:"message"`
}

// AIChat handles POST /api/ai/chat. Upstream failures are logged and mapped
// to a fixed message; the internal error never reaches the caller.
func (h *Handler) AIChat(c *gin.Context) {
	if !h.assistant.Configured() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"success": false, "message": "AI chưa được cấu hình."})
		return
	}

	var req aiChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}
	message := strings.TrimSpace(req.Message)
	if message == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Empty message"})
		return
	}

	ctx := c.Request.Context()
	equipment, err := h.store.ListEquipment(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": aiFailureMessage})
		return
	}
	labs, err := h.store.ListLabs(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": aiFailureMessage})
		return
	}

	reply, err := h.assistant.Chat(ctx, mw.CurrentUser(c), equipment, labs, message)
	if err != nil {
		log.Printf("AI error: %v", err)
		c.JSON(http.StatusBadGateway, gin.H{"success": false, "message": aiFailureMessage})
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "response": reply})
}
