package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/mw"
)

const loginFailedMessage = "Sai thông tin đăng nhập"

// LoginPage handles GET /login. Signed-in users are sent home.
func (h *Handler) LoginPage(c *gin.Context) {
	if mw.CurrentUser(c) != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.JSON(http.StatusOK, pageContext(c, "Đăng nhập"))
}

// Login handles POST /api/login. A locked account fails exactly like a wrong
// password; the response never says which it was.
func (h *Handler) Login(c *gin.Context) {
	userID := c.PostForm("user_id")
	password := c.PostForm("password")

	user, err := h.store.GetUser(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
		return
	}
	if user == nil || user.Password != password || user.IsLocked {
		c.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": loginFailedMessage})
		return
	}

	sid, err := h.sessions.Create(c.Request.Context(), user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal error"})
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mw.SessionCookie, sid, 0, "/", "", false, true)
	c.JSON(http.StatusOK, gin.H{"success": true, "redirect": "/"})
}

// Logout handles GET /logout: the server-side session is revoked, not just
// the cookie.
func (h *Handler) Logout(c *gin.Context) {
	if ck, err := c.Request.Cookie(mw.SessionCookie); err == nil && ck.Value != "" {
		_ = h.sessions.Delete(c.Request.Context(), ck.Value)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(mw.SessionCookie, "", -1, "/", "", false, true)
	c.Redirect(http.StatusFound, "/login")
}

// Me handles GET /api/me.
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "data": mw.CurrentUser(c)})
}
