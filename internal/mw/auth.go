package mw

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/model"
	"sciequip-backend/internal/session"
	"sciequip-backend/internal/store"
)

// SessionCookie is the name of the cookie holding the session ID.
const SessionCookie = "sciequip_session"

const ctxUserKey = "currentUser"

// GuardMode selects how a guard reports failure: page routes redirect the
// browser, API routes answer with a 401 JSON body.
type GuardMode int

const (
	PageGuard GuardMode = iota
	APIGuard
)

// Resolve looks up the current user from the session cookie and stores it in
// the Gin context. It never rejects: anonymous requests pass through without
// a user. Lock state is re-checked on every request; a locked user's session
// is dropped on the spot.
func Resolve(s store.Store, sessions session.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		ck, err := c.Request.Cookie(SessionCookie)
		if err != nil || ck.Value == "" {
			c.Next()
			return
		}

		sess, err := sessions.Get(c.Request.Context(), ck.Value)
		if err != nil {
			c.Next()
			return
		}

		u, err := s.GetUser(c.Request.Context(), sess.UserID)
		if err != nil || u == nil || u.IsLocked {
			_ = sessions.Delete(c.Request.Context(), ck.Value)
			c.Next()
			return
		}

		c.Set(ctxUserKey, u)
		c.Next()
	}
}

// CurrentUser returns the resolved user for this request, or nil.
func CurrentUser(c *gin.Context) *model.User {
	v, ok := c.Get(ctxUserKey)
	if !ok {
		return nil
	}
	return v.(*model.User)
}

// RequireLogin aborts requests without a resolved user.
func RequireLogin(mode GuardMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		if CurrentUser(c) == nil {
			deny(c, mode, "/login")
			return
		}
		c.Next()
	}
}

// RequireStaff aborts requests unless the user's role is STAFF or ADMIN.
func RequireStaff(mode GuardMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			deny(c, mode, "/login")
			return
		}
		if !u.IsStaff() {
			deny(c, mode, "/")
			return
		}
		c.Next()
	}
}

// RequireAdmin aborts requests unless the user's role is exactly ADMIN.
func RequireAdmin(mode GuardMode) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := CurrentUser(c)
		if u == nil {
			deny(c, mode, "/login")
			return
		}
		if u.Role != model.RoleAdmin {
			deny(c, mode, "/")
			return
		}
		c.Next()
	}
}

func deny(c *gin.Context, mode GuardMode, location string) {
	if mode == PageGuard {
		c.Redirect(http.StatusFound, location)
		c.Abort()
		return
	}
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Unauthorized"})
}
