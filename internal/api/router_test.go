package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"sciequip-backend/config"
	"sciequip-backend/internal/assistant"
	"sciequip-backend/internal/db"
	"sciequip-backend/internal/session"
	"sciequip-backend/internal/store"
)

func TestPageGuards(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")
	staff := e.login(t, "u2", "123@")
	admin := e.login(t, "adminctump", "adminctump")

	testCases := []struct {
		name             string
		path             string
		cookie           *http.Cookie
		expectedStatus   int
		expectedLocation string
	}{
		{name: "Home is public", path: "/", expectedStatus: http.StatusOK},
		{name: "Equipment list is public", path: "/equipment", expectedStatus: http.StatusOK},
		{name: "Bookings anonymous", path: "/bookings", expectedStatus: http.StatusFound, expectedLocation: "/login"},
		{name: "Bookings student", path: "/bookings", cookie: student, expectedStatus: http.StatusOK},
		{name: "Stats anonymous", path: "/equipment-stats", expectedStatus: http.StatusFound, expectedLocation: "/login"},
		{name: "Stats student", path: "/equipment-stats", cookie: student, expectedStatus: http.StatusFound, expectedLocation: "/"},
		{name: "Stats staff", path: "/equipment-stats", cookie: staff, expectedStatus: http.StatusOK},
		{name: "Usage logs student", path: "/usage-logs", cookie: student, expectedStatus: http.StatusFound, expectedLocation: "/"},
		{name: "Inventory staff", path: "/inventory", cookie: staff, expectedStatus: http.StatusOK},
		{name: "Admin panel staff", path: "/admin", cookie: staff, expectedStatus: http.StatusFound, expectedLocation: "/"},
		{name: "Admin panel admin", path: "/admin", cookie: admin, expectedStatus: http.StatusOK},
		{name: "Admin alias admin", path: "/admin-panel", cookie: admin, expectedStatus: http.StatusOK},
		{name: "Dashboard staff", path: "/dashboard", cookie: staff, expectedStatus: http.StatusOK},
		{name: "Profile anonymous", path: "/profile", expectedStatus: http.StatusFound, expectedLocation: "/login"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.do(t, http.MethodGet, tc.path, nil, tc.cookie)
			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedLocation != "" {
				assert.Equal(t, tc.expectedLocation, w.Header().Get("Location"))
			}
		})
	}
}

func TestAPIGuards(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")
	staff := e.login(t, "u2", "123@")

	testCases := []struct {
		name           string
		method         string
		path           string
		cookie         *http.Cookie
		expectedStatus int
	}{
		{name: "Equipment anonymous", method: http.MethodGet, path: "/api/equipment", expectedStatus: http.StatusUnauthorized},
		{name: "Equipment student", method: http.MethodGet, path: "/api/equipment", cookie: student, expectedStatus: http.StatusOK},
		{name: "Users student", method: http.MethodGet, path: "/api/users", cookie: student, expectedStatus: http.StatusUnauthorized},
		{name: "Users staff", method: http.MethodGet, path: "/api/users", cookie: staff, expectedStatus: http.StatusOK},
		{name: "Usage logs student", method: http.MethodGet, path: "/api/usage-logs", cookie: student, expectedStatus: http.StatusUnauthorized},
		{name: "Usage logs staff", method: http.MethodGet, path: "/api/usage-logs", cookie: staff, expectedStatus: http.StatusOK},
		{name: "Inventory sessions student", method: http.MethodGet, path: "/api/inventory/sessions", cookie: student, expectedStatus: http.StatusUnauthorized},
		{name: "Inventory sessions staff", method: http.MethodGet, path: "/api/inventory/sessions", cookie: staff, expectedStatus: http.StatusOK},
		{name: "VAPID key student", method: http.MethodGet, path: "/api/vapid_public_key", cookie: student, expectedStatus: http.StatusUnauthorized},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.do(t, tc.method, tc.path, nil, tc.cookie)
			assert.Equal(t, tc.expectedStatus, w.Code)
			if tc.expectedStatus == http.StatusUnauthorized {
				body := decode(t, w)
				assert.Equal(t, false, body["success"])
				assert.Equal(t, "Unauthorized", body["message"])
			}
		})
	}
}

func TestAPIUsersNeverExposesPasswords(t *testing.T) {
	e := newTestEnv(t)
	staff := e.login(t, "u2", "123@")

	w := e.do(t, http.MethodGet, "/api/users", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotContains(t, w.Body.String(), "password")
}

func TestRateLimiter(t *testing.T) {
	gin.SetMode(gin.TestMode)

	gdb, err := gorm.Open(sqlite.Open("file:"+uuid.NewString()+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.Seed(gdb))

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1
	cfg.Server.RateLimitBurst = 2

	r := NewRouter(cfg, store.NewGormStore(gdb), session.NewMemoryStore(time.Hour),
		assistant.NewService(config.AssistantConfig{}), nil, nil)

	codes := make([]int, 0, 4)
	for i := 0; i < 4; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/me", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		codes = append(codes, w.Code)
	}

	// The burst passes through (as 401, no session) and the rest are
	// throttled.
	assert.Equal(t, http.StatusUnauthorized, codes[0])
	assert.Equal(t, http.StatusUnauthorized, codes[1])
	assert.Equal(t, http.StatusTooManyRequests, codes[2])
	assert.Equal(t, http.StatusTooManyRequests, codes[3])
}
