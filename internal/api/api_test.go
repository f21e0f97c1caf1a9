package api

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/SherClockHolmes/webpush-go"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
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

type testEnv struct {
	router *gin.Engine
	store  store.Store
}

func newTestEnv(t *testing.T) *testEnv {
	return newTestEnvFull(t, assistant.NewService(config.AssistantConfig{}), nil)
}

func newTestEnvFull(t *testing.T, ai *assistant.Service, webpushOptions *webpush.Options) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	require.NoError(t, db.Seed(gdb))

	s := store.NewGormStore(gdb)
	sessions := session.NewMemoryStore(time.Hour)

	cfg := &config.Config{}
	cfg.Server.RateLimitPerSec = 1000
	cfg.Server.RateLimitBurst = 1000

	return &testEnv{
		router: NewRouter(cfg, s, sessions, ai, nil, webpushOptions),
		store:  s,
	}
}

// login performs a form login and returns the session cookie.
func (e *testEnv) login(t *testing.T, userID, password string) *http.Cookie {
	t.Helper()
	form := url.Values{"user_id": {userID}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/api/login", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code, "login as %s failed: %s", userID, w.Body.String())

	for _, ck := range w.Result().Cookies() {
		if ck.Name == "sciequip_session" && ck.Value != "" {
			return ck
		}
	}
	t.Fatalf("no session cookie in login response")
	return nil
}

// do issues a request against the router. A non-nil body is sent as JSON.
func (e *testEnv) do(t *testing.T, method, path string, body any, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	e.router.ServeHTTP(w, req)
	return w
}

// decode unmarshals a JSON response body into a generic map.
func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), "body: %s", w.Body.String())
	return out
}
