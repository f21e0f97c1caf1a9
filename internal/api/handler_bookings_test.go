package api

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sciequip-backend/internal/model"
)

func seedBooking(t *testing.T, e *testEnv, id, userID string, status model.BookingStatus, year int) {
	t.Helper()
	b := model.Booking{
		ID:          id,
		UserID:      userID,
		EquipmentID: "e1",
		StartTime:   time.Date(year, 4, 1, 9, 0, 0, 0, time.UTC),
		EndTime:     time.Date(year, 4, 1, 11, 0, 0, 0, time.UTC),
		Status:      status,
	}
	require.NoError(t, e.store.CreateBooking(context.Background(), &b))
}

func filteredIDs(t *testing.T, body map[string]any) []string {
	t.Helper()
	raw := body["filteredBookings"].([]any)
	ids := make([]string, 0, len(raw))
	for _, item := range raw {
		ids = append(ids, item.(map[string]any)["id"].(string))
	}
	return ids
}

func TestBookingsPageDefaultTab(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")

	seedBooking(t, e, "b1", "u3", model.BookingPending, time.Now().Year())
	seedBooking(t, e, "b2", "u3", model.BookingApproved, time.Now().Year())

	w := e.do(t, http.MethodGet, "/bookings", nil, student)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, "PENDING", body["activeTab"])
	assert.Equal(t, []string{"b1"}, filteredIDs(t, body))
	assert.Len(t, body["bookings"].([]any), 2)
}

func TestBookingsPageScope(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")
	staff := e.login(t, "u2", "123@")

	seedBooking(t, e, "b1", "u3", model.BookingPending, time.Now().Year())
	seedBooking(t, e, "b2", "u2", model.BookingPending, time.Now().Year())

	w := e.do(t, http.MethodGet, "/bookings", nil, student)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["bookings"].([]any), 1)

	w = e.do(t, http.MethodGet, "/bookings", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["bookings"].([]any), 2)
}

func TestBookingsPageWaitingLog(t *testing.T) {
	e := newTestEnv(t)
	staff := e.login(t, "u2", "123@")

	seedBooking(t, e, "b1", "u3", model.BookingCompleted, time.Now().Year())
	seedBooking(t, e, "b2", "u3", model.BookingCompleted, time.Now().Year())

	// Closing out b2 moves it off the waiting-log tab.
	require.NoError(t, e.store.CreateUsageLog(context.Background(),
		&model.UsageLog{BookingID: "b2", EquipmentID: "e1", UserID: "u2"}))

	w := e.do(t, http.MethodGet, "/bookings?tab=WAITING_LOG", nil, staff)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, []string{"b1"}, filteredIDs(t, body))

	counts := body["counts"].(map[string]any)
	assert.Equal(t, float64(1), counts["waitingLog"])
	assert.Equal(t, float64(2), counts["history"])
}

func TestBookingsPageHistoryYear(t *testing.T) {
	e := newTestEnv(t)
	staff := e.login(t, "u2", "123@")
	thisYear := time.Now().Year()

	seedBooking(t, e, "b1", "u3", model.BookingCompleted, thisYear)
	seedBooking(t, e, "b2", "u3", model.BookingCancelled, thisYear-1)
	seedBooking(t, e, "b3", "u3", model.BookingActive, thisYear)

	w := e.do(t, http.MethodGet, fmt.Sprintf("/bookings?tab=HISTORY&year=%d", thisYear-1), nil, staff)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, []string{"b2"}, filteredIDs(t, body))
	assert.Equal(t, float64(thisYear-1), body["selectedHistoryYear"])
	assert.Equal(t, []any{float64(thisYear), float64(thisYear - 1)}, body["historyYears"].([]any))
}

func TestBookingsPageUnknownTab(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")

	seedBooking(t, e, "b1", "u3", model.BookingPending, time.Now().Year())
	seedBooking(t, e, "b2", "u3", model.BookingCompleted, time.Now().Year())

	w := e.do(t, http.MethodGet, "/bookings?tab=FOO", nil, student)
	require.Equal(t, http.StatusOK, w.Code)

	// An unknown tab degrades to the unfiltered set.
	body := decode(t, w)
	assert.Equal(t, []string{"b1", "b2"}, filteredIDs(t, body))
}

func TestBookingsPageEnhancesEquipment(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")

	seedBooking(t, e, "b1", "u3", model.BookingPending, time.Now().Year())

	w := e.do(t, http.MethodGet, "/bookings", nil, student)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	first := body["bookings"].([]any)[0].(map[string]any)
	assert.Equal(t, "Kính Hiển Vi Điện Tử Olympus CX23", first["equipmentName"])
	assert.Equal(t, "KHV-001", first["equipmentCode"])
}

func TestCreateBookingAPI(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")

	payload := map[string]any{
		"equipmentId": "e1",
		"startTime":   "2026-09-01T08:00:00Z",
		"endTime":     "2026-09-01T10:00:00Z",
		"purpose":     "Thực hành vi sinh",
	}
	w := e.do(t, http.MethodPost, "/api/bookings/create", payload, student)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	assert.Equal(t, true, body["success"])
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "u3", data["userId"])
	assert.Equal(t, "PENDING", data["status"])
}

func TestCreateBookingAPIValidation(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")

	testCases := []struct {
		name    string
		payload map[string]any
	}{
		{
			name:    "Missing equipment ID",
			payload: map[string]any{"startTime": "2026-09-01T08:00:00Z", "endTime": "2026-09-01T10:00:00Z"},
		},
		{
			name: "Dangling equipment reference",
			payload: map[string]any{
				"equipmentId": "ghost",
				"startTime":   "2026-09-01T08:00:00Z",
				"endTime":     "2026-09-01T10:00:00Z",
			},
		},
		{
			name: "Dangling user reference",
			payload: map[string]any{
				"userId":      "ghost",
				"equipmentId": "e1",
				"startTime":   "2026-09-01T08:00:00Z",
				"endTime":     "2026-09-01T10:00:00Z",
			},
		},
		{
			name: "Unknown status",
			payload: map[string]any{
				"equipmentId": "e1",
				"startTime":   "2026-09-01T08:00:00Z",
				"endTime":     "2026-09-01T10:00:00Z",
				"status":      "TELEPORTED",
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			w := e.do(t, http.MethodPost, "/api/bookings/create", tc.payload, student)
			assert.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, false, decode(t, w)["success"])
		})
	}
}

func TestCreateBookingAPIRequiresLogin(t *testing.T) {
	e := newTestEnv(t)
	payload := map[string]any{
		"equipmentId": "e1",
		"startTime":   "2026-09-01T08:00:00Z",
		"endTime":     "2026-09-01T10:00:00Z",
	}
	w := e.do(t, http.MethodPost, "/api/bookings/create", payload, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestCreateUsageLogAPI(t *testing.T) {
	e := newTestEnv(t)
	staff := e.login(t, "u2", "123@")

	seedBooking(t, e, "b1", "u3", model.BookingCompleted, time.Now().Year())

	payload := map[string]any{"bookingId": "b1", "equipmentId": "e1", "notes": "Thiết bị hoạt động tốt"}
	w := e.do(t, http.MethodPost, "/api/usage-logs", payload, staff)
	require.Equal(t, http.StatusOK, w.Code)

	body := decode(t, w)
	data := body["data"].(map[string]any)
	assert.NotEmpty(t, data["id"])
	assert.Equal(t, "u2", data["userId"])

	logs, err := e.store.ListUsageLogs(context.Background())
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, "b1", logs[0].BookingID)
}

func TestCreateUsageLogAPIStudentForbidden(t *testing.T) {
	e := newTestEnv(t)
	student := e.login(t, "u3", "123@")

	payload := map[string]any{"equipmentId": "e1"}
	w := e.do(t, http.MethodPost, "/api/usage-logs", payload, student)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
