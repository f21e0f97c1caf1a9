package api

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"sciequip-backend/internal/model"
	"sciequip-backend/internal/mw"
	"sciequip-backend/internal/store"
	"sciequip-backend/internal/view"
)

// BookingsPage handles GET /bookings?tab=&year=. Students see only their own
// bookings; staff and admin see everything. Tab counts and history years
// always cover the whole visible set, regardless of the selected tab.
func (h *Handler) BookingsPage(c *gin.Context) {
	ctx := c.Request.Context()
	user := mw.CurrentUser(c)

	scope := ""
	if !user.IsStaff() {
		scope = user.ID
	}

	bookings, err := h.store.ListBookings(ctx, scope)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load bookings"})
		return
	}

	items, err := h.store.ListEquipment(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load equipment"})
		return
	}
	byID := make(map[string]model.Equipment, len(items))
	for _, e := range items {
		byID[e.ID] = e
	}

	logs, err := h.store.ListUsageLogs(ctx)
	if err != nil {
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to load usage logs"})
		return
	}

	enhanced := view.Enhance(bookings, byID)
	loggedIDs := view.LoggedBookingIDs(logs)

	activeTab := view.Tab(c.DefaultQuery("tab", string(view.TabPending)))
	selectedYear := time.Now().Year()
	if y, err := strconv.Atoi(c.Query("year")); err == nil {
		selectedYear = y
	}

	resp := pageContext(c, "Booking List")
	resp["bookings"] = enhanced
	resp["filteredBookings"] = view.FilterByTab(enhanced, activeTab, loggedIDs, selectedYear)
	resp["activeTab"] = activeTab
	resp["selectedHistoryYear"] = selectedYear
	resp["historyYears"] = view.HistoryYears(enhanced, time.Now())
	resp["counts"] = view.TabCounts(enhanced, loggedIDs)
	c.JSON(http.StatusOK, resp)
}

type createBookingRequest struct {
	ID          string              `json:"id"`
	UserID      string              `json:"userId"`
	EquipmentID string              `json:"equipmentId" binding:"required"`
	StartTime   time.Time           `json:"startTime" binding:"required"`
	EndTime     time.Time           `json:"endTime" binding:"required"`
	Status      model.BookingStatus `json:"status"`
	Purpose     string              `json:"purpose"`
}

// CreateBooking handles POST /api/bookings/create. Overlapping time ranges
// for the same equipment are accepted; only the user and equipment references
// are validated.
func (h *Handler) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	if req.UserID == "" {
		req.UserID = mw.CurrentUser(c).ID
	}

	booking := model.Booking{
		ID:          req.ID,
		UserID:      req.UserID,
		EquipmentID: req.EquipmentID,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Status:      req.Status,
		Purpose:     req.Purpose,
	}

	err := h.store.CreateBooking(c.Request.Context(), &booking)
	switch {
	case errors.Is(err, store.ErrUnknownUser),
		errors.Is(err, store.ErrUnknownEquipment),
		errors.Is(err, store.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	case err != nil:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create booking"})
		return
	}

	if h.pool != nil {
		h.pool.Dispatch(booking.ID)
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": booking})
}

type createUsageLogRequest struct {
	BookingID   string `json:"bookingId"`
	EquipmentID string `json:"equipmentId" binding:"required"`
	Notes       string `json:"notes"`
}

// CreateUsageLog handles POST /api/usage-logs: the close-out record for a
// completed booking.
func (h *Handler) CreateUsageLog(c *gin.Context) {
	var req createUsageLogRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
		return
	}

	entry := model.UsageLog{
		BookingID:   req.BookingID,
		EquipmentID: req.EquipmentID,
		UserID:      mw.CurrentUser(c).ID,
		Notes:       req.Notes,
	}
	if err := h.store.CreateUsageLog(c.Request.Context(), &entry); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to create usage log"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "data": entry})
}
