package view

import (
	"sort"
	"time"

	"sciequip-backend/internal/model"
)

// Tab is a named view filter over the booking list.
type Tab string

const (
	TabPending    Tab = "PENDING"
	TabApproved   Tab = "APPROVED"
	TabActive     Tab = "ACTIVE"
	TabWaitingLog Tab = "WAITING_LOG"
	TabHistory    Tab = "HISTORY"
)

// EnhancedBooking is a booking annotated with its equipment's display fields.
type EnhancedBooking struct {
	model.Booking
	EquipmentName string `json:"equipmentName"`
	EquipmentCode string `json:"equipmentCode"`
}

// Enhance annotates bookings with equipment name and code. Unresolvable
// equipment references fall back to "Unknown" with an empty code.
func Enhance(bookings []model.Booking, equipment map[string]model.Equipment) []EnhancedBooking {
	out := make([]EnhancedBooking, 0, len(bookings))
	for _, b := range bookings {
		name, code := "Unknown", ""
		if eq, ok := equipment[b.EquipmentID]; ok {
			name, code = eq.Name, eq.Code
		}
		out = append(out, EnhancedBooking{Booking: b, EquipmentName: name, EquipmentCode: code})
	}
	return out
}

// LoggedBookingIDs collects the booking IDs referenced by any usage log.
func LoggedBookingIDs(logs []model.UsageLog) map[string]struct{} {
	ids := make(map[string]struct{})
	for _, l := range logs {
		if l.BookingID != "" {
			ids[l.BookingID] = struct{}{}
		}
	}
	return ids
}

// FilterByTab applies the tab predicate to the booking set. WAITING_LOG is
// COMPLETED bookings with no usage log; HISTORY is the terminal statuses,
// restricted to the given calendar year when year is non-zero. Any
// unrecognized tab returns the input unchanged.
func FilterByTab(bookings []EnhancedBooking, tab Tab, loggedIDs map[string]struct{}, year int) []EnhancedBooking {
	switch tab {
	case TabPending, TabApproved, TabActive:
		out := make([]EnhancedBooking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == model.BookingStatus(tab) {
				out = append(out, b)
			}
		}
		return out
	case TabWaitingLog:
		out := make([]EnhancedBooking, 0, len(bookings))
		for _, b := range bookings {
			if b.Status == model.BookingCompleted && !contains(loggedIDs, b.ID) {
				out = append(out, b)
			}
		}
		return out
	case TabHistory:
		out := make([]EnhancedBooking, 0, len(bookings))
		for _, b := range bookings {
			if !b.Status.Terminal() {
				continue
			}
			if year != 0 && b.StartTime.Year() != year {
				continue
			}
			out = append(out, b)
		}
		return out
	}
	return bookings
}

// Counts holds the per-tab badge counts, always computed over the full
// visible booking set rather than the currently selected tab.
type Counts struct {
	Pending    int `json:"pending"`
	Approved   int `json:"approved"`
	Active     int `json:"active"`
	WaitingLog int `json:"waitingLog"`
	History    int `json:"history"`
}

// TabCounts computes the badge counts for every tab.
func TabCounts(bookings []EnhancedBooking, loggedIDs map[string]struct{}) Counts {
	var c Counts
	for _, b := range bookings {
		switch b.Status {
		case model.BookingPending:
			c.Pending++
		case model.BookingApproved:
			c.Approved++
		case model.BookingActive:
			c.Active++
		}
		if b.Status == model.BookingCompleted && !contains(loggedIDs, b.ID) {
			c.WaitingLog++
		}
		if b.Status.Terminal() {
			c.History++
		}
	}
	return c
}

// HistoryYears lists the distinct start-time years among terminal bookings,
// descending. Defaults to the year of now when there is no history at all.
func HistoryYears(bookings []EnhancedBooking, now time.Time) []int {
	seen := make(map[int]struct{})
	for _, b := range bookings {
		if b.Status.Terminal() {
			seen[b.StartTime.Year()] = struct{}{}
		}
	}
	if len(seen) == 0 {
		return []int{now.Year()}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(years)))
	return years
}

func contains(set map[string]struct{}, id string) bool {
	_, ok := set[id]
	return ok
}
