package model

import "time"

// BookingStatus is the lifecycle state of a booking. The expected sequence is
// PENDING -> APPROVED -> ACTIVE -> COMPLETED, with CANCELLED and REJECTED as
// terminal escapes. Transitions are not enforced here.
type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingApproved  BookingStatus = "APPROVED"
	BookingActive    BookingStatus = "ACTIVE"
	BookingCompleted BookingStatus = "COMPLETED"
	BookingCancelled BookingStatus = "CANCELLED"
	BookingRejected  BookingStatus = "REJECTED"
)

// Known reports whether s is one of the enumerated booking statuses.
func (s BookingStatus) Known() bool {
	switch s {
	case BookingPending, BookingApproved, BookingActive,
		BookingCompleted, BookingCancelled, BookingRejected:
		return true
	}
	return false
}

// Terminal reports whether the booking has left the active lifecycle.
func (s BookingStatus) Terminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingRejected
}

// Booking reserves one equipment item for one user over a time range.
type Booking struct {
	ID          string        `gorm:"primaryKey;size:64" json:"id"`
	UserID      string        `gorm:"size:64;index" json:"userId"`
	EquipmentID string        `gorm:"size:64;index" json:"equipmentId"`
	StartTime   time.Time     `gorm:"index" json:"startTime"`
	EndTime     time.Time     `json:"endTime"`
	Status      BookingStatus `gorm:"size:16;index" json:"status"`
	Purpose     string        `json:"purpose"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
