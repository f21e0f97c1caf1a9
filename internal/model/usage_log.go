package model

import "time"

// UsageLog is the close-out record for a completed booking. BookingID may be
// empty for ad hoc log entries recorded directly against equipment.
type UsageLog struct {
	ID          string `gorm:"primaryKey;size:64" json:"id"`
	BookingID   string `gorm:"size:64;index" json:"bookingId"`
	EquipmentID string `gorm:"size:64;index" json:"equipmentId"`
	UserID      string `gorm:"size:64" json:"userId"`
	Notes       string `json:"notes"`
	CreatedAt   time.Time
}
