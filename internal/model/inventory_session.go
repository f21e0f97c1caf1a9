package model

import "time"

// InventorySession is a stocktaking session record. Date is kept as a
// YYYY-MM-DD string; the store filters by its year prefix.
type InventorySession struct {
	ID        string `gorm:"primaryKey;size:64" json:"id"`
	Name      string `gorm:"size:256" json:"name"`
	Date      string `gorm:"size:10;index" json:"date"`
	Status    string `gorm:"size:32" json:"status"`
	Notes     string `json:"notes"`
	CreatedBy string `gorm:"size:64" json:"createdBy"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
