package model

import "time"

// EquipmentStatus is the operational state of a piece of equipment.
type EquipmentStatus string

const (
	StatusAvailable   EquipmentStatus = "AVAILABLE"
	StatusBooked      EquipmentStatus = "BOOKED"
	StatusInUse       EquipmentStatus = "IN_USE"
	StatusBroken      EquipmentStatus = "BROKEN"
	StatusMaintenance EquipmentStatus = "MAINTENANCE"
	StatusLiquidated  EquipmentStatus = "LIQUIDATED"
)

// Equipment represents a piece of laboratory equipment.
type Equipment struct {
	ID              string          `gorm:"primaryKey;size:64" json:"id"`
	Name            string          `gorm:"size:512;not null" json:"name"`
	Code            string          `gorm:"size:64;index" json:"code"`
	Unit            string          `gorm:"size:32" json:"unit"`
	Origin          string          `gorm:"size:128" json:"origin"`
	Quantity        int             `json:"quantity"`
	YearOfUse       int             `json:"yearOfUse"`
	Depreciation    string          `gorm:"size:32" json:"depreciation"`
	Receiver        string          `gorm:"size:256" json:"receiver"`
	UsingDepartment string          `gorm:"size:256" json:"usingDepartment"`
	Model           string          `gorm:"size:256" json:"model"`
	Serial          string          `gorm:"size:128" json:"serial"`
	Provider        string          `gorm:"size:256" json:"provider"`
	ReceiveDate     string          `gorm:"size:10" json:"receiveDate"`
	Price           float64         `json:"price"`
	ManagerID       string          `gorm:"size:64;index" json:"managerId"`
	Location        string          `gorm:"size:128" json:"location"`
	Status          EquipmentStatus `gorm:"size:32;index" json:"status"`
	Images          []string        `gorm:"serializer:json" json:"images"`
	Notes           string          `json:"notes"`
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
