package model

import "time"

// Lab is read-only reference data describing a laboratory room.
type Lab struct {
	ID            string   `gorm:"primaryKey;size:64" json:"id"`
	Name          string   `gorm:"size:256;not null" json:"name"`
	Description   string   `json:"description"`
	DetailContent string   `json:"detailContent"`
	Images        []string `gorm:"serializer:json" json:"images"`
	LocationCode  string   `gorm:"size:64" json:"locationCode"`
	CreatedAt     time.Time
}
