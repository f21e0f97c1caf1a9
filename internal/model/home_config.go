package model

// HomePageConfig is the singleton row backing the public landing page. The
// visitor counter is bumped atomically by the store on every home request.
type HomePageConfig struct {
	ID                   uint     `gorm:"primaryKey" json:"-"`
	AppName              string   `gorm:"size:256" json:"appName"`
	Logo                 string   `gorm:"size:512" json:"logo"`
	HeroTitle            string   `gorm:"size:256" json:"heroTitle"`
	HeroSubtitle         string   `gorm:"size:256" json:"heroSubtitle"`
	IntroTitle           string   `gorm:"size:256" json:"introTitle"`
	IntroContent         string   `json:"introContent"`
	FeaturedTitle        string   `gorm:"size:256" json:"featuredTitle"`
	FeaturedEquipmentIDs []string `gorm:"serializer:json" json:"featuredEquipmentIds"`
	LabsTitle            string   `gorm:"size:256" json:"labsTitle"`
	VisitorCount         int64    `gorm:"not null;default:0" json:"visitorCount"`
}
