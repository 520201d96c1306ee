package models

import "gorm.io/datatypes"

type Professional struct {
	BaseModel
	Name     string   `gorm:"not null"`
	Category Category `gorm:"type:varchar(30);not null"`
	Bio      string
	Phone    string
	Email    string `gorm:"index"`

	LocationLat     float64
	LocationLng     float64
	LocationAddress string
	WorkingRadiusKm float64

	HourlyRateMin float64
	HourlyRateMax float64

	Certifications  datatypes.JSON `gorm:"type:jsonb"`
	ExperienceYears int
	CVSummary       string
	Avatar          string

	Ranking float64 `gorm:"default:5.0"`

	// Relations
	Reviews      []Review      `gorm:"foreignKey:ProfessionalID"`
	Subscription *Subscription `gorm:"foreignKey:ProfessionalID"`
}
