package models

type Client struct {
	BaseModel
	Name   string `gorm:"not null"`
	Email  string `gorm:"index"`
	Avatar string

	// Running weighted mean over professional counter-ratings.
	Ranking     float64 `gorm:"default:5.0"`
	ReviewCount int     `gorm:"default:0"`
}
