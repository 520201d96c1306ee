package dto

import (
	"time"

	"procasa_backend/internal/models"
)

type UpdateProfileRequest struct {
	Name            *string  `json:"name,omitempty"`
	Category        *string  `json:"category,omitempty"`
	Bio             *string  `json:"bio,omitempty"`
	Phone           *string  `json:"phone,omitempty"`
	LocationLat     *float64 `json:"location_lat,omitempty"`
	LocationLng     *float64 `json:"location_lng,omitempty"`
	LocationAddress *string  `json:"location_address,omitempty"`
	WorkingRadiusKm *float64 `json:"working_radius_km,omitempty"`
	HourlyRateMin   *float64 `json:"hourly_rate_min,omitempty"`
	HourlyRateMax   *float64 `json:"hourly_rate_max,omitempty"`
	Certifications  []string `json:"certifications,omitempty"`
	ExperienceYears *int     `json:"experience_years,omitempty"`
	CVSummary       *string  `json:"cv_summary,omitempty"`
	Avatar          *string  `json:"avatar,omitempty"`
}

type OptimizeProfileResponse struct {
	Bio       string `json:"bio"`
	CVSummary string `json:"cv_summary"`
}

type ProfessionalResponse struct {
	ID              string              `json:"id"`
	Name            string              `json:"name"`
	Category        models.Category     `json:"category"`
	Bio             string              `json:"bio"`
	Phone           string              `json:"phone,omitempty"`
	Email           string              `json:"email,omitempty"`
	LocationLat     float64             `json:"location_lat"`
	LocationLng     float64             `json:"location_lng"`
	LocationAddress string              `json:"location_address"`
	WorkingRadiusKm float64             `json:"working_radius_km"`
	HourlyRateMin   float64             `json:"hourly_rate_min"`
	HourlyRateMax   float64             `json:"hourly_rate_max"`
	Certifications  []string            `json:"certifications"`
	ExperienceYears int                 `json:"experience_years"`
	CVSummary       string              `json:"cv_summary"`
	Avatar          string              `json:"avatar"`
	Ranking         float64             `json:"ranking"`
	Reviews         []ReviewResponse    `json:"reviews"`
	Subscription    *SubscriptionStatus `json:"subscription,omitempty"`
	CreatedAt       time.Time           `json:"created_at"`
}

type ClientResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Ranking     float64   `json:"ranking"`
	ReviewCount int       `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}
