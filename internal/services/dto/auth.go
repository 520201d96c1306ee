package dto

type FederatedLoginRequest struct {
	Assertion string `json:"assertion" validate:"required"`
	Role      string `json:"role" validate:"required,oneof=CLIENT PROFESSIONAL"`
	// Category is required when a professional signs in for the first time.
	Category *string `json:"category,omitempty"`
}

type DemoLoginRequest struct {
	Name     string  `json:"name" validate:"required,min=2"`
	Secret   string  `json:"secret" validate:"required,min=4"`
	Role     string  `json:"role" validate:"required,oneof=CLIENT PROFESSIONAL"`
	Category *string `json:"category,omitempty"`
}

type AuthResponse struct {
	Token  string `json:"token"`
	UserID string `json:"user_id"`
	Role   string `json:"role"`
	Name   string `json:"name"`
	Avatar string `json:"avatar,omitempty"`
	Demo   bool   `json:"demo,omitempty"`
}
