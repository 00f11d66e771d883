package dto

import "time"

// TokenRequest exchanges operator credentials for a bearer token.
type TokenRequest struct {
	OperatorID string `json:"operatorId"`
	Password   string `json:"password"`
}

// AuthResponse represents token payload.
type AuthResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}
