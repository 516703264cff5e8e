package dto

import "time"

// LoginRequest carries staff login credentials.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginResponse returns the signed token and its expiry.
type LoginResponse struct {
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expiresAt"`
	UserID      string    `json:"userID"`
	Username    string    `json:"username"`
	Permissions []string  `json:"permissions"`
}
