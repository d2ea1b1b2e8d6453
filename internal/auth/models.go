package auth

import "time"

// TokenResponse - ответ с access token
type TokenResponse struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	ExpiresIn   int64     `json:"expires_in"`
	ExpiresAt   time.Time `json:"expires_at"`
	UserID      string    `json:"user_id"`
}

// MeResponse - ответ GET /v1/me
type MeResponse struct {
	UserID        string `json:"user_id"`
	Authenticated bool   `json:"authenticated"`
}

// ErrorResponse - формат ошибки
type ErrorResponse struct {
	Error ErrorDetail `json:"error"`
}

type ErrorDetail struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
