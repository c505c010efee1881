package model

import (
	"github.com/google/uuid"
)

// LoginRequest is the public login payload. A missing field binds to the
// empty string and is treated as a non-matching value, not as a separate
// error: the lookup simply finds no record.
type LoginRequest struct {
	NationalID  string `json:"national_id"`
	PhoneNumber string `json:"phone_number"`
}

type RefreshRequest struct {
	Refresh string `json:"refresh" binding:"required"`
}

// TokenPair is the login response body. Field names follow the wire
// contract consumed by the patient app.
type TokenPair struct {
	Refresh string `json:"refresh"`
	Access  string `json:"access"`
}

// TokenClaims is the decoded view of an access or refresh token.
type TokenClaims struct {
	UserID     uuid.UUID
	NationalID string
	IsAdmin    bool
}
