package models

import "time"

// VerificationToken is the single-use email confirmation token. A user has at
// most one live token at a time; resending replaces it.
type VerificationToken struct {
	ID        int64     `json:"id"`
	Token     string    `json:"token"`
	UserID    int64     `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
}
