package domain

import "time"

// Otp is a pending one-time code for an email address.
// At most one live record exists per email: issuing a new code
// overwrites the previous one. CodeHash is a bcrypt hash; the
// plaintext code is never persisted.
type Otp struct {
	Email     string    `json:"email" dynamodbav:"email"`
	CodeHash  string    `json:"-" dynamodbav:"code_hash"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
