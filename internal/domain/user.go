package domain

import "time"

type User struct {
	UserID      string     `json:"id" dynamodbav:"user_id"`
	Email       string     `json:"email" dynamodbav:"email"`
	Name        string     `json:"name" dynamodbav:"name"`
	Birthday    *time.Time `json:"dob,omitempty" dynamodbav:"birthday"`
	GoogleSub   string     `json:"-" dynamodbav:"google_sub"`
	Verified    bool       `json:"verified" dynamodbav:"verified"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" dynamodbav:"last_login_at"`
	CreatedAt   time.Time  `json:"created" dynamodbav:"created_at"`
	UpdatedAt   time.Time  `json:"updated" dynamodbav:"updated_at"`
}

type GenerateOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type RegisterRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	DOB   string `json:"dob" validate:"required"` // expected format: YYYY-MM-DD
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type LoginRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6,numeric"`
}

type GoogleAuthRequest struct {
	IDToken string `json:"idToken" validate:"required"`
}
