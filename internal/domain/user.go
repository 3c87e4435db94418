package domain

import "time"

const (
	RoleUser  = "user"
	RoleAdmin = "admin"
)

type User struct {
	UserID       string    `json:"id" dynamodbav:"user_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	PhoneNumber  string    `json:"phone_number" dynamodbav:"phone_number"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	Address      string    `json:"address,omitempty" dynamodbav:"address"`
	Role         string    `json:"role" dynamodbav:"role"`
	AvatarURL    string    `json:"avatar_url,omitempty" dynamodbav:"avatar_url"`
	CreatedAt    time.Time `json:"created_at" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated_at" dynamodbav:"updated_at"`
}

type RegisterRequest struct {
	Name        string `json:"name" validate:"required"`
	Email       string `json:"email" validate:"required,email"`
	PhoneNumber string `json:"phone_number" validate:"required,min=10"`
	Password    string `json:"password" validate:"required,min=8,max=72"`
}

type ActivateRequest struct {
	ActivationToken string `json:"activation_token" validate:"required"`
	ActivationCode  string `json:"activation_code" validate:"required"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}
