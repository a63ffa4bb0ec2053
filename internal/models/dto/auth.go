package dto

import "github.com/hongminglow/catalog-api/internal/models"

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// AuthResponse is returned by register and login.
type AuthResponse struct {
	Message string      `json:"message,omitempty"`
	User    models.User `json:"user"`
	Token   string      `json:"token"`
}

type ProfileResponse struct {
	User models.User `json:"user"`
}

// MessageResponse is the body of every error and of plain acknowledgements.
type MessageResponse struct {
	Message string `json:"message"`
}
