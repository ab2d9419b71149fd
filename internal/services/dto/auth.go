package dto

import "psyhub_backend/internal/models"

type RegisterRequest struct {
	Email    string          `json:"email" validate:"required,email"`
	Password string          `json:"password" validate:"required,min=6"`
	Name     string          `json:"name" validate:"required"`
	Phone    string          `json:"phone" validate:"required"`
	Role     models.UserRole `json:"role" validate:"required,oneof=psychologist institute client"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type RefreshRequest struct {
	Token string `json:"token" validate:"required"`
}

// UserResponse - пользователь без хеша пароля
type UserResponse struct {
	ID         string          `json:"id"`
	Email      string          `json:"email"`
	Name       string          `json:"name"`
	Phone      string          `json:"phone"`
	Role       models.UserRole `json:"role"`
	IsVerified bool            `json:"is_verified"`
	IsActive   bool            `json:"is_active"`
}

func NewUserResponse(user *models.User) *UserResponse {
	return &UserResponse{
		ID:         user.ID,
		Email:      user.Email,
		Name:       user.Name,
		Phone:      user.Phone,
		Role:       user.Role,
		IsVerified: user.IsVerified,
		IsActive:   user.IsActive,
	}
}

type RegisterResponse struct {
	Token string        `json:"token"`
	User  *UserResponse `json:"user"`
}

// LoginResponse: profile может быть nil - профиль для роли не найден.
// Это решает вызывающая сторона, бэкенд состояние не скрывает.
type LoginResponse struct {
	Token   string        `json:"token"`
	User    *UserResponse `json:"user"`
	Profile interface{}   `json:"profile"`
}

type RefreshResponse struct {
	Token string `json:"token"`
}

type MeResponse struct {
	User    *UserResponse `json:"user"`
	Profile interface{}   `json:"profile"`
}
