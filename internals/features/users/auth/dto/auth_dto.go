package dto

import (
	"github.com/google/uuid"

	userDTO "estatehub_backend/internals/features/users/user/dto"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Phone    string `json:"phone" validate:"omitempty,min=6,max=32"`
	Password string `json:"password" validate:"required,min=6,max=128"`
	Name     string `json:"name" validate:"omitempty,max=150"`
	Role     string `json:"role" validate:"omitempty,max=60"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"omitempty,email"`
	Phone    string `json:"phone" validate:"omitempty,min=6,max=32"`
	Password string `json:"password" validate:"required"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Phone       string `json:"phone" validate:"omitempty,min=6,max=32"`
	Code        string `json:"code" validate:"required,len=6,numeric"`
	NewPassword string `json:"newPassword" validate:"required,min=6,max=128"`
}

type SendOtpRequest struct {
	Email   string `json:"email" validate:"omitempty,email"`
	Phone   string `json:"phone" validate:"omitempty,min=6,max=32"`
	Purpose string `json:"purpose" validate:"omitempty,oneof=verify_email verify_phone login reset_password listing"`
}

type VerifyOtpRequest struct {
	Email         string `json:"email" validate:"omitempty,email"`
	Phone         string `json:"phone" validate:"omitempty,min=6,max=32"`
	Code          string `json:"code" validate:"required"`
	CreateAccount bool   `json:"createAccount"`
	Segment       string `json:"segment" validate:"omitempty,oneof=rent buy commercial"`
	Name          string `json:"name" validate:"omitempty,max=150"`
}

type SwitchRoleRequest struct {
	RoleID uuid.UUID `json:"roleId" validate:"required"`
}

type AuthResponse struct {
	Token string               `json:"token"`
	User  userDTO.UserResponse `json:"user"`
}

type SendOtpResponse struct {
	Success   bool   `json:"success"`
	Message   string `json:"message"`
	ExpiresAt string `json:"expiresAt"`
	Code      string `json:"code,omitempty"`
}

type VerifyOtpResponse struct {
	Success  bool                  `json:"success"`
	Verified bool                  `json:"verified"`
	Message  string                `json:"message"`
	Token    string                `json:"token,omitempty"`
	User     *userDTO.UserResponse `json:"user,omitempty"`
}

type VerificationStatusResponse struct {
	Email         *string `json:"email"`
	Phone         *string `json:"phone"`
	EmailVerified bool    `json:"emailVerified"`
	PhoneVerified bool    `json:"phoneVerified"`
	IsVerified    bool    `json:"isVerified"`
}
