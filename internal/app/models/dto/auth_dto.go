package dto

import "github.com/yigit/isluportal/internal/app/models"

// LoginRequest represents login credentials
type LoginRequest struct {
	StudentID string `json:"studentId" binding:"required"`
	Password  string `json:"password" binding:"required"`
}

// TokenResponse represents JWT token information
type TokenResponse struct {
	AccessToken string `json:"accessToken"`
	TokenType   string `json:"tokenType" example:"Bearer"`
	ExpiresIn   int    `json:"expiresIn"`
}

// LoginResponse is returned by a successful login
type LoginResponse struct {
	Token     TokenResponse   `json:"token"`
	Student   *models.Account `json:"student"`
	Statement *Statement      `json:"statement,omitempty"`
}

// RegisterRequest carries the identity block of a new account. The student
// ID is generated by the portal.
type RegisterRequest struct {
	LastName    string `json:"lastName" binding:"required,fieldsafe,max=60"`
	FirstName   string `json:"firstName" binding:"required,fieldsafe,max=60"`
	MiddleName  string `json:"middleName" binding:"fieldsafe,max=60"`
	DateOfBirth string `json:"dateOfBirth" binding:"required,fieldsafe,max=30"`
	Password    string `json:"password" binding:"required,trimmed,fieldsafe,max=64"`
}

// RegisterResponse returns the generated student ID
type RegisterResponse struct {
	StudentID string          `json:"studentId" example:"2250417"`
	Student   *models.Account `json:"student"`
}

// ChangePasswordRequest replaces the caller's password
type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,trimmed,fieldsafe,max=64"`
}
