package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/volatiletech/null/v8"
)

// UserRole represents user roles
type UserRole string

const (
	UserRoleUser      UserRole = "USER"
	UserRoleProvider  UserRole = "PROVIDER"
	UserRoleRegistrar UserRole = "REGISTRAR"
)

// Permission is a capability granted to a role
type Permission string

const (
	PermissionUser      Permission = "User"
	PermissionProvider  Permission = "Provider"
	PermissionRegistrar Permission = "Registrar"
)

// Valid reports whether the role is one of the enumerated set
func (r UserRole) Valid() bool {
	switch r {
	case UserRoleUser, UserRoleProvider, UserRoleRegistrar:
		return true
	}
	return false
}

// Permissions expands a role into its granted permission set.
// Provider and Registrar each imply the base User capabilities.
func (r UserRole) Permissions() []Permission {
	switch r {
	case UserRoleProvider:
		return []Permission{PermissionUser, PermissionProvider}
	case UserRoleRegistrar:
		return []Permission{PermissionUser, PermissionRegistrar}
	default:
		return []Permission{PermissionUser}
	}
}

// User represents a marketplace identity
type User struct {
	ID           uuid.UUID   `json:"id"`
	Username     string      `json:"username"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	Wallet       null.String `json:"wallet,omitempty"`
	IsActive     bool        `json:"isActive"`
	Role         UserRole    `json:"role"`
	CreatedAt    time.Time   `json:"createdAt"`
	UpdatedAt    time.Time   `json:"updatedAt"`
}

// CreateUserInput represents input for registration
type CreateUserInput struct {
	Username        string `json:"username" binding:"required,min=1,max=64,alphanum"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// LoginInput represents input for login; the identifier may be a
// username or an email address.
type LoginInput struct {
	Identifier string `json:"identifier" binding:"required"`
	Password   string `json:"password" binding:"required"`
	UseSession bool   `json:"useSession"`
}

// AuthResponse represents a successful authentication
type AuthResponse struct {
	AccessToken  string `json:"accessToken,omitempty"`
	RefreshToken string `json:"refreshToken,omitempty"`
	SessionID    string `json:"sessionId,omitempty"`
	User         *User  `json:"user"`
}

// ChangePasswordInput represents input for changing the password of a
// logged-in account.
type ChangePasswordInput struct {
	CurrentPassword string `json:"currentPassword" binding:"required,min=8"`
	NewPassword     string `json:"newPassword" binding:"required,min=8,max=64"`
}

// ResetPasswordInput represents input for completing a password reset.
type ResetPasswordInput struct {
	Token           string `json:"token" binding:"required"`
	Password        string `json:"password" binding:"required,min=8,max=64"`
	ConfirmPassword string `json:"confirmPassword" binding:"required,eqfield=Password"`
}

// UpdateWalletInput represents input for setting a provider payout wallet.
type UpdateWalletInput struct {
	Wallet string `json:"wallet" binding:"required,len=42"`
}
