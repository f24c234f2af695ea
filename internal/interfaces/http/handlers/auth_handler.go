package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/interfaces/http/middleware"
	"signals-hub.backend/internal/interfaces/http/response"
	"signals-hub.backend/internal/usecases"
	"signals-hub.backend/pkg/redis"
	"signals-hub.backend/pkg/utils"
)

// AuthHandler handles authentication endpoints
type AuthHandler struct {
	authUsecase  *usecases.AuthUsecase
	sessionStore *redis.SessionStore
	sessionTTL   time.Duration
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authUsecase *usecases.AuthUsecase, sessionStore *redis.SessionStore, sessionTTL time.Duration) *AuthHandler {
	return &AuthHandler{
		authUsecase:  authUsecase,
		sessionStore: sessionStore,
		sessionTTL:   sessionTTL,
	}
}

// Register handles user registration
// POST /api/v1/auth/register
func (h *AuthHandler) Register(c *gin.Context) {
	var input entities.CreateUserInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, _, err := h.authUsecase.Register(c.Request.Context(), &input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, gin.H{
		"message": "Registration successful. Please check your email to activate your account.",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"email":    user.Email,
		},
	})
}

// Activate handles account activation
// POST /api/v1/auth/activate
func (h *AuthHandler) Activate(c *gin.Context) {
	var input struct {
		Token string `json:"token" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	user, err := h.authUsecase.Activate(c.Request.Context(), input.Token)
	if err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.BadRequest("Invalid or already used activation token"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Account activated successfully",
		"user": gin.H{
			"id":       user.ID,
			"username": user.Username,
			"isActive": user.IsActive,
		},
	})
}

// Login handles user login. When useSession is set and a session store
// is wired, tokens live server-side and only a session id is returned.
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var input entities.LoginInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	authResponse, err := h.authUsecase.Login(c.Request.Context(), &input)
	if err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, "Invalid username or password", domainerrors.ErrInvalidCredentials))
			return
		}
		response.Error(c, err)
		return
	}

	if input.UseSession && h.sessionStore != nil {
		sessionID := utils.GenerateUUIDv7().String()
		data := &redis.SessionData{
			AccessToken:  authResponse.AccessToken,
			RefreshToken: authResponse.RefreshToken,
			UserID:       authResponse.User.ID.String(),
			Role:         string(authResponse.User.Role),
		}
		if err := h.sessionStore.CreateSession(c.Request.Context(), sessionID, data, h.sessionTTL); err != nil {
			response.Error(c, err)
			return
		}
		response.Success(c, http.StatusOK, entities.AuthResponse{
			SessionID: sessionID,
			User:      authResponse.User,
		})
		return
	}

	response.Success(c, http.StatusOK, authResponse)
}

// Logout destroys a server-side session
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *gin.Context) {
	sessionID := c.GetHeader(middleware.SessionIDHeader)
	if sessionID == "" || h.sessionStore == nil {
		response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
		return
	}

	if err := h.sessionStore.DeleteSession(c.Request.Context(), sessionID); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"message": "Logged out"})
}

// RefreshToken handles token refresh
// POST /api/v1/auth/refresh
func (h *AuthHandler) RefreshToken(c *gin.Context) {
	var input struct {
		RefreshToken string `json:"refreshToken" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	tokenPair, err := h.authUsecase.RefreshToken(c.Request.Context(), input.RefreshToken)
	if err != nil {
		response.Error(c, domainerrors.Unauthorized("Invalid refresh token"))
		return
	}

	response.Success(c, http.StatusOK, tokenPair)
}

// ForgotPassword requests a password reset mail
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.RequestPasswordReset(c.Request.Context(), input.Email); err != nil {
		response.Error(c, err)
		return
	}

	// Same answer whether or not the address is registered.
	response.Success(c, http.StatusOK, gin.H{
		"message": "If the email is registered, a reset link has been sent.",
	})
}

// ResetPassword completes a password reset with a mailed token
// POST /api/v1/auth/reset-password
func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var input entities.ResetPasswordInput

	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ResetPassword(c.Request.Context(), &input); err != nil {
		if err == domainerrors.ErrNotFound {
			response.Error(c, domainerrors.BadRequest("Invalid or already used reset token"))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Password reset successfully",
	})
}

// ChangePassword rotates the password of the logged-in account
// POST /api/v1/auth/change-password
func (h *AuthHandler) ChangePassword(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		response.Error(c, domainerrors.Unauthorized("You are not logged in"))
		return
	}

	var input entities.ChangePasswordInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.authUsecase.ChangePassword(c.Request.Context(), principal.UserID, &input); err != nil {
		if err == domainerrors.ErrInvalidCredentials {
			response.Error(c, domainerrors.NewAppError(http.StatusUnauthorized, "Current password is incorrect", domainerrors.ErrInvalidCredentials))
			return
		}
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"message": "Password changed successfully",
	})
}

// Me returns the logged-in user's profile
// GET /api/v1/auth/me
func (h *AuthHandler) Me(c *gin.Context) {
	principal := middleware.GetPrincipal(c)
	if principal == nil {
		response.Error(c, domainerrors.Unauthorized("You are not logged in"))
		return
	}

	user, err := h.authUsecase.GetUserByID(c.Request.Context(), principal.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"user": user})
}
