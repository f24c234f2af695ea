package usecases

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/domain/repositories"
	"signals-hub.backend/pkg/crypto"
	"signals-hub.backend/pkg/jwt"
	"signals-hub.backend/pkg/logger"
	"signals-hub.backend/pkg/mail"
)

// AuthUsecase handles registration, login and the token-driven
// activation and password-reset flows
type AuthUsecase struct {
	userRepo      repositories.UserRepository
	tokenRegistry *TokenRegistryUsecase
	jwtService    *jwt.JWTService
	mailer        mail.Mailer
	activationTTL time.Duration
	resetTTL      time.Duration
}

// NewAuthUsecase creates a new auth usecase
func NewAuthUsecase(
	userRepo repositories.UserRepository,
	tokenRegistry *TokenRegistryUsecase,
	jwtService *jwt.JWTService,
	mailer mail.Mailer,
	activationTTL, resetTTL time.Duration,
) *AuthUsecase {
	return &AuthUsecase{
		userRepo:      userRepo,
		tokenRegistry: tokenRegistry,
		jwtService:    jwtService,
		mailer:        mailer,
		activationTTL: activationTTL,
		resetTTL:      resetTTL,
	}
}

// Register creates an inactive account and issues its activation token.
// The token is also returned for the activation mail.
func (u *AuthUsecase) Register(ctx context.Context, input *entities.CreateUserInput) (*entities.User, string, error) {
	taken, err := u.userRepo.ExistsByUsernameOrEmail(ctx, input.Username, input.Email)
	if err != nil {
		return nil, "", err
	}
	if taken {
		return nil, "", domainerrors.Conflict("Username or email already exists")
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return nil, "", err
	}

	user := &entities.User{
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: passwordHash,
		IsActive:     false,
		Role:         entities.UserRoleUser,
		CreatedAt:    time.Now(),
		UpdatedAt:    time.Now(),
	}
	if err := u.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can still win the unique index
		// between the existence check and the insert.
		if errors.Is(err, domainerrors.ErrAlreadyExists) {
			return nil, "", domainerrors.Conflict("Username or email already exists")
		}
		return nil, "", err
	}

	token, err := u.tokenRegistry.Issue(ctx, user.ID, entities.TokenPurposeActivation, u.activationTTL)
	if err != nil {
		return nil, "", err
	}

	u.sendAsync(user.Email, token, entities.TokenPurposeActivation)

	return user, token, nil
}

// Activate redeems an activation token and enables the bound account
func (u *AuthUsecase) Activate(ctx context.Context, token string) (*entities.User, error) {
	userID, err := u.tokenRegistry.Redeem(ctx, token, entities.TokenPurposeActivation)
	if err != nil {
		return nil, err
	}
	if err := u.userRepo.Activate(ctx, userID); err != nil {
		return nil, err
	}
	return u.userRepo.GetByID(ctx, userID)
}

// Login authenticates by username or email and returns a token pair.
// Inactive accounts may log in; every privileged operation still runs
// through the active-account gate.
func (u *AuthUsecase) Login(ctx context.Context, input *entities.LoginInput) (*entities.AuthResponse, error) {
	user, err := u.userRepo.GetByUsername(ctx, input.Identifier)
	if err != nil {
		if !errors.Is(err, domainerrors.ErrNotFound) {
			return nil, err
		}
		user, err = u.userRepo.GetByEmail(ctx, input.Identifier)
		if err != nil {
			if errors.Is(err, domainerrors.ErrNotFound) {
				return nil, domainerrors.ErrInvalidCredentials
			}
			return nil, err
		}
	}

	if !crypto.CheckPassword(input.Password, user.PasswordHash) {
		return nil, domainerrors.ErrInvalidCredentials
	}

	tokenPair, err := u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
	if err != nil {
		return nil, err
	}

	return &entities.AuthResponse{
		AccessToken:  tokenPair.AccessToken,
		RefreshToken: tokenPair.RefreshToken,
		User:         user,
	}, nil
}

// RequestPasswordReset issues a reset token for the account behind the
// email. A missing account is reported as success to avoid leaking which
// addresses are registered.
func (u *AuthUsecase) RequestPasswordReset(ctx context.Context, email string) error {
	user, err := u.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil
		}
		return err
	}

	token, err := u.tokenRegistry.Issue(ctx, user.ID, entities.TokenPurposePasswordReset, u.resetTTL)
	if err != nil {
		return err
	}

	u.sendAsync(user.Email, token, entities.TokenPurposePasswordReset)
	return nil
}

// ResetPassword redeems a reset token and installs the new password hash
func (u *AuthUsecase) ResetPassword(ctx context.Context, input *entities.ResetPasswordInput) error {
	userID, err := u.tokenRegistry.Redeem(ctx, input.Token, entities.TokenPurposePasswordReset)
	if err != nil {
		return err
	}

	passwordHash, err := crypto.HashPassword(input.Password)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// ChangePassword rotates the password of a logged-in account
func (u *AuthUsecase) ChangePassword(ctx context.Context, userID uuid.UUID, input *entities.ChangePasswordInput) error {
	user, err := u.userRepo.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if !crypto.CheckPassword(input.CurrentPassword, user.PasswordHash) {
		return domainerrors.ErrInvalidCredentials
	}

	passwordHash, err := crypto.HashPassword(input.NewPassword)
	if err != nil {
		return err
	}
	return u.userRepo.UpdatePassword(ctx, userID, passwordHash)
}

// RefreshToken generates new tokens from a refresh token
func (u *AuthUsecase) RefreshToken(ctx context.Context, refreshToken string) (*jwt.TokenPair, error) {
	claims, err := u.jwtService.ValidateToken(refreshToken)
	if err != nil {
		return nil, err
	}

	user, err := u.userRepo.GetByID(ctx, claims.UserID)
	if err != nil {
		return nil, err
	}

	return u.jwtService.GenerateTokenPair(user.ID, user.Email, string(user.Role))
}

// GetUserByID gets a user by ID
func (u *AuthUsecase) GetUserByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return u.userRepo.GetByID(ctx, id)
}

// sendAsync delivers the token mail without blocking the request.
// Failures are logged and dropped; the caller cannot act on them.
func (u *AuthUsecase) sendAsync(email, token string, purpose entities.TokenPurpose) {
	go func() {
		ctx := context.Background()
		var err error
		switch purpose {
		case entities.TokenPurposePasswordReset:
			err = u.mailer.SendPasswordReset(ctx, email, token)
		default:
			err = u.mailer.SendActivation(ctx, email, token)
		}
		if err != nil {
			logger.Warn(ctx, "token mail delivery failed", zap.String("purpose", string(purpose)), zap.Error(err))
		}
	}()
}
