package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/pkg/crypto"
	"signals-hub.backend/pkg/jwt"
)

func newAuthFixture() (*AuthUsecase, *MockUserRepository, *MockUserTokenRepository, *MockMailer) {
	userRepo := new(MockUserRepository)
	tokenRepo := new(MockUserTokenRepository)
	mailer := new(MockMailer)
	registry := NewTokenRegistryUsecase(tokenRepo, userRepo)
	jwtService := jwt.NewJWTService("test-secret", 15*time.Minute, 7*24*time.Hour)
	usecase := NewAuthUsecase(userRepo, registry, jwtService, mailer, time.Hour, time.Hour)
	return usecase, userRepo, tokenRepo, mailer
}

func TestAuth_RegisterCreatesInactiveUserAndIssuesToken(t *testing.T) {
	usecase, userRepo, tokenRepo, mailer := newAuthFixture()
	ctx := context.Background()

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@signalshub.io").Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.User")).
		Run(func(args mock.Arguments) {
			args.Get(1).(*entities.User).ID = uuid.New()
		}).
		Return(nil)
	// The registry validates the user before storing the token.
	userRepo.On("GetByID", mock.Anything, mock.Anything).Return(&entities.User{ID: uuid.New()}, nil)

	var stored *entities.UserToken
	tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.UserToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entities.UserToken)
		}).
		Return(nil)

	mailSent := make(chan struct{})
	mailer.On("SendActivation", mock.Anything, "alice@signalshub.io", mock.AnythingOfType("string")).
		Run(func(mock.Arguments) { close(mailSent) }).
		Return(nil)

	user, token, err := usecase.Register(ctx, &entities.CreateUserInput{
		Username:        "alice",
		Email:           "alice@signalshub.io",
		Password:        "s3cret-pass",
		ConfirmPassword: "s3cret-pass",
	})
	require.NoError(t, err)
	require.False(t, user.IsActive)
	require.Equal(t, entities.UserRoleUser, user.Role)
	require.True(t, crypto.CheckPassword("s3cret-pass", user.PasswordHash))
	require.NotEmpty(t, token)
	require.Equal(t, entities.TokenPurposeActivation, stored.Purpose)

	select {
	case <-mailSent:
	case <-time.After(2 * time.Second):
		t.Fatal("activation mail was never sent")
	}
}

func TestAuth_RegisterDuplicate(t *testing.T) {
	usecase, userRepo, _, _ := newAuthFixture()

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, "alice", "alice@signalshub.io").Return(true, nil)

	_, _, err := usecase.Register(context.Background(), &entities.CreateUserInput{
		Username: "alice",
		Email:    "alice@signalshub.io",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
	userRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestAuth_RegisterLosesInsertRace(t *testing.T) {
	usecase, userRepo, _, _ := newAuthFixture()

	userRepo.On("ExistsByUsernameOrEmail", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	userRepo.On("Create", mock.Anything, mock.Anything).Return(domainerrors.ErrAlreadyExists)

	_, _, err := usecase.Register(context.Background(), &entities.CreateUserInput{
		Username: "alice",
		Email:    "alice@signalshub.io",
		Password: "s3cret-pass",
	})
	require.ErrorIs(t, err, domainerrors.ErrAlreadyExists)
}

func TestAuth_ActivateRedeemsTokenAndEnablesAccount(t *testing.T) {
	usecase, userRepo, tokenRepo, _ := newAuthFixture()
	ctx := context.Background()

	userID := uuid.New()
	token := &entities.UserToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     "tok-1",
		Purpose:   entities.TokenPurposeActivation,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	tokenRepo.On("GetByValue", mock.Anything, "tok-1").Return(token, nil)
	tokenRepo.On("ConsumeByID", mock.Anything, token.ID).Return(nil)
	userRepo.On("Activate", mock.Anything, userID).Return(nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID, IsActive: true}, nil)

	user, err := usecase.Activate(ctx, "tok-1")
	require.NoError(t, err)
	require.True(t, user.IsActive)
	userRepo.AssertCalled(t, "Activate", mock.Anything, userID)
}

func TestAuth_ActivateRejectsResetToken(t *testing.T) {
	usecase, userRepo, tokenRepo, _ := newAuthFixture()

	token := &entities.UserToken{
		ID:        uuid.New(),
		UserID:    uuid.New(),
		Token:     "tok-1",
		Purpose:   entities.TokenPurposePasswordReset,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	tokenRepo.On("GetByValue", mock.Anything, "tok-1").Return(token, nil)

	_, err := usecase.Activate(context.Background(), "tok-1")
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	userRepo.AssertNotCalled(t, "Activate", mock.Anything, mock.Anything)
	tokenRepo.AssertNotCalled(t, "ConsumeByID", mock.Anything, mock.Anything)
}

func TestAuth_LoginByUsernameAndEmail(t *testing.T) {
	usecase, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := &entities.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@signalshub.io",
		PasswordHash: hash,
		IsActive:     true,
		Role:         entities.UserRoleUser,
	}

	userRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
	resp, err := usecase.Login(ctx, &entities.LoginInput{Identifier: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
	require.NotEmpty(t, resp.RefreshToken)
	require.Equal(t, user.ID, resp.User.ID)

	userRepo.On("GetByUsername", mock.Anything, "alice@signalshub.io").Return(nil, domainerrors.ErrNotFound)
	userRepo.On("GetByEmail", mock.Anything, "alice@signalshub.io").Return(user, nil)
	resp, err = usecase.Login(ctx, &entities.LoginInput{Identifier: "alice@signalshub.io", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.Equal(t, user.ID, resp.User.ID)
}

func TestAuth_LoginRejections(t *testing.T) {
	usecase, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := &entities.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hash,
		IsActive:     true,
	}

	userRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
	_, err = usecase.Login(ctx, &entities.LoginInput{Identifier: "alice", Password: "wrong"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)

	userRepo.On("GetByUsername", mock.Anything, "ghost").Return(nil, domainerrors.ErrNotFound)
	userRepo.On("GetByEmail", mock.Anything, "ghost").Return(nil, domainerrors.ErrNotFound)
	_, err = usecase.Login(ctx, &entities.LoginInput{Identifier: "ghost", Password: "s3cret-pass"})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuth_LoginAllowedWhileInactive(t *testing.T) {
	// Inactive accounts can authenticate; the active-account gate sits
	// in front of privileged operations instead.
	usecase, userRepo, _, _ := newAuthFixture()

	hash, err := crypto.HashPassword("s3cret-pass")
	require.NoError(t, err)
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(&entities.User{
		ID:           uuid.New(),
		Username:     "alice",
		PasswordHash: hash,
		IsActive:     false,
	}, nil)

	resp, err := usecase.Login(context.Background(), &entities.LoginInput{Identifier: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.AccessToken)
}

func TestAuth_RequestPasswordReset(t *testing.T) {
	usecase, userRepo, tokenRepo, mailer := newAuthFixture()
	ctx := context.Background()

	userID := uuid.New()
	userRepo.On("GetByEmail", mock.Anything, "alice@signalshub.io").Return(&entities.User{
		ID:    userID,
		Email: "alice@signalshub.io",
	}, nil)
	userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{ID: userID}, nil)

	var stored *entities.UserToken
	tokenRepo.On("Create", mock.Anything, mock.AnythingOfType("*entities.UserToken")).
		Run(func(args mock.Arguments) {
			stored = args.Get(1).(*entities.UserToken)
		}).
		Return(nil)

	mailSent := make(chan struct{})
	mailer.On("SendPasswordReset", mock.Anything, "alice@signalshub.io", mock.AnythingOfType("string")).
		Run(func(mock.Arguments) { close(mailSent) }).
		Return(nil)

	require.NoError(t, usecase.RequestPasswordReset(ctx, "alice@signalshub.io"))
	require.Equal(t, entities.TokenPurposePasswordReset, stored.Purpose)

	select {
	case <-mailSent:
	case <-time.After(2 * time.Second):
		t.Fatal("reset mail was never sent")
	}
}

func TestAuth_RequestPasswordResetUnknownEmailIsSilent(t *testing.T) {
	usecase, userRepo, tokenRepo, mailer := newAuthFixture()

	userRepo.On("GetByEmail", mock.Anything, "ghost@signalshub.io").Return(nil, domainerrors.ErrNotFound)

	require.NoError(t, usecase.RequestPasswordReset(context.Background(), "ghost@signalshub.io"))
	tokenRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	mailer.AssertNotCalled(t, "SendPasswordReset", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_ResetPassword(t *testing.T) {
	usecase, userRepo, tokenRepo, _ := newAuthFixture()
	ctx := context.Background()

	userID := uuid.New()
	token := &entities.UserToken{
		ID:        uuid.New(),
		UserID:    userID,
		Token:     "tok-1",
		Purpose:   entities.TokenPurposePasswordReset,
		ExpiresAt: time.Now().Add(time.Hour),
	}
	tokenRepo.On("GetByValue", mock.Anything, "tok-1").Return(token, nil)
	tokenRepo.On("ConsumeByID", mock.Anything, token.ID).Return(nil)

	var newHash string
	userRepo.On("UpdatePassword", mock.Anything, userID, mock.AnythingOfType("string")).
		Run(func(args mock.Arguments) {
			newHash = args.Get(2).(string)
		}).
		Return(nil)

	err := usecase.ResetPassword(ctx, &entities.ResetPasswordInput{Token: "tok-1", Password: "new-s3cret"})
	require.NoError(t, err)
	require.True(t, crypto.CheckPassword("new-s3cret", newHash))
}

func TestAuth_ResetPasswordTokenSingleUse(t *testing.T) {
	usecase, userRepo, tokenRepo, _ := newAuthFixture()

	// Second redemption: the row is already gone.
	tokenRepo.On("GetByValue", mock.Anything, "tok-1").Return(nil, domainerrors.ErrNotFound)

	err := usecase.ResetPassword(context.Background(), &entities.ResetPasswordInput{Token: "tok-1", Password: "new-s3cret"})
	require.ErrorIs(t, err, domainerrors.ErrNotFound)
	userRepo.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
}

func TestAuth_ChangePassword(t *testing.T) {
	usecase, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("old-s3cret")
	require.NoError(t, err)
	userID := uuid.New()
	userRepo.On("GetByID", mock.Anything, userID).Return(&entities.User{
		ID:           userID,
		PasswordHash: hash,
	}, nil)
	userRepo.On("UpdatePassword", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil)

	err = usecase.ChangePassword(ctx, userID, &entities.ChangePasswordInput{
		CurrentPassword: "old-s3cret",
		NewPassword:     "new-s3cret",
	})
	require.NoError(t, err)

	err = usecase.ChangePassword(ctx, userID, &entities.ChangePasswordInput{
		CurrentPassword: "wrong",
		NewPassword:     "new-s3cret",
	})
	require.ErrorIs(t, err, domainerrors.ErrInvalidCredentials)
}

func TestAuth_RefreshToken(t *testing.T) {
	usecase, userRepo, _, _ := newAuthFixture()
	ctx := context.Background()

	hash, err := crypto.HashPassword("s3cret-pass")
	require.NoError(t, err)
	user := &entities.User{
		ID:           uuid.New(),
		Username:     "alice",
		Email:        "alice@signalshub.io",
		PasswordHash: hash,
		IsActive:     true,
		Role:         entities.UserRoleUser,
	}
	userRepo.On("GetByUsername", mock.Anything, "alice").Return(user, nil)
	userRepo.On("GetByID", mock.Anything, user.ID).Return(user, nil)

	resp, err := usecase.Login(ctx, &entities.LoginInput{Identifier: "alice", Password: "s3cret-pass"})
	require.NoError(t, err)

	pair, err := usecase.RefreshToken(ctx, resp.RefreshToken)
	require.NoError(t, err)
	require.NotEmpty(t, pair.AccessToken)

	_, err = usecase.RefreshToken(ctx, "not-a-jwt")
	require.Error(t, err)
}
