package usecases

import (
	"context"
	"errors"
	"fmt"

	"signals-hub.backend/internal/domain/entities"
	domainerrors "signals-hub.backend/internal/domain/errors"
	"signals-hub.backend/internal/domain/repositories"
	"signals-hub.backend/pkg/utils"
)

// RegistrarUsecase implements role administration. Every mutation runs
// behind the registrar permission gate.
type RegistrarUsecase struct {
	userRepo repositories.UserRepository
	guard    *GuardUsecase
}

// NewRegistrarUsecase creates a new registrar usecase
func NewRegistrarUsecase(userRepo repositories.UserRepository, guard *GuardUsecase) *RegistrarUsecase {
	return &RegistrarUsecase{userRepo: userRepo, guard: guard}
}

// SetRole changes the role of the user behind targetEmail. Registrars
// cannot change their own role, and assigning a role the target already
// holds is rejected rather than silently accepted.
func (u *RegistrarUsecase) SetRole(ctx context.Context, principal *entities.Principal, targetEmail string, role entities.UserRole) (*entities.User, error) {
	caller, err := u.guard.Require(ctx, principal, entities.PermissionRegistrar)
	if err != nil {
		return nil, err
	}

	if !role.Valid() {
		return nil, domainerrors.BadRequest(fmt.Sprintf("Invalid role %s", role))
	}

	target, err := u.userRepo.GetByEmail(ctx, targetEmail)
	if err != nil {
		if errors.Is(err, domainerrors.ErrNotFound) {
			return nil, domainerrors.NotFound(fmt.Sprintf("User with mail %s does not exist", targetEmail))
		}
		return nil, err
	}

	if target.ID == caller.ID {
		return nil, domainerrors.Forbidden("You can't change role of self")
	}
	if target.Role == role {
		return nil, domainerrors.Forbidden(fmt.Sprintf("User already has role %s", role))
	}

	if err := u.userRepo.UpdateRole(ctx, target.ID, role); err != nil {
		return nil, err
	}
	target.Role = role
	return target, nil
}

// GrantProvider promotes the target to provider
func (u *RegistrarUsecase) GrantProvider(ctx context.Context, principal *entities.Principal, targetEmail string) (*entities.User, error) {
	return u.SetRole(ctx, principal, targetEmail, entities.UserRoleProvider)
}

// GrantRegistrar promotes the target to registrar
func (u *RegistrarUsecase) GrantRegistrar(ctx context.Context, principal *entities.Principal, targetEmail string) (*entities.User, error) {
	return u.SetRole(ctx, principal, targetEmail, entities.UserRoleRegistrar)
}

// DropRole demotes the target back to a plain user
func (u *RegistrarUsecase) DropRole(ctx context.Context, principal *entities.Principal, targetEmail string) (*entities.User, error) {
	return u.SetRole(ctx, principal, targetEmail, entities.UserRoleUser)
}

// ListByRole returns a page of users holding the given role
func (u *RegistrarUsecase) ListByRole(ctx context.Context, principal *entities.Principal, role entities.UserRole, page, limit int) ([]*entities.User, *utils.PaginationMeta, error) {
	if _, err := u.guard.Require(ctx, principal, entities.PermissionRegistrar); err != nil {
		return nil, nil, err
	}
	if !role.Valid() {
		return nil, nil, domainerrors.BadRequest(fmt.Sprintf("Invalid role %s", role))
	}

	params := utils.GetPaginationParams(page, limit)
	users, total, err := u.userRepo.ListByRole(ctx, role, params)
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	return users, &meta, nil
}

// ListUsers returns a page over all users
func (u *RegistrarUsecase) ListUsers(ctx context.Context, principal *entities.Principal, page, limit int) ([]*entities.User, *utils.PaginationMeta, error) {
	if _, err := u.guard.Require(ctx, principal, entities.PermissionRegistrar); err != nil {
		return nil, nil, err
	}

	params := utils.GetPaginationParams(page, limit)
	users, total, err := u.userRepo.List(ctx, params)
	if err != nil {
		return nil, nil, err
	}
	meta := utils.CalculateMeta(total, params.Page, params.Limit)
	return users, &meta, nil
}
