package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
)

// EnsureAdminUseCase seeds the default admin account at startup so a fresh
// deployment always has someone who can review applications.
type EnsureAdminUseCase struct {
	userRepo port.UserRepository
	logger   *slog.Logger
}

// NewEnsureAdminUseCase wires dependencies.
func NewEnsureAdminUseCase(userRepo port.UserRepository, logger *slog.Logger) *EnsureAdminUseCase {
	return &EnsureAdminUseCase{userRepo: userRepo, logger: logger}
}

// Execute creates the admin account if no account with the given email
// exists. Seeding is idempotent across restarts.
func (uc *EnsureAdminUseCase) Execute(ctx context.Context, email, password string) error {
	_, err := uc.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil
	}
	if !errors.Is(err, port.ErrNotFound) {
		return fmt.Errorf("find admin: %w", err)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return fmt.Errorf("hash admin password: %w", err)
	}

	admin, err := model.NewUser("Administrator", email, hash, model.UserRoleAdmin, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("create admin: %w", err)
	}
	if err := uc.userRepo.Save(ctx, admin); err != nil {
		return fmt.Errorf("save admin: %w", err)
	}

	uc.logger.InfoContext(ctx, "default admin account created", "email", admin.Email())
	return nil
}
