package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/model"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
)

// TokenIssuer signs access tokens for authenticated accounts.
type TokenIssuer interface {
	GenerateToken(userID, email string, roles []string) (string, error)
}

// RegisterUserUseCase creates customer accounts.
type RegisterUserUseCase struct {
	userRepo  port.UserRepository
	publisher port.EventPublisher
	tokens    TokenIssuer
}

// NewRegisterUserUseCase wires dependencies.
func NewRegisterUserUseCase(
	userRepo port.UserRepository,
	publisher port.EventPublisher,
	tokens TokenIssuer,
) *RegisterUserUseCase {
	return &RegisterUserUseCase{userRepo: userRepo, publisher: publisher, tokens: tokens}
}

// Execute registers a new customer account and returns a signed token.
func (uc *RegisterUserUseCase) Execute(ctx context.Context, req dto.RegisterRequest) (dto.AuthResponse, error) {
	now := time.Now().UTC()

	if len(req.Password) < 8 {
		return dto.AuthResponse{}, fmt.Errorf("%w: password must be at least 8 characters", model.ErrInvalidInput)
	}

	// 1. Hash the password.
	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("hash password: %w", err)
	}

	// 2. Create the account aggregate.
	user, err := model.NewUser(req.Name, req.Email, hash, model.UserRoleCustomer, now)
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("create user: %w", err)
	}

	// 3. Persist. The repository enforces email uniqueness.
	if err := uc.userRepo.Save(ctx, user); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("save user: %w", err)
	}

	// 4. Publish domain events.
	if err := uc.publisher.Publish(ctx, user.DomainEvents()...); err != nil {
		return dto.AuthResponse{}, fmt.Errorf("publish events: %w", err)
	}

	// 5. Issue a token so registration doubles as login.
	token, err := uc.tokens.GenerateToken(user.ID(), user.Email(), []string{user.Role()})
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
