package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/Abhaykauahal21/LoanFlow/internal/application/dto"
	"github.com/Abhaykauahal21/LoanFlow/internal/domain/port"
	"github.com/Abhaykauahal21/LoanFlow/pkg/auth"
)

// ErrInvalidCredentials is returned for unknown emails and wrong passwords
// alike, so a caller cannot probe which accounts exist.
var ErrInvalidCredentials = errors.New("invalid credentials")

// LoginUserUseCase authenticates accounts by email and password.
type LoginUserUseCase struct {
	userRepo port.UserRepository
	tokens   TokenIssuer
}

// NewLoginUserUseCase wires dependencies.
func NewLoginUserUseCase(userRepo port.UserRepository, tokens TokenIssuer) *LoginUserUseCase {
	return &LoginUserUseCase{userRepo: userRepo, tokens: tokens}
}

// Execute verifies the credentials and returns a signed token.
func (uc *LoginUserUseCase) Execute(ctx context.Context, req dto.LoginRequest) (dto.AuthResponse, error) {
	user, err := uc.userRepo.FindByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, port.ErrNotFound) {
			return dto.AuthResponse{}, ErrInvalidCredentials
		}
		return dto.AuthResponse{}, fmt.Errorf("find user: %w", err)
	}

	if err := auth.CheckPassword(user.PasswordHash(), req.Password); err != nil {
		return dto.AuthResponse{}, ErrInvalidCredentials
	}

	token, err := uc.tokens.GenerateToken(user.ID(), user.Email(), []string{user.Role()})
	if err != nil {
		return dto.AuthResponse{}, fmt.Errorf("issue token: %w", err)
	}

	return dto.AuthResponse{Token: token, User: toUserResponse(user)}, nil
}
