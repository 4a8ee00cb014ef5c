package service

import (
	"context"
	"errors"
	"fmt"
	"twitter_app/internal/common"
	"twitter_app/internal/common/security"
	"twitter_app/internal/domain/model"
	"twitter_app/internal/domain/repository"
)

type AuthService struct {
	userRepo repository.UserRepository
}

func NewAuthService(userRepo repository.UserRepository) *AuthService {
	return &AuthService{userRepo: userRepo}
}

// Authenticate verifies an email/password pair. An unknown email and a
// wrong password both come back as ErrUnauthorized; the caller cannot tell
// which half failed.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	if email == "" || password == "" {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized // Generic result for security
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if security.Hash(user.Salt, password) != user.EncryptedPassword {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}

// AuthenticateByRememberToken resolves a persistent session: the token's
// salt value must equal the user's current salt, so a password change
// (which rotates the salt) invalidates every remembered session.
func (s *AuthService) AuthenticateByRememberToken(ctx context.Context, userID int64, saltValue string) (*model.User, error) {
	if saltValue == "" {
		return nil, common.ErrUnauthorized
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if user.Salt != saltValue {
		return nil, common.ErrUnauthorized
	}
	return user, nil
}
