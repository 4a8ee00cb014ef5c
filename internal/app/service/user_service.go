package service

import (
	"context"
	"errors"
	"fmt"
	"twitter_app/internal/common"
	"twitter_app/internal/common/security"
	"twitter_app/internal/domain/model"
	"twitter_app/internal/domain/repository"

	"github.com/gosimple/slug"
)

type UserService struct {
	userRepo repository.UserRepository
}

func NewUserService(userRepo repository.UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

type SignupRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type UpdateProfileRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password,omitempty"`
	PasswordConfirmation string `json:"password_confirmation,omitempty"`
}

// Signup validates all fields, assigns the one-time salt and stores the
// derived hash in place of the plaintext.
func (s *UserService) Signup(ctx context.Context, req SignupRequest) (*model.User, error) {
	if errs := model.ValidateUser(req.Name, req.Email, req.Password, req.PasswordConfirmation, true); len(errs) > 0 {
		return nil, errs
	}

	user := &model.User{
		Name:   req.Name,
		Email:  req.Email,
		Handle: slug.Make(req.Name),
		Salt:   security.MakeSalt(),
	}
	user.EncryptedPassword = security.Hash(user.Salt, req.Password)

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index makes the duplicate check race-free; the
		// violation surfaces here as a plain validation failure.
		if errors.Is(err, common.ErrConflict) {
			return nil, model.ValidationErrors{"Email has already been taken"}
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (s *UserService) Get(ctx context.Context, id int64) (*model.User, error) {
	return s.userRepo.FindByID(ctx, id)
}

func (s *UserService) List(ctx context.Context, page, pageSize int) ([]model.User, int, error) {
	offset := (page - 1) * pageSize
	return s.userRepo.List(ctx, pageSize, offset)
}

// UpdateProfile re-validates and saves. Password material is recomputed
// only when the payload carries a new password; a name/email-only edit
// leaves salt and encrypted_password untouched. A new password gets a fresh
// salt as well, which kills any outstanding remembered sessions.
func (s *UserService) UpdateProfile(ctx context.Context, id int64, req UpdateProfileRequest) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if errs := model.ValidateUser(req.Name, req.Email, req.Password, req.PasswordConfirmation, false); len(errs) > 0 {
		return nil, errs
	}

	user.Name = req.Name
	user.Email = req.Email
	user.Handle = slug.Make(req.Name)
	if req.Password != "" {
		user.Salt = security.MakeSalt()
		user.EncryptedPassword = security.Hash(user.Salt, req.Password)
	}

	if err := s.userRepo.Update(ctx, user); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, model.ValidationErrors{"Email has already been taken"}
		}
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	return user, nil
}

// Destroy removes the target user and, through the cascade, its microposts.
// The admin gate runs before this; the self-deletion guard is deliberately
// its own predicate here.
func (s *UserService) Destroy(ctx context.Context, actingUserID, targetID int64) error {
	if actingUserID == targetID {
		return fmt.Errorf("admins may not delete their own account: %w", common.ErrForbidden)
	}
	return s.userRepo.Delete(ctx, targetID)
}
