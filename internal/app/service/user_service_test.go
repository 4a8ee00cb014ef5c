package service

import (
	"context"
	"testing"
	"twitter_app/internal/common"
	"twitter_app/internal/common/security"
	"twitter_app/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Name:                 "New User",
		Email:                "user@example.com",
		Password:             "foobar",
		PasswordConfirmation: "foobar",
	}
}

func TestSignup(t *testing.T) {
	ctx := context.Background()

	t.Run("assigns salt and derived hash", func(t *testing.T) {
		users := newFakeUserRepo()
		user, err := NewUserService(users).Signup(ctx, validSignup())
		require.NoError(t, err)

		assert.NotZero(t, user.ID)
		assert.NotEmpty(t, user.Salt)
		assert.Equal(t, security.Hash(user.Salt, "foobar"), user.EncryptedPassword)
		assert.Equal(t, "new-user", user.Handle)
		assert.False(t, user.Admin)
	})

	t.Run("rejects invalid fields without writing", func(t *testing.T) {
		users := newFakeUserRepo()
		req := validSignup()
		req.Name = ""
		_, err := NewUserService(users).Signup(ctx, req)

		var verrs model.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "Name can't be blank")
		assert.Empty(t, users.users, "no partial write on validation failure")
	})

	t.Run("duplicate email up to case becomes a validation failure", func(t *testing.T) {
		users := newFakeUserRepo()
		svc := NewUserService(users)
		_, err := svc.Signup(ctx, validSignup())
		require.NoError(t, err)

		req := validSignup()
		req.Email = "USER@EXAMPLE.COM"
		_, err = svc.Signup(ctx, req)

		var verrs model.ValidationErrors
		require.ErrorAs(t, err, &verrs)
		assert.Contains(t, verrs, "Email has already been taken")
		assert.Len(t, users.users, 1)
	})
}

func TestUpdateProfileKeepsPasswordHash(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewUserService(users)

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	// Name/email-only edit: salt and encrypted_password stay untouched.
	updated, err := svc.UpdateProfile(ctx, created.ID, UpdateProfileRequest{
		Name:  "Renamed User",
		Email: "renamed@example.com",
	})
	require.NoError(t, err)

	assert.Equal(t, "Renamed User", updated.Name)
	assert.Equal(t, created.Salt, updated.Salt)
	assert.Equal(t, created.EncryptedPassword, updated.EncryptedPassword)
}

func TestUpdatePasswordRotatesSalt(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewUserService(users)

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	updated, err := svc.UpdateProfile(ctx, created.ID, UpdateProfileRequest{
		Name:                 created.Name,
		Email:                created.Email,
		Password:             "newsecret",
		PasswordConfirmation: "newsecret",
	})
	require.NoError(t, err)

	assert.NotEqual(t, created.Salt, updated.Salt, "salt rotates with the password")
	assert.Equal(t, security.Hash(updated.Salt, "newsecret"), updated.EncryptedPassword)

	// Old remembered sessions are now invalid.
	auth := NewAuthService(users)
	_, err = auth.AuthenticateByRememberToken(ctx, created.ID, created.Salt)
	assert.ErrorIs(t, err, common.ErrUnauthorized)

	// And the new password authenticates.
	user, err := auth.Authenticate(ctx, created.Email, "newsecret")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)
}

func TestUpdateProfileValidation(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewUserService(users)

	created, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	t.Run("short password on edit is rejected", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, created.ID, UpdateProfileRequest{
			Name:                 created.Name,
			Email:                created.Email,
			Password:             "short",
			PasswordConfirmation: "short",
		})
		var verrs model.ValidationErrors
		require.ErrorAs(t, err, &verrs)
	})

	t.Run("unknown user", func(t *testing.T) {
		_, err := svc.UpdateProfile(ctx, 9999, UpdateProfileRequest{Name: "x", Email: "x@y.com"})
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestDestroy(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewUserService(users)

	admin, err := svc.Signup(ctx, SignupRequest{
		Name: "Admin", Email: "admin@example.com",
		Password: "foobar", PasswordConfirmation: "foobar",
	})
	require.NoError(t, err)
	target, err := svc.Signup(ctx, validSignup())
	require.NoError(t, err)

	t.Run("self-deletion is refused", func(t *testing.T) {
		err := svc.Destroy(ctx, admin.ID, admin.ID)
		assert.ErrorIs(t, err, common.ErrForbidden)
		_, err = users.FindByID(ctx, admin.ID)
		assert.NoError(t, err, "admin still exists")
	})

	t.Run("removes the target", func(t *testing.T) {
		require.NoError(t, svc.Destroy(ctx, admin.ID, target.ID))
		_, err := users.FindByID(ctx, target.ID)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})

	t.Run("unknown target", func(t *testing.T) {
		err := svc.Destroy(ctx, admin.ID, 9999)
		assert.ErrorIs(t, err, common.ErrNotFound)
	})
}

func TestList(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepo()
	svc := NewUserService(users)

	for _, req := range []SignupRequest{
		{Name: "A", Email: "a@example.com", Password: "foobar", PasswordConfirmation: "foobar"},
		{Name: "B", Email: "b@example.com", Password: "foobar", PasswordConfirmation: "foobar"},
		{Name: "C", Email: "c@example.com", Password: "foobar", PasswordConfirmation: "foobar"},
	} {
		_, err := svc.Signup(ctx, req)
		require.NoError(t, err)
	}

	page, total, err := svc.List(ctx, 1, 2)
	require.NoError(t, err)
	assert.Equal(t, 3, total)
	assert.Len(t, page, 2)

	page, _, err = svc.List(ctx, 2, 2)
	require.NoError(t, err)
	assert.Len(t, page, 1)
}
