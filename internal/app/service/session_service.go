package service

import (
	"context"
	"fmt"
	"net/http"
	"twitter_app/internal/common/security"
	"twitter_app/internal/domain/model"
	"twitter_app/internal/platform/config"

	"github.com/go-chi/jwtauth/v5"
)

// SessionService binds a client to a user across requests via the signed
// session cookie. None of its operations treat "not signed in" as an error;
// absence is a normal state.
type SessionService struct {
	auth *AuthService
}

func NewSessionService(auth *AuthService) *SessionService {
	return &SessionService{auth: auth}
}

// SignIn commits the exchange to the user. The only side effect is the
// cookie on this response; no server-side state is touched.
func (s *SessionService) SignIn(w http.ResponseWriter, user *model.User, remember bool) error {
	validity := config.AppConfig.SessionExp
	if remember {
		validity = config.AppConfig.RememberExp
	}
	token, err := security.GenerateSessionToken(user.ID, user.Salt, validity)
	if err != nil {
		return fmt.Errorf("failed to generate session token: %w", err)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     security.SessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(validity.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// CurrentUser resolves the bound user id to a live record, re-checking the
// salt claim against the store. Returns nil when there is no valid session
// or the user no longer exists.
func (s *SessionService) CurrentUser(ctx context.Context) *model.User {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return nil
	}
	userID, err := security.GetUserIDFromClaims(claims)
	if err != nil {
		return nil
	}
	saltValue, err := security.GetSaltFromClaims(claims)
	if err != nil {
		return nil
	}
	user, err := s.auth.AuthenticateByRememberToken(ctx, userID, saltValue)
	if err != nil {
		return nil
	}
	return user
}

// SignOut clears the binding. Safe to call when not signed in.
func (s *SessionService) SignOut(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     security.SessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *SessionService) IsSignedIn(ctx context.Context) bool {
	return s.CurrentUser(ctx) != nil
}

func (s *SessionService) IsCurrentUser(ctx context.Context, candidate *model.User) bool {
	if candidate == nil {
		return false
	}
	user := s.CurrentUser(ctx)
	return user != nil && user.ID == candidate.ID
}
