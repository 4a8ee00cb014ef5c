package middleware

import (
	"context"
	"net/http"
	"strconv"
	"twitter_app/internal/app/service"
	"twitter_app/internal/common"
	"twitter_app/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type contextKey string

const CurrentUserCtxKey contextKey = "currentUser"

// RequireSignIn is the signed-in gate. It resolves the session's user once,
// up front; handlers behind it read the user from the request context.
// Unauthenticated requests are redirected to the sign-in page with a
// pending notice, before any handler logic runs.
func RequireSignIn(sessions *service.SessionService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := sessions.CurrentUser(r.Context())
			if user == nil {
				common.RedirectWithNotice(w, r, "/signin", "Please sign in.")
				return
			}
			ctx := context.WithValue(r.Context(), CurrentUserCtxKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireOwner is the ownership gate for profile actions: the acting user
// must be the {userID} in the URL. A mismatch redirects to the root without
// revealing whether the target exists.
func RequireOwner(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetCurrentUserFromContext(r.Context())
		if !ok {
			common.RedirectWithNotice(w, r, "/signin", "Please sign in.")
			return
		}
		targetID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
		if err != nil || user.ID != targetID {
			common.RedirectWithNotice(w, r, "/", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// AdminOnly gates destructive user actions. The self-deletion guard is not
// here; it lives with the destroy operation itself.
func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, ok := GetCurrentUserFromContext(r.Context())
		if !ok || !user.Admin {
			common.RedirectWithNotice(w, r, "/", "")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Helper to get the resolved user from context
func GetCurrentUserFromContext(ctx context.Context) (*model.User, bool) {
	user, ok := ctx.Value(CurrentUserCtxKey).(*model.User)
	return user, ok && user != nil
}
