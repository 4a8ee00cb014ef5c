package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"
	"twitter_app/internal/app/service"
	"twitter_app/internal/common"
	"twitter_app/internal/common/security"
	"twitter_app/internal/domain/model"
	"twitter_app/internal/platform/config"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	config.Load()
	security.InitJWT()
	os.Exit(m.Run())
}

type stubUserRepo struct {
	users map[int64]*model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepo) FindByID(ctx context.Context, id int64) (*model.User, error) {
	user, ok := s.users[id]
	if !ok {
		return nil, common.ErrNotFound
	}
	cp := *user
	return &cp, nil
}
func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	for _, user := range s.users {
		if strings.EqualFold(user.Email, email) {
			cp := *user
			return &cp, nil
		}
	}
	return nil, common.ErrNotFound
}
func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error { return nil }
func (s *stubUserRepo) Delete(ctx context.Context, id int64) error         { return nil }
func (s *stubUserRepo) List(ctx context.Context, limit, offset int) ([]model.User, int, error) {
	return nil, 0, nil
}

func gateTestRouter(sessions *service.SessionService, handlerRan *bool) http.Handler {
	r := chi.NewRouter()
	r.Use(jwtauth.Verify(security.TokenAuth, security.TokenFromSessionCookie))

	ok := func(w http.ResponseWriter, r *http.Request) {
		*handlerRan = true
		w.WriteHeader(http.StatusOK)
	}

	r.Group(func(signedIn chi.Router) {
		signedIn.Use(RequireSignIn(sessions))
		signedIn.Group(func(owner chi.Router) {
			owner.Use(RequireOwner)
			owner.Put("/users/{userID}", ok)
		})
		signedIn.Group(func(admin chi.Router) {
			admin.Use(AdminOnly)
			admin.Delete("/users/{userID}", ok)
		})
	})
	return r
}

func signedInRequest(t *testing.T, method, target string, user *model.User) *http.Request {
	t.Helper()
	req := httptest.NewRequest(method, target, nil)
	if user != nil {
		token, err := security.GenerateSessionToken(user.ID, user.Salt, time.Hour)
		require.NoError(t, err)
		req.AddCookie(&http.Cookie{Name: security.SessionCookieName, Value: token})
	}
	return req
}

func TestAccessGates(t *testing.T) {
	alice := &model.User{ID: 1, Name: "Alice", Email: "alice@example.com", Salt: "alice-salt"}
	bob := &model.User{ID: 2, Name: "Bob", Email: "bob@example.com", Salt: "bob-salt"}
	root := &model.User{ID: 3, Name: "Root", Email: "root@example.com", Salt: "root-salt", Admin: true}

	repo := &stubUserRepo{users: map[int64]*model.User{1: alice, 2: bob, 3: root}}
	sessions := service.NewSessionService(service.NewAuthService(repo))

	tests := []struct {
		name         string
		method       string
		target       string
		actor        *model.User
		wantStatus   int
		wantLocation string
		wantRan      bool
	}{
		{
			name:   "unauthenticated edit redirects to sign-in",
			method: http.MethodPut, target: "/users/1", actor: nil,
			wantStatus: http.StatusSeeOther, wantLocation: "/signin",
		},
		{
			name:   "non-owner edit redirects to root",
			method: http.MethodPut, target: "/users/1", actor: bob,
			wantStatus: http.StatusSeeOther, wantLocation: "/",
		},
		{
			name:   "owner edit passes",
			method: http.MethodPut, target: "/users/1", actor: alice,
			wantStatus: http.StatusOK, wantRan: true,
		},
		{
			name:   "unauthenticated delete redirects to sign-in",
			method: http.MethodDelete, target: "/users/2", actor: nil,
			wantStatus: http.StatusSeeOther, wantLocation: "/signin",
		},
		{
			name:   "non-admin delete redirects to root",
			method: http.MethodDelete, target: "/users/2", actor: alice,
			wantStatus: http.StatusSeeOther, wantLocation: "/",
		},
		{
			name:   "admin delete passes the gate",
			method: http.MethodDelete, target: "/users/2", actor: root,
			wantStatus: http.StatusOK, wantRan: true,
		},
		{
			name:   "stale session salt is not signed in",
			method: http.MethodPut, target: "/users/1",
			actor:      &model.User{ID: 1, Salt: "old-salt"},
			wantStatus: http.StatusSeeOther, wantLocation: "/signin",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerRan := false
			router := gateTestRouter(sessions, &handlerRan)

			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, signedInRequest(t, tt.method, tt.target, tt.actor))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantLocation != "" {
				assert.Equal(t, tt.wantLocation, rec.Header().Get("Location"))
			}
			assert.Equal(t, tt.wantRan, handlerRan, "gate must short-circuit before the handler")
		})
	}
}

func TestRequireSignInSetsNotice(t *testing.T) {
	repo := &stubUserRepo{users: map[int64]*model.User{}}
	sessions := service.NewSessionService(service.NewAuthService(repo))

	handlerRan := false
	router := gateTestRouter(sessions, &handlerRan)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/users/1", nil))

	req := httptest.NewRequest(http.MethodGet, "/signin", nil)
	for _, cookie := range rec.Result().Cookies() {
		req.AddCookie(cookie)
	}
	notice := common.PopFlash(httptest.NewRecorder(), req)
	assert.Equal(t, "Please sign in.", notice)
}

func TestGetCurrentUserFromContext(t *testing.T) {
	user := &model.User{ID: 7}
	ctx := context.WithValue(context.Background(), CurrentUserCtxKey, user)

	got, ok := GetCurrentUserFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, int64(7), got.ID)

	_, ok = GetCurrentUserFromContext(context.Background())
	assert.False(t, ok)
}
