package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"twitter_app/internal/api/middleware"
	"twitter_app/internal/app/service"
	"twitter_app/internal/common"
	"twitter_app/internal/domain/model"
	"twitter_app/internal/platform/config"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	userService      *service.UserService
	micropostService *service.MicropostService
	sessionService   *service.SessionService
}

func NewUserHandler(us *service.UserService, ms *service.MicropostService, ss *service.SessionService) *UserHandler {
	return &UserHandler{
		userService:      us,
		micropostService: ms,
		sessionService:   ss,
	}
}

func (h *UserHandler) RegisterRoutes(r chi.Router) {
	r.Get("/{userID}", h.show) // public profile

	r.Group(func(signedIn chi.Router) {
		signedIn.Use(middleware.RequireSignIn(h.sessionService))
		signedIn.Get("/", h.index)

		signedIn.Group(func(owner chi.Router) {
			owner.Use(middleware.RequireOwner)
			owner.Put("/{userID}", h.update)
		})

		signedIn.Group(func(admin chi.Router) {
			admin.Use(middleware.AdminOnly)
			admin.Delete("/{userID}", h.destroy)
		})
	})
}

func (h *UserHandler) show(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusNotFound, common.ErrNotFound.Error())
		return
	}

	user, err := h.userService.Get(r.Context(), id)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	posts, err := h.micropostService.Feed(r.Context(), user.ID, 1, config.AppConfig.DefaultPageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type ProfileResponse struct {
		User       *model.User       `json:"user"`
		Microposts *service.FeedPage `json:"microposts"`
	}
	common.RespondWithJSON(w, http.StatusOK, ProfileResponse{User: user, Microposts: posts})
}

func (h *UserHandler) index(w http.ResponseWriter, r *http.Request) {
	page, pageSize := pageParams(r)

	users, total, err := h.userService.List(r.Context(), page, pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	type PaginatedUsersResponse struct {
		Users    []model.User `json:"users"`
		Total    int          `json:"total"`
		Page     int          `json:"page"`
		PageSize int          `json:"page_size"`
	}
	common.RespondWithJSON(w, http.StatusOK, PaginatedUsersResponse{
		Users:    users,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *UserHandler) update(w http.ResponseWriter, r *http.Request) {
	// RequireOwner already checked the id matches the acting user.
	id, _ := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)

	var req service.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.UpdateProfile(r.Context(), id, req)
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			common.RespondWithValidationErrors(w, verrs)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	common.SetFlash(w, "Profile Updated!")
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *UserHandler) destroy(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetCurrentUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	targetID, err := strconv.ParseInt(chi.URLParam(r, "userID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusNotFound, common.ErrNotFound.Error())
		return
	}

	if err := h.userService.Destroy(r.Context(), current.ID, targetID); err != nil {
		if errors.Is(err, common.ErrForbidden) {
			// Admin self-deletion: deny, never proceed.
			common.RedirectWithNotice(w, r, "/", "You cannot delete yourself.")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	common.SetFlash(w, "User destroyed.")
	w.WriteHeader(http.StatusNoContent)
}

// pageParams clamps page/pageSize query values the way every listing
// endpoint expects them.
func pageParams(r *http.Request) (int, int) {
	page, _ := strconv.Atoi(r.URL.Query().Get("page"))
	if page <= 0 {
		page = 1
	}
	pageSize, _ := strconv.Atoi(r.URL.Query().Get("pageSize"))
	if pageSize <= 0 || pageSize > config.AppConfig.MaxPageSize {
		pageSize = config.AppConfig.DefaultPageSize
	}
	return page, pageSize
}
