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

	"github.com/go-chi/chi/v5"
)

type MicropostHandler struct {
	micropostService *service.MicropostService
}

func NewMicropostHandler(ms *service.MicropostService) *MicropostHandler {
	return &MicropostHandler{micropostService: ms}
}

// RegisterRoutes expects to be mounted behind the signed-in gate.
func (h *MicropostHandler) RegisterRoutes(r chi.Router) {
	r.Post("/", h.create)
	r.Delete("/{micropostID}", h.destroy)
}

type CreateMicropostRequest struct {
	Content string `json:"content"`
}

func (h *MicropostHandler) create(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetCurrentUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	var req CreateMicropostRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	post, err := h.micropostService.Create(r.Context(), current.ID, req.Content)
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			common.RespondWithValidationErrors(w, verrs)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusCreated, post)
}

func (h *MicropostHandler) destroy(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetCurrentUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "micropostID"), 10, 64)
	if err != nil {
		common.RespondWithError(w, http.StatusNotFound, common.ErrNotFound.Error())
		return
	}

	if err := h.micropostService.Destroy(r.Context(), current.ID, id); err != nil {
		if errors.Is(err, common.ErrForbidden) {
			common.RedirectWithNotice(w, r, "/", "")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Feed serves the signed-in user's own microposts, newest first.
func (h *MicropostHandler) Feed(w http.ResponseWriter, r *http.Request) {
	current, ok := middleware.GetCurrentUserFromContext(r.Context())
	if !ok {
		common.RespondWithError(w, http.StatusUnauthorized, "Missing user context")
		return
	}

	page, pageSize := pageParams(r)
	feed, err := h.micropostService.Feed(r.Context(), current.ID, page, pageSize)
	if err != nil {
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, feed)
}
