package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"twitter_app/internal/app/service"
	"twitter_app/internal/common"
	"twitter_app/internal/domain/model"

	"github.com/go-chi/chi/v5"
)

type AuthHandler struct {
	userService    *service.UserService
	authService    *service.AuthService
	sessionService *service.SessionService
}

func NewAuthHandler(userService *service.UserService, authService *service.AuthService, sessionService *service.SessionService) *AuthHandler {
	return &AuthHandler{
		userService:    userService,
		authService:    authService,
		sessionService: sessionService,
	}
}

func (h *AuthHandler) RegisterRoutes(r chi.Router) {
	r.Post("/signup", h.signup)
	r.Post("/signin", h.signin)
	r.Delete("/signout", h.signout)
}

type SigninRequest struct {
	Email      string `json:"email"`
	Password   string `json:"password"`
	RememberMe bool   `json:"remember_me"`
}

func (h *AuthHandler) signup(w http.ResponseWriter, r *http.Request) {
	var req service.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.userService.Signup(r.Context(), req)
	if err != nil {
		var verrs model.ValidationErrors
		if errors.As(err, &verrs) {
			common.RespondWithValidationErrors(w, verrs)
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	if err := h.sessionService.SignIn(w, user, false); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	common.SetFlash(w, "Welcome to the Twitter App!")
	common.RespondWithJSON(w, http.StatusCreated, user)
}

func (h *AuthHandler) signin(w http.ResponseWriter, r *http.Request) {
	var req SigninRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		common.RespondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}

	user, err := h.authService.Authenticate(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrUnauthorized) {
			// Unknown email and wrong password share this message.
			common.RespondWithError(w, http.StatusUnauthorized, "Invalid email/password combination")
			return
		}
		common.RespondWithError(w, common.HTTPStatusFromError(err), err.Error())
		return
	}

	if err := h.sessionService.SignIn(w, user, req.RememberMe); err != nil {
		common.RespondWithError(w, http.StatusInternalServerError, err.Error())
		return
	}
	common.RespondWithJSON(w, http.StatusOK, user)
}

func (h *AuthHandler) signout(w http.ResponseWriter, r *http.Request) {
	h.sessionService.SignOut(w)
	w.WriteHeader(http.StatusNoContent)
}
