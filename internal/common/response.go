package common

import (
	"encoding/json"
	"net/http"
	"net/url"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

// ValidationResponse carries the per-field message list for a rejected
// create/update.
type ValidationResponse struct {
	Errors []string `json:"errors"`
}

func RespondWithError(w http.ResponseWriter, code int, message string) {
	RespondWithJSON(w, code, ErrorResponse{Error: message})
}

func RespondWithValidationErrors(w http.ResponseWriter, messages []string) {
	RespondWithJSON(w, http.StatusUnprocessableEntity, ValidationResponse{Errors: messages})
}

func RespondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	response, err := json.Marshal(payload)
	if err != nil {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error": "Failed to marshal JSON response"}`))
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(response)
}

const flashCookieName = "flash_notice"

// SetFlash stores a one-shot notice for the next request. The notice lives
// in its own cookie rather than any server-side state, so it stays scoped
// to the requesting client.
func SetFlash(w http.ResponseWriter, notice string) {
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    url.QueryEscape(notice),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// PopFlash returns the pending notice, if any, and clears it.
func PopFlash(w http.ResponseWriter, r *http.Request) string {
	cookie, err := r.Cookie(flashCookieName)
	if err != nil {
		return ""
	}
	http.SetCookie(w, &http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	notice, err := url.QueryUnescape(cookie.Value)
	if err != nil {
		return ""
	}
	return notice
}

// RedirectWithNotice is how a failed access gate resolves: a safe redirect
// plus a pending one-shot notice, never an error surfaced to the caller.
func RedirectWithNotice(w http.ResponseWriter, r *http.Request, location, notice string) {
	if notice != "" {
		SetFlash(w, notice)
	}
	http.Redirect(w, r, location, http.StatusSeeOther)
}
