package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/common"
)

const sessionCookieName = common.SessionCookieName

type errorResponse struct {
	Error string `json:"error"`
}

type messageResponse struct {
	Message string `json:"message"`
}

func respondWithJSON(w http.ResponseWriter, code int, payload any) {
	response, err := json.Marshal(payload)
	if err != nil {
		code = http.StatusInternalServerError
		response = []byte(`{"error":"Internal server error"}`)
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(response)
}

func respondWithError(w http.ResponseWriter, code int, msg string) {
	respondWithJSON(w, code, errorResponse{Error: msg})
}

// respondWithServiceError maps an error kind to its status code. Errors that
// carry no kind are logged and reported as a generic 500.
func (h *Handlers) respondWithServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, common.ErrorValidation), errors.Is(err, common.ErrorAlreadyExists):
		respondWithError(w, http.StatusBadRequest, common.Message(err, "Invalid request"))
	case errors.Is(err, common.ErrorUnauthorized):
		respondWithError(w, http.StatusUnauthorized, common.Message(err, "Not authenticated"))
	case errors.Is(err, common.ErrorNotFound):
		respondWithError(w, http.StatusNotFound, common.Message(err, "Not found"))
	default:
		h.logger.Error(r.Context(), "request failed",
			"request_id", requestIDFromContext(r.Context()),
			"method", r.Method,
			"path", r.URL.Path,
			"error", err,
		)
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

// decodeJSON reads the request body into v. On failure it answers 400 and
// returns false.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid JSON")
		return false
	}
	return true
}
