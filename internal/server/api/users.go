package api

import (
	"net/http"
)

// Register creates an account and logs it in.
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.users.Register(r.Context(), req.Username, req.Email, req.Password)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, token, h.sessions.TTL())
	h.logger.Info(r.Context(), "user registered", "user_id", user.ID)

	respondWithJSON(w, http.StatusCreated, userEnvelope{
		Message: "User registered successfully",
		User:    toUserResponse(user),
	})
}

// Login verifies credentials and opens a session.
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	user, token, err := h.users.Login(r.Context(), req.Username, req.Password)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	h.setSessionCookie(w, token, h.sessions.TTL())

	respondWithJSON(w, http.StatusOK, userEnvelope{
		Message: "Login successful",
		User:    toUserResponse(user),
	})
}

// Logout ends the current session, if any. It always succeeds.
func (h *Handlers) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(sessionCookieName); err == nil && cookie.Value != "" {
		if err := h.sessions.Logout(r.Context(), cookie.Value); err != nil {
			h.logger.Warn(r.Context(), "logout failed",
				"request_id", requestIDFromContext(r.Context()),
				"error", err,
			)
		}
	}

	h.clearSessionCookie(w)
	respondWithJSON(w, http.StatusOK, messageResponse{Message: "Logged out successfully"})
}

// Me returns the logged-in user.
func (h *Handlers) Me(w http.ResponseWriter, r *http.Request) {
	userID, _ := userIDFromContext(r.Context())

	user, err := h.users.GetByID(r.Context(), userID)
	if err != nil {
		h.respondWithServiceError(w, r, err)
		return
	}

	respondWithJSON(w, http.StatusOK, userEnvelope{User: toUserResponse(user)})
}
