package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/google/uuid"
)

type ctxKey string

const (
	requestIDKey ctxKey = "requestID"
	userIDKey    ctxKey = "userID"
)

func requestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey).(string)
	return id
}

func userIDFromContext(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

type statusRecorder struct {
	http.ResponseWriter
	status int
	size   int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (r *statusRecorder) Write(b []byte) (int, error) {
	if r.status == 0 {
		r.status = http.StatusOK
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	return n, err
}

// requestLogger tags each request with an id (taken from X-Request-Id when
// the caller supplies one) and logs it once the response is written.
func (h *Handlers) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requestIDFromContext(r.Context()) != "" {
			next.ServeHTTP(w, r)
			return
		}

		start := time.Now()

		requestID := r.Header.Get(common.RequestIDHeaderName)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		w.Header().Set(common.RequestIDHeaderName, requestID)

		rec := &statusRecorder{ResponseWriter: w}
		ctx := context.WithValue(r.Context(), requestIDKey, requestID)
		next.ServeHTTP(rec, r.WithContext(ctx))

		if rec.status == 0 {
			rec.status = http.StatusOK
		}
		h.logger.Info(ctx, "http request",
			"request_id", requestID,
			"method", r.Method,
			"path", r.URL.Path,
			"status", rec.status,
			"size", rec.size,
			"duration", time.Since(start),
		)
	})
}

// requireSession resolves the session cookie and stores the user id in the
// request context. A renewed session re-sets the cookie before the handler
// runs.
func (h *Handlers) requireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(sessionCookieName)
		if err != nil || cookie.Value == "" {
			respondWithError(w, http.StatusUnauthorized, "Not authenticated")
			return
		}

		res, err := h.sessions.Resolve(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, common.ErrorUnauthorized) {
				h.clearSessionCookie(w)
				respondWithError(w, http.StatusUnauthorized, "Not authenticated")
				return
			}
			h.respondWithServiceError(w, r, err)
			return
		}

		if res.Token != "" {
			h.setSessionCookie(w, res.Token, h.sessions.TTL())
		}

		ctx := context.WithValue(r.Context(), userIDKey, res.UserID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
