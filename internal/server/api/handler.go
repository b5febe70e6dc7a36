// Package api exposes the TaskTracker JSON API over HTTP.
//
// Each handler decodes and validates its input, delegates to a service and
// maps the result (or the error kind from internal/common) to a status code
// and a JSON body. Error bodies always have the form {"error": "<message>"}.
package api

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/tasktracker/internal/logging"
	"github.com/dmitrijs2005/tasktracker/internal/server/services"
	"github.com/gorilla/mux"
)

// maxBodyBytes bounds request bodies.
const maxBodyBytes = 1 << 20

// Handlers holds the services the HTTP endpoints delegate to.
type Handlers struct {
	users        *services.UserService
	sessions     *services.SessionService
	tasks        *services.TaskService
	logger       logging.Logger
	cookieSecure bool
}

// NewHandlers constructs Handlers. cookieSecure sets the Secure attribute on
// the session cookie.
func NewHandlers(us *services.UserService, ss *services.SessionService, ts *services.TaskService, l logging.Logger, cookieSecure bool) *Handlers {
	return &Handlers{
		users:        us,
		sessions:     ss,
		tasks:        ts,
		logger:       l.With("module", "http_api"),
		cookieSecure: cookieSecure,
	}
}

// Router wires every endpoint into a gorilla/mux router. Request logging
// wraps all routes; the task and current-user routes also require a session.
func (h *Handlers) Router() *mux.Router {
	router := mux.NewRouter()
	router.Use(h.requestLogger)
	router.NotFoundHandler = h.requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusNotFound, "Not found")
	}))
	router.MethodNotAllowedHandler = h.requestLogger(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		respondWithError(w, http.StatusMethodNotAllowed, "Method not allowed")
	}))

	api := router.PathPrefix("/api").Subrouter()
	api.HandleFunc("/register", h.Register).Methods(http.MethodPost)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/logout", h.Logout).Methods(http.MethodPost)

	private := api.NewRoute().Subrouter()
	private.Use(h.requireSession)
	private.HandleFunc("/me", h.Me).Methods(http.MethodGet)
	private.HandleFunc("/tasks", h.ListTasks).Methods(http.MethodGet)
	private.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	private.HandleFunc("/tasks/{id:[0-9]+}", h.GetTask).Methods(http.MethodGet)
	private.HandleFunc("/tasks/{id:[0-9]+}", h.UpdateTask).Methods(http.MethodPut)
	private.HandleFunc("/tasks/{id:[0-9]+}", h.DeleteTask).Methods(http.MethodDelete)

	return router
}

func (h *Handlers) setSessionCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		Expires:  time.Now().Add(ttl),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (h *Handlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
