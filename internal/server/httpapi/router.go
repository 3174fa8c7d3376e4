package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/josuelns/authapi/internal/logging"
)

// RouterDeps bundles everything NewRouter needs.
type RouterDeps struct {
	Logger    logging.Logger
	Users     UserServiceInterface
	Avatars   AvatarServiceInterface
	JWTSecret []byte
	Metrics   *MetricsCollector
	Pinger    Pinger
}

// Pinger reports whether the backing store is reachable. *sql.DB satisfies
// it.
type Pinger interface {
	Ping() error
}

// NewRouter builds the full route table. The set of routes is fixed at
// startup; nothing is registered dynamically afterwards.
//
// Public:    POST /api/auth, POST /api/user, GET /api/user, GET /api/user/{id}
// Protected: PUT/DELETE /api/user/{id}, /api/user/{id}/avatar
func NewRouter(deps *RouterDeps) http.Handler {
	r := chi.NewRouter()

	r.Use(NewLoggingMiddleware(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}

	h := NewUserHandler(deps.Users, deps.Avatars)

	r.Post("/api/auth", h.Login)

	r.Route("/api/user", func(r chi.Router) {
		r.Post("/", h.Create)
		r.Get("/", h.List)
		r.Get("/{id}", h.Get)

		// mutations and avatar access require a bearer token
		r.Group(func(r chi.Router) {
			r.Use(NewAuthMiddleware(deps.JWTSecret))
			r.Put("/{id}", h.Update)
			r.Delete("/{id}", h.Delete)
			r.Post("/{id}/avatar", h.IssueAvatarUpload)
			r.Get("/{id}/avatar", h.GetAvatarDownload)
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if deps.Pinger != nil {
			if err := deps.Pinger.Ping(); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "database unreachable"})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	if deps.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", deps.Metrics.Handler())
	}

	return r
}
