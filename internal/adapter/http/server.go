// Package adapthttp implements the HTTP adapter for the application.
package adapthttp

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/cors"
	"github.com/rs/zerolog"

	"slidecraft/internal/ai"
	"slidecraft/internal/app"
	"slidecraft/internal/blocklist"
	"slidecraft/internal/search"
)

// Server is the driving HTTP adapter that routes requests to application
// services and upstream clients.
type Server struct {
	auth   *app.AuthService
	slides *app.SlideService
	files  *app.FileService
	ai     *ai.Client
	safety *blocklist.Checker
	wiki   *search.WikiClient
	images *search.ImageClient
	logger zerolog.Logger
}

// New creates a Server wired to the given services and clients.
func New(auth *app.AuthService, slides *app.SlideService, files *app.FileService, aiClient *ai.Client, safety *blocklist.Checker, wiki *search.WikiClient, images *search.ImageClient, logger zerolog.Logger) *Server {
	return &Server{
		auth:   auth,
		slides: slides,
		files:  files,
		ai:     aiClient,
		safety: safety,
		wiki:   wiki,
		images: images,
		logger: logger.With().Str("component", "http").Logger(),
	}
}

// Handler returns the root http.Handler for the application.
func (s *Server) Handler() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{"ok": true})
	}).Methods(http.MethodGet)
	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)

	r.HandleFunc("/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/auth/login", s.handleLogin).Methods(http.MethodPost)
	r.HandleFunc("/auth/logout", s.handleLogout).Methods(http.MethodPost)

	r.HandleFunc("/safety/check", s.handleSafetyCheck).Methods(http.MethodPost)
	r.HandleFunc("/safety/redirect", s.handleSafetyRedirect).Methods(http.MethodGet)

	r.HandleFunc("/search/images", s.handleSearchImages).Methods(http.MethodGet)
	r.HandleFunc("/search/titles", s.handleSearchTitles).Methods(http.MethodGet)
	r.HandleFunc("/search/imageinfo", s.handleImageInfo).Methods(http.MethodGet)

	// Websocket auth uses a query-parameter token, handled inside wsCollaborate.
	r.Handle("/ws/collaborate/{slide_id}", s.wsCollaborate())

	authed := r.NewRoute().Subrouter()
	authed.Use(s.requireAuth)

	authed.HandleFunc("/users/me", s.handleMe).Methods(http.MethodGet)
	authed.HandleFunc("/users/me/slides", s.handleMySlides).Methods(http.MethodGet)

	authed.HandleFunc("/slides", s.handleCreateSlide).Methods(http.MethodPost)
	authed.HandleFunc("/slides/{id}", s.handleGetSlide).Methods(http.MethodGet)
	authed.HandleFunc("/slides/{id}", s.handleDeleteSlide).Methods(http.MethodDelete)

	authed.HandleFunc("/upload/{file_type}", s.handleUpload).Methods(http.MethodPost)
	authed.HandleFunc("/files", s.handleListFiles).Methods(http.MethodGet)
	authed.HandleFunc("/files/{id}", s.handleGetFile).Methods(http.MethodGet)
	authed.HandleFunc("/files/{id}", s.handleDeleteFile).Methods(http.MethodDelete)

	authed.HandleFunc("/ai/ask", s.handleAsk).Methods(http.MethodPost)

	c := cors.New(cors.Options{
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodDelete},
		AllowedHeaders: []string{"Authorization", "Content-Type"},
	})

	return s.loggingMiddleware(c.Handler(r))
}
