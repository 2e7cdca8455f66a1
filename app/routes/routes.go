package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"quillpad/app/auth"
	"quillpad/app/controllers"
	"quillpad/app/middleware"

	"github.com/gorilla/mux"
)

// SetupRoutes defines the application's routes and returns a router.
//
// Read routes are public; everything that writes (and the caller-scoped
// my-posts listing) sits behind the session cookie.
func SetupRoutes(
	posts *controllers.PostController,
	comments *controllers.CommentController,
	authController *controllers.AuthController,
	sessions *auth.SessionManager,
	log *slog.Logger,
) *mux.Router {
	router := mux.NewRouter()

	router.Use(middleware.Logger(log))
	router.Use(middleware.Recoverer(log))
	router.Use(middleware.Metrics)

	router.NotFoundHandler = jsonError(http.StatusNotFound, "Not found")
	router.MethodNotAllowedHandler = jsonError(http.StatusMethodNotAllowed, "Method not allowed")

	api := router.PathPrefix("/api").Subrouter()
	protected := api.NewRoute().Subrouter()
	protected.Use(middleware.RequireAuth(sessions))

	// Session endpoints
	api.HandleFunc("/auth/session", authController.Login).Methods("POST")
	api.HandleFunc("/auth/session", authController.Logout).Methods("DELETE")

	// Posts API endpoints. my-posts must come before the {id} routes: post
	// ids are opaque strings and the literal path would otherwise match.
	protected.HandleFunc("/posts/my-posts", posts.MyPosts).Methods("GET")
	api.HandleFunc("/posts", posts.Index).Methods("GET")
	api.HandleFunc("/posts/{id}", posts.Show).Methods("GET")
	protected.HandleFunc("/posts", posts.Create).Methods("POST")
	protected.HandleFunc("/posts/{id}", posts.Edit).Methods("PUT")
	protected.HandleFunc("/posts/{id}", posts.React).Methods("PATCH")
	protected.HandleFunc("/posts/{id}", posts.Delete).Methods("DELETE")

	// Comments API endpoints
	api.HandleFunc("/posts/{id}/comments", comments.Index).Methods("GET")
	protected.HandleFunc("/posts/{id}/comments", comments.Create).Methods("POST")
	protected.HandleFunc("/posts/{id}/comments/{commentId}", comments.Delete).Methods("DELETE")
	protected.HandleFunc("/comments/{id}", comments.Delete).Methods("DELETE")

	return router
}

func jsonError(status int, msg string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]string{"error": msg})
	})
}

// Server wraps the API http.Server.
type Server struct {
	server *http.Server
	log    *slog.Logger
}

// NewServer creates the API server on address:port.
func NewServer(address string, port int, handler http.Handler, log *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf("%s:%d", address, port),
			Handler:      handler,
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
			IdleTimeout:  60 * time.Second,
		},
		log: log,
	}
}

// Run blocks serving requests until Shutdown is called.
func (s *Server) Run() error {
	s.log.Info("starting HTTP server", slog.String("address", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

// Shutdown drains in-flight requests.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
