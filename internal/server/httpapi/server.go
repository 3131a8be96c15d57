// Package httpapi exposes the service layer as an HTTP/JSON API: route
// dispatch, request parsing, response shaping, and the CORS policy.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/dmitrijs2005/timekeeper/internal/logging"
	"github.com/dmitrijs2005/timekeeper/internal/server/models"
)

// UserService is the part of the service layer the HTTP boundary needs for
// authentication and profile management.
type UserService interface {
	Register(ctx context.Context, username, email, password string) (*models.User, string, error)
	Login(ctx context.Context, username, password string) (*models.User, string, error)
	VerifyToken(ctx context.Context, token string) (*models.User, error)
	ChangePassword(ctx context.Context, user *models.User, oldPassword, newPassword string) error
	UpdateProfile(ctx context.Context, user *models.User, username, email string) (*models.User, error)
}

type RecordService interface {
	Create(ctx context.Context, userID int64, startTime, endTime string, duration *int64) (*models.Record, error)
	List(ctx context.Context, userID int64) ([]*models.Record, error)
	Delete(ctx context.Context, userID, recordID int64) error
}

type StatsService interface {
	Get(ctx context.Context, userID int64) (*models.Stats, error)
}

type Server struct {
	addr       string
	logger     logging.Logger
	users      UserService
	records    RecordService
	stats      StatsService
	corsOrigin string
}

func NewServer(addr string, l logging.Logger, us UserService, rs RecordService, ss StatsService, corsOrigin string) *Server {
	return &Server{
		addr:       addr,
		logger:     l.With("module", "http_server"),
		users:      us,
		records:    rs,
		stats:      ss,
		corsOrigin: corsOrigin,
	}
}

// Handler builds the router. Split out from Run so tests can drive the full
// middleware chain through httptest.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.corsOrigin},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           120,
	}))
	r.Use(s.logRequests)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	r.Post("/auth/register", s.handleRegister)
	r.Post("/auth/login", s.handleLogin)

	r.Group(func(r chi.Router) {
		r.Use(s.authenticate)

		r.Get("/auth/user", s.handleCurrentUser)
		r.Put("/auth/profile", s.handleUpdateProfile)
		r.Put("/auth/password", s.handleChangePassword)

		r.Get("/stats", s.handleStats)

		r.Get("/records", s.handleListRecords)
		r.Post("/records", s.handleCreateRecord)
		r.Delete("/records/{id}", s.handleDeleteRecord)
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// canceled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}

	return nil
}
