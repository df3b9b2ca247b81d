// Package httpapi exposes the authentication workflows over HTTP JSON.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	"github.com/knowhowcafe/auth/internal/logging"
	"github.com/knowhowcafe/auth/internal/server/config"
	"github.com/knowhowcafe/auth/internal/server/models"
	"github.com/knowhowcafe/auth/internal/server/services"
)

// authSvc is the slice of the services layer the HTTP handlers need.
type authSvc interface {
	SendSignupOtp(ctx context.Context, email string, name string) error
	VerifySignupOtp(ctx context.Context, email string, code string) error
	CompleteSignup(ctx context.Context, email string, name string, password string) (*models.User, *services.Session, error)
	Login(ctx context.Context, email string, password string, rememberMe bool) (*models.User, *services.Session, error)
	SendForgotPasswordOtp(ctx context.Context, email string) error
	VerifyForgotPasswordOtp(ctx context.Context, email string, code string) error
	ResetPassword(ctx context.Context, email string, newPassword string) error
	GetUser(ctx context.Context, id string) (*models.User, error)
}

type HTTPServer struct {
	address string
	auth    authSvc
	logger  logging.Logger
	config  *config.Config
}

func NewHTTPServer(cfg *config.Config, l logging.Logger, auth *services.AuthService) *HTTPServer {
	return &HTTPServer{
		address: cfg.EndpointAddr,
		auth:    auth,
		logger:  l.With("module", "http_server"),
		config:  cfg,
	}
}

// Router assembles the chi mux. Split out from Run so handler tests can
// drive the full routing table with httptest.
func (s *HTTPServer) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins(),
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Requested-With"},
		ExposedHeaders:   []string{"Set-Cookie"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Route("/auth", func(r chi.Router) {
		r.Post("/send-otp", s.handleSendSignupOtp)
		r.Post("/verify-otp", s.handleVerifySignupOtp)
		r.Post("/signup", s.handleCompleteSignup)
		r.Post("/login", s.handleLogin)

		r.Post("/forgot/send-otp", s.handleSendForgotPasswordOtp)
		r.Post("/forgot/verify-otp", s.handleVerifyForgotPasswordOtp)
		r.Post("/forgot/reset-password", s.handleResetPassword)

		r.Group(func(r chi.Router) {
			r.Use(s.authenticate)
			r.Get("/me", s.handleMe)
			r.Post("/logout", s.handleLogout)
		})

		r.Get("/google", s.handleGoogleOAuth)
		r.Get("/google/callback", s.handleGoogleOAuth)
	})

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		s.writeJSON(w, http.StatusOK, response{Success: true})
	})

	return r
}

func (s *HTTPServer) allowedOrigins() []string {
	var origins []string
	for _, part := range strings.Split(s.config.CORSOrigin, ",") {
		if o := strings.TrimRight(strings.TrimSpace(part), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

func (s *HTTPServer) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
