// Package httpapi exposes the service over HTTP: account signup and login,
// device-token registration, photo upload and listing, and (in the local
// variant) the stored uploads themselves.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/smart-mailbox/backend/internal/logging"
	"github.com/smart-mailbox/backend/internal/server/photos"
	"github.com/smart-mailbox/backend/internal/server/users"
)

type userSvc interface {
	Signup(ctx context.Context, username, password string) (*users.User, error)
	Login(ctx context.Context, username, password string) (*users.User, error)
	RegisterToken(ctx context.Context, id, token string) error
}

type photoSvc interface {
	Upload(ctx context.Context, ownerID, status string, data []byte, contentType string) (*photos.Photo, error)
	ListByOwner(ctx context.Context, uid string) ([]*photos.Photo, error)
}

type Server struct {
	address string
	logger  logging.Logger
	users   userSvc
	photos  photoSvc
	router  *gin.Engine
}

// NewServer builds the router. When uploadsDir is non-empty the directory
// is served at /uploads, which the local blob store relies on.
func NewServer(address string, logger logging.Logger, us userSvc, ps photoSvc, uploadsDir string) *Server {

	s := &Server{
		address: address,
		logger:  logger.With("module", "http_server"),
		users:   us,
		photos:  ps,
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	// device and browser clients call from other origins
	router.Use(cors.Default())

	router.GET("/", s.home)
	router.POST("/signup", s.signup)
	router.POST("/login", s.login)
	router.POST("/register_token", s.registerToken)
	router.POST("/upload", s.upload)
	router.GET("/photos", s.listPhotos)

	if uploadsDir != "" {
		router.Static("/uploads", uploadsDir)
	}

	s.router = router
	return s
}

// Handler exposes the router, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {

	srv := &http.Server{
		Addr:    s.address,
		Handler: s.router,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(shutdownCtx, "shutdown error", "error", err)
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
