// Package httpapi exposes the cartsync server over HTTP/JSON using echo.
// All list endpoints require a bearer token issued by the login endpoint.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/ebalakin/cartsync/internal/api"
	"github.com/ebalakin/cartsync/internal/logging"
	"github.com/ebalakin/cartsync/internal/server/models"
)

// UserService is the account surface the HTTP layer depends on.
type UserService interface {
	Register(ctx context.Context, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
}

// ListService is the list management surface the HTTP layer depends on.
type ListService interface {
	Create(ctx context.Context, ownerID, name string) (string, error)
	Share(ctx context.Context, byUserID, listID, email string) error
}

// SyncService handles the batched sync exchange for one list.
type SyncService interface {
	Sync(ctx context.Context, userID, listID string, req *api.SyncRequest) (*api.SyncResponse, error)
}

// Server wraps the echo instance with the route handlers bound.
type Server struct {
	echo   *echo.Echo
	addr   string
	logger logging.Logger
}

// NewServer builds the echo application: public register/login/ping routes
// plus the token-protected list routes.
func NewServer(addr string, logger logging.Logger, users UserService, lists ListService, sync SyncService, secretKey string) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Use(middleware.Recover())

	h := &handlers{users: users, lists: lists, sync: sync, logger: logger}

	e.GET("/api/ping", h.ping)
	e.POST("/api/register", h.register)
	e.POST("/api/login", h.login)

	g := e.Group("/api", AuthMiddleware([]byte(secretKey)))
	g.POST("/lists", h.createList)
	g.POST("/lists/:id/share", h.shareList)
	g.POST("/lists/:id/sync", h.syncList)

	return &Server{echo: e, addr: addr, logger: logger.With("component", "http")}
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		if err := s.echo.Start(s.addr); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		s.logger.Info(ctx, "shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.echo.Shutdown(shutdownCtx)
	}
}
