// Package httpapi exposes the PantryKeeper JSON API over HTTP using gin.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

const shutdownTimeout = 5 * time.Second

// UserDirectory is the part of services.UserService the handlers need.
type UserDirectory interface {
	Register(ctx context.Context, username, email, password string) (*models.User, error)
	Login(ctx context.Context, email, password string) (string, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	List(ctx context.Context) ([]*models.User, error)
}

// InventoryStore is the part of services.ItemService the handlers need.
type InventoryStore interface {
	Create(ctx context.Context, ownerID int64, name, quantity, category string) (*models.Item, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*models.Item, error)
	DeleteForOwner(ctx context.Context, itemID, ownerID int64) (bool, error)
}

// TokenVerifier resolves a bearer token to its subject.
type TokenVerifier interface {
	Verify(token string, now time.Time) (string, error)
}

// Options controls transport-level behaviour.
type Options struct {
	Address               string
	AllowedOrigins        []string
	AdminUsersRequireAuth bool
}

type Server struct {
	address           string
	allowedOrigins    []string
	adminRequiresAuth bool

	users  UserDirectory
	items  InventoryStore
	tokens TokenVerifier
	logger logging.Logger
	now    func() time.Time

	engine *gin.Engine
}

func NewServer(opts Options, l logging.Logger, us UserDirectory, is InventoryStore, tv TokenVerifier) (*Server, error) {
	for _, o := range opts.AllowedOrigins {
		if o != "*" && !strings.HasPrefix(o, "http://") && !strings.HasPrefix(o, "https://") {
			return nil, fmt.Errorf("invalid CORS origin %q", o)
		}
	}

	s := &Server{
		address:           opts.Address,
		allowedOrigins:    opts.AllowedOrigins,
		adminRequiresAuth: opts.AdminUsersRequireAuth,
		users:             us,
		items:             is,
		tokens:            tv,
		logger:            l.With("module", "http_server"),
		now:               func() time.Time { return time.Now().UTC() },
	}
	s.engine = s.buildEngine()
	return s, nil
}

// Handler returns the configured router.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.address,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			s.logger.Error(ctx, "HTTP server shutdown failed", "error", err.Error())
		}
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.address)

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}

	return nil
}
