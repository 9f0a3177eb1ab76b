// Package services contains server-side business logic. This file implements
// UserService, the user directory: signup, credential checks, token issuing
// and lookups used by the auth middleware.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/repomanager"
)

// PasswordHasher is the credential hasher used by UserService.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Verify(password, hash string) bool
}

// TokenIssuer mints access tokens for authenticated users.
type TokenIssuer interface {
	Issue(subject string, now time.Time) (string, error)
}

// UserService provides user-directory operations:
// - Register: create users with a hashed password
// - Authenticate / Login: check credentials and mint access tokens
// - FindByEmail / List: lookups for the auth middleware and admin listing
type UserService struct {
	db          *sql.DB
	repomanager repomanager.RepositoryManager
	hasher      PasswordHasher
	tokens      TokenIssuer
	logger      logging.Logger
	now         func() time.Time

	dummyMu   sync.Mutex
	dummyHash string
}

// NewUserService constructs a UserService over the given repositories.
func NewUserService(db *sql.DB, m repomanager.RepositoryManager, hasher PasswordHasher, tokens TokenIssuer, logger logging.Logger) *UserService {
	return &UserService{
		db:          db,
		repomanager: m,
		hasher:      hasher,
		tokens:      tokens,
		logger:      logger.With("module", "user_service"),
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// NormalizeEmail trims and lower-cases an address so lookups are
// case-insensitive.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Register creates a user. An existing email yields common.ErrDuplicateEmail,
// whether found by the lookup or rejected by the store's UNIQUE constraint;
// a taken username yields common.ErrDuplicateUsername. A blank username is a
// common.ErrorValidation.
func (s *UserService) Register(ctx context.Context, username, email, password string) (*models.User, error) {
	email = NormalizeEmail(email)
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username must not be blank", common.ErrorValidation)
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("%w: hash password: %v", common.ErrorInternal, err)
	}

	user := &models.User{
		UserName:     username,
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    s.now(),
	}

	var created *models.User
	err = dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repomanager.Users(tx)

		_, err := repo.GetUserByEmail(ctx, email)
		if err == nil {
			return common.ErrDuplicateEmail
		}
		if !errors.Is(err, common.ErrorNotFound) {
			return err
		}

		created, err = repo.Create(ctx, user)
		return err
	})
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) || errors.Is(err, common.ErrDuplicateUsername) {
			s.logger.Info(ctx, "signup conflict", "email", email, "username", username, "reason", err.Error())
			return nil, err
		}
		return nil, fmt.Errorf("%w: error creating user: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "user registered", "user_id", created.ID)
	return created, nil
}

// FindByEmail returns the user with that email or common.ErrorNotFound.
func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	repo := s.repomanager.Users(s.db)
	user, err := repo.GetUserByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return user, nil
}

// Authenticate returns the user only when the email exists and the password
// matches. Unknown emails and wrong passwords both yield
// common.ErrInvalidCredentials, and both pay for one bcrypt comparison.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			s.hasher.Verify(password, s.unknownUserHash(ctx))
			s.logger.Info(ctx, "login rejected", "reason", "unknown email")
			return nil, common.ErrInvalidCredentials
		}
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.logger.Info(ctx, "login rejected", "reason", "wrong password", "user_id", user.ID)
		return nil, common.ErrInvalidCredentials
	}

	return user, nil
}

// Login authenticates and returns an access token whose subject is the
// user's email.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	user, err := s.Authenticate(ctx, email, password)
	if err != nil {
		return "", err
	}

	token, err := s.tokens.Issue(user.Email, s.now())
	if err != nil {
		return "", fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}

	s.logger.Info(ctx, "user logged in", "user_id", user.ID)
	return token, nil
}

// List returns all users ordered by id.
func (s *UserService) List(ctx context.Context) ([]*models.User, error) {
	users, err := s.repomanager.Users(s.db).List(ctx)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", common.ErrorInternal, err)
	}
	return users, nil
}

// unknownUserHash is compared against when the email is unknown, so both
// rejection paths take roughly the same time. A failed hash is logged and
// retried on the next call.
func (s *UserService) unknownUserHash(ctx context.Context) string {
	s.dummyMu.Lock()
	defer s.dummyMu.Unlock()

	if s.dummyHash == "" {
		hash, err := s.hasher.Hash("pantrykeeper-unknown-user")
		if err != nil {
			s.logger.Error(ctx, "cannot hash placeholder password for unknown users", "error", err.Error())
			return ""
		}
		s.dummyHash = hash
	}
	return s.dummyHash
}
