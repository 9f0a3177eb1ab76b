package services

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/dbx"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	itemsrepo "github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/items"
	usersrepo "github.com/dmitrijs2005/pantrykeeper/internal/server/repositories/users"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

var fixedNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newSQLMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("sqlmock.New error: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db, mock
}

// fakeHasher "hashes" by prefixing, so tests stay fast.
type fakeHasher struct {
	hashErr  error
	verified int
}

func (h *fakeHasher) Hash(pw string) (string, error) {
	if h.hashErr != nil {
		return "", h.hashErr
	}
	return "hashed:" + pw, nil
}

func (h *fakeHasher) Verify(pw, hash string) bool {
	h.verified++
	return hash == "hashed:"+pw
}

type fakeTokens struct {
	subject string
	at      time.Time
	err     error
}

func (f *fakeTokens) Issue(subject string, now time.Time) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	f.subject, f.at = subject, now
	return "token-for-" + subject, nil
}

type fakeUsersRepo struct {
	byEmail map[string]*models.User
	created []*models.User

	createErr error
	getErr    error
	listErr   error
}

func newFakeUsersRepo(users ...*models.User) *fakeUsersRepo {
	r := &fakeUsersRepo{byEmail: map[string]*models.User{}}
	for _, u := range users {
		r.byEmail[u.Email] = u
	}
	return r
}

func (f *fakeUsersRepo) Create(_ context.Context, u *models.User) (*models.User, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	cp := *u
	cp.ID = int64(len(f.byEmail) + 1)
	f.byEmail[cp.Email] = &cp
	f.created = append(f.created, &cp)
	return &cp, nil
}

func (f *fakeUsersRepo) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsersRepo) List(context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := make([]*models.User, 0, len(f.byEmail))
	for i := int64(1); i <= int64(len(f.byEmail)); i++ {
		for _, u := range f.byEmail {
			if u.ID == i {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fakeItemsRepo struct {
	items  []*models.Item
	nextID int64

	createErr error
	listErr   error
	deleteErr error
}

func (f *fakeItemsRepo) Create(_ context.Context, it *models.Item) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	f.nextID++
	cp := *it
	cp.ID = f.nextID
	f.items = append(f.items, &cp)
	return &cp, nil
}

func (f *fakeItemsRepo) ListByOwner(_ context.Context, ownerID int64) ([]*models.Item, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.Item{}
	for _, it := range f.items {
		if it.UserID == ownerID {
			out = append(out, it)
		}
	}
	return out, nil
}

func (f *fakeItemsRepo) DeleteForOwner(_ context.Context, itemID, ownerID int64) (bool, error) {
	if f.deleteErr != nil {
		return false, f.deleteErr
	}
	for i, it := range f.items {
		if it.ID == itemID && it.UserID == ownerID {
			f.items = append(f.items[:i], f.items[i+1:]...)
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeItemsRepo) FindOwner(_ context.Context, itemID int64) (int64, error) {
	for _, it := range f.items {
		if it.ID == itemID {
			return it.UserID, nil
		}
	}
	return 0, common.ErrorNotFound
}

type fakeRepoManager struct {
	u *fakeUsersRepo
	i *fakeItemsRepo
}

func (m *fakeRepoManager) RunMigrations(context.Context, *sql.DB) error { return nil }
func (m *fakeRepoManager) Users(dbx.DBTX) usersrepo.Repository         { return m.u }
func (m *fakeRepoManager) Items(dbx.DBTX) itemsrepo.Repository         { return m.i }

// recordingLogger keeps messages so tests can assert on what was logged.
type recordingLogger struct {
	lines *[]string
}

func newRecordingLogger() recordingLogger {
	return recordingLogger{lines: &[]string{}}
}

func (l recordingLogger) record(level, msg string, args ...any) {
	*l.lines = append(*l.lines, strings.TrimSpace(level+" "+msg+" "+fmt.Sprint(args...)))
}

func (l recordingLogger) Debug(_ context.Context, msg string, args ...any) { l.record("DEBUG", msg, args...) }
func (l recordingLogger) Info(_ context.Context, msg string, args ...any)  { l.record("INFO", msg, args...) }
func (l recordingLogger) Warn(_ context.Context, msg string, args ...any)  { l.record("WARN", msg, args...) }
func (l recordingLogger) Error(_ context.Context, msg string, args ...any) { l.record("ERROR", msg, args...) }
func (l recordingLogger) With(...any) logging.Logger                       { return l }

func (l recordingLogger) contains(substr string) bool {
	for _, line := range *l.lines {
		if strings.Contains(line, substr) {
			return true
		}
	}
	return false
}

