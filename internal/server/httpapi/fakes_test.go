package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/pantrykeeper/internal/common"
	"github.com/dmitrijs2005/pantrykeeper/internal/logging"
	"github.com/dmitrijs2005/pantrykeeper/internal/server/models"
	"github.com/gin-gonic/gin"
)

type errBoom struct{}

func (errBoom) Error() string { return "boom" }

var testNow = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

type fakeUsers struct {
	byEmail map[string]*models.User

	registered  int
	registerErr error
	loginErr    error
	findErr     error
	listErr     error
}

func newFakeUsers(users ...*models.User) *fakeUsers {
	f := &fakeUsers{byEmail: map[string]*models.User{}}
	for _, u := range users {
		f.byEmail[u.Email] = u
	}
	return f
}

func (f *fakeUsers) Register(_ context.Context, username, email, _ string) (*models.User, error) {
	f.registered++
	if f.registerErr != nil {
		return nil, f.registerErr
	}
	u := &models.User{ID: int64(len(f.byEmail) + 1), UserName: username, Email: strings.ToLower(email), CreatedAt: testNow}
	f.byEmail[u.Email] = u
	return u, nil
}

func (f *fakeUsers) Login(_ context.Context, email, password string) (string, error) {
	if f.loginErr != nil {
		return "", f.loginErr
	}
	if _, ok := f.byEmail[email]; !ok || password != "secret1" {
		return "", common.ErrInvalidCredentials
	}
	return "tok:" + email, nil
}

func (f *fakeUsers) FindByEmail(_ context.Context, email string) (*models.User, error) {
	if f.findErr != nil {
		return nil, f.findErr
	}
	u, ok := f.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (f *fakeUsers) List(context.Context) ([]*models.User, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	out := []*models.User{}
	for i := int64(1); i <= int64(len(f.byEmail)); i++ {
		for _, u := range f.byEmail {
			if u.ID == i {
				out = append(out, u)
			}
		}
	}
	return out, nil
}

type fakeItems struct {
	items  []*models.Item
	nextID int64

	createErr error
	listErr   error
	deleteErr error
}

func (f *fakeItems) Create(_ context.Context, ownerID int64, name, quantity, category string) (*models.Item, error) {
	if f.createErr != nil {
		return nil, f.createErr
	}
	if category == "" {
		category = common.DefaultCategory
	}
	f.nextID++
	it := &models.Item{ID: f.nextID, Name: name, Quantity: quantity, Category: category, UserID: ownerID, CreatedAt: testNow}
	f.items = append(f.items, it)
	return it, nil
}

func (f *fakeItems) ListByOwner(_ context.Context, ownerID int64) ([]*models.Item, error) {
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

func (f *fakeItems) DeleteForOwner(_ context.Context, itemID, ownerID int64) (bool, error) {
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

// fakeVerifier accepts "tok:<email>" and rejects "expired" as expired.
type fakeVerifier struct{}

func (fakeVerifier) Verify(token string, _ time.Time) (string, error) {
	if token == "expired" {
		return "", common.ErrTokenExpired
	}
	subject, ok := strings.CutPrefix(token, "tok:")
	if !ok {
		return "", common.ErrInvalidToken
	}
	return subject, nil
}

func alice() *models.User {
	return &models.User{ID: 1, UserName: "alice", Email: "alice@example.com", CreatedAt: testNow}
}

func bob() *models.User {
	return &models.User{ID: 2, UserName: "bob", Email: "bob@example.com", CreatedAt: testNow}
}

func newTestServer(t *testing.T, opts Options, users *fakeUsers, items *fakeItems) *Server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	s, err := NewServer(opts, logging.NewNop(), users, items, fakeVerifier{})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	return s
}

func doJSON(t *testing.T, h http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		payload, err := json.Marshal(b)
		if err != nil {
			t.Fatalf("json.Marshal: %v", err)
		}
		reader = bytes.NewReader(payload)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

func decode[T any](t *testing.T, resp *httptest.ResponseRecorder) T {
	t.Helper()
	var out T
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("json.Unmarshal(%q): %v", resp.Body.String(), err)
	}
	return out
}
