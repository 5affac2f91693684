package app_test

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spendwise/spendwise/internal/app"
	"github.com/spendwise/spendwise/internal/auth"
	"github.com/spendwise/spendwise/internal/expense"
	"github.com/spendwise/spendwise/internal/observability"
	"github.com/spendwise/spendwise/internal/shared"
	_ "github.com/spendwise/spendwise/testing"
)

// In-memory stand-ins for the PostgreSQL repositories, so the full
// router can be exercised without a database.

type memUserRepo struct {
	users map[string]*auth.User
}

func (m *memUserRepo) CreateUser(ctx context.Context, user *auth.User) error {
	for _, existing := range m.users {
		if existing.Email == user.Email {
			return shared.ErrDuplicateEmail
		}
	}
	stored := *user
	m.users[user.ID] = &stored
	return nil
}

func (m *memUserRepo) FindByEmail(ctx context.Context, email string) (*auth.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, shared.ErrNotFound
}

func (m *memUserRepo) FindByID(ctx context.Context, id string) (*auth.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, shared.ErrNotFound
	}
	return user, nil
}

type memExpenseRepo struct {
	records []expense.Expense
}

func (m *memExpenseRepo) Insert(ctx context.Context, e *expense.Expense) error {
	m.records = append(m.records, *e)
	return nil
}

func (m *memExpenseRepo) FindByOwner(ctx context.Context, ownerID string) ([]expense.Expense, error) {
	return m.FindFiltered(ctx, ownerID, expense.Filter{})
}

func (m *memExpenseRepo) FindFiltered(ctx context.Context, ownerID string, f expense.Filter) ([]expense.Expense, error) {
	bounded := !f.StartDate.IsZero() && !f.EndDate.IsZero()
	matched := []expense.Expense{}
	for _, e := range m.records {
		if e.UserID != ownerID {
			continue
		}
		if f.Category != "" && e.Category != f.Category {
			continue
		}
		if bounded && (e.Date.Before(f.StartDate) || e.Date.After(f.EndDate)) {
			continue
		}
		matched = append(matched, e)
	}
	sort.SliceStable(matched, func(i, j int) bool {
		return matched[i].Date.After(matched[j].Date)
	})
	return matched, nil
}

func newTestServer(t *testing.T) http.Handler {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	cfg := &app.Config{AppEnv: "development", AppRequestTimeout: 5 * time.Second}

	tokens := auth.NewTokenManager("test-secret", time.Hour)
	authService := auth.NewService(&memUserRepo{users: map[string]*auth.User{}}, tokens)
	expenseService := expense.NewService(&memExpenseRepo{})

	return app.NewRouter(app.RouterParams{
		Logger:         logger,
		Config:         cfg,
		AuthHandler:    auth.NewHandler(logger, authService),
		AuthMiddleware: auth.NewMiddleware(logger, authService),
		ExpenseHandler: expense.NewHandler(logger, expenseService),
		Metrics:        observability.NewMetrics(),
	})
}

func request(t *testing.T, router http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	res := httptest.NewRecorder()
	router.ServeHTTP(res, req)
	return res
}

func TestHealthz(t *testing.T) {
	router := newTestServer(t)

	res := request(t, router, http.MethodGet, "/healthz", "", "")
	assert.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `{"status":"ok"}`, res.Body.String())
}

func TestRegisterCreateListFilterFlow(t *testing.T) {
	router := newTestServer(t)

	// Register and capture the token.
	res := request(t, router, http.MethodPost, "/api/users/register", "",
		`{"username":"u1","email":"u1@x.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	var registered struct {
		Message string `json:"message"`
		Token   string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &registered))
	require.NotEmpty(t, registered.Token)

	// Create an expense as the registered user.
	res = request(t, router, http.MethodPost, "/api/expenses", registered.Token,
		`{"amount":12.5,"category":"food","date":"2024-01-05"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	// Listing returns exactly that record.
	res = request(t, router, http.MethodGet, "/api/expenses", registered.Token, "")
	require.Equal(t, http.StatusOK, res.Code)

	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	require.Len(t, list, 1)
	assert.Equal(t, 12.5, list[0]["amount"])
	assert.Equal(t, "food", list[0]["category"])
	assert.Equal(t, "2024-01-05", list[0]["date"])

	// Filtering on another category comes back empty.
	res = request(t, router, http.MethodGet, "/api/expenses/filter?category=transport", registered.Token, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `[]`, res.Body.String())

	// Login with the same credentials keeps working.
	res = request(t, router, http.MethodPost, "/api/users/login", "",
		`{"email":"u1@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusOK, res.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	router := newTestServer(t)

	res := request(t, router, http.MethodGet, "/api/expenses", "", "")
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.JSONEq(t, `{"message":"no token"}`, res.Body.String())

	res = request(t, router, http.MethodPost, "/api/expenses", "bogus",
		`{"amount":1,"category":"food","date":"2024-01-05"}`)
	assert.Equal(t, http.StatusUnauthorized, res.Code)
	assert.JSONEq(t, `{"message":"invalid token"}`, res.Body.String())
}

func TestOwnersCannotSeeEachOther(t *testing.T) {
	router := newTestServer(t)

	register := func(username, email string) string {
		res := request(t, router, http.MethodPost, "/api/users/register", "",
			`{"username":"`+username+`","email":"`+email+`","password":"pw"}`)
		require.Equal(t, http.StatusCreated, res.Code)
		var body struct {
			Token string `json:"token"`
		}
		require.NoError(t, json.Unmarshal(res.Body.Bytes(), &body))
		return body.Token
	}

	tokenA := register("alice", "alice@x.com")
	tokenB := register("bob", "bob@x.com")

	res := request(t, router, http.MethodPost, "/api/expenses", tokenA,
		`{"amount":42,"category":"rent","date":"2024-02-01"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	res = request(t, router, http.MethodGet, "/api/expenses", tokenB, "")
	require.Equal(t, http.StatusOK, res.Code)
	assert.JSONEq(t, `[]`, res.Body.String())

	res = request(t, router, http.MethodGet, "/api/expenses", tokenA, "")
	require.Equal(t, http.StatusOK, res.Code)
	var list []map[string]any
	require.NoError(t, json.Unmarshal(res.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	router := newTestServer(t)

	res := request(t, router, http.MethodPost, "/api/users/register", "",
		`{"username":"u1","email":"dup@x.com","password":"pw"}`)
	require.Equal(t, http.StatusCreated, res.Code)

	res = request(t, router, http.MethodPost, "/api/users/register", "",
		`{"username":"u2","email":"dup@x.com","password":"pw"}`)
	assert.Equal(t, http.StatusBadRequest, res.Code)
}
