package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/shopstack/ecommerce-api/internal/auth"
	"github.com/shopstack/ecommerce-api/internal/core/domain"
	"github.com/shopstack/ecommerce-api/internal/core/service"
)

type memoryUserRepo struct {
	mu     sync.Mutex
	users  map[string]*domain.User
	nextID int
}

func newMemoryUserRepo() *memoryUserRepo {
	return &memoryUserRepo{users: make(map[string]*domain.User), nextID: 1}
}

func (r *memoryUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.users[user.Email]; exists {
		return nil, domain.ErrUserExists
	}
	created := *user
	created.ID = "507f1f77bcf86cd7994390" + strconv.Itoa(10+r.nextID)
	r.nextID++
	stored := created
	r.users[created.Email] = &stored
	return &created, nil
}

func (r *memoryUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if u, ok := r.users[email]; ok {
		clone := *u
		return &clone, nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *memoryUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ID == id {
			clone := *u
			return &clone, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

// One router for the whole test: the prometheus middleware registers
// collectors in the default registry and must not be built twice.
var (
	routerOnce sync.Once
	testRouter *echo.Echo
	testRepo   *memoryUserRepo
)

func router() (*echo.Echo, *memoryUserRepo) {
	routerOnce.Do(func() {
		testRepo = newMemoryUserRepo()
		hasher := auth.NewPasswordHasher(4)
		codec := auth.NewTokenCodec("test-secret", time.Hour)
		authService := service.NewAuthService(testRepo, hasher, codec, nil, nil, zerolog.Nop())

		testRouter = NewRouter(Dependencies{
			Env:         "test",
			Codec:       codec,
			UserRepo:    testRepo,
			AuthService: authService,
			Log:         zerolog.Nop(),
		})
	})
	return testRouter, testRepo
}

func doJSON(e *echo.Echo, method, path, body, token string) *httptest.ResponseRecorder {
	var reader *strings.Reader
	if body == "" {
		reader = strings.NewReader("")
	} else {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func parse(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json %q: %v", rec.Body.String(), err)
	}
	return body
}

func TestRouter_RegisterFlow(t *testing.T) {
	e, _ := router()

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"a@b.com","password":"pw123456","firstName":"A","lastName":"B","role":"admin"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	body := parse(t, rec)
	if body["message"] != "User registered successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	token, _ := body["token"].(string)
	if token == "" {
		t.Fatalf("expected non-empty token")
	}

	user, ok := body["user"].(map[string]any)
	if !ok {
		t.Fatalf("expected user in response")
	}
	// A client-supplied role is ignored; registration always yields customer.
	if user["role"] != domain.RoleCustomer {
		t.Fatalf("expected role customer, got %v", user["role"])
	}
	if _, leaked := user["password"]; leaked {
		t.Fatalf("password leaked in response")
	}
	if _, leaked := user["passwordHash"]; leaked {
		t.Fatalf("password hash leaked in response")
	}

	// Same email, different case.
	rec = doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"A@B.COM","password":"pw123456","firstName":"A","lastName":"B"}`, "")
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}
	if body := parse(t, rec); body["message"] != "User with this email already exists" {
		t.Fatalf("unexpected conflict message: %v", body["message"])
	}
}

func TestRouter_RegisterValidation(t *testing.T) {
	e, _ := router()

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"not-an-email","password":"pw"}`, "")
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	body := parse(t, rec)
	if body["message"] != "Validation error" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
	violations, ok := body["errors"].([]any)
	if !ok {
		t.Fatalf("expected errors array, got %v", body["errors"])
	}
	// email format, password length, firstName, lastName: all reported at once.
	if len(violations) != 4 {
		t.Fatalf("expected 4 violations, got %d: %v", len(violations), violations)
	}
}

func TestRouter_LoginFlow(t *testing.T) {
	e, _ := router()

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"login@b.com","password":"pw123456","firstName":"L","lastName":"B"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"LOGIN@B.com","password":"pw123456"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	body := parse(t, rec)
	if body["message"] != "Login successful" {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"login@b.com","password":"wrong-password"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := parse(t, rec); body["message"] != "Invalid email or password" {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	// Unknown account gets the exact same message as a wrong password.
	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"ghost@b.com","password":"whatever1"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := parse(t, rec); body["message"] != "Invalid email or password" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestRouter_LoginDeactivated(t *testing.T) {
	e, repo := router()

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"inactive@b.com","password":"pw123456","firstName":"I","lastName":"B"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}
	repo.mu.Lock()
	repo.users["inactive@b.com"].IsActive = false
	repo.mu.Unlock()

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"inactive@b.com","password":"pw123456"}`, "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := parse(t, rec); body["message"] != "Account is deactivated" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestRouter_GuardedRoutes(t *testing.T) {
	e, repo := router()

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"guard@b.com","password":"pw123456","firstName":"G","lastName":"B"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}
	customerToken := parse(t, rec)["token"].(string)

	// No token.
	rec = doJSON(e, http.MethodGet, "/api/auth/me", "", "")
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if body := parse(t, rec); body["code"] != "NO_TOKEN" {
		t.Fatalf("expected NO_TOKEN, got %v", body["code"])
	}

	// Valid token.
	rec = doJSON(e, http.MethodGet, "/api/auth/me", "", customerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	me := parse(t, rec)["user"].(map[string]any)
	if me["email"] != "guard@b.com" {
		t.Fatalf("unexpected me payload: %v", me)
	}

	rec = doJSON(e, http.MethodGet, "/api/users/profile", "", customerToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := parse(t, rec); body["message"] != "Profile accessed successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}

	// Customer hitting the admin endpoint.
	rec = doJSON(e, http.MethodGet, "/api/users/admin", "", customerToken)
	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403, got %d", rec.Code)
	}
	body := parse(t, rec)
	if body["code"] != "INSUFFICIENT_PERMISSIONS" {
		t.Fatalf("expected INSUFFICIENT_PERMISSIONS, got %v", body["code"])
	}
	if body["current"] != domain.RoleCustomer {
		t.Fatalf("expected current customer, got %v", body["current"])
	}
	required, _ := body["required"].([]any)
	if len(required) != 1 || required[0] != domain.RoleAdmin {
		t.Fatalf("expected required [admin], got %v", body["required"])
	}

	// Promote out-of-band, log in again, and the admin endpoint opens up.
	repo.mu.Lock()
	repo.users["guard@b.com"].Role = domain.RoleAdmin
	repo.mu.Unlock()

	rec = doJSON(e, http.MethodPost, "/api/auth/login",
		`{"email":"guard@b.com","password":"pw123456"}`, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("login failed: %d", rec.Code)
	}
	adminToken := parse(t, rec)["token"].(string)

	rec = doJSON(e, http.MethodGet, "/api/users/admin", "", adminToken)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if body := parse(t, rec); body["message"] != "Admin data accessed successfully" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestRouter_DeactivationImmediate(t *testing.T) {
	e, repo := router()

	rec := doJSON(e, http.MethodPost, "/api/auth/register",
		`{"email":"gone@b.com","password":"pw123456","firstName":"G","lastName":"B"}`, "")
	if rec.Code != http.StatusCreated {
		t.Fatalf("register failed: %d", rec.Code)
	}
	token := parse(t, rec)["token"].(string)

	rec = doJSON(e, http.MethodGet, "/api/users/profile", "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 before deactivation, got %d", rec.Code)
	}

	repo.mu.Lock()
	repo.users["gone@b.com"].IsActive = false
	repo.mu.Unlock()

	rec = doJSON(e, http.MethodGet, "/api/users/profile", "", token)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after deactivation, got %d", rec.Code)
	}
	if body := parse(t, rec); body["code"] != "ACCOUNT_DEACTIVATED" {
		t.Fatalf("expected ACCOUNT_DEACTIVATED, got %v", body["code"])
	}
}

func TestRouter_Index(t *testing.T) {
	e, _ := router()

	rec := doJSON(e, http.MethodGet, "/api", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if body := parse(t, rec); body["message"] != "E-commerce API is running!" {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestRouter_Liveness(t *testing.T) {
	e, _ := router()

	rec := doJSON(e, http.MethodGet, "/health", "", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	body := parse(t, rec)
	if body["status"] != "OK" || body["environment"] != "test" {
		t.Fatalf("unexpected health payload: %v", body)
	}
}
