package handler_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	redislib "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/George-lab-star/ToDoListMonolith/internal/config"
	"github.com/George-lab-star/ToDoListMonolith/internal/domain"
	"github.com/George-lab-star/ToDoListMonolith/internal/handler"
	"github.com/George-lab-star/ToDoListMonolith/internal/handler/middleware"
	"github.com/George-lab-star/ToDoListMonolith/internal/repository"
	redisrepo "github.com/George-lab-star/ToDoListMonolith/internal/repository/redis"
	"github.com/George-lab-star/ToDoListMonolith/internal/service"
	"github.com/George-lab-star/ToDoListMonolith/pkg/jwt"
	"github.com/George-lab-star/ToDoListMonolith/pkg/validator"
)

type memUserRepo struct {
	nextID int64
	users  map[int64]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{nextID: 1, users: map[int64]*domain.User{}}
}

func (m *memUserRepo) Create(_ context.Context, user *domain.User) error {
	user.ID = m.nextID
	m.nextID++
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) GetByID(_ context.Context, id int64) (*domain.User, error) {
	user, ok := m.users[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return user, nil
}

func (m *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, user := range m.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (m *memUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := m.users[user.ID]; !ok {
		return repository.ErrNotFound
	}
	m.users[user.ID] = user
	return nil
}

func (m *memUserRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.users[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.users, id)
	return nil
}

type memTaskRepo struct {
	nextID int64
	tasks  map[int64]*domain.Task
}

func newMemTaskRepo() *memTaskRepo {
	return &memTaskRepo{nextID: 1, tasks: map[int64]*domain.Task{}}
}

func (m *memTaskRepo) Create(_ context.Context, task *domain.Task) error {
	task.ID = m.nextID
	m.nextID++
	m.tasks[task.ID] = task
	return nil
}

func (m *memTaskRepo) GetByID(_ context.Context, id int64) (*domain.Task, error) {
	task, ok := m.tasks[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return task, nil
}

func (m *memTaskRepo) ListByOwner(_ context.Context, ownerID int64) ([]*domain.Task, error) {
	var out []*domain.Task
	for _, task := range m.tasks {
		if task.OwnerID == ownerID {
			out = append(out, task)
		}
	}
	return out, nil
}

func (m *memTaskRepo) Update(_ context.Context, task *domain.Task) error {
	if _, ok := m.tasks[task.ID]; !ok {
		return repository.ErrNotFound
	}
	m.tasks[task.ID] = task
	return nil
}

func (m *memTaskRepo) Delete(_ context.Context, id int64) error {
	if _, ok := m.tasks[id]; !ok {
		return repository.ErrNotFound
	}
	delete(m.tasks, id)
	return nil
}

type testServer struct {
	app          *fiber.App
	tokenService *jwt.TokenService
}

func newTestServer(t *testing.T, accessTTL, refreshTTL time.Duration) *testServer {
	t.Helper()

	mr := miniredis.RunT(t)
	redisClient := redislib.NewClient(&redislib.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = redisClient.Close() })

	jwtCfg := config.JWTConfig{
		Secret:             "e2e-test-secret",
		AccessTokenExpiry:  accessTTL,
		RefreshTokenExpiry: refreshTTL,
		Issuer:             "todolist-test",
	}

	tokenService, err := jwt.NewTokenService(jwtCfg.Secret, jwtCfg.AccessTokenExpiry, jwtCfg.RefreshTokenExpiry, jwtCfg.Issuer)
	require.NoError(t, err)

	userRepo := newMemUserRepo()
	taskRepo := newMemTaskRepo()
	tokenRepo := redisrepo.NewRefreshTokenRepository(redisClient, refreshTTL)

	validate := validator.NewValidator()
	authService := service.NewAuthService(userRepo, tokenRepo, tokenService)
	userService := service.NewUserService(userRepo, nil)
	taskService := service.NewTaskService(taskRepo)

	app := fiber.New()
	handler.SetupRoutes(
		app,
		handler.NewAuthHandler(authService, validate, jwtCfg),
		handler.NewUserHandler(userService, validate),
		handler.NewTaskHandler(taskService, validate),
		nil,
		middleware.AuthMiddleware(tokenService, userRepo),
	)

	return &testServer{app: app, tokenService: tokenService}
}

func (s *testServer) do(t *testing.T, method, path string, body any, cookies []*http.Cookie) *http.Response {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()

	defer resp.Body.Close()
	var out map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

func (s *testServer) register(t *testing.T, name, email, password string) {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/users", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusCreated, resp.StatusCode)
}

func (s *testServer) login(t *testing.T, username, password string) (*http.Response, map[string]any) {
	t.Helper()

	resp := s.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": username,
		"password": password,
	}, nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	return resp, decodeBody(t, resp)
}

func findCookie(cookies []*http.Cookie, name string) *http.Cookie {
	for _, cookie := range cookies {
		if cookie.Name == name {
			return cookie
		}
	}
	return nil
}

func TestLoginAndMe(t *testing.T) {
	srv := newTestServer(t, 15*time.Minute, 24*time.Hour)
	srv.register(t, "Alice", "alice@example.com", "secret12")

	resp, body := srv.login(t, "alice@example.com", "secret12")
	require.NotEmpty(t, body["access_token"])
	require.NotEmpty(t, body["refresh_token"])

	cookies := resp.Cookies()
	require.NotNil(t, findCookie(cookies, middleware.AccessTokenCookie))
	require.NotNil(t, findCookie(cookies, middleware.RefreshTokenCookie))

	meResp := srv.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusOK, meResp.StatusCode)

	me := decodeBody(t, meResp)
	require.Equal(t, "alice@example.com", me["email"])
	require.Nil(t, me["password_hash"])
}

func TestLoginWrongPassword(t *testing.T) {
	srv := newTestServer(t, 15*time.Minute, 24*time.Hour)
	srv.register(t, "Alice", "alice@example.com", "secret12")

	resp := srv.do(t, http.MethodPost, "/api/auth/login", map[string]string{
		"username": "alice@example.com",
		"password": "wrongpass",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestMeWithoutCookies(t *testing.T) {
	srv := newTestServer(t, 15*time.Minute, 24*time.Hour)

	resp := srv.do(t, http.MethodGet, "/api/auth/me", nil, nil)
	require.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestLogoutRevokesRefreshToken(t *testing.T) {
	srv := newTestServer(t, 15*time.Minute, 24*time.Hour)
	srv.register(t, "Alice", "alice@example.com", "secret12")

	resp, _ := srv.login(t, "alice@example.com", "secret12")
	cookies := resp.Cookies()

	logoutResp := srv.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)
	require.Equal(t, "Successfully logged out", decodeBody(t, logoutResp)["detail"])

	// The old refresh token is revoked: it can no longer mint a new pair
	// even though it is still cryptographically valid.
	refreshResp := srv.do(t, http.MethodPost, "/api/auth/refresh", nil,
		[]*http.Cookie{findCookie(cookies, middleware.RefreshTokenCookie)})
	require.Equal(t, http.StatusUnauthorized, refreshResp.StatusCode)

	// Logging out again with the stale cookies is not an error.
	secondLogout := srv.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, secondLogout.StatusCode)
}

func TestStaleAccessTokenStillResolvesUntilExpiry(t *testing.T) {
	// The gate is stateless for access tokens: after logout a stale access
	// cookie keeps working until its embedded expiry passes.
	srv := newTestServer(t, 15*time.Minute, 24*time.Hour)
	srv.register(t, "Alice", "alice@example.com", "secret12")

	resp, _ := srv.login(t, "alice@example.com", "secret12")
	cookies := resp.Cookies()

	logoutResp := srv.do(t, http.MethodPost, "/api/auth/logout", nil, cookies)
	require.Equal(t, http.StatusOK, logoutResp.StatusCode)

	meResp := srv.do(t, http.MethodGet, "/api/auth/me", nil,
		[]*http.Cookie{findCookie(cookies, middleware.AccessTokenCookie)})
	require.Equal(t, http.StatusOK, meResp.StatusCode)
}

func TestRefreshWithExpiredAccessToken(t *testing.T) {
	// Access tokens are issued already expired; only the refresh token is
	// usable. Mirrors a client coming back after the access TTL.
	srv := newTestServer(t, -time.Hour, 24*time.Hour)
	srv.register(t, "Alice", "alice@example.com", "secret12")

	resp, body := srv.login(t, "alice@example.com", "secret12")
	cookies := resp.Cookies()

	// With the expired access cookie present the gate turns the request away.
	meResp := srv.do(t, http.MethodGet, "/api/auth/me", nil, cookies)
	require.Equal(t, http.StatusUnauthorized, meResp.StatusCode)

	oldClaims, err := srv.tokenService.DecodeToken(body["access_token"].(string))
	require.NoError(t, err)

	// exp has second precision; make sure the new pair lands in a later one.
	time.Sleep(1100 * time.Millisecond)

	refreshResp := srv.do(t, http.MethodPost, "/api/auth/refresh", nil,
		[]*http.Cookie{findCookie(cookies, middleware.RefreshTokenCookie)})
	require.Equal(t, http.StatusOK, refreshResp.StatusCode)

	refreshed := decodeBody(t, refreshResp)
	require.NotEmpty(t, refreshed["access_token"])

	newClaims, err := srv.tokenService.DecodeToken(refreshed["access_token"].(string))
	require.NoError(t, err)
	require.True(t, newClaims.ExpiresAt.Time.After(oldClaims.ExpiresAt.Time))

	newCookies := refreshResp.Cookies()
	require.NotNil(t, findCookie(newCookies, middleware.AccessTokenCookie))
	require.NotNil(t, findCookie(newCookies, middleware.RefreshTokenCookie))
}

func TestRefreshRotatesStoredToken(t *testing.T) {
	srv := newTestServer(t, 15*time.Minute, 24*time.Hour)
	srv.register(t, "Alice", "alice@example.com", "secret12")

	resp, body := srv.login(t, "alice@example.com", "secret12")
	cookies := resp.Cookies()

	refreshResp := srv.do(t, http.MethodPost, "/api/auth/refresh", nil, cookies)
	require.Equal(t, http.StatusOK, refreshResp.StatusCode)
	refreshed := decodeBody(t, refreshResp)
	require.NotEqual(t, body["refresh_token"], refreshed["refresh_token"])

	// The replaced refresh token is now revoked.
	secondRefresh := srv.do(t, http.MethodPost, "/api/auth/refresh", nil,
		[]*http.Cookie{findCookie(cookies, middleware.RefreshTokenCookie)})
	require.Equal(t, http.StatusUnauthorized, secondRefresh.StatusCode)
}

func TestTasksRequireSession(t *testing.T) {
	srv := newTestServer(t, 15*time.Minute, 24*time.Hour)
	srv.register(t, "Alice", "alice@example.com", "secret12")

	noAuth := srv.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "write tests"}, nil)
	require.Equal(t, http.StatusForbidden, noAuth.StatusCode)

	resp, _ := srv.login(t, "alice@example.com", "secret12")
	cookies := resp.Cookies()

	created := srv.do(t, http.MethodPost, "/api/tasks", map[string]string{"title": "write tests"}, cookies)
	require.Equal(t, http.StatusCreated, created.StatusCode)

	task := decodeBody(t, created)
	require.Equal(t, "write tests", task["title"])
	require.Equal(t, "pending", task["status"])
}
