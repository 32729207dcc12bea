package routes

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"rentwise-portal/internal/adapters/cache"
	"rentwise-portal/internal/adapters/http/handlers"
	"rentwise-portal/internal/adapters/http/middleware"
	"rentwise-portal/internal/adapters/marketapi"
	"rentwise-portal/internal/adapters/persistence/models"
	"rentwise-portal/internal/config"
	"rentwise-portal/internal/pkg/logger"
)

// upstream is a scripted marketplace API keyed by "METHOD /path"
type upstream struct {
	*httptest.Server
	mu       sync.Mutex
	routes   map[string]http.HandlerFunc
	calls    []string
	requests map[string]*http.Request
	bodies   map[string]string
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()
	u := &upstream{
		routes:   map[string]http.HandlerFunc{},
		requests: map[string]*http.Request{},
		bodies:   map[string]string{},
	}
	u.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.Method + " " + r.URL.Path
		body, _ := io.ReadAll(r.Body)

		u.mu.Lock()
		u.calls = append(u.calls, key)
		u.requests[key] = r
		u.bodies[key] = string(body)
		h, ok := u.routes[key]
		u.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"not found"}`))
			return
		}
		h(w, r)
	}))
	t.Cleanup(u.Close)

	u.on("GET /users/me", http.StatusOK, `{"id":"u1","email":"tenant@example.ae","first_name":"Sara"}`)
	return u
}

func (u *upstream) on(key string, status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.routes[key] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}
}

func (u *upstream) called(key string) int {
	u.mu.Lock()
	defer u.mu.Unlock()
	n := 0
	for _, c := range u.calls {
		if c == key {
			n++
		}
	}
	return n
}

func (u *upstream) body(key string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.bodies[key]
}

func (u *upstream) header(key, name string) string {
	u.mu.Lock()
	defer u.mu.Unlock()
	if r, ok := u.requests[key]; ok {
		return r.Header.Get(name)
	}
	return ""
}

func testConfig() *config.Config {
	return &config.Config{
		AppMode:     "dev",
		AppName:     "rentwise-portal-test",
		MarketAPI:   config.MarketAPIConfig{Timeout: 5 * time.Second},
		Session:     config.SessionConfig{Secret: "test-secret", TTLHours: 2, PendingRoleMins: 30},
		Cookie:      config.CookieConfig{Name: "rw_session", SameSite: "lax"},
		Redis:       config.RedisConfig{TTL: time.Minute},
		BidBounds:   config.BidBoundsConfig{MinPercent: 0.7, MaxPercent: 1.0},
		FrontendURL: "http://front.test",
	}
}

func setupApp(t *testing.T) (*fiber.App, *upstream) {
	t.Helper()
	up := newUpstream(t)
	cfg := testConfig()

	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	market := marketapi.NewClient(up.URL, cfg.MarketAPI.Timeout)
	svc := NewServices(cfg, db, market, cache.NewMemory())

	app := fiber.New(fiber.Config{ErrorHandler: middleware.CustomErrorHandler})
	middleware.Setup(app, cfg, logger.Discard())
	Setup(app, svc, cfg, map[string]handlers.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	})
	return app, up
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
	Details json.RawMessage `json:"details"`
}

func do(t *testing.T, app *fiber.App, method, path, body, cookie string) (*http.Response, envelope) {
	t.Helper()
	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, r)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if cookie != "" {
		req.Header.Set("Cookie", "rw_session="+cookie)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var env envelope
	raw, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(raw, &env)
	return resp, env
}

func sessionCookie(resp *http.Response) string {
	for _, c := range resp.Cookies() {
		if c.Name == "rw_session" {
			return c.Value
		}
	}
	return ""
}

// signIn runs the callback for a user whose role is already assigned
func signIn(t *testing.T, app *fiber.App, up *upstream, roleID int) string {
	t.Helper()
	up.on("GET /users/me/role-status", http.StatusOK, fmt.Sprintf(`{"role_assigned":true,"role":%d}`, roleID))
	resp, _ := do(t, app, http.MethodGet, "/api/v1/auth/callback?token=opaque-token", "", "")
	require.Equal(t, http.StatusFound, resp.StatusCode)
	cookie := sessionCookie(resp)
	require.NotEmpty(t, cookie)
	return cookie
}
