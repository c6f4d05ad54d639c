package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/mentor-session-booking/internal/config"
)

func cacheCtx(t *testing.T, path string, userID interface{}) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCacheKeyScopedToCaller(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}

	a := cacheKeyFrom(cfg, cacheCtx(t, "/v1/me", uint64(1)))
	b := cacheKeyFrom(cfg, cacheCtx(t, "/v1/me", uint64(2)))
	if a == b {
		t.Fatal("same key for two different users on the same route")
	}

	anon := cacheKeyFrom(cfg, cacheCtx(t, "/v1/me", nil))
	if anon == a || anon == b {
		t.Fatal("unauthenticated caller shares a key with an authenticated one")
	}

	again := cacheKeyFrom(cfg, cacheCtx(t, "/v1/me", uint64(1)))
	if again != a {
		t.Fatal("key not stable for the same caller and route")
	}
}

func TestCacheKeyScopedToRoute(t *testing.T) {
	cfg := config.CacheConfig{Prefix: "cache", KeyStrategy: "route_query"}
	me := cacheKeyFrom(cfg, cacheCtx(t, "/v1/me", uint64(1)))
	notif := cacheKeyFrom(cfg, cacheCtx(t, "/v1/notifications", uint64(1)))
	if me == notif {
		t.Fatal("same key for two different routes")
	}
}

func TestNewRedisCachePassThroughWithoutRedis(t *testing.T) {
	cfg := config.CacheConfig{Enabled: true, Methods: map[string]bool{"GET": true}}
	mw := NewRedisCache(cfg, nil)

	called := false
	h := mw(func(c echo.Context) error {
		called = true
		return c.String(http.StatusOK, "ok")
	})

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/v1/bookings", nil)
	rec := httptest.NewRecorder()
	if err := h(e.NewContext(req, rec)); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if !called {
		t.Fatal("next handler not invoked")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
