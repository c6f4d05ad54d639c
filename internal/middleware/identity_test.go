package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func identityCtx(t *testing.T, authHeader string, userID interface{}) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	if userID != nil {
		c.Set("user_id", userID)
	}
	return c
}

func TestCurrentUserIDFromContext(t *testing.T) {
	if got := currentUserID(identityCtx(t, "", uint64(7))); got != "7" {
		t.Fatalf("currentUserID = %q, want 7", got)
	}
	if got := currentUserID(identityCtx(t, "", float64(12))); got != "12" {
		t.Fatalf("currentUserID = %q, want 12", got)
	}
}

func TestCurrentUserIDBearerFallback(t *testing.T) {
	a := currentUserID(identityCtx(t, "Bearer token-one", nil))
	b := currentUserID(identityCtx(t, "Bearer token-two", nil))
	if a == "anon" || b == "anon" {
		t.Fatal("bearer-carrying request collapsed to anon")
	}
	if a == b {
		t.Fatal("distinct tokens produced the same identity")
	}
	if again := currentUserID(identityCtx(t, "Bearer token-one", nil)); again != a {
		t.Fatal("identity not stable for the same token")
	}
}

func TestCurrentUserIDAnon(t *testing.T) {
	if got := currentUserID(identityCtx(t, "", nil)); got != "anon" {
		t.Fatalf("currentUserID = %q, want anon", got)
	}
}
