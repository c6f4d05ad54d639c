package middleware

// identity.go defines helper functions shared across middleware files.
// currentUserID identifies the caller for rate-limit and cache keys.

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/labstack/echo/v4"
)

// currentUserID returns a string form of the caller's identity.  It
// prefers the user id injected by JWTAuth; when the middleware runs
// before JWTAuth (the global rate limiter does), it falls back to a
// digest of the presented bearer token so distinct callers still get
// distinct buckets.  "anon" is returned only for requests carrying
// no identity at all.
func currentUserID(c echo.Context) string {
	v := c.Get("user_id")
	switch t := v.(type) {
	case string:
		if t != "" {
			return t
		}
	case float64:
		return fmt.Sprintf("%.0f", t)
	case uint64:
		return fmt.Sprintf("%d", t)
	case int64:
		return fmt.Sprintf("%d", t)
	}
	if auth := c.Request().Header.Get("Authorization"); strings.HasPrefix(auth, "Bearer ") {
		sum := sha256.Sum256([]byte(strings.TrimPrefix(auth, "Bearer ")))
		return "tok-" + hex.EncodeToString(sum[:8])
	}
	return "anon"
}
