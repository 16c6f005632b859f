package middleware

// identity.go defines helper functions shared across middleware files. Currently
// it provides a userID extraction function that reads the user_id value stored
// in the Echo context by JWTAuth. When no user is authenticated, "guest" is
// returned so that unauthenticated traffic still buckets under a stable key.

import (
	"strconv"

	"github.com/labstack/echo/v4"
)

// userID extracts a user identifier from the Echo context. JWTAuth stores the
// sub claim under "user_id"; depending on how the token was parsed the value
// may be a string or a JSON number, so both are handled. It returns "guest"
// when no user is authenticated.
func userID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return strconv.FormatUint(uint64(v), 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case int64:
		return strconv.FormatInt(v, 10)
	case int:
		return strconv.Itoa(v)
	}
	return "guest"
}
