package middleware

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// DevUser resolves the acting user in development. Real deployments sit
// behind the mobile app's auth gateway, which injects X-User-Id; locally a
// cookie (or ?uid= query) stands in so the API stays usable from curl.
func DevUser() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			uid := ""
			if ck, err := c.Cookie("GOURD_UID"); err == nil {
				uid = ck.Value
			}
			if uid == "" {
				if q := c.QueryParam("uid"); q != "" {
					c.SetCookie(&http.Cookie{Name: "GOURD_UID", Value: q, Path: "/"})
					uid = q
				} else {
					uid = "U_DEV_DEFAULT"
					c.SetCookie(&http.Cookie{Name: "GOURD_UID", Value: uid, Path: "/"})
				}
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}

// RequireUser enforces an authenticated user id from the gateway. When
// enabled=false it passes through so DevUser can fill the gap.
func RequireUser(enabled bool) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if !enabled {
				return next(c)
			}
			uid := c.Request().Header.Get("X-User-Id")
			if uid == "" {
				if ck, err := c.Cookie("GOURD_UID"); err == nil {
					uid = ck.Value
				}
			}
			if uid == "" {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing user id"})
			}
			c.Set("uid", uid)
			return next(c)
		}
	}
}
