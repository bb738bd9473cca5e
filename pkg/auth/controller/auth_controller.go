package controller

import "github.com/labstack/echo/v4"

// AuthController covers the dev session bootstrap. Production auth lives in
// the mobile app's gateway; these endpoints only set/echo the uid cookie.
type AuthController interface {
	DevLogin(c echo.Context) error
	WhoAmI(c echo.Context) error
}
