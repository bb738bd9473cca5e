package controller

import "github.com/labstack/echo/v4"

type PlantController interface {
	Create(c echo.Context) error
	List(c echo.Context) error
	Get(c echo.Context) error
	Update(c echo.Context) error
	Delete(c echo.Context) error

	Flowering(c echo.Context) error
	Pollinate(c echo.Context) error
	AddNote(c echo.Context) error
	SetImage(c echo.Context) error
	DeleteImage(c echo.Context) error
	Outcome(c echo.Context) error
	Harvest(c echo.Context) error

	Attention(c echo.Context) error
	Upcoming(c echo.Context) error
	Dashboard(c echo.Context) error
	Types(c echo.Context) error
	Export(c echo.Context) error

	Notifications(c echo.Context) error
	NotificationSent(c echo.Context) error
}
