package router

import (
	"github.com/labstack/echo/v4"

	"gourd/pkg/middleware"
	plantCtrl "gourd/pkg/plant/controller"
)

func New(
	e *echo.Echo,
	requireAuth bool,
	plants plantCtrl.PlantController,
	authCtrl interface {
		DevLogin(echo.Context) error
		WhoAmI(echo.Context) error
	},
	healthCtrl interface{ Health(echo.Context) error },
) *echo.Echo {
	e.Use(middleware.DevUser())
	e.Use(middleware.RequireUser(requireAuth))

	e.GET("/health", healthCtrl.Health)
	e.GET("/whoami", authCtrl.WhoAmI)
	e.GET("/devlogin", authCtrl.DevLogin)

	// static reference data
	e.GET("/plants/types", plants.Types)

	g := e.Group("/plants")
	g.POST("", plants.Create)
	g.GET("", plants.List)
	g.GET("/attention", plants.Attention)
	g.GET("/upcoming", plants.Upcoming)
	g.GET("/dashboard", plants.Dashboard)
	g.GET("/export", plants.Export)
	g.GET("/:id", plants.Get)
	g.PUT("/:id", plants.Update)
	g.DELETE("/:id", plants.Delete)

	// lifecycle transitions
	g.POST("/:id/flowering", plants.Flowering)
	g.POST("/:id/pollinate", plants.Pollinate)
	g.POST("/:id/notes", plants.AddNote)
	g.PUT("/:id/image", plants.SetImage)
	g.DELETE("/:id/image", plants.DeleteImage)
	g.POST("/:id/outcome", plants.Outcome)
	g.POST("/:id/harvest", plants.Harvest)

	// reminder polling
	e.GET("/notifications", plants.Notifications)
	e.POST("/notifications/:id/sent", plants.NotificationSent)

	return e
}
