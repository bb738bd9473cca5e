package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"gourd/config"
	"gourd/database"
	"gourd/router"

	authCtrlImp "gourd/pkg/auth/controllerImp"
	healthCtrlImp "gourd/pkg/health/controllerImp"
	plantCtrlImp "gourd/pkg/plant/controllerImp"
	plantRepoImp "gourd/pkg/plant/repositoryImp"
	plantSvcImp "gourd/pkg/plant/serviceImp"
)

func main() {
	// 1) Config
	cfg := config.Load()

	if loc, err := time.LoadLocation(cfg.Timezone); err == nil {
		time.Local = loc
	} else {
		log.Printf("[main] bad TZ %q: %v", cfg.Timezone, err)
	}

	// 2) DB (sqlite) + automigrate
	db := database.OpenSQLite(cfg.DBPath)

	// 3) Wiring
	plantRepo := plantRepoImp.New(db)
	plantSvc := plantSvcImp.New(plantRepo)
	plants := plantCtrlImp.New(plantSvc)
	authCtrl := authCtrlImp.NewAuthController()
	healthCtrl := healthCtrlImp.NewHealthCtrl(db)

	// 4) Echo
	e := echo.New()
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.Logger())

	router.New(e, cfg.RequireAuth, plants, authCtrl, healthCtrl)

	log.Printf("[main] listening on :%s", cfg.Port)
	if err := e.Start(":" + cfg.Port); err != nil {
		log.Fatalf("server: %v", err)
	}
}
