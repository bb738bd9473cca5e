package controllerImp

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"gourd/entities"
	"gourd/pkg/timing"
)

var appStart = time.Now()

type HealthCtrl struct {
	db *gorm.DB
}

func NewHealthCtrl(db *gorm.DB) *HealthCtrl { return &HealthCtrl{db: db} }

type check struct {
	OK  bool   `json:"ok"`
	Err string `json:"err,omitempty"`
}

func (h *HealthCtrl) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 800*time.Millisecond)
	defer cancel()

	db := check{OK: true}
	if h.db == nil {
		db = check{Err: "gorm db is nil"}
	} else if sqlDB, err := h.db.DB(); err != nil {
		db = check{Err: "db.DB(): " + err.Error()}
	} else if err := sqlDB.PingContext(ctx); err != nil {
		db = check{Err: "ping: " + err.Error()}
	}

	// species reference data must cover the full enum or window math
	// silently degrades for users
	table := check{OK: true}
	for _, s := range entities.AllSpecies {
		if _, ok := timing.Lookup(s); !ok {
			table = check{Err: "missing timing entry for " + string(s)}
			break
		}
	}

	allOK := db.OK && table.OK
	status := http.StatusOK
	if !allOK {
		status = http.StatusServiceUnavailable
	}

	return c.JSON(status, map[string]any{
		"status":     map[string]any{"ok": allOK},
		"uptime_sec": int(time.Since(appStart).Seconds()),
		"checks": map[string]any{
			"database":     db,
			"species_data": table,
		},
		"time": time.Now().Format(time.RFC3339),
	})
}
