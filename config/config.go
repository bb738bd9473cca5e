package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port        string
	Timezone    string
	DBPath      string
	RequireAuth bool
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:        get("PORT", "8080"),
		Timezone:    get("TZ", "Asia/Manila"),
		DBPath:      get("DB_PATH", "gourd.db"),
		RequireAuth: get("REQUIRE_AUTH", "false") == "true",
	}
	log.Printf("[cfg] %+v", cfg)
	return cfg
}
