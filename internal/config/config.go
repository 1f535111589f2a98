package config

import (
	"log"
	"os"
)

type Config struct {
	Port       string
	DBDSN      string
	MediaDir   string
	LogFile    string
	CORSOrigin string
	SwapPolicy string // "free" | "transfer"
}

func Load() Config {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	dsn := os.Getenv("DB_DSN")
	if dsn == "" {
		dsn = "rewear.db"
	} // sqlite file in project root
	media := os.Getenv("MEDIA_DIR")
	if media == "" {
		media = "./media"
	}
	logFile := os.Getenv("LOG_FILE")
	if logFile == "" {
		logFile = "./rewear.log"
	}
	origin := os.Getenv("CORS_ORIGIN")
	if origin == "" {
		// Vite dev server default; the SPA is served separately.
		origin = "http://localhost:5173"
	}
	policy := os.Getenv("SWAP_POLICY")
	if policy != "transfer" {
		policy = "free"
	}

	cfg := Config{Port: port, DBDSN: dsn, MediaDir: media, LogFile: logFile, CORSOrigin: origin, SwapPolicy: policy}
	log.Printf("[config] PORT=%s DB_DSN=%s MEDIA_DIR=%s LOG_FILE=%s SWAP_POLICY=%s", cfg.Port, cfg.DBDSN, cfg.MediaDir, cfg.LogFile, cfg.SwapPolicy)
	return cfg
}
