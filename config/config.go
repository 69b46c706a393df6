package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	AdminMarkerHeader = "header"
	AdminMarkerToken  = "token"
)

type Config struct {
	Port          string
	DBDriver      string
	DatabaseURL   string
	JWTSecret     []byte
	AdminMarker   string
	AdminEmail    string
	AdminPassword string
	AllowOrigins  []string
	SeedSamples   bool
	BackupDir     string
	BackupHour    int
	BackupKeep    time.Duration
}

// LoadConfig reads .env (if present) and the process environment.
func LoadConfig() *Config {
	_ = godotenv.Load()

	marker := strings.ToLower(getEnvOrDefault("ADMIN_MARKER", AdminMarkerHeader))
	if marker != AdminMarkerToken {
		marker = AdminMarkerHeader
	}

	return &Config{
		Port:          getEnvOrDefault("PORT", "4000"),
		DBDriver:      strings.ToLower(getEnvOrDefault("DB_DRIVER", "sqlite")),
		DatabaseURL:   getEnvOrDefault("DATABASE_URL", "mydb.sqlite"),
		JWTSecret:     []byte(os.Getenv("JWT_SECRET")),
		AdminMarker:   marker,
		AdminEmail:    getEnvOrDefault("ADMIN_EMAIL", "admin@thestore.fh"),
		AdminPassword: getEnvOrDefault("ADMIN_PASSWORD", "th3bestPassw0rd"),
		AllowOrigins:  splitList(getEnvOrDefault("CORS_ORIGINS", "*")),
		SeedSamples:   getEnvOrDefault("SEED_SAMPLES", "true") != "false",
		BackupDir:     os.Getenv("BACKUP_DIR"),
		BackupHour:    getEnvInt("BACKUP_HOUR", 2),
		BackupKeep:    time.Duration(getEnvInt("BACKUP_KEEP_DAYS", 4)) * 24 * time.Hour,
	}
}

func getEnvOrDefault(key, def string) string {
	val := os.Getenv(key)
	if val == "" {
		return def
	}
	return val
}

func getEnvInt(key string, def int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}
	return n
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
