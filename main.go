package main

import (
	"log"
	"os"

	"github.com/Fausto-Grilo/VulnWebApp/config"
	orderControllers "github.com/Fausto-Grilo/VulnWebApp/controllers/order"
	"github.com/Fausto-Grilo/VulnWebApp/database"
	"github.com/Fausto-Grilo/VulnWebApp/routes"
	"github.com/gin-gonic/gin"
)

func main() {
	log.Println("✅ Starting application...")

	cfg := config.LoadConfig()
	if mode := os.Getenv("GIN_MODE"); mode != "" {
		gin.SetMode(mode)
	}
	if cfg.AdminMarker == config.AdminMarkerToken && len(cfg.JWTSecret) == 0 {
		log.Fatal("❌ ADMIN_MARKER=token needs JWT_SECRET")
	}

	// Init DB (migrate + seed)
	db, err := database.Init(cfg)
	if err != nil {
		log.Fatalf("❌ DB init failed: %v", err)
	}

	hub := orderControllers.NewHub()
	r := routes.NewRouter(db, cfg, hub)

	if cfg.BackupDir != "" {
		go database.StartDailyBackupAtFixedTime(db, cfg.BackupDir, cfg.BackupKeep, cfg.BackupHour, 0)
	}

	log.Printf("🚀 Server running on port %s...", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Failed to start server: %v", err)
	}
}
