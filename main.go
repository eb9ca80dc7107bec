package main

import (
	"log"
	"net/http"

	"cdash/internal/config"
	"cdash/internal/health"
	"cdash/internal/server"
	"cdash/internal/session"
)

func main() {
	log.Println("🚀 Starting complaints dashboard...")

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("❌ Invalid configuration:", err)
	}
	if cfg.DebugMode {
		log.Println("🐛 Debug mode enabled")
	}

	log.Println("📋 Initializing session store...")
	store := session.New(cfg.SessionTTL, cfg.MaxSessions)
	store.StartJanitor(cfg.SweepInterval)
	defer store.Stop()

	monitor := health.NewMonitor()

	srv := server.NewServer(cfg, store, monitor)
	mux := srv.SetupRoutes()

	log.Printf("✓ Expecting sheet %q in uploads (max %d bytes)", cfg.SheetName, cfg.MaxUploadBytes)
	log.Printf("🌐 Dashboard listening on :%s", cfg.HTTPPort)
	if err := http.ListenAndServe(":"+cfg.HTTPPort, mux); err != nil {
		log.Fatal("❌ Server failed:", err)
	}
}
