package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/config"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/database"
	"github.com/Jeroboam-francis/Backend-BlogItwebsite/internal/router"

	"github.com/sirupsen/logrus"
)

func main() {
	log := logrus.New()

	// load configuration
	cfg, err := config.Load("config.yaml")
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	if level, err := logrus.ParseLevel(cfg.Log.Level); err == nil {
		log.SetLevel(level)
	}
	if cfg.Production() {
		log.SetFormatter(&logrus.JSONFormatter{})
	}

	if cfg.JWT.Secret == "" {
		log.Fatal("jwt.secret must be set")
	}

	// ensure basic directories exist
	if err := ensureDir(filepath.Dir(cfg.Database.Path)); err != nil {
		log.Fatalf("create data dir: %v", err)
	}
	if err := ensureDir(cfg.Upload.Dir); err != nil {
		log.Fatalf("create upload dir: %v", err)
	}

	// init database
	db, err := database.Init(cfg.Database)
	if err != nil {
		log.Fatalf("init database: %v", err)
	}

	// run migrations
	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("migrate database: %v", err)
	}

	r := router.SetupRouter(cfg, db, log)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Address, cfg.Server.Port)
	log.WithFields(logrus.Fields{"addr": addr, "mode": cfg.Server.Mode}).Info("server starting")
	if err := r.Run(addr); err != nil {
		log.Fatalf("run server: %v", err)
	}
}

func ensureDir(dir string) error {
	if dir == "" || dir == "." {
		return nil
	}
	return os.MkdirAll(dir, 0o755)
}
