package main

import (
	"context"
	"flag"

	"localwear-be/internal/config"
	"localwear-be/internal/db"
	"localwear-be/internal/logger"
	"localwear-be/internal/migrate"

	"go.uber.org/zap"
)

func main() {
	mode := flag.String("mode", migrate.ModeUp, "migration mode: up or down")
	dir := flag.String("dir", "./migrations", "directory holding the migration files")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv, cfg.LogLevel)
	defer logger.Sync()

	database, err := db.NewDatabase(cfg)
	if err != nil {
		logger.L().Fatal("failed to connect db", zap.Error(err))
	}
	defer database.Close()

	if err := migrate.NewRunner(database, *dir).Run(context.Background(), *mode); err != nil {
		logger.L().Fatal("migration failed", zap.String("mode", *mode), zap.Error(err))
	}
}
