package main

import (
	"context"
	"os"

	"backoffice-service/config"
	"backoffice-service/internal/schema"
	"backoffice-service/pkg/database"
	"backoffice-service/pkg/logger"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	isDev := os.Getenv("ENV") == "development"
	if err := logger.Init(isDev); err != nil {
		panic(err)
	}

	defer logger.Sync()

	log := logger.L()

	cfg := config.Load(log)

	db := database.ConnectDB(&cfg.DB.Config, log)
	defer database.CloseDB(db, log)

	if err := schema.Apply(context.Background(), db, log, schema.DefaultOptions()); err != nil {
		log.Fatal("Ошибка при применении схемы", zap.Error(err))
	}

	log.Info("Схема успешно применена")
}
