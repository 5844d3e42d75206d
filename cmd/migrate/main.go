package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"gin-gorm-shop/internal/core/config"
	"gin-gorm-shop/internal/core/database"
	"gin-gorm-shop/internal/core/logger"
	"gin-gorm-shop/internal/repo"
)

// 一次性建表，部署时在 api 之前跑
func main() {
	_ = godotenv.Load()
	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		fmt.Fprintln(os.Stderr, "load config:", err)
		os.Exit(1)
	}
	log, cleanup := logger.New(cfg.Log.Level, cfg.Log.JSON)
	defer cleanup()

	db, err := database.NewGorm(database.Opts{
		Driver:             cfg.DB.Driver,
		DSN:                cfg.DB.DSN,
		Username:           cfg.DB.Username,
		Password:           cfg.DB.Password,
		MaxOpenConns:       2,
		MaxIdleConns:       1,
		ConnMaxLifetimeMin: cfg.DB.ConnMaxLifetimeMin,
		LogLevel:           cfg.DB.LogLevel,
	})
	if err != nil {
		log.Fatal("db open", zap.Error(err))
	}
	if err := repo.NewStore(db).AutoMigrate(); err != nil {
		log.Fatal("migrate failed", zap.Error(err))
	}
	log.Info("migrate done", zap.String("driver", cfg.DB.Driver))
}
