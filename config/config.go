package config

import (
	"fmt"
	"log"
	"os"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Amankrah/ecodish365/models"
)

var (
	DB     *gorm.DB
	Logger *zap.Logger = zap.NewNop()
)

// InitLogger builds the process logger. LOG_LEVEL selects debug/info/warn;
// anything else falls back to info.
func InitLogger() {
	cfg := zap.NewProductionConfig()
	if level, err := zap.ParseAtomicLevel(os.Getenv("LOG_LEVEL")); err == nil {
		cfg.Level = level
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to build logger: %v", err)
	}
	Logger = logger
}

func InitDB() {
	if err := godotenv.Load(); err != nil {
		Logger.Warn("no .env file found, using environment")
	}

	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		Logger.Fatal("Failed to connect to database", zap.Error(err))
	}

	err = DB.AutoMigrate(
		&models.CNFFood{},
		&models.CNFFoodGroup{},
		&models.CNFNutrientName{},
		&models.CNFNutrientAmount{},
	)
	if err != nil {
		Logger.Fatal("AutoMigrate failed", zap.Error(err))
	}
}
