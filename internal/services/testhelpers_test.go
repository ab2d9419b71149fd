package services

import (
	"testing"

	"psyhub_backend/internal/config"
	"psyhub_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	err = db.AutoMigrate(
		&models.User{},
		&models.PsychologistProfile{},
		&models.InstituteProfile{},
		&models.ClientProfile{},
		&models.PromotionRequest{},
		&models.ServiceItem{},
		&models.Article{},
		&models.Appointment{},
	)
	require.NoError(t, err)

	return db
}

func setTestConfig(t *testing.T) *config.Config {
	t.Helper()

	prev := config.AppConfig
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.RegisterTTLDays = 30
	cfg.JWT.LoginTTLDays = 7
	cfg.Payment.Currency = "KZT"
	cfg.Payment.ReturnURL = "http://localhost/api/v1/payment/success"
	cfg.Payment.DashboardURL = "http://localhost/dashboard"
	config.AppConfig = cfg
	t.Cleanup(func() { config.AppConfig = prev })

	return cfg
}
