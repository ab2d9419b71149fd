package repositories

import (
	"testing"

	"psyhub_backend/internal/models"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// openTestDB поднимает изолированную in-memory базу на каждый тест
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
