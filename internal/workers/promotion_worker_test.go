package workers

import (
	"testing"
	"time"

	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
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
	require.NoError(t, db.AutoMigrate(&models.PsychologistProfile{}, &models.InstituteProfile{}))
	return db
}

func TestRunOnceClearsExpiredPromotions(t *testing.T) {
	db := openTestDB(t)
	repo := repositories.NewProfileRepository()

	expired := &models.PsychologistProfile{
		UserID:          "user-1",
		Specializations: models.EmptyStringList(),
		Languages:       models.EmptyStringList(),
		Certifications:  models.EmptyStringList(),
		IsPublic:        true,
	}
	require.NoError(t, db.Create(expired).Error)
	require.NoError(t, repo.ApplyPromotion(db, models.PromotionTypePsychologist, expired.ID, 1, time.Now().Add(-time.Minute)))

	active := &models.InstituteProfile{
		UserID:   "user-2",
		Programs: models.EmptyStringList(),
		IsPublic: true,
	}
	require.NoError(t, db.Create(active).Error)
	require.NoError(t, repo.ApplyPromotion(db, models.PromotionTypeInstitution, active.ID, 2, time.Now().Add(time.Hour)))

	worker := NewPromotionWorker(db, repo, time.Hour)
	worker.RunOnce()

	stored, err := repo.FindPsychologistByID(db, expired.ID)
	require.NoError(t, err)
	assert.False(t, stored.IsTop)
	assert.Nil(t, stored.PromotionTier)

	institute, err := repo.FindInstituteByID(db, active.ID)
	require.NoError(t, err)
	assert.True(t, institute.IsTop)
}

func TestNewPromotionWorkerDefaultsInterval(t *testing.T) {
	worker := NewPromotionWorker(nil, repositories.NewProfileRepository(), 0)
	assert.Equal(t, time.Hour, worker.interval)
}
