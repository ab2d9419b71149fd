package repositories

import (
	"testing"
	"time"

	"psyhub_backend/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newPendingRequest(t *testing.T, db *gorm.DB, paymentID string) *models.PromotionRequest {
	t.Helper()
	request := &models.PromotionRequest{
		UserID:    "user-1",
		Type:      models.PromotionTypePsychologist,
		EntityID:  "entity-1",
		PaymentID: paymentID,
		Amount:    5900,
		Tier:      1,
		Status:    models.PromotionStatusPending,
	}
	require.NoError(t, db.Create(request).Error)
	return request
}

func TestTransitionFromPendingHappyPath(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()
	newPendingRequest(t, db, "pay-1")

	won, err := repo.TransitionFromPending(db, "pay-1", models.PromotionStatusCompleted)
	require.NoError(t, err)
	assert.True(t, won)

	stored, err := repo.FindByPaymentID(db, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusCompleted, stored.Status)
}

func TestTransitionFromPendingIsIdempotent(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()
	newPendingRequest(t, db, "pay-1")

	won, err := repo.TransitionFromPending(db, "pay-1", models.PromotionStatusCompleted)
	require.NoError(t, err)
	require.True(t, won)

	// Повторная доставка webhook-а проигрывает CAS
	won, err = repo.TransitionFromPending(db, "pay-1", models.PromotionStatusCompleted)
	require.NoError(t, err)
	assert.False(t, won)

	// И статус не перетирается даже противоположным событием
	won, err = repo.TransitionFromPending(db, "pay-1", models.PromotionStatusFailed)
	require.NoError(t, err)
	assert.False(t, won)

	stored, err := repo.FindByPaymentID(db, "pay-1")
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusCompleted, stored.Status)
}

func TestTransitionFromPendingUnknownPayment(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()

	won, err := repo.TransitionFromPending(db, "missing", models.PromotionStatusCompleted)
	require.NoError(t, err)
	assert.False(t, won)
}

func TestFindByPaymentIDNotFound(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()

	_, err := repo.FindByPaymentID(db, "missing")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestFindLatestPendingPicksNewest(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()

	older := newPendingRequest(t, db, "pay-old")
	require.NoError(t, db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	newPendingRequest(t, db, "pay-new")

	found, err := repo.FindLatestPending(db, models.PromotionTypePsychologist, "entity-1")
	require.NoError(t, err)
	assert.Equal(t, "pay-new", found.PaymentID)
}

func TestFindLatestPendingSkipsSettled(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()
	newPendingRequest(t, db, "pay-1")

	_, err := repo.TransitionFromPending(db, "pay-1", models.PromotionStatusCompleted)
	require.NoError(t, err)

	_, err = repo.FindLatestPending(db, models.PromotionTypePsychologist, "entity-1")
	assert.ErrorIs(t, err, ErrPaymentNotFound)
}

func TestFindByUserNewestFirst(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()

	older := newPendingRequest(t, db, "pay-old")
	require.NoError(t, db.Model(older).UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)
	newPendingRequest(t, db, "pay-new")

	requests, err := repo.FindByUser(db, "user-1")
	require.NoError(t, err)
	require.Len(t, requests, 2)
	assert.Equal(t, "pay-new", requests[0].PaymentID)
	assert.Equal(t, "pay-old", requests[1].PaymentID)
}

func TestFindByUserEmptyHistory(t *testing.T) {
	db := openTestDB(t)
	repo := NewPromotionRepository()

	requests, err := repo.FindByUser(db, "nobody")
	require.NoError(t, err)
	assert.Empty(t, requests)
}
