package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/payment"
	"psyhub_backend/internal/repositories"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type promotionFixture struct {
	svc     PromotionService
	gateway *payment.MockGateway
	db      *gorm.DB
	user    *models.User
	profile *models.PsychologistProfile
}

func newPromotionFixture(t *testing.T) *promotionFixture {
	t.Helper()
	cfg := setTestConfig(t)
	db := openTestDB(t)

	user := &models.User{
		Email:        "psy@example.com",
		PasswordHash: "hash",
		Name:         "Психолог",
		Role:         models.UserRolePsychologist,
		IsActive:     true,
	}
	require.NoError(t, db.Create(user).Error)

	profile := &models.PsychologistProfile{
		UserID:          user.ID,
		Specializations: models.EmptyStringList(),
		Languages:       models.EmptyStringList(),
		Certifications:  models.EmptyStringList(),
		IsPublic:        true,
	}
	require.NoError(t, db.Create(profile).Error)

	gateway := payment.NewMockGateway()
	svc := NewPromotionService(
		repositories.NewPromotionRepository(),
		repositories.NewProfileRepository(),
		gateway,
		cfg,
	)

	return &promotionFixture{svc: svc, gateway: gateway, db: db, user: user, profile: profile}
}

func (f *promotionFixture) initiate(t *testing.T, tier int) string {
	t.Helper()
	resp, err := f.svc.Initiate(
		context.Background(), f.db,
		f.user.ID, f.user.Role,
		"psychologist", f.profile.ID, tier,
	)
	require.NoError(t, err)
	require.True(t, resp.Success)

	request, err := repositories.NewPromotionRepository().FindLatestPending(f.db, models.PromotionTypePsychologist, f.profile.ID)
	require.NoError(t, err)
	return request.PaymentID
}

func (f *promotionFixture) webhookEvent(eventType, paymentID string, tier int) *payment.WebhookEvent {
	event := &payment.WebhookEvent{Event: eventType}
	event.Object.ID = paymentID
	event.Object.Metadata = payment.Metadata{
		UserID: f.user.ID,
		Type:   "psychologist",
		Tier:   tier,
	}
	return event
}

func (f *promotionFixture) reloadProfile(t *testing.T) *models.PsychologistProfile {
	t.Helper()
	profile, err := repositories.NewProfileRepository().FindPsychologistByID(f.db, f.profile.ID)
	require.NoError(t, err)
	return profile
}

func TestInitiateRejectsBadTierBeforeGatewayCall(t *testing.T) {
	f := newPromotionFixture(t)

	for _, tier := range []int{0, 3, -1} {
		_, err := f.svc.Initiate(context.Background(), f.db, f.user.ID, f.user.Role, "psychologist", f.profile.ID, tier)
		require.Error(t, err)

		appErr, ok := apperrors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, "Invalid tier value. Must be 1 or 2.", appErr.Message)
	}

	// Провайдера при невалидном тарифе не трогаем
	assert.Zero(t, f.gateway.CallCount())
}

func TestInitiateRejectsBadType(t *testing.T) {
	f := newPromotionFixture(t)

	_, err := f.svc.Initiate(context.Background(), f.db, f.user.ID, f.user.Role, "clinic", f.profile.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrInvalidPromotionType)
	assert.Zero(t, f.gateway.CallCount())
}

func TestInitiateRejectsForeignEntity(t *testing.T) {
	f := newPromotionFixture(t)

	_, err := f.svc.Initiate(context.Background(), f.db, "someone-else", models.UserRolePsychologist, "psychologist", f.profile.ID, 1)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestInitiateUnknownEntity(t *testing.T) {
	f := newPromotionFixture(t)

	_, err := f.svc.Initiate(context.Background(), f.db, f.user.ID, f.user.Role, "psychologist", "missing", 1)
	assert.ErrorIs(t, err, apperrors.ErrProfileNotFound)
}

func TestInitiateCreatesPendingRequest(t *testing.T) {
	f := newPromotionFixture(t)

	resp, err := f.svc.Initiate(context.Background(), f.db, f.user.ID, f.user.Role, "psychologist", f.profile.ID, 1)
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.NotEmpty(t, resp.PaymentURL)
	assert.Equal(t, 1, f.gateway.CallCount())

	request, err := repositories.NewPromotionRepository().FindLatestPending(f.db, models.PromotionTypePsychologist, f.profile.ID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusPending, request.Status)
	assert.Equal(t, float64(5900), request.Amount)
	assert.Equal(t, 1, request.Tier)
	assert.Equal(t, f.user.ID, request.UserID)

	// Профиль до подтверждения оплаты не трогаем
	assert.False(t, f.reloadProfile(t).IsTop)
}

func TestInitiateGatewayFailureLeavesNoRequest(t *testing.T) {
	f := newPromotionFixture(t)
	f.gateway.FailWith = &payment.HTTPError{Status: 402, Body: "insufficient funds"}

	_, err := f.svc.Initiate(context.Background(), f.db, f.user.ID, f.user.Role, "psychologist", f.profile.ID, 1)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 402, appErr.HTTPCode)

	_, err = repositories.NewPromotionRepository().FindLatestPending(f.db, models.PromotionTypePsychologist, f.profile.ID)
	assert.ErrorIs(t, err, repositories.ErrPaymentNotFound)
}

func TestInitiateGatewayNetworkErrorMapsTo502(t *testing.T) {
	f := newPromotionFixture(t)
	f.gateway.FailWith = errors.New("connection refused")

	_, err := f.svc.Initiate(context.Background(), f.db, f.user.ID, f.user.Role, "psychologist", f.profile.ID, 1)
	require.Error(t, err)

	appErr, ok := apperrors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, 502, appErr.HTTPCode)
}

func TestWebhookSuccessAppliesPromotion(t *testing.T) {
	f := newPromotionFixture(t)
	paymentID := f.initiate(t, 2)

	err := f.svc.HandleWebhook(f.db, f.webhookEvent(payment.EventPaymentSucceeded, paymentID, 2))
	require.NoError(t, err)

	request, err := repositories.NewPromotionRepository().FindByPaymentID(f.db, paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusCompleted, request.Status)

	profile := f.reloadProfile(t)
	assert.True(t, profile.IsTop)
	require.NotNil(t, profile.PromotionTier)
	assert.Equal(t, 2, *profile.PromotionTier)
	require.NotNil(t, profile.TopUntil)
	assert.WithinDuration(t, time.Now().Add(PromotionDuration), *profile.TopUntil, time.Minute)
}

func TestWebhookReplayIsIdempotent(t *testing.T) {
	f := newPromotionFixture(t)
	paymentID := f.initiate(t, 1)

	event := f.webhookEvent(payment.EventPaymentSucceeded, paymentID, 1)
	require.NoError(t, f.svc.HandleWebhook(f.db, event))

	firstUntil := *f.reloadProfile(t).TopUntil

	// Провайдер доставил то же событие еще раз
	require.NoError(t, f.svc.HandleWebhook(f.db, event))

	profile := f.reloadProfile(t)
	assert.Equal(t, firstUntil, *profile.TopUntil)
	assert.Equal(t, 1, *profile.PromotionTier)
}

func TestWebhookCancellationMarksFailed(t *testing.T) {
	f := newPromotionFixture(t)
	paymentID := f.initiate(t, 1)

	err := f.svc.HandleWebhook(f.db, f.webhookEvent(payment.EventPaymentCanceled, paymentID, 1))
	require.NoError(t, err)

	request, err := repositories.NewPromotionRepository().FindByPaymentID(f.db, paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusFailed, request.Status)
	assert.False(t, f.reloadProfile(t).IsTop)
}

func TestWebhookAfterCancellationDoesNotResurrect(t *testing.T) {
	f := newPromotionFixture(t)
	paymentID := f.initiate(t, 1)

	require.NoError(t, f.svc.HandleWebhook(f.db, f.webhookEvent(payment.EventPaymentCanceled, paymentID, 1)))
	require.NoError(t, f.svc.HandleWebhook(f.db, f.webhookEvent(payment.EventPaymentSucceeded, paymentID, 1)))

	request, err := repositories.NewPromotionRepository().FindByPaymentID(f.db, paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusFailed, request.Status)
	assert.False(t, f.reloadProfile(t).IsTop)
}

func TestWebhookMissingMetadata(t *testing.T) {
	f := newPromotionFixture(t)
	paymentID := f.initiate(t, 1)

	event := &payment.WebhookEvent{Event: payment.EventPaymentSucceeded}
	event.Object.ID = paymentID

	err := f.svc.HandleWebhook(f.db, event)
	assert.ErrorIs(t, err, apperrors.ErrMissingMetadata)
}

func TestWebhookUnknownPayment(t *testing.T) {
	f := newPromotionFixture(t)

	err := f.svc.HandleWebhook(f.db, f.webhookEvent(payment.EventPaymentSucceeded, "missing", 1))
	assert.ErrorIs(t, err, apperrors.ErrPaymentNotFound)
}

func TestWebhookUnknownEventIsAcknowledged(t *testing.T) {
	f := newPromotionFixture(t)
	paymentID := f.initiate(t, 1)

	err := f.svc.HandleWebhook(f.db, f.webhookEvent("payment.waiting_for_capture", paymentID, 1))
	require.NoError(t, err)

	request, err := repositories.NewPromotionRepository().FindByPaymentID(f.db, paymentID)
	require.NoError(t, err)
	assert.Equal(t, models.PromotionStatusPending, request.Status)
}

func TestRedirectConfirmsPendingPayment(t *testing.T) {
	f := newPromotionFixture(t)
	f.initiate(t, 2)

	err := f.svc.ConfirmByRedirect(f.db, f.user.ID, "psychologist", 2)
	require.NoError(t, err)

	profile := f.reloadProfile(t)
	assert.True(t, profile.IsTop)
	assert.Equal(t, 2, *profile.PromotionTier)
}

func TestRedirectAfterWebhookIsNoOp(t *testing.T) {
	f := newPromotionFixture(t)
	paymentID := f.initiate(t, 1)

	require.NoError(t, f.svc.HandleWebhook(f.db, f.webhookEvent(payment.EventPaymentSucceeded, paymentID, 1)))
	firstUntil := *f.reloadProfile(t).TopUntil

	// Возврат браузера пришел вторым и с другим тарифом в query -
	// состояние он уже не меняет
	require.NoError(t, f.svc.ConfirmByRedirect(f.db, f.user.ID, "psychologist", 2))

	profile := f.reloadProfile(t)
	assert.Equal(t, 1, *profile.PromotionTier)
	assert.Equal(t, firstUntil, *profile.TopUntil)
}

func TestRedirectWithoutPendingIsNoOp(t *testing.T) {
	f := newPromotionFixture(t)

	err := f.svc.ConfirmByRedirect(f.db, f.user.ID, "psychologist", 1)
	require.NoError(t, err)
	assert.False(t, f.reloadProfile(t).IsTop)
}

func TestPaymentHistoryNewestFirst(t *testing.T) {
	f := newPromotionFixture(t)

	first := f.initiate(t, 1)
	require.NoError(t, f.svc.HandleWebhook(f.db, f.webhookEvent(payment.EventPaymentSucceeded, first, 1)))
	require.NoError(t, f.db.Model(&models.PromotionRequest{}).
		Where("payment_id = ?", first).
		UpdateColumn("created_at", time.Now().Add(-time.Hour)).Error)

	second := f.initiate(t, 2)

	history, err := f.svc.GetPaymentHistory(f.db, f.user.ID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, second, history[0].PaymentID)
	assert.Equal(t, first, history[1].PaymentID)
}

func TestPaymentHistoryEmpty(t *testing.T) {
	f := newPromotionFixture(t)

	history, err := f.svc.GetPaymentHistory(f.db, f.user.ID)
	require.NoError(t, err)
	assert.Empty(t, history)
}
