package services

import (
	"testing"
	"time"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/email"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type appointmentFixture struct {
	svc    AppointmentService
	mail   *email.MockProvider
	db     *gorm.DB
	psy    *models.User
	client *models.User
	item   *models.ServiceItem
}

func newAppointmentFixture(t *testing.T) *appointmentFixture {
	t.Helper()
	setTestConfig(t)
	db := openTestDB(t)

	psy := &models.User{Email: "psy@example.com", PasswordHash: "hash", Name: "Психолог", Role: models.UserRolePsychologist, IsActive: true}
	client := &models.User{Email: "client@example.com", PasswordHash: "hash", Name: "Клиент", Role: models.UserRoleClient, IsActive: true}
	require.NoError(t, db.Create(psy).Error)
	require.NoError(t, db.Create(client).Error)

	item := &models.ServiceItem{OwnerID: psy.ID, Title: "Консультация", Price: 15000, DurationMin: 60, IsActive: true}
	require.NoError(t, db.Create(item).Error)

	mail := email.NewMockProvider()
	svc := NewAppointmentService(
		repositories.NewAppointmentRepository(),
		repositories.NewServiceRepository(),
		repositories.NewUserRepository(),
		mail,
	)

	return &appointmentFixture{svc: svc, mail: mail, db: db, psy: psy, client: client, item: item}
}

func (f *appointmentFixture) book(t *testing.T) *models.Appointment {
	t.Helper()
	appointment, err := f.svc.Create(f.db, f.client.ID, f.client.Role, &dto.CreateAppointmentRequest{
		ServiceID:   f.item.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
		Comment:     "Первый визит",
	})
	require.NoError(t, err)
	return appointment
}

func TestCreateAppointmentNotifiesOwner(t *testing.T) {
	f := newAppointmentFixture(t)

	appointment := f.book(t)
	assert.Equal(t, models.AppointmentStatusPending, appointment.Status)
	assert.Equal(t, f.psy.ID, appointment.PsychologistID)

	assert.Eventually(t, func() bool { return f.mail.Count() == 1 }, time.Second, 10*time.Millisecond)
	assert.Equal(t, f.psy.Email, f.mail.Last().To)
}

func TestCreateAppointmentOnlyForClients(t *testing.T) {
	f := newAppointmentFixture(t)

	_, err := f.svc.Create(f.db, f.psy.ID, f.psy.Role, &dto.CreateAppointmentRequest{
		ServiceID:   f.item.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrInsufficientPermissions)
}

func TestCreateAppointmentInactiveService(t *testing.T) {
	f := newAppointmentFixture(t)
	require.NoError(t, f.db.Model(f.item).UpdateColumn("is_active", false).Error)

	_, err := f.svc.Create(f.db, f.client.ID, f.client.Role, &dto.CreateAppointmentRequest{
		ServiceID:   f.item.ID,
		ScheduledAt: time.Now().Add(24 * time.Hour),
	})
	assert.ErrorIs(t, err, apperrors.ErrServiceNotFound)
}

func TestOwnerConfirmsAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t)

	updated, err := f.svc.UpdateStatus(f.db, f.psy.ID, f.psy.Role, appointment.ID, models.AppointmentStatusConfirmed)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusConfirmed, updated.Status)
}

func TestClientCanOnlyCancel(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t)

	_, err := f.svc.UpdateStatus(f.db, f.client.ID, f.client.Role, appointment.ID, models.AppointmentStatusConfirmed)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	updated, err := f.svc.UpdateStatus(f.db, f.client.ID, f.client.Role, appointment.ID, models.AppointmentStatusCancelled)
	require.NoError(t, err)
	assert.Equal(t, models.AppointmentStatusCancelled, updated.Status)
}

func TestStrangerCannotTouchAppointment(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t)

	_, err := f.svc.UpdateStatus(f.db, "stranger", models.UserRoleClient, appointment.ID, models.AppointmentStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
}

func TestSettledAppointmentIsFinal(t *testing.T) {
	f := newAppointmentFixture(t)
	appointment := f.book(t)

	_, err := f.svc.UpdateStatus(f.db, f.psy.ID, f.psy.Role, appointment.ID, models.AppointmentStatusConfirmed)
	require.NoError(t, err)

	_, err = f.svc.UpdateStatus(f.db, f.psy.ID, f.psy.Role, appointment.ID, models.AppointmentStatusCancelled)
	assert.ErrorIs(t, err, apperrors.ErrInvalidAppointmentStatus)
}

func TestListMineSplitsByRole(t *testing.T) {
	f := newAppointmentFixture(t)
	f.book(t)

	asClient, err := f.svc.ListMine(f.db, f.client.ID, f.client.Role)
	require.NoError(t, err)
	assert.Len(t, asClient, 1)

	asOwner, err := f.svc.ListMine(f.db, f.psy.ID, f.psy.Role)
	require.NoError(t, err)
	assert.Len(t, asOwner, 1)

	empty, err := f.svc.ListMine(f.db, "stranger", models.UserRoleClient)
	require.NoError(t, err)
	assert.Empty(t, empty)
}
