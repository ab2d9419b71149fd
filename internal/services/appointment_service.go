package services

import (
	"time"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/email"
	"psyhub_backend/internal/logger"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// AppointmentService - запись клиентов на услуги
type AppointmentService interface {
	Create(db *gorm.DB, clientID string, clientRole models.UserRole, req *dto.CreateAppointmentRequest) (*models.Appointment, error)
	UpdateStatus(db *gorm.DB, actorID string, actorRole models.UserRole, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error)
	ListMine(db *gorm.DB, userID string, role models.UserRole) ([]models.Appointment, error)
}

type AppointmentServiceImpl struct {
	appointmentRepo repositories.AppointmentRepository
	serviceRepo     repositories.ServiceRepository
	userRepo        repositories.UserRepository
	emailProvider   email.Provider
}

func NewAppointmentService(
	appointmentRepo repositories.AppointmentRepository,
	serviceRepo repositories.ServiceRepository,
	userRepo repositories.UserRepository,
	emailProvider email.Provider,
) AppointmentService {
	return &AppointmentServiceImpl{
		appointmentRepo: appointmentRepo,
		serviceRepo:     serviceRepo,
		userRepo:        userRepo,
		emailProvider:   emailProvider,
	}
}

// Create создает запись в статусе pending и уведомляет владельца услуги
func (s *AppointmentServiceImpl) Create(db *gorm.DB, clientID string, clientRole models.UserRole, req *dto.CreateAppointmentRequest) (*models.Appointment, error) {
	if clientRole != models.UserRoleClient {
		return nil, apperrors.ErrInsufficientPermissions
	}

	item, err := s.serviceRepo.FindByID(db, req.ServiceID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return nil, apperrors.ErrServiceNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !item.IsActive {
		return nil, apperrors.ErrServiceNotFound
	}

	appointment := &models.Appointment{
		ClientID:       clientID,
		PsychologistID: item.OwnerID,
		ServiceID:      item.ID,
		ScheduledAt:    req.ScheduledAt,
		Status:         models.AppointmentStatusPending,
		Comment:        req.Comment,
	}
	if err := s.appointmentRepo.Create(db, appointment); err != nil {
		return nil, apperrors.InternalError(err)
	}

	s.notifyOwner(db, appointment, item)

	return appointment, nil
}

// UpdateStatus - подтверждение или отмена.
// Менять статус может владелец услуги, клиент (только отмена) и админ.
func (s *AppointmentServiceImpl) UpdateStatus(db *gorm.DB, actorID string, actorRole models.UserRole, appointmentID string, status models.AppointmentStatus) (*models.Appointment, error) {
	appointment, err := s.appointmentRepo.FindByID(db, appointmentID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrAppointmentNotFound) {
			return nil, apperrors.ErrAppointmentNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	switch actorID {
	case appointment.PsychologistID:
		// владелец может и подтвердить, и отменить
	case appointment.ClientID:
		if status != models.AppointmentStatusCancelled {
			return nil, apperrors.ErrForbidden
		}
	default:
		if actorRole != models.UserRoleAdmin {
			return nil, apperrors.ErrForbidden
		}
	}

	if appointment.Status != models.AppointmentStatusPending {
		return nil, apperrors.ErrInvalidAppointmentStatus
	}

	if err := s.appointmentRepo.UpdateStatus(db, appointmentID, status); err != nil {
		return nil, apperrors.InternalError(err)
	}
	appointment.Status = status
	return appointment, nil
}

func (s *AppointmentServiceImpl) ListMine(db *gorm.DB, userID string, role models.UserRole) ([]models.Appointment, error) {
	var (
		appointments []models.Appointment
		err          error
	)
	if role == models.UserRoleClient {
		appointments, err = s.appointmentRepo.FindByClient(db, userID)
	} else {
		appointments, err = s.appointmentRepo.FindByPsychologist(db, userID)
	}
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return appointments, nil
}

// notifyOwner шлет письмо владельцу услуги; отправка неблокирующая
func (s *AppointmentServiceImpl) notifyOwner(db *gorm.DB, appointment *models.Appointment, item *models.ServiceItem) {
	owner, err := s.userRepo.FindByID(db, item.OwnerID)
	if err != nil {
		logger.Warn("appointment notification skipped, owner lookup failed", "owner_id", item.OwnerID, "error", err.Error())
		return
	}

	client, err := s.userRepo.FindByID(db, appointment.ClientID)
	if err != nil {
		logger.Warn("appointment notification skipped, client lookup failed", "client_id", appointment.ClientID, "error", err.Error())
		return
	}

	go func() {
		body := email.AppointmentBody(client.Name, item.Title, appointment.ScheduledAt.Format(time.RFC1123))
		if err := s.emailProvider.Send(owner.Email, email.AppointmentSubject(), body); err != nil {
			logger.Warn("failed to send appointment email", "to", owner.Email, "error", err.Error())
		}
	}()
}
