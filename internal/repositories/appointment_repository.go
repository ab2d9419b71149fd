package repositories

import (
	"errors"

	"psyhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrAppointmentNotFound = errors.New("appointment not found")

type AppointmentRepository interface {
	Create(db *gorm.DB, appointment *models.Appointment) error
	FindByID(db *gorm.DB, id string) (*models.Appointment, error)
	FindByClient(db *gorm.DB, clientID string) ([]models.Appointment, error)
	FindByPsychologist(db *gorm.DB, psychologistID string) ([]models.Appointment, error)
	UpdateStatus(db *gorm.DB, id string, status models.AppointmentStatus) error
}

type AppointmentRepositoryImpl struct{}

func NewAppointmentRepository() AppointmentRepository {
	return &AppointmentRepositoryImpl{}
}

func (r *AppointmentRepositoryImpl) Create(db *gorm.DB, appointment *models.Appointment) error {
	return db.Create(appointment).Error
}

func (r *AppointmentRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Appointment, error) {
	var appointment models.Appointment
	if err := db.Preload("Service").First(&appointment, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAppointmentNotFound
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *AppointmentRepositoryImpl) FindByClient(db *gorm.DB, clientID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Service").
		Where("client_id = ?", clientID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepositoryImpl) FindByPsychologist(db *gorm.DB, psychologistID string) ([]models.Appointment, error) {
	var appointments []models.Appointment
	err := db.Preload("Service").
		Where("psychologist_id = ?", psychologistID).
		Order("scheduled_at DESC").
		Find(&appointments).Error
	return appointments, err
}

func (r *AppointmentRepositoryImpl) UpdateStatus(db *gorm.DB, id string, status models.AppointmentStatus) error {
	result := db.Model(&models.Appointment{}).Where("id = ?", id).Update("status", status)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrAppointmentNotFound
	}
	return nil
}
