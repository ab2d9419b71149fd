package repositories

import (
	"errors"

	"psyhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrServiceNotFound = errors.New("service not found")

type ServiceRepository interface {
	Create(db *gorm.DB, item *models.ServiceItem) error
	FindByID(db *gorm.DB, id string) (*models.ServiceItem, error)
	FindByOwner(db *gorm.DB, ownerID string) ([]models.ServiceItem, error)
	Update(db *gorm.DB, item *models.ServiceItem) error
	Delete(db *gorm.DB, id string) error
}

type ServiceRepositoryImpl struct{}

func NewServiceRepository() ServiceRepository {
	return &ServiceRepositoryImpl{}
}

func (r *ServiceRepositoryImpl) Create(db *gorm.DB, item *models.ServiceItem) error {
	return db.Create(item).Error
}

func (r *ServiceRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.ServiceItem, error) {
	var item models.ServiceItem
	if err := db.First(&item, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrServiceNotFound
		}
		return nil, err
	}
	return &item, nil
}

func (r *ServiceRepositoryImpl) FindByOwner(db *gorm.DB, ownerID string) ([]models.ServiceItem, error) {
	var items []models.ServiceItem
	err := db.
		Where("owner_id = ? AND is_active = ?", ownerID, true).
		Order("created_at DESC").
		Find(&items).Error
	return items, err
}

func (r *ServiceRepositoryImpl) Update(db *gorm.DB, item *models.ServiceItem) error {
	return db.Save(item).Error
}

func (r *ServiceRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.ServiceItem{}, "id = ?", id).Error
}
