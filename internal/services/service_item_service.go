package services

import (
	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ServiceItemService - прайс-лист специалиста или института
type ServiceItemService interface {
	Create(db *gorm.DB, ownerID string, ownerRole models.UserRole, req *dto.CreateServiceRequest) (*models.ServiceItem, error)
	Update(db *gorm.DB, actorID string, actorRole models.UserRole, itemID string, req *dto.UpdateServiceRequest) (*models.ServiceItem, error)
	Delete(db *gorm.DB, actorID string, actorRole models.UserRole, itemID string) error
	Get(db *gorm.DB, itemID string) (*models.ServiceItem, error)
	ListByOwner(db *gorm.DB, ownerID string) ([]models.ServiceItem, error)
}

type ServiceItemServiceImpl struct {
	serviceRepo repositories.ServiceRepository
}

func NewServiceItemService(serviceRepo repositories.ServiceRepository) ServiceItemService {
	return &ServiceItemServiceImpl{serviceRepo: serviceRepo}
}

func (s *ServiceItemServiceImpl) Create(db *gorm.DB, ownerID string, ownerRole models.UserRole, req *dto.CreateServiceRequest) (*models.ServiceItem, error) {
	if ownerRole != models.UserRolePsychologist && ownerRole != models.UserRoleInstitute {
		return nil, apperrors.ErrInsufficientPermissions
	}

	item := &models.ServiceItem{
		OwnerID:     ownerID,
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		DurationMin: req.DurationMin,
		IsActive:    true,
	}
	if err := s.serviceRepo.Create(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *ServiceItemServiceImpl) Update(db *gorm.DB, actorID string, actorRole models.UserRole, itemID string, req *dto.UpdateServiceRequest) (*models.ServiceItem, error) {
	item, err := s.findOwned(db, actorID, actorRole, itemID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.Price != nil {
		item.Price = *req.Price
	}
	if req.DurationMin != nil {
		item.DurationMin = *req.DurationMin
	}
	if req.IsActive != nil {
		item.IsActive = *req.IsActive
	}

	if err := s.serviceRepo.Update(db, item); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *ServiceItemServiceImpl) Delete(db *gorm.DB, actorID string, actorRole models.UserRole, itemID string) error {
	if _, err := s.findOwned(db, actorID, actorRole, itemID); err != nil {
		return err
	}
	if err := s.serviceRepo.Delete(db, itemID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *ServiceItemServiceImpl) Get(db *gorm.DB, itemID string) (*models.ServiceItem, error) {
	item, err := s.serviceRepo.FindByID(db, itemID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return nil, apperrors.ErrServiceNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return item, nil
}

func (s *ServiceItemServiceImpl) ListByOwner(db *gorm.DB, ownerID string) ([]models.ServiceItem, error) {
	items, err := s.serviceRepo.FindByOwner(db, ownerID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return items, nil
}

// findOwned пускает к записи владельца и админа
func (s *ServiceItemServiceImpl) findOwned(db *gorm.DB, actorID string, actorRole models.UserRole, itemID string) (*models.ServiceItem, error) {
	item, err := s.serviceRepo.FindByID(db, itemID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrServiceNotFound) {
			return nil, apperrors.ErrServiceNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if item.OwnerID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return item, nil
}
