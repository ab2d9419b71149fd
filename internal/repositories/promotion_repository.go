package repositories

import (
	"errors"

	"psyhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrPaymentNotFound = errors.New("payment not found")

type PromotionRepository interface {
	Create(db *gorm.DB, request *models.PromotionRequest) error
	FindByPaymentID(db *gorm.DB, paymentID string) (*models.PromotionRequest, error)
	FindLatestPending(db *gorm.DB, promotionType models.PromotionType, entityID string) (*models.PromotionRequest, error)
	FindByUser(db *gorm.DB, userID string) ([]models.PromotionRequest, error)
	TransitionFromPending(db *gorm.DB, paymentID string, to models.PromotionStatus) (bool, error)
}

type PromotionRepositoryImpl struct{}

func NewPromotionRepository() PromotionRepository {
	return &PromotionRepositoryImpl{}
}

func (r *PromotionRepositoryImpl) Create(db *gorm.DB, request *models.PromotionRequest) error {
	return db.Create(request).Error
}

func (r *PromotionRepositoryImpl) FindByPaymentID(db *gorm.DB, paymentID string) (*models.PromotionRequest, error) {
	var request models.PromotionRequest
	if err := db.First(&request, "payment_id = ?", paymentID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &request, nil
}

// FindLatestPending нужен redirect-пути завершения: браузер возвращается
// без payment id, только с владельцем и типом сущности.
func (r *PromotionRepositoryImpl) FindLatestPending(db *gorm.DB, promotionType models.PromotionType, entityID string) (*models.PromotionRequest, error) {
	var request models.PromotionRequest
	err := db.
		Where("type = ? AND entity_id = ? AND status = ?", promotionType, entityID, models.PromotionStatusPending).
		Order("created_at DESC").
		First(&request).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrPaymentNotFound
		}
		return nil, err
	}
	return &request, nil
}

func (r *PromotionRepositoryImpl) FindByUser(db *gorm.DB, userID string) ([]models.PromotionRequest, error) {
	var requests []models.PromotionRequest
	err := db.
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

// TransitionFromPending - compare-and-swap статуса по payment id.
// Переход выполняется только из pending; повторный вызов вернет false,
// что и делает завершение платежа идемпотентным.
func (r *PromotionRepositoryImpl) TransitionFromPending(db *gorm.DB, paymentID string, to models.PromotionStatus) (bool, error) {
	result := db.Model(&models.PromotionRequest{}).
		Where("payment_id = ? AND status = ?", paymentID, models.PromotionStatusPending).
		Update("status", to)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}
