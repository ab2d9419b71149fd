package repositories

import (
	"errors"
	"time"

	"psyhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfileNotFound = errors.New("profile not found")

type CatalogFilter struct {
	City     string
	Search   string
	Page     int
	PageSize int
}

type ProfileRepository interface {
	CreatePsychologist(db *gorm.DB, profile *models.PsychologistProfile) error
	CreateInstitute(db *gorm.DB, profile *models.InstituteProfile) error
	CreateClient(db *gorm.DB, profile *models.ClientProfile) error

	FindPsychologistByID(db *gorm.DB, id string) (*models.PsychologistProfile, error)
	FindPsychologistByUserID(db *gorm.DB, userID string) (*models.PsychologistProfile, error)
	FindInstituteByID(db *gorm.DB, id string) (*models.InstituteProfile, error)
	FindInstituteByUserID(db *gorm.DB, userID string) (*models.InstituteProfile, error)
	FindClientByUserID(db *gorm.DB, userID string) (*models.ClientProfile, error)

	UpdatePsychologist(db *gorm.DB, profile *models.PsychologistProfile) error
	UpdateInstitute(db *gorm.DB, profile *models.InstituteProfile) error
	UpdateClient(db *gorm.DB, profile *models.ClientProfile) error

	ListPsychologists(db *gorm.DB, filter CatalogFilter) ([]models.PsychologistProfile, int64, error)
	ListInstitutes(db *gorm.DB, filter CatalogFilter) ([]models.InstituteProfile, int64, error)

	// Promotion state
	ApplyPromotion(db *gorm.DB, promotionType models.PromotionType, entityID string, tier int, until time.Time) error
	ClearExpiredPromotions(db *gorm.DB, now time.Time) (int64, error)
}

type ProfileRepositoryImpl struct{}

func NewProfileRepository() ProfileRepository {
	return &ProfileRepositoryImpl{}
}

func (r *ProfileRepositoryImpl) CreatePsychologist(db *gorm.DB, profile *models.PsychologistProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) CreateInstitute(db *gorm.DB, profile *models.InstituteProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) CreateClient(db *gorm.DB, profile *models.ClientProfile) error {
	return db.Create(profile).Error
}

func (r *ProfileRepositoryImpl) FindPsychologistByID(db *gorm.DB, id string) (*models.PsychologistProfile, error) {
	var profile models.PsychologistProfile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindPsychologistByUserID(db *gorm.DB, userID string) (*models.PsychologistProfile, error) {
	var profile models.PsychologistProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindInstituteByID(db *gorm.DB, id string) (*models.InstituteProfile, error) {
	var profile models.InstituteProfile
	if err := db.First(&profile, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindInstituteByUserID(db *gorm.DB, userID string) (*models.InstituteProfile, error) {
	var profile models.InstituteProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) FindClientByUserID(db *gorm.DB, userID string) (*models.ClientProfile, error) {
	var profile models.ClientProfile
	if err := db.First(&profile, "user_id = ?", userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfileNotFound
		}
		return nil, err
	}
	return &profile, nil
}

func (r *ProfileRepositoryImpl) UpdatePsychologist(db *gorm.DB, profile *models.PsychologistProfile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) UpdateInstitute(db *gorm.DB, profile *models.InstituteProfile) error {
	return db.Save(profile).Error
}

func (r *ProfileRepositoryImpl) UpdateClient(db *gorm.DB, profile *models.ClientProfile) error {
	return db.Save(profile).Error
}

// Каталог отсортирован так, чтобы продвинутые профили шли первыми:
// сначала тариф 2 (премиум), потом тариф 1, внутри - по рейтингу.
func (r *ProfileRepositoryImpl) ListPsychologists(db *gorm.DB, filter CatalogFilter) ([]models.PsychologistProfile, int64, error) {
	query := db.Model(&models.PsychologistProfile{}).Where("is_public = ?", true)
	query = applyCatalogFilter(query, filter, "description")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.PsychologistProfile
	err := query.
		Order("is_top DESC, promotion_tier DESC, rating DESC, created_at DESC").
		Limit(catalogPageSize(filter)).
		Offset(catalogOffset(filter)).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *ProfileRepositoryImpl) ListInstitutes(db *gorm.DB, filter CatalogFilter) ([]models.InstituteProfile, int64, error) {
	query := db.Model(&models.InstituteProfile{}).Where("is_public = ?", true)
	query = applyCatalogFilter(query, filter, "description")

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var profiles []models.InstituteProfile
	err := query.
		Order("is_top DESC, promotion_tier DESC, rating DESC, created_at DESC").
		Limit(catalogPageSize(filter)).
		Offset(catalogOffset(filter)).
		Find(&profiles).Error

	return profiles, total, err
}

func (r *ProfileRepositoryImpl) ApplyPromotion(db *gorm.DB, promotionType models.PromotionType, entityID string, tier int, until time.Time) error {
	updates := map[string]interface{}{
		"is_top":         true,
		"top_until":      until,
		"promotion_tier": tier,
	}

	var result *gorm.DB
	switch promotionType {
	case models.PromotionTypeInstitution:
		result = db.Model(&models.InstituteProfile{}).Where("id = ?", entityID).Updates(updates)
	default:
		result = db.Model(&models.PsychologistProfile{}).Where("id = ?", entityID).Updates(updates)
	}

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrProfileNotFound
	}
	return nil
}

// ClearExpiredPromotions снимает "топ" с профилей, у которых вышел срок.
// Сбрасываем все три поля вместе, чтобы не было состояния "топ без срока".
func (r *ProfileRepositoryImpl) ClearExpiredPromotions(db *gorm.DB, now time.Time) (int64, error) {
	updates := map[string]interface{}{
		"is_top":         false,
		"top_until":      nil,
		"promotion_tier": nil,
	}

	var cleared int64
	for _, model := range []interface{}{&models.PsychologistProfile{}, &models.InstituteProfile{}} {
		result := db.Model(model).
			Where("is_top = ? AND top_until < ?", true, now).
			Updates(updates)
		if result.Error != nil {
			return cleared, result.Error
		}
		cleared += result.RowsAffected
	}
	return cleared, nil
}

func applyCatalogFilter(query *gorm.DB, filter CatalogFilter, searchColumn string) *gorm.DB {
	if filter.City != "" {
		query = query.Where("city = ?", filter.City)
	}
	if filter.Search != "" {
		query = query.Where(searchColumn+" LIKE ?", "%"+filter.Search+"%")
	}
	return query
}

func catalogPageSize(filter CatalogFilter) int {
	if filter.PageSize < 1 || filter.PageSize > 100 {
		return 20
	}
	return filter.PageSize
}

func catalogOffset(filter CatalogFilter) int {
	page := filter.Page
	if page < 1 {
		page = 1
	}
	return (page - 1) * catalogPageSize(filter)
}
