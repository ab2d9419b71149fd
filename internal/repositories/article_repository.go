package repositories

import (
	"errors"

	"psyhub_backend/internal/models"

	"gorm.io/gorm"
)

var ErrArticleNotFound = errors.New("article not found")

type ArticleFilter struct {
	AuthorID string
	Search   string
	Page     int
	PageSize int
}

type ArticleRepository interface {
	Create(db *gorm.DB, article *models.Article) error
	FindByID(db *gorm.DB, id string) (*models.Article, error)
	FindPublished(db *gorm.DB, filter ArticleFilter) ([]models.Article, int64, error)
	Update(db *gorm.DB, article *models.Article) error
	Delete(db *gorm.DB, id string) error
}

type ArticleRepositoryImpl struct{}

func NewArticleRepository() ArticleRepository {
	return &ArticleRepositoryImpl{}
}

func (r *ArticleRepositoryImpl) Create(db *gorm.DB, article *models.Article) error {
	return db.Create(article).Error
}

func (r *ArticleRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Article, error) {
	var article models.Article
	if err := db.First(&article, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrArticleNotFound
		}
		return nil, err
	}
	return &article, nil
}

func (r *ArticleRepositoryImpl) FindPublished(db *gorm.DB, filter ArticleFilter) ([]models.Article, int64, error) {
	query := db.Model(&models.Article{}).Where("is_published = ?", true)

	if filter.AuthorID != "" {
		query = query.Where("author_id = ?", filter.AuthorID)
	}
	if filter.Search != "" {
		query = query.Where("title LIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	var articles []models.Article
	err := query.
		Order("created_at DESC").
		Limit(filter.PageSize).
		Offset((filter.Page - 1) * filter.PageSize).
		Find(&articles).Error

	return articles, total, err
}

func (r *ArticleRepositoryImpl) Update(db *gorm.DB, article *models.Article) error {
	return db.Save(article).Error
}

func (r *ArticleRepositoryImpl) Delete(db *gorm.DB, id string) error {
	return db.Delete(&models.Article{}, "id = ?", id).Error
}
