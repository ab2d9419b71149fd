package services

import (
	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ArticleService - публикации специалистов и институтов
type ArticleService interface {
	Create(db *gorm.DB, authorID string, authorRole models.UserRole, req *dto.CreateArticleRequest) (*models.Article, error)
	Update(db *gorm.DB, actorID string, actorRole models.UserRole, articleID string, req *dto.UpdateArticleRequest) (*models.Article, error)
	Delete(db *gorm.DB, actorID string, actorRole models.UserRole, articleID string) error
	Get(db *gorm.DB, articleID string) (*models.Article, error)
	ListPublished(db *gorm.DB, query *dto.ArticleListQuery) ([]models.Article, int64, error)
}

type ArticleServiceImpl struct {
	articleRepo repositories.ArticleRepository
}

func NewArticleService(articleRepo repositories.ArticleRepository) ArticleService {
	return &ArticleServiceImpl{articleRepo: articleRepo}
}

func (s *ArticleServiceImpl) Create(db *gorm.DB, authorID string, authorRole models.UserRole, req *dto.CreateArticleRequest) (*models.Article, error) {
	if authorRole != models.UserRolePsychologist && authorRole != models.UserRoleInstitute {
		return nil, apperrors.ErrInsufficientPermissions
	}

	article := &models.Article{
		AuthorID:    authorID,
		Title:       req.Title,
		Content:     req.Content,
		IsPublished: true,
	}
	article.SetTags(req.Tags)

	if err := s.articleRepo.Create(db, article); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return article, nil
}

func (s *ArticleServiceImpl) Update(db *gorm.DB, actorID string, actorRole models.UserRole, articleID string, req *dto.UpdateArticleRequest) (*models.Article, error) {
	article, err := s.findOwned(db, actorID, actorRole, articleID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		article.Title = *req.Title
	}
	if req.Content != nil {
		article.Content = *req.Content
	}
	if req.Tags != nil {
		article.SetTags(*req.Tags)
	}
	if req.IsPublished != nil {
		article.IsPublished = *req.IsPublished
	}

	if err := s.articleRepo.Update(db, article); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return article, nil
}

func (s *ArticleServiceImpl) Delete(db *gorm.DB, actorID string, actorRole models.UserRole, articleID string) error {
	if _, err := s.findOwned(db, actorID, actorRole, articleID); err != nil {
		return err
	}
	if err := s.articleRepo.Delete(db, articleID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

// Get отдает только опубликованные статьи; черновик видит автор через Update
func (s *ArticleServiceImpl) Get(db *gorm.DB, articleID string) (*models.Article, error) {
	article, err := s.articleRepo.FindByID(db, articleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrArticleNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if !article.IsPublished {
		return nil, apperrors.ErrArticleNotFound
	}
	return article, nil
}

func (s *ArticleServiceImpl) ListPublished(db *gorm.DB, query *dto.ArticleListQuery) ([]models.Article, int64, error) {
	articles, total, err := s.articleRepo.FindPublished(db, repositories.ArticleFilter{
		AuthorID: query.AuthorID,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	})
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return articles, total, nil
}

func (s *ArticleServiceImpl) findOwned(db *gorm.DB, actorID string, actorRole models.UserRole, articleID string) (*models.Article, error) {
	article, err := s.articleRepo.FindByID(db, articleID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrArticleNotFound) {
			return nil, apperrors.ErrArticleNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	if article.AuthorID != actorID && actorRole != models.UserRoleAdmin {
		return nil, apperrors.ErrForbidden
	}
	return article, nil
}
