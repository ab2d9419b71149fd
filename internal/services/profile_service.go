package services

import (
	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/logger"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// ProfileService - профили и публичный каталог
type ProfileService interface {
	UpdatePsychologist(db *gorm.DB, userID string, req *dto.UpdatePsychologistProfileRequest) (*models.PsychologistProfile, error)
	UpdateInstitute(db *gorm.DB, userID string, req *dto.UpdateInstituteProfileRequest) (*models.InstituteProfile, error)
	UpdateClient(db *gorm.DB, userID string, req *dto.UpdateClientProfileRequest) (*models.ClientProfile, error)

	GetPsychologist(db *gorm.DB, id string) (*models.PsychologistProfile, error)
	GetInstitute(db *gorm.DB, id string) (*models.InstituteProfile, error)
	ListPsychologists(db *gorm.DB, query *dto.CatalogQuery) ([]models.PsychologistProfile, int64, error)
	ListInstitutes(db *gorm.DB, query *dto.CatalogQuery) ([]models.InstituteProfile, int64, error)
}

type ProfileServiceImpl struct {
	profileRepo repositories.ProfileRepository
}

func NewProfileService(profileRepo repositories.ProfileRepository) ProfileService {
	return &ProfileServiceImpl{profileRepo: profileRepo}
}

// UpdatePsychologist - частичное обновление: nil-поля не трогаются
func (s *ProfileServiceImpl) UpdatePsychologist(db *gorm.DB, userID string, req *dto.UpdatePsychologistProfileRequest) (*models.PsychologistProfile, error) {
	profile, err := s.profileRepo.FindPsychologistByUserID(db, userID)
	if err != nil {
		return nil, s.mapProfileErr(err)
	}

	if req.City != nil {
		profile.City = *req.City
	}
	if req.Experience != nil {
		profile.Experience = *req.Experience
	}
	if req.PricePerHour != nil {
		profile.PricePerHour = *req.PricePerHour
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}
	if req.Specializations != nil {
		profile.SetSpecializations(*req.Specializations)
	}
	if req.Languages != nil {
		profile.SetLanguages(*req.Languages)
	}
	if req.Certifications != nil {
		profile.SetCertifications(*req.Certifications)
	}

	if err := s.profileRepo.UpdatePsychologist(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpdateInstitute(db *gorm.DB, userID string, req *dto.UpdateInstituteProfileRequest) (*models.InstituteProfile, error) {
	profile, err := s.profileRepo.FindInstituteByUserID(db, userID)
	if err != nil {
		return nil, s.mapProfileErr(err)
	}

	if req.City != nil {
		profile.City = *req.City
	}
	if req.Address != nil {
		profile.Address = *req.Address
	}
	if req.Website != nil {
		profile.Website = *req.Website
	}
	if req.Description != nil {
		profile.Description = *req.Description
	}
	if req.IsPublic != nil {
		profile.IsPublic = *req.IsPublic
	}
	if req.Programs != nil {
		profile.SetPrograms(*req.Programs)
	}

	if err := s.profileRepo.UpdateInstitute(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

func (s *ProfileServiceImpl) UpdateClient(db *gorm.DB, userID string, req *dto.UpdateClientProfileRequest) (*models.ClientProfile, error) {
	profile, err := s.profileRepo.FindClientByUserID(db, userID)
	if err != nil {
		return nil, s.mapProfileErr(err)
	}

	if req.City != nil {
		profile.City = *req.City
	}
	if req.About != nil {
		profile.About = *req.About
	}

	if err := s.profileRepo.UpdateClient(db, profile); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return profile, nil
}

// GetPsychologist - публичная карточка; просмотр увеличивает счетчик
func (s *ProfileServiceImpl) GetPsychologist(db *gorm.DB, id string) (*models.PsychologistProfile, error) {
	profile, err := s.profileRepo.FindPsychologistByID(db, id)
	if err != nil {
		return nil, s.mapProfileErr(err)
	}
	if !profile.IsPublic {
		return nil, apperrors.ErrProfileNotFound
	}

	// Счетчик просмотров не критичен, ошибку не поднимаем
	if err := db.Model(profile).UpdateColumn("profile_views", gorm.Expr("profile_views + 1")).Error; err != nil {
		logger.Warn("failed to bump profile views", "profile_id", id, "error", err.Error())
	}
	return profile, nil
}

func (s *ProfileServiceImpl) GetInstitute(db *gorm.DB, id string) (*models.InstituteProfile, error) {
	profile, err := s.profileRepo.FindInstituteByID(db, id)
	if err != nil {
		return nil, s.mapProfileErr(err)
	}
	if !profile.IsPublic {
		return nil, apperrors.ErrProfileNotFound
	}
	return profile, nil
}

func (s *ProfileServiceImpl) ListPsychologists(db *gorm.DB, query *dto.CatalogQuery) ([]models.PsychologistProfile, int64, error) {
	profiles, total, err := s.profileRepo.ListPsychologists(db, s.catalogFilter(query))
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return profiles, total, nil
}

func (s *ProfileServiceImpl) ListInstitutes(db *gorm.DB, query *dto.CatalogQuery) ([]models.InstituteProfile, int64, error) {
	profiles, total, err := s.profileRepo.ListInstitutes(db, s.catalogFilter(query))
	if err != nil {
		return nil, 0, apperrors.InternalError(err)
	}
	return profiles, total, nil
}

func (s *ProfileServiceImpl) catalogFilter(query *dto.CatalogQuery) repositories.CatalogFilter {
	return repositories.CatalogFilter{
		City:     query.City,
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}
}

func (s *ProfileServiceImpl) mapProfileErr(err error) error {
	if apperrors.Is(err, repositories.ErrProfileNotFound) {
		return apperrors.ErrProfileNotFound
	}
	return apperrors.InternalError(err)
}
