package services

import (
	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/auth"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"
	"psyhub_backend/internal/utils"

	"gorm.io/gorm"
)

// UserService - административные операции над пользователями
type UserService interface {
	CreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error)
	ListUsers(db *gorm.DB, query *dto.UserListQuery) (*dto.UserListResponse, error)
	GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error)
	SetUserStatus(db *gorm.DB, adminID string, userID string, active bool) error
	DeleteUser(db *gorm.DB, adminID string, userID string) error
}

type UserServiceImpl struct {
	userRepo repositories.UserRepository
}

func NewUserService(userRepo repositories.UserRepository) UserService {
	return &UserServiceImpl{userRepo: userRepo}
}

// CreateUser создает пользователя с любой ролью, включая admin
func (s *UserServiceImpl) CreateUser(db *gorm.DB, req *dto.AdminCreateUserRequest) (*dto.UserResponse, error) {
	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		IsVerified:   true,
		IsActive:     true,
	}

	if err := s.userRepo.Create(db, user); err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserResponse(user), nil
}

func (s *UserServiceImpl) ListUsers(db *gorm.DB, query *dto.UserListQuery) (*dto.UserListResponse, error) {
	filter := repositories.UserFilter{
		Role:     models.UserRole(query.Role),
		Search:   query.Search,
		Page:     query.Page,
		PageSize: query.PageSize,
	}

	users, total, err := s.userRepo.FindWithFilter(db, filter)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	data := make([]dto.UserResponse, 0, len(users))
	for i := range users {
		data = append(data, *dto.NewUserResponse(&users[i]))
	}

	return &dto.UserListResponse{Data: data, Total: total}, nil
}

func (s *UserServiceImpl) GetUser(db *gorm.DB, userID string) (*dto.UserResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return dto.NewUserResponse(user), nil
}

// SetUserStatus включает или отключает аккаунт.
// Отключение мягкое: строка остается, но логин и токены перестают работать.
func (s *UserServiceImpl) SetUserStatus(db *gorm.DB, adminID string, userID string, active bool) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.UpdateActive(db, userID, active); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *UserServiceImpl) DeleteUser(db *gorm.DB, adminID string, userID string) error {
	if adminID == userID {
		return apperrors.ErrCannotModifySelf
	}

	if err := s.userRepo.Delete(db, userID); err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return apperrors.ErrUserNotFound
		}
		return apperrors.InternalError(err)
	}
	return nil
}
