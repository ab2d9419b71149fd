package services

import (
	"time"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/auth"
	"psyhub_backend/internal/email"
	"psyhub_backend/internal/logger"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"
	"psyhub_backend/internal/utils"

	"gorm.io/gorm"
)

type AuthService interface {
	Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error)
	Refresh(db *gorm.DB, token string) (*dto.RefreshResponse, error)
	CurrentUser(db *gorm.DB, userID string) (*dto.MeResponse, error)
}

type AuthServiceImpl struct {
	userRepo        repositories.UserRepository
	profileRepo     repositories.ProfileRepository
	emailProvider   email.Provider
	registerTTLDays int
	loginTTLDays    int
}

func NewAuthService(
	userRepo repositories.UserRepository,
	profileRepo repositories.ProfileRepository,
	emailProvider email.Provider,
	registerTTLDays int,
	loginTTLDays int,
) AuthService {
	return &AuthServiceImpl{
		userRepo:        userRepo,
		profileRepo:     profileRepo,
		emailProvider:   emailProvider,
		registerTTLDays: registerTTLDays,
		loginTTLDays:    loginTTLDays,
	}
}

// Register - регистрация нового пользователя.
// Пользователь и пустой профиль его роли создаются в одной транзакции.
func (s *AuthServiceImpl) Register(db *gorm.DB, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	if err := auth.ValidatePassword(req.Password); err != nil {
		return nil, apperrors.ErrWeakPassword
	}

	if !models.SelfServiceRoles[req.Role] {
		return nil, apperrors.ErrInvalidUserRole
	}

	hashedPassword, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	user := &models.User{
		// Email нормализуется на записи, поэтому на логине
		// не нужны догадки про написание
		Email:        utils.NormalizeEmail(req.Email),
		PasswordHash: hashedPassword,
		Name:         req.Name,
		Phone:        req.Phone,
		Role:         req.Role,
		IsActive:     true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := s.userRepo.Create(tx, user); err != nil {
			return err
		}
		return s.createEmptyProfile(tx, user)
	})
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserAlreadyExists) {
			return nil, apperrors.ErrEmailAlreadyExists
		}
		return nil, apperrors.InternalError(err)
	}

	// При регистрации выдаем длинный токен, чтобы не выбрасывать
	// пользователя из только что созданного аккаунта
	token, err := auth.GenerateToken(user.ID, string(user.Role), s.registerTTL())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	go func() {
		if err := s.emailProvider.Send(user.Email, email.WelcomeSubject(), email.WelcomeBody(user.Name)); err != nil {
			logger.Warn("failed to send welcome email", "error", err.Error())
		}
	}()

	return &dto.RegisterResponse{
		Token: token,
		User:  dto.NewUserResponse(user),
	}, nil
}

// Login - аутентификация пользователя.
// Любое несовпадение отдается как одинаковый "invalid credentials":
// по ответу нельзя отличить несуществующий email от неверного пароля.
func (s *AuthServiceImpl) Login(db *gorm.DB, req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := s.userRepo.FindByEmail(db, utils.NormalizeEmail(req.Email))
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, apperrors.InternalError(err)
	}

	if !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if !user.IsActive {
		return nil, apperrors.ErrUserDeactivated
	}

	token, err := auth.GenerateToken(user.ID, string(user.Role), s.loginTTL())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.fetchProfile(db, user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.LoginResponse{
		Token:   token,
		User:    dto.NewUserResponse(user),
		Profile: profile,
	}, nil
}

// Refresh - перевыпуск access-токена.
// Токены stateless, серверного хранилища сессий нет: проверяем
// предъявленный токен и что пользователь все еще существует.
func (s *AuthServiceImpl) Refresh(db *gorm.DB, token string) (*dto.RefreshResponse, error) {
	claims, err := auth.ParseToken(token)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}

	user, err := s.userRepo.FindByID(db, claims.UserID)
	if err != nil {
		return nil, apperrors.ErrInvalidToken
	}
	if !user.IsActive {
		return nil, apperrors.ErrUserDeactivated
	}

	newToken, err := auth.GenerateToken(user.ID, string(user.Role), s.loginTTL())
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.RefreshResponse{Token: newToken}, nil
}

// CurrentUser возвращает пользователя и профиль его роли.
// Profile равен nil, если строки профиля нет - состояние отдается как есть.
func (s *AuthServiceImpl) CurrentUser(db *gorm.DB, userID string) (*dto.MeResponse, error) {
	user, err := s.userRepo.FindByID(db, userID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrUserNotFound) {
			return nil, apperrors.ErrUserNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	profile, err := s.fetchProfile(db, user)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	return &dto.MeResponse{
		User:    dto.NewUserResponse(user),
		Profile: profile,
	}, nil
}

func (s *AuthServiceImpl) createEmptyProfile(tx *gorm.DB, user *models.User) error {
	switch user.Role {
	case models.UserRolePsychologist:
		profile := &models.PsychologistProfile{
			UserID:          user.ID,
			Specializations: models.EmptyStringList(),
			Languages:       models.EmptyStringList(),
			Certifications:  models.EmptyStringList(),
			IsPublic:        true,
		}
		return s.profileRepo.CreatePsychologist(tx, profile)
	case models.UserRoleInstitute:
		profile := &models.InstituteProfile{
			UserID:   user.ID,
			Programs: models.EmptyStringList(),
			IsPublic: true,
		}
		return s.profileRepo.CreateInstitute(tx, profile)
	case models.UserRoleClient:
		return s.profileRepo.CreateClient(tx, &models.ClientProfile{UserID: user.ID})
	default:
		// admin профиля не имеет
		return nil
	}
}

// fetchProfile возвращает nil без ошибки, когда профиля нет
func (s *AuthServiceImpl) fetchProfile(db *gorm.DB, user *models.User) (interface{}, error) {
	var (
		profile interface{}
		err     error
	)

	switch user.Role {
	case models.UserRolePsychologist:
		profile, err = s.profileRepo.FindPsychologistByUserID(db, user.ID)
	case models.UserRoleInstitute:
		profile, err = s.profileRepo.FindInstituteByUserID(db, user.ID)
	case models.UserRoleClient:
		profile, err = s.profileRepo.FindClientByUserID(db, user.ID)
	default:
		return nil, nil
	}

	if err != nil {
		if apperrors.Is(err, repositories.ErrProfileNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (s *AuthServiceImpl) registerTTL() time.Duration {
	return time.Duration(s.registerTTLDays) * 24 * time.Hour
}

func (s *AuthServiceImpl) loginTTL() time.Duration {
	return time.Duration(s.loginTTLDays) * 24 * time.Hour
}
