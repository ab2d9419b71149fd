package services

import (
	"context"
	"fmt"
	"net/url"
	"time"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/config"
	"psyhub_backend/internal/logger"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/payment"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/services/dto"

	"gorm.io/gorm"
)

// PromotionDuration - срок действия оплаченного продвижения
const PromotionDuration = 30 * 24 * time.Hour

// promotionPrices - прайс на продвижение по типу сущности и уровню
var promotionPrices = map[models.PromotionType]map[int]float64{
	models.PromotionTypePsychologist: {1: 5900, 2: 9900},
	models.PromotionTypeInstitution:  {1: 9900, 2: 14900},
}

type PromotionService interface {
	Initiate(ctx context.Context, db *gorm.DB, userID string, userRole models.UserRole, promotionType string, entityID string, tier int) (*dto.InitiatePromotionResponse, error)
	HandleWebhook(db *gorm.DB, event *payment.WebhookEvent) error
	ConfirmByRedirect(db *gorm.DB, userID string, promotionType string, tier int) error
	GetPaymentHistory(db *gorm.DB, userID string) ([]models.PromotionRequest, error)
}

type PromotionServiceImpl struct {
	promotionRepo repositories.PromotionRepository
	profileRepo   repositories.ProfileRepository
	gateway       payment.Gateway
	cfg           *config.Config
}

func NewPromotionService(
	promotionRepo repositories.PromotionRepository,
	profileRepo repositories.ProfileRepository,
	gateway payment.Gateway,
	cfg *config.Config,
) PromotionService {
	return &PromotionServiceImpl{
		promotionRepo: promotionRepo,
		profileRepo:   profileRepo,
		gateway:       gateway,
		cfg:           cfg,
	}
}

// Initiate создает платеж у провайдера и записывает pending-заявку.
// Порядок важен: сначала провайдер, потом наша запись - при отказе
// провайдера в базе не остается мусорных заявок.
func (s *PromotionServiceImpl) Initiate(
	ctx context.Context,
	db *gorm.DB,
	userID string,
	userRole models.UserRole,
	promotionType string,
	entityID string,
	tier int,
) (*dto.InitiatePromotionResponse, error) {
	pType, err := parsePromotionType(promotionType)
	if err != nil {
		return nil, err
	}
	if tier != 1 && tier != 2 {
		return nil, apperrors.ErrInvalidPromotionTier
	}

	ownerID, err := s.entityOwner(db, pType, entityID)
	if err != nil {
		return nil, err
	}
	if ownerID != userID && userRole != models.UserRoleAdmin {
		return nil, apperrors.ErrForbidden
	}

	amount := promotionPrices[pType][tier]

	created, err := s.gateway.CreatePayment(ctx, payment.CreatePaymentInput{
		Amount:      amount,
		Currency:    s.cfg.Payment.Currency,
		Description: fmt.Sprintf("Promotion tier %d (%s)", tier, pType),
		ReturnURL:   s.successURL(userID, pType, tier),
		Metadata: payment.Metadata{
			UserID: userID,
			Type:   string(pType),
			Tier:   tier,
		},
	})
	if err != nil {
		status := 0
		if httpErr, ok := err.(*payment.HTTPError); ok {
			status = httpErr.Status
		}
		return nil, apperrors.GatewayError(err, status)
	}

	request := &models.PromotionRequest{
		UserID:    userID,
		Type:      pType,
		EntityID:  entityID,
		PaymentID: created.ID,
		Amount:    amount,
		Tier:      tier,
		Status:    models.PromotionStatusPending,
	}
	if err := s.promotionRepo.Create(db, request); err != nil {
		// Деньги могут уже уходить: такую заявку чинят руками по payment_id
		logger.Error("payment created but request not persisted, manual reconciliation required",
			"payment_id", created.ID,
			"user_id", userID,
			"error", err.Error(),
		)
		return nil, apperrors.InternalError(err)
	}

	return &dto.InitiatePromotionResponse{
		Success:    true,
		PaymentURL: created.ConfirmationURL,
	}, nil
}

// HandleWebhook обрабатывает уведомление провайдера об исходе платежа.
// Повторные доставки и гонка с redirect-путем схлопываются на
// CAS-переходе pending -> терминальный статус.
func (s *PromotionServiceImpl) HandleWebhook(db *gorm.DB, event *payment.WebhookEvent) error {
	meta := event.Object.Metadata
	if meta.UserID == "" || meta.Type == "" || meta.Tier == 0 {
		return apperrors.ErrMissingMetadata
	}

	request, err := s.promotionRepo.FindByPaymentID(db, event.Object.ID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return apperrors.ErrPaymentNotFound
		}
		return apperrors.InternalError(err)
	}

	switch event.Event {
	case payment.EventPaymentSucceeded:
		return s.settle(db, request, models.PromotionStatusCompleted, meta.Tier)
	case payment.EventPaymentCanceled:
		return s.settle(db, request, models.PromotionStatusFailed, 0)
	default:
		// Неизвестные события подтверждаем, не трогая состояние,
		// иначе провайдер будет ретраить их бесконечно
		logger.Warn("ignoring unknown webhook event", "event", event.Event, "payment_id", event.Object.ID)
		return nil
	}
}

// ConfirmByRedirect - подтверждение по возврату покупателя на success URL.
// В query нет payment id, только владелец и тип: находим его сущность
// и последнюю pending-заявку по ней. Webhook обычно приходит раньше;
// тогда pending-заявки уже нет и возврат проходит вхолостую.
func (s *PromotionServiceImpl) ConfirmByRedirect(db *gorm.DB, userID string, promotionType string, tier int) error {
	pType, err := parsePromotionType(promotionType)
	if err != nil {
		return err
	}
	if tier != 1 && tier != 2 {
		return apperrors.ErrInvalidPromotionTier
	}

	entityID, err := s.entityForUser(db, pType, userID)
	if err != nil {
		return err
	}

	request, err := s.promotionRepo.FindLatestPending(db, pType, entityID)
	if err != nil {
		if apperrors.Is(err, repositories.ErrPaymentNotFound) {
			return nil
		}
		return apperrors.InternalError(err)
	}

	return s.settle(db, request, models.PromotionStatusCompleted, tier)
}

// GetPaymentHistory - заявки пользователя, свежие первыми
func (s *PromotionServiceImpl) GetPaymentHistory(db *gorm.DB, userID string) ([]models.PromotionRequest, error) {
	requests, err := s.promotionRepo.FindByUser(db, userID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	return requests, nil
}

// settle переводит заявку в терминальный статус и применяет продвижение.
// Переход и обновление профиля идут в одной транзакции; проигравший
// гонку участник видит RowsAffected=0 и выходит без побочных эффектов.
func (s *PromotionServiceImpl) settle(db *gorm.DB, request *models.PromotionRequest, to models.PromotionStatus, tier int) error {
	err := db.Transaction(func(tx *gorm.DB) error {
		won, err := s.promotionRepo.TransitionFromPending(tx, request.PaymentID, to)
		if err != nil {
			return err
		}
		if !won {
			logger.Info("payment already settled, skipping", "payment_id", request.PaymentID)
			return nil
		}

		if to != models.PromotionStatusCompleted {
			return nil
		}

		until := time.Now().Add(PromotionDuration)
		if err := s.profileRepo.ApplyPromotion(tx, request.Type, request.EntityID, tier, until); err != nil {
			return err
		}

		logger.Info("promotion applied",
			"payment_id", request.PaymentID,
			"entity_id", request.EntityID,
			"tier", tier,
			"until", until.Format(time.RFC3339),
		)
		return nil
	})
	if err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *PromotionServiceImpl) entityOwner(db *gorm.DB, pType models.PromotionType, entityID string) (string, error) {
	switch pType {
	case models.PromotionTypePsychologist:
		profile, err := s.profileRepo.FindPsychologistByID(db, entityID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProfileNotFound) {
				return "", apperrors.ErrProfileNotFound
			}
			return "", apperrors.InternalError(err)
		}
		return profile.UserID, nil
	default:
		profile, err := s.profileRepo.FindInstituteByID(db, entityID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProfileNotFound) {
				return "", apperrors.ErrProfileNotFound
			}
			return "", apperrors.InternalError(err)
		}
		return profile.UserID, nil
	}
}

// entityForUser находит профиль нужного типа, принадлежащий пользователю
func (s *PromotionServiceImpl) entityForUser(db *gorm.DB, pType models.PromotionType, userID string) (string, error) {
	switch pType {
	case models.PromotionTypePsychologist:
		profile, err := s.profileRepo.FindPsychologistByUserID(db, userID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProfileNotFound) {
				return "", apperrors.ErrProfileNotFound
			}
			return "", apperrors.InternalError(err)
		}
		return profile.ID, nil
	default:
		profile, err := s.profileRepo.FindInstituteByUserID(db, userID)
		if err != nil {
			if apperrors.Is(err, repositories.ErrProfileNotFound) {
				return "", apperrors.ErrProfileNotFound
			}
			return "", apperrors.InternalError(err)
		}
		return profile.ID, nil
	}
}

func (s *PromotionServiceImpl) successURL(userID string, pType models.PromotionType, tier int) string {
	q := url.Values{}
	q.Set("user_id", userID)
	q.Set("type", string(pType))
	q.Set("tier", fmt.Sprintf("%d", tier))
	return s.cfg.Payment.ReturnURL + "?" + q.Encode()
}

func parsePromotionType(raw string) (models.PromotionType, error) {
	switch models.PromotionType(raw) {
	case models.PromotionTypePsychologist:
		return models.PromotionTypePsychologist, nil
	case models.PromotionTypeInstitution:
		return models.PromotionTypeInstitution, nil
	default:
		return "", apperrors.ErrInvalidPromotionType
	}
}
