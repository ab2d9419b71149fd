package handlers

import (
	"net/http"
	"strconv"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/config"
	"psyhub_backend/internal/logger"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/payment"
	"psyhub_backend/internal/services"
	"psyhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

// PromotionHandler - платное продвижение и платежные callbacks
type PromotionHandler struct {
	*BaseHandler
	promotionService services.PromotionService
	cfg              *config.Config
}

func NewPromotionHandler(base *BaseHandler, promotionService services.PromotionService, cfg *config.Config) *PromotionHandler {
	return &PromotionHandler{BaseHandler: base, promotionService: promotionService, cfg: cfg}
}

// Initiate - POST /api/v1/promotions/:type/:id
func (h *PromotionHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePromotionRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	resp, err := h.promotionService.Initiate(
		c.Request.Context(),
		h.GetDB(c),
		userID,
		userRole,
		c.Param("type"),
		c.Param("id"),
		req.Tier,
	)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Webhook - POST /api/v1/payment/webhook.
// Провайдер не авторизуется токеном, поэтому маршрут публичный;
// подлинность дает сверка payment_id с нашей заявкой.
func (h *PromotionHandler) Webhook(c *gin.Context) {
	var event payment.WebhookEvent
	if err := c.ShouldBindJSON(&event); err != nil {
		apperrors.HandleError(c, apperrors.NewBadRequestError("Invalid webhook payload"))
		return
	}

	if err := h.promotionService.HandleWebhook(h.GetDB(c), &event); err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}

// Success - GET /api/v1/payment/success.
// Сюда возвращается браузер покупателя. Подтверждаем платеж
// (webhook мог еще не дойти) и уводим в кабинет.
func (h *PromotionHandler) Success(c *gin.Context) {
	userID := c.Query("user_id")
	promotionType := c.Query("type")
	tier, _ := strconv.Atoi(c.Query("tier"))

	if err := h.promotionService.ConfirmByRedirect(h.GetDB(c), userID, promotionType, tier); err != nil {
		// Браузер пользователя - не место для ошибок 5xx,
		// просто уводим в кабинет; webhook доделает работу
		logger.Warn("redirect confirmation failed", "user_id", userID, "error", err.Error())
	}

	c.Redirect(http.StatusFound, h.cfg.Payment.DashboardURL)
}

// History - GET /api/v1/payment/history
func (h *PromotionHandler) History(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	requests, err := h.promotionService.GetPaymentHistory(h.GetDB(c), userID)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.PaymentHistoryResponse{Data: requests})
}
