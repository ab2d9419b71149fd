package dto

import "psyhub_backend/internal/models"

type InitiatePromotionRequest struct {
	Tier int `json:"tier" validate:"required"`
}

type InitiatePromotionResponse struct {
	Success    bool   `json:"success"`
	PaymentURL string `json:"payment_url"`
}

type PaymentHistoryResponse struct {
	Data []models.PromotionRequest `json:"data"`
}
