package payment

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"psyhub_backend/internal/config"

	"github.com/google/uuid"
)

// Metadata прикрепляется к платежу и возвращается провайдером
// в webhook-событии без изменений.
type Metadata struct {
	UserID string `json:"user_id"`
	Type   string `json:"type"`
	Tier   int    `json:"tier"`
}

type CreatePaymentInput struct {
	Amount      float64
	Currency    string
	Description string
	ReturnURL   string
	Metadata    Metadata
}

// Payment - принятый провайдером платеж
type Payment struct {
	ID              string
	Status          string
	ConfirmationURL string // куда отправить браузер покупателя
}

// Gateway - внешний платежный провайдер.
// Вызовы не ретраятся: упавший провайдер отдается наверх как GatewayError.
type Gateway interface {
	CreatePayment(ctx context.Context, input CreatePaymentInput) (*Payment, error)
}

// HTTPError - ответ провайдера со статусом вне 2xx
type HTTPError struct {
	Status int
	Body   string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("payment provider returned %d: %s", e.Status, e.Body)
}

// HTTPGateway ходит в REST API провайдера (redirect-флоу с webhook-подтверждением)
type HTTPGateway struct {
	cfg    *config.Config
	client *http.Client
}

func NewHTTPGateway(cfg *config.Config) *HTTPGateway {
	return &HTTPGateway{
		cfg: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.Payment.TimeoutSec) * time.Second,
		},
	}
}

type createPaymentRequest struct {
	Amount struct {
		Value    string `json:"value"` // десятичная строка с 2 знаками
		Currency string `json:"currency"`
	} `json:"amount"`
	Capture      bool `json:"capture"`
	Confirmation struct {
		Type      string `json:"type"`
		ReturnURL string `json:"return_url"`
	} `json:"confirmation"`
	Description string   `json:"description"`
	Metadata    Metadata `json:"metadata"`
}

type createPaymentResponse struct {
	ID           string `json:"id"`
	Status       string `json:"status"`
	Confirmation struct {
		ConfirmationURL string `json:"confirmation_url"`
	} `json:"confirmation"`
}

func (g *HTTPGateway) CreatePayment(ctx context.Context, input CreatePaymentInput) (*Payment, error) {
	var reqBody createPaymentRequest
	// Провайдер принимает суммы только как десятичные строки
	reqBody.Amount.Value = fmt.Sprintf("%.2f", input.Amount)
	reqBody.Amount.Currency = input.Currency
	reqBody.Capture = true
	reqBody.Confirmation.Type = "redirect"
	reqBody.Confirmation.ReturnURL = input.ReturnURL
	reqBody.Description = input.Description
	reqBody.Metadata = input.Metadata

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.cfg.Payment.BaseURL+"/payments", bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Idempotence-Key", uuid.NewString())
	req.SetBasicAuth(g.cfg.Payment.ShopID, g.cfg.Payment.SecretKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &HTTPError{Status: resp.StatusCode, Body: string(body)}
	}

	var parsed createPaymentResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return nil, fmt.Errorf("decode provider response: %w", err)
	}

	return &Payment{
		ID:              parsed.ID,
		Status:          parsed.Status,
		ConfirmationURL: parsed.Confirmation.ConfirmationURL,
	}, nil
}
