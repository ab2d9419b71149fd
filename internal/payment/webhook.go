package payment

// События, которые провайдер доставляет на webhook
const (
	EventPaymentSucceeded = "payment.succeeded"
	EventPaymentCanceled  = "payment.canceled"
)

// WebhookEvent - асинхронное уведомление провайдера об исходе платежа
type WebhookEvent struct {
	Event  string `json:"event"`
	Object struct {
		ID       string   `json:"id"`
		Status   string   `json:"status"`
		Metadata Metadata `json:"metadata"`
	} `json:"object"`
}
