package payment

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"
)

// MockGateway подменяет провайдера в тестах и в окружениях
// без платежных кредов. Платеж принимается всегда.
type MockGateway struct {
	mu       sync.Mutex
	Calls    []CreatePaymentInput
	FailWith error
}

func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

func (g *MockGateway) CreatePayment(ctx context.Context, input CreatePaymentInput) (*Payment, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.FailWith != nil {
		return nil, g.FailWith
	}

	g.Calls = append(g.Calls, input)
	id := uuid.NewString()
	return &Payment{
		ID:              id,
		Status:          "pending",
		ConfirmationURL: fmt.Sprintf("https://checkout.mock.local/pay/%s", id),
	}, nil
}

// CallCount возвращает число принятых платежей
func (g *MockGateway) CallCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.Calls)
}
