package email

import "sync"

// MockProvider собирает письма в память. Используется в тестах
// и когда SMTP не сконфигурирован.
type MockProvider struct {
	mu   sync.Mutex
	Sent []MockMessage
}

type MockMessage struct {
	To      string
	Subject string
	Body    string
}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (p *MockProvider) Send(to, subject, htmlBody string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.Sent = append(p.Sent, MockMessage{To: to, Subject: subject, Body: htmlBody})
	return nil
}

// Count возвращает число отправленных писем
func (p *MockProvider) Count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.Sent)
}

// Last возвращает последнее письмо или nil
func (p *MockProvider) Last() *MockMessage {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.Sent) == 0 {
		return nil
	}
	msg := p.Sent[len(p.Sent)-1]
	return &msg
}
