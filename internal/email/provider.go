package email

// Provider определяет интерфейс для отправки email
type Provider interface {
	// Send отправляет HTML-письмо одному получателю
	Send(to, subject, htmlBody string) error
}
