package email

import "fmt"

// Шаблоны писем. Держим в коде: их мало, а деплой без
// внешней директории шаблонов проще.

func WelcomeSubject() string {
	return "Добро пожаловать в PsyHub"
}

func WelcomeBody(name string) string {
	return fmt.Sprintf(
		"<h2>Здравствуйте, %s!</h2><p>Ваш аккаунт создан. Заполните профиль, чтобы вас было проще найти.</p>",
		name,
	)
}

func AppointmentSubject() string {
	return "Новая запись на консультацию"
}

func AppointmentBody(clientName, serviceTitle, when string) string {
	return fmt.Sprintf(
		"<p>Клиент <b>%s</b> записался на услугу «%s».</p><p>Время: %s</p><p>Подтвердите или отмените запись в личном кабинете.</p>",
		clientName, serviceTitle, when,
	)
}
