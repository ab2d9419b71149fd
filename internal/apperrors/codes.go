package apperrors

// Коды ошибок сгруппированные по доменам
const (
	// Аутентификация и авторизация
	CodeInvalidCredentials ErrorCode = "INVALID_CREDENTIALS"
	CodeUnauthorized       ErrorCode = "UNAUTHORIZED"
	CodeForbidden          ErrorCode = "FORBIDDEN"
	CodeInvalidToken       ErrorCode = "INVALID_TOKEN"

	// Валидация
	CodeValidationFailed ErrorCode = "VALIDATION_FAILED"
	CodeWeakPassword     ErrorCode = "WEAK_PASSWORD"
	CodeInvalidUserRole  ErrorCode = "INVALID_USER_ROLE"
	CodeInvalidStatus    ErrorCode = "INVALID_STATUS"

	// Ресурсы
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodeUserNotFound        ErrorCode = "USER_NOT_FOUND"
	CodeProfileNotFound     ErrorCode = "PROFILE_NOT_FOUND"
	CodePaymentNotFound     ErrorCode = "PAYMENT_NOT_FOUND"
	CodeAppointmentNotFound ErrorCode = "APPOINTMENT_NOT_FOUND"
	CodeArticleNotFound     ErrorCode = "ARTICLE_NOT_FOUND"
	CodeServiceNotFound     ErrorCode = "SERVICE_NOT_FOUND"

	// Бизнес-логика
	CodeEmailAlreadyExists      ErrorCode = "EMAIL_ALREADY_EXISTS"
	CodeUserDeactivated         ErrorCode = "USER_DEACTIVATED"
	CodeCannotModifySelf        ErrorCode = "CANNOT_MODIFY_SELF"
	CodeInsufficientPermissions ErrorCode = "INSUFFICIENT_PERMISSIONS"
	CodeConflict                ErrorCode = "CONFLICT"

	// Системные ошибки
	CodeInternalError ErrorCode = "INTERNAL_ERROR"
	CodeGatewayError  ErrorCode = "GATEWAY_ERROR"
)
