package utils

import "strings"

// NormalizeEmail приводит email к каноничной форме: trim + lowercase.
// Нормализация выполняется на записи (регистрация, импорт), поэтому
// на чтении не нужны догадки про альтернативные домены.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
