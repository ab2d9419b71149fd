package middleware

import (
	"strings"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/auth"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/pkg/contextkeys"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

const (
	ContextUserIDKey   = "user_id"
	ContextUserRoleKey = "user_role"
	ContextUserKey     = "current_user"
)

// AuthMiddleware проверяет JWT и перечитывает пользователя из базы:
// токен сам по себе ничего не гарантирует - аккаунт могли удалить
// или отключить после его выдачи.
// Заголовок принимается и с префиксом "Bearer ", и без него.
func AuthMiddleware(userRepo repositories.UserRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			apperrors.HandleError(c, apperrors.ErrUnauthorized)
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(token)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrInvalidToken)
			c.Abort()
			return
		}

		db := c.MustGet(string(contextkeys.DBContextKey)).(*gorm.DB)
		user, err := userRepo.FindByID(db, claims.UserID)
		if err != nil {
			apperrors.HandleError(c, apperrors.ErrUserNotFound)
			c.Abort()
			return
		}
		if !user.IsActive {
			apperrors.HandleError(c, apperrors.ErrUserDeactivated)
			c.Abort()
			return
		}

		c.Set(ContextUserIDKey, user.ID)
		c.Set(ContextUserRoleKey, user.Role)
		c.Set(ContextUserKey, user)
		c.Next()
	}
}

// RequireRoles пускает дальше только перечисленные роли
func RequireRoles(roles ...models.UserRole) gin.HandlerFunc {
	allowed := make(map[models.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}

	return func(c *gin.Context) {
		role, ok := GetUserRole(c)
		if !ok || !allowed[role] {
			apperrors.HandleError(c, apperrors.ErrInsufficientPermissions)
			c.Abort()
			return
		}
		c.Next()
	}
}

// AdminMiddleware - сокращение для admin-маршрутов
func AdminMiddleware() gin.HandlerFunc {
	return RequireRoles(models.UserRoleAdmin)
}

func GetUserID(c *gin.Context) (string, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return "", false
	}
	id, ok := value.(string)
	return id, ok
}

func GetUserRole(c *gin.Context) (models.UserRole, bool) {
	value, exists := c.Get(ContextUserRoleKey)
	if !exists {
		return "", false
	}
	role, ok := value.(models.UserRole)
	return role, ok
}

func GetCurrentUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(ContextUserKey)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	// Часть клиентов шлет голый токен без схемы
	return strings.TrimSpace(strings.TrimPrefix(header, "Bearer "))
}
