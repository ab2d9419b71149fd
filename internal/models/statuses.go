package models

type UserRole string
type PromotionType string
type PromotionStatus string
type AppointmentStatus string

const (
	UserRoleAdmin        UserRole = "admin"
	UserRolePsychologist UserRole = "psychologist"
	UserRoleInstitute    UserRole = "institute"
	UserRoleClient       UserRole = "client"

	PromotionTypePsychologist PromotionType = "psychologist"
	PromotionTypeInstitution  PromotionType = "institution"

	// Статусы терминальные: из pending можно уйти только один раз
	PromotionStatusPending   PromotionStatus = "pending"
	PromotionStatusCompleted PromotionStatus = "completed"
	PromotionStatusFailed    PromotionStatus = "failed"

	AppointmentStatusPending   AppointmentStatus = "pending"
	AppointmentStatusConfirmed AppointmentStatus = "confirmed"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

// SelfServiceRoles - роли, доступные при самостоятельной регистрации.
// Админов создает только другой админ.
var SelfServiceRoles = map[UserRole]bool{
	UserRolePsychologist: true,
	UserRoleInstitute:    true,
	UserRoleClient:       true,
}
