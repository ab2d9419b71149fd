package handlers

import (
	"psyhub_backend/internal/config"
	"psyhub_backend/internal/services"
)

// AppHandlers собирает все обработчики в одну структуру,
// чтобы роутер получал единственную зависимость
type AppHandlers struct {
	Auth        *AuthHandler
	User        *UserHandler
	Profile     *ProfileHandler
	Promotion   *PromotionHandler
	Service     *ServiceHandler
	Article     *ArticleHandler
	Appointment *AppointmentHandler
}

type Services struct {
	Auth        services.AuthService
	User        services.UserService
	Profile     services.ProfileService
	Promotion   services.PromotionService
	ServiceItem services.ServiceItemService
	Article     services.ArticleService
	Appointment services.AppointmentService
}

func NewAppHandlers(svc Services, cfg *config.Config) *AppHandlers {
	base := NewBaseHandler()

	return &AppHandlers{
		Auth:        NewAuthHandler(base, svc.Auth),
		User:        NewUserHandler(base, svc.User),
		Profile:     NewProfileHandler(base, svc.Profile),
		Promotion:   NewPromotionHandler(base, svc.Promotion, cfg),
		Service:     NewServiceHandler(base, svc.ServiceItem),
		Article:     NewArticleHandler(base, svc.Article),
		Appointment: NewAppointmentHandler(base, svc.Appointment),
	}
}
