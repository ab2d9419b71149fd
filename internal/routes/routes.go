package routes

import (
	"net/http"

	"psyhub_backend/internal/handlers"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/repositories"

	"github.com/gin-gonic/gin"
)

// SetupRoutes вешает все маршруты на /api/v1.
// Публичное: auth, каталог, статьи, платежные callbacks.
// Остальное за AuthMiddleware, admin-ветка дополнительно за ролью.
func SetupRoutes(router *gin.Engine, h *handlers.AppHandlers, userRepo repositories.UserRepository) {
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api/v1")
	authRequired := middleware.AuthMiddleware(userRepo)

	auth := api.Group("/auth")
	{
		auth.POST("/register", h.Auth.Register)
		auth.POST("/login", h.Auth.Login)
		auth.POST("/refresh", h.Auth.Refresh)
		auth.GET("/me", authRequired, h.Auth.Me)
	}

	catalog := api.Group("/catalog")
	{
		catalog.GET("/psychologists", h.Profile.ListPsychologists)
		catalog.GET("/psychologists/:id", h.Profile.GetPsychologist)
		catalog.GET("/institutes", h.Profile.ListInstitutes)
		catalog.GET("/institutes/:id", h.Profile.GetInstitute)
	}

	profiles := api.Group("/profiles", authRequired)
	{
		profiles.PUT("/psychologist", middleware.RequireRoles(models.UserRolePsychologist), h.Profile.UpdatePsychologist)
		profiles.PUT("/institute", middleware.RequireRoles(models.UserRoleInstitute), h.Profile.UpdateInstitute)
		profiles.PUT("/client", middleware.RequireRoles(models.UserRoleClient), h.Profile.UpdateClient)
	}

	api.GET("/users/:id", authRequired, h.User.GetVisible)

	promotions := api.Group("/promotions", authRequired)
	{
		promotions.POST("/:type/:id", h.Promotion.Initiate)
	}

	paymentGroup := api.Group("/payment")
	{
		// webhook и success вызывает провайдер и браузер покупателя,
		// токена у них нет
		paymentGroup.POST("/webhook", h.Promotion.Webhook)
		paymentGroup.GET("/success", h.Promotion.Success)
		paymentGroup.GET("/history", authRequired, h.Promotion.History)
	}

	servicesGroup := api.Group("/services")
	{
		servicesGroup.GET("", h.Service.ListByOwner)
		servicesGroup.GET("/:id", h.Service.Get)
		servicesGroup.POST("", authRequired, h.Service.Create)
		servicesGroup.PUT("/:id", authRequired, h.Service.Update)
		servicesGroup.DELETE("/:id", authRequired, h.Service.Delete)
	}

	articles := api.Group("/articles")
	{
		articles.GET("", h.Article.List)
		articles.GET("/:id", h.Article.Get)
		articles.POST("", authRequired, h.Article.Create)
		articles.PUT("/:id", authRequired, h.Article.Update)
		articles.DELETE("/:id", authRequired, h.Article.Delete)
	}

	appointments := api.Group("/appointments", authRequired)
	{
		appointments.GET("", h.Appointment.ListMine)
		appointments.POST("", h.Appointment.Create)
		appointments.PATCH("/:id/status", h.Appointment.UpdateStatus)
	}

	admin := api.Group("/admin", authRequired, middleware.AdminMiddleware())
	{
		admin.POST("/users", h.User.Create)
		admin.GET("/users", h.User.List)
		admin.GET("/users/:id", h.User.Get)
		admin.PATCH("/users/:id/status", h.User.SetStatus)
		admin.DELETE("/users/:id", h.User.Delete)
	}
}
