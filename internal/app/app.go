package app

import (
	"context"
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/auth"
	"psyhub_backend/internal/config"
	"psyhub_backend/internal/email"
	"psyhub_backend/internal/handlers"
	"psyhub_backend/internal/logger"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/payment"
	"psyhub_backend/internal/repositories"
	"psyhub_backend/internal/routes"
	"psyhub_backend/internal/services"
	"psyhub_backend/internal/workers"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

// Run собирает и запускает приложение
func Run() {
	// .env опционален: в контейнерах конфигурация приходит из окружения
	_ = godotenv.Load()

	config.LoadConfig()
	cfg := config.GetConfig()

	logger.Init(cfg.Server.Env)
	apperrors.SetDebug(cfg.Server.Env == "development")

	db, err := gorm.Open(postgres.Open(cfg.Database.DSN), &gorm.Config{})
	if err != nil {
		logger.Fatal("failed to connect database", "error", err.Error())
	}

	if err := Migrate(db); err != nil {
		logger.Fatal("failed to run migrations", "error", err.Error())
	}

	userRepo := repositories.NewUserRepository()
	if err := seedFirstAdmin(db, userRepo, cfg); err != nil {
		logger.Fatal("failed to seed first admin", "error", err.Error())
	}

	router := SetupRouter(db, cfg)

	profileRepo := repositories.NewProfileRepository()
	worker := workers.NewPromotionWorker(db, profileRepo, time.Hour)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	go worker.Start(ctx)

	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	logger.Info("server starting", "addr", addr, "env", cfg.Server.Env)
	if err := router.Run(addr); err != nil {
		logger.Fatal("server stopped", "error", err.Error())
	}
}

// SetupRouter строит gin-роутер со всеми зависимостями.
// Вынесен отдельно, чтобы тесты могли поднять приложение
// на своей базе и моках.
func SetupRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	if cfg.Server.Env != "development" {
		gin.SetMode(gin.ReleaseMode)
	}

	userRepo := repositories.NewUserRepository()
	profileRepo := repositories.NewProfileRepository()
	promotionRepo := repositories.NewPromotionRepository()
	serviceRepo := repositories.NewServiceRepository()
	articleRepo := repositories.NewArticleRepository()
	appointmentRepo := repositories.NewAppointmentRepository()

	gateway := buildGateway(cfg)
	emailProvider := buildEmailProvider(cfg)

	svc := handlers.Services{
		Auth: services.NewAuthService(
			userRepo, profileRepo, emailProvider,
			cfg.JWT.RegisterTTLDays, cfg.JWT.LoginTTLDays,
		),
		User:        services.NewUserService(userRepo),
		Profile:     services.NewProfileService(profileRepo),
		Promotion:   services.NewPromotionService(promotionRepo, profileRepo, gateway, cfg),
		ServiceItem: services.NewServiceItemService(serviceRepo),
		Article:     services.NewArticleService(articleRepo),
		Appointment: services.NewAppointmentService(appointmentRepo, serviceRepo, userRepo, emailProvider),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestIDMiddleware())
	router.Use(middleware.LoggingMiddleware())
	router.Use(middleware.CORSMiddleware())
	router.Use(middleware.DBMiddleware(db))

	routes.SetupRoutes(router, handlers.NewAppHandlers(svc, cfg), userRepo)
	return router
}

// Migrate прогоняет автомиграции всех моделей
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.User{},
		&models.PsychologistProfile{},
		&models.InstituteProfile{},
		&models.ClientProfile{},
		&models.PromotionRequest{},
		&models.ServiceItem{},
		&models.Article{},
		&models.Appointment{},
	)
}

func buildGateway(cfg *config.Config) payment.Gateway {
	if cfg.Payment.ShopID == "" || cfg.Payment.SecretKey == "" {
		logger.Warn("payment credentials missing, using mock gateway")
		return payment.NewMockGateway()
	}
	return payment.NewHTTPGateway(cfg)
}

func buildEmailProvider(cfg *config.Config) email.Provider {
	if cfg.Email.SMTPHost == "" {
		logger.Warn("smtp not configured, emails will not be delivered")
		return email.NewMockProvider()
	}
	return email.NewSMTPProvider(cfg)
}

// seedFirstAdmin создает администратора при первом запуске,
// если он задан в конфиге и его еще нет в базе
func seedFirstAdmin(db *gorm.DB, userRepo repositories.UserRepository, cfg *config.Config) error {
	if cfg.FirstAdminEmail == "" || cfg.FirstAdminPassword == "" {
		return nil
	}

	_, err := userRepo.FindByEmail(db, cfg.FirstAdminEmail)
	if err == nil {
		return nil
	}
	if !apperrors.Is(err, repositories.ErrUserNotFound) {
		return err
	}

	hash, err := auth.HashPassword(cfg.FirstAdminPassword)
	if err != nil {
		return err
	}

	admin := &models.User{
		Email:        cfg.FirstAdminEmail,
		PasswordHash: hash,
		Name:         "Administrator",
		Role:         models.UserRoleAdmin,
		IsVerified:   true,
		IsActive:     true,
	}
	if err := userRepo.Create(db, admin); err != nil {
		return err
	}

	logger.Info("first admin created", "email", cfg.FirstAdminEmail)
	return nil
}
