package workers

import (
	"context"
	"time"

	"psyhub_backend/internal/logger"
	"psyhub_backend/internal/repositories"

	"gorm.io/gorm"
)

// PromotionWorker снимает истекшие продвижения.
// Профиль с top_until в прошлом не должен висеть в топе каталога
// дольше одного интервала проверки.
type PromotionWorker struct {
	db          *gorm.DB
	profileRepo repositories.ProfileRepository
	interval    time.Duration
}

func NewPromotionWorker(db *gorm.DB, profileRepo repositories.ProfileRepository, interval time.Duration) *PromotionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &PromotionWorker{
		db:          db,
		profileRepo: profileRepo,
		interval:    interval,
	}
}

// Start блокируется до отмены контекста; запускать в горутине
func (w *PromotionWorker) Start(ctx context.Context) {
	logger.Info("promotion worker started", "interval", w.interval.String())

	// Первый проход сразу: после рестарта могли накопиться истекшие
	w.RunOnce()

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("promotion worker stopped")
			return
		case <-ticker.C:
			w.RunOnce()
		}
	}
}

// RunOnce выполняет один проход очистки
func (w *PromotionWorker) RunOnce() {
	cleared, err := w.profileRepo.ClearExpiredPromotions(w.db, time.Now())
	logger.WorkerLog("promotion", "clear_expired", err)
	if err == nil && cleared > 0 {
		logger.Info("expired promotions cleared", "count", cleared)
	}
}
