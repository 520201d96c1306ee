package workers

import (
	"context"
	"time"

	"procasa_backend/internal/logger"
	"procasa_backend/internal/models"

	"gorm.io/gorm"
)

// SubscriptionWorker downgrades lapsed paid plans back to BASE so that
// IsActive checks and the stored plan agree.
type SubscriptionWorker struct {
	db       *gorm.DB
	interval time.Duration
}

func NewSubscriptionWorker(db *gorm.DB, interval time.Duration) *SubscriptionWorker {
	if interval <= 0 {
		interval = time.Hour
	}
	return &SubscriptionWorker{db: db, interval: interval}
}

func (w *SubscriptionWorker) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	logger.Info("subscription worker started", "interval", w.interval.String())
	for {
		select {
		case <-ctx.Done():
			logger.Info("subscription worker stopped")
			return
		case <-ticker.C:
			w.expireLapsed()
		}
	}
}

func (w *SubscriptionWorker) expireLapsed() {
	result := w.db.Model(&models.Subscription{}).
		Where("plan <> ? AND expiry_date IS NOT NULL AND expiry_date < ?", models.PlanBase, time.Now()).
		Updates(map[string]interface{}{
			"plan":        models.PlanBase,
			"expiry_date": nil,
		})

	if result.Error != nil {
		logger.WorkerLog("subscription", "expire_lapsed", result.Error)
		return
	}
	if result.RowsAffected > 0 {
		logger.Info("lapsed subscriptions downgraded", "count", result.RowsAffected)
	}
}
