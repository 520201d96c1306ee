package repositories

import (
	"errors"

	"procasa_backend/internal/models"

	"gorm.io/gorm"
)

var ErrSubscriptionNotFound = errors.New("subscription not found")

type SubscriptionRepository interface {
	Create(db *gorm.DB, sub *models.Subscription) error
	FindByProfessional(db *gorm.DB, proID string) (*models.Subscription, error)
	Update(db *gorm.DB, sub *models.Subscription) error
}

type SubscriptionRepositoryImpl struct{}

func NewSubscriptionRepository() SubscriptionRepository {
	return &SubscriptionRepositoryImpl{}
}

func (r *SubscriptionRepositoryImpl) Create(db *gorm.DB, sub *models.Subscription) error {
	return db.Create(sub).Error
}

func (r *SubscriptionRepositoryImpl) FindByProfessional(db *gorm.DB, proID string) (*models.Subscription, error) {
	var sub models.Subscription
	if err := db.First(&sub, "professional_id = ?", proID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrSubscriptionNotFound
		}
		return nil, err
	}
	return &sub, nil
}

func (r *SubscriptionRepositoryImpl) Update(db *gorm.DB, sub *models.Subscription) error {
	return db.Model(sub).
		Select("plan", "expiry_date", "is_trial_used").
		Updates(sub).Error
}
