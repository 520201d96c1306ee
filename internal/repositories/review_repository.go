package repositories

import (
	"errors"

	"procasa_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrReviewNotFound      = errors.New("review not found")
	ErrReviewAlreadyExists = errors.New("review already exists for this request")
)

type ReviewRepository interface {
	Create(db *gorm.DB, review *models.Review) error
	FindByID(db *gorm.DB, id string) (*models.Review, error)
	FindByProfessional(db *gorm.DB, proID string) ([]models.Review, error)
	FindConfirmedByProfessional(db *gorm.DB, proID string) ([]models.Review, error)
	Update(db *gorm.DB, review *models.Review) error
}

type ReviewRepositoryImpl struct{}

func NewReviewRepository() ReviewRepository {
	return &ReviewRepositoryImpl{}
}

func (r *ReviewRepositoryImpl) Create(db *gorm.DB, review *models.Review) error {
	if review.RequestID != nil {
		var existing models.Review
		err := db.Where("request_id = ? AND client_id = ?", *review.RequestID, review.ClientID).
			First(&existing).Error
		if err == nil {
			return ErrReviewAlreadyExists
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
	}
	return db.Create(review).Error
}

func (r *ReviewRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Review, error) {
	var review models.Review
	if err := db.First(&review, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrReviewNotFound
		}
		return nil, err
	}
	return &review, nil
}

func (r *ReviewRepositoryImpl) FindByProfessional(db *gorm.DB, proID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("professional_id = ?", proID).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) FindConfirmedByProfessional(db *gorm.DB, proID string) ([]models.Review, error) {
	var reviews []models.Review
	err := db.Where("professional_id = ? AND is_confirmed = ?", proID, true).
		Order("created_at DESC").
		Find(&reviews).Error
	return reviews, err
}

func (r *ReviewRepositoryImpl) Update(db *gorm.DB, review *models.Review) error {
	return db.Model(review).
		Select("*").
		Omit("id", "created_at").
		Updates(review).Error
}
