package repositories

import (
	"errors"

	"procasa_backend/internal/models"

	"gorm.io/gorm"
)

var ErrClientNotFound = errors.New("client not found")

type ClientRepository interface {
	Create(db *gorm.DB, client *models.Client) error
	FindByID(db *gorm.DB, id string) (*models.Client, error)
	FindByEmail(db *gorm.DB, email string) (*models.Client, error)
	UpdateRanking(db *gorm.DB, id string, ranking float64, reviewCount int) error
}

type ClientRepositoryImpl struct{}

func NewClientRepository() ClientRepository {
	return &ClientRepositoryImpl{}
}

func (r *ClientRepositoryImpl) Create(db *gorm.DB, client *models.Client) error {
	return db.Create(client).Error
}

func (r *ClientRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Client, error) {
	var client models.Client
	if err := db.First(&client, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Client, error) {
	var client models.Client
	if err := db.First(&client, "email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrClientNotFound
		}
		return nil, err
	}
	return &client, nil
}

func (r *ClientRepositoryImpl) UpdateRanking(db *gorm.DB, id string, ranking float64, reviewCount int) error {
	return db.Model(&models.Client{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"ranking":      ranking,
			"review_count": reviewCount,
		}).Error
}
