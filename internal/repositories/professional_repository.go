package repositories

import (
	"errors"

	"procasa_backend/internal/models"

	"gorm.io/gorm"
)

var ErrProfessionalNotFound = errors.New("professional not found")

type ProfessionalRepository interface {
	Create(db *gorm.DB, pro *models.Professional) error
	FindByID(db *gorm.DB, id string) (*models.Professional, error)
	FindByEmail(db *gorm.DB, email string) (*models.Professional, error)
	// FindAll returns the full roster in creation order, with subscription
	// and reviews preloaded.
	FindAll(db *gorm.DB) ([]models.Professional, error)
	Update(db *gorm.DB, pro *models.Professional) error
	UpdateRanking(db *gorm.DB, id string, ranking float64) error
}

type ProfessionalRepositoryImpl struct{}

func NewProfessionalRepository() ProfessionalRepository {
	return &ProfessionalRepositoryImpl{}
}

func (r *ProfessionalRepositoryImpl) Create(db *gorm.DB, pro *models.Professional) error {
	return db.Create(pro).Error
}

func (r *ProfessionalRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.Professional, error) {
	var pro models.Professional
	err := db.Preload("Subscription").
		Preload("Reviews").
		First(&pro, "id = ?", id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &pro, nil
}

func (r *ProfessionalRepositoryImpl) FindByEmail(db *gorm.DB, email string) (*models.Professional, error) {
	var pro models.Professional
	err := db.Preload("Subscription").
		First(&pro, "email = ?", email).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProfessionalNotFound
		}
		return nil, err
	}
	return &pro, nil
}

func (r *ProfessionalRepositoryImpl) FindAll(db *gorm.DB) ([]models.Professional, error) {
	var pros []models.Professional
	err := db.Preload("Subscription").
		Preload("Reviews").
		Order("created_at ASC").
		Find(&pros).Error
	return pros, err
}

func (r *ProfessionalRepositoryImpl) Update(db *gorm.DB, pro *models.Professional) error {
	return db.Model(pro).
		Select("*").
		Omit("id", "created_at", "ranking").
		Updates(pro).Error
}

func (r *ProfessionalRepositoryImpl) UpdateRanking(db *gorm.DB, id string, ranking float64) error {
	return db.Model(&models.Professional{}).
		Where("id = ?", id).
		Update("ranking", ranking).Error
}
