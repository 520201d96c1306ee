package repositories

import (
	"errors"

	"procasa_backend/internal/models"

	"gorm.io/gorm"
)

var ErrDemoAccountNotFound = errors.New("demo account not found")

type DemoAccountRepository interface {
	Create(db *gorm.DB, account *models.DemoAccount) error
	FindByName(db *gorm.DB, name string) (*models.DemoAccount, error)
}

type DemoAccountRepositoryImpl struct{}

func NewDemoAccountRepository() DemoAccountRepository {
	return &DemoAccountRepositoryImpl{}
}

func (r *DemoAccountRepositoryImpl) Create(db *gorm.DB, account *models.DemoAccount) error {
	return db.Create(account).Error
}

func (r *DemoAccountRepositoryImpl) FindByName(db *gorm.DB, name string) (*models.DemoAccount, error) {
	var account models.DemoAccount
	if err := db.First(&account, "name = ?", name).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrDemoAccountNotFound
		}
		return nil, err
	}
	return &account, nil
}
