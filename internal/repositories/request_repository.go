package repositories

import (
	"errors"
	"strconv"

	"procasa_backend/internal/models"

	"gorm.io/gorm"
)

var (
	ErrRequestNotFound = errors.New("job request not found")
	// ErrVersionConflict signals a lost CAS race; callers re-read and retry.
	ErrVersionConflict = errors.New("job request was modified concurrently")
)

type RequestRepository interface {
	Create(db *gorm.DB, req *models.JobRequest) error
	FindByID(db *gorm.DB, id string) (*models.JobRequest, error)
	FindByClient(db *gorm.DB, clientID string) ([]models.JobRequest, error)
	// FindByInvitedPro returns requests whose selected set contains the
	// professional, newest first.
	FindByInvitedPro(db *gorm.DB, proID string) ([]models.JobRequest, error)
	// UpdateWithVersion persists the request only if its version column
	// still matches the value it was read with.
	UpdateWithVersion(db *gorm.DB, req *models.JobRequest) error
	Delete(db *gorm.DB, id string) error
}

type RequestRepositoryImpl struct{}

func NewRequestRepository() RequestRepository {
	return &RequestRepositoryImpl{}
}

func (r *RequestRepositoryImpl) Create(db *gorm.DB, req *models.JobRequest) error {
	return db.Create(req).Error
}

func (r *RequestRepositoryImpl) FindByID(db *gorm.DB, id string) (*models.JobRequest, error) {
	var req models.JobRequest
	if err := db.First(&req, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRequestNotFound
		}
		return nil, err
	}
	return &req, nil
}

func (r *RequestRepositoryImpl) FindByClient(db *gorm.DB, clientID string) ([]models.JobRequest, error) {
	var requests []models.JobRequest
	err := db.Where("client_id = ?", clientID).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) FindByInvitedPro(db *gorm.DB, proID string) ([]models.JobRequest, error) {
	var requests []models.JobRequest
	err := db.Where("selected_pro_ids @> ?::jsonb", strconv.Quote(proID)).
		Order("created_at DESC").
		Find(&requests).Error
	return requests, err
}

func (r *RequestRepositoryImpl) UpdateWithVersion(db *gorm.DB, req *models.JobRequest) error {
	readVersion := req.Version
	req.Version = readVersion + 1

	result := db.Model(&models.JobRequest{}).
		Where("id = ? AND version = ?", req.ID, readVersion).
		Select("*").
		Omit("id", "created_at").
		Updates(req)
	if result.Error != nil {
		req.Version = readVersion
		return result.Error
	}
	if result.RowsAffected == 0 {
		req.Version = readVersion
		return ErrVersionConflict
	}
	return nil
}

func (r *RequestRepositoryImpl) Delete(db *gorm.DB, id string) error {
	result := db.Delete(&models.JobRequest{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRequestNotFound
	}
	return nil
}
