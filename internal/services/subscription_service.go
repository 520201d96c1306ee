package services

import (
	"errors"
	"time"

	"procasa_backend/internal/models"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/services/dto"
	"procasa_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type SubscriptionService interface {
	GetStatus(db *gorm.DB, proID string) (*dto.SubscriptionStatus, error)
	// Upgrade moves the professional onto a paid plan. The trial is a
	// one-shot: once consumed it can never be re-activated.
	Upgrade(db *gorm.DB, proID string, req *dto.UpgradeSubscriptionRequest) (*dto.SubscriptionStatus, error)
}

type subscriptionService struct {
	subscriptionRepo repositories.SubscriptionRepository
	proRepo          repositories.ProfessionalRepository
	now              func() time.Time
}

func NewSubscriptionService(
	subscriptionRepo repositories.SubscriptionRepository,
	proRepo repositories.ProfessionalRepository,
) SubscriptionService {
	return &subscriptionService{
		subscriptionRepo: subscriptionRepo,
		proRepo:          proRepo,
		now:              time.Now,
	}
}

func (s *subscriptionService) GetStatus(db *gorm.DB, proID string) (*dto.SubscriptionStatus, error) {
	sub, err := s.findOrInit(db, proID)
	if err != nil {
		return nil, err
	}
	return s.buildStatus(sub), nil
}

func (s *subscriptionService) Upgrade(db *gorm.DB, proID string, req *dto.UpgradeSubscriptionRequest) (*dto.SubscriptionStatus, error) {
	plan := models.SubscriptionPlan(req.Plan)
	if !plan.Valid() || plan == models.PlanBase {
		return nil, apperrors.NewBadRequestError("Unknown subscription plan: " + req.Plan)
	}

	if _, err := s.proRepo.FindByID(db, proID); err != nil {
		if errors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}

	sub, err := s.subscriptionRepo.FindByProfessional(db, proID)
	created := false
	if err != nil {
		if !errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return nil, err
		}
		sub = &models.Subscription{ProfessionalID: proID, Plan: models.PlanBase}
		created = true
	}

	if plan == models.PlanTrial && sub.IsTrialUsed {
		return nil, apperrors.ErrTrialAlreadyUsed
	}

	expiry := s.now().Add(models.PlanDuration(plan))
	sub.Plan = plan
	sub.ExpiryDate = &expiry
	if plan == models.PlanTrial {
		sub.IsTrialUsed = true
	}

	if created {
		err = s.subscriptionRepo.Create(db, sub)
	} else {
		err = s.subscriptionRepo.Update(db, sub)
	}
	if err != nil {
		return nil, err
	}

	return s.buildStatus(sub), nil
}

func (s *subscriptionService) findOrInit(db *gorm.DB, proID string) (*models.Subscription, error) {
	sub, err := s.subscriptionRepo.FindByProfessional(db, proID)
	if err == nil {
		return sub, nil
	}
	if errors.Is(err, repositories.ErrSubscriptionNotFound) {
		return &models.Subscription{ProfessionalID: proID, Plan: models.PlanBase}, nil
	}
	return nil, err
}

func (s *subscriptionService) buildStatus(sub *models.Subscription) *dto.SubscriptionStatus {
	return &dto.SubscriptionStatus{
		Plan:        string(sub.Plan),
		ExpiryDate:  sub.ExpiryDate,
		IsTrialUsed: sub.IsTrialUsed,
		Active:      sub.IsActive(s.now()),
	}
}
