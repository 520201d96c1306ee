package services

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"procasa_backend/internal/logger"
	"procasa_backend/internal/models"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/services/dto"
	"procasa_backend/internal/suggest"
	"procasa_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ProfileService interface {
	// GetRoster returns every professional with public data only:
	// unconfirmed reviews are stripped.
	GetRoster(db *gorm.DB) ([]dto.ProfessionalResponse, error)
	// GetProfessional returns one profile. The owner also sees pending
	// reviews and their subscription status.
	GetProfessional(db *gorm.DB, proID, viewerID string) (*dto.ProfessionalResponse, error)
	UpdateProfile(db *gorm.DB, proID string, req *dto.UpdateProfileRequest) (*dto.ProfessionalResponse, error)
	// OptimizeProfile asks the suggestion provider for a rewritten bio and
	// summary. Degrades to the current text untouched.
	OptimizeProfile(ctx context.Context, db *gorm.DB, proID string) (*dto.OptimizeProfileResponse, error)
	GetClient(db *gorm.DB, clientID string) (*dto.ClientResponse, error)
}

type profileService struct {
	proRepo    repositories.ProfessionalRepository
	clientRepo repositories.ClientRepository
	provider   suggest.Provider
	now        func() time.Time
}

func NewProfileService(
	proRepo repositories.ProfessionalRepository,
	clientRepo repositories.ClientRepository,
	provider suggest.Provider,
) ProfileService {
	return &profileService{
		proRepo:    proRepo,
		clientRepo: clientRepo,
		provider:   provider,
		now:        time.Now,
	}
}

func (s *profileService) GetRoster(db *gorm.DB) ([]dto.ProfessionalResponse, error) {
	pros, err := s.proRepo.FindAll(db)
	if err != nil {
		return nil, err
	}

	out := make([]dto.ProfessionalResponse, 0, len(pros))
	for i := range pros {
		out = append(out, *s.buildProfessionalResponse(&pros[i], false))
	}
	return out, nil
}

func (s *profileService) GetProfessional(db *gorm.DB, proID, viewerID string) (*dto.ProfessionalResponse, error) {
	pro, err := s.findPro(db, proID)
	if err != nil {
		return nil, err
	}
	return s.buildProfessionalResponse(pro, viewerID == proID), nil
}

func (s *profileService) UpdateProfile(db *gorm.DB, proID string, req *dto.UpdateProfileRequest) (*dto.ProfessionalResponse, error) {
	pro, err := s.findPro(db, proID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		pro.Name = *req.Name
	}
	if req.Category != nil {
		cat := models.Category(*req.Category)
		if !cat.Valid() {
			return nil, apperrors.NewBadRequestError("Unknown category: " + *req.Category)
		}
		pro.Category = cat
	}
	if req.Bio != nil {
		pro.Bio = *req.Bio
	}
	if req.Phone != nil {
		pro.Phone = *req.Phone
	}
	if req.LocationLat != nil {
		pro.LocationLat = *req.LocationLat
	}
	if req.LocationLng != nil {
		pro.LocationLng = *req.LocationLng
	}
	if req.LocationAddress != nil {
		pro.LocationAddress = *req.LocationAddress
	}
	if req.WorkingRadiusKm != nil {
		pro.WorkingRadiusKm = *req.WorkingRadiusKm
	}
	if req.HourlyRateMin != nil {
		pro.HourlyRateMin = *req.HourlyRateMin
	}
	if req.HourlyRateMax != nil {
		pro.HourlyRateMax = *req.HourlyRateMax
	}
	if req.Certifications != nil {
		data, _ := json.Marshal(req.Certifications)
		pro.Certifications = datatypes.JSON(data)
	}
	if req.ExperienceYears != nil {
		pro.ExperienceYears = *req.ExperienceYears
	}
	if req.CVSummary != nil {
		pro.CVSummary = *req.CVSummary
	}
	if req.Avatar != nil {
		pro.Avatar = *req.Avatar
	}

	if pro.HourlyRateMax > 0 && pro.HourlyRateMin > pro.HourlyRateMax {
		return nil, apperrors.NewBadRequestError("Minimum hourly rate exceeds maximum")
	}

	if err := s.proRepo.Update(db, pro); err != nil {
		return nil, err
	}
	return s.buildProfessionalResponse(pro, true), nil
}

func (s *profileService) OptimizeProfile(ctx context.Context, db *gorm.DB, proID string) (*dto.OptimizeProfileResponse, error) {
	pro, err := s.findPro(db, proID)
	if err != nil {
		return nil, err
	}

	draft := suggest.ProfileDraft{
		Name:            pro.Name,
		Category:        string(pro.Category),
		Address:         pro.LocationAddress,
		ExperienceYears: pro.ExperienceYears,
		Certifications:  decodeStrings(pro.Certifications),
		Bio:             pro.Bio,
	}

	optimized, err := s.provider.OptimizeProfile(ctx, draft)
	if err != nil || optimized == nil {
		logger.CtxWarn(ctx, "profile optimization degraded to current text", "error", err)
		return &dto.OptimizeProfileResponse{Bio: pro.Bio, CVSummary: pro.CVSummary}, nil
	}
	return &dto.OptimizeProfileResponse{Bio: optimized.Bio, CVSummary: optimized.CVSummary}, nil
}

func (s *profileService) GetClient(db *gorm.DB, clientID string) (*dto.ClientResponse, error) {
	client, err := s.clientRepo.FindByID(db, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return &dto.ClientResponse{
		ID:          client.ID,
		Name:        client.Name,
		Avatar:      client.Avatar,
		Ranking:     client.Ranking,
		ReviewCount: client.ReviewCount,
		CreatedAt:   client.CreatedAt,
	}, nil
}

func (s *profileService) findPro(db *gorm.DB, proID string) (*models.Professional, error) {
	pro, err := s.proRepo.FindByID(db, proID)
	if err != nil {
		if errors.Is(err, repositories.ErrProfessionalNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	return pro, nil
}

func (s *profileService) buildProfessionalResponse(pro *models.Professional, owner bool) *dto.ProfessionalResponse {
	reviews := make([]dto.ReviewResponse, 0, len(pro.Reviews))
	for i := range pro.Reviews {
		r := &pro.Reviews[i]
		if !r.IsConfirmed && !owner {
			continue
		}
		reviews = append(reviews, *buildReviewResponse(r))
	}

	resp := &dto.ProfessionalResponse{
		ID:              pro.ID,
		Name:            pro.Name,
		Category:        pro.Category,
		Bio:             pro.Bio,
		LocationLat:     pro.LocationLat,
		LocationLng:     pro.LocationLng,
		LocationAddress: pro.LocationAddress,
		WorkingRadiusKm: pro.WorkingRadiusKm,
		HourlyRateMin:   pro.HourlyRateMin,
		HourlyRateMax:   pro.HourlyRateMax,
		Certifications:  decodeStrings(pro.Certifications),
		ExperienceYears: pro.ExperienceYears,
		CVSummary:       pro.CVSummary,
		Avatar:          pro.Avatar,
		Ranking:         pro.Ranking,
		Reviews:         reviews,
		CreatedAt:       pro.CreatedAt,
	}

	if owner {
		resp.Phone = pro.Phone
		resp.Email = pro.Email
		if pro.Subscription != nil {
			resp.Subscription = &dto.SubscriptionStatus{
				Plan:        string(pro.Subscription.Plan),
				ExpiryDate:  pro.Subscription.ExpiryDate,
				IsTrialUsed: pro.Subscription.IsTrialUsed,
				Active:      pro.Subscription.IsActive(s.now()),
			}
		}
	}
	return resp
}

func decodeStrings(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return []string{}
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return []string{}
	}
	return out
}
