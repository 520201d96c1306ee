package services

import (
	"errors"
	"math"
	"time"

	"procasa_backend/internal/models"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/services/dto"
	"procasa_backend/pkg/apperrors"

	"gorm.io/gorm"
)

type ReviewService interface {
	// ConfirmReview publishes a pending review and folds it into the
	// professional's ranking. Gated on an active subscription.
	ConfirmReview(db *gorm.DB, reviewID, proID string) (*dto.ReviewResponse, error)
	// ReplyToReview records the professional's reply and counter-rating of
	// the client, updating the client's running mean.
	ReplyToReview(db *gorm.DB, reviewID, proID string, req *dto.ReplyToReviewRequest) (*dto.ReviewResponse, error)
	GetProfessionalReviews(db *gorm.DB, proID string, includeUnconfirmed bool) ([]dto.ReviewResponse, error)
}

type reviewService struct {
	reviewRepo       repositories.ReviewRepository
	proRepo          repositories.ProfessionalRepository
	clientRepo       repositories.ClientRepository
	subscriptionRepo repositories.SubscriptionRepository
	now              func() time.Time
}

func NewReviewService(
	reviewRepo repositories.ReviewRepository,
	proRepo repositories.ProfessionalRepository,
	clientRepo repositories.ClientRepository,
	subscriptionRepo repositories.SubscriptionRepository,
) ReviewService {
	return &reviewService{
		reviewRepo:       reviewRepo,
		proRepo:          proRepo,
		clientRepo:       clientRepo,
		subscriptionRepo: subscriptionRepo,
		now:              time.Now,
	}
}

func (s *reviewService) ConfirmReview(db *gorm.DB, reviewID, proID string) (*dto.ReviewResponse, error) {
	review, err := s.findOwnReview(db, reviewID, proID)
	if err != nil {
		return nil, err
	}
	if review.IsConfirmed {
		return nil, apperrors.ErrReviewAlreadyConfirmed
	}

	active, err := s.subscriptionActive(db, proID)
	if err != nil {
		return nil, err
	}
	if !active {
		return nil, apperrors.ErrSubscriptionRequired
	}

	review.IsConfirmed = true
	if err := s.reviewRepo.Update(db, review); err != nil {
		return nil, err
	}

	if err := s.recomputeRanking(db, proID); err != nil {
		return nil, err
	}

	return buildReviewResponse(review), nil
}

func (s *reviewService) ReplyToReview(db *gorm.DB, reviewID, proID string, req *dto.ReplyToReviewRequest) (*dto.ReviewResponse, error) {
	review, err := s.findOwnReview(db, reviewID, proID)
	if err != nil {
		return nil, err
	}
	if review.ReplyComment != nil {
		return nil, apperrors.ErrReviewAlreadyReplied
	}

	now := s.now()
	comment := req.Comment
	rating := req.ClientRating
	review.ReplyComment = &comment
	review.ReplyClientRating = &rating
	review.ReplyDate = &now

	if err := s.reviewRepo.Update(db, review); err != nil {
		return nil, err
	}

	if err := s.updateClientRanking(db, review.ClientID, rating); err != nil {
		return nil, err
	}

	return buildReviewResponse(review), nil
}

func (s *reviewService) GetProfessionalReviews(db *gorm.DB, proID string, includeUnconfirmed bool) ([]dto.ReviewResponse, error) {
	var (
		reviews []models.Review
		err     error
	)
	if includeUnconfirmed {
		reviews, err = s.reviewRepo.FindByProfessional(db, proID)
	} else {
		reviews, err = s.reviewRepo.FindConfirmedByProfessional(db, proID)
	}
	if err != nil {
		return nil, err
	}

	out := make([]dto.ReviewResponse, 0, len(reviews))
	for i := range reviews {
		out = append(out, *buildReviewResponse(&reviews[i]))
	}
	return out, nil
}

func (s *reviewService) findOwnReview(db *gorm.DB, reviewID, proID string) (*models.Review, error) {
	review, err := s.reviewRepo.FindByID(db, reviewID)
	if err != nil {
		if errors.Is(err, repositories.ErrReviewNotFound) {
			return nil, apperrors.ErrNotFound(err)
		}
		return nil, err
	}
	if review.ProfessionalID != proID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	return review, nil
}

func (s *reviewService) subscriptionActive(db *gorm.DB, proID string) (bool, error) {
	sub, err := s.subscriptionRepo.FindByProfessional(db, proID)
	if err != nil {
		if errors.Is(err, repositories.ErrSubscriptionNotFound) {
			return false, nil
		}
		return false, err
	}
	return sub.IsActive(s.now()), nil
}

// recomputeRanking derives the professional's ranking from scratch over the
// confirmed review set. Unconfirmed reviews never count; with no confirmed
// reviews the ranking falls back to the default.
func (s *reviewService) recomputeRanking(db *gorm.DB, proID string) error {
	confirmed, err := s.reviewRepo.FindConfirmedByProfessional(db, proID)
	if err != nil {
		return err
	}

	ranking := models.DefaultRanking
	if len(confirmed) > 0 {
		sum := 0
		for _, r := range confirmed {
			sum += r.Rating
		}
		ranking = roundRanking(float64(sum) / float64(len(confirmed)))
	}

	return s.proRepo.UpdateRanking(db, proID, ranking)
}

// updateClientRanking folds one counter-rating into the client's running
// mean without rereading past replies.
func (s *reviewService) updateClientRanking(db *gorm.DB, clientID string, rating int) error {
	client, err := s.clientRepo.FindByID(db, clientID)
	if err != nil {
		return err
	}

	n := client.ReviewCount
	newRanking := roundRanking((client.Ranking*float64(n) + float64(rating)) / float64(n+1))
	return s.clientRepo.UpdateRanking(db, clientID, newRanking, n+1)
}

func roundRanking(v float64) float64 {
	return math.Round(v*10) / 10
}

func buildReviewResponse(r *models.Review) *dto.ReviewResponse {
	resp := &dto.ReviewResponse{
		ID:             r.ID,
		ProfessionalID: r.ProfessionalID,
		ClientID:       r.ClientID,
		ClientName:     r.ClientName,
		RequestID:      r.RequestID,
		JobDescription: r.JobDescription,
		Rating:         r.Rating,
		Comment:        r.Comment,
		IsConfirmed:    r.IsConfirmed,
		CreatedAt:      r.CreatedAt,
	}
	if r.ReplyComment != nil && r.ReplyClientRating != nil && r.ReplyDate != nil {
		resp.Reply = &dto.ReviewReply{
			Comment:      *r.ReplyComment,
			ClientRating: *r.ReplyClientRating,
			Date:         *r.ReplyDate,
		}
	}
	return resp
}
