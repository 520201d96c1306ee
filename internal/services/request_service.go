package services

import (
	"encoding/json"
	"errors"

	"procasa_backend/internal/email"
	"procasa_backend/internal/logger"
	"procasa_backend/internal/models"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/services/dto"
	"procasa_backend/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// lifecycleRetries bounds the optimistic-concurrency retry loop. Conflicts
// only arise from racing sessions on the same request, so a handful of
// attempts is plenty.
const lifecycleRetries = 5

// errNoChange short-circuits a mutation that turned out to be a no-op
// (idempotent accept/reject retries). Never returned to callers.
var errNoChange = errors.New("no change")

// SnapshotPublisher pushes full request snapshots to subscribed sessions.
type SnapshotPublisher interface {
	PublishRequest(snapshot *dto.RequestResponse)
}

type RequestService interface {
	CreateRequest(db *gorm.DB, clientID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error)
	GetRequest(db *gorm.DB, requestID, requesterID string) (*dto.RequestResponse, error)
	GetClientRequests(db *gorm.DB, clientID string) ([]dto.RequestResponse, error)
	// GetOpportunities returns requests the professional is invited to and
	// has not yet responded to.
	GetOpportunities(db *gorm.DB, proID string) ([]dto.RequestResponse, error)
	AcceptRequest(db *gorm.DB, requestID, proID string) (*dto.RequestResponse, error)
	RejectRequest(db *gorm.DB, requestID, proID string) (*dto.RequestResponse, error)
	HireProfessional(db *gorm.DB, requestID, clientID, proID string) (*dto.RequestResponse, error)
	MarkServiceReceived(db *gorm.DB, requestID, clientID string) (*dto.RequestResponse, error)
	FileReview(db *gorm.DB, requestID, clientID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error)
	DeleteRequest(db *gorm.DB, requestID, clientID string) error
}

type requestService struct {
	requestRepo repositories.RequestRepository
	proRepo     repositories.ProfessionalRepository
	clientRepo  repositories.ClientRepository
	reviewRepo  repositories.ReviewRepository
	mailer      email.Provider
	publisher   SnapshotPublisher
}

func NewRequestService(
	requestRepo repositories.RequestRepository,
	proRepo repositories.ProfessionalRepository,
	clientRepo repositories.ClientRepository,
	reviewRepo repositories.ReviewRepository,
	mailer email.Provider,
	publisher SnapshotPublisher,
) RequestService {
	return &requestService{
		requestRepo: requestRepo,
		proRepo:     proRepo,
		clientRepo:  clientRepo,
		reviewRepo:  reviewRepo,
		mailer:      mailer,
		publisher:   publisher,
	}
}

// Lifecycle operations

func (s *requestService) CreateRequest(db *gorm.DB, clientID string, req *dto.CreateRequestRequest) (*dto.RequestResponse, error) {
	client, err := s.clientRepo.FindByID(db, clientID)
	if err != nil {
		if errors.Is(err, repositories.ErrClientNotFound) {
			return nil, apperrors.ErrInvalidUserRole
		}
		return nil, err
	}

	var category *models.Category
	if req.Category != nil {
		c := models.Category(*req.Category)
		if !c.Valid() {
			return nil, apperrors.NewBadRequestError("Unknown category: " + *req.Category)
		}
		category = &c
	}

	request := &models.JobRequest{
		ClientID:       client.ID,
		ClientName:     client.Name,
		ClientAvatar:   client.Avatar,
		ClientRanking:  client.Ranking,
		Description:    req.Description,
		Category:       category,
		City:           req.City,
		BudgetMin:      req.BudgetMin,
		BudgetMax:      req.BudgetMax,
		SelectedProIDs: encodeIDs(dedupe(req.SelectedProIDs)),
		AcceptedProIDs: encodeIDs(nil),
		RejectedProIDs: encodeIDs(nil),
		Status:         models.JobStatusPending,
		Clarifications: encodeClarifications(req.Clarifications),
		Version:        1,
	}

	if err := s.requestRepo.Create(db, request); err != nil {
		return nil, err
	}

	go s.notifyInvited(db, request)

	snapshot := s.buildRequestResponse(request)
	s.publish(snapshot)
	return snapshot, nil
}

func (s *requestService) GetRequest(db *gorm.DB, requestID, requesterID string) (*dto.RequestResponse, error) {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		return nil, s.mapRepoError(err)
	}

	if request.ClientID != requesterID && !containsID(decodeIDs(request.SelectedProIDs), requesterID) {
		return nil, apperrors.ErrInsufficientPermissions
	}

	return s.buildRequestResponse(request), nil
}

func (s *requestService) GetClientRequests(db *gorm.DB, clientID string) ([]dto.RequestResponse, error) {
	requests, err := s.requestRepo.FindByClient(db, clientID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.RequestResponse, 0, len(requests))
	for i := range requests {
		out = append(out, *s.buildRequestResponse(&requests[i]))
	}
	return out, nil
}

func (s *requestService) GetOpportunities(db *gorm.DB, proID string) ([]dto.RequestResponse, error) {
	requests, err := s.requestRepo.FindByInvitedPro(db, proID)
	if err != nil {
		return nil, err
	}

	var out []dto.RequestResponse
	for i := range requests {
		r := &requests[i]
		if containsID(decodeIDs(r.AcceptedProIDs), proID) {
			continue
		}
		if containsID(decodeIDs(r.RejectedProIDs), proID) {
			continue
		}
		if r.Status != models.JobStatusPending && r.Status != models.JobStatusAccepted {
			continue
		}
		out = append(out, *s.buildRequestResponse(r))
	}
	return out, nil
}

func (s *requestService) AcceptRequest(db *gorm.DB, requestID, proID string) (*dto.RequestResponse, error) {
	request, err := s.mutateWithRetry(db, requestID, func(r *models.JobRequest) error {
		if !containsID(decodeIDs(r.SelectedProIDs), proID) {
			return apperrors.ErrNotInvited
		}
		if containsID(decodeIDs(r.RejectedProIDs), proID) {
			return apperrors.ErrAlreadyRejected
		}
		if r.Status != models.JobStatusPending && r.Status != models.JobStatusAccepted {
			return apperrors.ErrInvalidStatus("lifecycle", "Request is no longer open for responses")
		}

		accepted := decodeIDs(r.AcceptedProIDs)
		if containsID(accepted, proID) {
			return errNoChange
		}

		r.AcceptedProIDs = encodeIDs(append(accepted, proID))
		if r.Status == models.JobStatusPending {
			r.Status = models.JobStatusAccepted
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := s.buildRequestResponse(request)
	s.publish(snapshot)
	return snapshot, nil
}

func (s *requestService) RejectRequest(db *gorm.DB, requestID, proID string) (*dto.RequestResponse, error) {
	request, err := s.mutateWithRetry(db, requestID, func(r *models.JobRequest) error {
		if !containsID(decodeIDs(r.SelectedProIDs), proID) {
			return apperrors.ErrNotInvited
		}
		if r.HiredProID != nil && *r.HiredProID == proID {
			return apperrors.ErrInvalidStatus("lifecycle", "Hired professional cannot reject a confirmed request")
		}

		rejected := decodeIDs(r.RejectedProIDs)
		if containsID(rejected, proID) {
			return errNoChange
		}

		// A professional appears in at most one of the two sets: rejecting
		// after an accept withdraws the acceptance. Status is never
		// downgraded.
		r.AcceptedProIDs = encodeIDs(removeID(decodeIDs(r.AcceptedProIDs), proID))
		r.RejectedProIDs = encodeIDs(append(rejected, proID))
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := s.buildRequestResponse(request)
	s.publish(snapshot)
	return snapshot, nil
}

func (s *requestService) HireProfessional(db *gorm.DB, requestID, clientID, proID string) (*dto.RequestResponse, error) {
	request, err := s.mutateWithRetry(db, requestID, func(r *models.JobRequest) error {
		if r.ClientID != clientID {
			return apperrors.ErrInsufficientPermissions
		}
		if r.Status != models.JobStatusAccepted {
			return apperrors.ErrInvalidStatus("lifecycle", "Request must have at least one acceptance before hiring")
		}
		if !containsID(decodeIDs(r.AcceptedProIDs), proID) {
			return apperrors.ErrProNotAccepted
		}

		// Broadcast cancellation: every other invitee ends up rejected,
		// including those who never responded.
		rejected := decodeIDs(r.RejectedProIDs)
		for _, id := range decodeIDs(r.SelectedProIDs) {
			if id != proID && !containsID(rejected, id) {
				rejected = append(rejected, id)
			}
		}

		hired := proID
		r.HiredProID = &hired
		r.RejectedProIDs = encodeIDs(rejected)
		r.Status = models.JobStatusConfirmed
		return nil
	})
	if err != nil {
		return nil, err
	}

	go s.notifyHireOutcome(db, request)

	snapshot := s.buildRequestResponse(request)
	s.publish(snapshot)
	return snapshot, nil
}

func (s *requestService) MarkServiceReceived(db *gorm.DB, requestID, clientID string) (*dto.RequestResponse, error) {
	request, err := s.mutateWithRetry(db, requestID, func(r *models.JobRequest) error {
		if r.ClientID != clientID {
			return apperrors.ErrInsufficientPermissions
		}
		if r.Status != models.JobStatusConfirmed {
			return apperrors.ErrInvalidStatus("lifecycle", "Only a confirmed request can be marked as received")
		}
		if r.ServiceReceived {
			return errNoChange
		}
		r.ServiceReceived = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	snapshot := s.buildRequestResponse(request)
	s.publish(snapshot)
	return snapshot, nil
}

func (s *requestService) FileReview(db *gorm.DB, requestID, clientID string, req *dto.CreateReviewRequest) (*dto.ReviewResponse, error) {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		return nil, s.mapRepoError(err)
	}

	if request.ClientID != clientID {
		return nil, apperrors.ErrInsufficientPermissions
	}
	if request.Status != models.JobStatusConfirmed || request.HiredProID == nil {
		return nil, apperrors.ErrInvalidStatus("lifecycle", "Reviews can only be filed on a confirmed request")
	}
	if !request.ServiceReceived {
		return nil, apperrors.ErrServiceNotReceived
	}
	if request.HasFeedback {
		return nil, apperrors.ErrFeedbackAlreadyFiled
	}

	client, err := s.clientRepo.FindByID(db, clientID)
	if err != nil {
		return nil, err
	}

	requestID = request.ID
	review := &models.Review{
		ProfessionalID: *request.HiredProID,
		ClientID:       client.ID,
		ClientName:     client.Name,
		RequestID:      &requestID,
		JobDescription: request.Description,
		Rating:         req.Rating,
		Comment:        req.Comment,
		IsConfirmed:    false,
	}

	if err := s.reviewRepo.Create(db, review); err != nil {
		if errors.Is(err, repositories.ErrReviewAlreadyExists) {
			return nil, apperrors.ErrFeedbackAlreadyFiled
		}
		return nil, err
	}

	request, err = s.mutateWithRetry(db, request.ID, func(r *models.JobRequest) error {
		if r.HasFeedback {
			return errNoChange
		}
		r.Status = models.JobStatusCompleted
		r.HasFeedback = true
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.publish(s.buildRequestResponse(request))
	return buildReviewResponse(review), nil
}

func (s *requestService) DeleteRequest(db *gorm.DB, requestID, clientID string) error {
	request, err := s.requestRepo.FindByID(db, requestID)
	if err != nil {
		return s.mapRepoError(err)
	}

	if request.ClientID != clientID {
		return apperrors.ErrInsufficientPermissions
	}
	if request.ServiceReceived || request.Status == models.JobStatusCompleted {
		return apperrors.ErrRequestNotDeletable
	}

	return s.requestRepo.Delete(db, requestID)
}

// Helpers

// mutateWithRetry implements the read-modify-CAS loop closing the
// lost-update window between racing sessions. The mutation runs against a
// fresh snapshot on every attempt so guards and writes always agree.
func (s *requestService) mutateWithRetry(db *gorm.DB, requestID string, mutate func(*models.JobRequest) error) (*models.JobRequest, error) {
	for attempt := 0; attempt < lifecycleRetries; attempt++ {
		request, err := s.requestRepo.FindByID(db, requestID)
		if err != nil {
			return nil, s.mapRepoError(err)
		}

		if err := mutate(request); err != nil {
			if errors.Is(err, errNoChange) {
				return request, nil
			}
			return nil, err
		}

		err = s.requestRepo.UpdateWithVersion(db, request)
		if err == nil {
			return request, nil
		}
		if !errors.Is(err, repositories.ErrVersionConflict) {
			return nil, err
		}
	}
	return nil, apperrors.ErrVersionConflict
}

func (s *requestService) mapRepoError(err error) error {
	if errors.Is(err, repositories.ErrRequestNotFound) {
		return apperrors.ErrNotFound(err)
	}
	return err
}

func (s *requestService) publish(snapshot *dto.RequestResponse) {
	if s.publisher != nil {
		s.publisher.PublishRequest(snapshot)
	}
}

func (s *requestService) notifyInvited(db *gorm.DB, request *models.JobRequest) {
	for _, proID := range decodeIDs(request.SelectedProIDs) {
		pro, err := s.proRepo.FindByID(db, proID)
		if err != nil || pro.Email == "" {
			continue
		}
		if err := s.mailer.Send(email.InvitationEmail(pro.Email, request.City, request.Description)); err != nil {
			logger.Warn("invitation email failed", "pro_id", proID, "error", err)
		}
	}
}

func (s *requestService) notifyHireOutcome(db *gorm.DB, request *models.JobRequest) {
	if request.HiredProID == nil {
		return
	}
	for _, proID := range decodeIDs(request.SelectedProIDs) {
		pro, err := s.proRepo.FindByID(db, proID)
		if err != nil || pro.Email == "" {
			continue
		}

		var msg *email.Email
		if proID == *request.HiredProID {
			msg = email.HiredEmail(pro.Email, request.ClientName, request.Description)
		} else {
			msg = email.NotSelectedEmail(pro.Email, request.Description)
		}
		if err := s.mailer.Send(msg); err != nil {
			logger.Warn("hire outcome email failed", "pro_id", proID, "error", err)
		}
	}
}

func (s *requestService) buildRequestResponse(r *models.JobRequest) *dto.RequestResponse {
	return &dto.RequestResponse{
		ID:              r.ID,
		ClientID:        r.ClientID,
		ClientName:      r.ClientName,
		ClientAvatar:    r.ClientAvatar,
		ClientRanking:   r.ClientRanking,
		Description:     r.Description,
		Category:        r.Category,
		City:            r.City,
		BudgetMin:       r.BudgetMin,
		BudgetMax:       r.BudgetMax,
		SelectedProIDs:  decodeIDs(r.SelectedProIDs),
		AcceptedProIDs:  decodeIDs(r.AcceptedProIDs),
		RejectedProIDs:  decodeIDs(r.RejectedProIDs),
		HiredProID:      r.HiredProID,
		Status:          r.Status,
		ServiceReceived: r.ServiceReceived,
		HasFeedback:     r.HasFeedback,
		Clarifications:  decodeClarifications(r.Clarifications),
		CreatedAt:       r.CreatedAt,
	}
}

// jsonb set helpers

func decodeIDs(raw datatypes.JSON) []string {
	if len(raw) == 0 {
		return nil
	}
	var ids []string
	_ = json.Unmarshal(raw, &ids)
	return ids
}

func encodeIDs(ids []string) datatypes.JSON {
	if ids == nil {
		ids = []string{}
	}
	data, _ := json.Marshal(ids)
	return datatypes.JSON(data)
}

func containsID(ids []string, id string) bool {
	for _, candidate := range ids {
		if candidate == id {
			return true
		}
	}
	return false
}

func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, candidate := range ids {
		if candidate != id {
			out = append(out, candidate)
		}
	}
	return out
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	var out []string
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

func encodeClarifications(pairs []dto.ClarificationPair) datatypes.JSON {
	if pairs == nil {
		pairs = []dto.ClarificationPair{}
	}
	data, _ := json.Marshal(pairs)
	return datatypes.JSON(data)
}

func decodeClarifications(raw datatypes.JSON) []dto.ClarificationPair {
	if len(raw) == 0 {
		return nil
	}
	var pairs []dto.ClarificationPair
	_ = json.Unmarshal(raw, &pairs)
	return pairs
}
