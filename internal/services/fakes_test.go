package services

import (
	"sync"
	"time"

	"procasa_backend/internal/email"
	"procasa_backend/internal/models"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/services/dto"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// In-memory repository fakes. The db handle is ignored; services under test
// receive nil.

type fakeRequestRepo struct {
	mu    sync.Mutex
	store map[string]models.JobRequest
}

func newFakeRequestRepo() *fakeRequestRepo {
	return &fakeRequestRepo{store: make(map[string]models.JobRequest)}
}

func (r *fakeRequestRepo) Create(_ *gorm.DB, req *models.JobRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	if req.CreatedAt.IsZero() {
		req.CreatedAt = time.Now()
	}
	r.store[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) FindByID(_ *gorm.DB, id string) (*models.JobRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.store[id]
	if !ok {
		return nil, repositories.ErrRequestNotFound
	}
	return &req, nil
}

func (r *fakeRequestRepo) FindByClient(_ *gorm.DB, clientID string) ([]models.JobRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobRequest
	for _, req := range r.store {
		if req.ClientID == clientID {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *fakeRequestRepo) FindByInvitedPro(_ *gorm.DB, proID string) ([]models.JobRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.JobRequest
	for _, req := range r.store {
		if containsID(decodeIDs(req.SelectedProIDs), proID) {
			out = append(out, req)
		}
	}
	return out, nil
}

// UpdateWithVersion mirrors the Postgres CAS: the write lands only if the
// stored version still matches the one the caller read.
func (r *fakeRequestRepo) UpdateWithVersion(_ *gorm.DB, req *models.JobRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	current, ok := r.store[req.ID]
	if !ok {
		return repositories.ErrRequestNotFound
	}
	if current.Version != req.Version {
		return repositories.ErrVersionConflict
	}
	req.Version++
	r.store[req.ID] = *req
	return nil
}

func (r *fakeRequestRepo) Delete(_ *gorm.DB, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[id]; !ok {
		return repositories.ErrRequestNotFound
	}
	delete(r.store, id)
	return nil
}

type fakeProRepo struct {
	mu    sync.Mutex
	store map[string]models.Professional
	order []string
}

func newFakeProRepo() *fakeProRepo {
	return &fakeProRepo{store: make(map[string]models.Professional)}
}

func (r *fakeProRepo) Create(_ *gorm.DB, pro *models.Professional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if pro.ID == "" {
		pro.ID = uuid.NewString()
	}
	r.store[pro.ID] = *pro
	r.order = append(r.order, pro.ID)
	return nil
}

func (r *fakeProRepo) FindByID(_ *gorm.DB, id string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	pro, ok := r.store[id]
	if !ok {
		return nil, repositories.ErrProfessionalNotFound
	}
	return &pro, nil
}

func (r *fakeProRepo) FindByEmail(_ *gorm.DB, email string) (*models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, pro := range r.store {
		if pro.Email == email {
			p := pro
			return &p, nil
		}
	}
	return nil, repositories.ErrProfessionalNotFound
}

func (r *fakeProRepo) FindAll(_ *gorm.DB) ([]models.Professional, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]models.Professional, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.store[id])
	}
	return out, nil
}

func (r *fakeProRepo) Update(_ *gorm.DB, pro *models.Professional) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[pro.ID]; !ok {
		return repositories.ErrProfessionalNotFound
	}
	r.store[pro.ID] = *pro
	return nil
}

func (r *fakeProRepo) UpdateRanking(_ *gorm.DB, id string, ranking float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	pro, ok := r.store[id]
	if !ok {
		return repositories.ErrProfessionalNotFound
	}
	pro.Ranking = ranking
	r.store[id] = pro
	return nil
}

type fakeClientRepo struct {
	mu    sync.Mutex
	store map[string]models.Client
}

func newFakeClientRepo() *fakeClientRepo {
	return &fakeClientRepo{store: make(map[string]models.Client)}
}

func (r *fakeClientRepo) Create(_ *gorm.DB, client *models.Client) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if client.ID == "" {
		client.ID = uuid.NewString()
	}
	r.store[client.ID] = *client
	return nil
}

func (r *fakeClientRepo) FindByID(_ *gorm.DB, id string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.store[id]
	if !ok {
		return nil, repositories.ErrClientNotFound
	}
	return &client, nil
}

func (r *fakeClientRepo) FindByEmail(_ *gorm.DB, email string) (*models.Client, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, client := range r.store {
		if client.Email == email {
			c := client
			return &c, nil
		}
	}
	return nil, repositories.ErrClientNotFound
}

func (r *fakeClientRepo) UpdateRanking(_ *gorm.DB, id string, ranking float64, reviewCount int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	client, ok := r.store[id]
	if !ok {
		return repositories.ErrClientNotFound
	}
	client.Ranking = ranking
	client.ReviewCount = reviewCount
	r.store[id] = client
	return nil
}

type fakeReviewRepo struct {
	mu    sync.Mutex
	store map[string]models.Review
}

func newFakeReviewRepo() *fakeReviewRepo {
	return &fakeReviewRepo{store: make(map[string]models.Review)}
}

func (r *fakeReviewRepo) Create(_ *gorm.DB, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if review.RequestID != nil {
		for _, existing := range r.store {
			if existing.RequestID != nil && *existing.RequestID == *review.RequestID && existing.ClientID == review.ClientID {
				return repositories.ErrReviewAlreadyExists
			}
		}
	}
	if review.ID == "" {
		review.ID = uuid.NewString()
	}
	r.store[review.ID] = *review
	return nil
}

func (r *fakeReviewRepo) FindByID(_ *gorm.DB, id string) (*models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	review, ok := r.store[id]
	if !ok {
		return nil, repositories.ErrReviewNotFound
	}
	return &review, nil
}

func (r *fakeReviewRepo) FindByProfessional(_ *gorm.DB, proID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, review := range r.store {
		if review.ProfessionalID == proID {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) FindConfirmedByProfessional(_ *gorm.DB, proID string) ([]models.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Review
	for _, review := range r.store {
		if review.ProfessionalID == proID && review.IsConfirmed {
			out = append(out, review)
		}
	}
	return out, nil
}

func (r *fakeReviewRepo) Update(_ *gorm.DB, review *models.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[review.ID]; !ok {
		return repositories.ErrReviewNotFound
	}
	r.store[review.ID] = *review
	return nil
}

type fakeSubscriptionRepo struct {
	mu    sync.Mutex
	store map[string]models.Subscription // keyed by professional id
}

func newFakeSubscriptionRepo() *fakeSubscriptionRepo {
	return &fakeSubscriptionRepo{store: make(map[string]models.Subscription)}
}

func (r *fakeSubscriptionRepo) Create(_ *gorm.DB, sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sub.ID == "" {
		sub.ID = uuid.NewString()
	}
	r.store[sub.ProfessionalID] = *sub
	return nil
}

func (r *fakeSubscriptionRepo) FindByProfessional(_ *gorm.DB, proID string) (*models.Subscription, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	sub, ok := r.store[proID]
	if !ok {
		return nil, repositories.ErrSubscriptionNotFound
	}
	return &sub, nil
}

func (r *fakeSubscriptionRepo) Update(_ *gorm.DB, sub *models.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.store[sub.ProfessionalID]; !ok {
		return repositories.ErrSubscriptionNotFound
	}
	r.store[sub.ProfessionalID] = *sub
	return nil
}

type fakeDemoRepo struct {
	mu    sync.Mutex
	store map[string]models.DemoAccount // keyed by name
}

func newFakeDemoRepo() *fakeDemoRepo {
	return &fakeDemoRepo{store: make(map[string]models.DemoAccount)}
}

func (r *fakeDemoRepo) Create(_ *gorm.DB, account *models.DemoAccount) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	r.store[account.Name] = *account
	return nil
}

func (r *fakeDemoRepo) FindByName(_ *gorm.DB, name string) (*models.DemoAccount, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	account, ok := r.store[name]
	if !ok {
		return nil, repositories.ErrDemoAccountNotFound
	}
	return &account, nil
}

// recordingMailer is a concurrency-safe email.Provider; lifecycle emails are
// sent from goroutines.
type recordingMailer struct {
	mu   sync.Mutex
	sent []*email.Email
}

func (m *recordingMailer) Send(e *email.Email) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sent = append(m.sent, e)
	return nil
}

func (m *recordingMailer) Validate() error { return nil }
func (m *recordingMailer) Close() error    { return nil }

type recordingPublisher struct {
	mu        sync.Mutex
	snapshots []*dto.RequestResponse
}

func (p *recordingPublisher) PublishRequest(snapshot *dto.RequestResponse) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.snapshots = append(p.snapshots, snapshot)
}

func (p *recordingPublisher) count() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.snapshots)
}
