package services

import (
	"context"
	"sync"
	"time"

	"procasa_backend/internal/logger"
	"procasa_backend/internal/repositories"
	"procasa_backend/internal/services/dto"
	"procasa_backend/internal/suggest"

	"gorm.io/gorm"
)

// Deterministic fallbacks used whenever the suggestion provider is down or
// slow. The product never surfaces a provider failure to the user.
var fallbackBudget = suggest.BudgetRange{Min: 50, Max: 200}

const fallbackScore = 50

type MatchingService interface {
	// Clarify analyzes a free-text description. Degrades to zero questions
	// and a default budget.
	Clarify(ctx context.Context, description string) *dto.ClarifyResponse

	// RefineBudget debounces per session key: only the latest call within the
	// quiet period reaches the provider, earlier ones come back Superseded.
	RefineBudget(ctx context.Context, sessionKey string, req *dto.RefineBudgetRequest) *dto.RefineBudgetResponse

	// RankCandidates scores the roster against a request, falling back to
	// roster order with a neutral score.
	RankCandidates(ctx context.Context, db *gorm.DB, req *dto.RankRequest) (*dto.RankResponse, error)

	SuggestLocations(ctx context.Context, partial string) []string
}

type matchingService struct {
	provider     suggest.Provider
	proRepo      repositories.ProfessionalRepository
	fallbackSize int

	// RefineBudget debouncing state, keyed by session.
	mu      sync.Mutex
	delay   time.Duration
	gens    map[string]uint64
	pending map[string]context.CancelFunc
	afterFn func(d time.Duration) <-chan time.Time
}

func NewMatchingService(
	provider suggest.Provider,
	proRepo repositories.ProfessionalRepository,
	fallbackSize int,
	debounce time.Duration,
) MatchingService {
	if fallbackSize <= 0 {
		fallbackSize = 3
	}
	return &matchingService{
		provider:     provider,
		proRepo:      proRepo,
		fallbackSize: fallbackSize,
		delay:        debounce,
		gens:         make(map[string]uint64),
		pending:      make(map[string]context.CancelFunc),
		afterFn:      time.After,
	}
}

func (s *matchingService) Clarify(ctx context.Context, description string) *dto.ClarifyResponse {
	analysis, err := s.provider.Clarify(ctx, description)
	if err != nil {
		logger.CtxWarn(ctx, "clarify degraded to fallback", "error", err)
		return &dto.ClarifyResponse{
			Questions:       []suggest.ClarificationQuestion{},
			SuggestedBudget: fallbackBudget,
		}
	}

	questions := analysis.Questions
	if questions == nil {
		questions = []suggest.ClarificationQuestion{}
	}
	return &dto.ClarifyResponse{
		Questions:       questions,
		SuggestedBudget: analysis.SuggestedBudget,
	}
}

func (s *matchingService) RefineBudget(ctx context.Context, sessionKey string, req *dto.RefineBudgetRequest) *dto.RefineBudgetResponse {
	s.mu.Lock()
	s.gens[sessionKey]++
	gen := s.gens[sessionKey]
	if cancel, ok := s.pending[sessionKey]; ok {
		cancel()
	}
	waitCtx, cancel := context.WithCancel(ctx)
	s.pending[sessionKey] = cancel
	s.mu.Unlock()

	select {
	case <-s.afterFn(s.delay):
	case <-waitCtx.Done():
		return &dto.RefineBudgetResponse{Superseded: true}
	}

	s.mu.Lock()
	latest := s.gens[sessionKey] == gen
	if latest {
		delete(s.pending, sessionKey)
		cancel()
	}
	s.mu.Unlock()
	if !latest {
		return &dto.RefineBudgetResponse{Superseded: true}
	}

	budget, err := s.provider.RefineBudget(ctx, req.Description, req.Answers)
	if err != nil || budget == nil {
		logger.CtxWarn(ctx, "budget refinement degraded to fallback", "error", err)
		b := fallbackBudget
		return &dto.RefineBudgetResponse{Budget: &b}
	}
	return &dto.RefineBudgetResponse{Budget: budget}
}

func (s *matchingService) RankCandidates(ctx context.Context, db *gorm.DB, req *dto.RankRequest) (*dto.RankResponse, error) {
	pros, err := s.proRepo.FindAll(db)
	if err != nil {
		return nil, err
	}
	if len(pros) == 0 {
		return &dto.RankResponse{Matches: []dto.RankedMatch{}}, nil
	}

	roster := make([]suggest.Candidate, 0, len(pros))
	known := make(map[string]struct{}, len(pros))
	for _, p := range pros {
		roster = append(roster, suggest.Candidate{
			ID:              p.ID,
			Name:            p.Name,
			Category:        string(p.Category),
			Address:         p.LocationAddress,
			WorkingRadiusKm: p.WorkingRadiusKm,
			HourlyRateMin:   p.HourlyRateMin,
			HourlyRateMax:   p.HourlyRateMax,
			Ranking:         p.Ranking,
		})
		known[p.ID] = struct{}{}
	}

	summary := suggest.RequestSummary{
		Description: req.Description,
		City:        req.City,
		Budget:      suggest.BudgetRange{Min: req.BudgetMin, Max: req.BudgetMax},
	}

	ranked, err := s.provider.RankCandidates(ctx, summary, roster)
	if err != nil || len(ranked) == 0 {
		logger.CtxWarn(ctx, "ranking degraded to roster-order fallback", "error", err)
		return &dto.RankResponse{Matches: s.fallbackMatches(roster)}, nil
	}

	matches := make([]dto.RankedMatch, 0, len(ranked))
	for _, r := range ranked {
		// Drop hallucinated IDs, clamp scores into range.
		if _, ok := known[r.CandidateID]; !ok {
			continue
		}
		score := r.Score
		if score < 0 {
			score = 0
		}
		if score > 100 {
			score = 100
		}
		matches = append(matches, dto.RankedMatch{ProID: r.CandidateID, Score: score})
	}
	if len(matches) == 0 {
		return &dto.RankResponse{Matches: s.fallbackMatches(roster)}, nil
	}
	return &dto.RankResponse{Matches: matches}, nil
}

func (s *matchingService) SuggestLocations(ctx context.Context, partial string) []string {
	locations, err := s.provider.SuggestLocations(ctx, partial)
	if err != nil || locations == nil {
		if err != nil {
			logger.CtxWarn(ctx, "location suggestions unavailable", "error", err)
		}
		return []string{}
	}
	return locations
}

// fallbackMatches takes the first N roster entries in creation order with a
// neutral score.
func (s *matchingService) fallbackMatches(roster []suggest.Candidate) []dto.RankedMatch {
	n := s.fallbackSize
	if n > len(roster) {
		n = len(roster)
	}
	matches := make([]dto.RankedMatch, 0, n)
	for _, c := range roster[:n] {
		matches = append(matches, dto.RankedMatch{ProID: c.ID, Score: fallbackScore, Fallback: true})
	}
	return matches
}
