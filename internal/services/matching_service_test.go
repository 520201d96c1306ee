package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"procasa_backend/internal/models"
	"procasa_backend/internal/services/dto"
	"procasa_backend/internal/suggest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedRoster(t *testing.T, pros *fakeProRepo, n int) []string {
	t.Helper()
	ids := make([]string, 0, n)
	for i := 0; i < n; i++ {
		pro := &models.Professional{Name: "Pro", Category: models.CategoryMason, Ranking: models.DefaultRanking}
		require.NoError(t, pros.Create(nil, pro))
		ids = append(ids, pro.ID)
	}
	return ids
}

func TestClarifyFallsBackOnProviderError(t *testing.T) {
	provider := &suggest.MockProvider{
		ClarifyFn: func(context.Context, string) (*suggest.JobAnalysis, error) {
			return nil, errors.New("provider down")
		},
	}
	svc := NewMatchingService(provider, newFakeProRepo(), 3, time.Millisecond)

	resp := svc.Clarify(context.Background(), "Tinteggiare il soggiorno")
	assert.Empty(t, resp.Questions)
	assert.Equal(t, fallbackBudget, resp.SuggestedBudget)
}

func TestClarifyPassesThroughAnalysis(t *testing.T) {
	provider := &suggest.MockProvider{
		ClarifyFn: func(context.Context, string) (*suggest.JobAnalysis, error) {
			return &suggest.JobAnalysis{
				Questions: []suggest.ClarificationQuestion{
					{ID: "q1", Question: "Quanti metri quadri?"},
				},
				SuggestedBudget: suggest.BudgetRange{Min: 120, Max: 400},
			}, nil
		},
	}
	svc := NewMatchingService(provider, newFakeProRepo(), 3, time.Millisecond)

	resp := svc.Clarify(context.Background(), "Tinteggiare il soggiorno")
	require.Len(t, resp.Questions, 1)
	assert.Equal(t, suggest.BudgetRange{Min: 120, Max: 400}, resp.SuggestedBudget)
}

func TestRankCandidatesFallsBackToRosterOrder(t *testing.T) {
	pros := newFakeProRepo()
	ids := seedRoster(t, pros, 5)

	provider := &suggest.MockProvider{
		RankCandidatesFn: func(context.Context, suggest.RequestSummary, []suggest.Candidate) ([]suggest.RankedCandidate, error) {
			return nil, errors.New("timeout")
		},
	}
	svc := NewMatchingService(provider, pros, 3, time.Millisecond)

	resp, err := svc.RankCandidates(context.Background(), nil, &dto.RankRequest{Description: "Rifare il bagno"})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 3, "fallback takes the first N of the roster")
	for i, match := range resp.Matches {
		assert.Equal(t, ids[i], match.ProID)
		assert.Equal(t, fallbackScore, match.Score)
		assert.True(t, match.Fallback)
	}
}

func TestRankCandidatesDropsUnknownAndClampsScores(t *testing.T) {
	pros := newFakeProRepo()
	ids := seedRoster(t, pros, 2)

	provider := &suggest.MockProvider{
		RankCandidatesFn: func(context.Context, suggest.RequestSummary, []suggest.Candidate) ([]suggest.RankedCandidate, error) {
			return []suggest.RankedCandidate{
				{CandidateID: ids[0], Score: 130},
				{CandidateID: "invented-by-the-model", Score: 90},
				{CandidateID: ids[1], Score: -5},
			}, nil
		},
	}
	svc := NewMatchingService(provider, pros, 3, time.Millisecond)

	resp, err := svc.RankCandidates(context.Background(), nil, &dto.RankRequest{Description: "Rifare il bagno"})
	require.NoError(t, err)
	require.Len(t, resp.Matches, 2)
	assert.Equal(t, dto.RankedMatch{ProID: ids[0], Score: 100}, resp.Matches[0])
	assert.Equal(t, dto.RankedMatch{ProID: ids[1], Score: 0}, resp.Matches[1])
}

func TestRankCandidatesEmptyRoster(t *testing.T) {
	svc := NewMatchingService(&suggest.MockProvider{}, newFakeProRepo(), 3, time.Millisecond)

	resp, err := svc.RankCandidates(context.Background(), nil, &dto.RankRequest{Description: "Potatura siepe"})
	require.NoError(t, err)
	assert.Empty(t, resp.Matches)
}

// Rapid successive refinements for the same session must collapse: only the
// last call reaches the provider, earlier ones come back superseded.
func TestRefineBudgetDebounce(t *testing.T) {
	var mu sync.Mutex
	var calls []string

	provider := &suggest.MockProvider{
		RefineBudgetFn: func(_ context.Context, description string, _ []suggest.AnsweredQuestion) (*suggest.BudgetRange, error) {
			mu.Lock()
			calls = append(calls, description)
			mu.Unlock()
			return &suggest.BudgetRange{Min: 100, Max: 300}, nil
		},
	}
	svc := NewMatchingService(provider, newFakeProRepo(), 3, 50*time.Millisecond)

	var wg sync.WaitGroup
	results := make([]*dto.RefineBudgetResponse, 3)
	for i, desc := range []string{"bozza uno", "bozza due", "bozza tre"} {
		wg.Add(1)
		go func(i int, desc string) {
			defer wg.Done()
			results[i] = svc.RefineBudget(context.Background(), "session-1", &dto.RefineBudgetRequest{Description: desc})
		}(i, desc)
		time.Sleep(10 * time.Millisecond)
	}
	wg.Wait()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, calls, 1, "only the last refinement reaches the provider")
	assert.Equal(t, "bozza tre", calls[0])

	superseded := 0
	for _, r := range results {
		if r.Superseded {
			superseded++
			assert.Nil(t, r.Budget)
		} else {
			require.NotNil(t, r.Budget)
			assert.Equal(t, suggest.BudgetRange{Min: 100, Max: 300}, *r.Budget)
		}
	}
	assert.Equal(t, 2, superseded)
}

func TestRefineBudgetIndependentSessions(t *testing.T) {
	svc := NewMatchingService(&suggest.MockProvider{}, newFakeProRepo(), 3, 10*time.Millisecond)

	var wg sync.WaitGroup
	results := make([]*dto.RefineBudgetResponse, 2)
	for i, session := range []string{"session-a", "session-b"} {
		wg.Add(1)
		go func(i int, session string) {
			defer wg.Done()
			results[i] = svc.RefineBudget(context.Background(), session, &dto.RefineBudgetRequest{Description: "lavoro"})
		}(i, session)
	}
	wg.Wait()

	for _, r := range results {
		assert.False(t, r.Superseded, "different sessions never debounce each other")
		require.NotNil(t, r.Budget)
	}
}

func TestRefineBudgetProviderFailureFallsBack(t *testing.T) {
	provider := &suggest.MockProvider{
		RefineBudgetFn: func(context.Context, string, []suggest.AnsweredQuestion) (*suggest.BudgetRange, error) {
			return nil, errors.New("provider down")
		},
	}
	svc := NewMatchingService(provider, newFakeProRepo(), 3, time.Millisecond)

	resp := svc.RefineBudget(context.Background(), "session-1", &dto.RefineBudgetRequest{Description: "lavoro"})
	assert.False(t, resp.Superseded)
	require.NotNil(t, resp.Budget)
	assert.Equal(t, fallbackBudget, *resp.Budget)
}

func TestSuggestLocations(t *testing.T) {
	provider := &suggest.MockProvider{
		SuggestLocationsFn: func(_ context.Context, partial string) ([]string, error) {
			return []string{"Milano", "Milano Marittima"}, nil
		},
	}
	svc := NewMatchingService(provider, newFakeProRepo(), 3, time.Millisecond)

	locations := svc.SuggestLocations(context.Background(), "Mil")
	assert.Equal(t, []string{"Milano", "Milano Marittima"}, locations)

	// Failure degrades to an empty list, never an error.
	provider.SuggestLocationsFn = func(context.Context, string) ([]string, error) {
		return nil, errors.New("provider down")
	}
	assert.Empty(t, svc.SuggestLocations(context.Background(), "Mil"))
}
