package suggest

import "context"

// Provider is the external suggestion service. All operations are
// best-effort: callers own the fallback policy and must never propagate a
// provider failure into user-facing flows.
type Provider interface {
	// Clarify returns up to three follow-up questions and a budget estimate
	// for a free-text job description.
	Clarify(ctx context.Context, description string) (*JobAnalysis, error)

	// RefineBudget re-estimates the budget given answered clarifications.
	RefineBudget(ctx context.Context, description string, answers []AnsweredQuestion) (*BudgetRange, error)

	// RankCandidates scores roster candidates 0-100 against a request.
	RankCandidates(ctx context.Context, summary RequestSummary, roster []Candidate) ([]RankedCandidate, error)

	// SuggestLocations autocompletes a partial place name.
	SuggestLocations(ctx context.Context, partial string) ([]string, error)

	// OptimizeProfile rewrites a professional's bio and summary.
	OptimizeProfile(ctx context.Context, draft ProfileDraft) (*OptimizedProfile, error)
}
