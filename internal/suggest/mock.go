package suggest

import "context"

// MockProvider returns canned answers. Used in tests and in deployments
// without an API key.
type MockProvider struct {
	ClarifyFn          func(ctx context.Context, description string) (*JobAnalysis, error)
	RefineBudgetFn     func(ctx context.Context, description string, answers []AnsweredQuestion) (*BudgetRange, error)
	RankCandidatesFn   func(ctx context.Context, summary RequestSummary, roster []Candidate) ([]RankedCandidate, error)
	SuggestLocationsFn func(ctx context.Context, partial string) ([]string, error)
	OptimizeProfileFn  func(ctx context.Context, draft ProfileDraft) (*OptimizedProfile, error)
}

func (m *MockProvider) Clarify(ctx context.Context, description string) (*JobAnalysis, error) {
	if m.ClarifyFn != nil {
		return m.ClarifyFn(ctx, description)
	}
	return &JobAnalysis{SuggestedBudget: BudgetRange{Min: 50, Max: 200}}, nil
}

func (m *MockProvider) RefineBudget(ctx context.Context, description string, answers []AnsweredQuestion) (*BudgetRange, error) {
	if m.RefineBudgetFn != nil {
		return m.RefineBudgetFn(ctx, description, answers)
	}
	return &BudgetRange{Min: 50, Max: 200}, nil
}

func (m *MockProvider) RankCandidates(ctx context.Context, summary RequestSummary, roster []Candidate) ([]RankedCandidate, error) {
	if m.RankCandidatesFn != nil {
		return m.RankCandidatesFn(ctx, summary, roster)
	}
	return nil, nil
}

func (m *MockProvider) SuggestLocations(ctx context.Context, partial string) ([]string, error) {
	if m.SuggestLocationsFn != nil {
		return m.SuggestLocationsFn(ctx, partial)
	}
	return nil, nil
}

func (m *MockProvider) OptimizeProfile(ctx context.Context, draft ProfileDraft) (*OptimizedProfile, error) {
	if m.OptimizeProfileFn != nil {
		return m.OptimizeProfileFn(ctx, draft)
	}
	return &OptimizedProfile{Bio: draft.Bio}, nil
}
