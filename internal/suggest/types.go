package suggest

// ClarificationQuestion is one optional follow-up the provider wants answered
// before estimating a job.
type ClarificationQuestion struct {
	ID          string `json:"id"`
	Question    string `json:"question"`
	Placeholder string `json:"placeholder"`
}

type BudgetRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// JobAnalysis is the clarify() result: up to three questions plus a first
// budget estimate.
type JobAnalysis struct {
	Questions       []ClarificationQuestion `json:"questions"`
	SuggestedBudget BudgetRange             `json:"suggestedBudget"`
}

type AnsweredQuestion struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// RequestSummary is the request stub handed to rankCandidates.
type RequestSummary struct {
	Description string      `json:"description"`
	City        string      `json:"city"`
	Budget      BudgetRange `json:"budget"`
}

// Candidate is one roster entry offered for ranking.
type Candidate struct {
	ID              string  `json:"id"`
	Name            string  `json:"name"`
	Category        string  `json:"category"`
	Address         string  `json:"address"`
	WorkingRadiusKm float64 `json:"workingRadiusKm"`
	HourlyRateMin   float64 `json:"hourlyRateMin"`
	HourlyRateMax   float64 `json:"hourlyRateMax"`
	Ranking         float64 `json:"ranking"`
}

// RankedCandidate carries a 0-100 match score.
type RankedCandidate struct {
	CandidateID string `json:"candidateId"`
	Score       int    `json:"score"`
}

// ProfileDraft is the partial professional profile handed to optimizeProfile.
type ProfileDraft struct {
	Name            string   `json:"name"`
	Category        string   `json:"category"`
	Address         string   `json:"address"`
	ExperienceYears int      `json:"experienceYears"`
	Certifications  []string `json:"certifications"`
	Bio             string   `json:"bio"`
}

// OptimizedProfile is the rewritten bio and technical summary.
type OptimizedProfile struct {
	Bio       string `json:"bio"`
	CVSummary string `json:"cvSummary"`
}
