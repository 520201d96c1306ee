package suggest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// HTTPProvider talks to the hosted suggestion API over JSON. Every call gets
// its own deadline; a slow provider must never hold up the user flow.
type HTTPProvider struct {
	baseURL string
	apiKey  string
	timeout time.Duration
	client  *http.Client
}

type HTTPConfig struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

func NewHTTPProvider(cfg HTTPConfig) *HTTPProvider {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 8 * time.Second
	}
	return &HTTPProvider{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		timeout: timeout,
		client:  &http.Client{Timeout: timeout},
	}
}

func (p *HTTPProvider) Clarify(ctx context.Context, description string) (*JobAnalysis, error) {
	payload := map[string]any{"description": description}

	var result JobAnalysis
	if err := p.post(ctx, "/v1/clarify", payload, &result); err != nil {
		return nil, err
	}
	if len(result.Questions) > 3 {
		result.Questions = result.Questions[:3]
	}
	return &result, nil
}

func (p *HTTPProvider) RefineBudget(ctx context.Context, description string, answers []AnsweredQuestion) (*BudgetRange, error) {
	payload := map[string]any{
		"description": description,
		"answers":     answers,
	}

	var result BudgetRange
	if err := p.post(ctx, "/v1/budget", payload, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *HTTPProvider) RankCandidates(ctx context.Context, summary RequestSummary, roster []Candidate) ([]RankedCandidate, error) {
	payload := map[string]any{
		"request":    summary,
		"candidates": roster,
	}

	var result struct {
		Ranked []RankedCandidate `json:"ranked"`
	}
	if err := p.post(ctx, "/v1/rank", payload, &result); err != nil {
		return nil, err
	}
	return result.Ranked, nil
}

func (p *HTTPProvider) SuggestLocations(ctx context.Context, partial string) ([]string, error) {
	payload := map[string]any{"partial": partial}

	var result struct {
		Locations []string `json:"locations"`
	}
	if err := p.post(ctx, "/v1/locations", payload, &result); err != nil {
		return nil, err
	}
	return result.Locations, nil
}

func (p *HTTPProvider) OptimizeProfile(ctx context.Context, draft ProfileDraft) (*OptimizedProfile, error) {
	var result OptimizedProfile
	if err := p.post(ctx, "/v1/profile", draft, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

func (p *HTTPProvider) post(ctx context.Context, path string, payload, out any) error {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("suggest: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("suggest: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("suggest: call %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return fmt.Errorf("suggest: %s returned %d: %s", path, resp.StatusCode, string(data))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("suggest: decode %s response: %w", path, err)
	}
	return nil
}
