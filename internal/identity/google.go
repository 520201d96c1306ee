package identity

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const tokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleProvider validates a Google ID token against the tokeninfo endpoint
// and maps it to an Identity.
type GoogleProvider struct {
	clientID string
	client   *http.Client
}

func NewGoogleProvider(clientID string) *GoogleProvider {
	return &GoogleProvider{
		clientID: clientID,
		client:   &http.Client{Timeout: 10 * time.Second},
	}
}

func (p *GoogleProvider) Resolve(ctx context.Context, assertion string) (*Identity, error) {
	endpoint := tokenInfoURL + "?id_token=" + url.QueryEscape(assertion)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("identity: build tokeninfo request: %w", err)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity: tokeninfo call: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, ErrUnauthorizedOrigin
	}

	var info struct {
		Sub     string `json:"sub"`
		Aud     string `json:"aud"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		Picture string `json:"picture"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("identity: decode tokeninfo response: %w", err)
	}

	if p.clientID != "" && info.Aud != p.clientID {
		return nil, ErrUnauthorizedOrigin
	}
	if info.Sub == "" {
		return nil, ErrUnauthorizedOrigin
	}

	return &Identity{
		ID:     info.Sub,
		Name:   info.Name,
		Email:  info.Email,
		Avatar: info.Picture,
	}, nil
}
