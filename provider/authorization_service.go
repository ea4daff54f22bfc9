package provider

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/haneulab/thumbsmith-api/config"
	"github.com/haneulab/thumbsmith-api/provider/dto"
)

type AuthorizationServiceProvider struct {
	AuthorizationServiceURL string `json:"authorization_service_url"`

	hc *http.Client
}

// InitAuthorizationService returns nil when no identity service URL is
// configured; token verification then falls back to local JWT parsing.
func InitAuthorizationService(config *config.EnvConfig) *AuthorizationServiceProvider {
	url := config.ExternalService.AuthorizationServiceURL
	if url == "" {
		return nil
	}

	return &AuthorizationServiceProvider{
		AuthorizationServiceURL: url,
		hc:                      &http.Client{Timeout: 5 * time.Second},
	}
}

// VerifyToken exchanges a bearer credential for the verified caller identity.
// Any non-200 answer from the identity service fails closed.
func (p *AuthorizationServiceProvider) VerifyToken(ctx context.Context, token string) (*dto.VerifyTokenResponse, error) {
	url := fmt.Sprintf("%s/api/v2/authorization/token/validate", p.AuthorizationServiceURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := p.hc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("invalid token: %s", string(raw))
	}

	var identity dto.VerifyTokenResponse
	if err := json.NewDecoder(resp.Body).Decode(&identity); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	return &identity, nil
}
