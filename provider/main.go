package provider

import (
	"github.com/haneulab/thumbsmith-api/config"
)

type Provider struct {
	AuthorizationService *AuthorizationServiceProvider
	Gemini               *GeminiService
}

var providerInstance *Provider

func InitProvider(cfg *config.Config) *Provider {
	if providerInstance != nil {
		return providerInstance
	}

	// Both clients tolerate missing configuration: a nil authorization
	// service switches verification to local JWT mode, a nil Gemini client
	// is reported as a per-request configuration error.
	providerInstance = &Provider{
		AuthorizationService: InitAuthorizationService(cfg.EnvConfig),
		Gemini:               InitGeminiService(cfg.EnvConfig),
	}

	return providerInstance
}
