package controller

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/haneulab/thumbsmith-api/config"
	"github.com/haneulab/thumbsmith-api/infra"
	"github.com/haneulab/thumbsmith-api/infra/produce"
	"github.com/haneulab/thumbsmith-api/provider"
	providerdto "github.com/haneulab/thumbsmith-api/provider/dto"
	"github.com/haneulab/thumbsmith-api/repository"
	"github.com/haneulab/thumbsmith-api/utils"
)

const identityCacheTTL = 60 * time.Second

type Controller struct {
	Config     *config.Config
	Infra      *infra.Infra
	Provider   *provider.Provider
	Repository *repository.Repository
	Produce    *produce.Produce
}

func NewController(config *config.Config, infra *infra.Infra, prov *provider.Provider, repo *repository.Repository, produce *produce.Produce) *Controller {
	if repo == nil {
		panic("Failed to initialize Repository")
	}
	return &Controller{
		Config:     config,
		Infra:      infra,
		Provider:   prov,
		Repository: repo,
		Produce:    produce,
	}
}

// verifyCaller exchanges a bearer credential for a verified identity. Remote
// verification through the authorization service wins when configured, with a
// short Redis cache keyed by the token digest; otherwise the token is parsed
// locally as an HMAC-signed JWT. Both paths fail closed.
func (ctrl *Controller) verifyCaller(ctx context.Context, token string) (*providerdto.VerifyTokenResponse, error) {
	if ctrl.Provider.AuthorizationService != nil {
		cacheKey := "auth:token:" + utils.HashTokenSHA256(token)

		if ctrl.Infra.Redis != nil {
			var cached providerdto.VerifyTokenResponse
			if err := ctrl.Infra.Redis.Get(ctx, cacheKey, &cached); err == nil {
				return &cached, nil
			}
		}

		identity, err := ctrl.Provider.AuthorizationService.VerifyToken(ctx, token)
		if err != nil {
			return nil, err
		}

		if ctrl.Infra.Redis != nil {
			if err := ctrl.Infra.Redis.Set(ctx, cacheKey, identity, identityCacheTTL); err != nil {
				ctrl.Infra.Logger.WarningWithContextf(ctx, "[Auth] Failed to cache verified identity: %v", err)
			}
		}

		return identity, nil
	}

	if ctrl.Config.EnvConfig.JWT.SecretKey != "" {
		parsedToken, err := utils.ParseToken(token, ctrl.Config.EnvConfig)
		if err != nil || !parsedToken.Valid {
			return nil, errors.New("invalid token")
		}
		claims, ok := parsedToken.Claims.(jwt.MapClaims)
		if !ok {
			return nil, errors.New("invalid token claims")
		}
		userID, err := utils.UserIDFromClaims(claims)
		if err != nil {
			return nil, err
		}
		return &providerdto.VerifyTokenResponse{UserID: userID}, nil
	}

	return nil, errors.New("no identity verifier configured")
}
