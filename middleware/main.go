package middlewares

import (
	"github.com/gin-gonic/gin"
	"github.com/haneulab/thumbsmith-api/controller"
)

type Middlewares struct {
	CORSMiddleware     gin.HandlerFunc
	AuthMiddleware     gin.HandlerFunc
	RecoveryMiddleware gin.HandlerFunc
}

func NewMiddlewares(ctrl *controller.Controller) (*Middlewares, error) {
	cors := CORSMiddleware(ctrl.Config.EnvConfig)
	auth := AuthMiddleware()
	recovery := RecoveryMiddleware(ctrl.Infra.Logger)

	return &Middlewares{
		CORSMiddleware:     cors,
		AuthMiddleware:     auth,
		RecoveryMiddleware: recovery,
	}, nil
}
