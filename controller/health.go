package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/haneulab/thumbsmith-api/utils"
)

// HealthCheck reports liveness plus reachability of the metadata store and,
// when configured, the object storage backend.
func (ctrl *Controller) HealthCheck(c *gin.Context) {
	ctx := c.Request.Context()

	status := gin.H{
		"status":  "ok",
		"service": ctrl.Config.EnvConfig.Grafana.ServiceName,
	}

	sqlDB, err := ctrl.Infra.Postgres.DB.DB()
	if err != nil || sqlDB.PingContext(ctx) != nil {
		status["status"] = "degraded"
		status["database"] = "unreachable"
	} else {
		status["database"] = "ok"
	}

	if ctrl.Infra.Minio == nil {
		status["storage"] = "not configured"
	} else if err := ctrl.Infra.Minio.Ping(ctx); err != nil {
		status["status"] = "degraded"
		status["storage"] = "unreachable"
	} else {
		status["storage"] = "ok"
	}

	utils.JSON200(c, status)
}
