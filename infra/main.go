package infra

import (
	"context"

	"github.com/haneulab/thumbsmith-api/config"
)

type Infra struct {
	Postgres *PostgresClient
	Redis    *RedisClient
	RabbitMQ *RabbitMQClient
	Minio    *MinioClient
	Logger   *LoggerClient
}

var infraInstance *Infra

func InitInfra(cfg *config.Config) *Infra {
	if infraInstance != nil {
		return infraInstance
	}

	logger := InitLoggerClient(cfg.EnvConfig)
	if logger == nil {
		panic("Failed to initialize Logger service")
	}

	postgres := InitPostgresClient(cfg.EnvConfig)
	if postgres == nil {
		panic("Failed to initialize Postgres service")
	}

	// Redis, RabbitMQ and MinIO are allowed to be absent. Missing storage
	// config surfaces as a per-request 500, missing Redis disables the
	// verification cache, missing RabbitMQ disables event publishing.
	redis := InitRedisClient(cfg.EnvConfig)
	rabbitMQ := InitRabbitMQClient(cfg.EnvConfig)
	minio := InitMinioClient(cfg.EnvConfig)

	infraInstance = &Infra{
		Postgres: postgres,
		Redis:    redis,
		RabbitMQ: rabbitMQ,
		Minio:    minio,
		Logger:   logger,
	}

	return infraInstance
}

func GetClient() *Infra {
	if infraInstance == nil {
		panic("Infra not initialized. Call InitInfra() first.")
	}
	return infraInstance
}

// Close releases the long-lived connections held by the aggregate.
func (i *Infra) Close(ctx context.Context) {
	if i.RabbitMQ != nil {
		i.RabbitMQ.Close()
	}
	if i.Redis != nil {
		_ = i.Redis.Client.Close()
	}
}
