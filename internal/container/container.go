// Package container holds the process-wide infrastructure handles that
// cmd/main builds once and the router reads when wiring modules.
package container

import (
	"context"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"

	"github.com/emprendevoz/emprende-api/config"
	"github.com/emprendevoz/emprende-api/pkg/helpers"
)

// Infra is every backend the API talks to. Optional backends (GCS,
// Elasticsearch, Kafka, RabbitMQ) stay nil when not configured.
type Infra struct {
	Config *config.Config
	Logger *logrus.Logger
	PG     *pgxpool.Pool
	Redis  *redis.Client
	JWT    *helpers.JWTManager

	GCS    *storage.Client
	ES     *elasticsearch.Client
	Kafka  *kafka.Writer
	Rabbit *helpers.RabbitPublisher
}

var current Infra

func Set(i Infra) { current = i }

func Get() Infra {
	i := current
	if i.JWT == nil {
		i.JWT = helpers.DefaultJWT()
	}
	return i
}

// Close releases the optional backends in reverse dependency order. The
// Postgres pool and Redis client are owned by main.
func (i Infra) Close() {
	if i.Rabbit != nil {
		i.Rabbit.Close()
	}
	if i.Kafka != nil {
		if err := i.Kafka.Close(); err != nil && i.Logger != nil {
			i.Logger.WithError(err).Warn("close kafka writer")
		}
	}
	if i.GCS != nil {
		_ = i.GCS.Close()
	}
}

// Optional lists the optional backends that are enabled, for the startup log.
func (i Infra) Optional() map[string]bool {
	return map[string]bool{
		"gcs":           i.GCS != nil,
		"elasticsearch": i.ES != nil,
		"kafka":         i.Kafka != nil,
		"rabbitmq":      i.Rabbit != nil,
	}
}

// Pingers returns liveness checks for the required backends.
func (i Infra) Pingers() map[string]func(context.Context) error {
	checks := map[string]func(context.Context) error{}
	if i.PG != nil {
		pool := i.PG
		checks["postgres"] = pool.Ping
	}
	if i.Redis != nil {
		rdb := i.Redis
		checks["redis"] = func(ctx context.Context) error { return rdb.Ping(ctx).Err() }
	}
	return checks
}
