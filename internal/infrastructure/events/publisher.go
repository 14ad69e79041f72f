// Package events publicadores de eventos de dominio: none, redis y Google Pub/Sub.
package events

import (
	"context"
	"fmt"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/redis"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// Nop descarta los eventos.
type Nop struct{}

func (Nop) Publish(context.Context, ports.Event) error { return nil }
func (Nop) Close() error                               { return nil }

// New elige el publicador según EVENTS_PROVIDER. redisClient se reutiliza si ya existe
// (lo comparte el store de sesiones); si es nil y el proveedor es redis se abre uno propio.
func New(ctx context.Context, cfg *config.Config, redisClient *goredis.Client, log *logger.Logger) (ports.EventPublisher, error) {
	switch cfg.Events.Provider {
	case "", "none":
		return Nop{}, nil
	case "redis":
		if redisClient != nil {
			return redis.NewPublisher(redisClient, cfg.Events.Channel, false), nil
		}
		c, err := redis.NewClient(ctx, cfg.Redis)
		if err != nil {
			return nil, err
		}
		return redis.NewPublisher(c, cfg.Events.Channel, true), nil
	case "google":
		return NewGooglePublisher(ctx, cfg.Events.ProjectID, cfg.Events.TopicID, log)
	default:
		return nil, fmt.Errorf("events: proveedor desconocido %q", cfg.Events.Provider)
	}
}
