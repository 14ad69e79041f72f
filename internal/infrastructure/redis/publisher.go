package redis

import (
	"context"
	"encoding/json"

	"github.com/pkg/errors"
	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// Publisher publica los eventos como JSON en un canal Redis (PUBLISH).
type Publisher struct {
	client  goredis.UniversalClient
	channel string
	owned   bool
}

// NewPublisher publica en channel. Si owned es true, Close cierra el cliente.
func NewPublisher(client goredis.UniversalClient, channel string, owned bool) *Publisher {
	return &Publisher{client: client, channel: channel, owned: owned}
}

func (p *Publisher) Publish(ctx context.Context, e ports.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return errors.WithStack(err)
	}
	if err := p.client.Publish(ctx, p.channel, data).Err(); err != nil {
		return errors.Wrapf(err, "redis publish %s", p.channel)
	}
	return nil
}

func (p *Publisher) Close() error {
	if !p.owned {
		return nil
	}
	return p.client.Close()
}
