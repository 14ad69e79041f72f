package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/redis"
)

// cliente apuntando a un puerto sin servidor: toda operación de red falla rápido
func unreachable(t *testing.T) *goredis.Client {
	t.Helper()
	c := goredis.NewClient(&goredis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSessionStore_SesionVencidaNoSeGuarda(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store := redis.NewSessionStore(unreachable(t), func() time.Time { return now })

	err := store.Save(context.Background(), &entity.Session{ID: "s1", ExpiresAt: now})
	assert.True(t, errors.Is(err, domain.ErrSessionExpired))
}

func TestSessionStore_RedisCaido_EsUnavailable(t *testing.T) {
	now := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	store := redis.NewSessionStore(unreachable(t), func() time.Time { return now })
	ctx := context.Background()

	err := store.Save(ctx, &entity.Session{ID: "s1", ExpiresAt: now.Add(time.Hour)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrUnavailable))

	_, err = store.Get(ctx, "s1")
	assert.True(t, errors.Is(err, domain.ErrUnavailable))

	assert.True(t, errors.Is(store.Delete(ctx, "s1"), domain.ErrUnavailable))
}

func TestPublisher_ErrorDeRed(t *testing.T) {
	p := redis.NewPublisher(unreachable(t), "comedor:eventos", false)
	err := p.Publish(context.Background(), ports.Event{Type: ports.EventConfirmationSaved, WeekID: "2026-10-19"})
	assert.Error(t, err)
	assert.NoError(t, p.Close())
}
