package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Comedor-api/internal/domain"
	"github.com/jhoicas/Comedor-api/internal/domain/entity"
	"github.com/jhoicas/Comedor-api/internal/domain/repository"
)

const sessionKeyPrefix = "comedor:session:"

var _ repository.SessionStore = (*SessionStore)(nil)

// SessionStore guarda cada sesión como JSON con TTL igual a su vencimiento.
type SessionStore struct {
	client goredis.UniversalClient
	now    func() time.Time
}

// NewSessionStore crea el store. now puede ser nil (usa time.Now).
func NewSessionStore(client goredis.UniversalClient, now func() time.Time) *SessionStore {
	if now == nil {
		now = time.Now
	}
	return &SessionStore{client: client, now: now}
}

func sessionKey(id string) string { return sessionKeyPrefix + id }

func (s *SessionStore) Save(ctx context.Context, sess *entity.Session) error {
	ttl := sess.ExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return domain.ErrSessionExpired
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(sess.ID), data, ttl).Err(); err != nil {
		return domain.ErrUnavailable.WithCause(fmt.Errorf("redis set session: %w", err))
	}
	return nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*entity.Session, error) {
	data, err := s.client.Get(ctx, sessionKey(id)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, domain.ErrUnavailable.WithCause(fmt.Errorf("redis get session: %w", err))
	}
	var sess entity.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("unmarshal session %s: %w", id, err)
	}
	if sess.Expired(s.now()) {
		return nil, nil
	}
	return &sess, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, sessionKey(id)).Err(); err != nil {
		return domain.ErrUnavailable.WithCause(fmt.Errorf("redis del session: %w", err))
	}
	return nil
}
