package bootstrap

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/infrastructure/localauth"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

func memoryConfig() *config.Config {
	return &config.Config{
		Store:   config.StoreConfig{Driver: "memory"},
		Auth:    config.AuthConfig{Provider: "local"},
		Session: config.SessionConfig{Driver: "memory", TTLMinutes: 60},
		Events:  config.EventsConfig{Provider: "none"},
		Notify:  config.NotifyConfig{Provider: "none"},
	}
}

func TestOpen_Memoria(t *testing.T) {
	ctx := context.Background()
	infra, err := Open(ctx, memoryConfig(), logger.Nop())
	require.NoError(t, err)
	defer infra.Close()

	assert.IsType(t, &memory.DocumentStore{}, infra.Store)
	assert.Nil(t, infra.Firebase)
	assert.Nil(t, infra.Redis)

	provider, err := infra.AuthProvider(ctx)
	require.NoError(t, err)
	assert.IsType(t, &localauth.Provider{}, provider)

	notifier, err := infra.Notifier(ctx)
	require.NoError(t, err)
	assert.Nil(t, notifier)

	assert.NotNil(t, infra.SessionStore())
}

func TestOpen_DriverDesconocido(t *testing.T) {
	cfg := memoryConfig()
	cfg.Store.Driver = "sqlite"

	_, err := Open(context.Background(), cfg, logger.Nop())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "sqlite")
}

func TestClose_Idempotente(t *testing.T) {
	infra, err := Open(context.Background(), memoryConfig(), logger.Nop())
	require.NoError(t, err)

	infra.Close()
	infra.Close()
	assert.Empty(t, infra.closers)
}
