package events_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/internal/infrastructure/events"
	"github.com/jhoicas/Comedor-api/pkg/config"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

func TestNew_SinProveedor_EsNop(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{Provider: "none"}}
	p, err := events.New(context.Background(), cfg, nil, logger.Nop())
	require.NoError(t, err)
	assert.IsType(t, events.Nop{}, p)
	assert.NoError(t, p.Publish(context.Background(), ports.Event{Type: ports.EventMenuPublished}))
	assert.NoError(t, p.Close())
}

func TestNew_ProveedorDesconocido(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{Provider: "kafka"}}
	_, err := events.New(context.Background(), cfg, nil, logger.Nop())
	assert.Error(t, err)
}

func TestNew_GoogleSinTopico(t *testing.T) {
	cfg := &config.Config{Events: config.EventsConfig{Provider: "google"}}
	_, err := events.New(context.Background(), cfg, nil, logger.Nop())
	assert.Error(t, err)
}
