package ports

import (
	"context"
	"time"
)

// Tipos de evento publicados.
const (
	EventConfirmationSaved = "confirmation.saved"
	EventMenuPublished     = "menu.published"
	EventMenuArchived      = "menu.archived"
)

// Event evento de dominio serializado como JSON por los publicadores.
type Event struct {
	Type       string         `json:"type"`
	WeekID     string         `json:"week_id"`
	BranchID   string         `json:"branch_id,omitempty"`
	ActorID    string         `json:"actor_id,omitempty"`
	OccurredAt time.Time      `json:"occurred_at"`
	Payload    map[string]any `json:"payload,omitempty"`
}

// EventPublisher publica eventos (none, redis o Google Pub/Sub).
type EventPublisher interface {
	Publish(ctx context.Context, e Event) error
	Close() error
}

// Notifier avisos push a los coordinadores.
type Notifier interface {
	NotifyMenuPublished(ctx context.Context, weekID, label string) error
}
