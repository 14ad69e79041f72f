package firebase

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
)

var _ ports.Notifier = (*Notifier)(nil)

// Notifier avisos FCM al tópico de coordinadores.
type Notifier struct {
	client *messaging.Client
	topic  string
}

// NewNotifier construye el notificador sobre la app de Firebase.
func NewNotifier(ctx context.Context, app *firebase.App, topic string) (*Notifier, error) {
	client, err := app.Messaging(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get messaging client: %w", err)
	}
	return &Notifier{client: client, topic: topic}, nil
}

// NotifyMenuPublished avisa que el menú de la semana está publicado y la ventana configurada.
func (n *Notifier) NotifyMenuPublished(ctx context.Context, weekID, label string) error {
	_, err := n.client.Send(ctx, &messaging.Message{
		Topic: n.topic,
		Notification: &messaging.Notification{
			Title: "Menú publicado",
			Body:  label + ": ya puedes confirmar los comensales de tu sucursal.",
		},
		Data: map[string]string{"week_id": weekID, "type": "menu.published"},
	})
	if err != nil {
		return fmt.Errorf("failed to send notification: %w", err)
	}
	return nil
}
