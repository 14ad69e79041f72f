package events

import (
	"context"
	"encoding/json"
	"fmt"

	"cloud.google.com/go/pubsub/v2"
	pubsubpb "cloud.google.com/go/pubsub/v2/apiv1/pubsubpb"
	"github.com/pkg/errors"

	"github.com/jhoicas/Comedor-api/internal/application/ports"
	"github.com/jhoicas/Comedor-api/pkg/logger"
)

// GooglePublisher publica en un tópico de Google Cloud Pub/Sub.
type GooglePublisher struct {
	client    *pubsub.Client
	publisher *pubsub.Publisher
	log       *logger.Logger
}

// NewGooglePublisher abre el cliente y comprueba que el tópico exista.
func NewGooglePublisher(ctx context.Context, projectID, topicID string, log *logger.Logger) (*GooglePublisher, error) {
	if projectID == "" || topicID == "" {
		return nil, fmt.Errorf("events: PUBSUB_PROJECT_ID y PUBSUB_TOPIC_ID son obligatorios")
	}
	client, err := pubsub.NewClient(ctx, projectID)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	topicPath := fmt.Sprintf("projects/%s/topics/%s", projectID, topicID)
	if _, err := client.TopicAdminClient.GetTopic(ctx, &pubsubpb.GetTopicRequest{Topic: topicPath}); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "pubsub: tópico %s", topicID)
	}

	log.Info().Str("project_id", projectID).Str("topic_id", topicID).Msg("publicador Pub/Sub listo")
	return &GooglePublisher{client: client, publisher: client.Publisher(topicID), log: log}, nil
}

func (p *GooglePublisher) Publish(ctx context.Context, e ports.Event) error {
	data, err := json.Marshal(e)
	if err != nil {
		return errors.WithStack(err)
	}
	attrs := map[string]string{"type": e.Type, "week_id": e.WeekID}
	if e.BranchID != "" {
		attrs["branch_id"] = e.BranchID
	}

	serverID, err := p.publisher.Publish(ctx, &pubsub.Message{Data: data, Attributes: attrs}).Get(ctx)
	if err != nil {
		return errors.WithStack(err)
	}
	p.log.Debug().Str("type", e.Type).Str("server_id", serverID).Msg("evento publicado")
	return nil
}

func (p *GooglePublisher) Close() error {
	if p.publisher != nil {
		p.publisher.Stop()
	}
	if p.client != nil {
		return errors.WithStack(p.client.Close())
	}
	return nil
}
