package server

import (
	"context"
	"fmt"

	"github.com/inkpress/inkpress/internal/platform/eventbus"
	"github.com/inkpress/inkpress/internal/platform/events"
	"github.com/inkpress/inkpress/internal/platform/logger"
)

// registerEventHandlers wires the in-process subscribers. Currently there is
// one: an audit log of committed revisions.
func registerEventHandlers(bus *eventbus.Bus, log logger.Logger) {
	bus.Subscribe(events.RevisionPublishedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.RevisionPublishedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T on topic %s", event.Payload, event.Topic)
		}

		log.Info(ctx, "post published",
			"post_id", payload.PostID,
			"title", payload.Title,
			"slug", payload.Slug,
		)
		return nil
	})

	bus.Subscribe(events.RevisionUpdatedTopic, func(ctx context.Context, event eventbus.Event) error {
		payload, ok := event.Payload.(events.RevisionUpdatedEvent)
		if !ok {
			return fmt.Errorf("unexpected payload %T on topic %s", event.Payload, event.Topic)
		}

		log.Info(ctx, "post updated",
			"post_id", payload.PostID,
			"title", payload.Title,
			"slug", payload.Slug,
			"slug_minted", payload.SlugMinted,
		)
		return nil
	})
}
