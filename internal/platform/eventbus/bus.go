package eventbus

import (
	"sync"

	"context"

	"github.com/inkpress/inkpress/internal/platform/logger"
)

// Bus manages subscriptions and event dispatching.
type Bus struct {
	subscriptions map[Topic][]Handler
	mu            sync.RWMutex // Protects the subscriptions map
	logger        logger.Logger
}

// NewBus creates a new event bus.
func NewBus(logger logger.Logger) *Bus {
	return &Bus{
		subscriptions: make(map[Topic][]Handler),
		logger:        logger,
	}
}

// Subscribe adds a handler for a specific topic.
func (b *Bus) Subscribe(topic Topic, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subscriptions[topic] = append(b.subscriptions[topic], handler)
}

// Publish sends an event to all subscribers of a topic (fire-and-forget).
// Handler errors are logged, never propagated to the publisher.
func (b *Bus) Publish(ctx context.Context, event Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if handlers, found := b.subscriptions[event.Topic]; found {
		for _, handler := range handlers {
			// Each handler runs in its own goroutine so a slow subscriber
			// cannot stall the publishing request.
			go func(h Handler) {
				if err := h(ctx, event); err != nil {
					b.logger.Error(ctx, "event handler failed", "topic", event.Topic, "error", err)
				}
			}(handler)
		}
	}
}
