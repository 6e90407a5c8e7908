package eventbus_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/inkpress/inkpress/internal/platform/eventbus"
)

// mockLogger implements the logger.Logger interface for testing
type mockLogger struct {
	mu     sync.Mutex
	errors []string
}

func (m *mockLogger) Debug(ctx context.Context, msg string, keysAndValues ...interface{}) {}
func (m *mockLogger) Info(ctx context.Context, msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Warn(ctx context.Context, msg string, keysAndValues ...interface{})  {}
func (m *mockLogger) Error(ctx context.Context, msg string, keysAndValues ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors = append(m.errors, msg)
}

func (m *mockLogger) getErrors() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := make([]string, len(m.errors))
	copy(result, m.errors)
	return result
}

func TestBusSubscribeAndPublish(t *testing.T) {
	logger := &mockLogger{}
	bus := eventbus.NewBus(logger)

	topic := eventbus.Topic("revision.published")

	var mu sync.Mutex
	handlerCalls := make([]string, 0)

	handler1 := func(ctx context.Context, event eventbus.Event) error {
		mu.Lock()
		defer mu.Unlock()
		handlerCalls = append(handlerCalls, "handler1")
		payload, ok := event.Payload.(string)
		if !ok {
			t.Error("expected string payload")
		}
		if payload != "test message" {
			t.Errorf("expected 'test message', got %v", payload)
		}
		return nil
	}
	bus.Subscribe(topic, handler1)

	handler2 := func(ctx context.Context, event eventbus.Event) error {
		mu.Lock()
		defer mu.Unlock()
		handlerCalls = append(handlerCalls, "handler2")
		return nil
	}
	bus.Subscribe(topic, handler2)

	event := eventbus.Event{
		Topic:   topic,
		Payload: "test message",
	}
	bus.Publish(context.Background(), event)

	// Wait briefly for async handlers to complete
	time.Sleep(50 * time.Millisecond)

	mu.Lock()
	defer mu.Unlock()
	if len(handlerCalls) != 2 {
		t.Fatalf("expected 2 handler calls, got %d", len(handlerCalls))
	}

	foundHandler1 := false
	foundHandler2 := false
	for _, call := range handlerCalls {
		if call == "handler1" {
			foundHandler1 = true
		}
		if call == "handler2" {
			foundHandler2 = true
		}
	}
	if !foundHandler1 || !foundHandler2 {
		t.Errorf("expected both handlers to run, got %v", handlerCalls)
	}
}

func TestBusPublishNoSubscribers(t *testing.T) {
	logger := &mockLogger{}
	bus := eventbus.NewBus(logger)

	// Publishing to a topic with no subscribers should be a silent no-op.
	bus.Publish(context.Background(), eventbus.Event{
		Topic:   eventbus.Topic("nobody.listens"),
		Payload: 42,
	})

	time.Sleep(20 * time.Millisecond)
	if got := logger.getErrors(); len(got) != 0 {
		t.Errorf("expected no logged errors, got %v", got)
	}
}

func TestBusHandlerErrorIsLogged(t *testing.T) {
	logger := &mockLogger{}
	bus := eventbus.NewBus(logger)

	topic := eventbus.Topic("revision.updated")
	bus.Subscribe(topic, func(ctx context.Context, event eventbus.Event) error {
		return errors.New("boom")
	})

	bus.Publish(context.Background(), eventbus.Event{Topic: topic})

	time.Sleep(50 * time.Millisecond)
	got := logger.getErrors()
	if len(got) != 1 {
		t.Fatalf("expected 1 logged error, got %d", len(got))
	}
	if got[0] != "event handler failed" {
		t.Errorf("unexpected log message %q", got[0])
	}
}
