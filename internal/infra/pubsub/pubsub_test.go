package pubsub

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"storefront/config"
	"storefront/internal/domain/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func newTestEvent() *service.ProductEvent {
	return &service.ProductEvent{
		RequestID:  "req-1",
		Type:       service.ProductCreated,
		ProductID:  3,
		OwnerID:    7,
		ActorID:    7,
		OccurredAt: time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}
}

func TestLocalHTTPPublisher_PublishProductEvent(t *testing.T) {
	var received PushMessage
	var requestID string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID = r.Header.Get("X-Request-Id")
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	require.NoError(t, publisher.PublishProductEvent(context.Background(), newTestEvent()))

	assert.Equal(t, "req-1", requestID)
	assert.Equal(t, localSubscription, received.Subscription)
	assert.NotEmpty(t, received.Message.MessageID)
	assert.Equal(t, map[string]string{
		"type":       "product.created",
		"product_id": "3",
		"owner_id":   "7",
		"request_id": "req-1",
	}, received.Message.Attributes)

	data, err := base64.StdEncoding.DecodeString(received.Message.Data)
	require.NoError(t, err)

	var event service.ProductEvent
	require.NoError(t, json.Unmarshal(data, &event))
	assert.Equal(t, *newTestEvent(), event)
}

func TestLocalHTTPPublisher_NonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer server.Close()

	publisher := NewLocalHTTPPublisher(server.URL, slog.New(slog.DiscardHandler))
	err := publisher.PublishProductEvent(context.Background(), newTestEvent())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
}

func TestNewEventPublisher(t *testing.T) {
	logger := slog.New(slog.DiscardHandler)

	tests := []struct {
		name    string
		pubsub  *config.PubSubConfig
		wantErr string
	}{
		{name: "not configured", pubsub: nil},
		{name: "empty provider", pubsub: &config.PubSubConfig{}},
		{name: "local", pubsub: &config.PubSubConfig{Provider: "local", LocalEndpoint: "http://localhost:9999/push"}},
		{name: "local without endpoint", pubsub: &config.PubSubConfig{Provider: "local"}, wantErr: "local endpoint is required"},
		{name: "google without project", pubsub: &config.PubSubConfig{Provider: "google", TopicID: "t"}, wantErr: "project ID is required"},
		{name: "google without topic", pubsub: &config.PubSubConfig{Provider: "google", ProjectID: "p"}, wantErr: "topic ID is required"},
		{name: "unknown", pubsub: &config.PubSubConfig{Provider: "kafka"}, wantErr: "unknown pubsub provider"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lc := fxtest.NewLifecycle(t)
			publisher, err := NewEventPublisher(PublisherParams{
				Lc:     lc,
				Ctx:    context.Background(),
				Config: &config.Config{PubSub: tt.pubsub},
				Logger: logger,
			})
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.wantErr)

				return
			}
			require.NoError(t, err)
			assert.NotNil(t, publisher)
			if noop, ok := publisher.(*noopPublisher); ok {
				assert.NoError(t, noop.PublishProductEvent(context.Background(), &service.ProductEvent{Type: service.ProductDeleted}))
			}
		})
	}
}
