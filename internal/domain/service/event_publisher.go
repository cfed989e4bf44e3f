package service

import (
	"context"
	"time"
)

// ProductEventType names a committed product mutation.
type ProductEventType string

const (
	ProductCreated ProductEventType = "product.created"
	ProductUpdated ProductEventType = "product.updated"
	ProductDeleted ProductEventType = "product.deleted"
)

// ProductEvent is published after a product mutation commits.
type ProductEvent struct {
	RequestID  string           `json:"request_id,omitempty"` // For distributed tracing
	Type       ProductEventType `json:"type"`
	ProductID  uint             `json:"product_id"`
	OwnerID    uint             `json:"owner_id"`
	ActorID    uint             `json:"actor_id"`
	OccurredAt time.Time        `json:"occurred_at"`
}

// EventPublisher defines the interface for publishing events to a message queue
type EventPublisher interface {
	// PublishProductEvent publishes a product event for downstream consumers
	PublishProductEvent(ctx context.Context, event *ProductEvent) error

	// Close releases any resources held by the publisher
	Close() error
}
