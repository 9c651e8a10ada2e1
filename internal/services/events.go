package services

import (
	"encoding/json"
	"fmt"
	"time"

	"catalogue/internal/models"

	"github.com/google/uuid"
)

// ProductCreatedRoutingKey is the routing key of events emitted after a product is saved.
const ProductCreatedRoutingKey = "product.created"

// EventPublisher delivers serialized domain events to a message broker.
type EventPublisher interface {
	Publish(routingKey string, body []byte) error
}

// ProductCreatedEvent is published once a product has been persisted.
type ProductCreatedEvent struct {
	EventID    string    `json:"eventId"`
	Type       string    `json:"type"`
	ProductID  uint      `json:"productId"`
	PartNumber string    `json:"partNumber"`
	Category   string    `json:"category"`
	OccurredAt time.Time `json:"occurredAt"`
}

func newProductCreatedEvent(product models.Product) ProductCreatedEvent {
	return ProductCreatedEvent{
		EventID:    uuid.New().String(),
		Type:       ProductCreatedRoutingKey,
		ProductID:  product.ID,
		PartNumber: product.PartNumber,
		Category:   product.Category,
		OccurredAt: time.Now().UTC(),
	}
}

func (e ProductCreatedEvent) marshal() ([]byte, error) {
	body, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s event: %w", e.Type, err)
	}
	return body, nil
}
