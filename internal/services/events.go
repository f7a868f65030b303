package services

import (
	"encoding/json"
	"log"
)

// ActivityPublisher publishes ledger activity events to a message broker.
// It matches the publish surface of pkg/rabbitmq.Client; a nil publisher
// disables events without touching the write path.
type ActivityPublisher interface {
	Publish(routingKey string, body []byte) error
}

// publishActivity sends an activity event, best effort. Event delivery is
// not part of the ledgers' consistency guarantee, so failures are only
// logged.
func publishActivity(pub ActivityPublisher, routingKey string, payload map[string]interface{}) {
	if pub == nil {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		log.Printf("Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := pub.Publish(routingKey, body); err != nil {
		log.Printf("Warning: failed to publish %s event: %v", routingKey, err)
	}
}
