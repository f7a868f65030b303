package services

import (
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"upfound/internal/models"
	"upfound/internal/repositories"
)

// capturingPublisher records every published activity event.
type capturingPublisher struct {
	mu     sync.Mutex
	events []publishedEvent
}

type publishedEvent struct {
	RoutingKey string
	Body       []byte
}

func (p *capturingPublisher) Publish(routingKey string, body []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{RoutingKey: routingKey, Body: body})
	return nil
}

func (p *capturingPublisher) routingKeys() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	keys := make([]string, 0, len(p.events))
	for _, e := range p.events {
		keys = append(keys, e.RoutingKey)
	}
	return keys
}

func seedUser(t *testing.T, store repositories.Store, name, publicID, email string) *models.User {
	t.Helper()
	user := &models.User{
		Name:     name,
		UserID:   publicID,
		Email:    email,
		Password: "hashed",
	}
	assert.NoError(t, store.Users().Create(user))
	return user
}

func seedProduct(t *testing.T, store repositories.Store, name, category, submitterID string, createdAt time.Time) *models.Product {
	t.Helper()
	product := &models.Product{
		Name:          name,
		Tagline:       name + " tagline",
		Description:   name + " description",
		Website:       "https://example.com/" + name,
		Logo:          "https://example.com/" + name + "/logo.png",
		Category:      category,
		SubmittedByID: submitterID,
		CreatedAt:     createdAt,
	}
	assert.NoError(t, store.Products().Create(product))
	return product
}
