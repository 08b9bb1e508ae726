package redis

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sandeshlamsal/eventpasal/internal/domain"
)

const cacheTTL = 5 * time.Minute

const (
	keyList     = "events:list"
	keyUpcoming = "events:upcoming"
	keyFeatured = "events:featured"
)

// Cache holds recently fetched event reads. Mutations do not update entries
// in place; they invalidate, and the next read repopulates from the row
// store.
type Cache struct {
	client *redis.Client
}

func NewCache(client *redis.Client) *Cache {
	return &Cache{client: client}
}

func (c *Cache) Client() *redis.Client {
	return c.client
}

func (c *Cache) GetEvents(ctx context.Context, key string) ([]domain.Event, bool) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	var events []domain.Event
	if err := json.Unmarshal(raw, &events); err != nil {
		return nil, false
	}
	return events, true
}

func (c *Cache) SetEvents(ctx context.Context, key string, events []domain.Event) {
	raw, err := json.Marshal(events)
	if err != nil {
		return
	}
	c.client.Set(ctx, key, raw, cacheTTL)
}

func (c *Cache) GetEvent(ctx context.Context, id uuid.UUID) (*domain.Event, bool) {
	raw, err := c.client.Get(ctx, eventKey(id)).Bytes()
	if err != nil {
		return nil, false
	}
	var ev domain.Event
	if err := json.Unmarshal(raw, &ev); err != nil {
		return nil, false
	}
	return &ev, true
}

func (c *Cache) SetEvent(ctx context.Context, ev *domain.Event) {
	raw, err := json.Marshal(ev)
	if err != nil {
		return
	}
	c.client.Set(ctx, eventKey(ev.ID), raw, cacheTTL)
}

// InvalidateEvent drops every cached read that an event mutation makes
// stale: the listings, the single event, and the owner's dashboard list.
func (c *Cache) InvalidateEvent(ctx context.Context, id, ownerID uuid.UUID) {
	c.client.Del(ctx, keyList, keyUpcoming, keyFeatured, eventKey(id), ownerKey(ownerID))
}

func ListKey() string     { return keyList }
func UpcomingKey() string { return keyUpcoming }
func FeaturedKey() string { return keyFeatured }

func OwnerKey(ownerID uuid.UUID) string { return ownerKey(ownerID) }

func eventKey(id uuid.UUID) string      { return "events:one:" + id.String() }
func ownerKey(ownerID uuid.UUID) string { return "events:owner:" + ownerID.String() }
