package notifications

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Event types published on user channels.
const (
	EventSessionRequested = "session_requested"
	EventSessionConfirmed = "session_confirmed"
	EventSessionCancelled = "session_cancelled"
	EventSessionCompleted = "session_completed"
	EventTestimonial      = "testimonial_received"
	EventXPAwarded        = "xp_awarded"
)

// Notifier publishes lifecycle events into per-user Redis channels so
// connected clients can refresh without polling. All publishes are
// best-effort; a nil Redis client turns them into no-ops.
type Notifier struct {
	rdb *redis.Client
}

// NewNotifier creates a new Notifier instance using the provided Redis client.
func NewNotifier(rdb *redis.Client) *Notifier {
	return &Notifier{rdb: rdb}
}

// Event is the payload envelope published to user channels.
type Event struct {
	Type      string         `json:"type"`
	Data      map[string]any `json:"data,omitempty"`
	Timestamp time.Time      `json:"timestamp"`
}

// PublishUser sends an event to a user's channel.
func (n *Notifier) PublishUser(ctx context.Context, userID uint, eventType string, data map[string]any) error {
	if n == nil || n.rdb == nil {
		return nil
	}
	payload, err := json.Marshal(Event{
		Type:      eventType,
		Data:      data,
		Timestamp: time.Now().UTC(),
	})
	if err != nil {
		return err
	}
	channel := fmt.Sprintf("notifications:user:%d", userID)
	return n.rdb.Publish(ctx, channel, payload).Err()
}
