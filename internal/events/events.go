package events

import "context"

// Engagement event types broadcast to websocket watchers.
const (
	EventPromoLiked     = "promo_liked"
	EventPromoUnliked   = "promo_unliked"
	EventCommentAdded   = "comment_added"
	EventPromoActivated = "promo_activated"
)

// StreamEngagement is the pubsub channel carrying engagement events.
const StreamEngagement = "events:engagement"

type Event struct {
	Type    string         `json:"type"`
	Payload map[string]any `json:"payload"`
}

type Publisher interface {
	Publish(ctx context.Context, stream string, event Event) error
}

type Subscriber interface {
	Subscribe(ctx context.Context, stream string, handler func(Event)) error
}
