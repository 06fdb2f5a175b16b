package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/promo-platform/backend/internal/auth"
	"github.com/promo-platform/backend/internal/config"
	"github.com/promo-platform/backend/internal/events"
	"go.uber.org/zap"
)

// WSHub fans engagement events out to clients watching a promo. Clients
// connect with ?token=...&promo_id=... and receive every like/unlike/
// comment/activation event published for that promo.
type WSHub struct {
	cfg        *config.Config
	subscriber events.Subscriber
	log        *zap.Logger
	mu         sync.RWMutex
	watchers   map[uuid.UUID][]*websocket.Conn
}

func NewWSHub(cfg *config.Config, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		cfg:        cfg,
		subscriber: subscriber,
		log:        log,
		watchers:   make(map[uuid.UUID][]*websocket.Conn),
	}
}

func (h *WSHub) Start(ctx context.Context) {
	err := h.subscriber.Subscribe(ctx, events.StreamEngagement, func(event events.Event) {
		h.broadcast(event)
	})
	if err != nil {
		h.log.Error("engagement subscription failed", zap.Error(err))
	}
}

func (h *WSHub) broadcast(event events.Event) {
	promoIDStr, _ := event.Payload["promo_id"].(string)
	promoID, err := uuid.Parse(promoIDStr)
	if err != nil {
		return
	}

	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.watchers[promoID] {
		_ = conn.WriteMessage(websocket.TextMessage, data)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"error","message":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := auth.ParseToken(h.cfg.JWTSecret, tokenStr)
	if err != nil || claims.Refresh {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"error","message":"invalid token"}`))
		conn.Close()
		return
	}

	promoID, err := uuid.Parse(conn.Query("promo_id"))
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"status":"error","message":"invalid promo_id"}`))
		conn.Close()
		return
	}

	// Register
	h.mu.Lock()
	h.watchers[promoID] = append(h.watchers[promoID], conn)
	h.mu.Unlock()

	defer func() {
		h.mu.Lock()
		conns := h.watchers[promoID]
		for i, c := range conns {
			if c == conn {
				h.watchers[promoID] = append(conns[:i], conns[i+1:]...)
				break
			}
		}
		if len(h.watchers[promoID]) == 0 {
			delete(h.watchers, promoID)
		}
		h.mu.Unlock()
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
