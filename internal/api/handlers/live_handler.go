package handlers

import (
	"context"
	"encoding/json"
	"kitchenpal/pkg/bundle"
	"kitchenpal/pkg/live"
	"kitchenpal/pkg/pantry"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

type (
	LiveHandler interface {
		Upgrade(c *fiber.Ctx) error
		Serve() fiber.Handler
	}

	liveHandler struct {
		hub           *live.Hub
		pantryService pantry.PantryService
		bundleService bundle.BundleService
	}

	clientFrame struct {
		Action string   `json:"action"`
		Topics []string `json:"topics"`
	}
)

func NewLiveHandler(hub *live.Hub, pantryService pantry.PantryService, bundleService bundle.BundleService) LiveHandler {
	return &liveHandler{
		hub:           hub,
		pantryService: pantryService,
		bundleService: bundleService,
	}
}

func (h *liveHandler) Upgrade(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// Serve runs one live-subscription connection. The client subscribes to
// topics and receives a full snapshot immediately, then again after every
// change. Closing the connection unregisters the client and tears down all
// of its topics at once.
func (h *liveHandler) Serve() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userID, ok := conn.Locals("user_id").(string)
		if !ok || userID == "" {
			return
		}

		client := live.NewClient(userID)
		h.hub.Register(client)
		defer h.hub.Unregister(client)

		go func() {
			for msg := range client.Send() {
				if err := conn.WriteMessage(websocket.TextMessage, msg); err != nil {
					return
				}
			}
		}()

		for {
			_, raw, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var frame clientFrame
			if err := json.Unmarshal(raw, &frame); err != nil {
				continue
			}

			switch frame.Action {
			case "subscribe":
				for _, topic := range frame.Topics {
					if !validTopic(topic) {
						continue
					}
					h.hub.Subscribe(client, topic)
					h.pushInitial(client, topic, userID)
				}
			case "unsubscribe":
				for _, topic := range frame.Topics {
					h.hub.Unsubscribe(client, topic)
				}
			}
		}
	})
}

func validTopic(topic string) bool {
	switch topic {
	case live.TopicInventory, live.TopicFeed, live.TopicDashboard:
		return true
	}
	return false
}

func (h *liveHandler) pushInitial(client *live.Client, topic string, userID string) {
	ctx := context.Background()

	switch topic {
	case live.TopicInventory:
		items, err := h.pantryService.InventorySnapshot(ctx, userID)
		if err != nil {
			log.Printf("error building initial inventory snapshot: %v", err)
			return
		}
		h.hub.SendTo(client, topic, items)

	case live.TopicFeed:
		feed, err := h.bundleService.GetFeedSnapshot(ctx, userID)
		if err != nil {
			log.Printf("error building initial feed snapshot: %v", err)
			return
		}
		h.hub.SendTo(client, topic, feed)

	case live.TopicDashboard:
		stats, err := h.pantryService.GetDashboardStats(ctx, userID)
		if err != nil {
			log.Printf("error building initial dashboard snapshot: %v", err)
			return
		}
		h.hub.SendTo(client, topic, stats)
	}
}
