package live

import (
	"encoding/json"
	"log"
)

const (
	TopicInventory = "inventory"
	TopicFeed      = "feed"
	TopicDashboard = "dashboard"
)

// Publisher is the slice of the hub the feature services need to push
// snapshots after a mutation.
type Publisher interface {
	PublishTo(topic, userID string, payload any)
	PublishEach(topic string, build func(viewerID string) any)
}

// Envelope is the wire frame for every push: a type naming the topic and a
// full snapshot payload. Subscribers always receive complete snapshots,
// never deltas.
type Envelope struct {
	Type    string `json:"type"`
	Payload any    `json:"payload"`
}

type Client struct {
	userID string
	topics map[string]bool
	send   chan []byte
}

func NewClient(userID string) *Client {
	return &Client{
		userID: userID,
		topics: make(map[string]bool),
		send:   make(chan []byte, 16),
	}
}

func (c *Client) UserID() string { return c.userID }

// Send exposes the outbound frames; the websocket handler drains it in its
// write loop. The channel is closed when the client is unregistered.
func (c *Client) Send() <-chan []byte { return c.send }

type subscription struct {
	client *Client
	topic  string
}

type publication struct {
	topic string
	// userID scopes delivery to one owner's subscribers; empty delivers to
	// every subscriber of the topic.
	userID string
	// build produces the payload for a given viewer, so viewer-dependent
	// snapshots (the feed's mine/others split) are computed server-side per
	// connection.
	build func(viewerID string) any
}

type directMsg struct {
	client  *Client
	topic   string
	payload any
}

type Hub struct {
	clients     map[*Client]bool
	register    chan *Client
	unregister  chan *Client
	subscribe   chan subscription
	unsubscribe chan subscription
	publish     chan publication
	direct      chan directMsg
}

func NewHub() *Hub {
	return &Hub{
		clients:     make(map[*Client]bool),
		register:    make(chan *Client),
		unregister:  make(chan *Client),
		subscribe:   make(chan subscription),
		unsubscribe: make(chan subscription),
		publish:     make(chan publication),
		direct:      make(chan directMsg),
	}
}

func (h *Hub) Register(c *Client)   { h.register <- c }
func (h *Hub) Unregister(c *Client) { h.unregister <- c }

func (h *Hub) Subscribe(c *Client, topic string)   { h.subscribe <- subscription{c, topic} }
func (h *Hub) Unsubscribe(c *Client, topic string) { h.unsubscribe <- subscription{c, topic} }

// PublishTo pushes a snapshot to every connection of one user subscribed to
// the topic (owner-scoped topics: inventory, dashboard).
func (h *Hub) PublishTo(topic, userID string, payload any) {
	h.publish <- publication{topic: topic, userID: userID, build: func(string) any { return payload }}
}

// PublishEach pushes a per-viewer snapshot to every subscriber of the topic.
func (h *Hub) PublishEach(topic string, build func(viewerID string) any) {
	h.publish <- publication{topic: topic, build: build}
}

// SendTo enqueues a snapshot for a single client, used for the initial push
// right after a subscribe. Delivery goes through the hub loop so it cannot
// race a close of the client's send channel.
func (h *Hub) SendTo(c *Client, topic string, payload any) {
	h.direct <- directMsg{client: c, topic: topic, payload: payload}
}

func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.clients[client] = true

		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}

		case sub := <-h.subscribe:
			if h.clients[sub.client] {
				sub.client.topics[sub.topic] = true
			}

		case sub := <-h.unsubscribe:
			if h.clients[sub.client] {
				delete(sub.client.topics, sub.topic)
			}

		case msg := <-h.direct:
			if h.clients[msg.client] {
				if !enqueue(msg.client, msg.topic, msg.payload) {
					delete(h.clients, msg.client)
					close(msg.client.send)
				}
			}

		case pub := <-h.publish:
			for client := range h.clients {
				if !client.topics[pub.topic] {
					continue
				}
				if pub.userID != "" && client.userID != pub.userID {
					continue
				}
				if !enqueue(client, pub.topic, pub.build(client.userID)) {
					// Slow consumer: drop the connection rather than
					// block every other subscriber.
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

func enqueue(c *Client, topic string, payload any) bool {
	msg, err := json.Marshal(Envelope{Type: topic, Payload: payload})
	if err != nil {
		log.Printf("error marshaling %s snapshot: %v", topic, err)
		return true
	}
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}
