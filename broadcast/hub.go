// Package broadcast fans game events out to in-process stream subscribers.
package broadcast

import (
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"squares-pool/utils/logger"
)

const (
	// DefaultBuffer is the per-subscriber queue length.
	DefaultBuffer = 32
	// maxStalls is how many heartbeats in a row a subscriber may miss before it is dropped.
	maxStalls = 3
)

// Message is one frame for a subscriber. An empty Event is a keepalive.
type Message struct {
	Event string
	Data  []byte
}

// Subscription is one listener on a topic. Messages arrive on C until the
// subscription is closed by Unsubscribe or pruned by Heartbeat.
type Subscription struct {
	ID    string
	Topic string
	C     <-chan Message

	send   chan Message
	stalls int
	once   sync.Once
}

func (s *Subscription) close() {
	s.once.Do(func() {
		close(s.send)
	})
}

// Hub routes published events to every subscriber of a topic. Publish never
// blocks: a subscriber whose queue is full misses the event.
type Hub struct {
	mu     sync.Mutex
	topics map[string]map[string]*Subscription
	buffer int
}

func NewHub(buffer int) *Hub {
	if buffer <= 0 {
		buffer = DefaultBuffer
	}
	return &Hub{
		topics: make(map[string]map[string]*Subscription),
		buffer: buffer,
	}
}

// Subscribe registers a new listener on topic.
func (h *Hub) Subscribe(topic string) *Subscription {
	send := make(chan Message, h.buffer)
	sub := &Subscription{
		ID:    uuid.NewString(),
		Topic: topic,
		C:     send,
		send:  send,
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	subs, ok := h.topics[topic]
	if !ok {
		subs = make(map[string]*Subscription)
		h.topics[topic] = subs
	}
	subs[sub.ID] = sub
	logger.Debugf("subscriber %s joined %s (%d listening)", sub.ID, topic, len(subs))
	return sub
}

// Unsubscribe removes sub and closes its channel. It is safe to call twice.
func (h *Hub) Unsubscribe(sub *Subscription) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.remove(sub)
}

func (h *Hub) remove(sub *Subscription) {
	if subs, ok := h.topics[sub.Topic]; ok {
		delete(subs, sub.ID)
		if len(subs) == 0 {
			delete(h.topics, sub.Topic)
		}
	}
	sub.close()
}

// Publish encodes payload once and offers it to every subscriber of topic.
func (h *Hub) Publish(topic, event string, payload any) {
	data, err := json.Marshal(payload)
	if err != nil {
		logger.Warnw("dropping unencodable event", "topic", topic, "event", event, "error", err)
		return
	}
	msg := Message{Event: event, Data: data}

	h.mu.Lock()
	defer h.mu.Unlock()
	for _, sub := range h.topics[topic] {
		select {
		case sub.send <- msg:
		default:
			logger.Debugf("subscriber %s on %s is full, dropped %s", sub.ID, topic, event)
		}
	}
}

// Heartbeat queues a keepalive for every subscriber and drops those that
// have not drained their queue for several heartbeats in a row. It returns
// the number of live and pruned subscribers.
func (h *Hub) Heartbeat() (live, pruned int) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, subs := range h.topics {
		for _, sub := range subs {
			select {
			case sub.send <- Message{}:
				sub.stalls = 0
				live++
			default:
				sub.stalls++
				if sub.stalls >= maxStalls {
					h.remove(sub)
					pruned++
					continue
				}
				live++
			}
		}
	}
	return live, pruned
}

// Count returns the number of subscribers on topic.
func (h *Hub) Count(topic string) int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.topics[topic])
}
