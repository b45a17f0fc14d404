package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"cookline/internal/app/ports"
)

const (
	subscriberBuffer = 64
	writeTimeout     = 5 * time.Second
)

type tickFrame struct {
	Type       string `json:"type"`
	BatchID    string `json:"batch_id"`
	Layout     string `json:"layout"`
	Tick       int    `json:"tick"`
	Reward     int    `json:"reward"`
	Deliveries int    `json:"deliveries"`
	DoneEnvs   int    `json:"done_envs"`
}

// Hub fans tick digests out to websocket observers. Slow observers lose
// frames instead of stalling the step loop.
type Hub struct {
	upgrader websocket.Upgrader

	mu          sync.Mutex
	subscribers map[*subscriber]struct{}
}

type subscriber struct {
	out chan []byte
}

func NewHub() *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4 * 1024,
			WriteBufferSize: 16 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		subscribers: make(map[*subscriber]struct{}),
	}
}

func (h *Hub) PublishTick(event ports.TickEvent) {
	payload, err := json.Marshal(tickFrame{
		Type:       "tick",
		BatchID:    event.BatchID,
		Layout:     event.Layout,
		Tick:       event.Tick,
		Reward:     event.Reward,
		Deliveries: event.Deliveries,
		DoneEnvs:   event.DoneEnvs,
	})
	if err != nil {
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for sub := range h.subscribers {
		select {
		case sub.out <- payload:
		default:
		}
	}
}

func (h *Hub) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}

		sub := &subscriber{out: make(chan []byte, subscriberBuffer)}
		h.mu.Lock()
		h.subscribers[sub] = struct{}{}
		h.mu.Unlock()

		done := make(chan struct{})
		go func() {
			defer close(done)
			// Observers never send data; the read loop only notices closes.
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case payload := <-sub.out:
				_ = conn.SetWriteDeadline(time.Now().Add(writeTimeout))
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					h.drop(sub, conn)
					<-done
					return
				}
			case <-done:
				h.drop(sub, conn)
				return
			}
		}
	}
}

func (h *Hub) drop(sub *subscriber, conn *websocket.Conn) {
	h.mu.Lock()
	delete(h.subscribers, sub)
	h.mu.Unlock()
	_ = conn.Close()
}

// Subscribers reports the current observer count.
func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subscribers)
}
