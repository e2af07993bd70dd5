package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"
)

// Buffered so a merchant tab that stops reading cannot stall writers; events
// past the buffer are dropped and the tab catches up on its next page load.
const subscriberBuffer = 8

// BroadcastHook implements RefreshHook by fanning widget events out to every
// subscribed transport (WebSocket, SSE) in process.
type BroadcastHook struct {
	mu      sync.RWMutex
	nextID  int
	streams map[int]chan WidgetEvent
}

// NewBroadcastHook creates an empty broadcast hook.
func NewBroadcastHook() *BroadcastHook {
	return &BroadcastHook{streams: make(map[int]chan WidgetEvent)}
}

// WidgetUpdated delivers the event to every subscriber without blocking.
func (h *BroadcastHook) WidgetUpdated(ctx context.Context, event WidgetEvent) error {
	h.mu.RLock()
	defer h.mu.RUnlock()
	for _, stream := range h.streams {
		select {
		case stream <- event:
		default:
		}
	}
	return nil
}

// Subscribe registers a new event stream. The returned cancel func must be
// called when the consumer goes away; it closes the stream exactly once.
func (h *BroadcastHook) Subscribe() (<-chan WidgetEvent, func()) {
	stream := make(chan WidgetEvent, subscriberBuffer)
	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.streams[id] = stream
	h.mu.Unlock()

	cancel := func() {
		h.mu.Lock()
		defer h.mu.Unlock()
		if s, ok := h.streams[id]; ok {
			delete(h.streams, id)
			close(s)
		}
	}
	return stream, cancel
}

// The dashboard is served inside the Shopify admin iframe, so the websocket
// origin never matches the app host.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// ServeWebSocket upgrades the request and streams widget events as JSON until
// the client disconnects.
func (h *BroadcastHook) ServeWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	defer conn.Close()

	events, cancel := h.Subscribe()
	defer cancel()

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			if err := conn.WriteJSON(event); err != nil {
				return
			}
		}
	}
}

// ServeSSE streams widget events as Server-Sent Events for hosts that mount
// the dashboard on plain net/http instead of go-router.
func (h *BroadcastHook) ServeSSE(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	events, cancel := h.Subscribe()
	defer cancel()

	encoder := json.NewEncoder(w)
	flusher, _ := w.(http.Flusher)

	for {
		select {
		case <-r.Context().Done():
			return
		case event, ok := <-events:
			if !ok {
				return
			}
			w.Write([]byte("data: "))
			if err := encoder.Encode(event); err != nil {
				return
			}
			w.Write([]byte("\n"))
			if flusher != nil {
				flusher.Flush()
			}
		}
	}
}
