package server

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"
)

const (
	sseChannelBuffer = 16
	sseHeartbeat     = 30 * time.Second
)

// subscriber is a single SSE connection.
type subscriber struct {
	ch     chan string
	gameID string
}

// Broadcaster fans game events out to the SSE subscribers of each session.
type Broadcaster struct {
	mu   sync.RWMutex
	subs map[*subscriber]struct{}

	// onChange is called with +1 / -1 as streams open and close.
	onChange func(delta float64)
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[*subscriber]struct{})}
}

// Register adds a subscriber for a game session and returns it.
func (b *Broadcaster) Register(gameID string) *subscriber {
	s := &subscriber{
		ch:     make(chan string, sseChannelBuffer),
		gameID: gameID,
	}
	b.mu.Lock()
	b.subs[s] = struct{}{}
	b.mu.Unlock()
	if b.onChange != nil {
		b.onChange(1)
	}
	return s
}

// Unregister removes a subscriber and closes its channel.
func (b *Broadcaster) Unregister(s *subscriber) {
	b.mu.Lock()
	_, ok := b.subs[s]
	if ok {
		delete(b.subs, s)
		close(s.ch)
	}
	b.mu.Unlock()
	if ok && b.onChange != nil {
		b.onChange(-1)
	}
}

// Broadcast sends a raw message to all subscribers of a game session.
// Slow subscribers whose buffer is full miss the message.
func (b *Broadcaster) Broadcast(gameID, data string) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	for s := range b.subs {
		if s.gameID != gameID {
			continue
		}
		select {
		case s.ch <- data:
		default:
		}
	}
}

// Publish broadcasts a JSON event of the given type.
func (b *Broadcaster) Publish(gameID, kind string, fields map[string]any) {
	evt := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		evt[k] = v
	}
	evt["type"] = kind
	data, err := json.Marshal(evt)
	if err != nil {
		return
	}
	b.Broadcast(gameID, string(data))
}

// ClientCount returns the number of subscribers for a game.
func (b *Broadcaster) ClientCount(gameID string) int {
	b.mu.RLock()
	defer b.mu.RUnlock()

	n := 0
	for s := range b.subs {
		if s.gameID == gameID {
			n++
		}
	}
	return n
}

// ServeSSE streams the events of a game session until the client goes away.
func (b *Broadcaster) ServeSSE(w http.ResponseWriter, r *http.Request, gameID string, onConnect func(s *subscriber), onDisconnect func()) {
	flusher, ok := w.(http.Flusher)
	if !ok {
		http.Error(w, "streaming unsupported", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/event-stream")
	w.Header().Set("Cache-Control", "no-cache")
	w.Header().Set("Connection", "keep-alive")

	s := b.Register(gameID)
	defer func() {
		b.Unregister(s)
		if onDisconnect != nil {
			onDisconnect()
		}
	}()

	if onConnect != nil {
		onConnect(s)
	}

	ticker := time.NewTicker(sseHeartbeat)
	defer ticker.Stop()

	for {
		select {
		case <-r.Context().Done():
			return
		case msg, ok := <-s.ch:
			if !ok {
				return
			}
			fmt.Fprintf(w, "data: %s\n\n", msg)
			flusher.Flush()
		case <-ticker.C:
			fmt.Fprintf(w, ": heartbeat\n\n")
			flusher.Flush()
		}
	}
}
