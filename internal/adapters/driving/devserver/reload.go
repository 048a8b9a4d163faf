package devserver

import (
	"bufio"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"
)

// heartbeatInterval keeps idle SSE connections alive and lets the
// server notice dropped clients.
const heartbeatInterval = 15 * time.Second

// reloadSnippet is injected into HTML responses before </body> when
// live reload is enabled.
const reloadSnippet = `<script>
(() => {
  const source = new EventSource("/__webrig/events");
  source.addEventListener("reload", () => location.reload());
})();
</script>
`

// reloadHub fans change events out to connected SSE clients.
type reloadHub struct {
	mu      sync.Mutex
	clients map[chan string]struct{}
	closed  bool
}

func newReloadHub() *reloadHub {
	return &reloadHub{clients: make(map[chan string]struct{})}
}

// Subscribe registers a client. The returned channel is closed when
// the hub shuts down.
func (h *reloadHub) Subscribe() chan string {
	h.mu.Lock()
	defer h.mu.Unlock()

	ch := make(chan string, 4)
	if h.closed {
		close(ch)
		return ch
	}
	h.clients[ch] = struct{}{}
	return ch
}

// Unsubscribe removes a client.
func (h *reloadHub) Unsubscribe(ch chan string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.clients, ch)
}

// Broadcast sends an event to every client. Slow clients are skipped
// rather than blocking the watcher.
func (h *reloadHub) Broadcast(payload string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for ch := range h.clients {
		select {
		case ch <- payload:
		default:
		}
	}
}

// ClientCount returns the number of connected clients.
func (h *reloadHub) ClientCount() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close drops every client cleanly. Subsequent subscriptions get a
// closed channel.
func (h *reloadHub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return
	}
	h.closed = true
	for ch := range h.clients {
		close(ch)
		delete(h.clients, ch)
	}
}

// reloadPayload is the JSON body of one reload event.
type reloadPayload struct {
	Paths []string `json:"paths"`
}

// encodeReloadEvent serialises a change batch for broadcast.
func encodeReloadEvent(paths []string) string {
	data, err := json.Marshal(reloadPayload{Paths: paths})
	if err != nil {
		return `{"paths":[]}`
	}
	return string(data)
}

// eventsHandler streams reload events to a browser over SSE.
func (s *Server) eventsHandler(c *fiber.Ctx) error {
	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set(fiber.HeaderConnection, "keep-alive")

	ch := s.hub.Subscribe()
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		defer s.hub.Unsubscribe(ch)

		// Ask the browser to retry quickly after server restarts.
		if _, err := w.WriteString("retry: 1000\n\n"); err != nil {
			return
		}
		if err := w.Flush(); err != nil {
			return
		}

		heartbeat := time.NewTicker(heartbeatInterval)
		defer heartbeat.Stop()

		for {
			select {
			case payload, open := <-ch:
				if !open {
					return
				}
				if _, err := w.WriteString("event: reload\ndata: " + payload + "\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			case <-heartbeat.C:
				if _, err := w.WriteString(": ping\n\n"); err != nil {
					return
				}
				if err := w.Flush(); err != nil {
					return
				}
			}
		}
	}))
	return nil
}

// injectReloadSnippet places the client script before </body>, or
// appends it when the document has no closing body tag.
func injectReloadSnippet(html []byte) []byte {
	const closeTag = "</body>"

	idx := strings.LastIndex(strings.ToLower(string(html)), closeTag)
	if idx < 0 {
		return append(html, []byte(reloadSnippet)...)
	}

	injected := make([]byte, 0, len(html)+len(reloadSnippet))
	injected = append(injected, html[:idx]...)
	injected = append(injected, []byte(reloadSnippet)...)
	injected = append(injected, html[idx:]...)
	return injected
}
