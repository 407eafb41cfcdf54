// Package feed pushes review events to websocket subscribers of a venue.
package feed

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"

	"quietspot/internal/models"
)

const (
	readLimit     = 4 << 10
	readDeadline  = 60 * time.Second // extended by every pong
	writeDeadline = 5 * time.Second
	pingInterval  = 25 * time.Second
	sendBuffer    = 16
	publishBuffer = 64
)

type client struct {
	venueID string
	conn    *websocket.Conn
	send    chan []byte
}

type publication struct {
	venueID string
	data    []byte
}

type countRequest struct {
	venueID string
	reply   chan int
}

// Hub owns every subscriber. Only the Run goroutine touches the subscriber
// map; everything else talks to it over channels.
type Hub struct {
	subscribers map[string]map[*client]struct{}
	register    chan *client
	unregister  chan *client
	publish     chan publication
	count       chan countRequest
	done        chan struct{}
	upgrader    websocket.Upgrader
	log         *log.Entry
}

func NewHub(logger *log.Entry) *Hub {
	return &Hub{
		subscribers: make(map[string]map[*client]struct{}),
		register:    make(chan *client),
		unregister:  make(chan *client),
		publish:     make(chan publication, publishBuffer),
		count:       make(chan countRequest),
		done:        make(chan struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     func(r *http.Request) bool { return true },
		},
		log: logger,
	}
}

// Run serves the hub until ctx is done, then closes every subscriber.
func (h *Hub) Run(ctx context.Context) {
	defer close(h.done)
	for {
		select {
		case <-ctx.Done():
			for _, set := range h.subscribers {
				for c := range set {
					close(c.send)
				}
			}
			h.subscribers = make(map[string]map[*client]struct{})
			return

		case c := <-h.register:
			set, ok := h.subscribers[c.venueID]
			if !ok {
				set = make(map[*client]struct{})
				h.subscribers[c.venueID] = set
			}
			set[c] = struct{}{}
			h.log.WithField("venue_id", c.venueID).Debug("feed subscriber joined")

		case c := <-h.unregister:
			h.drop(c)

		case p := <-h.publish:
			for c := range h.subscribers[p.venueID] {
				select {
				case c.send <- p.data:
				default:
					// Slow consumer; it reconnects and refetches the venue.
					h.log.WithField("venue_id", c.venueID).Warn("dropping slow feed subscriber")
					h.drop(c)
				}
			}

		case req := <-h.count:
			req.reply <- len(h.subscribers[req.venueID])
		}
	}
}

func (h *Hub) drop(c *client) {
	set, ok := h.subscribers[c.venueID]
	if !ok {
		return
	}
	if _, ok := set[c]; !ok {
		return
	}
	delete(set, c)
	close(c.send)
	if len(set) == 0 {
		delete(h.subscribers, c.venueID)
	}
}

// Publish queues event for the venue's subscribers. It never blocks: when the
// queue is full the event is dropped.
func (h *Hub) Publish(venueID string, event models.ReviewEvent) {
	data, err := json.Marshal(event)
	if err != nil {
		h.log.WithError(err).Error("encode feed event")
		return
	}
	select {
	case h.publish <- publication{venueID: venueID, data: data}:
	default:
		h.log.WithField("venue_id", venueID).Warn("feed queue full, dropping event")
	}
}

// Subscribers reports how many connections follow venueID.
func (h *Hub) Subscribers(ctx context.Context, venueID string) (int, error) {
	req := countRequest{venueID: venueID, reply: make(chan int, 1)}
	select {
	case h.count <- req:
	case <-h.done:
		return 0, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
	select {
	case n := <-req.reply:
		return n, nil
	case <-ctx.Done():
		return 0, ctx.Err()
	}
}

// Serve upgrades the request and streams venueID's events until the peer
// goes away.
func (h *Hub) Serve(w http.ResponseWriter, r *http.Request, venueID string) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.log.WithError(err).Debug("feed upgrade failed")
		return
	}

	c := &client{venueID: venueID, conn: conn, send: make(chan []byte, sendBuffer)}
	select {
	case h.register <- c:
	case <-h.done:
		conn.Close()
		return
	case <-r.Context().Done():
		conn.Close()
		return
	}

	go h.writePump(c)
	h.readPump(c)
}

// readPump only exists to see pongs and the peer closing.
func (h *Hub) readPump(c *client) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(readLimit)
	_ = c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(readDeadline))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeDeadline))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
