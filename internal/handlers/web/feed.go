package web

import (
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/KirkDiggler/dnd-battlemap/internal/events"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBuffer     = 64

	// FeedListenerID identifies the feed on the event bus
	FeedListenerID = "web-feed"
)

// FeedEvents are the event types pushed to browsers
var FeedEvents = []events.EventType{
	events.EventTypeCharacterCreated,
	events.EventTypeCharacterPlaced,
	events.EventTypeCharacterRemoved,
	events.EventTypeEntitySpawned,
	events.EventTypeTurnResolved,
	events.EventTypeTurnFailed,
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Feed fans session events out to connected websocket clients
type Feed struct {
	mu      sync.Mutex
	clients map[*feedClient]struct{}
	logger  *zap.Logger
}

type feedClient struct {
	conn *websocket.Conn
	send chan events.Event
}

// NewFeed creates an empty feed
func NewFeed(logger *zap.Logger) *Feed {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Feed{
		clients: make(map[*feedClient]struct{}),
		logger:  logger,
	}
}

// Subscribe registers the feed on the bus. It runs after other
// listeners so browsers only see events nobody cancelled.
func (f *Feed) Subscribe(bus *events.Bus) {
	bus.Subscribe(events.ListenerFunc(FeedListenerID, 100, f.broadcast), FeedEvents...)
}

// Len reports the number of connected clients
func (f *Feed) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.clients)
}

// Close disconnects every client
func (f *Feed) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	for c := range f.clients {
		close(c.send)
		delete(f.clients, c)
	}
}

// broadcast never blocks the bus; a client whose buffer is full is dropped
func (f *Feed) broadcast(e events.Event) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	for c := range f.clients {
		select {
		case c.send <- e:
		default:
			f.logger.Warn("dropping slow feed client")
			close(c.send)
			delete(f.clients, c)
		}
	}
	return nil
}

func (f *Feed) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		f.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	c := &feedClient{conn: conn, send: make(chan events.Event, sendBuffer)}
	f.mu.Lock()
	f.clients[c] = struct{}{}
	f.mu.Unlock()

	go f.writePump(c)
	go f.readPump(c)
}

func (f *Feed) unregister(c *feedClient) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.clients[c]; ok {
		close(c.send)
		delete(f.clients, c)
	}
}

// readPump only watches for the browser going away
func (f *Feed) readPump(c *feedClient) {
	defer func() {
		f.unregister(c)
		_ = c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	if err := c.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		f.logger.Warn("failed to set read deadline", zap.Error(err))
	}
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				f.logger.Debug("feed client error", zap.Error(err))
			}
			return
		}
	}
}

func (f *Feed) writePump(c *feedClient) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()

	for {
		select {
		case e, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(e); err != nil {
				f.logger.Debug("feed write failed", zap.Error(err))
				return
			}

		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
