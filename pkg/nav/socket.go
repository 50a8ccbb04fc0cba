package nav

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/nestroute/pkg/routepath"
)

// MessageType is the type of a history frame.
type MessageType string

const (
	// MessagePush is sent to the browser to push a location.
	MessagePush MessageType = "push"
	// MessagePopState is sent by the browser after back/forward navigation.
	MessagePopState MessageType = "popstate"
)

// Message is a history frame exchanged with the browser.
type Message struct {
	Type     MessageType `json:"type"`
	Location string      `json:"location"`
}

// SocketHistory is a History mirrored to a browser over a WebSocket.
//
// Push writes a push frame and notifies listeners. Popstate frames received
// by Serve replace the location and notify listeners. Locations received from
// the browser must be relative paths; invalid ones are logged and dropped.
type SocketHistory struct {
	conn   *websocket.Conn
	logger *slog.Logger

	// writeMu serializes writes; a websocket.Conn allows one writer.
	writeMu sync.Mutex

	mu       sync.Mutex
	location string

	listeners listeners
}

// NewSocketHistory wraps conn. initial is the location the page was loaded
// with.
func NewSocketHistory(conn *websocket.Conn, initial string, logger *slog.Logger) *SocketHistory {
	if logger == nil {
		logger = slog.Default()
	}
	if initial == "" {
		initial = "/"
	}
	return &SocketHistory{conn: conn, logger: logger, location: initial}
}

// Location implements History.
func (h *SocketHistory) Location() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.location
}

// Push implements History. A failed write is logged; the location still
// changes locally.
func (h *SocketHistory) Push(location string) {
	h.mu.Lock()
	h.location = location
	h.mu.Unlock()

	if err := h.write(Message{Type: MessagePush, Location: location}); err != nil {
		h.logger.Warn("nav socket push", "location", location, "error", err)
	}
	h.listeners.notify(location)
}

// Listen implements History.
func (h *SocketHistory) Listen(fn func(location string)) func() {
	return h.listeners.add(fn)
}

func (h *SocketHistory) write(msg Message) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	h.writeMu.Lock()
	defer h.writeMu.Unlock()
	return h.conn.WriteMessage(websocket.TextMessage, data)
}

// Serve reads frames until the connection closes or ctx is done. It returns
// nil on a normal close.
func (h *SocketHistory) Serve(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		h.conn.Close()
	})
	defer stop()

	for {
		_, data, err := h.conn.ReadMessage()
		if err != nil {
			if ctx.Err() != nil || websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				return nil
			}
			return err
		}

		var msg Message
		if err := json.Unmarshal(data, &msg); err != nil {
			h.logger.Debug("nav socket frame", "error", err)
			continue
		}
		if msg.Type != MessagePopState {
			h.logger.Debug("nav socket frame", "type", msg.Type)
			continue
		}
		if _, err := routepath.CanonicalizeAndValidateNavPath(msg.Location); err != nil {
			h.logger.Warn("nav socket popstate", "location", msg.Location, "error", err)
			continue
		}

		h.mu.Lock()
		h.location = msg.Location
		h.mu.Unlock()
		h.listeners.notify(msg.Location)
	}
}

// Close closes the connection.
func (h *SocketHistory) Close() error {
	return h.conn.Close()
}

// LocationParam is the query parameter of the upgrade request carrying the
// page's initial location.
const LocationParam = "location"

// ErrInvalidLocation is returned for an initial location that is not a
// relative path.
var ErrInvalidLocation = errors.New("nav: invalid location")

// SocketHandler upgrades requests to WebSocket connections and serves each
// as a SocketHistory. Session is called before frames are read; it typically
// creates a Router on the history. The handler returns when the connection
// closes.
type SocketHandler struct {
	// Session sets up a connection's history.
	Session func(ctx context.Context, h *SocketHistory)

	// Upgrader upgrades the connection. The zero value checks that the
	// Origin header matches the Host.
	Upgrader websocket.Upgrader

	// Logger defaults to slog.Default().
	Logger *slog.Logger
}

// ServeHTTP implements http.Handler.
func (s *SocketHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	logger := s.Logger
	if logger == nil {
		logger = slog.Default()
	}

	initial := r.URL.Query().Get(LocationParam)
	if initial == "" {
		initial = "/"
	}
	if _, err := routepath.CanonicalizeAndValidateNavPath(initial); err != nil {
		http.Error(w, ErrInvalidLocation.Error(), http.StatusBadRequest)
		return
	}

	conn, err := s.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Debug("nav socket upgrade", "error", err)
		return
	}

	h := NewSocketHistory(conn, initial, logger)
	defer h.Close()

	if s.Session != nil {
		s.Session(r.Context(), h)
	}
	if err := h.Serve(r.Context()); err != nil {
		logger.Debug("nav socket closed", "error", err)
	}
}
