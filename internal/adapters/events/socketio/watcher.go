// Package socketio follows subscription push events over the Socket.IO
// websocket transport (Engine.IO v4).
package socketio

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/bnema/walletwise-cli/internal/logger"
	"github.com/bnema/walletwise-cli/internal/ports"
	"github.com/gorilla/websocket"
)

const (
	// Engine.IO packet types.
	packetOpen  = '0'
	packetClose = '1'
	packetPing  = '2'
	packetPong  = '3'
	packetMsg   = '4'

	// Socket.IO packet types, carried inside an Engine.IO message.
	socketConnect      = '0'
	socketDisconnect   = '1'
	socketEvent        = '2'
	socketConnectError = '4'

	subscriptionEvent = "subscription:updated"

	writeWait      = 10 * time.Second
	maxMessageSize = 64 << 10
)

var ErrServerClosed = errors.New("socket closed by server")

type handshake struct {
	SID          string `json:"sid"`
	PingInterval int    `json:"pingInterval"`
	PingTimeout  int    `json:"pingTimeout"`
}

func (h handshake) readWindow() time.Duration {
	window := time.Duration(h.PingInterval+h.PingTimeout) * time.Millisecond
	if window <= 0 {
		return 45 * time.Second
	}

	return window
}

type subscriptionPayload struct {
	Tier     string `json:"tier"`
	IsActive bool   `json:"isActive"`
}

// Watcher implements ports.SubscriptionEvents.
type Watcher struct {
	dialer *websocket.Dialer
	log    *slog.Logger
}

type Option func(*Watcher)

func WithLogger(log *slog.Logger) Option {
	return func(w *Watcher) {
		if log != nil {
			w.log = log
		}
	}
}

func WithDialer(dialer *websocket.Dialer) Option {
	return func(w *Watcher) {
		if dialer != nil {
			w.dialer = dialer
		}
	}
}

func NewWatcher(opts ...Option) *Watcher {
	w := &Watcher{
		dialer: websocket.DefaultDialer,
		log:    logger.Discard(),
	}
	for _, opt := range opts {
		opt(w)
	}

	return w
}

var _ ports.SubscriptionEvents = (*Watcher)(nil)

// SocketURL derives the websocket endpoint from the REST base URL by
// dropping its /api or /api/v1 suffix.
func SocketURL(baseURL string) (string, error) {
	parsed, err := url.Parse(strings.TrimSpace(baseURL))
	if err != nil {
		return "", fmt.Errorf("parse base url: %w", err)
	}

	switch parsed.Scheme {
	case "http", "ws":
		parsed.Scheme = "ws"
	case "https", "wss":
		parsed.Scheme = "wss"
	default:
		return "", fmt.Errorf("unsupported base url scheme %q", parsed.Scheme)
	}

	path := strings.TrimRight(parsed.Path, "/")
	path = strings.TrimSuffix(path, "/api/v1")
	path = strings.TrimSuffix(path, "/api")
	parsed.Path = path + "/socket.io/"
	parsed.RawQuery = url.Values{"EIO": {"4"}, "transport": {"websocket"}}.Encode()

	return parsed.String(), nil
}

// Subscribe connects, joins as userID and calls handle for every
// subscription:updated event until ctx is done or the server goes away.
func (w *Watcher) Subscribe(ctx context.Context, creds ports.Credentials, userID string, handle func(ports.SubscriptionUpdate) error) error {
	endpoint, err := SocketURL(creds.BaseURL)
	if err != nil {
		return err
	}

	conn, response, err := w.dialer.DialContext(ctx, endpoint, authHeader(creds))
	if err != nil {
		if response != nil {
			return fmt.Errorf("dial %s: status %d: %w", endpoint, response.StatusCode, err)
		}
		return fmt.Errorf("dial %s: %w", endpoint, err)
	}
	conn.SetReadLimit(maxMessageSize)

	var closeOnce sync.Once
	closeConn := func() { closeOnce.Do(func() { _ = conn.Close() }) }
	defer closeConn()

	stop := context.AfterFunc(ctx, closeConn)
	defer stop()

	err = w.run(conn, userID, handle)
	if ctx.Err() != nil {
		return nil
	}

	return err
}

func (w *Watcher) run(conn *websocket.Conn, userID string, handle func(ports.SubscriptionUpdate) error) error {
	_, message, err := conn.ReadMessage()
	if err != nil {
		return fmt.Errorf("read open packet: %w", err)
	}
	if len(message) == 0 || message[0] != packetOpen {
		return fmt.Errorf("unexpected open packet %q", message)
	}

	var hs handshake
	if err := json.Unmarshal(message[1:], &hs); err != nil {
		return fmt.Errorf("decode open packet: %w", err)
	}
	w.log.Debug("socket opened", "sid", hs.SID, "ping_interval_ms", hs.PingInterval)

	auth, err := json.Marshal(map[string]string{"userId": userID})
	if err != nil {
		return fmt.Errorf("encode auth: %w", err)
	}
	if err := write(conn, append([]byte{packetMsg, socketConnect}, auth...)); err != nil {
		return fmt.Errorf("send connect: %w", err)
	}

	for {
		if err := conn.SetReadDeadline(time.Now().Add(hs.readWindow())); err != nil {
			return fmt.Errorf("set read deadline: %w", err)
		}

		_, message, err := conn.ReadMessage()
		if err != nil {
			return fmt.Errorf("read packet: %w", err)
		}
		if len(message) == 0 {
			continue
		}

		switch message[0] {
		case packetPing:
			if err := write(conn, []byte{packetPong}); err != nil {
				return fmt.Errorf("send pong: %w", err)
			}
		case packetClose:
			return ErrServerClosed
		case packetMsg:
			if err := w.dispatch(message[1:], handle); err != nil {
				return err
			}
		}
	}
}

func (w *Watcher) dispatch(packet []byte, handle func(ports.SubscriptionUpdate) error) error {
	if len(packet) == 0 {
		return nil
	}

	switch packet[0] {
	case socketConnect:
		w.log.Info("subscription channel connected")
		return nil
	case socketDisconnect:
		return ErrServerClosed
	case socketConnectError:
		return fmt.Errorf("socket connect rejected: %s", strings.TrimSpace(string(packet[1:])))
	case socketEvent:
		name, payload, err := decodeEvent(packet[1:])
		if err != nil {
			w.log.Warn("dropping malformed event", "err", err)
			return nil
		}
		if name != subscriptionEvent {
			w.log.Debug("ignoring event", "event", name)
			return nil
		}

		var data subscriptionPayload
		if err := json.Unmarshal(payload, &data); err != nil {
			w.log.Warn("dropping malformed subscription event", "err", err)
			return nil
		}

		tier, err := domain.ParseTier(data.Tier)
		if err != nil {
			w.log.Warn("pushed tier is unknown", "tier", data.Tier)
		}

		return handle(ports.SubscriptionUpdate{Tier: tier, IsActive: data.IsActive})
	}

	return nil
}

// decodeEvent splits ["name", payload]; a namespace or ack id prefix is
// skipped.
func decodeEvent(raw []byte) (string, json.RawMessage, error) {
	start := strings.IndexByte(string(raw), '[')
	if start < 0 {
		return "", nil, fmt.Errorf("event has no array body")
	}

	var parts []json.RawMessage
	if err := json.Unmarshal(raw[start:], &parts); err != nil {
		return "", nil, fmt.Errorf("decode event: %w", err)
	}
	if len(parts) == 0 {
		return "", nil, fmt.Errorf("event is empty")
	}

	var name string
	if err := json.Unmarshal(parts[0], &name); err != nil {
		return "", nil, fmt.Errorf("decode event name: %w", err)
	}
	if len(parts) < 2 {
		return name, json.RawMessage("{}"), nil
	}

	return name, parts[1], nil
}

func write(conn *websocket.Conn, payload []byte) error {
	if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}

	return conn.WriteMessage(websocket.TextMessage, payload)
}

func authHeader(creds ports.Credentials) http.Header {
	header := http.Header{}
	token := strings.TrimSpace(creds.Token)
	if token == "" {
		return header
	}

	if creds.Method == domain.AuthMethodSession {
		header.Set("Cookie", (&http.Cookie{Name: "accessToken", Value: token}).String())
		return header
	}
	header.Set("Authorization", "Bearer "+token)

	return header
}
