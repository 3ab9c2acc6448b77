package socketio

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/bnema/walletwise-cli/internal/domain"
	"github.com/bnema/walletwise-cli/internal/ports"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const openPacket = `0{"sid":"abc","upgrades":[],"pingInterval":25000,"pingTimeout":20000}`

var upgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

func TestSocketURL(t *testing.T) {
	t.Parallel()

	tests := []struct {
		base    string
		want    string
		wantErr bool
	}{
		{base: "http://localhost:3000/api", want: "ws://localhost:3000/socket.io/?EIO=4&transport=websocket"},
		{base: "https://api.walletwise.test/api/v1/", want: "wss://api.walletwise.test/socket.io/?EIO=4&transport=websocket"},
		{base: "https://walletwise.test", want: "wss://walletwise.test/socket.io/?EIO=4&transport=websocket"},
		{base: "ftp://walletwise.test", wantErr: true},
	}

	for _, tc := range tests {
		got, err := SocketURL(tc.base)
		if tc.wantErr {
			assert.Error(t, err, tc.base)
			continue
		}
		require.NoError(t, err, tc.base)
		assert.Equal(t, tc.want, got)
	}
}

// fakeServer runs script against the first websocket client.
func fakeServer(t *testing.T, script func(conn *websocket.Conn)) ports.Credentials {
	t.Helper()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/socket.io/", r.URL.Path)
		assert.Equal(t, "4", r.URL.Query().Get("EIO"))
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))

		conn, err := upgrader.Upgrade(w, r, nil)
		if !assert.NoError(t, err) {
			return
		}
		defer conn.Close()
		script(conn)
	}))
	t.Cleanup(server.Close)

	return ports.Credentials{BaseURL: server.URL + "/api", Method: domain.AuthMethodToken, Token: "tok"}
}

func send(t *testing.T, conn *websocket.Conn, packet string) {
	t.Helper()
	assert.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte(packet)))
}

func receive(t *testing.T, conn *websocket.Conn) string {
	t.Helper()
	_, message, err := conn.ReadMessage()
	assert.NoError(t, err)
	return string(message)
}

func TestSubscribeDeliversSubscriptionUpdates(t *testing.T) {
	t.Parallel()

	pong := make(chan string, 1)
	creds := fakeServer(t, func(conn *websocket.Conn) {
		send(t, conn, openPacket)
		assert.Equal(t, `40{"userId":"user-1"}`, receive(t, conn))
		send(t, conn, `40{"sid":"s1"}`)
		send(t, conn, "2")
		pong <- receive(t, conn)
		send(t, conn, `42["wallet:created",{"id":"w9"}]`)
		send(t, conn, `42["subscription:updated",{"tier":"pro","isActive":true}]`)
		// hold the connection until the client goes away
		_, _, _ = conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	var updates []ports.SubscriptionUpdate
	err := NewWatcher().Subscribe(ctx, creds, "user-1", func(update ports.SubscriptionUpdate) error {
		updates = append(updates, update)
		cancel()
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, "3", <-pong)
	require.Len(t, updates, 1)
	assert.Equal(t, ports.SubscriptionUpdate{Tier: domain.TierPro, IsActive: true}, updates[0])
}

func TestSubscribeStopsOnHandlerError(t *testing.T) {
	t.Parallel()

	creds := fakeServer(t, func(conn *websocket.Conn) {
		send(t, conn, openPacket)
		receive(t, conn)
		send(t, conn, `42["subscription:updated",{"tier":"free","isActive":false}]`)
		_, _, _ = conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := NewWatcher().Subscribe(ctx, creds, "user-1", func(ports.SubscriptionUpdate) error {
		return assert.AnError
	})

	assert.ErrorIs(t, err, assert.AnError)
}

func TestSubscribeReportsConnectError(t *testing.T) {
	t.Parallel()

	creds := fakeServer(t, func(conn *websocket.Conn) {
		send(t, conn, openPacket)
		receive(t, conn)
		send(t, conn, `44{"message":"unauthorized"}`)
		_, _, _ = conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := NewWatcher().Subscribe(ctx, creds, "user-1", func(ports.SubscriptionUpdate) error {
		t.Fatal("no update expected")
		return nil
	})

	require.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), "unauthorized"))
}

func TestSubscribeServerDisconnect(t *testing.T) {
	t.Parallel()

	creds := fakeServer(t, func(conn *websocket.Conn) {
		send(t, conn, openPacket)
		receive(t, conn)
		send(t, conn, "41")
		_, _, _ = conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := NewWatcher().Subscribe(ctx, creds, "user-1", func(ports.SubscriptionUpdate) error { return nil })
	assert.ErrorIs(t, err, ErrServerClosed)
}

func TestSubscribeRejectsBadOpenPacket(t *testing.T) {
	t.Parallel()

	creds := fakeServer(t, func(conn *websocket.Conn) {
		send(t, conn, "hello")
		_, _, _ = conn.ReadMessage()
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	err := NewWatcher().Subscribe(ctx, creds, "user-1", func(ports.SubscriptionUpdate) error { return nil })
	require.Error(t, err)
	assert.ErrorContains(t, err, "unexpected open packet")
}

func TestDecodeEvent(t *testing.T) {
	t.Parallel()

	name, payload, err := decodeEvent([]byte(`/billing,17["subscription:updated",{"tier":"pro_plus"}]`))
	require.NoError(t, err)
	assert.Equal(t, "subscription:updated", name)
	assert.JSONEq(t, `{"tier":"pro_plus"}`, string(payload))

	name, payload, err = decodeEvent([]byte(`["ping"]`))
	require.NoError(t, err)
	assert.Equal(t, "ping", name)
	assert.JSONEq(t, `{}`, string(payload))

	_, _, err = decodeEvent([]byte(`nothing`))
	assert.Error(t, err)
}

func TestAuthHeader(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Bearer t", authHeader(ports.Credentials{Token: "t"}).Get("Authorization"))
	assert.Equal(t, "accessToken=s", authHeader(ports.Credentials{Method: domain.AuthMethodSession, Token: "s"}).Get("Cookie"))
	assert.Empty(t, authHeader(ports.Credentials{}))
}
