package handlers

import (
	"net"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"country-explorer/internal/auth"
	"country-explorer/internal/middleware"
	"country-explorer/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

// startWSServer serves the websocket route and returns its ws:// url.
func startWSServer(t *testing.T) (string, *realtime.Hub) {
	t.Helper()
	_, repo, _ := newTestRepository(t)
	hub := realtime.NewHub()

	r := gin.New()
	r.GET("/ws", middleware.JWTAuthMiddleware(), WebSocketHandler(hub, repo))
	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http") + "/ws", hub
}

func dial(t *testing.T, wsURL, token, query string) *websocket.Conn {
	t.Helper()
	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?token="+token+query, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func dialSession(t *testing.T, query string) (*websocket.Conn, *realtime.Hub) {
	t.Helper()
	wsURL, hub := startWSServer(t)
	token, _, err := auth.GenerateToken("session-ws")
	require.NoError(t, err)
	return dial(t, wsURL, token, query), hub
}

// readUntil reads events until one of type eventType arrives.
func readUntil(t *testing.T, conn *websocket.Conn, eventType string) realtime.Event {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var ev realtime.Event
		require.NoError(t, conn.ReadJSON(&ev))
		if ev.Type == eventType {
			return ev
		}
	}
}

func TestWebSocket_SearchAction(t *testing.T) {
	conn, _ := dialSession(t, "")

	require.NoError(t, conn.WriteJSON(WSAction{Action: ActionSearch, Query: "Germany"}))

	ev := readUntil(t, conn, realtime.EventCountry)
	require.Equal(t, "Germany", ev.Country.CommonName)
	require.NotNil(t, ev.Display)

	ev = readUntil(t, conn, realtime.EventNeighbors)
	require.Len(t, ev.Neighbors, 2)

	ev = readUntil(t, conn, realtime.EventLoading)
	require.False(t, *ev.Loading)
}

func TestWebSocket_InitialQuery(t *testing.T) {
	conn, _ := dialSession(t, "&q=Iceland")

	ev := readUntil(t, conn, realtime.EventCountry)
	require.Equal(t, "Iceland", ev.Country.CommonName)
	readUntil(t, conn, realtime.EventHideNeighbors)
}

func TestWebSocket_NeighborAndRegionActions(t *testing.T) {
	conn, _ := dialSession(t, "")

	require.NoError(t, conn.WriteJSON(WSAction{Action: ActionNeighbor, Name: "Spain"}))
	ev := readUntil(t, conn, realtime.EventCountry)
	require.Equal(t, "Spain", ev.Country.CommonName)
	readUntil(t, conn, realtime.EventLoading)

	require.NoError(t, conn.WriteJSON(WSAction{Action: ActionRegion, Region: "oceania"}))
	ev = readUntil(t, conn, realtime.EventCountry)
	require.Equal(t, "New Zealand", ev.Country.CommonName)
}

func TestWebSocket_NotFoundAndUnknownAction(t *testing.T) {
	conn, _ := dialSession(t, "")

	require.NoError(t, conn.WriteJSON(WSAction{Action: ActionSearch, Query: "Atlantis"}))
	ev := readUntil(t, conn, realtime.EventError)
	require.Equal(t, "Country not found", ev.Message)

	require.NoError(t, conn.WriteJSON(WSAction{Action: "dance"}))
	ev = readUntil(t, conn, realtime.EventError)
	require.Equal(t, "Unknown action", ev.Message)
}

func TestWebSocket_UnregistersOnClose(t *testing.T) {
	conn, hub := dialSession(t, "")

	require.NoError(t, conn.WriteJSON(WSAction{Action: ActionSearch, Query: "Spain"}))
	readUntil(t, conn, realtime.EventCountry)
	require.Equal(t, 1, hub.Sessions())

	require.NoError(t, conn.Close())
	require.Eventually(t, func() bool { return hub.Sessions() == 0 }, 5*time.Second, 10*time.Millisecond)
}

func TestWebSocket_UnknownRegion(t *testing.T) {
	conn, _ := dialSession(t, "")

	require.NoError(t, conn.WriteJSON(WSAction{Action: ActionRegion, Region: "narnia"}))
	ev := readUntil(t, conn, realtime.EventError)
	require.Equal(t, UnknownRegionMessage, ev.Message)

	// the connection keeps serving after the rejected action
	require.NoError(t, conn.WriteJSON(WSAction{Action: ActionRegion, Region: "Oceania"}))
	ev = readUntil(t, conn, realtime.EventCountry)
	require.Equal(t, "New Zealand", ev.Country.CommonName)
}

func TestWebSocket_ConnectionsOfOneSessionAreIsolated(t *testing.T) {
	wsURL, hub := startWSServer(t)
	token, _, err := auth.GenerateToken("shared")
	require.NoError(t, err)
	first := dial(t, wsURL, token, "")
	second := dial(t, wsURL, token, "")
	require.Eventually(t, func() bool { return hub.Clients("shared") == 2 }, 5*time.Second, 10*time.Millisecond)

	require.NoError(t, first.WriteJSON(WSAction{Action: ActionSearch, Query: "Germany"}))
	ev := readUntil(t, first, realtime.EventCountry)
	require.Equal(t, "Germany", ev.Country.CommonName)
	readUntil(t, first, realtime.EventLoading)

	// the idle connection gets nothing from the other connection's lookup
	require.NoError(t, second.SetReadDeadline(time.Now().Add(300*time.Millisecond)))
	_, _, err = second.ReadMessage()
	require.Error(t, err)
	var netErr net.Error
	require.ErrorAs(t, err, &netErr)
	require.True(t, netErr.Timeout())
}

func TestWSClient_SendDoesNotBlock(t *testing.T) {
	client := newWSClient(nil, 2)

	results := make(chan []bool, 1)
	go func() {
		// the third frame overflows the buffer with no writer running
		results <- []bool{client.Send([]byte("a")), client.Send([]byte("b")), client.Send([]byte("c"))}
	}()
	select {
	case got := <-results:
		require.Equal(t, []bool{true, true, false}, got)
	case <-time.After(time.Second):
		t.Fatal("Send blocked on a full buffer")
	}

	client.Close()
	client.Close()
	require.False(t, client.Send([]byte("d")))
}
