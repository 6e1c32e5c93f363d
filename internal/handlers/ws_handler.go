package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"sync"
	"time"

	"country-explorer/internal/countries"
	"country-explorer/internal/lookup"
	"country-explorer/internal/middleware"
	"country-explorer/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// UI actions accepted on the websocket.
const (
	ActionSearch   = "search"
	ActionRandom   = "random"
	ActionRegion   = "region"
	ActionNeighbor = "neighbor"
)

// WSAction is a UI trigger sent by the page.
type WSAction struct {
	Action string `json:"action"`
	Query  string `json:"query,omitempty"`
	Region string `json:"region,omitempty"`
	Name   string `json:"name,omitempty"`
}

// sendBuffer is the number of frames queued per connection before new ones
// are dropped.
const sendBuffer = 64

// wsClient implements realtime.Client by wrapping a websocket connection.
// Frames are queued in send and written by writePump, so Send never waits on
// the network.
type wsClient struct {
	conn      *websocket.Conn
	send      chan []byte
	done      chan struct{}
	closeOnce sync.Once
}

func newWSClient(conn *websocket.Conn, buffer int) *wsClient {
	return &wsClient{
		conn: conn,
		send: make(chan []byte, buffer),
		done: make(chan struct{}),
	}
}

func (c *wsClient) Send(message []byte) bool {
	if c == nil {
		return false
	}
	select {
	case <-c.done:
		return false
	default:
	}
	select {
	case c.send <- message:
		return true
	default:
		return false
	}
}

func (c *wsClient) Close() {
	if c == nil {
		return
	}
	c.closeOnce.Do(func() {
		close(c.done)
		if c.conn != nil {
			_ = c.conn.Close()
		}
	})
}

// writePump writes queued frames until the client is closed or a write fails.
func (c *wsClient) writePump() {
	for {
		select {
		case <-c.done:
			return
		case message := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				// reader loop will exit on next error
				return
			}
		}
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS is already handled at Gin level; allow upgrade from any origin here
		return true
	},
}

// WebSocketHandler upgrades the connection, registers it under its session and
// runs every UI action received on it as a lookup. Every connection has its own
// controller and only receives the events of its own lookups. The query
// parameter q seeds an initial search. It requires JWT middleware to have set
// "session_id" in context.
func WebSocketHandler(hub *realtime.Hub, source lookup.CountrySource) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.GetString(middleware.SessionIDKey)
		if sessionID == "" {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "Session not authorized"})
			return
		}
		initialQuery := c.Query("q")

		// Upgrade HTTP connection to WebSocket
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Println("websocket upgrade error:", err)
			return
		}

		client := newWSClient(conn, sendBuffer)
		go client.writePump()
		hub.Register(sessionID, client)
		controller := lookup.NewController(source, realtime.NewClientRenderer(client))

		ctx, cancel := context.WithCancel(context.Background())
		var inflight sync.WaitGroup
		run := func(kind lookup.Kind, payload string) {
			inflight.Add(1)
			go func() {
				defer inflight.Done()
				controller.StartLookup(ctx, kind, payload)
			}()
		}

		// Heartbeat: send periodic pings; close on error
		pingTicker := time.NewTicker(30 * time.Second)
		done := make(chan struct{})
		go func() {
			for {
				select {
				case <-done:
					return
				case <-pingTicker.C:
					if err := conn.WriteControl(websocket.PingMessage, []byte("ping"), time.Now().Add(5*time.Second)); err != nil {
						// ping failed; reader loop will exit on next error
						return
					}
				}
			}
		}()
		defer func() {
			close(done)
			pingTicker.Stop()
			cancel()
			hub.Unregister(sessionID, client)
			inflight.Wait()
			client.Close()
		}()

		if initialQuery != "" {
			run(lookup.ByName, initialQuery)
		}

		// Reader loop: dispatch actions and keep connection alive via pong handler
		conn.SetReadLimit(1024)
		conn.SetReadDeadline(time.Now().Add(60 * time.Second))
		conn.SetPongHandler(func(string) error {
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))
			return nil
		})

		for {
			_, data, err := conn.ReadMessage()
			if err != nil {
				// Normal close or error; exit loop
				return
			}
			conn.SetReadDeadline(time.Now().Add(60 * time.Second))

			var action WSAction
			if err := json.Unmarshal(data, &action); err != nil {
				realtime.SendEvent(client, realtime.Event{Type: realtime.EventError, Message: "Invalid message"})
				continue
			}
			switch action.Action {
			case ActionSearch:
				run(lookup.ByName, action.Query)
			case ActionNeighbor:
				run(lookup.ByName, action.Name)
			case ActionRegion:
				if !countries.IsRegion(action.Region) {
					realtime.SendEvent(client, realtime.Event{Type: realtime.EventError, Message: UnknownRegionMessage})
					continue
				}
				run(lookup.ByRegion, strings.ToLower(action.Region))
			case ActionRandom:
				run(lookup.Random, "")
			default:
				realtime.SendEvent(client, realtime.Event{Type: realtime.EventError, Message: "Unknown action"})
			}
		}
	}
}
