package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/mcdev12/skirmish/internal/events"
	"github.com/mcdev12/skirmish/internal/session"
)

// Dispatcher is what the gateway needs from the room registry.
type Dispatcher interface {
	Dispatch(ctx context.Context, roomID string, cmd session.Command) error
}

// ConnectionManager manages the websocket seats of every room and is the
// session's primary Broadcaster.
type ConnectionManager struct {
	// Connection pools organized by room ID
	roomConnections map[string]map[*Connection]bool
	mu              sync.RWMutex

	upgrader   websocket.Upgrader
	config     ConnectionConfig
	dispatcher Dispatcher

	broadcastCh chan broadcastMessage
}

// Connection represents one player's websocket seat in a room.
type Connection struct {
	ID       string
	PlayerID string
	RoomID   string
	Conn     *websocket.Conn
	Send     chan []byte
	Manager  *ConnectionManager

	ConnectedAt time.Time
	LastPing    time.Time
}

// ConnectionConfig holds configuration for websocket connections.
type ConnectionConfig struct {
	WriteTimeout    time.Duration
	ReadTimeout     time.Duration
	PingInterval    time.Duration
	MaxMessageSize  int64
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

type broadcastMessage struct {
	RoomID   string
	PlayerID string // if set, only this player's seats receive the event
	Event    events.Event
}

// DefaultConnectionConfig returns default websocket configuration.
func DefaultConnectionConfig() ConnectionConfig {
	return ConnectionConfig{
		WriteTimeout:    10 * time.Second,
		ReadTimeout:     60 * time.Second,
		PingInterval:    30 * time.Second,
		MaxMessageSize:  1024,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Allow all origins in development - restrict in production
			return true
		},
	}
}

// NewConnectionManager creates a websocket connection manager routing
// inbound commands to the given dispatcher.
func NewConnectionManager(config ConnectionConfig, dispatcher Dispatcher) *ConnectionManager {
	return &ConnectionManager{
		roomConnections: make(map[string]map[*Connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config:      config,
		dispatcher:  dispatcher,
		broadcastCh: make(chan broadcastMessage, 1000),
	}
}

// Start processes broadcast messages until ctx is cancelled.
func (cm *ConnectionManager) Start(ctx context.Context) {
	log.Info().Msg("connection manager started")
	for {
		select {
		case <-ctx.Done():
			log.Info().Msg("connection manager shutting down")
			return
		case message := <-cm.broadcastCh:
			cm.handleBroadcast(message)
		}
	}
}

// UpgradeConnection upgrades an HTTP request to a websocket seat for the
// given player in the given room.
func (cm *ConnectionManager) UpgradeConnection(w http.ResponseWriter, r *http.Request, playerID, roomID string) error {
	conn, err := cm.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("failed to upgrade websocket connection")
		return fmt.Errorf("failed to upgrade connection: %w", err)
	}

	connection := &Connection{
		ID:          uuid.New().String(),
		PlayerID:    playerID,
		RoomID:      roomID,
		Conn:        conn,
		Send:        make(chan []byte, 256),
		Manager:     cm,
		ConnectedAt: time.Now(),
		LastPing:    time.Now(),
	}

	cm.registerConnection(connection)

	go connection.writePump()
	go connection.readPump()

	log.Info().
		Str("connection_id", connection.ID).
		Str("player_id", playerID).
		Str("room_id", roomID).
		Msg("websocket connection established")
	return nil
}

func (cm *ConnectionManager) registerConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if cm.roomConnections[conn.RoomID] == nil {
		cm.roomConnections[conn.RoomID] = make(map[*Connection]bool)
	}
	cm.roomConnections[conn.RoomID][conn] = true

	log.Debug().
		Str("connection_id", conn.ID).
		Str("room_id", conn.RoomID).
		Int("total_connections", len(cm.roomConnections[conn.RoomID])).
		Msg("connection registered")
}

func (cm *ConnectionManager) unregisterConnection(conn *Connection) {
	cm.mu.Lock()
	defer cm.mu.Unlock()

	if connections, exists := cm.roomConnections[conn.RoomID]; exists {
		if _, exists := connections[conn]; exists {
			delete(connections, conn)
			close(conn.Send)

			if len(connections) == 0 {
				delete(cm.roomConnections, conn.RoomID)
			}

			log.Info().
				Str("connection_id", conn.ID).
				Str("player_id", conn.PlayerID).
				Str("room_id", conn.RoomID).
				Msg("connection unregistered")
		}
	}
}

// ToRoom queues an event for every seat in the room. Never blocks.
func (cm *ConnectionManager) ToRoom(roomID string, event events.Event) {
	select {
	case cm.broadcastCh <- broadcastMessage{RoomID: roomID, Event: event}:
	default:
		log.Warn().Str("room_id", roomID).Msg("broadcast channel full, dropping message")
	}
}

// ToPlayer queues an event for one player's seats only. Never blocks.
func (cm *ConnectionManager) ToPlayer(roomID, playerID string, event events.Event) {
	select {
	case cm.broadcastCh <- broadcastMessage{RoomID: roomID, PlayerID: playerID, Event: event}:
	default:
		log.Warn().
			Str("room_id", roomID).
			Str("player_id", playerID).
			Msg("broadcast channel full, dropping player message")
	}
}

func (cm *ConnectionManager) handleBroadcast(message broadcastMessage) {
	cm.mu.RLock()
	connections, exists := cm.roomConnections[message.RoomID]
	if !exists {
		cm.mu.RUnlock()
		return
	}

	// Snapshot so the lock is not held during the sends.
	var targets []*Connection
	for conn := range connections {
		if message.PlayerID != "" && conn.PlayerID != message.PlayerID {
			continue
		}
		targets = append(targets, conn)
	}
	cm.mu.RUnlock()

	eventData, err := json.Marshal(message.Event)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal event for broadcast")
		return
	}

	for _, conn := range targets {
		select {
		case conn.Send <- eventData:
		default:
			log.Warn().
				Str("connection_id", conn.ID).
				Str("player_id", conn.PlayerID).
				Msg("connection send buffer full, closing connection")
			cm.unregisterConnection(conn)
			conn.Conn.Close()
		}
	}

	log.Debug().
		Str("event_type", string(message.Event.Type)).
		Str("room_id", message.RoomID).
		Int("connections", len(targets)).
		Msg("event broadcasted")
}

// ConnectionStats returns counts of active seats per room.
func (cm *ConnectionManager) ConnectionStats() (total int, perRoom map[string]int) {
	cm.mu.RLock()
	defer cm.mu.RUnlock()

	perRoom = make(map[string]int)
	for roomID, connections := range cm.roomConnections {
		perRoom[roomID] = len(connections)
		total += len(connections)
	}
	return total, perRoom
}

// writePump sends queued events and pings on one connection.
func (c *Connection) writePump() {
	ticker := time.NewTicker(c.Manager.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.Conn.Close()
		c.Manager.unregisterConnection(c)
	}()

	for {
		select {
		case message, ok := <-c.Send:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if !ok {
				c.Conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.Conn.WriteMessage(websocket.TextMessage, message); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to write message to websocket")
				return
			}

		case <-ticker.C:
			c.Conn.SetWriteDeadline(time.Now().Add(c.Manager.config.WriteTimeout))
			if err := c.Conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("failed to send ping")
				return
			}
			c.LastPing = time.Now()
		}
	}
}

// readPump consumes inbound commands. When the socket drops, the player is
// reported as abandoned so the room reacts as if they left.
func (c *Connection) readPump() {
	defer func() {
		c.Manager.unregisterConnection(c)
		c.Conn.Close()
		c.abandon()
	}()

	c.Conn.SetReadLimit(c.Manager.config.MaxMessageSize)
	c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	c.Conn.SetPongHandler(func(string) error {
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
		c.LastPing = time.Now()
		return nil
	})

	for {
		_, message, err := c.Conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.Error().
					Err(err).
					Str("connection_id", c.ID).
					Msg("unexpected websocket close error")
			}
			break
		}

		c.handleClientMessage(message)
		c.Conn.SetReadDeadline(time.Now().Add(c.Manager.config.ReadTimeout))
	}
}

// handleClientMessage parses one inbound command and routes it to the room.
// Rejections come back to this seat as error events; nothing here blocks the
// room loop.
func (c *Connection) handleClientMessage(message []byte) {
	var cmd session.Command
	if err := json.Unmarshal(message, &cmd); err != nil {
		log.Debug().
			Err(err).
			Str("connection_id", c.ID).
			Msg("discarding malformed client message")
		return
	}
	// The seat, not the payload, decides who the command is from.
	cmd.PlayerID = c.PlayerID

	ctx, cancel := context.WithTimeout(context.Background(), c.Manager.config.WriteTimeout)
	defer cancel()
	if err := c.Manager.dispatcher.Dispatch(ctx, c.RoomID, cmd); err != nil {
		log.Debug().
			Err(err).
			Str("connection_id", c.ID).
			Str("command", string(cmd.Type)).
			Msg("command rejected")
	}
}

// abandon tells the room this player's connection is gone.
func (c *Connection) abandon() {
	ctx, cancel := context.WithTimeout(context.Background(), c.Manager.config.WriteTimeout)
	defer cancel()
	err := c.Manager.dispatcher.Dispatch(ctx, c.RoomID, session.Command{
		PlayerID: c.PlayerID,
		Type:     session.CmdAbandon,
	})
	if err != nil {
		log.Debug().
			Err(err).
			Str("connection_id", c.ID).
			Str("player_id", c.PlayerID).
			Msg("abandon dispatch after disconnect failed")
	}
}
