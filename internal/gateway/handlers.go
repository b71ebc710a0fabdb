package gateway

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/mcdev12/skirmish/internal/board"
	"github.com/mcdev12/skirmish/internal/rooms"
)

// Handler exposes the HTTP surface: room lifecycle plus the websocket
// upgrade endpoint.
type Handler struct {
	rooms             *rooms.Manager
	repo              board.Repository
	connectionManager *ConnectionManager
}

// NewHandler creates the HTTP handler set.
func NewHandler(roomManager *rooms.Manager, repo board.Repository, cm *ConnectionManager) *Handler {
	return &Handler{rooms: roomManager, repo: repo, connectionManager: cm}
}

// RegisterRoutes registers all routes with an HTTP mux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /rooms", h.handleCreateRoom)
	mux.HandleFunc("POST /rooms/{roomID}/join", h.handleJoinRoom)
	mux.HandleFunc("GET /maps", h.handleListMaps)
	mux.HandleFunc("/ws/room", h.handleRoomConnection)
	mux.HandleFunc("GET /ws/stats", h.handleConnectionStats)
}

func (h *Handler) handleCreateRoom(w http.ResponseWriter, r *http.Request) {
	var req struct {
		MapID string `json:"mapId"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.MapID == "" {
		http.Error(w, "mapId is required", http.StatusBadRequest)
		return
	}

	roomID, err := h.rooms.CreateRoom(r.Context(), req.MapID)
	if err != nil {
		if errors.Is(err, board.ErrMapNotFound) {
			http.Error(w, "map not found", http.StatusNotFound)
			return
		}
		log.Error().Err(err).Str("map_id", req.MapID).Msg("failed to create room")
		http.Error(w, "failed to create room", http.StatusInternalServerError)
		return
	}

	writeJSON(w, http.StatusCreated, map[string]string{"roomId": roomID})
}

func (h *Handler) handleJoinRoom(w http.ResponseWriter, r *http.Request) {
	roomID := r.PathValue("roomID")
	var req struct {
		Name   string `json:"name"`
		Avatar string `json:"avatar"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Name == "" {
		http.Error(w, "name is required", http.StatusBadRequest)
		return
	}

	player, err := h.rooms.Join(r.Context(), roomID, req.Name, req.Avatar)
	if err != nil {
		if errors.Is(err, rooms.ErrUnknownRoom) {
			http.Error(w, "room not found", http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	writeJSON(w, http.StatusOK, player)
}

func (h *Handler) handleListMaps(w http.ResponseWriter, r *http.Request) {
	maps, err := h.repo.ListMaps(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list maps")
		http.Error(w, "failed to list maps", http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, maps)
}

// handleRoomConnection upgrades a player's websocket seat. The room and
// player ids come from query parameters; in production the player id would
// be bound to an authenticated session.
func (h *Handler) handleRoomConnection(w http.ResponseWriter, r *http.Request) {
	roomID := r.URL.Query().Get("room_id")
	if roomID == "" {
		http.Error(w, "room_id is required", http.StatusBadRequest)
		return
	}
	playerID := r.URL.Query().Get("player_id")
	if playerID == "" {
		http.Error(w, "player_id is required", http.StatusBadRequest)
		return
	}
	if _, ok := h.rooms.Session(roomID); !ok {
		http.Error(w, "room not found", http.StatusNotFound)
		return
	}

	if err := h.connectionManager.UpgradeConnection(w, r, playerID, roomID); err != nil {
		log.Error().
			Err(err).
			Str("room_id", roomID).
			Str("player_id", playerID).
			Msg("failed to upgrade websocket connection")
	}
}

func (h *Handler) handleConnectionStats(w http.ResponseWriter, r *http.Request) {
	total, perRoom := h.connectionManager.ConnectionStats()
	writeJSON(w, http.StatusOK, map[string]any{
		"totalConnections": total,
		"activeRooms":      len(perRoom),
		"roomConnections":  perRoom,
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to write response")
	}
}
