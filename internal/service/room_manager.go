// service/room_manager.go
package service

import (
	"encoding/json"
	"errors"
	"sync"

	"github.com/creationsofm7/dontlift-backend/internal/model"
	"github.com/creationsofm7/dontlift-backend/internal/ws"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
)

// ErrRoomNotFound is returned by the read-only snapshot queries. The
// gameplay operations never surface it; a missing room there is a silent
// no-op per the protocol.
var ErrRoomNotFound = errors.New("room not found")

// Sender is the write half of a client connection. *websocket.Conn
// satisfies it; tests substitute an in-memory recorder.
type Sender interface {
	WriteJSON(v interface{}) error
}

// RoomSummary is one row of the room listing.
type RoomSummary struct {
	RoomID      string `json:"roomId"`
	PlayerCount int    `json:"playerCount"`
	IsHeld      bool   `json:"isHeld"`
}

// RoomSnapshot is the full read-only view of a single room.
type RoomSnapshot struct {
	RoomID   string           `json:"roomId"`
	Players  []ws.PlayerEntry `json:"players"`
	IsHeld   bool             `json:"isHeld"`
	HolderID *string          `json:"holderId"`
}

// RoomManager owns every room and its broadcast group. All mutation runs
// under one mutex, so an event is handled to completion before the next
// and concurrent start-holding attempts resolve to a single winner.
type RoomManager struct {
	mu    sync.Mutex
	rooms map[string]*model.Room
	subs  map[string]map[string]Sender // room id -> connection id -> sender
	clock clockwork.Clock
}

func NewRoomManager(clock clockwork.Clock) *RoomManager {
	return &RoomManager{
		rooms: make(map[string]*model.Room),
		subs:  make(map[string]map[string]Sender),
		clock: clock,
	}
}

// Join ensures the room exists, registers the player, and subscribes the
// connection to the room's broadcasts. A rejoin resets the player's score
// and holding state; if the rejoining connection held the button, the hold
// is released first (unscored) and the release is broadcast ahead of the
// refreshed player list.
func (rm *RoomManager) Join(roomID, username, connID string, conn Sender) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		room = model.NewRoom(roomID)
		rm.rooms[roomID] = room
		rm.subs[roomID] = make(map[string]Sender)
	}

	if room.Holder() == connID {
		room.ReleaseHold()
		rm.broadcast(roomID, ws.MessageTypeButtonStateChanged, ws.ButtonStatePayload{
			HolderID: nil,
			IsHeld:   false,
		})
	}

	room.Join(connID, username)
	rm.subs[roomID][connID] = conn

	log.Debug().
		Str("room_id", roomID).
		Str("conn_id", connID).
		Str("username", username).
		Msg("player joined room")

	rm.broadcast(roomID, ws.MessageTypePlayerList, ws.PlayerListPayload{
		Players: room.PlayerEntries(),
	})
}

// StartHolding claims the button for the connection and announces the new
// holder. Missing room, non-member caller, or an already held button are
// all silent no-ops.
func (rm *RoomManager) StartHolding(roomID, connID string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		return
	}
	if !room.StartHolding(connID, rm.clock.Now()) {
		log.Debug().
			Str("room_id", roomID).
			Str("conn_id", connID).
			Msg("startHolding ignored")
		return
	}

	holderID := connID
	rm.broadcast(roomID, ws.MessageTypeButtonStateChanged, ws.ButtonStatePayload{
		HolderID: &holderID,
		IsHeld:   true,
	})
}

// StopHolding releases the button, credits the hold duration to the
// holder's score, and announces the release followed by the new score.
// The state-change broadcast precedes the score broadcast so clients
// update the button before the leaderboard. A stop from anyone but the
// current holder is a silent no-op.
func (rm *RoomManager) StopHolding(roomID, connID string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		return
	}
	score, ok := room.StopHolding(connID, rm.clock.Now())
	if !ok {
		log.Debug().
			Str("room_id", roomID).
			Str("conn_id", connID).
			Msg("stopHolding ignored")
		return
	}

	log.Debug().
		Str("room_id", roomID).
		Str("conn_id", connID).
		Float64("score", score).
		Msg("hold scored")

	rm.broadcast(roomID, ws.MessageTypeButtonStateChanged, ws.ButtonStatePayload{
		HolderID: nil,
		IsHeld:   false,
	})
	rm.broadcast(roomID, ws.MessageTypeScoreUpdated, ws.ScoreUpdatedPayload{
		PlayerID: connID,
		Score:    score,
	})
}

// LeaveRoom removes the connection's player from one room. An in-progress
// hold is forfeited without scoring.
func (rm *RoomManager) LeaveRoom(roomID, connID string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[roomID]
	if !exists || !room.HasPlayer(connID) {
		return
	}
	rm.removePlayer(roomID, room, connID)
}

// Disconnect removes the connection from every room it occupies, applied
// independently per room.
func (rm *RoomManager) Disconnect(connID string) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	for roomID, room := range rm.rooms {
		if room.HasPlayer(connID) {
			rm.removePlayer(roomID, room, connID)
		}
	}
}

// removePlayer is the shared leave/disconnect path. Caller holds rm.mu.
// The connection is unsubscribed before anything is broadcast, so only
// the remaining members see the release and the player-left notice, in
// that order.
func (rm *RoomManager) removePlayer(roomID string, room *model.Room, connID string) {
	delete(rm.subs[roomID], connID)

	if room.Holder() == connID {
		room.ReleaseHold()
		rm.broadcast(roomID, ws.MessageTypeButtonStateChanged, ws.ButtonStatePayload{
			HolderID: nil,
			IsHeld:   false,
		})
	}

	room.RemovePlayer(connID)

	log.Debug().
		Str("room_id", roomID).
		Str("conn_id", connID).
		Msg("player left room")

	rm.broadcast(roomID, ws.MessageTypePlayerLeft, ws.PlayerLeftPayload{
		PlayerID: connID,
	})
}

// ListRooms returns a summary of every room, including empty ones, which
// persist by design.
func (rm *RoomManager) ListRooms() []RoomSummary {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	summaries := make([]RoomSummary, 0, len(rm.rooms))
	for roomID, room := range rm.rooms {
		summaries = append(summaries, RoomSummary{
			RoomID:      roomID,
			PlayerCount: room.PlayerCount(),
			IsHeld:      room.IsHeld(),
		})
	}
	return summaries
}

// GetRoomSnapshot returns the full view of one room, or ErrRoomNotFound.
// It never creates rooms.
func (rm *RoomManager) GetRoomSnapshot(roomID string) (RoomSnapshot, error) {
	rm.mu.Lock()
	defer rm.mu.Unlock()

	room, exists := rm.rooms[roomID]
	if !exists {
		return RoomSnapshot{}, ErrRoomNotFound
	}

	snapshot := RoomSnapshot{
		RoomID:  roomID,
		Players: room.PlayerEntries(),
		IsHeld:  room.IsHeld(),
	}
	if holder := room.Holder(); holder != "" {
		snapshot.HolderID = &holder
	}
	return snapshot, nil
}

// broadcast fans a message out to every subscriber of the room, in the
// order the manager issued it. Caller holds rm.mu, which keeps the per
// connection delivery order equal to the emit order. A connection that
// fails to take the write is dropped from the group; its player entry is
// cleaned up by the controller's disconnect path.
func (rm *RoomManager) broadcast(roomID string, msgType ws.MessageType, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("room_id", roomID).Msg("failed to marshal broadcast payload")
		return
	}
	msg := ws.Message{Type: msgType, Payload: data}

	for connID, conn := range rm.subs[roomID] {
		if err := conn.WriteJSON(msg); err != nil {
			log.Warn().
				Err(err).
				Str("room_id", roomID).
				Str("conn_id", connID).
				Msg("dropping unwritable connection from broadcast group")
			delete(rm.subs[roomID], connID)
		}
	}
}
