package model

import (
	"sort"
	"time"

	"github.com/creationsofm7/dontlift-backend/internal/ws"
)

// Player is the per-room state for one connection.
type Player struct {
	Username  string
	Score     float64
	IsHolding bool
}

// The Room struct focuses on a single room's state: who is in it and who,
// if anyone, is holding the button. It carries no locking of its own; the
// RoomManager serializes all access.
type Room struct {
	ID            string
	players       map[string]*Player // connection id -> player
	currentHolder string             // empty when the button is free
	holdStartedAt time.Time          // zero iff currentHolder is empty
}

func NewRoom(id string) *Room {
	return &Room{
		ID:      id,
		players: make(map[string]*Player),
	}
}

// Join inserts a player entry for the connection, overwriting any prior
// entry. A rejoin resets score and holding state rather than merging.
func (r *Room) Join(connID, username string) {
	r.players[connID] = &Player{
		Username:  username,
		Score:     0,
		IsHolding: false,
	}
}

// StartHolding claims the button for the connection. It reports false,
// leaving the room untouched, when the button is already held or the
// connection is not a member.
func (r *Room) StartHolding(connID string, now time.Time) bool {
	if r.currentHolder != "" {
		return false
	}
	player, ok := r.players[connID]
	if !ok {
		return false
	}
	r.currentHolder = connID
	r.holdStartedAt = now
	player.IsHolding = true
	return true
}

// StopHolding releases the button and awards the elapsed hold duration in
// seconds to the holder's score. It reports false when the connection is
// not the current holder.
func (r *Room) StopHolding(connID string, now time.Time) (float64, bool) {
	if r.currentHolder != connID {
		return 0, false
	}
	player := r.players[connID]
	player.Score += now.Sub(r.holdStartedAt).Seconds()
	player.IsHolding = false
	r.currentHolder = ""
	r.holdStartedAt = time.Time{}
	return player.Score, true
}

// ReleaseHold clears the holder state without awarding any score, the
// forfeit path for a holder that disconnects or leaves mid-hold. It
// reports whether the button was held.
func (r *Room) ReleaseHold() bool {
	if r.currentHolder == "" {
		return false
	}
	if player, ok := r.players[r.currentHolder]; ok {
		player.IsHolding = false
	}
	r.currentHolder = ""
	r.holdStartedAt = time.Time{}
	return true
}

// RemovePlayer deletes the connection's player entry. The caller must
// release the hold first if the connection is the current holder.
func (r *Room) RemovePlayer(connID string) {
	delete(r.players, connID)
}

func (r *Room) HasPlayer(connID string) bool {
	_, ok := r.players[connID]
	return ok
}

// Holder returns the current holder's connection id, or "" when the
// button is free.
func (r *Room) Holder() string {
	return r.currentHolder
}

func (r *Room) IsHeld() bool {
	return r.currentHolder != ""
}

func (r *Room) PlayerCount() int {
	return len(r.players)
}

// PlayerEntries returns the room's players as the client-facing list,
// ordered by id for stable output.
func (r *Room) PlayerEntries() []ws.PlayerEntry {
	entries := make([]ws.PlayerEntry, 0, len(r.players))
	for id, player := range r.players {
		entries = append(entries, ws.PlayerEntry{
			ID:        id,
			Username:  player.Username,
			Score:     player.Score,
			IsHolding: player.IsHolding,
		})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })
	return entries
}
