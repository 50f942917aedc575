package ws

import (
	"encoding/json"
)

// MessageType represents the different kinds of messages our system can handle
type MessageType string

const (
	// Client -> server
	MessageTypeJoinRoom     MessageType = "joinRoom"
	MessageTypeStartHolding MessageType = "startHolding"
	MessageTypeStopHolding  MessageType = "stopHolding"
	MessageTypeLeaveRoom    MessageType = "leaveRoom"

	// Server -> room
	MessageTypePlayerList         MessageType = "playerList"
	MessageTypeButtonStateChanged MessageType = "buttonStateChanged"
	MessageTypeScoreUpdated       MessageType = "scoreUpdated"
	MessageTypePlayerLeft         MessageType = "playerLeft"
)

// Message represents a WebSocket message in our system
type Message struct {
	Type    MessageType     `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

// JoinRoomPayload is sent by a client that wants to enter a room.
type JoinRoomPayload struct {
	RoomID   string `json:"roomId"`
	Username string `json:"username"`
}

// RoomPayload covers the room-only client events (startHolding,
// stopHolding, leaveRoom).
type RoomPayload struct {
	RoomID string `json:"roomId"`
}

// PlayerEntry is one row of a playerList broadcast. The player id is the
// connection identity assigned by the transport.
type PlayerEntry struct {
	ID        string  `json:"id"`
	Username  string  `json:"username"`
	Score     float64 `json:"score"`
	IsHolding bool    `json:"isHolding"`
}

type PlayerListPayload struct {
	Players []PlayerEntry `json:"players"`
}

// ButtonStatePayload announces the room's holder. HolderID is null when
// the button is released.
type ButtonStatePayload struct {
	HolderID *string `json:"holderId"`
	IsHeld   bool    `json:"isHeld"`
}

type ScoreUpdatedPayload struct {
	PlayerID string  `json:"playerId"`
	Score    float64 `json:"score"`
}

type PlayerLeftPayload struct {
	PlayerID string `json:"playerId"`
}
