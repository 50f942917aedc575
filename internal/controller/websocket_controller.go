package controller

import (
	"encoding/json"

	"github.com/creationsofm7/dontlift-backend/internal/service"
	"github.com/creationsofm7/dontlift-backend/internal/ws"
	"github.com/gofiber/websocket/v2"
	"github.com/rs/zerolog/log"
)

// wsHandler processes one inbound client event. Handlers never reply to
// the sender directly; every precondition failure is a silent no-op.
type wsHandler func(conn *websocket.Conn, connID string, payload json.RawMessage)

type WebSocketController struct {
	roomService *service.RoomService
	handlers    map[ws.MessageType]wsHandler
}

func NewWebSocketController(roomService *service.RoomService) *WebSocketController {
	wsc := &WebSocketController{
		roomService: roomService,
	}
	wsc.handlers = map[ws.MessageType]wsHandler{
		ws.MessageTypeJoinRoom:     wsc.handleJoinRoom,
		ws.MessageTypeStartHolding: wsc.handleStartHolding,
		ws.MessageTypeStopHolding:  wsc.handleStopHolding,
		ws.MessageTypeLeaveRoom:    wsc.handleLeaveRoom,
	}
	return wsc
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	connID := c.Locals("connID").(string)
	log.Info().Str("conn_id", connID).Msg("connection established")

	// Message handling loop
	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			log.Debug().Err(err).Str("conn_id", connID).Msg("read loop ended")
			break
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			log.Debug().Err(err).Str("conn_id", connID).Msg("ignoring unparseable message")
			continue
		}

		handler, ok := wsc.handlers[msg.Type]
		if !ok {
			log.Debug().Str("conn_id", connID).Str("type", string(msg.Type)).Msg("ignoring unknown message type")
			continue
		}
		handler(c, connID, msg.Payload)
	}

	// Clean up when connection closes
	wsc.roomService.Disconnect(connID)
	log.Info().Str("conn_id", connID).Msg("connection closed")
}

func (wsc *WebSocketController) handleJoinRoom(conn *websocket.Conn, connID string, payload json.RawMessage) {
	var p ws.JoinRoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Debug().Err(err).Str("conn_id", connID).Msg("ignoring malformed joinRoom payload")
		return
	}
	wsc.roomService.Join(p.RoomID, p.Username, connID, conn)
}

func (wsc *WebSocketController) handleStartHolding(_ *websocket.Conn, connID string, payload json.RawMessage) {
	var p ws.RoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Debug().Err(err).Str("conn_id", connID).Msg("ignoring malformed startHolding payload")
		return
	}
	wsc.roomService.StartHolding(p.RoomID, connID)
}

func (wsc *WebSocketController) handleStopHolding(_ *websocket.Conn, connID string, payload json.RawMessage) {
	var p ws.RoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Debug().Err(err).Str("conn_id", connID).Msg("ignoring malformed stopHolding payload")
		return
	}
	wsc.roomService.StopHolding(p.RoomID, connID)
}

func (wsc *WebSocketController) handleLeaveRoom(_ *websocket.Conn, connID string, payload json.RawMessage) {
	var p ws.RoomPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		log.Debug().Err(err).Str("conn_id", connID).Msg("ignoring malformed leaveRoom payload")
		return
	}
	wsc.roomService.LeaveRoom(p.RoomID, connID)
}
