package service

// RoomService is the thin facade the controllers talk to. It exists so
// the transport layer never reaches into the manager's state directly.
type RoomService struct {
	roomManager *RoomManager
}

func NewRoomService(roomManager *RoomManager) *RoomService {
	return &RoomService{
		roomManager: roomManager,
	}
}

func (rs *RoomService) Join(roomID, username, connID string, conn Sender) {
	rs.roomManager.Join(roomID, username, connID, conn)
}

func (rs *RoomService) StartHolding(roomID, connID string) {
	rs.roomManager.StartHolding(roomID, connID)
}

func (rs *RoomService) StopHolding(roomID, connID string) {
	rs.roomManager.StopHolding(roomID, connID)
}

func (rs *RoomService) LeaveRoom(roomID, connID string) {
	rs.roomManager.LeaveRoom(roomID, connID)
}

func (rs *RoomService) Disconnect(connID string) {
	rs.roomManager.Disconnect(connID)
}

func (rs *RoomService) ListRooms() []RoomSummary {
	return rs.roomManager.ListRooms()
}

func (rs *RoomService) GetRoomSnapshot(roomID string) (RoomSnapshot, error) {
	return rs.roomManager.GetRoomSnapshot(roomID)
}
