package controller

import (
	"errors"

	"github.com/creationsofm7/dontlift-backend/internal/service"
	"github.com/gofiber/fiber/v2"
)

type RoomController struct {
	roomService *service.RoomService
}

func NewRoomController(roomService *service.RoomService) *RoomController {
	return &RoomController{roomService: roomService}
}

func (rc *RoomController) ListRooms(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"rooms": rc.roomService.ListRooms(),
	})
}

func (rc *RoomController) GetRoom(c *fiber.Ctx) error {
	roomID := c.Params("roomId")

	snapshot, err := rc.roomService.GetRoomSnapshot(roomID)
	if err != nil {
		if errors.Is(err, service.ErrRoomNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": err.Error(),
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to fetch room state",
		})
	}

	return c.JSON(snapshot)
}
