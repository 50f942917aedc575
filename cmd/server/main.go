package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/creationsofm7/dontlift-backend/internal/config"
	"github.com/creationsofm7/dontlift-backend/internal/controller"
	"github.com/creationsofm7/dontlift-backend/internal/middleware"
	"github.com/creationsofm7/dontlift-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/websocket/v2"
	"github.com/joho/godotenv"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Err(err).Msg("no .env file loaded")
	}

	cfg, err := config.Load(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		log.Warn().Str("log_level", cfg.LogLevel).Msg("unknown log level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	app := fiber.New()

	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.AllowOrigins,
		AllowHeaders:     "Origin, Content-Type, Accept",
		AllowMethods:     "GET, POST, OPTIONS",
		AllowCredentials: true,
	}))

	// Initialize services
	roomManager := service.NewRoomManager(clockwork.NewRealClock())
	roomService := service.NewRoomService(roomManager)

	// Initialize controllers
	roomController := controller.NewRoomController(roomService)
	wsController := controller.NewWebSocketController(roomService)

	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	// Set up the WebSocket route
	app.Use("/ws", middleware.WebSocketUpgrade())
	app.Get("/ws", websocket.New(func(c *websocket.Conn) {
		wsController.HandleConnection(c)
	}, websocket.Config{
		ReadBufferSize:  cfg.ReadBufferSize,
		WriteBufferSize: cfg.WriteBufferSize,
		Origins:         strings.Split(cfg.AllowOrigins, ","),
	}))

	// Set up REST routes
	api := app.Group("/api")
	api.Get("/rooms", roomController.ListRooms)
	api.Get("/rooms/:roomId", roomController.GetRoom)

	addr := fmt.Sprintf(":%d", cfg.Port)
	log.Info().Str("addr", addr).Msg("server listening")
	if err := app.Listen(addr); err != nil {
		log.Fatal().Err(err).Msg("server stopped")
	}
}
