package main // Entry point package

import (
	"log" // Logging library

	"github.com/joho/godotenv"    // Loads .env files into the environment
	"github.com/labstack/echo/v4" // Echo web framework

	"github.com/iliyamo/mentor-session-booking/internal/config"     // Internal config loader
	"github.com/iliyamo/mentor-session-booking/internal/database"   // MySQL connection pool
	"github.com/iliyamo/mentor-session-booking/internal/handler"    // HTTP handlers
	"github.com/iliyamo/mentor-session-booking/internal/middleware" // Rate limiting and response cache
	"github.com/iliyamo/mentor-session-booking/internal/queue"      // Booking event consumer
	"github.com/iliyamo/mentor-session-booking/internal/relay"      // Chat fan-out over Redis pub/sub
	"github.com/iliyamo/mentor-session-booking/internal/repository" // Data access layer
	"github.com/iliyamo/mentor-session-booking/internal/router"     // Route registration
)

func main() {
	_ = godotenv.Load() // Load .env if present; real env vars win

	cfg := config.Load() // Load environment config

	db, err := database.Open(cfg.DBUser, cfg.DBPass, cfg.DBHost, cfg.DBPort, cfg.DBName, cfg.DBMaxConns) // Open MySQL pool
	if err != nil {
		log.Fatalf("database: %v", err) // Abort without a database
	}
	defer db.Close()

	rdb := config.NewRedisClient() // Optional Redis client; nil disables rate limit, cache and chat fan-out

	// Repositories share the single *sql.DB.
	userRepo := repository.NewUserRepo(db)
	tokenRepo := repository.NewTokenRepo(db)
	slotRepo := repository.NewSlotRepo(db)
	bookingRepo := repository.NewBookingRepo(db)
	notificationRepo := repository.NewNotificationRepo(db)
	transactionRepo := repository.NewTransactionRepo(db)
	chatRepo := repository.NewChatRepo(db)

	// Handlers.
	authHandler := handler.NewAuthHandler(cfg, userRepo, tokenRepo)
	slotHandler := handler.NewSlotHandler(slotRepo)
	bookingHandler := handler.NewBookingHandler(bookingRepo, slotRepo, notificationRepo, transactionRepo, userRepo, cfg.AMQPURL)
	notificationHandler := handler.NewNotificationHandler(notificationRepo)
	chatHandler := handler.NewChatHandler(chatRepo, relay.New(rdb))

	e := echo.New() // Create Echo instance

	// Global middleware: token bucket rate limiting.  Fails open when
	// Redis is unavailable.
	e.Use(middleware.NewTokenBucket(config.LoadRateLimitConfig(), rdb))

	// Response cache for shared read routes.  Attached per route after
	// JWTAuth so a cache HIT can never bypass token validation, and
	// keyed by caller identity inside the middleware.
	cacheMW := middleware.NewRedisCache(config.LoadCacheConfig(), rdb)

	// Routes: health check, auth, mentor availability, the booking
	// engine, the notification feed and chat.
	router.RegisterRoutes(e)
	router.RegisterAuth(e, authHandler, cfg.JWTSecret)
	router.RegisterSlots(e, slotHandler, cfg.JWTSecret, cacheMW)
	router.RegisterBookings(e, bookingHandler, cfg.JWTSecret, cacheMW)
	router.RegisterNotifications(e, notificationHandler, cfg.JWTSecret)
	router.RegisterChat(e, chatHandler, cfg.JWTSecret)

	// Drain booking events in the background.  The consumer reconnects
	// with backoff and never takes the API down.
	go func() {
		if err := queue.StartBookingConsumer(cfg.AMQPURL); err != nil {
			log.Printf("queue consumer stopped: %v", err)
		}
	}()

	addr := ":" + cfg.Port                                // Address string with port
	log.Printf("listening on %s (env=%s)", addr, cfg.Env) // Print startup info

	if err := e.Start(addr); err != nil { // Start HTTP server
		log.Fatal(err) // Log and exit if server fails
	}
}
