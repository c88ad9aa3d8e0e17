package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"badge-rally-system/handlers"
	"badge-rally-system/models"
	"badge-rally-system/services"
	"badge-rally-system/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/joho/godotenv"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  No .env file found, reading environment variables directly")
	}

	app := fiber.New(fiber.Config{
		BodyLimit: 25 * 1024 * 1024, // artwork uploads only
	})

	// CORS: the PWA is served from a different origin than the API
	allowedOriginsEnv := os.Getenv("ALLOWED_ORIGINS")
	if allowedOriginsEnv == "" {
		log.Println("⚠️  ALLOWED_ORIGINS environment variable not set, using default: http://localhost:3000")
		allowedOriginsEnv = "http://localhost:3000"
	}
	allowedOriginsList := strings.Split(allowedOriginsEnv, ",")
	for i, origin := range allowedOriginsList {
		allowedOriginsList[i] = strings.TrimSpace(origin)
	}
	allowedOriginsString := strings.Join(allowedOriginsList, ",")

	app.Use(cors.New(cors.Config{
		AllowOrigins:     allowedOriginsString,
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With",
		ExposeHeaders:    "Content-Length, Content-Type",
		AllowCredentials: true, // session cookie must ride along
		MaxAge:           86400,
	}))

	sessionSecret := os.Getenv("SESSION_SECRET")
	if sessionSecret == "" {
		log.Fatal("SESSION_SECRET environment variable not set, cannot sign device credentials")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL environment variable not set")
	}

	if err := utils.InitArtworkStorage(); err != nil {
		log.Fatal("failed to initialize artwork storage:", err)
	}

	// TranslateError so a duplicate-key insert surfaces as
	// gorm.ErrDuplicatedKey instead of a raw pg error.
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{TranslateError: true})
	if err != nil {
		log.Fatal("failed to connect to database:", err)
	}

	if err := db.AutoMigrate(
		&models.User{},
		&models.BadgeClaim{},
		&models.Achievement{},
		&models.LimitedEvent{},
		&models.BadgeArtwork{},
	); err != nil {
		log.Fatal("failed to migrate database:", err)
	}

	store := services.NewGormClaimStore(db)
	sessionService := services.NewSessionService(sessionSecret)
	eventService := services.NewEventService(services.NewGormEventStore(db))
	artworkService := services.NewArtworkService(services.NewGormArtworkStore(db))
	achievementService := services.NewAchievementService(store)

	if err := artworkService.ApplyOverrides(); err != nil {
		log.Fatal("failed to load artwork overrides:", err)
	}

	notifier := services.NewClaimNotifier()
	notifier.Subscribe(achievementService)

	claimService := services.NewClaimService(store, notifier)

	eventService.StartEventScheduler()

	handlers.SetupSessionRoutes(app, sessionService)
	handlers.SetupBadgeRoutes(app, sessionService, claimService, achievementService, eventService)
	handlers.SetupAdminRoutes(app, eventService, artworkService)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := app.Listen(":4500"); err != nil {
			log.Printf("Server error: %v", err)
		}
	}()

	log.Println("✅ Server running on http://localhost:4500")
	log.Printf("✅ Badge catalog loaded: %d badges", models.CatalogSize())
	log.Println("✅ Event scheduler running (every 1m)")
	log.Printf("✅ CORS configured for origins: %s", allowedOriginsString)

	<-ctx.Done()
	log.Println("Shutting down server...")
}
