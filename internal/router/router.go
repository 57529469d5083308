package router

import (
	"log"

	"firebase.google.com/go/v4/auth"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/changestream"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/engagement"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/feed"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/handlers"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/middleware"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/models"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/notify"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/realtime"
	"github.com/ZamboVet/zambovet-v2-sub000/internal/repositories"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/config"
	"github.com/ZamboVet/zambovet-v2-sub000/pkg/storage"
	"github.com/labstack/echo/v4"
	eMiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// SetupMiddleware configures global Echo middleware
func SetupMiddleware(e *echo.Echo) {
	e.Use(eMiddleware.Recover())
	e.Use(eMiddleware.CORS())
	log.Println("Global middleware configured.")
}

// SetupRoutes configures all application routes and injects dependencies.
// It returns the realtime coordinator so the caller controls its lifetime.
func SetupRoutes(
	e *echo.Echo,
	pgdb *gorm.DB,
	stream *changestream.NATSStream,
	firebaseAuthClient *auth.Client,
	cfg *config.Config,
) (*realtime.Coordinator, error) {
	// AutoMigrate PostgreSQL models
	err := pgdb.AutoMigrate(
		&models.Owner{},
		&models.Patient{},
		&models.Post{},
		&models.PostMedia{},
		&models.PostReaction{},
		&models.PostComment{},
		&models.OwnerFollow{},
		&models.Notification{},
	)
	if err != nil {
		log.Fatalf("Failed to auto migrate models: %v", err)
	}
	log.Println("PostgreSQL auto-migrations completed for all models.")

	// Health check and metrics - always accessible
	e.GET("/health", handlers.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.Static("/media", cfg.MediaDir)

	// --- Initialize Repositories ---
	ownerRepo := repositories.NewPostgresOwnerRepository(pgdb)
	patientRepo := repositories.NewPostgresPatientRepository(pgdb)
	postRepo := repositories.NewPostgresPostRepository(pgdb)
	mediaRepo := repositories.NewPostgresMediaRepository(pgdb)
	reactionRepo := repositories.NewPostgresReactionRepository(pgdb)
	commentRepo := repositories.NewPostgresCommentRepository(pgdb)
	followRepo := repositories.NewPostgresFollowRepository(pgdb)
	notificationRepo := repositories.NewPostgresNotificationRepository(pgdb)

	// --- Core services ---
	assembler := feed.NewAssembler(postRepo, mediaRepo, reactionRepo, commentRepo, followRepo, ownerRepo, patientRepo)
	fanout := notify.NewFanout(ownerRepo, notificationRepo)
	sessions := engagement.NewManager(assembler, reactionRepo, commentRepo, fanout, stream)

	coordinator := realtime.NewCoordinator(stream, sessions.RefreshFirstPages, cfg.DebounceWindow)
	if err := coordinator.Start(); err != nil {
		return nil, err
	}

	objectStore, err := storage.NewLocalObjectStore(cfg.MediaDir, cfg.MediaBaseURL)
	if err != nil {
		return nil, err
	}

	// --- Handlers ---
	authGroup := e.Group("/api/v1", middleware.FirebaseAuthMiddleware(firebaseAuthClient))

	handlers.NewOwnerHandler(ownerRepo).RegisterOwnerRoutes(authGroup)
	handlers.NewFeedHandler(sessions, ownerRepo).RegisterFeedRoutes(authGroup)
	handlers.NewEngagementHandler(sessions, ownerRepo).RegisterEngagementRoutes(authGroup)
	handlers.NewPostHandler(postRepo, mediaRepo, patientRepo, ownerRepo, objectStore, stream).RegisterPostRoutes(authGroup)
	handlers.NewFollowHandler(followRepo, ownerRepo).RegisterFollowRoutes(authGroup)

	return coordinator, nil
}
