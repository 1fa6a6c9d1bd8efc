package router

import (
	authsvc "agricycle-backend/internal/application/auth"
	healthsvc "agricycle-backend/internal/application/health"
	"agricycle-backend/internal/application/listingevents"
	uploadsvc "agricycle-backend/internal/application/uploads"
	wastesvc "agricycle-backend/internal/application/waste"
	"agricycle-backend/internal/config"
	"agricycle-backend/internal/infrastructure/database"
	authhandler "agricycle-backend/internal/interfaces/handlers/auth"
	healthhandler "agricycle-backend/internal/interfaces/handlers/health"
	wastehandler "agricycle-backend/internal/interfaces/handlers/waste"
	"agricycle-backend/internal/middleware"
	"agricycle-backend/internal/pkg/constants"

	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type gormDBPinger struct {
	db *gorm.DB
}

func (g *gormDBPinger) Ping() error {
	if g == nil || g.db == nil {
		return nil
	}
	sqlDB, err := g.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// CreateApp builds the Fiber app with all middleware and routes. The DB and
// Redis handles are returned so the caller owns their lifecycle (open at
// start, close on shutdown).
func CreateApp(cfg *config.Config) (*fiber.App, *gorm.DB, *redis.Client, error) {
	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		ErrorHandler:          middleware.ErrorHandler,
		BodyLimit:             8 << 20, // multipart listing image + form fields
	})

	app.Use(middleware.CORS(middleware.CORSConfig{AllowOrigin: cfg.FrontendURL}))
	app.Use(middleware.Tracing())
	app.Use(middleware.RouteLogger())

	var rdb *redis.Client
	if cfg.RedisURL != "" {
		opt, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			return nil, nil, nil, err
		}
		rdb = redis.NewClient(opt)
	}
	app.Use(middleware.HealthMarker(rdb))

	var db *gorm.DB
	if cfg.DatabaseURL != "" {
		var err error
		db, err = database.Open(cfg.DatabaseURL)
		if err != nil {
			return nil, nil, nil, err
		}
		if err := database.AutoMigrate(db); err != nil {
			return nil, nil, nil, err
		}
	}

	if cfg.JWTSecret == "" {
		log.Warn().Msg("JWT_SECRET is not set; tokens are signed with an empty key")
	}
	tokens := &authsvc.TokenService{Secret: []byte(cfg.JWTSecret), Rdb: rdb}

	var pinger healthsvc.DBPinger
	if db != nil {
		pinger = &gormDBPinger{db: db}
	}
	healthHandlers := &healthhandler.Handlers{
		Service: &healthsvc.Service{DB: pinger, Rdb: rdb},
	}
	app.Get("/", healthHandlers.Root)
	app.Get("/health", healthHandlers.JSON)

	// Uploaded listing images are public static files.
	app.Static(uploadsvc.PublicPrefix, cfg.UploadDir)

	// db may be nil when DATABASE_URL is unset (e.g. tests wire their own).
	if db != nil {
		authService := &authsvc.Service{DB: db, Tokens: tokens}
		authHandlers := &authhandler.Handlers{Service: authService}
		authGroup := app.Group("/api/auth")
		authGroup.Post("/register", authHandlers.Register)
		authGroup.Post("/login", authHandlers.Login)
		authGroup.Get("/me", middleware.RequireAuth(tokens), authHandlers.Me)
		authGroup.Post("/logout", middleware.RequireAuth(tokens), authHandlers.Logout)

		events := &listingevents.Service{DB: db}
		wasteService := &wastesvc.Service{DB: db, Events: events}
		wasteHandlers := &wastehandler.Handlers{
			Service: wasteService,
			Uploads: &uploadsvc.Service{Dir: cfg.UploadDir},
		}
		wasteGroup := app.Group("/api/waste")
		wasteGroup.Get("/", middleware.OptionalAuth(tokens), wasteHandlers.List)
		wasteGroup.Get("/my", middleware.RequireAuth(tokens), middleware.RequireRole(constants.RoleFarmer), wasteHandlers.Mine)
		wasteGroup.Get("/:id/events", middleware.RequireAuth(tokens), middleware.RequireRole(constants.RoleAdmin), wasteHandlers.Events)
		wasteGroup.Get("/:id", middleware.RequireAuth(tokens), wasteHandlers.GetByID)
		wasteGroup.Post("/", middleware.RequireAuth(tokens), middleware.RequireRole(constants.RoleFarmer), wasteHandlers.Create)
		wasteGroup.Patch("/:id/status", middleware.RequireAuth(tokens), middleware.RequireRole(constants.RoleAdmin), wasteHandlers.UpdateStatus)
		wasteGroup.Delete("/:id", middleware.RequireAuth(tokens), wasteHandlers.Delete)
	}

	return app, db, rdb, nil
}
