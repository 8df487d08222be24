package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	appAuth "github.com/yigit/launchpad/internal/app/auth"
	appControllers "github.com/yigit/launchpad/internal/app/controllers"
	appMigrations "github.com/yigit/launchpad/internal/app/migrations"
	appRepos "github.com/yigit/launchpad/internal/app/repositories"
	appRoutes "github.com/yigit/launchpad/internal/app/routes"
	appServices "github.com/yigit/launchpad/internal/app/services"
	"github.com/yigit/launchpad/internal/config"
	"github.com/yigit/launchpad/internal/db"
	appMiddleware "github.com/yigit/launchpad/internal/middleware"
	pkgAuth "github.com/yigit/launchpad/internal/pkg/auth"
	"github.com/yigit/launchpad/internal/pkg/logger"
	"github.com/yigit/launchpad/internal/pkg/validation"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	UserService         appServices.UserService
	StartupService      appServices.StartupService
	JobService          appServices.JobService
	TrustService        appServices.TrustService
	NotificationService appServices.NotificationService
	PostService         appServices.PostService

	Controllers appRoutes.Controllers

	AuthMiddleware       *appMiddleware.AuthMiddleware
	CapabilityMiddleware *appMiddleware.CapabilityMiddleware

	Repos        *appRepos.Repositories
	JWTService   *pkgAuth.JWTService
	AuthzService *appAuth.AuthorizationService
	Logger       zerolog.Logger
}

// ConfigPath returns the config file location, overridable with CONFIG_PATH
func ConfigPath() string {
	if p := strings.TrimSpace(os.Getenv("CONFIG_PATH")); p != "" {
		return p
	}
	return filepath.Join("configs", "config.yaml")
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	cfg, err := config.LoadConfig(ConfigPath())
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.EqualFold(cfg.Logging.Format, "text"),
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(ctx context.Context, cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(ctx, cfg, lgr)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	migrationsDir := cfg.Database.MigrationsDir
	if _, err := os.Stat(migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	migrator := appMigrations.NewMigrator(database.Pool, lgr)
	if err := migrator.MigrateFromDirectory(ctx, migrationsDir); err != nil {
		database.Close()
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}
	lgr.Info().Msg("Database migrations successfully applied.")

	return database, nil
}

// AccessPolicy builds the access gate allow-list from configuration
func AccessPolicy(cfg *config.Config) appAuth.Policy {
	return appAuth.Policy{
		PromotableAdminID:     cfg.PromotableAdminID(),
		AdminPassphraseHash:   cfg.Access.AdminPassphraseHash,
		RoleReversionExemptID: cfg.RoleReversionExemptID(),
	}
}

// BuildDependencies wires repositories, services, middleware and controllers
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	tokenTTL, err := time.ParseDuration(cfg.JWT.AccessTokenExpiration)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT access token expiration: %w", err)
	}

	if err := validation.RegisterGinRules(); err != nil {
		return nil, err
	}

	deps := &Dependencies{Logger: lgr}
	deps.Repos = appRepos.NewRepositories(database)

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: tokenTTL,
		TokenIssuer:    cfg.JWT.Issuer,
	})

	policy := AccessPolicy(cfg)
	if policy.PromotableAdminID != uuid.Nil && policy.AdminPassphraseHash == "" {
		lgr.Warn().Msg("A promotable admin is configured without a passphrase hash; promotion will always be refused")
	}
	deps.AuthzService = appAuth.NewAuthorizationService(
		deps.Repos.UserRepository,
		deps.Repos.StartupRepository,
		policy,
		lgr.With().Str("component", "access_gate").Logger(),
	)

	deps.UserService = appServices.NewUserService(deps.Repos.UserRepository, deps.AuthzService, lgr)
	deps.StartupService = appServices.NewStartupService(deps.Repos.StartupRepository, deps.Repos.UserRepository, lgr)
	deps.JobService = appServices.NewJobService(deps.Repos.JobRepository, deps.Repos.ApplicationRepository, deps.AuthzService, lgr)
	deps.TrustService = appServices.NewTrustService(deps.Repos.EndorsementRepository, deps.Repos.UserRepository, lgr)
	deps.NotificationService = appServices.NewNotificationService(deps.Repos.NotificationRepository, deps.Repos.UserRepository, lgr)
	deps.PostService = appServices.NewPostService(deps.Repos.PostRepository, deps.Repos.UserRepository, deps.NotificationService, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.UserService, lgr)
	deps.CapabilityMiddleware = appMiddleware.NewCapabilityMiddleware(deps.AuthzService)

	deps.Controllers = appRoutes.Controllers{
		User:         appControllers.NewUserController(deps.UserService),
		Startup:      appControllers.NewStartupController(deps.StartupService),
		Job:          appControllers.NewJobController(deps.JobService),
		Endorsement:  appControllers.NewEndorsementController(deps.TrustService),
		Notification: appControllers.NewNotificationController(deps.NotificationService),
		Post:         appControllers.NewPostController(deps.PostService),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.EqualFold(cfg.Server.Mode, "production") {
		gin.SetMode(gin.ReleaseMode)
	} else {
		gin.SetMode(gin.DebugMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(appMiddleware.RequestLogger(lgr))
	router.Use(cors.New(corsConfig(cfg)))

	appRoutes.SetupSwagger(router)
	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.CapabilityMiddleware)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}

func corsConfig(cfg *config.Config) cors.Config {
	corsCfg := cors.DefaultConfig()
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	corsCfg.AllowMethods = []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions}

	origins := cfg.AllowedOrigins()
	if len(origins) == 0 || (len(origins) == 1 && origins[0] == "*") {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = origins
		corsCfg.AllowCredentials = true
	}
	return corsCfg
}
