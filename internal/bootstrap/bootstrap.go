package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	appControllers "github.com/campusgate/gatepass/internal/app/controllers"
	appMigrations "github.com/campusgate/gatepass/internal/app/migrations"
	appRepos "github.com/campusgate/gatepass/internal/app/repositories"
	appRoutes "github.com/campusgate/gatepass/internal/app/routes"
	appServices "github.com/campusgate/gatepass/internal/app/services"
	"github.com/campusgate/gatepass/internal/config"
	"github.com/campusgate/gatepass/internal/db"
	appMiddleware "github.com/campusgate/gatepass/internal/middleware"
	pkgAuth "github.com/campusgate/gatepass/internal/pkg/auth"
	"github.com/campusgate/gatepass/internal/pkg/blobstore"
	"github.com/campusgate/gatepass/internal/pkg/credential"
	"github.com/campusgate/gatepass/internal/pkg/helpers"
	"github.com/campusgate/gatepass/internal/pkg/logger"
	"github.com/campusgate/gatepass/internal/seed"
)

// Dependencies holds all the application dependencies
type Dependencies struct {
	AuthService         *appServices.AuthService
	GatePassService     *appServices.GatePassService
	StudentService      *appServices.StudentService
	ProvisionService    *appServices.ProvisionService
	TeacherService      *appServices.TeacherService
	AuthController      *appControllers.AuthController
	GatePassController  *appControllers.GatePassController
	StudentController   *appControllers.StudentController
	ProvisionController *appControllers.ProvisionController
	TeacherController   *appControllers.TeacherController
	AuthMiddleware      *appMiddleware.AuthMiddleware
	PolicyGate          *appMiddleware.PolicyGate
	Repos               *appRepos.Repositories
	JWTService          *pkgAuth.JWTService
	BlobStore           blobstore.Store
	Logger              zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := filepath.Join("configs", "config.yaml")
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	prettyLog := strings.ToLower(cfg.Logging.Format) == "text"

	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: prettyLog,
	})

	lgr := log.Logger
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase establishes the database connection and runs migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*pgxpool.Pool, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}
	dbPool := database.Pool

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := dbPool.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		dbPool.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	lgr.Info().Msg("Running database migrations...")
	migrator := appMigrations.NewMigrator(dbPool)

	migrationsDir := "migrations"
	if _, err := os.Stat(migrationsDir); os.IsNotExist(err) {
		lgr.Error().Str("path", migrationsDir).Msg("Migrations directory not found")
		return nil, fmt.Errorf("migrations directory not found at %s: %w", migrationsDir, err)
	}

	if err := migrator.MigrateFromDirectory(migrationsDir); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		return nil, fmt.Errorf("database migrations failed: %w", err)
	}

	lgr.Info().Msg("Database migrations successfully applied.")

	if err := seed.CreateDefaultData(context.Background(), dbPool, lgr); err != nil {
		// Startup proceeds; operators can be created manually
		lgr.Error().Err(err).Msg("Failed to create default data, proceeding anyway...")
	}

	return dbPool, nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, dbPool *pgxpool.Pool, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(dbPool)

	// Credential images are written locally and served by this process.
	// The public base URL must match the static route registered by the
	// server.
	publicBaseURL := cfg.Storage.PublicBaseURL
	if publicBaseURL == "" {
		publicBaseURL = "http://localhost:" + cfg.Server.Port + "/qr-codes"
	}
	blobs, err := blobstore.NewLocalStore(cfg.Storage.Path, publicBaseURL)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize credential store")
		return nil, fmt.Errorf("failed to initialize credential store: %w", err)
	}
	deps.BlobStore = blobs

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:   cfg.JWT.Secret,
		TokenExpiry: helpers.ParseDuration(cfg.JWT.TokenExpiration, 12*time.Hour),
		TokenIssuer: cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.ProfileRepository, deps.JWTService, lgr)
	deps.GatePassService = appServices.NewGatePassService(
		deps.Repos.GatePassRepository,
		deps.Repos.ProfileRepository,
		credential.NewEncoder(),
		deps.BlobStore,
		lgr,
	)
	deps.StudentService = appServices.NewStudentService(deps.Repos.ProfileRepository, lgr)
	deps.ProvisionService = appServices.NewProvisionService(deps.AuthService, lgr)
	deps.TeacherService = appServices.NewTeacherService(deps.Repos.TeacherRepository)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)
	deps.PolicyGate = appMiddleware.NewPolicyGate(deps.JWTService, deps.Repos.ProfileRepository)

	deps.AuthController = appControllers.NewAuthController(deps.AuthService)
	deps.GatePassController = appControllers.NewGatePassController(deps.GatePassService)
	deps.StudentController = appControllers.NewStudentController(deps.StudentService)
	deps.ProvisionController = appControllers.NewProvisionController(deps.ProvisionService)
	deps.TeacherController = appControllers.NewTeacherController(deps.TeacherService)

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if strings.ToLower(cfg.Server.Mode) == "production" {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.Default()

	appRoutes.SetupRouter(router,
		deps.AuthController,
		deps.GatePassController,
		deps.StudentController,
		deps.ProvisionController,
		deps.TeacherController,
		deps.AuthMiddleware,
		deps.PolicyGate,
	)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
