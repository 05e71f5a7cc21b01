package bootstrap

import (
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	appControllers "github.com/yigit/isluportal/internal/app/controllers"
	appRepos "github.com/yigit/isluportal/internal/app/repositories"
	appRoutes "github.com/yigit/isluportal/internal/app/routes"
	appServices "github.com/yigit/isluportal/internal/app/services"
	"github.com/yigit/isluportal/internal/app/session"
	"github.com/yigit/isluportal/internal/config"
	appMiddleware "github.com/yigit/isluportal/internal/middleware"
	pkgAuth "github.com/yigit/isluportal/internal/pkg/auth"
	"github.com/yigit/isluportal/internal/pkg/flatfile"
	"github.com/yigit/isluportal/internal/pkg/helpers"
	"github.com/yigit/isluportal/internal/pkg/logger"
	"github.com/yigit/isluportal/internal/pkg/validation"
)

// DefaultConfigPath is used when CONFIG_PATH is not set
var DefaultConfigPath = filepath.Join("configs", "config.yaml")

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos          *appRepos.Repositories
	Sessions       *session.Manager
	JWTService     *pkgAuth.JWTService
	Services       *appServices.Services
	Controllers    appRoutes.Controllers
	AuthMiddleware *appMiddleware.AuthMiddleware
	Logger         zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger() (*config.Config, zerolog.Logger, error) {
	configPath := config.GetEnv("CONFIG_PATH", DefaultConfigPath)
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Str("path", configPath).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.ParseLevel(cfg.Logging.Level)
	logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: cfg.PrettyLogs(),
	})

	lgr := logger.Get()
	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// NewRepositories builds the flat-file store and the repositories over it
func NewRepositories(cfg *config.Config) *appRepos.Repositories {
	store := flatfile.NewStore(flatfile.NewResolver(cfg.Storage.DataDir))
	return appRepos.NewRepositories(store, appRepos.Files{
		Accounts:    cfg.Storage.AccountsFile,
		Credentials: cfg.Storage.CredentialsFile,
		Payments:    cfg.Storage.PaymentsFile,
		Attendance:  cfg.Storage.AttendanceFile,
		Schedules:   cfg.Storage.SchedulesFile,
		Grades:      cfg.Storage.GradesFile,
	})
}

// ServiceOptions maps the portal settings onto service options
func ServiceOptions(cfg *config.Config) appServices.Options {
	return appServices.Options{
		DefaultSemester:   cfg.Portal.DefaultSemester,
		PaymentReference:  cfg.Portal.PaymentReference,
		IDPrefix:          cfg.Portal.IDPrefix,
		HashPasswords:     cfg.Auth.HashPasswords,
		MinPasswordLength: cfg.Auth.MinPasswordLength,
	}
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, lgr zerolog.Logger) (*Dependencies, error) {
	if err := validation.RegisterGinRules(); err != nil {
		lgr.Error().Err(err).Msg("Failed to register validation rules")
		return nil, err
	}

	deps := &Dependencies{Logger: lgr}
	deps.Repos = NewRepositories(cfg)

	accessTokenExp := helpers.ParseDuration(cfg.JWT.AccessTokenExpiration, 8*time.Hour)
	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: accessTokenExp,
		TokenIssuer:    cfg.JWT.Issuer,
	})
	deps.Sessions = session.NewManager(session.Config{
		MaxAmountDue: cfg.Portal.MaxAmountDue,
		MaxBalance:   cfg.Portal.MaxBalance,
		TTL:          accessTokenExp,
	})

	deps.Services = appServices.NewServices(deps.Repos, deps.Sessions, deps.JWTService, ServiceOptions(cfg), logger.Component("services"))
	if !deps.Services.Auth.DatabaseExists() {
		lgr.Warn().Str("file", cfg.Storage.AccountsFile).Msg("Account file not found, sign-in will fail until a student registers")
	}

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService, deps.Sessions)

	svc := deps.Services
	ctrlLogger := logger.Component("controllers")
	deps.Controllers = appRoutes.Controllers{
		Auth:    appControllers.NewAuthController(svc.Auth, svc.Payment, ctrlLogger),
		Student: appControllers.NewStudentController(svc.Profile, svc.Schedule, ctrlLogger),
		Records: appControllers.NewRecordsController(svc.Attendance, svc.Grade, ctrlLogger),
		Payment: appControllers.NewPaymentController(svc.Payment, ctrlLogger),
		Export:  appControllers.NewExportController(svc.Export, ctrlLogger),
		Faculty: appControllers.NewFacultyController(svc.Attendance, svc.Grade, ctrlLogger),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) *gin.Engine {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	router := gin.New()
	router.Use(gin.Recovery(), appMiddleware.RequestID(), appMiddleware.RequestLogger(logger.Component("http")))

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware)

	// Test endpoint
	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong", "status": "success"})
	})

	return router
}
