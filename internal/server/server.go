package server

import (
	"errors"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/handler"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/repository"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/telemetry"
	"github.com/go-redis/redis_rate/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
)

const idempotencyTTL = 24 * time.Hour

// AppDependencies holds the dependencies required to start the application.
// AuthClient and ExportStore are optional; Logger, Metrics and Registry get defaults when nil.
type AppDependencies struct {
	Config      *config.Config
	MongoDB     *mongo.Database
	RedisClient *redis.Client
	AuthClient  service.FirebaseAuthClient
	ExportStore service.ExportStore
	Logger      logger.Logger
	Metrics     *metrics.Manager
	Registry    *prometheus.Registry
}

// NewApp creates and configures the Fiber application with the given dependencies
func NewApp(deps AppDependencies) *fiber.App {
	cfg := deps.Config
	log := deps.Logger
	if log == nil {
		log = logger.Discard()
	}
	reg := deps.Registry
	if reg == nil {
		reg = metrics.SetupPrometheus()
	}
	metricsManager := deps.Metrics
	if metricsManager == nil {
		metricsManager = metrics.NewManager("embody", "api", reg)
	}

	// Repositories
	userRepo := repository.NewMongoUserRepository(deps.MongoDB)
	refreshTokenRepo := repository.NewMongoRefreshTokenRepository(deps.MongoDB)
	workoutLogRepo := repository.NewMongoWorkoutLogRepository(deps.MongoDB)
	weightRepo := repository.NewMongoWeightRepository(deps.MongoDB)
	weightGoalRepo := repository.NewMongoWeightGoalRepository(deps.MongoDB)
	exerciseRepo := repository.NewCachedExerciseRepository(
		repository.NewMongoExerciseRepository(deps.MongoDB),
		cfg.Cache.ExerciseCacheSize,
	)
	templateRepo := repository.NewMongoTemplateRepository(deps.MongoDB)
	customWorkoutRepo := repository.NewMongoCustomWorkoutRepository(deps.MongoDB)
	statsCache := repository.NewRedisCacheRepository(deps.RedisClient)

	// Services
	tokenService := service.NewTokenService(cfg.JWT, refreshTokenRepo, userRepo)
	authService := service.NewAuthService(userRepo, tokenService, deps.AuthClient)
	workoutLogService := service.NewWorkoutLogService(workoutLogRepo, userRepo, statsCache, metricsManager, log)
	statsService := service.NewStatsService(workoutLogRepo, statsCache, cfg.Cache.StatsTTL, metricsManager, log)
	weightService := service.NewWeightService(weightRepo, weightGoalRepo, deps.ExportStore, metricsManager, log)
	exerciseService := service.NewExerciseService(exerciseRepo, userRepo)
	templateService := service.NewTemplateService(templateRepo)
	customWorkoutService := service.NewCustomWorkoutService(customWorkoutRepo)

	// Handlers
	authHandler := handler.NewAuthHandler(authService, tokenService, cfg.JWT.RefreshTTL, log)
	statsHandler := handler.NewStatsHandler(statsService, log)
	workoutLogHandler := handler.NewWorkoutLogHandler(workoutLogService, exerciseService, log)
	weightHandler := handler.NewWeightHandler(weightService, log)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, log)
	workoutHandler := handler.NewWorkoutHandler(customWorkoutService, templateService, log)

	app := fiber.New(fiber.Config{
		AppName:      "Embody Your Potential API",
		BodyLimit:    int(cfg.Server.BodyLimitMB * 1024 * 1024),
		ErrorHandler: customErrorHandler(log),
	})

	// Global middleware
	app.Use(recover.New())
	app.Use(fiberlogger.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     cfg.Server.AllowedOrigins,
		AllowCredentials: cfg.Server.AllowedOrigins != "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, " + middleware.CorrelationIDHeader,
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		ExposeHeaders:    "Content-Disposition, Retry-After, X-Idempotent-Replay, " + middleware.CorrelationIDHeader,
	}))
	app.Use(telemetry.FiberMiddleware())
	app.Use(middleware.RequestMetrics(metricsManager))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":  "healthy",
			"service": "embody-your-potential",
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg})))

	requireAuth := middleware.VerifyToken(tokenService)
	loginLimit := middleware.RateLimit(
		redis_rate.NewLimiter(deps.RedisClient),
		"login",
		int(cfg.Server.LoginRateLimitAllowedMin),
		metricsManager,
		log,
	)

	api := app.Group("/api")

	users := api.Group("/users")
	users.Post("/register", authHandler.Register)
	users.Post("/login", loginLimit, authHandler.Login)
	users.Post("/login/federated", loginLimit, authHandler.LoginFederated)
	users.Post("/refresh", authHandler.Refresh)
	users.Post("/logout", requireAuth, authHandler.Logout)
	users.Get("/profile", requireAuth, authHandler.Profile)

	stats := api.Group("/stats", requireAuth)
	stats.Get("/dashboard", statsHandler.Dashboard)
	stats.Get("/quick", statsHandler.Quick)

	workoutLog := api.Group("/workout-log", requireAuth, middleware.IdempotencyMiddleware(deps.RedisClient, idempotencyTTL, log))
	workoutLog.Get("/", workoutLogHandler.List)
	workoutLog.Post("/", workoutLogHandler.Create)
	workoutLog.Post("/quick", workoutLogHandler.CreateQuick)
	workoutLog.Get("/:id", workoutLogHandler.Get)
	workoutLog.Delete("/:id", workoutLogHandler.Delete)

	weight := api.Group("/weight", requireAuth)
	weight.Get("/", weightHandler.List)
	weight.Post("/", weightHandler.Add)
	weight.Get("/stats", weightHandler.Stats)
	weight.Get("/trend", weightHandler.Trend)
	weight.Get("/export", weightHandler.Export)
	weight.Post("/export/archive", weightHandler.Archive)
	weight.Get("/goal", weightHandler.GetGoal)
	weight.Post("/goal", weightHandler.SetGoal)
	weight.Delete("/goal", weightHandler.DeleteGoal)
	weight.Put("/goal/complete", weightHandler.CompleteGoal)
	weight.Put("/:id", weightHandler.Update)
	weight.Delete("/:id", weightHandler.Delete)

	exercises := api.Group("/exercises", requireAuth)
	exercises.Get("/", exerciseHandler.List)
	exercises.Post("/", exerciseHandler.Create)
	exercises.Get("/favorites", exerciseHandler.Favorites)
	exercises.Post("/favorites/add/:id", exerciseHandler.AddFavorite)
	exercises.Delete("/favorites/remove/:id", exerciseHandler.RemoveFavorite)
	exercises.Get("/recent", exerciseHandler.Recent)
	exercises.Post("/recent", exerciseHandler.MarkRecent)
	exercises.Get("/:id", exerciseHandler.Get)

	workouts := api.Group("/workouts", requireAuth)
	workouts.Get("/", workoutHandler.ListWorkouts)
	workouts.Post("/", workoutHandler.CreateWorkout)
	workouts.Get("/:id", workoutHandler.GetWorkout)
	workouts.Put("/:id", workoutHandler.UpdateWorkout)
	workouts.Delete("/:id", workoutHandler.DeleteWorkout)
	workouts.Post("/:id/complete", workoutHandler.CompleteWorkout)

	templates := api.Group("/templates", requireAuth)
	templates.Get("/", workoutHandler.ListTemplates)
	templates.Post("/", workoutHandler.CreateTemplate)
	templates.Get("/:id", workoutHandler.GetTemplate)
	templates.Put("/:id", workoutHandler.UpdateTemplate)
	templates.Delete("/:id", workoutHandler.DeleteTemplate)

	return app
}

func customErrorHandler(log logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		code := fiber.StatusInternalServerError
		var e *fiber.Error
		if errors.As(err, &e) {
			code = e.Code
		}
		if code >= fiber.StatusInternalServerError {
			log.WithError(err).WithField("path", c.Path()).Error("unhandled error")
		}
		return c.Status(code).JSON(fiber.Map{
			"message": err.Error(),
			"error":   err.Error(),
		})
	}
}
