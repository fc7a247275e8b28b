package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/config"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/logger"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/metrics"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/middleware"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/repository"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/server"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/service"
	"github.com/chauhanrajat09/embody-your-potential-fullstack/internal/telemetry"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/contrib/instrumentation/go.mongodb.org/mongo-driver/mongo/otelmongo"
	"go.uber.org/multierr"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logger.New("info", "").Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(cfg.Log.Level, cfg.Log.File)
	log.Info("Starting Embody Your Potential API...")

	ctx := context.Background()

	otelProvider, err := telemetry.Initialize(ctx, cfg.OTEL, log)
	if err != nil {
		log.Warnf("Failed to initialize OpenTelemetry: %v", err)
	}

	// Optional federated login
	var authClient service.FirebaseAuthClient
	if cfg.Firebase.Enabled() {
		client, err := middleware.InitFirebaseAuth(ctx, cfg.Firebase)
		if err != nil {
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		authClient = client
		log.Info("✓ Firebase initialized")
	}

	// Optional export archive storage
	var exportStore service.ExportStore
	if cfg.S3.Enabled {
		store, err := repository.NewS3ExportStore(ctx, cfg.S3)
		if err != nil {
			log.Fatalf("Failed to initialize export storage: %v", err)
		}
		exportStore = store
		log.WithField("bucket", cfg.S3.Bucket).Info("✓ Export storage initialized")
	}

	ctxMongo, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	mongoOpts := options.Client().ApplyURI(cfg.MongoDB.URI)
	if cfg.OTEL.Enabled {
		mongoOpts.SetMonitor(otelmongo.NewMonitor())
	}

	mongoClient, err := mongo.Connect(ctxMongo, mongoOpts)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	if err := mongoClient.Ping(ctxMongo, nil); err != nil {
		log.Fatalf("Failed to ping MongoDB: %v", err)
	}
	log.Info("✓ MongoDB connected")

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		log.Fatalf("Failed to connect to Redis: %v", err)
	}
	log.Info("✓ Redis connected")

	reg := metrics.SetupPrometheus()
	app := server.NewApp(server.AppDependencies{
		Config:      cfg,
		MongoDB:     mongoClient.Database(cfg.MongoDB.Database),
		RedisClient: redisClient,
		AuthClient:  authClient,
		ExportStore: exportStore,
		Logger:      log,
		Metrics:     metrics.NewManager("embody", "api", reg),
		Registry:    reg,
	})

	// Graceful shutdown
	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		log.Info("Shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			log.WithError(err).Error("server shutdown failed")
		}
	}()

	log.Infof("Server starting on port %s", cfg.Server.Port)
	listenErr := app.Listen(":" + cfg.Server.Port)

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	err = multierr.Combine(
		listenErr,
		mongoClient.Disconnect(shutdownCtx),
		redisClient.Close(),
		otelProvider.Shutdown(shutdownCtx),
	)
	if err != nil {
		log.Fatalf("Server stopped with errors: %v", err)
	}
	log.Info("Server stopped")
}
