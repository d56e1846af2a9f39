package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	"fooddelivery/cmd"
	httpadapter "fooddelivery/internal/adapters/in/http"
	"fooddelivery/internal/adapters/out/mongodb"
	"fooddelivery/internal/adapters/out/mongodb/courierstore"
	"fooddelivery/internal/adapters/out/mongodb/orderstore"
	"fooddelivery/internal/adapters/out/mongodb/sessionstore"
	"fooddelivery/internal/pkg/logging"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.mongodb.org/mongo-driver/mongo"
)

func main() {
	configs := getConfigs()
	logger := logging.Init("app", configs.LogFilePath)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	db, disconnect, err := mongodb.Connect(ctx, configs.MongoURI, configs.MongoDatabase)
	cancel()
	if err != nil {
		log.Fatalf("Error connecting to MongoDB: %v", err)
	}
	defer func() {
		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer shutdownCancel()
		if err := disconnect(shutdownCtx); err != nil {
			logger.Error("mongodb disconnect failed", "error", err)
		}
	}()

	if err := ensureIndexes(db); err != nil {
		log.Fatalf("Error creating MongoDB indexes: %v", err)
	}

	app := cmd.NewCompositionRoot(configs, db, logger)
	defer app.EventBus().Stop()

	jobManager := app.CreateJobManager()
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort, logger)
}

func ensureIndexes(db *mongo.Database) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := orderstore.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	if err := courierstore.EnsureIndexes(ctx, db); err != nil {
		return err
	}
	return sessionstore.EnsureIndexes(ctx, db)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:               goDotEnvVariable("HTTP_PORT"),
		MongoURI:               goDotEnvVariable("MONGO_URI"),
		MongoDatabase:          goDotEnvVariable("MONGO_DATABASE"),
		DispatchRadiusMeters:   envFloat("DISPATCH_RADIUS_METERS"),
		DispatchCandidateLimit: envInt("DISPATCH_CANDIDATE_LIMIT"),
		DispatchGeoTimeout:     envDuration("DISPATCH_GEO_TIMEOUT"),
		SweepSchedule:          goDotEnvVariable("SWEEP_SCHEDULE"),
		SweepBatchSize:         envInt("SWEEP_BATCH_SIZE"),
		LogFilePath:            goDotEnvVariable("LOG_FILE_PATH"),
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func envFloat(key string) float64 {
	value, err := strconv.ParseFloat(goDotEnvVariable(key), 64)
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func envInt(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func envDuration(key string) time.Duration {
	value, err := time.ParseDuration(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Error parsing %s: %v", key, err)
	}
	return value
}

func startWebServer(app *cmd.CompositionRoot, port string, logger *slog.Logger) {
	e := echo.New()
	e.HideBanner = true

	registry := prometheus.NewRegistry()
	metrics := httpadapter.NewMetrics(registry)
	e.Use(metrics.Middleware())

	handlers := httpadapter.Handlers{
		PlaceOrder:            app.CreatePlaceOrderCommandHandler(),
		TransitionOrder:       app.CreateTransitionOrderCommandHandler(),
		DispatchOrder:         app.CreateDispatchOrderCommandHandler(),
		PickUpOrder:           app.CreatePickUpOrderCommandHandler(),
		DeliverOrder:          app.CreateDeliverOrderCommandHandler(),
		CreateCourier:         app.CreateCreateCourierCommandHandler(),
		UpdateCourierLocation: app.CreateUpdateCourierLocationCommandHandler(),
		StartSession:          app.CreateStartSessionCommandHandler(),
		EndSession:            app.CreateEndSessionCommandHandler(),
		SettleSession:         app.CreateSettleSessionCommandHandler(),
		GetOrder:              app.CreateGetOrderQueryHandler(),
		GetReadyOrders:        app.CreateGetReadyOrdersQueryHandler(),
		GetOpenSession:        app.CreateGetOpenSessionQueryHandler(),
	}

	server := httpadapter.NewServer(handlers, app.EventBus(), metrics, logger)
	server.RegisterRoutes(e)

	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	go func() {
		if err := e.Start(fmt.Sprintf("0.0.0.0:%s", port)); err != nil && err != http.ErrServerClosed {
			logger.Error("web server stopped", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}
