package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/kegflow/kegflow-stock-service/config"
	"github.com/kegflow/kegflow-stock-service/internal/auth"
	"github.com/kegflow/kegflow-stock-service/pkg/broker"
	"github.com/kegflow/kegflow-stock-service/pkg/cache"
	"github.com/kegflow/kegflow-stock-service/pkg/logger"
	"github.com/kegflow/kegflow-stock-service/pkg/postgres"

	ordH "github.com/kegflow/kegflow-stock-service/internal/order/handler"
	ordListenerPkg "github.com/kegflow/kegflow-stock-service/internal/order/listener"
	ordRepoPkg "github.com/kegflow/kegflow-stock-service/internal/order/repository"
	ordUCPkg "github.com/kegflow/kegflow-stock-service/internal/order/usecase"

	prodH "github.com/kegflow/kegflow-stock-service/internal/product/handler"
	prodRepoPkg "github.com/kegflow/kegflow-stock-service/internal/product/repository"
	prodUCPkg "github.com/kegflow/kegflow-stock-service/internal/product/usecase"

	stockH "github.com/kegflow/kegflow-stock-service/internal/stock/handler"
	stockRepoPkg "github.com/kegflow/kegflow-stock-service/internal/stock/repository"
	stockUCPkg "github.com/kegflow/kegflow-stock-service/internal/stock/usecase"

	recH "github.com/kegflow/kegflow-stock-service/internal/reconcile/handler"
	recUCPkg "github.com/kegflow/kegflow-stock-service/internal/reconcile/usecase"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

func main() {
	// 1. Load Configuration
	_ = godotenv.Load() // Load .env file if it exists
	cfg := config.LoadEnv()

	// 2. Initialize Logger
	logConfig := &logger.ZapLoggerConfig{
		IsDevelopment:     false,
		Encoding:          "json",
		Level:             "info",
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
	}

	if cfg.Server.AppEnv == "dev" || cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Encoding = cfg.Logger.Encoding
		logConfig.Level = cfg.Logger.Level
	}

	appLogger := logger.NewZapLogger(logConfig)
	defer appLogger.Sync()

	// 3. Connect to Database
	db, err := postgres.NewPostgres(&postgres.Config{
		Host:            cfg.Postgres.Host,
		Port:            cfg.Postgres.Port,
		User:            cfg.Postgres.User,
		Password:        cfg.Postgres.Password,
		DBName:          cfg.Postgres.DBName,
		SSLMode:         cfg.Postgres.SSLMode,
		MaxOpenConns:    cfg.Postgres.MaxOpenConns,
		MaxIdleConns:    cfg.Postgres.MaxIdleConns,
		ConnMaxLifetime: time.Duration(cfg.Postgres.ConnMaxLifetime) * time.Second,
		ConnMaxIdleTime: time.Duration(cfg.Postgres.ConnMaxIdleTime) * time.Second,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to database", zap.Error(err))
	}
	defer db.Close()
	appLogger.Info("Connected to PostgreSQL database", zap.String("db_name", cfg.Postgres.DBName))

	// 4. Initialize Repositories
	ordRepo := ordRepoPkg.NewPGRepository(db)
	prodRepo := prodRepoPkg.NewPGRepository(db)
	stockRepo := stockRepoPkg.NewPGRepository(db)

	// 5. Initialize Redis
	redisClient, err := cache.NewRedisClient(&cache.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		appLogger.Fatal("Could not connect to Redis", zap.Error(err))
	}
	defer redisClient.Close()
	appLogger.Info("Connected to Redis", zap.String("addr", cfg.Redis.Addr))

	// 5.5 Initialize Kafka Consumer
	kafkaConsumer := broker.NewConsumer(&broker.Config{
		Brokers: cfg.Kafka.Brokers,
		Topic:   cfg.Kafka.Topic,
		GroupID: cfg.Kafka.GroupID,
	})
	defer kafkaConsumer.Close()
	appLogger.Info("Connected to Kafka Consumer",
		zap.Strings("brokers", cfg.Kafka.Brokers), zap.String("topic", cfg.Kafka.Topic))

	// 6. Initialize UseCases
	ordUC := ordUCPkg.NewOrderUseCase(ordRepo, appLogger)
	prodUC := prodUCPkg.NewProductUseCase(prodRepo, redisClient, appLogger)
	stockUC := stockUCPkg.NewStockUseCase(stockRepo, prodRepo, redisClient, cfg.Stock, appLogger)
	recUC := recUCPkg.NewReconcileUseCase(stockRepo, prodRepo, appLogger)

	// 6.5 Initialize Listeners
	deliveryListener := ordListenerPkg.NewDeliveryListener(kafkaConsumer, ordUC, appLogger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go deliveryListener.Start(ctx)

	// 7. Initialize Handlers & Routes
	ordHandler := ordH.NewOrderHandler(ordUC, appLogger)
	prodHandler := prodH.NewProductHandler(prodUC, appLogger)
	stockHandler := stockH.NewStockHandler(stockUC, appLogger)
	recHandler := recH.NewReconcileHandler(recUC, ordUC, appLogger)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	api := http.NewServeMux()
	api.HandleFunc("POST /orders", ordHandler.Create)
	api.HandleFunc("GET /orders", ordHandler.List)
	api.HandleFunc("GET /orders/{id}", ordHandler.Get)
	api.HandleFunc("PATCH /orders/{id}/status", ordHandler.UpdateStatus)
	api.HandleFunc("POST /orders/{id}/cancel", ordHandler.Cancel)

	api.HandleFunc("POST /orders/{id}/scan", recHandler.Scan)
	api.HandleFunc("GET /orders/{id}/scan", recHandler.Progress)
	api.HandleFunc("DELETE /orders/{id}/scan", recHandler.Reset)

	api.HandleFunc("POST /stock/intake", stockHandler.Intake)
	api.HandleFunc("GET /stock/units", stockHandler.List)
	api.HandleFunc("POST /stock/units/{id}/code", stockHandler.IssueCode)
	api.HandleFunc("DELETE /stock/units/{id}", stockHandler.Delete)
	api.HandleFunc("GET /stock/summary", stockHandler.Summary)

	api.HandleFunc("POST /products", prodHandler.Create)
	api.HandleFunc("GET /products", prodHandler.List)
	api.HandleFunc("GET /products/{id}", prodHandler.Get)

	mux.Handle("/", auth.Middleware(api))

	port := cfg.Server.HTTPPort
	if !strings.HasPrefix(port, ":") {
		port = ":" + port
	}

	srv := &http.Server{
		Addr:         port,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	appLogger.Info("Starting HTTP server", zap.String("port", port))

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			appLogger.Fatal("failed to serve", zap.Error(err))
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
	appLogger.Info("Server stopped")
}
