package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/config"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/database"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/messaging"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/router"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

func main() {
	cfg := config.Load()
	utils.InitLoggerWithLevel(cfg.LogLevel)
	if err := cfg.Validate(); err != nil {
		utils.ErrorLogger.Fatalf("Invalid configuration: %v", err)
	}
	utils.SetJWTSecret(cfg.JWTSecret)
	if cfg.AdminPasswordHash == "" {
		utils.ErrorLogger.Warn("ADMIN_PASSWORD_HASH is empty, staff login is disabled")
	}

	// Set gin mode
	if cfg.GinMode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	// Initialize DB
	db, err := config.InitDB(cfg)
	if err != nil {
		utils.ErrorLogger.Fatalf("Failed to connect to database: %v", err)
	}
	if err := database.AutoMigrate(db); err != nil {
		utils.ErrorLogger.Fatalf("Failed to AutoMigrate: %v", err)
	}
	utils.InfoLogger.Println("AutoMigrate completed.")

	weights := services.DefaultPriorityWeights()
	inv, err := config.LoadInventory(cfg.InventoryFile)
	if err != nil {
		utils.ErrorLogger.Warnf("Table inventory not loaded, keeping existing tables: %v", err)
	} else {
		added, err := database.SeedTables(db, inv.Tables)
		if err != nil {
			utils.ErrorLogger.Fatalf("Failed to seed tables: %v", err)
		}
		utils.InfoLogger.Printf("Table inventory loaded (%d tables, %d new)", len(inv.Tables), added)
		weights = services.WeightsFromConfig(inv.Priority)
	}

	gateway, err := services.NewRefundGateway(cfg.PaymentGateway, services.MidtransConfig{
		ServerKey:    cfg.MidtransServerKey,
		IsProduction: cfg.MidtransEnv == "production",
	})
	if err != nil {
		utils.ErrorLogger.Fatalf("Invalid payment gateway configuration: %v", err)
	}
	utils.InfoLogger.Printf("Refund gateway: %s", gateway.Name())

	notifier := services.MultiNotifier{services.NewStoreNotifier(db)}
	if cfg.RabbitMQURL != "" {
		conn, err := messaging.Dial(cfg.RabbitMQURL)
		if err != nil {
			utils.ErrorLogger.Errorf("RabbitMQ unavailable, notifications stay local: %v", err)
		} else {
			defer conn.Close()
			mq := messaging.NewNotifier(messaging.NewPublisher(conn))
			defer mq.Close()
			notifier = append(notifier, mq)
			utils.InfoLogger.Println("Publishing notifications to RabbitMQ")
		}
	}

	svc := services.New(db, services.Options{
		Weights:       weights,
		Gateway:       gateway,
		Notifier:      notifier,
		RetryInterval: cfg.RefundRetryInterval,
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Refund yang gagal saat pembatalan dicoba ulang di background
	svc.Refunds.Start(ctx)

	r := router.SetupRouter(db, svc, router.Options{
		CORSOrigin:        cfg.CORSOrigin,
		RequestsPerSecond: 50,
		Burst:             100,
		AdminUsername:     cfg.AdminUsername,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})

	if gin.Mode() == gin.DebugMode {
		if token, err := utils.GenerateToken(1, "admin"); err == nil {
			utils.InfoLogger.Printf("Development admin token: %s", token)
		}
	}

	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}
	go func() {
		utils.InfoLogger.Printf("Listening on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			utils.ErrorLogger.Fatal(err)
		}
	}()

	<-ctx.Done()
	utils.InfoLogger.Println("Shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		utils.ErrorLogger.Errorf("Server shutdown: %v", err)
	}
}
