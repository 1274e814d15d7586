package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	billingapp "github.com/flamenca/backend/internal/application/billing"
	catalogapp "github.com/flamenca/backend/internal/application/catalog"
	identityapp "github.com/flamenca/backend/internal/application/identity"
	notificationapp "github.com/flamenca/backend/internal/application/notification"
	orderingapp "github.com/flamenca/backend/internal/application/ordering"
	syncapp "github.com/flamenca/backend/internal/application/sync"
	workforceapp "github.com/flamenca/backend/internal/application/workforce"
	"github.com/flamenca/backend/internal/domain/integration"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/infrastructure/accounting"
	"github.com/flamenca/backend/internal/infrastructure/auth"
	"github.com/flamenca/backend/internal/infrastructure/config"
	"github.com/flamenca/backend/internal/infrastructure/logger"
	"github.com/flamenca/backend/internal/infrastructure/messaging"
	"github.com/flamenca/backend/internal/infrastructure/persistence"
	"github.com/flamenca/backend/internal/infrastructure/storefront"
	"github.com/flamenca/backend/internal/interfaces/http/handler"
	"github.com/flamenca/backend/internal/interfaces/http/middleware"
	"github.com/flamenca/backend/internal/interfaces/http/router"
	"go.uber.org/zap"
)

const version = "1.0.0"

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	log.Info("Starting Flamenca backend",
		zap.String("app", cfg.App.Name),
		zap.String("env", cfg.App.Env),
		zap.String("port", cfg.App.Port),
		zap.String("version", version),
	)

	gormLog := logger.NewGormLogger(log, logger.MapGormLogLevel(cfg.Log.Level))
	db, err := persistence.NewDatabaseWithLogger(&cfg.Database, gormLog)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Error("Error closing database", zap.Error(err))
		}
	}()
	log.Info("Database connected")

	// Repositories
	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	productRepo := persistence.NewGormProductRepository(db.DB)
	invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	timeEntryRepo := persistence.NewGormTimeEntryRepository(db.DB)
	incidentRepo := persistence.NewGormIncidentRepository(db.DB)

	// External adapters
	var store integration.Storefront
	if cfg.WooCommerce.Configured() {
		wooAdapter, err := storefront.NewWooCommerceAdapter(&storefront.WooCommerceConfig{
			BaseURL:        cfg.WooCommerce.BaseURL,
			ConsumerKey:    cfg.WooCommerce.ConsumerKey,
			ConsumerSecret: cfg.WooCommerce.ConsumerSecret,
			Timeout:        cfg.WooCommerce.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to configure storefront adapter", zap.Error(err))
		}
		store = wooAdapter
		log.Info("Storefront adapter configured", zap.String("base_url", cfg.WooCommerce.BaseURL))
	} else {
		store = storefront.NewNotConfigured()
		log.Warn("Storefront credentials not set, sync operations disabled")
	}

	holdedAdapter, err := accounting.NewHoldedAdapter(&accounting.HoldedConfig{
		APIKey:  cfg.Holded.APIKey,
		BaseURL: cfg.Holded.BaseURL,
		Mode:    accounting.Mode(cfg.Holded.Mode),
		Timeout: cfg.Holded.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to configure accounting adapter", zap.Error(err))
	}
	log.Info("Accounting adapter configured", zap.String("mode", cfg.Holded.Mode))

	messagingCfg := &messaging.Config{
		Mode:          messaging.Mode(cfg.Messaging.Mode),
		SMSAccountSID: cfg.Messaging.SMSAccountSID,
		SMSAuthToken:  cfg.Messaging.SMSAuthToken,
		SMSFrom:       cfg.Messaging.SMSFrom,
		WhatsAppFrom:  cfg.Messaging.WhatsAppFrom,
		EmailAPIKey:   cfg.Messaging.EmailAPIKey,
		EmailFrom:     cfg.Messaging.EmailFrom,
	}
	smsSender, err := messaging.NewSMSSender(messagingCfg)
	if err != nil {
		log.Fatal("Failed to configure SMS sender", zap.Error(err))
	}
	whatsappSender, err := messaging.NewWhatsAppSender(messagingCfg)
	if err != nil {
		log.Fatal("Failed to configure WhatsApp sender", zap.Error(err))
	}
	emailSender, err := messaging.NewEmailSender(messagingCfg)
	if err != nil {
		log.Fatal("Failed to configure email sender", zap.Error(err))
	}
	log.Info("Messaging configured", zap.String("mode", cfg.Messaging.Mode))

	jwtService := auth.NewJWTService(cfg.JWT)

	// Application services
	dispatcher := notificationapp.NewDispatcher(
		[]notification.Sender{smsSender, whatsappSender, emailSender},
		deliveryRepo, templateRepo, log)
	autoNotify := notificationapp.NewAutoNotifyService(dispatcher, settingsRepo, timeEntryRepo, userRepo, log)
	settingsService := notificationapp.NewSettingsService(settingsRepo, log)
	templateService := notificationapp.NewTemplateService(templateRepo, log)

	authService := identityapp.NewAuthService(userRepo, jwtService, log)
	userService := identityapp.NewUserService(userRepo, autoNotify, log)

	orderService := orderingapp.NewOrderService(orderRepo, productRepo, log)
	productService := catalogapp.NewProductService(productRepo, store, autoNotify, log)
	invoiceService := billingapp.NewInvoiceService(invoiceRepo, orderRepo, holdedAdapter, log)
	orderSyncService := syncapp.NewOrderSyncService(store, orderRepo, autoNotify, cfg.Sync, log)
	reconciliationService := syncapp.NewReconciliationService(store, orderRepo, log)
	billingSyncService := syncapp.NewBillingSyncService(store, orderRepo, invoiceService, cfg.Sync, log)

	timeService := workforceapp.NewTimeService(timeEntryRepo, userRepo, autoNotify, log)
	incidentService := workforceapp.NewIncidentService(incidentRepo, userRepo, autoNotify, log)

	// HTTP layer
	middleware.SetupValidator()
	engine := router.New(cfg, jwtService, log, router.Handlers{
		Health:       handler.NewHealthHandler(db.DB, version),
		Auth:         handler.NewAuthHandler(authService),
		User:         handler.NewUserHandler(userService),
		Order:        handler.NewOrderHandler(orderService),
		Product:      handler.NewProductHandler(productService),
		Invoice:      handler.NewInvoiceHandler(invoiceService),
		Sync:         handler.NewSyncHandler(orderSyncService, reconciliationService, billingSyncService),
		Webhook:      handler.NewWebhookHandler(orderSyncService, productService, log),
		Notification: handler.NewNotificationHandler(dispatcher, settingsService, templateService),
		TimeEntry:    handler.NewTimeEntryHandler(timeService),
		Incident:     handler.NewIncidentHandler(incidentService),
	})

	srv := &http.Server{
		Addr:           ":" + cfg.App.Port,
		Handler:        engine,
		ReadTimeout:    cfg.HTTP.ReadTimeout,
		WriteTimeout:   cfg.HTTP.WriteTimeout,
		IdleTimeout:    cfg.HTTP.IdleTimeout,
		MaxHeaderBytes: cfg.HTTP.MaxHeaderBytes,
	}

	// Background sync loop, enabled by sync.interval
	syncCtx, stopSync := context.WithCancel(context.Background())
	defer stopSync()
	if cfg.Sync.Interval > 0 && cfg.WooCommerce.Configured() {
		go runSyncLoop(syncCtx, orderSyncService, cfg.Sync.Interval, log)
	}

	go func() {
		log.Info("HTTP server listening", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down")
	stopSync()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Error("Forced shutdown", zap.Error(err))
	}
	log.Info("Server stopped")
}

// runSyncLoop imports new storefront orders on a fixed interval until the
// context is cancelled
func runSyncLoop(ctx context.Context, svc *syncapp.OrderSyncService, interval time.Duration, log *zap.Logger) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	log.Info("Background order sync enabled", zap.Duration("interval", interval))
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := svc.SyncNewOrders(ctx); err != nil {
				log.Error("Background order sync failed", zap.Error(err))
			}
		}
	}
}
