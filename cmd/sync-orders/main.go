package main

import (
	"context"
	"flag"
	"os"
	"time"

	billingapp "github.com/flamenca/backend/internal/application/billing"
	notificationapp "github.com/flamenca/backend/internal/application/notification"
	syncapp "github.com/flamenca/backend/internal/application/sync"
	"github.com/flamenca/backend/internal/domain/notification"
	"github.com/flamenca/backend/internal/infrastructure/accounting"
	"github.com/flamenca/backend/internal/infrastructure/config"
	"github.com/flamenca/backend/internal/infrastructure/logger"
	"github.com/flamenca/backend/internal/infrastructure/messaging"
	"github.com/flamenca/backend/internal/infrastructure/persistence"
	"github.com/flamenca/backend/internal/infrastructure/storefront"
	"go.uber.org/zap"
)

// sync-orders imports new storefront orders from the command line, for cron
// jobs and manual runs.
func main() {
	var (
		reconcile bool
		invoices  bool
		timeout   time.Duration
	)
	flag.BoolVar(&reconcile, "reconcile", false, "Also reconcile statuses of already imported orders")
	flag.BoolVar(&invoices, "invoices", false, "Also invoice completed orders in the accounting system")
	flag.DurationVar(&timeout, "timeout", 10*time.Minute, "Overall run timeout")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		panic("Failed to load configuration: " + err.Error())
	}

	log, err := logger.New(&logger.Config{
		Level:  cfg.Log.Level,
		Format: "console",
		Output: "stdout",
	})
	if err != nil {
		panic("Failed to initialize logger: " + err.Error())
	}
	defer func() {
		_ = log.Sync()
	}()

	if !cfg.WooCommerce.Configured() {
		log.Error("Storefront credentials not set, nothing to sync")
		os.Exit(1)
	}

	db, err := persistence.NewDatabase(&cfg.Database)
	if err != nil {
		log.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer func() {
		_ = db.Close()
	}()

	store, err := storefront.NewWooCommerceAdapter(&storefront.WooCommerceConfig{
		BaseURL:        cfg.WooCommerce.BaseURL,
		ConsumerKey:    cfg.WooCommerce.ConsumerKey,
		ConsumerSecret: cfg.WooCommerce.ConsumerSecret,
		Timeout:        cfg.WooCommerce.Timeout,
	})
	if err != nil {
		log.Fatal("Failed to configure storefront adapter", zap.Error(err))
	}

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

	userRepo := persistence.NewGormUserRepository(db.DB)
	orderRepo := persistence.NewGormOrderRepository(db.DB)
	deliveryRepo := persistence.NewGormDeliveryRepository(db.DB)
	templateRepo := persistence.NewGormTemplateRepository(db.DB)
	settingsRepo := persistence.NewGormSettingsRepository(db.DB)
	timeEntryRepo := persistence.NewGormTimeEntryRepository(db.DB)

	dispatcher := notificationapp.NewDispatcher(
		[]notification.Sender{smsSender, whatsappSender, emailSender},
		deliveryRepo, templateRepo, log)
	autoNotify := notificationapp.NewAutoNotifyService(dispatcher, settingsRepo, timeEntryRepo, userRepo, log)

	orderSync := syncapp.NewOrderSyncService(store, orderRepo, autoNotify, cfg.Sync, log)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	result, err := orderSync.SyncNewOrders(ctx)
	if err != nil {
		log.Fatal("Order sync failed", zap.Error(err))
	}
	log.Info("Order sync completed",
		zap.Int("synced", result.Synced),
		zap.Int("skipped", result.Skipped),
		zap.Int("notifications_sent", result.NotificationsSent))

	if reconcile {
		reconciliation := syncapp.NewReconciliationService(store, orderRepo, log)
		recResult, err := reconciliation.ReconcileStatuses(ctx)
		if err != nil {
			log.Fatal("Status reconciliation failed", zap.Error(err))
		}
		log.Info("Status reconciliation completed",
			zap.Int("checked", recResult.Checked),
			zap.Int("updated", recResult.Updated),
			zap.Int("missing", recResult.Missing))
	}

	if invoices {
		holdedAdapter, err := accounting.NewHoldedAdapter(&accounting.HoldedConfig{
			APIKey:  cfg.Holded.APIKey,
			BaseURL: cfg.Holded.BaseURL,
			Mode:    accounting.Mode(cfg.Holded.Mode),
			Timeout: cfg.Holded.Timeout,
		})
		if err != nil {
			log.Fatal("Failed to configure accounting adapter", zap.Error(err))
		}
		invoiceRepo := persistence.NewGormInvoiceRepository(db.DB)
		invoiceService := billingapp.NewInvoiceService(invoiceRepo, orderRepo, holdedAdapter, log)
		billingSync := syncapp.NewBillingSyncService(store, orderRepo, invoiceService, cfg.Sync, log)

		invResult, err := billingSync.ReconcileInvoices(ctx)
		if err != nil {
			log.Fatal("Invoice reconciliation failed", zap.Error(err))
		}
		log.Info("Invoice reconciliation completed",
			zap.Int("processed", invResult.Processed),
			zap.Int("invoiced", invResult.Invoiced),
			zap.Int("already_invoiced", invResult.AlreadyInvoiced),
			zap.Int("skipped_no_email", invResult.SkippedNoEmail),
			zap.Int("failed", invResult.Failed))
	}
}
