package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"dronedesk"
	"dronedesk/internal/api/handler/endpoints"
	"dronedesk/internal/api/models"
	"dronedesk/internal/api/service"
	"dronedesk/pkg"

	"github.com/gin-contrib/cors"
	"github.com/gin-contrib/graceful"
	"github.com/gin-gonic/gin"
)

func main() {
	dronedesk.InitConfig(".env")
	gin.SetMode(gin.ReleaseMode)

	if dronedesk.GetConfig().Mode == "dev" {
		if err := dronedesk.DB.AutoMigrate(
			&models.User{},
			&models.Lead{},
			&models.Client{},
			&models.Pilot{},
			&models.W9Form{},
			&models.Job{},
			&models.JobAssignment{},
			&models.PilotPayment{},
			&models.Invoice{},
			&models.InvoiceLineItem{},
			&models.Contract{},
		); err != nil {
			dronedesk.Logger.Fatal().Err(err).Msg("Failed to migrate database")
		}
		dronedesk.Logger.Info().Msg("Database migrated successfully")
		gin.SetMode(gin.DebugMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	router, err := graceful.Default(graceful.WithAddr(dronedesk.GetConfig().ApiPort))
	if err != nil {
		panic(err)
	}
	defer stop()
	defer router.Close()
	defer pkg.CloseNATS()

	router.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	initAPI(router)
	go runOverdueSweep(ctx)

	dronedesk.Logger.Debug().Msgf("Starting CRM API on port %s", dronedesk.GetConfig().ApiPort)
	if err = router.RunWithContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		dronedesk.Logger.Fatal().Msg(err.Error())
		panic(err)
	}
}

func initAPI(router *graceful.Graceful) {
	endpoints.AuthHandler(router)
	endpoints.LeadHandler(router)
	endpoints.JobHandler(router)
	endpoints.PaymentHandler(router)
	endpoints.InvoiceHandler(router)
	endpoints.ContractHandler(router)
	endpoints.TaxHandler(router)
}

// runOverdueSweep periodically flips past-due SENT invoices to OVERDUE. The
// sweep is also exposed as an admin endpoint; the Redis lock keeps multiple
// instances from double-mailing reminders.
func runOverdueSweep(ctx context.Context) {
	invoiceService := service.NewInvoiceService()
	ticker := time.NewTicker(dronedesk.GetConfig().InvoiceConfig.OverdueSweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			count, err := invoiceService.SweepOverdue()
			if err != nil {
				dronedesk.Logger.Error().Err(err).Msg("Overdue invoice sweep failed")
				continue
			}
			if count > 0 {
				dronedesk.Logger.Info().Int("count", count).Msg("Marked invoices overdue")
			}
		}
	}
}
