package main

import (
	"time"

	"github.com/fenn-labs/ipo-monitor/config"
	"github.com/fenn-labs/ipo-monitor/handlers"
	"github.com/fenn-labs/ipo-monitor/jobs"
	"github.com/fenn-labs/ipo-monitor/services"
	"github.com/fenn-labs/ipo-monitor/shared"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/sirupsen/logrus"
)

func main() {
	// Load and validate config before any stage runs
	cfg := config.LoadConfig()
	if err := cfg.Validate(); err != nil {
		logrus.Fatalf("Configuration invalid: %v", err)
	}
	logrus.SetLevel(cfg.ParsedLogLevel())

	reportLocation := shared.ReportLocation()

	// Initialize services
	utilityService := services.NewUtilityService()
	analyzerService := services.NewAnalyzerService(utilityService)
	reportService := services.NewReportService(utilityService)
	finnhubService := services.NewFinnhubService(cfg.FinnhubAPIKey)
	defer finnhubService.Close()
	runLogService := services.NewRunLogService()
	emailService := services.NewEmailService(services.EmailConfig{
		SMTPHost:  cfg.SMTPHost,
		SMTPPort:  cfg.SMTPPort,
		SMTPUser:  cfg.EmailUser,
		SMTPPass:  cfg.EmailAppPassword,
		FromEmail: cfg.EmailUser,
		ToEmail:   cfg.EmailTo,
	})

	logrus.WithFields(logrus.Fields{
		"timezone":  reportLocation.String(),
		"smtp_host": cfg.SMTPHost,
		"smtp_port": cfg.SMTPPort,
	}).Info("IPO monitor services initialized")

	// Initialize the pipeline job and its daily trigger
	monitorJob := jobs.NewDailyMonitorJob(finnhubService, analyzerService, reportService, emailService, runLogService, reportLocation)
	scheduler := jobs.NewDailyScheduler(monitorJob, reportLocation)
	if err := scheduler.Start(); err != nil {
		logrus.Fatalf("Failed to start scheduler: %v", err)
	}
	defer scheduler.Stop()

	// Initialize handlers
	monitorHandler := handlers.NewMonitorHandler(scheduler, monitorJob, runLogService, reportLocation)

	// Setup Fiber
	app := fiber.New()

	// Middleware
	app.Use(logger.New())
	app.Use(cors.New())

	// Health check endpoint
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"status":    "ok",
			"timestamp": time.Now().Unix(),
		})
	})

	// Routes
	api := app.Group("/api/v1")
	api.Get("/status", monitorHandler.GetStatus)
	api.Get("/report/latest", monitorHandler.GetLatestReport)
	api.Get("/report/history", monitorHandler.GetReportHistory)

	admin := api.Group("/admin")
	admin.Post("/run", monitorHandler.TriggerRun)
	admin.Post("/metrics/reset", monitorHandler.ResetMetrics)

	// Start server
	logrus.Infof("Server starting on port %s", cfg.ServerPort)
	if err := app.Listen(":" + cfg.ServerPort); err != nil {
		logrus.Fatalf("Server failed to start: %v", err)
	}
}
