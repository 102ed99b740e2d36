package main

import (
	"context"
	"flag"
	"log"
	"os"

	"rental-booking/cmd"
	"rental-booking/internal/data/repository"
	"rental-booking/internal/scheduler"
	"rental-booking/internal/view"
	"rental-booking/internal/wire"
	"rental-booking/pkg/database"
	"rental-booking/pkg/mapview"
	"rental-booking/pkg/notify"
	"rental-booking/pkg/payment"
	"rental-booking/pkg/utils"

	"go.uber.org/zap"
)

func main() {
	seed := flag.Bool("seed", false, "reset the database and load sample data, then exit")
	adminPassword := flag.String("admin-password", os.Getenv("SEED_ADMIN_PASSWORD"), "password for the seeded admin account")
	flag.Parse()

	// Load config
	config, err := utils.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Initialize logger
	logger, err := utils.InitLogger(config.App)
	if err != nil {
		log.Printf("Failed to init logger: %v. Using standard log.", err)
		logger, _ = zap.NewProduction()
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("port", config.App.Port),
		zap.Bool("debug", config.App.Debug),
	)

	// Connect to database
	db, err := database.InitDB(config.Database)
	if err != nil {
		logger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	ctx := context.Background()
	if err := database.Migrate(ctx, db); err != nil {
		logger.Fatal("Failed to migrate database", zap.Error(err))
	}

	logger.Info("Database connected successfully")

	repos := repository.NewRepository(db, logger)

	if *seed {
		if *adminPassword == "" {
			logger.Fatal("Seeding requires -admin-password or SEED_ADMIN_PASSWORD")
		}
		if err := cmd.Seed(ctx, db, repos, *adminPassword, logger); err != nil {
			logger.Fatal("Failed to seed database", zap.Error(err))
		}
		return
	}

	views, err := view.New(config.Payment.Currency)
	if err != nil {
		logger.Fatal("Failed to parse templates", zap.Error(err))
	}

	var notifier notify.Notifier = notify.NewLogNotifier(logger)
	if config.Email.SendGridAPIKey != "" {
		notifier = notify.NewSendGridNotifier(config.Email.SendGridAPIKey, config.Email.From, config.Email.FromName, logger)
	} else {
		logger.Warn("SENDGRID_API_KEY not set, confirmation emails will only be logged")
	}

	if config.Payment.StripeSecretKey == "" {
		logger.Warn("STRIPE_SECRET_KEY not set, deposit checkout will fail")
	}

	// Wire all dependencies
	app := wire.Wiring(repos, wire.Collaborators{
		Gateway:  payment.NewStripeGateway(config.Payment.StripeSecretKey, logger),
		Notifier: notifier,
		Maps:     mapview.NewRenderer(config.Map.CenterLat, config.Map.CenterLng, config.Map.Zoom, logger),
		Views:    views,
	}, config, logger)

	jobs := scheduler.NewScheduler(app.Service.Booking, repos.Session, logger)
	if err := jobs.Register(config.Booking.SweepSchedule); err != nil {
		logger.Fatal("Failed to register jobs", zap.Error(err))
	}
	jobs.Start()

	// Start server
	if err := cmd.APIServer(app.Router, config.App.Port, logger, jobs.Stop); err != nil {
		logger.Error("Server exited", zap.Error(err))
	}
}
