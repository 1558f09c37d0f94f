package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"tripwatch-service/internal/infrastructure/config"
	"tripwatch-service/internal/infrastructure/oauth"
	"tripwatch-service/internal/infrastructure/persistence"
	"tripwatch-service/internal/interface/amadeus"
	"tripwatch-service/internal/interface/notifier"
	"tripwatch-service/internal/interface/repository"
	"tripwatch-service/internal/usecase"
	"tripwatch-service/pkg/logger"
	"tripwatch-service/pkg/metrics"

	"tripwatch-service/internal/domain/entity"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	// Create logger
	log := logger.NewLogger()
	log.Info("Starting Tripwatch Service")

	// Load and validate configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatal("Failed to load config", "error", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal("Invalid configuration", "error", err)
	}

	// Set up context with cancellation
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Set up PostgreSQL connection
	gormDB, err := gorm.Open(postgres.Open(cfg.PostgresDSN), &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to PostgreSQL", "error", err)
	}

	// Set up MongoDB connection for the raw offer archive
	log.Info("Connecting to MongoDB")
	mongoClient, err := persistence.NewMongoClient(ctx, cfg.MongoURI, cfg.MongoUser, cfg.MongoPassword)
	if err != nil {
		log.Fatal("Failed to connect to MongoDB", "error", err)
	}
	mongoDB := persistence.GetDatabase(mongoClient, cfg.MongoDB)

	// Set up repositories
	priceRepo, err := repository.NewGormPriceRepository(gormDB)
	if err != nil {
		log.Fatal("Failed to set up price repository", "error", err)
	}
	hotelRepo, err := repository.NewGormHotelRepository(gormDB)
	if err != nil {
		log.Fatal("Failed to set up hotel repository", "error", err)
	}
	offerArchive := repository.NewMongoOfferArchive(mongoDB)

	// Set up the search collaborator
	searchClient := amadeus.NewClient(ctx, cfg.AmadeusBaseURL, cfg.AmadeusClientID, cfg.AmadeusClientSecret, log)

	// Set up Gmail notifications
	gmailOAuth := oauth.NewGmailOAuth(
		cfg.GmailClientID,
		cfg.GmailClientSecret,
		cfg.GmailRefreshToken,
		log,
	)
	tokenSource := gmailOAuth.GetTokenSource(ctx)
	gmailNotifier, err := notifier.NewGmailNotifier(ctx, tokenSource, cfg.AlertSender, cfg.AlertRecipient, log)
	if err != nil {
		log.Fatal("Failed to create Gmail notifier", "error", err)
	}

	// Set up the tracking core
	trip := cfg.Trip
	router, err := usecase.NewItineraryRouter(
		trip.HomeAirport,
		entity.CityGroup{Code: trip.FirstCityCode, Airports: trip.FirstCityAirports},
		entity.CityGroup{Code: trip.SecondCityCode, Airports: trip.SecondCityAirports},
		trip.DepartureCutoff,
		trip.ArrivalCutoff,
	)
	if err != nil {
		log.Fatal("Failed to set up itinerary router", "error", err)
	}
	engine := usecase.NewRecommendationEngine(trip.FirstCityCode, trip.SecondCityCode, trip.TripLengthDays, trip.Festival)
	policy := usecase.NewAlertPolicy(trip.AlertThreshold)
	sweepMetrics := metrics.NewMetrics("tripwatch")

	hotelTracker := usecase.NewHotelTracker(searchClient, hotelRepo, log)
	tracker := usecase.NewSweepTracker(
		router, searchClient, priceRepo, offerArchive, gmailNotifier,
		policy, engine, sweepMetrics, log,
		trip.HomeAirport, trip.FirstCityCode, trip.SecondCityCode,
		trip.TripLengthDays, trip.WindowStart, trip.WindowEnd,
	).WithHotelTracker(hotelTracker)

	// Run sweeps on the configured interval, starting immediately
	go func() {
		runSweep(ctx, tracker, log)

		sweepTicker := time.NewTicker(cfg.SweepInterval)
		defer sweepTicker.Stop()

		for {
			select {
			case <-ctx.Done():
				log.Info("Sweep loop stopped")
				return
			case <-sweepTicker.C:
				runSweep(ctx, tracker, log)
			}
		}
	}()

	// Set up HTTP server for metrics
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("Healthy"))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	// Start HTTP server in a goroutine
	go func() {
		log.Info("Starting HTTP server", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("HTTP server error", "error", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	sig := <-sigChan
	log.Info("Received signal", "signal", sig)

	// Graceful shutdown
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("HTTP server shutdown error", "error", err)
	}

	cancel() // Cancel the context to stop all goroutines

	// Disconnect from MongoDB
	if err := mongoClient.Disconnect(context.Background()); err != nil {
		log.Error("MongoDB disconnect error", "error", err)
	}

	log.Info("Tripwatch Service stopped")
}

func runSweep(ctx context.Context, tracker *usecase.SweepTracker, log logger.Logger) {
	log.Info("Starting price sweep")
	if err := tracker.RunSweep(ctx); err != nil {
		log.Error("Price sweep failed", "error", err)
		return
	}
	log.Info("Price sweep complete")
}
