package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"innkeeper/internal/app/reservation"
	"innkeeper/internal/app/search"
	"innkeeper/internal/domain/availability"
	domainbooking "innkeeper/internal/domain/booking"
	domaininventory "innkeeper/internal/domain/inventory"
	"innkeeper/internal/domain/shared/events"
	"innkeeper/internal/infra/broker/kafka"
	"innkeeper/internal/infra/config"
	mongodb "innkeeper/internal/infra/db/mongo"
	ginserver "innkeeper/internal/infra/http/gin"
	"innkeeper/internal/infra/obs"
	"innkeeper/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("configuration invalid", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	publisher, closePublisher, err := buildPublisher(cfg, logger)
	if err != nil {
		logger.Error("kafka producer init failed", "error", err)
		os.Exit(1)
	}
	defer closePublisher()

	app, ready, err := buildApplication(ctx, cfg, logger, publisher)
	if err != nil {
		logger.Error("application init failed", "error", err)
		os.Exit(1)
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{Ready: ready}, app)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func buildPublisher(cfg config.Config, logger *slog.Logger) (events.Publisher, func(), error) {
	if len(cfg.KafkaBrokers) == 0 {
		logger.Info("no kafka brokers configured, logging domain events instead")
		return obs.EventLogger{Logger: logger}, func() {}, nil
	}
	producer, err := kafka.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		return nil, nil, err
	}
	closeFn := func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
	return kafka.EventPublisher{Producer: producer, TopicPrefix: cfg.KafkaTopicPrefix}, closeFn, nil
}

func buildApplication(ctx context.Context, cfg config.Config, logger *slog.Logger, publisher events.Publisher) (ginserver.Handlers, func() error, error) {
	var (
		inventoryRepo domaininventory.Repository
		bookingRepo   domainbooking.Repository
		ready         = func() error { return nil }
		warmup        []*domainbooking.Booking
	)

	switch cfg.StoreMode {
	case config.StoreMongo:
		client, err := mongodb.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return ginserver.Handlers{}, nil, err
		}
		repo := mongodb.NewBookingRepository(client.DB)
		warmup, err = repo.ListActive(ctx)
		if err != nil {
			return ginserver.Handlers{}, nil, err
		}
		inventoryRepo = mongodb.NewInventoryRepository(client.DB)
		bookingRepo = repo
		ready = func() error {
			pingCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(pingCtx)
		}
	default:
		repo := memory.NewInventoryRepository()
		path := cfg.InventoryFixtures
		if path == "" {
			path = filepath.Join("fixtures", "inventory.json")
		}
		if count, err := memory.LoadFixtures(path, repo); err != nil {
			logger.Warn("inventory fixtures load failed", "error", err, "path", path)
		} else {
			logger.Info("inventory fixtures loaded", "hotels", count, "path", path)
		}
		inventoryRepo = repo
		bookingRepo = memory.NewBookingRepository()
	}

	ledger := availability.NewLedger(inventoryRepo, publisher)
	for _, b := range warmup {
		if _, err := ledger.Reserve(ctx, b.RoomID, b.Range, string(b.ID)); err != nil {
			logger.Warn("ledger warmup skipped booking", "booking_id", b.ID, "error", err)
		}
	}

	searchSvc := search.NewService(inventoryRepo, ledger)
	reservationSvc := reservation.NewService(inventoryRepo, ledger, bookingRepo, publisher, logger)

	return ginserver.Handlers{
		Search:       ginserver.SearchHandler{Service: searchSvc},
		Hotel:        ginserver.HotelHandler{Inventory: inventoryRepo},
		Availability: ginserver.AvailabilityHandler{Ledger: ledger},
		Booking:      ginserver.BookingHandler{Reservations: reservationSvc},
	}, ready, nil
}
