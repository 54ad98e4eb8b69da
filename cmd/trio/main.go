package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"trio/internal/app"
	"trio/internal/app/middleware"
	appoutbox "trio/internal/app/outbox"
	"trio/internal/app/uow"
	domainpricing "trio/internal/domain/pricing"
	"trio/internal/infra/broker/kafka"
	"trio/internal/infra/config"
	mongostore "trio/internal/infra/db/mongo"
	ginserver "trio/internal/infra/http/gin"
	"trio/internal/infra/obs"
	"trio/internal/infra/outbox"
	"trio/internal/infra/storage/memory"
)

const eventSource = "app://trio"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		obs.NewLogger("dev").Error("invalid configuration", "error", err)
		os.Exit(1)
	}
	logger := obs.NewLogger(cfg.Env)

	if err := run(ctx, cfg, logger); err != nil {
		logger.Error("trio stopped with error", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

func run(ctx context.Context, cfg config.Config, logger *slog.Logger) error {
	calculator, err := domainpricing.NewCalculator(cfg.FeeSchedule())
	if err != nil {
		return fmt.Errorf("fee schedule: %w", err)
	}

	var producer *kafka.Producer
	if cfg.KafkaEnabled() {
		producer, err = kafka.NewProducer(cfg.KafkaBrokers, kafka.NewConfig("trio"))
		if err != nil {
			return fmt.Errorf("kafka producer: %w", err)
		}
		defer producer.Close()
	}
	relay := outbox.Relay{TopicPrefix: cfg.KafkaTopicPrefix, Source: eventSource}
	if producer != nil {
		relay.Producer = producer
	}

	infra, err := buildInfrastructure(ctx, cfg, relay, logger)
	if err != nil {
		return err
	}
	defer infra.close()

	application := app.New(app.Dependencies{
		UoWFactory:      infra.factory,
		Pricing:         calculator,
		Outbox:          infra.outbox,
		Idempotency:     infra.idempotency,
		Logger:          logger,
		DefaultCurrency: cfg.Currency,
	})
	logger.Info("application assembled",
		"storage", cfg.StorageMode,
		"kafka", cfg.KafkaEnabled(),
		"commands", application.CommandKeys,
		"queries", application.QueryKeys,
	)

	fixturesPath := cfg.ListingsFixtures
	if fixturesPath == "" {
		fixturesPath = defaultListingFixturesPath()
	}
	if err := loadListingFixtures(ctx, infra.factory, fixturesPath, cfg.Currency, logger); err != nil {
		logger.Warn("listing fixtures load failed", "error", err, "path", fixturesPath)
	}

	if infra.worker != nil {
		go func() {
			if err := infra.worker.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
				logger.Error("outbox worker stopped", "error", err)
			}
		}()
	}

	handlers := ginserver.Handlers{
		Listing:      ginserver.ListingHandler{Commands: application.Commands, Queries: application.Queries, Logger: logger},
		Booking:      ginserver.BookingHandler{Commands: application.Commands, Queries: application.Queries, Logger: logger},
		Availability: ginserver.AvailabilityHandler{Queries: application.Queries, Logger: logger},
	}
	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Checks:  infra.checks,
		Timeout: 2 * time.Second,
	}, handlers)

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("http server: %w", err)
	}
	return nil
}

type infrastructure struct {
	factory     uow.UoWFactory
	outbox      appoutbox.Outbox
	idempotency middleware.IdempotencyStore
	worker      *outbox.Worker
	checks      map[string]obs.Check
	close       func()
}

func buildInfrastructure(ctx context.Context, cfg config.Config, relay outbox.Relay, logger *slog.Logger) (infrastructure, error) {
	switch cfg.StorageMode {
	case config.StorageMongo:
		return buildMongo(ctx, cfg, relay, logger)
	default:
		return buildMemory(cfg, relay, logger), nil
	}
}

// buildMemory delivers events synchronously after each commit; there is no durable outbox
// to poll, so a failed delivery is logged and the committed command still succeeds.
func buildMemory(cfg config.Config, relay outbox.Relay, logger *slog.Logger) infrastructure {
	sink := memory.Sink(outbox.LogSink(logger))
	if relay.Producer != nil {
		sink = func(ctx context.Context, records []appoutbox.EventRecord) error {
			if err := relay.Deliver(ctx, records); err != nil {
				logger.ErrorContext(ctx, "event delivery failed", "error", err, "records", len(records))
			}
			return nil
		}
	}
	return infrastructure{
		factory:     memory.Factory{Store: memory.NewStore()},
		outbox:      memory.NewOutbox(sink),
		idempotency: memory.NewIdempotencyStore(cfg.IdempotencyTTL),
		checks:      map[string]obs.Check{},
		close:       func() {},
	}
}

func buildMongo(ctx context.Context, cfg config.Config, relay outbox.Relay, logger *slog.Logger) (infrastructure, error) {
	client, err := mongostore.New(ctx, cfg.MongoURI, cfg.MongoDB)
	if err != nil {
		return infrastructure{}, fmt.Errorf("mongo connect: %w", err)
	}
	closeClient := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := client.Close(closeCtx); err != nil {
			logger.Error("mongo disconnect failed", "error", err)
		}
	}
	fail := func(step string, err error) (infrastructure, error) {
		closeClient()
		return infrastructure{}, fmt.Errorf("%s: %w", step, err)
	}
	if err := client.Ping(ctx); err != nil {
		return fail("mongo ping", err)
	}
	if err := client.EnsureIndexes(ctx); err != nil {
		return fail("mongo indexes", err)
	}
	store, err := outbox.NewMongoStore(ctx, client.DB)
	if err != nil {
		return fail("outbox store", err)
	}
	idempotency, err := mongostore.NewIdempotencyStore(ctx, client.DB, cfg.IdempotencyTTL)
	if err != nil {
		return fail("idempotency store", err)
	}

	infra := infrastructure{
		factory:     mongostore.NewFactory(client.DB),
		outbox:      store,
		idempotency: idempotency,
		checks:      map[string]obs.Check{"mongo": client.Ping},
		close:       closeClient,
	}
	if relay.Producer != nil {
		infra.worker = &outbox.Worker{
			Store:    store,
			Relay:    relay,
			Interval: cfg.OutboxPollInterval,
			ID:       "trio-" + uuid.NewString(),
			Backoff:  cfg.RetryBackoff,
			Logger:   logger,
		}
	} else {
		logger.Warn("KAFKA_BROKERS not set, outbox records stay pending")
	}
	return infra, nil
}
