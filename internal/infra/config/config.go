package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/shopspring/decimal"

	domainpricing "trio/internal/domain/pricing"
)

const (
	StorageMemory = "memory"
	StorageMongo  = "mongo"
)

var (
	ErrUnknownStorageMode = errors.New("config: STORAGE_MODE must be memory or mongo")
	ErrMongoURIRequired   = errors.New("config: MONGO_URI is required in mongo mode")
)

// Config aggregates application configuration values loaded from environment variables.
type Config struct {
	Env                string          `envconfig:"APP_ENV" default:"dev"`
	HTTPAddr           string          `envconfig:"HTTP_ADDR" default:":8080"`
	StorageMode        string          `envconfig:"STORAGE_MODE" default:"memory"`
	MongoURI           string          `envconfig:"MONGO_URI"`
	MongoDB            string          `envconfig:"MONGO_DB" default:"trio"`
	KafkaBrokers       []string        `envconfig:"KAFKA_BROKERS"`
	KafkaTopicPrefix   string          `envconfig:"KAFKA_TOPIC_PREFIX"`
	IdempotencyTTL     time.Duration   `envconfig:"IDEMP_TTL" default:"168h"`
	OutboxPollInterval time.Duration   `envconfig:"OUTBOX_POLL_INTERVAL" default:"500ms"`
	RetryBackoff       []time.Duration `envconfig:"RETRY_BACKOFF" default:"1s,5s,30s"`
	ListingsFixtures   string          `envconfig:"LISTINGS_FIXTURES"`
	Currency           string          `envconfig:"CURRENCY" default:"USD"`
	Fees               FeeConfig
}

// FeeConfig holds the insurance percentages applied by the calculator.
type FeeConfig struct {
	RenterFeePercent          decimal.Decimal `envconfig:"RENTER_FEE_PERCENT" default:"10"`
	SubsequentDailyFeePercent decimal.Decimal `envconfig:"SUBSEQUENT_DAILY_FEE_PERCENT" default:"2"`
}

// Load parses configuration from the current environment.
func Load() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	cfg.StorageMode = strings.ToLower(strings.TrimSpace(cfg.StorageMode))
	cfg.Currency = strings.ToUpper(strings.TrimSpace(cfg.Currency))
	brokers := cfg.KafkaBrokers[:0]
	for _, b := range cfg.KafkaBrokers {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	cfg.KafkaBrokers = brokers
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) Validate() error {
	switch c.StorageMode {
	case StorageMemory:
	case StorageMongo:
		if c.MongoURI == "" {
			return ErrMongoURIRequired
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorageMode, c.StorageMode)
	}
	if err := c.FeeSchedule().Validate(); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

func (c Config) FeeSchedule() domainpricing.FeeSchedule {
	return domainpricing.FeeSchedule{
		RenterFee:          c.Fees.RenterFeePercent,
		SubsequentDailyFee: c.Fees.SubsequentDailyFeePercent,
	}
}

// KafkaEnabled reports whether outbox events should be published to brokers.
func (c Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}

func NewTestConfig() Config {
	return Config{
		Env:                "test",
		HTTPAddr:           ":0",
		StorageMode:        StorageMemory,
		MongoDB:            "trio_test",
		IdempotencyTTL:     time.Hour,
		OutboxPollInterval: 10 * time.Millisecond,
		RetryBackoff:       []time.Duration{10 * time.Millisecond},
		Currency:           "USD",
		Fees: FeeConfig{
			RenterFeePercent:          domainpricing.DefaultRenterFee,
			SubsequentDailyFeePercent: domainpricing.DefaultSubsequentDailyFee,
		},
	}
}
