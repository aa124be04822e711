package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds application configuration.
type Config struct {
	DatabaseURL  string
	IsProduction bool

	// Kafka event sink
	KafkaBrokers    string
	LoanEventsTopic string
	KafkaWriteWait  time.Duration

	// Worker pool used for fire-and-forget event dispatch
	EventWorkers int

	// Maximum retries for a lifecycle operation that loses an optimistic
	// concurrency race before ErrConcurrentModification is surfaced.
	MutationRetries int
}

// LoadConfig loads configuration from environment variables and .env file if present.
func LoadConfig() (*Config, error) {
	// Attempt to load .env file, ignore error if it doesn't exist
	_ = godotenv.Load()

	viper.SetDefault("PGSQL_URL", "")
	viper.SetDefault("IS_PRODUCTION", false)
	viper.SetDefault("KAFKA_BROKERS", "localhost:9092")
	viper.SetDefault("LOAN_EVENTS_TOPIC", "loan.events")
	viper.SetDefault("KAFKA_WRITE_WAIT", "5s")
	viper.SetDefault("EVENT_WORKERS", 8)
	viper.SetDefault("MUTATION_RETRIES", 3)

	viper.AutomaticEnv()

	cfg := &Config{}

	cfg.DatabaseURL = viper.GetString("PGSQL_URL")
	if cfg.DatabaseURL == "" {
		log.Println("Warning: PGSQL_URL environment variable not set.")
	}

	cfg.IsProduction = viper.GetBool("IS_PRODUCTION")
	cfg.KafkaBrokers = viper.GetString("KAFKA_BROKERS")
	cfg.LoanEventsTopic = viper.GetString("LOAN_EVENTS_TOPIC")

	writeWait, err := time.ParseDuration(viper.GetString("KAFKA_WRITE_WAIT"))
	if err != nil {
		log.Printf("Warning: Invalid KAFKA_WRITE_WAIT (%q). Defaulting to 5s.\n", viper.GetString("KAFKA_WRITE_WAIT"))
		writeWait = 5 * time.Second
	}
	cfg.KafkaWriteWait = writeWait

	cfg.EventWorkers = viper.GetInt("EVENT_WORKERS")
	if cfg.EventWorkers <= 0 {
		cfg.EventWorkers = 8
	}

	cfg.MutationRetries = viper.GetInt("MUTATION_RETRIES")
	if cfg.MutationRetries <= 0 {
		cfg.MutationRetries = 3
	}

	return cfg, nil
}
