package config

import (
	"time"

	"github.com/caarlos0/env/v9"
)

type Config struct {
	Server     ServerConfig
	Ticketing  TicketingConfig
	Content    ContentConfig
	Enrichment EnrichmentConfig
	Activity   ActivityConfig
	Kafka      KafkaConfig
	ClickHouse ClickHouseConfig
	Worker     WorkerConfig
	LogLevel   string `env:"LOG_LEVEL" envDefault:"info"`
}

type ServerConfig struct {
	Port         int           `env:"SERVER_PORT" envDefault:"8080"`
	ReadTimeout  time.Duration `env:"SERVER_READ_TIMEOUT" envDefault:"5s"`
	WriteTimeout time.Duration `env:"SERVER_WRITE_TIMEOUT" envDefault:"60s"`
}

// TicketingConfig points at the Guest Manager public API. An empty AuthToken is
// accepted here and reported by the client on first use.
type TicketingConfig struct {
	BaseURL    string        `env:"GUEST_MANAGER_BASE_URL" envDefault:"https://app.guestmanager.com/api/public/v2"`
	AuthToken  string        `env:"GUEST_MANAGER_AUTH_TOKEN"`
	AuthScheme string        `env:"GUEST_MANAGER_AUTH_SCHEME" envDefault:"Token"`
	PageSize   int           `env:"GUEST_MANAGER_PAGE_SIZE" envDefault:"10"`
	Timeout    time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
}

type ContentConfig struct {
	Endpoint       string        `env:"DATOCMS_ENDPOINT" envDefault:"https://graphql.datocms.com/"`
	APIToken       string        `env:"DATOCMS_API_TOKEN"`
	IncludeDrafts  bool          `env:"DATOCMS_INCLUDE_DRAFTS" envDefault:"false"`
	ExcludeInvalid bool          `env:"DATOCMS_EXCLUDE_INVALID" envDefault:"false"`
	Timeout        time.Duration `env:"UPSTREAM_TIMEOUT" envDefault:"15s"`
}

// EnrichmentConfig controls the per-event fan-out. The status sets decide which
// tickets count as registered and which as attended.
type EnrichmentConfig struct {
	Concurrency        int      `env:"ENRICH_CONCURRENCY" envDefault:"8"`
	RegisteredStatuses []string `env:"TICKET_REGISTERED_STATUSES" envDefault:"confirmed,checked_in" envSeparator:","`
	AttendedStatuses   []string `env:"TICKET_ATTENDED_STATUSES" envDefault:"checked_in" envSeparator:","`
}

type ActivityConfig struct {
	Enabled bool `env:"ACTIVITY_ENABLED" envDefault:"false"`
}

type KafkaConfig struct {
	Brokers           []string `env:"KAFKA_BROKERS" envDefault:"localhost:29092" envSeparator:","`
	Topic             string   `env:"KAFKA_TOPIC" envDefault:"admin-activity"`
	ConsumerGroup     string   `env:"KAFKA_CONSUMER_GROUP" envDefault:"activity-consumers"`
	Partitions        int      `env:"KAFKA_PARTITIONS" envDefault:"3"`
	ReplicationFactor int      `env:"KAFKA_REPLICATION_FACTOR" envDefault:"1"`
}

type ClickHouseConfig struct {
	Host     string `env:"CLICKHOUSE_HOST" envDefault:"localhost"`
	Port     int    `env:"CLICKHOUSE_PORT" envDefault:"9000"`
	Database string `env:"CLICKHOUSE_DATABASE" envDefault:"hxt_events"`
	Username string `env:"CLICKHOUSE_USERNAME" envDefault:"default"`
	Password string `env:"CLICKHOUSE_PASSWORD" envDefault:""`
}

type WorkerConfig struct {
	Count            int           `env:"WORKER_COUNT" envDefault:"2"`
	BatchSize        int           `env:"WORKER_BATCH_SIZE" envDefault:"100"`
	BatchTimeout     time.Duration `env:"WORKER_BATCH_TIMEOUT" envDefault:"1s"`
	RetryWorkerCount int           `env:"RETRY_WORKER_COUNT" envDefault:"1"`
	MaxRetryAttempts int           `env:"MAX_RETRY_ATTEMPTS" envDefault:"5"`
}

func Load() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
