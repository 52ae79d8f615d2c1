package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnvVars() {
	envVars := []string{
		"SERVER_PORT", "SERVER_READ_TIMEOUT", "SERVER_WRITE_TIMEOUT",
		"GUEST_MANAGER_BASE_URL", "GUEST_MANAGER_AUTH_TOKEN", "GUEST_MANAGER_AUTH_SCHEME",
		"GUEST_MANAGER_PAGE_SIZE", "UPSTREAM_TIMEOUT",
		"DATOCMS_ENDPOINT", "DATOCMS_API_TOKEN", "DATOCMS_INCLUDE_DRAFTS", "DATOCMS_EXCLUDE_INVALID",
		"ENRICH_CONCURRENCY", "TICKET_REGISTERED_STATUSES", "TICKET_ATTENDED_STATUSES",
		"ACTIVITY_ENABLED",
		"KAFKA_BROKERS", "KAFKA_TOPIC", "KAFKA_CONSUMER_GROUP",
		"KAFKA_PARTITIONS", "KAFKA_REPLICATION_FACTOR",
		"CLICKHOUSE_HOST", "CLICKHOUSE_PORT", "CLICKHOUSE_DATABASE",
		"CLICKHOUSE_USERNAME", "CLICKHOUSE_PASSWORD",
		"WORKER_COUNT", "WORKER_BATCH_SIZE", "WORKER_BATCH_TIMEOUT",
		"RETRY_WORKER_COUNT", "MAX_RETRY_ATTEMPTS",
		"LOG_LEVEL",
	}
	for _, v := range envVars {
		os.Unsetenv(v)
	}
}

func TestLoad_DefaultValues(t *testing.T) {
	clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	// Server defaults
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)

	// Upstream defaults
	assert.Equal(t, "https://app.guestmanager.com/api/public/v2", cfg.Ticketing.BaseURL)
	assert.Empty(t, cfg.Ticketing.AuthToken)
	assert.Equal(t, "Token", cfg.Ticketing.AuthScheme)
	assert.Equal(t, 10, cfg.Ticketing.PageSize)
	assert.Equal(t, 15*time.Second, cfg.Ticketing.Timeout)
	assert.Equal(t, "https://graphql.datocms.com/", cfg.Content.Endpoint)
	assert.Empty(t, cfg.Content.APIToken)
	assert.False(t, cfg.Content.IncludeDrafts)
	assert.Equal(t, 15*time.Second, cfg.Content.Timeout)

	// Enrichment defaults
	assert.Equal(t, 8, cfg.Enrichment.Concurrency)
	assert.Equal(t, []string{"confirmed", "checked_in"}, cfg.Enrichment.RegisteredStatuses)
	assert.Equal(t, []string{"checked_in"}, cfg.Enrichment.AttendedStatuses)

	// Activity pipeline is off unless asked for
	assert.False(t, cfg.Activity.Enabled)
	assert.Equal(t, []string{"localhost:29092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "admin-activity", cfg.Kafka.Topic)
	assert.Equal(t, "hxt_events", cfg.ClickHouse.Database)
	assert.Equal(t, 2, cfg.Worker.Count)
	assert.Equal(t, 5, cfg.Worker.MaxRetryAttempts)

	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoad_Credentials(t *testing.T) {
	clearEnvVars()
	os.Setenv("GUEST_MANAGER_AUTH_TOKEN", "gm-token")
	os.Setenv("GUEST_MANAGER_AUTH_SCHEME", "Bearer")
	os.Setenv("DATOCMS_API_TOKEN", "dato-token")
	os.Setenv("DATOCMS_INCLUDE_DRAFTS", "true")
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "gm-token", cfg.Ticketing.AuthToken)
	assert.Equal(t, "Bearer", cfg.Ticketing.AuthScheme)
	assert.Equal(t, "dato-token", cfg.Content.APIToken)
	assert.True(t, cfg.Content.IncludeDrafts)
}

func TestLoad_SharedUpstreamTimeout(t *testing.T) {
	clearEnvVars()
	os.Setenv("UPSTREAM_TIMEOUT", "3s")
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 3*time.Second, cfg.Ticketing.Timeout)
	assert.Equal(t, 3*time.Second, cfg.Content.Timeout)
}

func TestLoad_CustomEnrichmentConfig(t *testing.T) {
	clearEnvVars()
	os.Setenv("ENRICH_CONCURRENCY", "2")
	os.Setenv("TICKET_REGISTERED_STATUSES", "confirmed")
	os.Setenv("TICKET_ATTENDED_STATUSES", "checked_in,attended")
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.Enrichment.Concurrency)
	assert.Equal(t, []string{"confirmed"}, cfg.Enrichment.RegisteredStatuses)
	assert.Equal(t, []string{"checked_in", "attended"}, cfg.Enrichment.AttendedStatuses)
}

func TestLoad_CustomKafkaConfig(t *testing.T) {
	clearEnvVars()
	os.Setenv("ACTIVITY_ENABLED", "true")
	os.Setenv("KAFKA_BROKERS", "kafka1:9092,kafka2:9092")
	os.Setenv("KAFKA_TOPIC", "custom-activity")
	os.Setenv("KAFKA_PARTITIONS", "6")
	defer clearEnvVars()

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, cfg.Activity.Enabled)
	assert.Equal(t, []string{"kafka1:9092", "kafka2:9092"}, cfg.Kafka.Brokers)
	assert.Equal(t, "custom-activity", cfg.Kafka.Topic)
	assert.Equal(t, 6, cfg.Kafka.Partitions)
}

func TestLoad_InvalidPort(t *testing.T) {
	clearEnvVars()
	os.Setenv("SERVER_PORT", "not-a-number")
	defer clearEnvVars()

	cfg, err := Load()
	require.Error(t, err)
	assert.Nil(t, cfg)
}
