package clickhouse

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2"
	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/fazlanhoxton/hxt-events/infrastructure/config"
)

const (
	activityTable   = "admin_activity"
	hourlyTable     = "admin_activity_hourly"
	hourlyViewTable = "admin_activity_hourly_mv"
)

type Client struct {
	conn     driver.Conn
	database string
}

func NewClient(cfg config.ClickHouseConfig) (*Client, error) {
	addr := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	conn, err := clickhouse.Open(&clickhouse.Options{
		Addr: []string{addr},
		Auth: clickhouse.Auth{
			Database: cfg.Database,
			Username: cfg.Username,
			Password: cfg.Password,
		},
		Settings: clickhouse.Settings{
			"max_execution_time": 30,
		},
		DialTimeout:      5 * time.Second,
		MaxOpenConns:     10,
		MaxIdleConns:     5,
		ConnMaxLifetime:  time.Hour,
		ConnOpenStrategy: clickhouse.ConnOpenInOrder,
		Compression: &clickhouse.Compression{
			Method: clickhouse.CompressionLZ4,
		},
	})
	if err != nil {
		slog.Error("Failed to connect to ClickHouse", "addr", addr, "error", err)
		return nil, fmt.Errorf("failed to connect to clickhouse: %w", err)
	}

	if err := conn.Ping(context.Background()); err != nil {
		slog.Error("Failed to ping ClickHouse", "addr", addr, "error", err)
		return nil, fmt.Errorf("failed to ping clickhouse: %w", err)
	}

	slog.Info("Connected to ClickHouse", "addr", addr, "database", cfg.Database)
	return &Client{conn: conn, database: cfg.Database}, nil
}

func (c *Client) Conn() driver.Conn {
	return c.conn
}

func (c *Client) Database() string {
	return c.database
}

func (c *Client) Close() error {
	return c.conn.Close()
}

// schemaStatements creates the raw activity table and an hourly rollup fed by
// a materialized view. Every statement is idempotent.
func schemaStatements(db string) []string {
	return []string{
		fmt.Sprintf(`CREATE DATABASE IF NOT EXISTS %s`, db),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
			activity_id String,
			kind LowCardinality(String),
			entity_id String,
			name String,
			source LowCardinality(String),
			request_id String,
			occurred_at DateTime,
			inserted_at DateTime DEFAULT now()
		) ENGINE = ReplacingMergeTree(inserted_at)
		PARTITION BY toYYYYMM(occurred_at)
		ORDER BY (kind, occurred_at, activity_id)`, db, activityTable),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s.%s (
			kind LowCardinality(String),
			hour DateTime,
			activity_count SimpleAggregateFunction(sum, UInt64),
			unique_entities_state AggregateFunction(uniq, String)
		) ENGINE = AggregatingMergeTree()
		PARTITION BY toYYYYMM(hour)
		ORDER BY (kind, hour)`, db, hourlyTable),

		fmt.Sprintf(`CREATE MATERIALIZED VIEW IF NOT EXISTS %s.%s
		TO %s.%s AS
		SELECT
			kind,
			toStartOfHour(occurred_at) AS hour,
			count() AS activity_count,
			uniqState(entity_id) AS unique_entities_state
		FROM %s.%s
		GROUP BY kind, hour`, db, hourlyViewTable, db, hourlyTable, db, activityTable),
	}
}

func (c *Client) InitSchema(ctx context.Context) error {
	return initSchema(ctx, c.conn, c.database)
}

func initSchema(ctx context.Context, conn querier, database string) error {
	for i, query := range schemaStatements(database) {
		if err := conn.Exec(ctx, query); err != nil {
			slog.Error("Failed to execute schema query", "queryIndex", i, "error", err)
			return fmt.Errorf("failed to execute schema query: %w", err)
		}
	}

	slog.Info("ClickHouse schema initialized", "database", database, "tables", []string{activityTable, hourlyTable, hourlyViewTable})
	return nil
}
