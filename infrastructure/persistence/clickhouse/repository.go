package clickhouse

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/fazlanhoxton/hxt-events/domain/activity"
)

const maxBatchSize = 10000

// querier is the part of driver.Conn the schema setup and repository use.
type querier interface {
	Exec(ctx context.Context, query string, args ...any) error
	PrepareBatch(ctx context.Context, query string, opts ...driver.PrepareBatchOption) (driver.Batch, error)
	QueryRow(ctx context.Context, query string, args ...any) driver.Row
	Query(ctx context.Context, query string, args ...any) (driver.Rows, error)
}

type ActivityRepository struct {
	conn     querier
	database string
}

func NewActivityRepository(client *Client) *ActivityRepository {
	return &ActivityRepository{conn: client.Conn(), database: client.Database()}
}

func (r *ActivityRepository) InsertBatch(ctx context.Context, activities []*activity.Activity) error {
	for start := 0; start < len(activities); start += maxBatchSize {
		end := min(start+maxBatchSize, len(activities))
		if err := r.insertChunk(ctx, activities[start:end]); err != nil {
			return err
		}
	}
	return nil
}

func (r *ActivityRepository) insertChunk(ctx context.Context, activities []*activity.Activity) error {
	batch, err := r.conn.PrepareBatch(ctx, fmt.Sprintf(`
		INSERT INTO %s.%s (
			activity_id, kind, entity_id, name, source, request_id, occurred_at, inserted_at
		)
	`, r.database, activityTable))
	if err != nil {
		slog.Error("Failed to prepare ClickHouse batch", "error", err)
		return fmt.Errorf("failed to prepare batch: %w", err)
	}

	now := time.Now().UTC()
	for _, a := range activities {
		err := batch.Append(
			a.ActivityID,
			a.Kind,
			a.EntityID,
			a.Name,
			a.Source,
			a.RequestID,
			a.OccurredAt,
			now,
		)
		if err != nil {
			slog.Error("Failed to append activity to batch", "activityID", a.ActivityID, "error", err)
			_ = batch.Abort()
			return fmt.Errorf("failed to append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		slog.Error("Failed to send batch to ClickHouse", "batchSize", len(activities), "error", err)
		return fmt.Errorf("failed to send batch: %w", err)
	}

	slog.Debug("Activity batch inserted", "count", len(activities))
	return nil
}

// filter renders the WHERE clause shared by the total and grouped queries.
func filter(query *activity.MetricsQuery) (string, []any) {
	conditions := []string{"hour >= ?", "hour <= ?"}
	args := []any{time.Unix(query.From, 0).UTC(), time.Unix(query.To, 0).UTC()}

	if query.Kind != "" {
		conditions = append(conditions, "kind = ?")
		args = append(args, query.Kind)
	}

	return strings.Join(conditions, " AND "), args
}

func (r *ActivityRepository) GetMetrics(ctx context.Context, query *activity.MetricsQuery) (*activity.MetricsResult, error) {
	where, args := filter(query)

	var totalCount, uniqueEntities uint64
	totalsQuery := fmt.Sprintf(`
		SELECT
			sum(activity_count) AS total_count,
			uniqMerge(unique_entities_state) AS unique_entities
		FROM %s.%s
		WHERE %s
	`, r.database, hourlyTable, where)

	row := r.conn.QueryRow(ctx, totalsQuery, args...)
	if err := row.Scan(&totalCount, &uniqueEntities); err != nil {
		slog.Error("Failed to query activity metrics", "kind", query.Kind, "error", err)
		return nil, fmt.Errorf("failed to get metrics: %w", err)
	}

	result := &activity.MetricsResult{
		TotalCount:     int64(totalCount),
		UniqueEntities: int64(uniqueEntities),
	}

	if query.GroupBy != "" {
		grouped, err := r.groupedMetrics(ctx, query.GroupBy, where, args)
		if err != nil {
			return nil, err
		}
		result.GroupedData = grouped
	}

	slog.Debug("Activity metrics queried", "kind", query.Kind, "groupBy", query.GroupBy, "totalCount", totalCount)
	return result, nil
}

func groupExpressions(groupBy string) (column, key string, ok bool) {
	switch groupBy {
	case activity.GroupByKind:
		return "kind", "kind", true
	case activity.GroupByHour:
		return "hour", "toString(hour)", true
	case activity.GroupByDay:
		return "toStartOfDay(hour)", "toString(toStartOfDay(hour))", true
	}
	return "", "", false
}

func (r *ActivityRepository) groupedMetrics(ctx context.Context, groupBy, where string, args []any) ([]activity.GroupedMetric, error) {
	column, key, ok := groupExpressions(groupBy)
	if !ok {
		return nil, nil
	}

	groupQuery := fmt.Sprintf(`
		SELECT
			%s AS key,
			sum(activity_count) AS total_count,
			uniqMerge(unique_entities_state) AS unique_entities
		FROM %s.%s
		WHERE %s
		GROUP BY %s
		ORDER BY %s
	`, key, r.database, hourlyTable, where, column, column)

	rows, err := r.conn.Query(ctx, groupQuery, args...)
	if err != nil {
		slog.Error("Failed to query grouped activity metrics", "groupBy", groupBy, "error", err)
		return nil, fmt.Errorf("failed to get grouped metrics: %w", err)
	}
	defer rows.Close()

	var result []activity.GroupedMetric
	for rows.Next() {
		var m activity.GroupedMetric
		var totalCount, uniqueEntities uint64
		if err := rows.Scan(&m.Key, &totalCount, &uniqueEntities); err != nil {
			return nil, fmt.Errorf("failed to scan grouped metrics: %w", err)
		}
		m.TotalCount = int64(totalCount)
		m.UniqueEntities = int64(uniqueEntities)
		result = append(result, m)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating rows: %w", err)
	}

	return result, nil
}
