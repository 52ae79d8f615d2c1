package mocks

import (
	"context"
	"reflect"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"
	"github.com/stretchr/testify/mock"
)

// MockClickHouseConn covers the statements the activity store issues.
type MockClickHouseConn struct {
	mock.Mock
}

func (m *MockClickHouseConn) Exec(ctx context.Context, query string, args ...any) error {
	return m.Called(ctx, query, args).Error(0)
}

func (m *MockClickHouseConn) PrepareBatch(ctx context.Context, query string, _ ...driver.PrepareBatchOption) (driver.Batch, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(driver.Batch), args.Error(1)
}

func (m *MockClickHouseConn) QueryRow(ctx context.Context, query string, args ...any) driver.Row {
	return m.Called(ctx, query, args).Get(0).(driver.Row)
}

func (m *MockClickHouseConn) Query(ctx context.Context, query string, args ...any) (driver.Rows, error) {
	ret := m.Called(ctx, query, args)
	if ret.Get(0) == nil {
		return nil, ret.Error(1)
	}
	return ret.Get(0).(driver.Rows), ret.Error(1)
}

// MockClickHouseBatch implements the batch calls of an activity insert. Other
// driver.Batch methods panic through the nil embedded interface.
type MockClickHouseBatch struct {
	driver.Batch
	mock.Mock
}

func (m *MockClickHouseBatch) Append(v ...any) error {
	return m.Called(v).Error(0)
}

func (m *MockClickHouseBatch) Abort() error {
	return m.Called().Error(0)
}

func (m *MockClickHouseBatch) Send() error {
	return m.Called().Error(0)
}

// MockClickHouseRow answers the metrics totals query through ScanFunc.
type MockClickHouseRow struct {
	driver.Row
	ScanFunc func(dest ...any) error
}

func (m *MockClickHouseRow) Scan(dest ...any) error {
	return m.ScanFunc(dest...)
}

// MockClickHouseRows replays grouped metric rows in order.
type MockClickHouseRows struct {
	driver.Rows
	mock.Mock
	data [][]any
	next int
}

func NewMockClickHouseRows(data [][]any) *MockClickHouseRows {
	return &MockClickHouseRows{data: data}
}

func (m *MockClickHouseRows) Next() bool {
	m.next++
	return m.next <= len(m.data)
}

func (m *MockClickHouseRows) Scan(dest ...any) error {
	for i, v := range m.data[m.next-1] {
		reflect.ValueOf(dest[i]).Elem().Set(reflect.ValueOf(v))
	}
	return nil
}

func (m *MockClickHouseRows) Err() error {
	return m.Called().Error(0)
}

func (m *MockClickHouseRows) Close() error {
	return nil
}
