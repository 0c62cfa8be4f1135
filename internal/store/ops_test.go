package store

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go/modules/postgres"

	"github.com/rossgrat/iot-telemetry-backend/internal/telemetry"
)

var DBPool *DB

// Setup the testcontainer DB before running any store tests
func TestMain(m *testing.M) {
	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:17-alpine",
		postgres.WithDatabase("testdb"),
		postgres.WithUsername("testuser"),
		postgres.WithPassword("testpass"),
	)
	if err != nil {
		panic(err)
	}
	defer pgContainer.Terminate(ctx)

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}
	migrationsPath := "./migrations"

	DBPool, err = Init(ctx, Config{
		ConnString:     connStr,
		MigrationsPath: migrationsPath,
	})
	if err != nil {
		panic(err)
	}

	m.Run()

	pgContainer.Terminate(ctx)
	DBPool.Close()
}

func makeEvent(deviceID string, value float64, ts time.Time) telemetry.ValidatedEvent {
	return telemetry.ValidatedEvent{
		DeviceID:    deviceID,
		SensorType:  "temperature",
		SensorValue: value,
		Timestamp:   ts,
	}
}

func TestRecordEventAndListEvents(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 2, 19, 12, 34, 56, 0, time.UTC)

	id1, err := DBPool.RecordEvent(ctx, makeEvent("dev-record-1", 22.5, base))
	require.NoError(t, err)
	id2, err := DBPool.RecordEvent(ctx, makeEvent("dev-record-1", 23.0, base.Add(time.Minute)))
	require.NoError(t, err)
	assert.Greater(t, id2, id1)

	got, err := DBPool.ListEvents(ctx, "dev-record-1", 1, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, id2, got[0].EventID)
	assert.Equal(t, 23.0, got[0].SensorValue)
	assert.True(t, got[0].Timestamp.Equal(base.Add(time.Minute)))
}

func TestLastSeenMonotonic(t *testing.T) {
	ctx := context.Background()
	newer := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	older := newer.Add(-time.Hour)

	_, err := DBPool.RecordEvent(ctx, makeEvent("dev-monotonic", 1, newer))
	require.NoError(t, err)
	// Late, out-of-order delivery must not rewind last_seen
	_, err = DBPool.RecordEvent(ctx, makeEvent("dev-monotonic", 2, older))
	require.NoError(t, err)

	devices, err := DBPool.ListDevices(ctx)
	require.NoError(t, err)
	var found bool
	for _, d := range devices {
		if d.DeviceID == "dev-monotonic" {
			found = true
			assert.True(t, d.LastSeen.Equal(newer), "last_seen rewound to %v", d.LastSeen)
		}
	}
	require.True(t, found)

	// Both events land regardless of timestamp order
	events, err := DBPool.ListEvents(ctx, "dev-monotonic", 10, 0)
	require.NoError(t, err)
	assert.Len(t, events, 2)
}

func TestConcurrentRecordEventSameDevice(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 4, 1, 0, 0, 0, 0, time.UTC)
	const n = 10

	var wg sync.WaitGroup
	errs := make([]error, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = DBPool.RecordEvent(ctx, makeEvent("dev-concurrent", float64(i), base.Add(time.Duration(i)*time.Second)))
		}(i)
	}
	wg.Wait()
	for _, err := range errs {
		require.NoError(t, err)
	}

	events, err := DBPool.ListEvents(ctx, "dev-concurrent", n, 0)
	require.NoError(t, err)
	require.Len(t, events, n)
	seen := make(map[int64]struct{}, n)
	for _, ev := range events {
		seen[ev.EventID] = struct{}{}
	}
	assert.Len(t, seen, n, "event ids must be distinct")

	devices, err := DBPool.ListDevices(ctx)
	require.NoError(t, err)
	for _, d := range devices {
		if d.DeviceID == "dev-concurrent" {
			assert.True(t, d.LastSeen.Equal(base.Add((n-1)*time.Second)))
		}
	}
}

func TestListDevicesOrdering(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	for i, id := range []string{"dev-order-a", "dev-order-b", "dev-order-c"} {
		_, err := DBPool.RecordEvent(ctx, makeEvent(id, 1, base.Add(time.Duration(i)*time.Minute)))
		require.NoError(t, err)
	}

	devices, err := DBPool.ListDevices(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, devices)
	for i := 1; i < len(devices); i++ {
		assert.False(t, devices[i-1].LastSeen.Before(devices[i].LastSeen),
			"devices not sorted by last_seen descending at index %d", i)
	}
}

func TestListEventsPagination(t *testing.T) {
	ctx := context.Background()
	base := time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC)
	const n = 15

	for i := 0; i < n; i++ {
		_, err := DBPool.RecordEvent(ctx, makeEvent("dev-paginate", float64(i), base.Add(time.Duration(i)*time.Second)))
		require.NoError(t, err)
	}

	cases := []struct {
		name        string
		limit       int
		offset      int
		expectedLen int
		// value of the first event in the page, newest first
		expectedFirst float64
	}{
		{name: "first page", limit: 5, offset: 0, expectedLen: 5, expectedFirst: 14},
		{name: "second page", limit: 5, offset: 5, expectedLen: 5, expectedFirst: 9},
		{name: "partial last page", limit: 10, offset: 10, expectedLen: 5, expectedFirst: 4},
		{name: "offset past the end", limit: 5, offset: 100, expectedLen: 0},
		{name: "defaults applied", limit: 0, offset: -1, expectedLen: 10, expectedFirst: 14},
	}

	for _, tt := range cases {
		t.Run(tt.name, func(t *testing.T) {
			events, err := DBPool.ListEvents(ctx, "dev-paginate", tt.limit, tt.offset)
			require.NoError(t, err)
			require.Len(t, events, tt.expectedLen)
			if tt.expectedLen > 0 {
				assert.Equal(t, tt.expectedFirst, events[0].SensorValue)
			}
			for i := 1; i < len(events); i++ {
				assert.False(t, events[i-1].Timestamp.Before(events[i].Timestamp))
			}
		})
	}
}

func TestListEventsUnknownDevice(t *testing.T) {
	ctx := context.Background()
	events, err := DBPool.ListEvents(ctx, "dev-never-seen", 10, 0)
	require.NoError(t, err)
	assert.Empty(t, events)
}

func TestMigrateIdempotent(t *testing.T) {
	ctx := context.Background()
	// Init already migrated; a second run must be a no-op
	require.NoError(t, DBPool.Migrate(ctx))

	devices, err := DBPool.ListDevices(ctx)
	require.NoError(t, err)
	before := len(devices)

	require.NoError(t, DBPool.Migrate(ctx))
	devices, err = DBPool.ListDevices(ctx)
	require.NoError(t, err)
	assert.Equal(t, before, len(devices), "migration must not lose data")
}
