package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/georgysavva/scany/pgxscan"

	"github.com/rossgrat/iot-telemetry-backend/internal/telemetry"
)

var (
	ErrTransactionStartFailed = errors.New("transaction start failed")
	ErrUpsertFailed           = errors.New("device upsert failed")
	ErrInsertFailed           = errors.New("insert operation failed")
	ErrCommitFailed           = errors.New("transaction commit failed")
	ErrSelectFailed           = errors.New("select operation failed")
)

const (
	defaultEventLimit = 10
)

// RecordEvent persists one validated reading: the device row upsert and
// the event insert commit together or not at all. The upsert only moves
// last_seen forward, so out-of-order delivery cannot rewind device
// state. Returns the store-assigned event id.
func (db *DB) RecordEvent(ctx context.Context, event telemetry.ValidatedEvent) (int64, error) {
	const fn = "DB:RecordEvent"
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s:%w:%w", fn, ErrTransactionStartFailed, err)
	}
	defer tx.Rollback(ctx)

	_, err = tx.Exec(ctx, `
		INSERT INTO devices (
			device_id,
			last_seen
		) VALUES ($1, $2)
		ON CONFLICT (device_id)
		DO UPDATE SET last_seen = EXCLUDED.last_seen
		WHERE devices.last_seen <= EXCLUDED.last_seen
	`, event.DeviceID, event.Timestamp)
	if err != nil {
		return 0, fmt.Errorf("%s:%w:%w", fn, ErrUpsertFailed, err)
	}

	var eventID int64
	err = tx.QueryRow(ctx, `
		INSERT INTO events (
			device_id,
			sensor_type,
			sensor_value,
			timestamp
		) VALUES ($1, $2, $3, $4)
		RETURNING event_id
	`, event.DeviceID, event.SensorType, event.SensorValue, event.Timestamp).Scan(&eventID)
	if err != nil {
		return 0, fmt.Errorf("%s:%w:%w", fn, ErrInsertFailed, err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("%s:%w:%w", fn, ErrCommitFailed, err)
	}
	return eventID, nil
}

// ListDevices returns every known device, most recently seen first.
func (db *DB) ListDevices(ctx context.Context) ([]Device, error) {
	const fn = "DB:ListDevices"
	var devices []Device
	err := pgxscan.Select(ctx, db.pool, &devices, `
		SELECT
			device_id,
			last_seen
		FROM devices
		ORDER BY last_seen DESC
	`)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return devices, nil
}

// ListEvents returns a device's events ordered newest first by sender
// timestamp. Non-positive limit and offset fall back to 10 and 0. An
// unknown device yields an empty slice, not an error.
func (db *DB) ListEvents(ctx context.Context, deviceID string, limit, offset int) ([]Event, error) {
	const fn = "DB:ListEvents"
	if limit <= 0 {
		limit = defaultEventLimit
	}
	if offset < 0 {
		offset = 0
	}
	var events []Event
	err := pgxscan.Select(ctx, db.pool, &events, `
		SELECT
			event_id,
			device_id,
			sensor_type,
			sensor_value,
			timestamp
		FROM events
		WHERE device_id = $1
		ORDER BY timestamp DESC
		LIMIT $2 OFFSET $3
	`, deviceID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%s:%w:%w", fn, ErrSelectFailed, err)
	}
	return events, nil
}
