package telemetry

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

var (
	ErrMalformedEncoding = errors.New("malformed message encoding")
	ErrMissingFields     = errors.New("missing required fields")
	ErrTypeMismatch      = errors.New("field type mismatch")
	ErrBadTimestamp      = errors.New("invalid timestamp format")
)

var requiredFields = []string{"device_id", "sensor_type", "sensor_value", "timestamp"}

// Accepted timestamp layouts. Senders may omit the zone offset, in
// which case the instant is taken as UTC.
var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
}

// ValidatedEvent is a sensor reading that passed validation. The
// timestamp is normalized to UTC.
type ValidatedEvent struct {
	DeviceID    string
	SensorType  string
	SensorValue float64
	Timestamp   time.Time
}

// Validate decodes and checks a raw message payload. It has no side
// effects and is safe to call from concurrent workers. Rejections wrap
// one of the sentinel errors above.
func Validate(raw []byte) (ValidatedEvent, error) {
	var fields map[string]any
	if err := json.Unmarshal(raw, &fields); err != nil {
		return ValidatedEvent{}, fmt.Errorf("%w: %v", ErrMalformedEncoding, err)
	}

	var missing []string
	for _, key := range requiredFields {
		if _, ok := fields[key]; !ok {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		sort.Strings(missing)
		return ValidatedEvent{}, fmt.Errorf("%w: %s", ErrMissingFields, strings.Join(missing, ", "))
	}

	deviceID, ok := fields["device_id"].(string)
	if !ok || deviceID == "" {
		return ValidatedEvent{}, fmt.Errorf("%w: device_id must be a non-empty string", ErrTypeMismatch)
	}
	sensorType, ok := fields["sensor_type"].(string)
	if !ok || sensorType == "" {
		return ValidatedEvent{}, fmt.Errorf("%w: sensor_type must be a non-empty string", ErrTypeMismatch)
	}
	// JSON numbers decode to float64, covering both integer and float
	// sensor values.
	sensorValue, ok := fields["sensor_value"].(float64)
	if !ok {
		return ValidatedEvent{}, fmt.Errorf("%w: sensor_value must be numeric", ErrTypeMismatch)
	}
	rawTimestamp, ok := fields["timestamp"].(string)
	if !ok {
		return ValidatedEvent{}, fmt.Errorf("%w: timestamp must be a string", ErrTypeMismatch)
	}
	timestamp, err := parseTimestamp(rawTimestamp)
	if err != nil {
		return ValidatedEvent{}, fmt.Errorf("%w: %q", ErrBadTimestamp, rawTimestamp)
	}

	return ValidatedEvent{
		DeviceID:    deviceID,
		SensorType:  sensorType,
		SensorValue: sensorValue,
		Timestamp:   timestamp,
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}
