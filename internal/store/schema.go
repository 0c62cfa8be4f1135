package store

import "time"

type Device struct {
	DeviceID string    `json:"device_id"`
	LastSeen time.Time `json:"last_seen"`
}

type Event struct {
	EventID     int64     `json:"event_id"`
	DeviceID    string    `json:"device_id"`
	SensorType  string    `json:"sensor_type"`
	SensorValue float64   `json:"sensor_value"`
	Timestamp   time.Time `json:"timestamp"`
}
