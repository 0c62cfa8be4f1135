package api

type Device struct {
	DeviceID string `json:"device_id"`
	LastSeen string `json:"last_seen"`
}

type Event struct {
	EventID     int64   `json:"event_id"`
	DeviceID    string  `json:"device_id"`
	SensorType  string  `json:"sensor_type"`
	SensorValue float64 `json:"sensor_value"`
	Timestamp   string  `json:"timestamp"`
}

type ListDevicesResponse struct {
	Devices []Device `json:"devices"`
}

type ListEventsResponse struct {
	TransactionID string  `json:"transaction_id"`
	Events        []Event `json:"events"`
}

type NotFoundResponse struct {
	TransactionID string `json:"transaction_id"`
	Message       string `json:"message"`
}

type ErrorResponse struct {
	TransactionID string `json:"transaction_id"`
	Error         string `json:"error"`
}
