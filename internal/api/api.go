package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/httprate"

	"github.com/rossgrat/iot-telemetry-backend/internal/store"
)

const (
	defaultEventLimit = 10

	// Fixed-window rate limits per client address
	totalRequestsPerMinute    = 100
	endpointRequestsPerMinute = 50
)

type repository interface {
	ListDevices(ctx context.Context) ([]store.Device, error)
	ListEvents(ctx context.Context, deviceID string, limit, offset int) ([]store.Event, error)
}

type API struct {
	DB repository
}

type Config struct {
	DB repository
}

func New(cfg Config) *API {
	return &API{DB: cfg.DB}
}

func (a *API) Router() *chi.Mux {
	r := chi.NewRouter()
	r.Use(TransactionID)
	r.Use(RequestLogger)
	r.Use(httprate.LimitByIP(totalRequestsPerMinute, time.Minute))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.With(httprate.LimitByIP(endpointRequestsPerMinute, time.Minute)).
			Get("/devices", a.ListDevices)
		r.With(httprate.LimitByIP(endpointRequestsPerMinute, time.Minute)).
			Get("/events/{device_id}", a.GetDeviceEvents)
	})
	return r
}

// ListDevices returns every known device with its last seen timestamp,
// most recent first. An empty fleet is a valid 200 response.
func (a *API) ListDevices(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	txID := transactionID(ctx)

	devices, err := a.DB.ListDevices(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "Device listing failed", "transaction_id", txID, "error", err)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{TransactionID: txID, Error: "Database error"})
		return
	}

	resp := ListDevicesResponse{Devices: make([]Device, 0, len(devices))}
	for _, d := range devices {
		resp.Devices = append(resp.Devices, Device{
			DeviceID: d.DeviceID,
			LastSeen: d.LastSeen.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetDeviceEvents returns a device's events newest first, paginated by
// limit/offset. Zero matching events is a distinct 404 outcome, not an
// empty success and not a server error.
func (a *API) GetDeviceEvents(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	txID := transactionID(ctx)
	deviceID := chi.URLParam(r, "device_id")

	limit := queryInt(r, "limit", defaultEventLimit)
	offset := queryInt(r, "offset", 0)

	events, err := a.DB.ListEvents(ctx, deviceID, limit, offset)
	if err != nil {
		slog.ErrorContext(ctx, "Event listing failed",
			"transaction_id", txID,
			"device_id", deviceID,
			"error", err,
		)
		writeJSON(w, http.StatusInternalServerError, ErrorResponse{TransactionID: txID, Error: "Database error"})
		return
	}
	if len(events) == 0 {
		writeJSON(w, http.StatusNotFound, NotFoundResponse{
			TransactionID: txID,
			Message:       "No events found for this device.",
		})
		return
	}

	resp := ListEventsResponse{TransactionID: txID, Events: make([]Event, 0, len(events))}
	for _, ev := range events {
		resp.Events = append(resp.Events, Event{
			EventID:     ev.EventID,
			DeviceID:    ev.DeviceID,
			SensorType:  ev.SensorType,
			SensorValue: ev.SensorValue,
			Timestamp:   ev.Timestamp.Format(time.RFC3339),
		})
	}
	writeJSON(w, http.StatusOK, resp)
}

// queryInt parses a positive integer query parameter, falling back to
// def when absent, unparseable, or non-positive.
func queryInt(r *http.Request, key string, def int) int {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
