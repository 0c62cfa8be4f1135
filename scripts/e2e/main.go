package main

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

// Steps:
// 1. Publish one valid and one malformed reading to the telemetry topic
// 2. Wait for the subscriber to process them
// 3. GET /api/v1/devices and check the valid device appears
// 4. GET /api/v1/events/{device_id} and check the event round-tripped
// 5. GET /api/v1/events/unknown_device and check the 404 outcome

func main() {
	brokerURL := "tcp://localhost:1883"
	baseURL := "http://localhost:8080"
	topic := "devices/events"
	deviceID := fmt.Sprintf("e2e_sensor_%d", time.Now().Unix())

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID("e2e-publisher")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(fmt.Errorf("broker connect failed: %w", token.Error()))
	}
	defer client.Disconnect(500)

	valid := fmt.Sprintf(`{"device_id":%q,"sensor_type":"temperature","sensor_value":22.5,"timestamp":%q}`,
		deviceID, time.Now().UTC().Format(time.RFC3339))
	invalid := `{"device_id":123,"sensor_type":"temperature","sensor_value":"invalid_float","timestamp":"not-a-valid-timestamp"}`

	for _, payload := range []string{valid, invalid} {
		if token := client.Publish(topic, 0, false, []byte(payload)); token.Wait() && token.Error() != nil {
			panic(fmt.Errorf("publish failed: %w", token.Error()))
		}
	}
	fmt.Println("Published 1 valid and 1 invalid event, waiting for ingestion...")
	time.Sleep(3 * time.Second)

	// Devices must contain the new device
	var devicesResp struct {
		Devices []struct {
			DeviceID string `json:"device_id"`
			LastSeen string `json:"last_seen"`
		} `json:"devices"`
	}
	getJSON(baseURL+"/api/v1/devices", http.StatusOK, &devicesResp)
	found := false
	for _, d := range devicesResp.Devices {
		if d.DeviceID == deviceID {
			found = true
			fmt.Printf("Device registered: %s last_seen=%s\n", d.DeviceID, d.LastSeen)
		}
	}
	if !found {
		panic("device not found in /devices response")
	}

	// The single valid event must round-trip
	var eventsResp struct {
		Events []struct {
			EventID     int64   `json:"event_id"`
			SensorValue float64 `json:"sensor_value"`
		} `json:"events"`
	}
	getJSON(baseURL+"/api/v1/events/"+deviceID+"?limit=1", http.StatusOK, &eventsResp)
	if len(eventsResp.Events) != 1 || eventsResp.Events[0].SensorValue != 22.5 {
		panic(fmt.Sprintf("unexpected events response: %+v", eventsResp))
	}
	fmt.Printf("Event round-tripped: event_id=%d\n", eventsResp.Events[0].EventID)

	// The malformed event must not have created a device
	var notFound struct {
		Message string `json:"message"`
	}
	getJSON(baseURL+"/api/v1/events/unknown_device", http.StatusNotFound, &notFound)
	fmt.Println("Unknown device:", notFound.Message)

	fmt.Println("E2E checks passed")
}

func getJSON(url string, expectedStatus int, out any) {
	resp, err := http.Get(url)
	if err != nil {
		panic(err)
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != expectedStatus {
		panic(fmt.Sprintf("GET %s: expected %d, got %d: %s", url, expectedStatus, resp.StatusCode, string(body)))
	}
	if err := json.Unmarshal(body, out); err != nil {
		panic(fmt.Errorf("GET %s: decode failed: %w", url, err))
	}
}
