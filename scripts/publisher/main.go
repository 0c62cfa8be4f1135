package main

import (
	"encoding/json"
	"fmt"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
)

type Event struct {
	DeviceID    string  `json:"device_id"`
	SensorType  string  `json:"sensor_type"`
	SensorValue float64 `json:"sensor_value"`
	Timestamp   string  `json:"timestamp"`
}

// Publishes a handful of valid and malformed readings for manual testing.
func main() {
	opts := mqtt.NewClientOptions().
		AddBroker("tcp://localhost:1883").
		SetClientID("publisher-client")
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		panic(token.Error())
	}
	defer client.Disconnect(500)
	fmt.Println("Publisher connected to broker.")

	topic := "devices/events"

	events := []Event{
		{DeviceID: "sensor_001", SensorType: "temperature", SensorValue: 22.5, Timestamp: time.Now().UTC().Format(time.RFC3339)},
		{DeviceID: "sensor_001", SensorType: "humidity", SensorValue: 40, Timestamp: time.Now().UTC().Add(time.Second).Format(time.RFC3339)},
		{DeviceID: "sensor_002", SensorType: "temperature", SensorValue: 19.8, Timestamp: time.Now().UTC().Format(time.RFC3339)},
	}
	for _, ev := range events {
		payload, _ := json.Marshal(ev)
		if token := client.Publish(topic, 0, false, payload); token.Wait() && token.Error() != nil {
			fmt.Printf("publish failed: %v\n", token.Error())
			continue
		}
		fmt.Println("Published:", string(payload))
	}

	// Malformed payloads; the subscriber must reject these without stalling
	invalid := []string{
		`{"device_id":123,"sensor_type":"temperature","sensor_value":"invalid_float","timestamp":"not-a-valid-timestamp"}`,
		`{"device_id":"sensor_003","sensor_type":"temperature"}`,
		`not-json`,
	}
	for _, payload := range invalid {
		if token := client.Publish(topic, 0, false, []byte(payload)); token.Wait() && token.Error() != nil {
			fmt.Printf("publish failed: %v\n", token.Error())
			continue
		}
		fmt.Println("Published invalid:", payload)
	}
}
