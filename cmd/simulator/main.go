// Courier-day simulator. It drives the backend the way a real courier's
// phone would: odometer ticks go out over MQTT while finished days are
// posted to the distance log over HTTP. Useful for demos and for soak
// testing the maintenance monitor with realistic mileage growth. The
// distance log is premium-gated: grant the simulated accounts premium via
// the admin API before a soak run, otherwise those posts come back 402.
package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math/rand"
	"net/http"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/fretecalc/backend/internal/models"
	"github.com/fretecalc/backend/internal/mqttio"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

type courierState struct {
	UserID     string
	Token      string
	Vehicle    models.VehicleType
	OdometerKm float64
}

var httpClient = &http.Client{Timeout: 10 * time.Second}

func authorizedRequest(method, url, token string, body *bytes.Buffer) (*http.Response, error) {
	if body == nil {
		body = &bytes.Buffer{}
	}
	req, err := http.NewRequest(method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	return httpClient.Do(req)
}

// registerCourier creates a throwaway account and returns its identity.
func registerCourier(apiURL string, n int) (*courierState, error) {
	suffix := fmt.Sprintf("%d%04d", time.Now().Unix(), n)
	payload := map[string]string{
		"username":     "sim-courier-" + suffix,
		"email":        "sim-" + suffix + "@example.com",
		"password":     "simulated-password-1",
		"display_name": fmt.Sprintf("Simulated Courier %d", n),
	}
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}

	resp, err := authorizedRequest(http.MethodPost, apiURL+"/auth/register", "", bytes.NewBuffer(data))
	if err != nil {
		return nil, fmt.Errorf("failed to register courier: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusCreated {
		return nil, fmt.Errorf("registration failed with status: %d", resp.StatusCode)
	}

	var result struct {
		Token string `json:"token"`
		User  struct {
			ID string `json:"id"`
		} `json:"user"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	vehicle := models.VehicleMoto
	if rand.Intn(4) == 0 {
		vehicle = models.VehicleCarro
	}

	state := &courierState{
		UserID:     result.User.ID,
		Token:      result.Token,
		Vehicle:    vehicle,
		OdometerKm: 5000 + rand.Float64()*30000,
	}

	log.WithFields(log.Fields{
		"user_id": state.UserID,
		"vehicle": state.Vehicle,
		"km":      state.OdometerKm,
	}).Info("Registered courier")

	return state, nil
}

// postDistanceRecord logs one finished delivery day over HTTP.
func postDistanceRecord(apiURL string, s *courierState, dayKm float64) {
	start := s.OdometerKm - dayKm
	payload := map[string]interface{}{
		"date":        time.Now().Format("2006-01-02"),
		"start_km":    start,
		"end_km":      s.OdometerKm,
		"distance_km": dayKm,
	}
	data, err := json.Marshal(payload)
	if err != nil {
		log.WithError(err).Error("Failed to marshal distance record")
		return
	}

	url := fmt.Sprintf("%s/kmlog?vehicle=%s", apiURL, s.Vehicle)
	resp, err := authorizedRequest(http.MethodPost, url, s.Token, bytes.NewBuffer(data))
	if err != nil {
		log.WithError(err).Error("Failed to post distance record")
		return
	}
	defer resp.Body.Close()

	log.WithFields(log.Fields{
		"user_id": s.UserID,
		"day_km":  dayKm,
		"status":  resp.Status,
	}).Info("Posted distance record")
}

// simulateCourier advances one courier through delivery days. Each tick is
// one simulated day: the odometer grows, the reading is published over
// MQTT and the day lands in the distance log.
func simulateCourier(apiURL string, client mqtt.Client, s *courierState, interval time.Duration) {
	tick := time.NewTicker(interval)
	defer tick.Stop()
	for range tick.C {
		dayKm := 40 + rand.Float64()*120 // typical courier day
		s.OdometerKm += dayKm

		scope := models.Scope{UserID: s.UserID, Vehicle: s.Vehicle}
		if err := mqttio.PublishReading(client, scope, s.OdometerKm); err != nil {
			log.WithError(err).Error("Failed to publish odometer reading")
		} else {
			log.WithFields(log.Fields{
				"user_id": s.UserID,
				"km":      s.OdometerKm,
			}).Info("Published odometer reading")
		}

		postDistanceRecord(apiURL, s, dayKm)
	}
}

func main() {
	_ = godotenv.Load()

	apiURL := os.Getenv("API_BASE_URL")
	if apiURL == "" {
		apiURL = "http://localhost:8080/api"
	}

	brokerURL := os.Getenv("MQTT_BROKER_URL")
	if brokerURL == "" {
		brokerURL = "tcp://localhost:1883"
	}

	courierCount := 5
	if val := os.Getenv("SIM_COURIERS"); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n > 0 {
			courierCount = n
		}
	}

	interval := 5 * time.Second
	if v := os.Getenv("SIM_TICK_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 1 {
			interval = time.Duration(n) * time.Second
		}
	}

	log.WithFields(log.Fields{
		"couriers": courierCount,
		"api_url":  apiURL,
		"broker":   brokerURL,
		"interval": interval,
	}).Info("Starting courier simulation")

	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(fmt.Sprintf("fretecalc-sim-%d", time.Now().Unix())).
		SetAutoReconnect(true)
	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		log.WithError(token.Error()).Fatal("Failed to connect to MQTT broker")
	}

	states := make([]*courierState, 0, courierCount)
	for i := 0; i < courierCount; i++ {
		state, err := registerCourier(apiURL, i+1)
		if err != nil {
			log.WithError(err).Error("Failed to register courier")
			continue
		}
		states = append(states, state)
	}

	if len(states) == 0 {
		log.Error("No couriers registered. Ensure the API is reachable. Exiting.")
		return
	}

	for _, s := range states {
		go simulateCourier(apiURL, client, s, interval)
	}

	log.WithField("couriers", len(states)).Info("Courier simulation started")
	select {} // Block forever
}
