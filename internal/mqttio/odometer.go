// Package mqttio ingests odometer readings published by courier devices
// over MQTT, so the maintenance monitor stays current without the driver
// opening the app.
package mqttio

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/models"
	log "github.com/sirupsen/logrus"
)

// TopicPrefix is the root of the odometer topic tree. Readings arrive on
// fretecalc/odometer/{userID}/{vehicle}.
const TopicPrefix = "fretecalc/odometer"

// Reading is the MQTT payload for one odometer update.
type Reading struct {
	Km float64 `json:"km"`
}

// OdometerSubscriber consumes odometer readings and stores them per scope.
type OdometerSubscriber struct {
	client   mqtt.Client
	odometer db.OdometerCollection
}

// Connect dials the broker and returns a subscriber. brokerURL is e.g.
// tcp://localhost:1883.
func Connect(brokerURL, clientID string, odometer db.OdometerCollection) (*OdometerSubscriber, error) {
	opts := mqtt.NewClientOptions().
		AddBroker(brokerURL).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(10 * time.Second)

	client := mqtt.NewClient(opts)
	if token := client.Connect(); token.Wait() && token.Error() != nil {
		return nil, fmt.Errorf("mqtt connect error: %w", token.Error())
	}

	return &OdometerSubscriber{client: client, odometer: odometer}, nil
}

// Subscribe starts consuming readings for all users and vehicles.
func (s *OdometerSubscriber) Subscribe() error {
	topic := TopicPrefix + "/+/+"
	token := s.client.Subscribe(topic, 1, s.handleMessage)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt subscribe error: %w", token.Error())
	}
	log.WithField("topic", topic).Info("Subscribed to odometer readings")
	return nil
}

// Close disconnects from the broker.
func (s *OdometerSubscriber) Close() {
	s.client.Disconnect(250)
}

func (s *OdometerSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	scope, ok := ScopeFromTopic(msg.Topic())
	if !ok {
		log.WithField("topic", msg.Topic()).Warn("Ignoring odometer message on malformed topic")
		return
	}

	var reading Reading
	if err := json.Unmarshal(msg.Payload(), &reading); err != nil {
		log.WithError(err).WithField("topic", msg.Topic()).Warn("Ignoring malformed odometer payload")
		return
	}
	if reading.Km <= 0 {
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	// Odometers only go up. A stale reading from a reconnecting device
	// must not roll the maintenance monitor backwards.
	current, err := s.odometer.LoadOdometer(ctx, scope)
	if err == nil && reading.Km < current {
		return
	}

	if err := s.odometer.SaveOdometer(ctx, scope, reading.Km); err != nil {
		log.WithError(err).WithFields(log.Fields{
			"user_id": scope.UserID,
			"vehicle": scope.Vehicle,
		}).Error("Failed to store odometer reading")
		return
	}

	log.WithFields(log.Fields{
		"user_id": scope.UserID,
		"vehicle": scope.Vehicle,
		"km":      reading.Km,
	}).Info("Stored odometer reading")
}

// ScopeFromTopic parses the (user, vehicle) scope out of an odometer topic.
func ScopeFromTopic(topic string) (models.Scope, bool) {
	if !strings.HasPrefix(topic, TopicPrefix+"/") {
		return models.Scope{}, false
	}
	parts := strings.Split(strings.TrimPrefix(topic, TopicPrefix+"/"), "/")
	if len(parts) != 2 || parts[0] == "" {
		return models.Scope{}, false
	}
	vehicle := models.VehicleType(parts[1])
	if !models.IsValidVehicleType(vehicle) {
		return models.Scope{}, false
	}
	return models.Scope{UserID: parts[0], Vehicle: vehicle}, true
}

// PublishReading publishes an odometer reading for a scope. The simulator
// and device firmware share this helper.
func PublishReading(client mqtt.Client, scope models.Scope, km float64) error {
	payload, err := json.Marshal(Reading{Km: km})
	if err != nil {
		return err
	}
	topic := fmt.Sprintf("%s/%s/%s", TopicPrefix, scope.UserID, scope.Vehicle)
	token := client.Publish(topic, 1, false, payload)
	if token.Wait() && token.Error() != nil {
		return fmt.Errorf("mqtt publish error: %w", token.Error())
	}
	return nil
}
