package main

import (
	"os"

	"github.com/fretecalc/backend/internal/db"
	"github.com/fretecalc/backend/internal/mqttio"
	log "github.com/sirupsen/logrus"
)

// startOdometerSubscriber wires the MQTT odometer feed when a broker is
// configured. The server runs fine without one; readings then only come
// in through the HTTP odometer endpoint.
func startOdometerSubscriber(odometer db.OdometerCollection) {
	brokerURL := os.Getenv("MQTT_BROKER_URL")
	if brokerURL == "" {
		log.Info("MQTT_BROKER_URL not set, odometer feed disabled")
		return
	}

	clientID := os.Getenv("MQTT_CLIENT_ID")
	if clientID == "" {
		clientID = "fretecalc-server"
	}

	sub, err := mqttio.Connect(brokerURL, clientID, odometer)
	if err != nil {
		log.WithError(err).Error("Failed to connect to MQTT broker, odometer feed disabled")
		return
	}
	if err := sub.Subscribe(); err != nil {
		log.WithError(err).Error("Failed to subscribe to odometer topic")
		sub.Close()
		return
	}
}
