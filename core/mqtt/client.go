package mqtt

// Publisher sends raw payloads to an MQTT broker.
type Publisher interface {
	// Publish sends payload on topic and blocks until the broker
	// acknowledged it or retries are exhausted.
	Publish(topic string, payload []byte) error

	// Disconnect closes the broker connection.
	Disconnect()
}
