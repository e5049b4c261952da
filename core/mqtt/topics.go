package mqtt

import (
	"strings"
)

// Event kinds published per vehicle.
const (
	KindCharge  = "charge"
	KindArrival = "arrival"
)

// VehicleTopic returns "<prefix>/vehicle/<plate>/<kind>".
func VehicleTopic(prefix, plate, kind string) (string, error) {
	if strings.TrimSpace(plate) == "" {
		return "", ErrEmptyPlate
	}
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "vehicle/" + plate + "/" + kind, nil
	}
	return prefix + "/vehicle/" + plate + "/" + kind, nil
}

// StatusTopic returns the topic carrying the publisher's online status.
func StatusTopic(prefix string) string {
	prefix = strings.Trim(prefix, "/")
	if prefix == "" {
		return "status"
	}
	return prefix + "/status"
}
