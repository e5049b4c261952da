package mqtt

import "errors"

// ErrEmptyPlate is returned when a topic is requested for a blank plate.
var ErrEmptyPlate = errors.New("mqtt: empty plate")
