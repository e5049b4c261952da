package model

import (
	"errors"
	"fmt"
)

// ErrNegativeCoordinate is returned when a location is built with x or y below zero.
var ErrNegativeCoordinate = errors.New("negative coordinate")

// Location is a point on the simulation grid. Values are immutable and
// comparable, so they can be used as map keys.
type Location struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// NewLocation validates the coordinates and returns the location.
func NewLocation(x, y int) (Location, error) {
	if x < 0 {
		return Location{}, fmt.Errorf("x=%d: %w", x, ErrNegativeCoordinate)
	}
	if y < 0 {
		return Location{}, fmt.Errorf("y=%d: %w", y, ErrNegativeCoordinate)
	}
	return Location{X: x, Y: y}, nil
}

// MustLocation is like NewLocation but panics on invalid input.
func MustLocation(x, y int) Location {
	l, err := NewLocation(x, y)
	if err != nil {
		panic(err)
	}
	return l
}

// Validate reports whether the location holds negative coordinates.
func (l Location) Validate() error {
	_, err := NewLocation(l.X, l.Y)
	return err
}

// Distance returns the Chebyshev distance between l and other.
func (l Location) Distance(other Location) int {
	return max(abs(l.X-other.X), abs(l.Y-other.Y))
}

// Next returns the location one step closer to target, moving diagonally
// when both axes differ.
func (l Location) Next(target Location) Location {
	return Location{X: l.X + sign(target.X-l.X), Y: l.Y + sign(target.Y-l.Y)}
}

func (l Location) String() string {
	return fmt.Sprintf("%d-%d", l.X, l.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
