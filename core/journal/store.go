package journal

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// Record kinds.
const (
	KindCharge  = "charge"
	KindArrival = "arrival"
)

// Record captures one charge attempt or arrival of a run.
type Record struct {
	RunID     string    `json:"run_id"`
	Kind      string    `json:"kind"`
	Turn      int       `json:"turn"`
	Plate     string    `json:"plate"`
	Tier      string    `json:"tier"`
	StationID string    `json:"station_id,omitempty"`
	ChargerID string    `json:"charger_id,omitempty"`
	KWh       int       `json:"kwh,omitempty"`
	Cost      float64   `json:"cost"`
	Accepted  bool      `json:"accepted"`
	Timestamp time.Time `json:"timestamp"`
}

// Query defines filters for retrieving records. Empty fields match everything.
type Query struct {
	RunID string
	Plate string
	Kind  string
}

func (q Query) matches(r Record) bool {
	if q.RunID != "" && r.RunID != q.RunID {
		return false
	}
	if q.Plate != "" && r.Plate != q.Plate {
		return false
	}
	if q.Kind != "" && r.Kind != q.Kind {
		return false
	}
	return true
}

// Store persists Records and supports querying.
type Store interface {
	Append(ctx context.Context, rec Record) error
	Query(ctx context.Context, q Query) ([]Record, error)
	Close() error
}

// Config selects the journal backend.
type Config struct {
	// Backend is one of none, jsonl, rotating or sqlite.
	Backend    string `json:"backend"`
	Path       string `json:"path"`
	MaxSizeMB  int    `json:"max_size_mb"`
	MaxBackups int    `json:"max_backups"`
	MaxAgeDays int    `json:"max_age_days"`
}

// SetDefaults applies sane defaults.
func (c *Config) SetDefaults() {
	if c.Backend == "" {
		c.Backend = "none"
	}
	c.Backend = strings.ToLower(c.Backend)
	if c.Path == "" {
		switch c.Backend {
		case "sqlite":
			c.Path = "evcharge.db"
		case "jsonl", "rotating":
			c.Path = "evcharge.jsonl"
		}
	}
	if c.Backend == "rotating" {
		if c.MaxSizeMB <= 0 {
			c.MaxSizeMB = 10
		}
		if c.MaxBackups <= 0 {
			c.MaxBackups = 3
		}
		if c.MaxAgeDays <= 0 {
			c.MaxAgeDays = 7
		}
	}
}

// Validate checks the backend name.
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case "", "none":
		return nil
	case "jsonl", "rotating", "sqlite":
		if c.Path == "" {
			return fmt.Errorf("journal path is required for backend %s", c.Backend)
		}
		return nil
	default:
		return fmt.Errorf("unknown journal backend %s", c.Backend)
	}
}

// NewStore opens the configured backend. It returns a nil Store for the
// "none" backend.
func NewStore(cfg Config) (Store, error) {
	cfg.SetDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Backend {
	case "jsonl":
		return NewJSONLStore(cfg.Path)
	case "rotating":
		return NewRotatingJSONLStore(cfg.Path, cfg.MaxSizeMB, cfg.MaxBackups, cfg.MaxAgeDays)
	case "sqlite":
		return NewSQLiteStore(cfg.Path)
	default:
		return nil, nil
	}
}
