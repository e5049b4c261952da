package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/evcharge/core/metrics"
	"github.com/kilianp07/evcharge/infra/logger"
)

// InfluxConfig holds the connection settings of an InfluxSink.
type InfluxConfig struct {
	URL    string `json:"url"`
	Token  string `json:"token"`
	Org    string `json:"org"`
	Bucket string `json:"bucket"`
}

// InfluxSink writes simulation events to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(cfg InfluxConfig) *InfluxSink {
	base := strings.TrimSuffix(cfg.URL, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, cfg.Token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(cfg.Org, cfg.Bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback tries to ping the InfluxDB instance and
// returns a NopSink if the health check fails.
func NewInfluxSinkWithFallback(cfg InfluxConfig) coremetrics.MetricsSink {
	sink := NewInfluxSink(cfg)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// RecordCharge writes a charge_event point.
func (s *InfluxSink) RecordCharge(ev coremetrics.ChargeEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("charge_event").
		AddTag("run_id", ev.RunID).
		AddTag("plate", ev.Plate).
		AddTag("tier", ev.Tier).
		AddTag("station_id", ev.StationID).
		AddTag("charger_id", ev.ChargerID).
		AddTag("charger_kind", ev.ChargerKind).
		AddTag("accepted", strconv.FormatBool(ev.Accepted)).
		AddField("turn", ev.Turn).
		AddField("kwh", ev.KWh).
		AddField("cost", round3(ev.Cost)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordArrival writes an arrival_event point.
func (s *InfluxSink) RecordArrival(ev coremetrics.ArrivalEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("arrival_event").
		AddTag("run_id", ev.RunID).
		AddTag("plate", ev.Plate).
		AddTag("tier", ev.Tier).
		AddField("turn", ev.Turn).
		AddField("charges", ev.Charges).
		AddField("cost", round3(ev.Cost)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordTurn writes a fleet_turn point.
func (s *InfluxSink) RecordTurn(ev coremetrics.TurnEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("fleet_turn").
		AddTag("run_id", ev.RunID).
		AddField("turn", ev.Turn).
		AddField("arrived", ev.Arrived).
		AddField("stalled", ev.Stalled).
		AddField("at_charge_stop", ev.Charging).
		AddField("revenue", round3(ev.Revenue)).
		SetTime(ev.Time)
	return s.writeAPI.WritePoint(ctx, p)
}

// Close releases the underlying client.
func (s *InfluxSink) Close() error {
	s.client.Close()
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
