package app

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"

	journalapi "github.com/kilianp07/evcharge/api/journal"
	reportapi "github.com/kilianp07/evcharge/api/report"
	"github.com/kilianp07/evcharge/config"
	"github.com/kilianp07/evcharge/core/journal"
	coremetrics "github.com/kilianp07/evcharge/core/metrics"
	"github.com/kilianp07/evcharge/core/simulation"
	"github.com/kilianp07/evcharge/core/vehicle"
	"github.com/kilianp07/evcharge/infra/logger"
	"github.com/kilianp07/evcharge/infra/metrics"
	"github.com/kilianp07/evcharge/infra/mqtt"
	"github.com/kilianp07/evcharge/pkg/export"
)

// Report formats accepted by Run.
const (
	FormatText = "text"
	FormatJSON = "json"
	FormatCSV  = "csv"
)

// ValidFormat reports whether f names a report format.
func ValidFormat(f string) bool {
	switch strings.ToLower(f) {
	case FormatText, FormatJSON, FormatCSV:
		return true
	}
	return false
}

// Service wires a simulation to its sinks, journal and report writer.
type Service struct {
	Sim      *simulation.Simulation
	sink     *coremetrics.MultiSink
	store    journal.Store
	log      logger.Logger
	promAddr string
	apiToken string

	mu     sync.RWMutex
	result *simulation.Result
}

// New creates a Service from the configuration.
func New(cfg *config.Config) (*Service, error) {
	logg := logger.New("service")

	var sinks []coremetrics.MetricsSink
	closeAll := func() {
		_ = coremetrics.NewMultiSink(sinks...).Close()
	}
	if len(cfg.Metrics.Sinks) > 0 {
		sink, err := coremetrics.NewMetricsSink(cfg.Metrics.Sinks)
		if err != nil {
			return nil, fmt.Errorf("metrics sinks: %w", err)
		}
		sinks = append(sinks, sink)
	}
	if cfg.Metrics.PrometheusAddr != "" && !hasSinkType(cfg.Metrics, "prometheus") {
		sink, err := metrics.NewPromSink()
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("prom sink: %w", err)
		}
		sinks = append(sinks, sink)
	}
	store, err := journal.NewStore(cfg.Journal)
	if err != nil {
		closeAll()
		return nil, fmt.Errorf("journal: %w", err)
	}
	if store != nil {
		sinks = append(sinks, journal.NewSink(store))
	}
	if cfg.MQTT.Broker != "" {
		client, err := mqtt.NewPahoClient(cfg.MQTT)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("mqtt client: %w", err)
		}
		sinks = append(sinks, mqtt.NewChargePublisher(client, cfg.MQTT.TopicPrefix))
	}
	multi := coremetrics.NewMultiSink(sinks...)

	sim, err := simulation.New(cfg.Simulation, multi, logger.New("simulation"))
	if err != nil {
		_ = multi.Close()
		return nil, err
	}
	return &Service{
		Sim:      sim,
		sink:     multi,
		store:    store,
		log:      logg,
		promAddr: cfg.Metrics.PrometheusAddr,
		apiToken: cfg.Metrics.APIToken,
	}, nil
}

func hasSinkType(cfg coremetrics.Config, name string) bool {
	for _, s := range cfg.Sinks {
		if strings.EqualFold(s.Type, name) {
			return true
		}
	}
	return false
}

// Run plays the simulation and writes the report to w. The text format
// also prints the initial state and one block per turn.
func (s *Service) Run(ctx context.Context, w io.Writer, format string) (*simulation.Result, error) {
	format = strings.ToLower(format)
	if !ValidFormat(format) {
		return nil, fmt.Errorf("unknown report format %s", format)
	}
	if s.promAddr != "" {
		go func() {
			if err := metrics.StartPromServer(ctx, s.promAddr, s.Routes()); err != nil {
				s.log.Errorf("prom server: %v", err)
			}
		}()
	}
	var werr error
	if format == FormatText {
		if err := export.WriteInitial(w, s.Sim); err != nil {
			return nil, err
		}
		s.Sim.OnTurn(func(turn int, vs []*vehicle.Vehicle) {
			if werr == nil {
				werr = export.WriteStep(w, turn, vs)
			}
		})
	}
	res, err := s.Sim.Run(ctx)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	s.result = res
	s.mu.Unlock()
	if werr != nil {
		return nil, werr
	}
	switch format {
	case FormatJSON:
		err = export.WriteJSON(w, res)
	case FormatCSV:
		err = export.WriteCSV(w, res)
	default:
		if err = export.WriteFinal(w, res); err == nil {
			err = export.WriteSummary(w, export.Summarize(res))
		}
	}
	return res, err
}

// LastResult returns the result of the finished run, or nil while it runs.
func (s *Service) LastResult() *simulation.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.result
}

// Routes returns the HTTP API served next to /metrics.
func (s *Service) Routes() map[string]http.Handler {
	routes := map[string]http.Handler{
		"/api/report": reportapi.NewHandler(s.LastResult, s.apiToken),
	}
	if s.store != nil {
		routes["/api/journal"] = journalapi.NewHandler(s.store, s.apiToken)
	}
	return routes
}

// Close releases the sinks and the journal.
func (s *Service) Close() error { return s.sink.Close() }
