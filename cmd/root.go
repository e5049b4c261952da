package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evcharge/app"
	"github.com/kilianp07/evcharge/config"
	coremon "github.com/kilianp07/evcharge/core/monitoring"
	"github.com/kilianp07/evcharge/infra/logger"
	"github.com/kilianp07/evcharge/infra/monitoring"
)

var cfgPath string

var runOpts struct {
	preset string
	fleet  string
	turns  int
	format string
	runID  string
	hold   bool
}

var rootCmd = &cobra.Command{
	Use:          "evcharge",
	Short:        "Turn-based simulation of an electric vehicle charging network",
	RunE:         run,
	SilenceUsage: true,
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run a simulation and print its report",
	RunE:  run,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgPath, "config", "c", "", "configuration file (yaml or json)")
	for _, c := range []*cobra.Command{rootCmd, runCmd} {
		f := c.Flags()
		f.StringVar(&runOpts.preset, "preset", "", "scenario preset: simple, medium or advanced")
		f.StringVar(&runOpts.fleet, "fleet", "", "preset fleet: standard or mixed")
		f.IntVar(&runOpts.turns, "turns", 0, "number of turns")
		f.StringVarP(&runOpts.format, "format", "f", app.FormatText, "report format: text, json or csv")
		f.StringVar(&runOpts.runID, "run-id", "", "run identifier, random when empty")
		f.BoolVar(&runOpts.hold, "hold", false, "keep serving metrics and the API after the run until interrupted")
	}
	rootCmd.AddCommand(runCmd)
}

// Execute runs the CLI.
func Execute() error { return rootCmd.Execute() }

func overrides() map[string]any {
	o := map[string]any{}
	if runOpts.preset != "" {
		o["simulation.preset"] = runOpts.preset
	}
	if runOpts.fleet != "" {
		o["simulation.fleet"] = runOpts.fleet
	}
	if runOpts.turns > 0 {
		o["simulation.turns"] = runOpts.turns
	}
	if runOpts.runID != "" {
		o["simulation.run_id"] = runOpts.runID
	}
	return o
}

func loadConfig(overrides map[string]any) (*config.Config, error) {
	cfg, err := config.LoadWithOverrides(cfgPath, overrides)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := logger.Configure(cfg.Logging); err != nil {
		return nil, err
	}
	mon, err := monitoring.NewSentryMonitor(cfg.Sentry)
	if err != nil {
		return nil, fmt.Errorf("sentry: %w", err)
	}
	coremon.Init(mon)
	return cfg, nil
}

func run(cmd *cobra.Command, args []string) error {
	if !app.ValidFormat(runOpts.format) {
		return fmt.Errorf("unknown report format %s", runOpts.format)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := loadConfig(overrides())
	if err != nil {
		return err
	}
	defer coremon.Flush(2 * time.Second)
	svc, err := app.New(cfg)
	if err != nil {
		coremon.CaptureException(err, map[string]string{"module": "service"})
		return err
	}
	defer func() {
		if err := svc.Close(); err != nil {
			logger.New("main").Errorf("service close: %v", err)
		}
	}()
	if _, err := svc.Run(ctx, cmd.OutOrStdout(), runOpts.format); err != nil {
		coremon.CaptureException(err, map[string]string{"module": "simulation"})
		return err
	}
	if runOpts.hold && cfg.Metrics.PrometheusAddr != "" {
		logger.New("main").Infof("run finished, serving /metrics and /api on %s until interrupted", cfg.Metrics.PrometheusAddr)
		<-ctx.Done()
	}
	return nil
}
