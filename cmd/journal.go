package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/evcharge/core/journal"
)

var journalOpts struct {
	runID  string
	plate  string
	kind   string
	asJSON bool
}

var journalCmd = &cobra.Command{
	Use:   "journal",
	Short: "Query charge and arrival records of past runs",
	RunE:  queryJournal,
}

func init() {
	f := journalCmd.Flags()
	f.StringVar(&journalOpts.runID, "run", "", "run identifier")
	f.StringVar(&journalOpts.plate, "plate", "", "vehicle plate")
	f.StringVar(&journalOpts.kind, "kind", "", "record kind: charge or arrival")
	f.BoolVar(&journalOpts.asJSON, "json", false, "print records as JSON lines")
	rootCmd.AddCommand(journalCmd)
}

func queryJournal(cmd *cobra.Command, args []string) error {
	switch journalOpts.kind {
	case "", journal.KindCharge, journal.KindArrival:
	default:
		return fmt.Errorf("unknown record kind %s", journalOpts.kind)
	}
	cfg, err := loadConfig(nil)
	if err != nil {
		return err
	}
	store, err := journal.NewStore(cfg.Journal)
	if err != nil {
		return err
	}
	if store == nil {
		return fmt.Errorf("journal backend is disabled")
	}
	defer func() { _ = store.Close() }()

	recs, err := store.Query(context.Background(), journal.Query{
		RunID: journalOpts.runID,
		Plate: journalOpts.plate,
		Kind:  journalOpts.kind,
	})
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	if journalOpts.asJSON {
		enc := json.NewEncoder(out)
		for _, r := range recs {
			if err := enc.Encode(r); err != nil {
				return err
			}
		}
		return nil
	}
	tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "RUN\tTURN\tKIND\tPLATE\tTIER\tCHARGER\tKWH\tCOST\tACCEPTED")
	for _, r := range recs {
		fmt.Fprintf(tw, "%s\t%d\t%s\t%s\t%s\t%s\t%d\t%.2f\t%t\n",
			r.RunID, r.Turn, r.Kind, r.Plate, r.Tier, r.ChargerID, r.KWh, r.Cost, r.Accepted)
	}
	return tw.Flush()
}
