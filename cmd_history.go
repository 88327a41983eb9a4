package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/wildfunctions/stdgp/pkg/store"
)

func newHistoryCmd() *cobra.Command {
	var path, format string

	cmd := &cobra.Command{
		Use:   "history RUN_ID",
		Short: "Show a stored run and its generations from a sqlite store",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			s := store.NewSQLiteStore(path)
			if err := s.Init(ctx); err != nil {
				return err
			}
			defer s.Close()
			return writeHistory(ctx, cmd.OutOrStdout(), s, args[0], format)
		},
	}
	cmd.Flags().StringVar(&path, "store-path", "stdgp.db", "sqlite database file")
	cmd.Flags().StringVar(&format, "format", "text", "output format (text, json)")
	return cmd
}

func writeHistory(ctx context.Context, w io.Writer, s store.Store, runID, format string) error {
	run, ok, err := s.GetRun(ctx, runID)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("run %s not found", runID)
	}
	gens, err := s.ListGenerations(ctx, runID)
	if err != nil {
		return err
	}

	if format == "json" {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(struct {
			Run         store.RunRecord          `json:"run"`
			Generations []store.GenerationRecord `json:"generations"`
		}{run, gens})
	}

	fmt.Fprintf(w, "Run %s started %s\n", run.ID, run.StartedAt.Format("2006-01-02 15:04:05 UTC"))
	for _, g := range gens {
		fmt.Fprintf(w, "Gen %4d | Best: %.6g | Avg: %.6g | Size: %.1f | Discarded: %d/%d | %s\n",
			g.Generation, g.BestFitness, g.AvgFitness, g.AvgSize, g.Discarded, g.Produced, g.Best.Program)
	}
	if run.Best != nil {
		fmt.Fprintf(w, "Best: %s (fitness %.6g, size %d, depth %d)\n",
			run.Best.Program, run.Best.Fitness, run.Best.Size, run.Best.Depth)
	}
	return nil
}
