package main

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/japaniel/wordchallenge/pkg/history"
)

func newHistoryCmd(a *app) *cobra.Command {
	var asJSON bool
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded practice attempts, oldest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, conn, err := a.openHistory()
			if err != nil {
				return err
			}
			defer conn.Close()

			entries, err := store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			entries = history.Last(entries, limit)
			if asJSON {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(entries)
			}
			return printHistory(cmd.OutOrStdout(), entries)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print entries as a JSON array")
	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the last N entries")

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Delete the recorded history",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, conn, err := a.openHistory()
			if err != nil {
				return err
			}
			defer conn.Close()
			if err := store.Clear(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "History cleared.")
			return nil
		},
	})
	return cmd
}

func printHistory(w io.Writer, entries []history.Entry) error {
	if len(entries) == 0 {
		_, err := fmt.Fprintln(w, "No attempts recorded yet.")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TIME\tWORD\tDIFFICULTY\tSCORE\tSENTENCE")
	for _, e := range entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\t%s\n", e.Timestamp, e.Word, e.Difficulty, e.Score, e.Sentence)
	}
	return tw.Flush()
}

func newStatsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Summarize recorded attempts per difficulty",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, conn, err := a.openHistory()
			if err != nil {
				return err
			}
			defer conn.Close()

			entries, err := store.ReadAll(cmd.Context())
			if err != nil {
				return err
			}
			s := history.Summarize(entries)
			out := cmd.OutOrStdout()
			if s.Attempts == 0 {
				fmt.Fprintln(out, "No attempts recorded yet.")
				return nil
			}
			tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "DIFFICULTY\tATTEMPTS\tAVERAGE\tBEST")
			for _, d := range s.ByDifficulty {
				fmt.Fprintf(tw, "%s\t%d\t%.1f\t%.1f\n", d.Difficulty, d.Attempts, d.Average, d.Best)
			}
			fmt.Fprintf(tw, "All\t%d\t%.1f\t%.1f\n", s.Attempts, s.Average, s.Best)
			return tw.Flush()
		},
	}
}
