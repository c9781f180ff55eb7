package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "List past analysis runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureServices(); err != nil {
				return err
			}

			runs, err := ctx.runs.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, runs)
			}

			headers := []string{"ID", "STATUS", "ANALYZED", "MATCHED", "MISMATCHED", "APPLIED", "STARTED"}
			aligns := []columnAlignment{
				alignLeft, alignLeft, alignRight, alignRight, alignRight, alignLeft, alignLeft,
			}
			rows := make([][]string, 0, len(runs))
			for _, r := range runs {
				applied := "no"
				if r.Applied {
					applied = "yes"
				}
				rows = append(rows, []string{
					r.ID[:8],
					r.Status,
					strconv.Itoa(r.Analyzed),
					strconv.Itoa(r.Matched),
					strconv.Itoa(r.Mismatched),
					applied,
					r.CreatedAt.Format(time.RFC3339),
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit runs as JSON")

	cmd.AddCommand(newRunsShowCommand(ctx))
	cmd.AddCommand(newRunsApplyCommand(ctx))
	return cmd
}

func newRunsShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "show <id>",
		Short: "Show the folder results of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureServices(); err != nil {
				return err
			}

			run, err := ctx.runs.GetRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if run == nil {
				return fmt.Errorf("run %s not found", args[0])
			}
			records, err := ctx.runs.GetFolderRecords(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					Run     any `json:"run"`
					Folders any `json:"folders"`
				}{run, records})
			}

			printRunReport(cmd, run, records)
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the run report as JSON")
	return cmd
}

func newRunsApplyCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <id>",
		Short: "Write the cut counts a completed run proposed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureServices(); err != nil {
				return err
			}
			applied, err := ctx.runs.ApplyRun(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Applied cut counts to %d schedule(s).\n", applied)
			return nil
		},
	}
}
