package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shootsync/shootsync-agent/internal/recon"
)

func newAnalyzeCommand(ctx *commandContext) *cobra.Command {
	var apply bool
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "analyze <folder>...",
		Short: "Analyze delivery folders and match them against schedules",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureServices(); err != nil {
				return err
			}

			run, err := ctx.runs.StartRun(cmd.Context(), args)
			if err != nil {
				return err
			}
			if err := ctx.runs.ExecuteRun(cmd.Context(), run); err != nil {
				return err
			}

			run, err = ctx.runs.GetRun(cmd.Context(), run.ID)
			if err != nil {
				return err
			}
			records, err := ctx.runs.GetFolderRecords(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			applied := 0
			if apply {
				applied, err = ctx.runs.ApplyRun(cmd.Context(), run.ID)
				if err != nil {
					return err
				}
				run.Applied = true
			}

			if jsonOut {
				return writeJSON(cmd, struct {
					*recon.Run
					Folders []*recon.FolderRecord `json:"folders"`
					Written int                   `json:"written"`
				}{run, records, applied})
			}

			printRunReport(cmd, run, records)
			if apply {
				fmt.Fprintf(cmd.OutOrStdout(), "Applied cut counts to %d schedule(s).\n", applied)
			} else if run.Matched > 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "Run %s completed. Re-run with --apply to write cut counts.\n", run.ID[:8])
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&apply, "apply", false, "Write matched cut counts to the schedules")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit the full run report as JSON")
	return cmd
}

func printRunReport(cmd *cobra.Command, run *recon.Run, records []*recon.FolderRecord) {
	headers := []string{"FOLDER", "DATE", "TIME", "COUPLE", "RAW", "JPEG", "CUTS", "MATCH", "NOTES"}
	aligns := []columnAlignment{
		alignLeft, alignLeft, alignLeft, alignLeft,
		alignRight, alignRight, alignRight, alignLeft, alignLeft,
	}

	rows := make([][]string, 0, len(records))
	for _, rec := range records {
		match := "-"
		if rec.Matched() {
			match = rec.ScheduleID[:8]
		}
		rows = append(rows, []string{
			rec.FolderPath,
			rec.Date,
			rec.Time,
			rec.Couple,
			strconv.Itoa(rec.RawCount),
			strconv.Itoa(rec.JPEGCount),
			strconv.Itoa(rec.FinalCutCount),
			match,
			folderNotes(rec),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(headers, rows, aligns))
	fmt.Fprintf(out, "Analyzed %d folder(s): %d matched, %d unmatched, %d with mismatches.\n",
		run.Analyzed, run.Matched, run.Unmatched, run.Mismatched)
}

func folderNotes(rec *recon.FolderRecord) string {
	var notes []string
	if rec.HasMismatch {
		n := len(rec.MismatchFiles)
		notes = append(notes, fmt.Sprintf("mismatch (%d file(s))", n))
	}
	if rec.CutDiscrepancy {
		notes = append(notes, "cut count differs from folder name")
	}
	return strings.Join(notes, "; ")
}
