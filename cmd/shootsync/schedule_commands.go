package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shootsync/shootsync-agent/internal/schedule"
)

func newScheduleCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Manage booked sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.AddCommand(newScheduleListCommand(ctx))
	cmd.AddCommand(newScheduleAddCommand(ctx))
	cmd.AddCommand(newScheduleRemoveCommand(ctx))
	return cmd
}

func newScheduleListCommand(ctx *commandContext) *cobra.Command {
	var date string
	var jsonOut bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureServices(); err != nil {
				return err
			}

			var schedules []*schedule.Schedule
			var err error
			if date != "" {
				schedules, err = ctx.schedules.ListByDate(cmd.Context(), date)
			} else {
				schedules, err = ctx.schedules.List(cmd.Context())
			}
			if err != nil {
				return err
			}

			if jsonOut {
				return writeJSON(cmd, schedules)
			}

			headers := []string{"ID", "DATE", "TIME", "COUPLE", "LOCATION", "CUTS", "MANAGER"}
			aligns := []columnAlignment{
				alignLeft, alignLeft, alignLeft, alignLeft, alignLeft, alignRight, alignLeft,
			}
			rows := make([][]string, 0, len(schedules))
			for _, s := range schedules {
				rows = append(rows, []string{
					s.ID[:8], s.Date, s.Time, s.Couple, s.Location,
					strconv.Itoa(s.Cuts), s.Manager,
				})
			}
			fmt.Fprintln(cmd.OutOrStdout(), renderTable(headers, rows, aligns))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Only schedules on this date (YYYY.MM.DD)")
	cmd.Flags().BoolVar(&jsonOut, "json", false, "Emit schedules as JSON")
	return cmd
}

func newScheduleAddCommand(ctx *commandContext) *cobra.Command {
	var sc schedule.Schedule

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a booked session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureServices(); err != nil {
				return err
			}

			created, err := ctx.schedules.Create(cmd.Context(), &sc)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Created schedule %s (%s %s %s)\n",
				created.ID[:8], created.Date, created.Time, created.Couple)
			return nil
		},
	}

	cmd.Flags().StringVar(&sc.Date, "date", "", "Session date (YYYY.MM.DD)")
	cmd.Flags().StringVar(&sc.Time, "time", "", "Session time (HH:MM or Korean spelling)")
	cmd.Flags().StringVar(&sc.Couple, "couple", "", "Couple names")
	cmd.Flags().StringVar(&sc.Location, "location", "", "Venue")
	cmd.Flags().StringVar(&sc.Contact, "contact", "", "Contact info")
	cmd.Flags().StringVar(&sc.Manager, "manager", "", "Assigned manager")
	cmd.Flags().StringVar(&sc.Brand, "brand", "", "Studio brand")
	cmd.Flags().StringVar(&sc.Memo, "memo", "", "Free-form memo")
	cmd.Flags().IntVar(&sc.Cuts, "cuts", 0, "Delivered cut count")
	cmd.Flags().IntVar(&sc.Price, "price", 0, "Session price")
	cmd.MarkFlagRequired("date")
	cmd.MarkFlagRequired("time")
	return cmd
}

func newScheduleRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <id>",
		Short: "Remove a schedule",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := ctx.ensureServices(); err != nil {
				return err
			}
			if err := ctx.schedules.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed schedule %s\n", args[0])
			return nil
		},
	}
}
