package cmd

import (
	"fmt"
	"os"
	"time"

	"sheet_poster/internal/app"
	"sheet_poster/internal/schedule"

	"github.com/spf13/cobra"
)

func newLocateCmd() *cobra.Command {
	var at string

	cmd := &cobra.Command{
		Use:   "locate",
		Short: "Print the sheet and column that would be read, without touching any API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc, err := app.LoadLocation(os.Getenv("TIMEZONE"))
			if err != nil {
				return err
			}
			t, err := parseAt(at, loc, time.Now())
			if err != nil {
				return err
			}

			tc := schedule.NewTimeContext(t)
			location := tc.Location()
			column := location.Column
			if column == "" {
				column = "(none)"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "time:    %s\n", t.Format(time.RFC3339))
			fmt.Fprintf(out, "week:    %d\n", tc.Week)
			fmt.Fprintf(out, "weekday: %d\n", tc.Weekday)
			fmt.Fprintf(out, "sheet:   %s\n", location.Sheet)
			fmt.Fprintf(out, "column:  %s\n", column)
			fmt.Fprintf(out, "range:   %s\n", location.Range())
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "at", "", "locate for this time instead of now (RFC3339 or \"YYYY-MM-DD HH:MM\")")
	return cmd
}
