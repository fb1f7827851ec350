package cmd

import (
	"fmt"
	"strings"
	"time"

	"sheet_poster/internal/app"

	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "sheet-poster",
		Short: "Publish scheduled posts from a Google Sheet to a Telegram channel",
		Long: `sheet-poster reads the post planned for the current hour from a Google Sheet
and publishes its images and caption to a Telegram channel.

Each day has its own tab named "<week>-<weekday>" and each posting hour its own column.
When nothing can be read, a notice goes to the admin channel instead.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			app.SetupEnvironment()
		},
		SilenceUsage: true,
		RunE:         runServe,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newOnceCmd())
	cmd.AddCommand(newLocateCmd())

	return cmd
}

var atLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04",
	"2006-01-02 15:04",
}

// parseAt resolves the --at flag. Values without an offset are read in loc.
func parseAt(raw string, loc *time.Location, now time.Time) (time.Time, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return now.In(loc), nil
	}
	for _, layout := range atLayouts {
		if t, err := time.ParseInLocation(layout, raw, loc); err == nil {
			return t.In(loc), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid --at %q: expected RFC3339 or \"YYYY-MM-DD HH:MM\"", raw)
}
