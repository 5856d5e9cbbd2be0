package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	cobra "github.com/spf13/cobra"

	domain "github.com/inference-gateway/desktop-mcp/internal/domain"
)

type statusReport struct {
	Backend  string                   `json:"backend"`
	Degraded string                   `json:"degraded,omitempty"`
	Checks   map[string]domain.Result `json:"checks"`
}

var statusCheckOrder = []string{"get_screen_size", "get_all_displays", "get_cursor_position", "get_active_window"}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the automation backend and desktop state",
	Long: `Initialize the automation backend and report which one was selected,
the screen size, the monitor layout, the cursor position and the active
window. Nothing on the desktop is changed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := getConfig()
		if err != nil {
			return err
		}
		format, _ := cmd.Flags().GetString("format")

		ctx := cmd.Context()
		d, f := newDispatcher(c)
		defer func() { _ = f.Close() }()

		report := statusReport{
			Backend: f.Provider(ctx).Name(),
			Checks:  make(map[string]domain.Result, len(statusCheckOrder)),
		}
		if err := f.InitError(); err != nil {
			report.Degraded = err.Error()
		}
		for _, name := range statusCheckOrder {
			report.Checks[name] = d.Call(ctx, name, nil)
		}

		out := cmd.OutOrStdout()
		if format == "json" {
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(report)
		}

		fmt.Fprintln(out, headerStyle.Render("Desktop automation status"))
		fmt.Fprintln(out, row("backend", report.Backend))
		if report.Degraded != "" {
			fmt.Fprintln(out, row("degraded", failStyle.Render(report.Degraded)))
		}
		for _, name := range statusCheckOrder {
			res := report.Checks[name]
			label := strings.TrimPrefix(name, "get_")
			if res.Success {
				fmt.Fprintln(out, row(label, okStyle.Render(res.Message)))
			} else {
				fmt.Fprintln(out, row(label, failStyle.Render(res.Message)))
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().StringP("format", "f", "text", "Output format (text, json)")
}
