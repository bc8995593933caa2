package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/tui"
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard [display]",
	Short: "Open the interactive dashboard",
	Long: `Open a full-screen dashboard for one display.

The dashboard shows a live status snapshot and binds single keys to the
common controls: power, backlight, mute, volume, input cycling. It
drives exactly one display; pick it by registry name or --host/--serial.`,
	Example: `  sicpctl dashboard lobby
  sicpctl dashboard --host 192.168.1.50
  sicpctl dashboard --serial /dev/ttyUSB0`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDashboard,
}

func init() {
	rootCmd.AddCommand(dashboardCmd)
}

func runDashboard(cmd *cobra.Command, args []string) error {
	targets, rest, err := selectTargets(args)
	if err != nil {
		return err
	}
	if err := noValueArgs(rest); err != nil {
		return err
	}
	if len(targets) != 1 {
		return fmt.Errorf("the dashboard drives one display at a time, not %d", len(targets))
	}

	t := targets[0]
	return tui.Run(t.name, t.client.Target(), t.client)
}
