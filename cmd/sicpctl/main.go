// Sicpctl is a control utility for Philips signage displays speaking SICP.
//
// It drives displays over TCP port 5000 or RS-232, one subcommand per
// protocol operation, with a YAML registry mapping operator-chosen names to
// display addresses. Commands target a named display, every configured
// display at once, or an ad-hoc address given with --host or --serial.
//
// Usage:
//
//	sicpctl <command> <display|all> [args] [flags]
//	sicpctl <command> --host <ip> [args] [flags]
//
// See 'sicpctl --help' for available commands.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/logging"
	"github.com/tidworth/sicp/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// Target selection flags, shared by every display command
var (
	hostFlag       string
	serialFlag     string
	portFlag       int
	monitorIDFlag  int
	connectTimeout time.Duration
	readTimeout    time.Duration
	verbose        bool
)

var rootCmd = &cobra.Command{
	Use:   "sicpctl",
	Short: "Philips SICP display control",
	Long: `Control Philips signage displays over the Serial/IP Control Protocol.

Displays are addressed by the names configured with 'sicpctl displays add',
by 'all' to fan the command out over every configured display, or directly
with --host (TCP) or --serial (RS-232), bypassing the registry:

  sicpctl set-power lobby on
  sicpctl get-power all
  sicpctl set-volume --host 192.168.1.50 40

Free-text values resolve through forgiving alias tables, so 'hdmi1',
'HDMI_1' and the raw code 0x0D all select the same input.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			return logging.Initialize("debug")
		}
		return logging.InitializeFromEnv()
	},
}

func init() {
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.PersistentFlags().StringVar(&hostFlag, "host", "", "Display IP or hostname (bypasses the registry)")
	rootCmd.PersistentFlags().StringVar(&serialFlag, "serial", "", "Serial device path, e.g. /dev/ttyUSB0 (bypasses the registry)")
	rootCmd.PersistentFlags().IntVar(&portFlag, "port", display.DefaultPort, "SICP TCP port for --host")
	rootCmd.PersistentFlags().IntVar(&monitorIDFlag, "id", 1, "Monitor ID for --host/--serial (0 broadcasts)")
	rootCmd.PersistentFlags().DurationVar(&connectTimeout, "connect-timeout", display.DefaultConnectTimeout, "TCP connect timeout for --host")
	rootCmd.PersistentFlags().DurationVar(&readTimeout, "read-timeout", display.DefaultReadTimeout, "Reply read timeout")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Debug logging with frame hex dumps")

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sicpctl %s (commit: %s)\n", version.Version, version.Commit)
	},
}
