// Sicp-bridge is an automation bridge daemon for Philips SICP displays.
//
// It polls every display in the registry for a state snapshot and exposes
// the results to smart-home platforms over MQTT and WebSocket, accepting
// set commands back over MQTT command topics.
//
// Usage:
//
//	sicp-bridge serve [flags]
//
// See 'sicp-bridge serve --help' for available options.
package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/bridge"
	"github.com/tidworth/sicp/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sicp-bridge",
	Short: "SICP display automation bridge",
	Long: `A standalone daemon that connects Philips SICP displays to smart-home
platforms.

The bridge polls every display in the registry for a state snapshot and
publishes the results as retained MQTT topics and a WebSocket stream.
Inbound MQTT command topics drive power, volume, mute, input and
Wake-on-LAN operations.

Displays are configured with the 'sicpctl displays' commands.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	httpAddr     string
	pollInterval time.Duration
	mqttBroker   string
	mqttClientID string
	enableMDNS   bool
	logLevel     string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the bridge daemon",
	Long: `Start the bridge daemon covering every display in the registry.

MQTT publishing is enabled by passing --mqtt-broker; without it the bridge
only serves its HTTP/WebSocket surface. State topics are retained so a
freshly connected automation platform sees the last known state
immediately.`,
	Example: `  # Serve the HTTP/WebSocket surface only
  sicp-bridge serve

  # Publish to an MQTT broker and announce the bridge over mDNS
  sicp-bridge serve --mqtt-broker tcp://broker.local:1883 --mdns

  # Poll more aggressively on a dedicated network
  sicp-bridge serve --poll-interval 10s --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&httpAddr, "addr", bridge.DefaultHTTPAddr, "HTTP/WebSocket listen address")
	serveCmd.Flags().DurationVar(&pollInterval, "poll-interval", bridge.DefaultPollInterval, "Snapshot refresh interval per display")
	serveCmd.Flags().StringVar(&mqttBroker, "mqtt-broker", "", "MQTT broker URL, e.g. tcp://broker.local:1883 (disabled if not specified)")
	serveCmd.Flags().StringVar(&mqttClientID, "mqtt-client-id", bridge.DefaultMQTTClientID, "MQTT client identifier")
	serveCmd.Flags().BoolVar(&enableMDNS, "mdns", false, "Announce the bridge over mDNS")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	config := &bridge.Config{
		HTTPAddr:     httpAddr,
		PollInterval: pollInterval,
		MQTTBroker:   mqttBroker,
		MQTTClientID: mqttClientID,
		EnableMDNS:   enableMDNS,
		LogLevel:     logLevel,
	}

	srv, err := bridge.New(config)
	if err != nil {
		return fmt.Errorf("failed to create bridge: %w", err)
	}

	return srv.Start()
}

// Version command
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("sicp-bridge %s (commit: %s)\n", version.Version, version.Commit)
	},
}
