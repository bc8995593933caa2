package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/config"
	"github.com/tidworth/sicp/internal/ui"
)

func init() {
	displaysAddCmd.Flags().StringVar(&addHost, "host", "", "IP address or hostname for TCP control")
	displaysAddCmd.Flags().StringVar(&addSerial, "serial", "", "RS-232 device path (overrides TCP)")
	displaysAddCmd.Flags().IntVar(&addPort, "port", 0, "SICP TCP port (0 inherits the registry default)")
	displaysAddCmd.Flags().IntVar(&addMonitorID, "id", 0, "Monitor ID 1-255 (0 inherits the registry default)")
	displaysAddCmd.Flags().StringVar(&addMAC, "mac", "", "MAC address for Wake-on-LAN")
	displaysAddCmd.Flags().Float64Var(&addConnectTimeout, "connect-timeout", 0, "Connect timeout in seconds (0 inherits)")
	displaysAddCmd.Flags().Float64Var(&addReceiveTimeout, "receive-timeout", 0, "Receive timeout in seconds (0 inherits)")
	displaysRemoveCmd.Flags().BoolVarP(&removeYes, "yes", "y", false, "Skip the confirmation prompt")

	displaysCmd.AddCommand(displaysListCmd, displaysAddCmd, displaysRemoveCmd, displaysPathCmd, displaysInitCmd)
	rootCmd.AddCommand(displaysCmd)
}

var displaysCmd = &cobra.Command{
	Use:   "displays",
	Short: "Manage the display registry",
	Long: `Manage the named display registry.

Registered displays can be addressed by name in every command, and
'all' fans a command out to the whole registry. Run without a
subcommand to list what is configured.`,
	Args: cobra.NoArgs,
	RunE: runDisplaysList,
}

var displaysListCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered displays",
	Args:  cobra.NoArgs,
	RunE:  runDisplaysList,
}

func runDisplaysList(cmd *cobra.Command, args []string) error {
	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}
	resolved, err := registry.ResolveAll()
	if err != nil {
		return err
	}
	if len(resolved) == 0 {
		fmt.Println("No displays configured. Add one with 'sicpctl displays add'.")
		return nil
	}

	fmt.Printf("%-16s %-28s %-4s %s\n", "NAME", "TARGET", "ID", "MAC")
	for _, res := range resolved {
		target := res.SerialDevice
		if target == "" {
			target = fmt.Sprintf("%s:%d", res.Host, res.Port)
		}
		mac := res.MAC
		if mac == "" {
			mac = "-"
		}
		fmt.Printf("%-16s %-28s %-4d %s\n", res.Name, target, res.MonitorID, mac)
	}
	return nil
}

var (
	addHost           string
	addSerial         string
	addPort           int
	addMonitorID      int
	addMAC            string
	addConnectTimeout float64
	addReceiveTimeout float64
)

var displaysAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add or replace a registry entry",
	Long: `Add a display to the registry, or replace the entry if the name is
already taken. Fields left at zero inherit the registry defaults when
the name is resolved.`,
	Example: `  sicpctl displays add lobby --host 192.168.1.50 --mac C4:BE:84:74:86:37
  sicpctl displays add hallway --serial /dev/ttyUSB0
  sicpctl displays add wall-3 --host 10.0.0.73 --id 3 --port 5000`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		// "all" is the fan-out keyword in every command's target position
		if strings.EqualFold(name, "all") {
			return fmt.Errorf("%q is reserved and cannot name a display", name)
		}
		if addHost == "" && addSerial == "" {
			return fmt.Errorf("a display needs --host or --serial")
		}
		if addMonitorID < 0 || addMonitorID > 255 {
			return fmt.Errorf("monitor ID must be between 1 and 255, got %d", addMonitorID)
		}

		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		replaced := registry.GetDisplay(name) != nil
		registry.AddDisplay(name, &config.Display{
			Host:           addHost,
			Port:           addPort,
			MonitorID:      addMonitorID,
			SerialDevice:   addSerial,
			MAC:            addMAC,
			ConnectTimeout: addConnectTimeout,
			ReceiveTimeout: addReceiveTimeout,
		})

		// Resolve before saving so a bad entry never lands on disk
		if _, err := registry.Resolve(name); err != nil {
			return err
		}
		if err := registry.Save(); err != nil {
			return err
		}

		if replaced {
			color.Green("✓ replaced display %q", name)
		} else {
			color.Green("✓ added display %q", name)
		}
		return nil
	},
}

var removeYes bool

var displaysRemoveCmd = &cobra.Command{
	Use:   "remove <name>",
	Short: "Remove a registry entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if registry.GetDisplay(name) == nil {
			return fmt.Errorf("display %q is not configured", name)
		}
		if !removeYes && !ui.Confirm(fmt.Sprintf("Remove display %q from the registry?", name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		registry.RemoveDisplay(name)
		if err := registry.Save(); err != nil {
			return err
		}
		color.Green("✓ removed display %q", name)
		return nil
	},
}

var displaysPathCmd = &cobra.Command{
	Use:   "path",
	Short: "Print the registry file location",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		fmt.Println(path)
		return nil
	},
}

var displaysInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write an example registry file",
	Long: `Write a registry file with one example display as a starting point.
Refuses to overwrite an existing registry.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		registry, err := config.LoadRegistry()
		if err != nil {
			return err
		}
		if len(registry.Displays) > 0 {
			path, _ := config.GetConfigPath()
			return fmt.Errorf("registry at %s already has displays configured", path)
		}
		if err := config.CreateDefaultConfig(); err != nil {
			return err
		}
		path, err := config.GetConfigPath()
		if err != nil {
			return err
		}
		color.Green("✓ wrote example registry to %s", path)
		return nil
	},
}

