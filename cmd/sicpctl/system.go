package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/protocol"
)

func init() {
	rootCmd.AddCommand(
		getGroupIDCmd,
		setGroupIDCmd,
		setMonitorIDCmd,
		getOSDTimeoutCmd,
		setOSDTimeoutCmd,

		newEnumSetCmd("set-remote-lock", "Lock or unlock the remote control and keypad",
			protocol.RemoteLock, (*display.Client).SetRemoteLock),
		newEnumGetCmd("get-remote-lock", "Report the remote control and keypad lock state",
			protocol.RemoteLock, (*display.Client).GetRemoteLock),

		sendRemoteKeyCmd,
		getSerialNumberCmd,
		getTemperatureCmd,
		getModelInfoCmd,
		getSICPInfoCmd,
		getIPConfigCmd,
	)
}

var getGroupIDCmd = &cobra.Command{
	Use:   "get-group-id [display|all]",
	Short: "Report the display's group ID",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		if err := noValueArgs(rest); err != nil {
			return err
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			group, err := c.GetGroupID()
			if err != nil {
				return "", err
			}
			if group == display.GroupOff {
				return "group addressing off", nil
			}
			return fmt.Sprintf("group %d", group), nil
		})
	},
}

var setGroupIDCmd = &cobra.Command{
	Use:   "set-group-id <display|all> <1-254|off>",
	Short: "Assign the display to a group",
	Long: `Assign the display to a group for group-addressed commands.

Valid group IDs are 1 to 254; 'off' (or 255) disables group addressing.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "a group ID or 'off'")
		if err != nil {
			return err
		}

		group := display.GroupOff
		label := "group addressing off"
		if !strings.EqualFold(value, "off") {
			n, err := strconv.Atoi(value)
			if err != nil || n < 1 || n > 255 {
				return fmt.Errorf("group ID must be between 1 and 254 or 'off', got %q", value)
			}
			group = n
			if n != display.GroupOff {
				label = fmt.Sprintf("group %d", n)
			}
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SetGroupID(byte(group))
			return confirmSet(label, accepted, err)
		})
	},
}

var setMonitorIDCmd = &cobra.Command{
	Use:   "set-monitor-id <display> <1-255>",
	Short: "Reassign the display's monitor ID",
	Long: `Reassign the display's monitor ID.

The command is addressed to the current ID; once the display acknowledges,
it only answers on the new one. Remember to update the registry entry
afterward ('sicpctl displays add' overwrites in place), or the next
command will address a ghost.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "the new monitor ID")
		if err != nil {
			return err
		}
		id, err := strconv.Atoi(value)
		if err != nil || id < 1 || id > 255 {
			return fmt.Errorf("monitor ID must be between 1 and 255, got %q", value)
		}
		label := fmt.Sprintf("monitor ID %d", id)
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SetMonitorID(byte(id))
			return confirmSet(label, accepted, err)
		})
	},
}

var getOSDTimeoutCmd = &cobra.Command{
	Use:   "get-osd-timeout [display|all]",
	Short: "Report the information OSD timeout",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		if err := noValueArgs(rest); err != nil {
			return err
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			seconds, err := c.GetOSDTimeout()
			if err != nil {
				return "", err
			}
			if seconds == 0 {
				return "information OSD disabled", nil
			}
			return fmt.Sprintf("information OSD %ds", seconds), nil
		})
	},
}

var setOSDTimeoutCmd = &cobra.Command{
	Use:   "set-osd-timeout <display|all> <seconds>",
	Short: "Set how long the information OSD stays on screen",
	Long:  `Set the information OSD timeout, 1 to 60 seconds. Zero disables it.`,
	Args:  cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "a timeout in seconds")
		if err != nil {
			return err
		}
		seconds, err := strconv.Atoi(value)
		if err != nil || seconds < 0 || seconds > 60 {
			return fmt.Errorf("OSD timeout must be between 0 and 60 seconds, got %q", value)
		}
		label := fmt.Sprintf("information OSD %ds", seconds)
		if seconds == 0 {
			label = "information OSD disabled"
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SetOSDTimeout(seconds)
			return confirmSet(label, accepted, err)
		})
	},
}

var sendRemoteKeyCmd = &cobra.Command{
	Use:   "send-remote-key <display|all> <key>",
	Short: "Inject a remote control key press",
	Long: `Inject a remote control key press as if the physical remote had sent it.

Accepted keys: ` + strings.Join(protocol.RemoteKey.Labels(), ", ") + `.`,
	Example: `  sicpctl send-remote-key lobby menu
  sicpctl send-remote-key lobby volume-up
  sicpctl send-remote-key all home`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "a remote key name")
		if err != nil {
			return err
		}
		code, err := protocol.RemoteKey.Code(value)
		if err != nil {
			return err
		}
		label := "key " + protocol.RemoteKey.Label(code)
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SimulateRemoteKey(code)
			return confirmSet(label, accepted, err)
		})
	},
}

var getSerialNumberCmd = &cobra.Command{
	Use:   "get-serial-number [display|all]",
	Short: "Report the display serial number",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		if err := noValueArgs(rest); err != nil {
			return err
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			serial, err := c.GetSerialNumber()
			if err != nil {
				return "", err
			}
			if serial == "" {
				return "no serial number reported", nil
			}
			return serial, nil
		})
	},
}

var getTemperatureCmd = &cobra.Command{
	Use:   "get-temperature [display|all]",
	Short: "Report the onboard temperature sensors",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		if err := noValueArgs(rest); err != nil {
			return err
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			temps, err := c.GetTemperatures()
			if err != nil {
				return "", err
			}
			if len(temps) == 0 {
				return "no temperature sensors reported", nil
			}
			parts := make([]string, len(temps))
			for i, t := range temps {
				parts[i] = fmt.Sprintf("%d°C", t)
			}
			return strings.Join(parts, ", "), nil
		})
	},
}

var getModelInfoCmd = &cobra.Command{
	Use:   "get-model-info <display|all> <field>",
	Short: "Report one model information field",
	Long: `Report one model information field.

Accepted fields: ` + strings.Join(protocol.ModelInfoLabel.Labels(), ", ") + `.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "a model info field")
		if err != nil {
			return err
		}
		field, err := protocol.ModelInfoLabel.Code(value)
		if err != nil {
			return err
		}
		name := protocol.ModelInfoLabel.Label(field)
		return forEach(targets, func(c *display.Client) (string, error) {
			text, err := c.GetModelInfo(field)
			if err != nil {
				return "", err
			}
			return name + " " + text, nil
		})
	},
}

var getSICPInfoCmd = &cobra.Command{
	Use:   "get-sicp-info <display|all> <field>",
	Short: "Report one SICP implementation field",
	Long: `Report one SICP implementation field.

Accepted fields: ` + strings.Join(protocol.SICPInfoLabel.Labels(), ", ") + `.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "a SICP info field")
		if err != nil {
			return err
		}
		field, err := protocol.SICPInfoLabel.Code(value)
		if err != nil {
			return err
		}
		name := protocol.SICPInfoLabel.Label(field)
		return forEach(targets, func(c *display.Client) (string, error) {
			text, err := c.GetSICPInfo(field)
			if err != nil {
				return "", err
			}
			return name + " " + text, nil
		})
	},
}

var ipValueTypeFlag string

func init() {
	getIPConfigCmd.Flags().StringVar(&ipValueTypeFlag, "type", "current", "Value set to read (current or queued)")
}

var getIPConfigCmd = &cobra.Command{
	Use:   "get-ip-config <display|all> [parameter]",
	Short: "Report the display's network configuration",
	Long: `Report the display's IP configuration, either every parameter or one.

Parameters: ` + strings.Join(protocol.IPParameter.Labels(), ", ") + `.

With --type queued the values staged for the next restart are reported
instead of the running ones.`,
	Example: `  # Everything
  sicpctl get-ip-config lobby

  # One parameter
  sicpctl get-ip-config lobby gateway

  # Values staged for the next restart
  sicpctl get-ip-config lobby --type queued`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		valueType, err := protocol.IPValueType.Code(ipValueTypeFlag)
		if err != nil {
			return err
		}

		var params []byte
		if len(rest) == 1 {
			param, err := protocol.IPParameter.Code(rest[0])
			if err != nil {
				return err
			}
			params = []byte{param}
		} else {
			for _, name := range []string{"ip", "subnet", "gateway", "dns1", "dns2", "eth-mac", "wifi-mac"} {
				params = append(params, protocol.IPParameter.MustCode(name))
			}
		}

		return forEach(targets, func(c *display.Client) (string, error) {
			var lines []string
			for _, param := range params {
				value, err := c.GetIPParameter(param, valueType)
				if err != nil {
					// A display without WiFi answers NAV for the WiFi MAC;
					// keep going when reading the full set
					if len(params) > 1 && display.IsNotSupported(err) {
						continue
					}
					return "", err
				}
				lines = append(lines, fmt.Sprintf("%s %s",
					protocol.IPParameter.Label(value.Parameter), value.Formatted))
			}
			return strings.Join(lines, "\n  "), nil
		})
	},
}
