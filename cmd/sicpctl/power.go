package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/config"
	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/protocol"
	"github.com/tidworth/sicp/internal/wol"
)

func init() {
	rootCmd.AddCommand(
		newToggleCmd("set-power", "Turn the display on or off", "power",
			(*display.Client).SetPower),
		newBoolGetCmd("get-power", "Report the power state", "power",
			(*display.Client).GetPower),

		newToggleCmd("set-backlight", "Turn the panel backlight on or off", "backlight",
			(*display.Client).SetBacklight),
		newBoolGetCmd("get-backlight", "Report the backlight state", "backlight",
			(*display.Client).GetBacklight),

		newToggleCmd("set-wol", "Enable or disable the display's Wake-on-LAN listener", "Wake-on-LAN",
			(*display.Client).SetWakeOnLAN),
		newBoolGetCmd("get-wol", "Report whether Wake-on-LAN is enabled", "Wake-on-LAN",
			(*display.Client).GetWakeOnLAN),

		newEnumSetCmd("set-cold-start", "Set the power behavior after AC power returns",
			protocol.ColdStart, (*display.Client).SetColdStart),
		newEnumGetCmd("get-cold-start", "Report the power behavior after AC power returns",
			protocol.ColdStart, (*display.Client).GetColdStart),

		newEnumSetCmd("set-auto-signal", "Set the automatic signal detection mode",
			protocol.AutoSignal, (*display.Client).SetAutoSignalMode),
		newEnumGetCmd("get-auto-signal", "Report the automatic signal detection mode",
			protocol.AutoSignal, (*display.Client).GetAutoSignalMode),

		newEnumSetCmd("set-power-save", "Set the power save mode",
			protocol.PowerSave, (*display.Client).SetPowerSaveMode),
		newEnumGetCmd("get-power-save", "Report the power save mode",
			protocol.PowerSave, (*display.Client).GetPowerSaveMode),

		newEnumSetCmd("set-smart-power", "Set the smart power level",
			protocol.SmartPower, (*display.Client).SetSmartPowerLevel),
		newEnumGetCmd("get-smart-power", "Report the smart power level",
			protocol.SmartPower, (*display.Client).GetSmartPowerLevel),

		newEnumSetCmd("set-apm", "Set the advanced power management mode",
			protocol.APM, (*display.Client).SetAPMMode),
		newEnumGetCmd("get-apm", "Report the advanced power management mode",
			protocol.APM, (*display.Client).GetAPMMode),

		wakeCmd,
	)
}

var wakeMAC string

// wakeCmd sends a Wake-on-LAN magic packet. This is the way back from deep
// standby, where the SICP listener itself is powered down and set-power
// gets no answer.
var wakeCmd = &cobra.Command{
	Use:   "wake <display|all>",
	Short: "Wake a display with a Wake-on-LAN magic packet",
	Long: `Send a Wake-on-LAN magic packet to the display's network interface.

A display in deep standby no longer answers SICP, so this is the one
command that does not speak the protocol: it broadcasts a UDP magic packet
built from the MAC address configured in the registry (or given with
--mac). The display must have Wake-on-LAN enabled ('sicpctl set-wol').`,
	Example: `  # Wake a configured display ('mac' set in the registry)
  sicpctl wake lobby

  # Wake every configured display that has a MAC address
  sicpctl wake all

  # Wake an unconfigured display directly
  sicpctl wake --mac C4:BE:84:74:86:37`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWake,
}

func init() {
	wakeCmd.Flags().StringVar(&wakeMAC, "mac", "", "MAC address to wake (bypasses the registry)")
}

func runWake(cmd *cobra.Command, args []string) error {
	if wakeMAC != "" {
		if err := wol.Wake(wakeMAC); err != nil {
			return err
		}
		fmt.Printf("✓ magic packet sent to %s\n", wakeMAC)
		return nil
	}

	if len(args) == 0 {
		return fmt.Errorf("specify a display name, 'all', or --mac")
	}

	registry, err := config.LoadRegistry()
	if err != nil {
		return err
	}

	var resolved []*config.Resolved
	if args[0] == "all" {
		resolved, err = registry.ResolveAll()
		if err != nil {
			return err
		}
	} else {
		res, err := registry.Resolve(args[0])
		if err != nil {
			return err
		}
		resolved = []*config.Resolved{res}
	}

	failed := 0
	for _, res := range resolved {
		if res.MAC == "" {
			failed++
			fmt.Printf("✗ %s: no MAC address configured\n", res.Name)
			continue
		}
		if err := wol.Wake(res.MAC); err != nil {
			failed++
			fmt.Printf("✗ %s: %v\n", res.Name, err)
			continue
		}
		fmt.Printf("✓ %s: magic packet sent to %s\n", res.Name, res.MAC)
	}

	if failed > 0 {
		return fmt.Errorf("wake failed on %d of %d displays", failed, len(resolved))
	}
	return nil
}
