package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/protocol"
)

func init() {
	rootCmd.AddCommand(
		setInputSourceCmd,
		getInputSourceCmd,
		setBrightnessCmd,
		getBrightnessCmd,
		setColorTemperatureCmd,
		getColorTemperatureCmd,

		newEnumSetCmd("set-color-temperature-mode", "Select a color temperature preset",
			protocol.ColorTemperature, (*display.Client).SetColorTemperatureMode),
		newEnumGetCmd("get-color-temperature-mode", "Report the active color temperature preset",
			protocol.ColorTemperature, (*display.Client).GetColorTemperatureMode),

		newEnumSetCmd("set-picture-style", "Set the picture style",
			protocol.PictureStyle, (*display.Client).SetPictureStyle),
		newEnumGetCmd("get-picture-style", "Report the active picture style",
			protocol.PictureStyle, (*display.Client).GetPictureStyle),

		newEnumSetCmd("set-test-pattern", "Enable an internal test pattern",
			protocol.TestPattern, (*display.Client).SetTestPattern),
		newEnumGetCmd("get-test-pattern", "Report the active test pattern",
			protocol.TestPattern, (*display.Client).GetTestPattern),

		newToggleCmd("set-android-4k", "Enable or disable the Android 4K UI mode", "Android 4K mode",
			(*display.Client).SetAndroid4K),
		newBoolGetCmd("get-android-4k", "Report whether the Android 4K UI mode is enabled", "Android 4K mode",
			(*display.Client).GetAndroid4K),

		newEnumSetCmd("set-power-on-logo", "Set the power-on logo mode",
			protocol.PowerOnLogo, (*display.Client).SetPowerOnLogo),
		newEnumGetCmd("get-power-on-logo", "Report the power-on logo mode",
			protocol.PowerOnLogo, (*display.Client).GetPowerOnLogo),

		getVideoSignalCmd,
	)
}

var setInputSourceCmd = &cobra.Command{
	Use:   "set-input-source <display|all> <source> [playlist]",
	Short: "Switch the active input source",
	Long: `Switch the active input source, optionally starting a playlist.

Sources resolve through the input alias table ('hdmi1', 'HDMI 1', 'dvi-d',
'browser', raw codes like 0x0D). The optional playlist slot is 0 for none,
1-7 for a media playlist or URL, or 8 for USB autoplay.`,
	Example: `  sicpctl set-input-source lobby hdmi1
  sicpctl set-input-source all browser
  sicpctl set-input-source lobby mediaplayer 2`,
	Args: cobra.RangeArgs(1, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		if len(rest) < 1 || len(rest) > 2 {
			return fmt.Errorf("expected a source and an optional playlist slot")
		}
		source, err := protocol.InputSource.Code(rest[0])
		if err != nil {
			return err
		}
		playlist := 0
		if len(rest) == 2 {
			playlist, err = strconv.Atoi(rest[1])
			if err != nil || playlist < 0 || playlist > 8 {
				return fmt.Errorf("playlist slot must be between 0 and 8, got %q", rest[1])
			}
		}
		label := "input " + protocol.InputSource.Label(source)
		if playlist > 0 {
			label += fmt.Sprintf(" (playlist %d)", playlist)
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SetInputSource(source, byte(playlist))
			return confirmSet(label, accepted, err)
		})
	},
}

var getInputSourceCmd = &cobra.Command{
	Use:   "get-input-source [display|all]",
	Short: "Report the active input source",
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
			status, err := c.GetInputSource()
			if err != nil {
				return "", err
			}
			result := "input " + protocol.InputSource.Label(status.Source)
			if status.Playlist > 0 {
				result += fmt.Sprintf(" (playlist %d)", status.Playlist)
			}
			return result, nil
		})
	},
}

var setBrightnessCmd = &cobra.Command{
	Use:   "set-brightness <display|all> <percent>",
	Short: "Set the brightness percentage",
	Long: `Set the user brightness as a percentage from 0 to 100.

Values outside the range are clamped rather than rejected, matching the
display's own slider behavior; the clamp is reported before sending.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "a brightness percentage")
		if err != nil {
			return err
		}
		percent, err := strconv.Atoi(value)
		if err != nil {
			return fmt.Errorf("brightness must be a number, got %q", value)
		}

		clamped := percent
		if clamped < 0 {
			clamped = 0
		}
		if clamped > 100 {
			clamped = 100
		}
		if clamped != percent {
			color.Yellow("⚠ brightness %d is out of range, clamping to %d", percent, clamped)
		}

		label := fmt.Sprintf("brightness %d%%", clamped)
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SetBrightness(clamped)
			return confirmSet(label, accepted, err)
		})
	},
}

var getBrightnessCmd = &cobra.Command{
	Use:   "get-brightness [display|all]",
	Short: "Report the brightness percentage",
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
			percent, err := c.GetBrightness()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("brightness %d%%", percent), nil
		})
	},
}

var setColorTemperatureCmd = &cobra.Command{
	Use:   "set-color-temperature <display|all> <kelvin>",
	Short: "Set a precise color temperature in Kelvin",
	Long: `Set the color temperature in Kelvin, adjustable from 2000 to 10000 in
100 K steps.

The display only honors the fine adjustment in the User 2 preset, so the
preset is switched first. Requests between steps round to the nearest one
and the adjusted value is reported.`,
	Example: `  sicpctl set-color-temperature lobby 6500
  sicpctl set-color-temperature all 9300K`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}
		value, err := oneValueArg(rest, "a Kelvin value")
		if err != nil {
			return err
		}
		kelvin, err := parseKelvin(value)
		if err != nil {
			return err
		}

		_, resolved := display.KelvinToStep(kelvin)
		label := fmt.Sprintf("color temperature %d K", resolved)
		if resolved != kelvin {
			label += fmt.Sprintf(" (requested %d K)", kelvin)
		}
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SetPreciseColorTemperature(kelvin)
			return confirmSet(label, accepted, err)
		})
	},
}

var getColorTemperatureCmd = &cobra.Command{
	Use:   "get-color-temperature [display|all]",
	Short: "Report the User 2 color temperature in Kelvin",
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
			kelvin, err := c.GetPreciseColorTemperature()
			if err != nil {
				return "", err
			}
			return fmt.Sprintf("color temperature %d K", kelvin), nil
		})
	},
}

// parseKelvin accepts "6500", "6500K" and "6500k"
func parseKelvin(value string) (int, error) {
	token := strings.TrimSuffix(strings.ToLower(strings.TrimSpace(value)), "k")
	kelvin, err := strconv.Atoi(token)
	if err != nil {
		return 0, fmt.Errorf("color temperature must be a Kelvin value, got %q", value)
	}
	return kelvin, nil
}

var getVideoSignalCmd = &cobra.Command{
	Use:   "get-video-signal [display|all]",
	Short: "Report whether the active input carries a signal",
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
			present, err := c.GetVideoSignal()
			if err != nil {
				return "", err
			}
			if present {
				return "video signal present", nil
			}
			return "no video signal", nil
		})
	},
}
