package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/tidworth/sicp/internal/display"
)

func init() {
	rootCmd.AddCommand(
		setVolumeCmd,
		getVolumeCmd,

		newToggleCmd("set-mute", "Mute or unmute audio", "mute",
			(*display.Client).SetMute),
		newBoolGetCmd("get-mute", "Report whether audio is muted", "mute",
			(*display.Client).GetMute),

		newToggleCmd("set-av-mute", "Blank the panel and silence audio in one step", "A/V mute",
			(*display.Client).SetAVMute),
		newBoolGetCmd("get-av-mute", "Report whether A/V mute is active", "A/V mute",
			(*display.Client).GetAVMute),
	)
}

var audioOutLevel int

var setVolumeCmd = &cobra.Command{
	Use:   "set-volume <display|all> <level> [audio-out-level]",
	Short: "Set the speaker and line-out volume",
	Long: `Set the speaker volume, and optionally the line-out volume, from 0 to
100. Levels out of range are rejected, not clamped.

Passing only --audio-out leaves the speaker level unchanged.`,
	Example: `  # Speaker only
  sicpctl set-volume lobby 40

  # Speaker and line out
  sicpctl set-volume lobby 40 25

  # Line out only
  sicpctl set-volume lobby --audio-out 25`,
	Args: cobra.RangeArgs(0, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		targets, rest, err := selectTargets(args)
		if err != nil {
			return err
		}

		var speaker, audioOut *int
		if len(rest) > 2 {
			return fmt.Errorf("expected a speaker level and an optional audio-out level")
		}
		if len(rest) >= 1 {
			level, err := strconv.Atoi(rest[0])
			if err != nil {
				return fmt.Errorf("volume must be a number, got %q", rest[0])
			}
			speaker = &level
		}
		if len(rest) == 2 {
			level, err := strconv.Atoi(rest[1])
			if err != nil {
				return fmt.Errorf("audio-out volume must be a number, got %q", rest[1])
			}
			audioOut = &level
		}
		if cmd.Flags().Changed("audio-out") {
			if audioOut != nil {
				return fmt.Errorf("audio-out level given both as argument and flag")
			}
			level := audioOutLevel
			audioOut = &level
		}
		if speaker == nil && audioOut == nil {
			return fmt.Errorf("specify a speaker level, an --audio-out level, or both")
		}

		label := volumeLabel(speaker, audioOut)
		return forEach(targets, func(c *display.Client) (string, error) {
			accepted, err := c.SetVolume(speaker, audioOut)
			return confirmSet(label, accepted, err)
		})
	},
}

func init() {
	setVolumeCmd.Flags().IntVar(&audioOutLevel, "audio-out", 0, "Line-out level (leaves the speaker level unchanged)")
}

func volumeLabel(speaker, audioOut *int) string {
	switch {
	case speaker != nil && audioOut != nil:
		return fmt.Sprintf("volume speaker %d, audio out %d", *speaker, *audioOut)
	case speaker != nil:
		return fmt.Sprintf("volume speaker %d", *speaker)
	default:
		return fmt.Sprintf("volume audio out %d", *audioOut)
	}
}

var getVolumeCmd = &cobra.Command{
	Use:   "get-volume [display|all]",
	Short: "Report the speaker and line-out volume",
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
			vol, err := c.GetVolume()
			if err != nil {
				return "", err
			}
			if vol.AudioOut != nil {
				return fmt.Sprintf("volume speaker %d, audio out %d", vol.Speaker, *vol.AudioOut), nil
			}
			return fmt.Sprintf("volume speaker %d", vol.Speaker), nil
		})
	},
}
