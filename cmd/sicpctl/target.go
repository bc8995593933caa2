package main

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tidworth/sicp/internal/config"
	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/protocol"
)

// target pairs a display name with a ready-to-use client
type target struct {
	name   string
	client *display.Client
}

// selectTargets turns the leading positional argument (a registry name or
// "all") into client targets and returns the remaining arguments. With
// --host or --serial the registry is bypassed and every positional argument
// stays with the command.
func selectTargets(args []string) ([]target, []string, error) {
	if hostFlag != "" || serialFlag != "" {
		t, err := directTarget()
		if err != nil {
			return nil, nil, err
		}
		return []target{t}, args, nil
	}

	if len(args) == 0 {
		return nil, nil, fmt.Errorf("specify a display name, 'all', or --host/--serial")
	}
	name, rest := args[0], args[1:]

	registry, err := config.LoadRegistry()
	if err != nil {
		return nil, nil, err
	}

	if strings.EqualFold(name, "all") {
		resolved, err := registry.ResolveAll()
		if err != nil {
			return nil, nil, err
		}
		if len(resolved) == 0 {
			return nil, nil, fmt.Errorf("no displays configured; add one with 'sicpctl displays add'")
		}
		targets := make([]target, 0, len(resolved))
		for _, res := range resolved {
			targets = append(targets, target{name: res.Name, client: clientFor(res)})
		}
		return targets, rest, nil
	}

	res, err := registry.Resolve(name)
	if err != nil {
		return nil, nil, err
	}
	return []target{{name: res.Name, client: clientFor(res)}}, rest, nil
}

// directTarget builds a client from the --host/--serial flags
func directTarget() (target, error) {
	if hostFlag != "" && serialFlag != "" {
		return target{}, fmt.Errorf("--host and --serial are mutually exclusive")
	}
	if monitorIDFlag < 0 || monitorIDFlag > 255 {
		return target{}, fmt.Errorf("monitor ID %d must be between 0 and 255", monitorIDFlag)
	}

	if serialFlag != "" {
		transport := display.NewSerialTransport(serialFlag)
		transport.ReadTimeout = readTimeout
		return target{
			name:   serialFlag,
			client: display.NewClientWithTransport(transport, byte(monitorIDFlag)),
		}, nil
	}

	transport := display.NewTCPTransport(hostFlag)
	transport.Port = portFlag
	transport.ConnectTimeout = connectTimeout
	transport.ReadTimeout = readTimeout
	return target{
		name:   hostFlag,
		client: display.NewClientWithTransport(transport, byte(monitorIDFlag)),
	}, nil
}

// clientFor builds a client from a resolved registry entry
func clientFor(res *config.Resolved) *display.Client {
	if res.SerialDevice != "" {
		transport := display.NewSerialTransport(res.SerialDevice)
		transport.ReadTimeout = res.ReceiveTimeout
		return display.NewClientWithTransport(transport, res.MonitorID)
	}
	transport := display.NewTCPTransport(res.Host)
	transport.Port = res.Port
	transport.ConnectTimeout = res.ConnectTimeout
	transport.ReadTimeout = res.ReceiveTimeout
	return display.NewClientWithTransport(transport, res.MonitorID)
}

// forEach runs op against every target, in parallel when there is more than
// one, and prints one colored result line per display. Any failure makes
// the whole command fail so scripts see a non-zero exit.
func forEach(targets []target, op func(*display.Client) (string, error)) error {
	results := make([]string, len(targets))
	failures := make([]error, len(targets))

	var g errgroup.Group
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			results[i], failures[i] = op(t.client)
			return nil
		})
	}
	g.Wait() // errors are collected per display, never returned from Go

	failed := 0
	for i, t := range targets {
		if failures[i] != nil {
			failed++
			color.Red("✗ %s: %s", t.name, display.GetShortErrorMessage(failures[i]))
		} else {
			color.Green("✓ %s: %s", t.name, results[i])
		}
	}

	if failed > 0 {
		return fmt.Errorf("command failed on %d of %d displays", failed, len(targets))
	}
	if len(targets) > 1 {
		fmt.Printf("\nCommand succeeded on %d/%d displays\n", len(targets), len(targets))
	}
	return nil
}

// confirmSet folds a set operation's (accepted, err) pair into the forEach
// result shape. A display that answers but refuses (NAV or NACK) counts as
// a failure, same as a transport error.
func confirmSet(label string, accepted bool, err error) (string, error) {
	if err != nil {
		return "", err
	}
	if !accepted {
		return "", fmt.Errorf("display refused %s", label)
	}
	return label, nil
}

// oneValueArg extracts the single expected value argument
func oneValueArg(rest []string, usage string) (string, error) {
	if len(rest) != 1 {
		return "", fmt.Errorf("expected exactly one value argument: %s", usage)
	}
	return rest[0], nil
}

// noValueArgs rejects stray arguments on get commands
func noValueArgs(rest []string) error {
	if len(rest) != 0 {
		return fmt.Errorf("unexpected argument %q", rest[0])
	}
	return nil
}

// parseOnOff maps on/off spellings to a bool
func parseOnOff(value string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "on", "1", "true", "enable", "enabled":
		return true, nil
	case "off", "0", "false", "disable", "disabled":
		return false, nil
	default:
		return false, fmt.Errorf("expected on or off, got %q", value)
	}
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Factory constructors for the uniform command shapes. The irregular
// commands (volume, brightness, color temperature, status, ...) are written
// out by hand in their own files.

// newToggleCmd builds a set command taking an on/off argument
func newToggleCmd(use, short, noun string, call func(*display.Client, bool) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <display|all> <on|off>",
		Short: short,
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, rest, err := selectTargets(args)
			if err != nil {
				return err
			}
			value, err := oneValueArg(rest, "on or off")
			if err != nil {
				return err
			}
			on, err := parseOnOff(value)
			if err != nil {
				return err
			}
			label := noun + " " + onOff(on)
			return forEach(targets, func(c *display.Client) (string, error) {
				accepted, err := call(c, on)
				return confirmSet(label, accepted, err)
			})
		},
	}
}

// newBoolGetCmd builds a get command reporting on/off
func newBoolGetCmd(use, short, noun string, call func(*display.Client) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [display|all]",
		Short: short,
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
				on, err := call(c)
				if err != nil {
					return "", err
				}
				return noun + " " + onOff(on), nil
			})
		},
	}
}

// newEnumSetCmd builds a set command whose argument resolves in a value
// domain. The long help lists every accepted label.
func newEnumSetCmd(use, short string, domain *protocol.Domain, call func(*display.Client, byte) (bool, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <display|all> <value>",
		Short: short,
		Long: short + `.

Accepted values: ` + strings.Join(domain.Labels(), ", ") + `.

Labels are matched ignoring case, spaces, hyphens and underscores. Numeric
codes (decimal or 0x-prefixed hex) are accepted for values newer firmware
defines that this table does not list.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			targets, rest, err := selectTargets(args)
			if err != nil {
				return err
			}
			value, err := oneValueArg(rest, "a "+domain.Name()+" label or code")
			if err != nil {
				return err
			}
			code, err := domain.Code(value)
			if err != nil {
				return err
			}
			label := domain.Name() + " " + domain.Label(code)
			return forEach(targets, func(c *display.Client) (string, error) {
				accepted, err := call(c, code)
				return confirmSet(label, accepted, err)
			})
		},
	}
}

// newEnumGetCmd builds a get command reporting a domain label
func newEnumGetCmd(use, short string, domain *protocol.Domain, call func(*display.Client) (byte, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [display|all]",
		Short: short,
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
				code, err := call(c)
				if err != nil {
					return "", err
				}
				return domain.Name() + " " + domain.Label(code), nil
			})
		},
	}
}
