package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/ui"
)

var statusJSON bool

var statusCmd = &cobra.Command{
	Use:   "status [display|all]",
	Short: "Poll a full status snapshot",
	Long: `Poll every readable property and print a status report.

A read the display refuses shows as n/a without failing the rest; a
network failure stops the poll and reports whatever was gathered first.
Output is a styled block on a terminal and flat label/value lines when
piped; --json emits the raw snapshot either way.`,
	Example: `  sicpctl status lobby
  sicpctl status all
  sicpctl status lobby --json
  sicpctl status --host 192.168.1.50`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStatus,
}

func init() {
	statusCmd.Flags().BoolVar(&statusJSON, "json", false, "Emit snapshots as JSON")
	rootCmd.AddCommand(statusCmd)
}

// statusReport pairs a snapshot with the display it came from for JSON
// output. A fetch error and a partial snapshot can coexist.
type statusReport struct {
	Name     string            `json:"name"`
	Target   string            `json:"target"`
	Snapshot *display.Snapshot `json:"snapshot"`
	Error    string            `json:"error,omitempty"`
}

func runStatus(cmd *cobra.Command, args []string) error {
	targets, rest, err := selectTargets(args)
	if err != nil {
		return err
	}
	if err := noValueArgs(rest); err != nil {
		return err
	}

	reports := make([]statusReport, len(targets))
	fetchErrs := make([]error, len(targets))
	var g errgroup.Group
	for i, t := range targets {
		i, t := i, t
		g.Go(func() error {
			snap, fetchErr := t.client.FetchStatus()
			report := statusReport{Name: t.name, Target: t.client.Target(), Snapshot: snap}
			if fetchErr != nil {
				report.Error = display.GetShortErrorMessage(fetchErr)
			}
			reports[i] = report
			fetchErrs[i] = fetchErr
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, fetchErr := range fetchErrs {
		if fetchErr != nil {
			failed++
		}
	}

	if statusJSON {
		var payload any = reports
		if len(reports) == 1 {
			payload = reports[0]
		}
		out, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode snapshot: %w", err)
		}
		fmt.Println(string(out))
	} else {
		styled := ui.IsTerminal()
		for i, report := range reports {
			block := ui.NewStatusBlock(report.Name, report.Target, report.Snapshot, fetchErrs[i])
			if styled {
				fmt.Println(block.Render())
			} else {
				if i > 0 {
					fmt.Println()
				}
				fmt.Println(block.RenderPlain())
			}
		}
	}

	if failed > 0 {
		return fmt.Errorf("status failed on %d of %d displays", failed, len(targets))
	}
	return nil
}
