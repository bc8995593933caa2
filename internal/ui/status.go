package ui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/tidworth/sicp/internal/display"
)

// fieldRow is one label/value line inside a status block. ok is false
// when the display did not answer that read.
type fieldRow struct {
	label string
	value string
	ok    bool
}

// section groups related rows under a heading.
type section struct {
	title string
	rows  []fieldRow
}

// StatusBlock renders one display's snapshot as a bordered block of
// grouped fields on a terminal, or as flat label/value lines for pipes.
type StatusBlock struct {
	Name     string            // Registry name or ad-hoc target
	Target   string            // host:port or serial device
	Snapshot *display.Snapshot // May be partial; nil fields render as n/a
	FetchErr error             // Set when the fetch stopped partway
	Width    int               // Terminal width for responsive rendering
}

// NewStatusBlock creates a status block sized to the current terminal.
func NewStatusBlock(name, target string, snap *display.Snapshot, fetchErr error) *StatusBlock {
	return &StatusBlock{
		Name:     name,
		Target:   target,
		Snapshot: snap,
		FetchErr: fetchErr,
		Width:    GetTerminalWidth(),
	}
}

// SetWidth overrides the detected terminal width.
func (b *StatusBlock) SetWidth(width int) *StatusBlock {
	b.Width = width
	return b
}

// Render returns the block styled for a terminal.
func (b *StatusBlock) Render() string {
	width := b.Width
	if width < MinTerminalWidth {
		width = MinTerminalWidth
	}

	title := BlockTitleStyle.Render(strings.ToUpper(b.Name))
	if b.Target != "" {
		title += "  " + BlockTargetStyle.Render(b.Target)
	}

	lines := []string{title}
	if b.FetchErr != nil {
		warning := "⚠ partial snapshot: " + display.GetShortErrorMessage(b.FetchErr)
		lines = append(lines, PartialWarningStyle.Render(warning))
	}

	dividerWidth := width - 6
	if dividerWidth < 10 {
		dividerWidth = 10
	}
	divider := lipgloss.NewStyle().
		Foreground(PrimaryColor).
		Render(strings.Repeat("─", dividerWidth))
	lines = append(lines, divider)

	for _, sec := range b.sections() {
		lines = append(lines, "", SectionTitleStyle.Render(sec.title))
		for _, row := range sec.rows {
			value := MissingValueStyle.Render("n/a")
			if row.ok {
				value = FieldValueStyle.Render(row.value)
			}
			lines = append(lines, FieldLabelStyle.Render(row.label)+" "+value)
		}
	}

	return BlockBorderStyle(width).Render(strings.Join(lines, "\n"))
}

// RenderPlain returns the block as unstyled label/value lines, one field
// per line, for piped output.
func (b *StatusBlock) RenderPlain() string {
	header := b.Name
	if b.Target != "" {
		header += " (" + b.Target + ")"
	}

	lines := []string{header}
	if b.FetchErr != nil {
		lines = append(lines, "  warning: partial snapshot: "+display.GetShortErrorMessage(b.FetchErr))
	}
	for _, sec := range b.sections() {
		for _, row := range sec.rows {
			value := "n/a"
			if row.ok {
				value = row.value
			}
			lines = append(lines, fmt.Sprintf("  %s: %s", strings.ToLower(row.label), value))
		}
	}
	return strings.Join(lines, "\n")
}

// String implements fmt.Stringer
func (b *StatusBlock) String() string {
	return b.Render()
}

func (b *StatusBlock) sections() []section {
	snap := b.Snapshot
	if snap == nil {
		snap = &display.Snapshot{}
	}

	identity := []fieldRow{stringRow("Serial number", snap.SerialNumber)}
	identity = append(identity, mapRows(snap.ModelInfo)...)
	identity = append(identity, mapRows(snap.SICPInfo)...)

	return []section{
		{title: "POWER AND VIDEO", rows: []fieldRow{
			boolRow("Power", snap.Power),
			boolRow("Backlight", snap.Backlight),
			stringRow("Input source", snap.InputSource),
			intRow("Brightness", snap.Brightness, ""),
			intRow("Color temperature", snap.ColorTemperature, " K"),
		}},
		{title: "AUDIO", rows: []fieldRow{
			intRow("Speaker volume", snap.SpeakerVolume, ""),
			intRow("Audio out volume", snap.AudioOutVolume, ""),
			boolRow("Muted", snap.Muted),
		}},
		{title: "HEALTH", rows: []fieldRow{
			temperatureRow(snap.Temperatures),
			stringRow("Smart power", snap.SmartPower),
			stringRow("Power-on logo", snap.PowerOnLogo),
			stringRow("Cold start", snap.ColdStart),
		}},
		{title: "IDENTITY", rows: identity},
	}
}

func boolRow(label string, v *bool) fieldRow {
	if v == nil {
		return fieldRow{label: label}
	}
	value := "Off"
	if *v {
		value = "On"
	}
	return fieldRow{label: label, value: value, ok: true}
}

func intRow(label string, v *int, unit string) fieldRow {
	if v == nil {
		return fieldRow{label: label}
	}
	return fieldRow{label: label, value: fmt.Sprintf("%d%s", *v, unit), ok: true}
}

func stringRow(label string, v *string) fieldRow {
	if v == nil {
		return fieldRow{label: label}
	}
	return fieldRow{label: label, value: *v, ok: true}
}

func temperatureRow(temps []int) fieldRow {
	if len(temps) == 0 {
		return fieldRow{label: "Temperatures"}
	}
	parts := make([]string, len(temps))
	for i, t := range temps {
		parts[i] = fmt.Sprintf("%d°C", t)
	}
	return fieldRow{label: "Temperatures", value: strings.Join(parts, ", "), ok: true}
}

func mapRows(m map[string]string) []fieldRow {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	rows := make([]fieldRow, len(keys))
	for i, k := range keys {
		rows[i] = fieldRow{label: k, value: m[k], ok: true}
	}
	return rows
}
