package tui

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tidworth/sicp/internal/display"
	"github.com/tidworth/sicp/internal/protocol"
)

// Message types for async operations
type snapshotMsg struct {
	snap *display.Snapshot
	err  error
	took time.Duration
}

type opResultMsg struct {
	op       string
	accepted bool
	err      error
}

// Controller is the slice of the display client the dashboard drives.
// *display.Client satisfies it; tests substitute fakes.
type Controller interface {
	FetchStatus() (*display.Snapshot, error)
	SetPower(on bool) (bool, error)
	SetBacklight(on bool) (bool, error)
	SetMute(on bool) (bool, error)
	SetVolume(speaker, audioOut *int) (bool, error)
	SetInputSource(source, playlist byte) (bool, error)
}

// volumeStep is how far one +/- keypress moves the speaker volume.
const volumeStep = 5

// inputRing lists the sources the input key cycles through, in order. The
// ring sticks to sources every signage generation offers; exotic inputs are
// reachable through 'sicpctl set-input-source'.
var inputRing = []string{
	"hdmi1",
	"hdmi2",
	"hdmi3",
	"hdmi4",
	"displayport1",
	"browser",
	"mediaplayer",
}

// dashboardKeyMap defines key bindings for the dashboard
type dashboardKeyMap struct {
	Power      key.Binding
	Backlight  key.Binding
	Mute       key.Binding
	VolumeUp   key.Binding
	VolumeDown key.Binding
	Input      key.Binding
	Refresh    key.Binding
	Quit       key.Binding
}

// ShortHelp returns keybindings to be shown in the mini help view
func (k dashboardKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Power, k.Mute, k.VolumeUp, k.Input, k.Refresh, k.Quit}
}

// FullHelp returns keybindings for the expanded help view
func (k dashboardKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Power, k.Backlight, k.Mute},
		{k.VolumeUp, k.VolumeDown, k.Input},
		{k.Refresh, k.Quit},
	}
}

func newDashboardKeyMap() dashboardKeyMap {
	return dashboardKeyMap{
		Power: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "power"),
		),
		Backlight: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "backlight"),
		),
		Mute: key.NewBinding(
			key.WithKeys("m"),
			key.WithHelp("m", "mute"),
		),
		VolumeUp: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+/-", "volume"),
		),
		VolumeDown: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "volume down"),
		),
		Input: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "input"),
		),
		Refresh: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "refresh"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc"),
			key.WithHelp("q", "quit"),
		),
	}
}

// DashboardModel is the live control panel for a single display
type DashboardModel struct {
	// Display identity
	DisplayName string
	Target      string
	Client      Controller

	// Last good snapshot and how long fetching it took
	Snapshot  *display.Snapshot
	FetchedIn time.Duration

	// In-flight state
	Refreshing bool
	PendingOp  string // non-empty while a set operation is on the wire

	// Outcome of the last completed operation, shown in the status line
	LastResult string
	ResultWarn bool

	// Failure overlay
	ShowingFailure bool
	FailureOp      string
	FailureErr     error

	// UI state
	Width  int
	Height int

	Spinner spinner.Model
	Help    help.Model
	Keys    dashboardKeyMap
}

// NewDashboardModel creates a dashboard for one display. target is the
// human-readable address shown in the header (host:port or serial device).
func NewDashboardModel(name, target string, client Controller) DashboardModel {
	s := spinner.New()
	s.Spinner = spinner.Dot
	s.Style = SpinnerStyle

	return DashboardModel{
		DisplayName: name,
		Target:      target,
		Client:      client,
		Refreshing:  true,
		Spinner:     s,
		Help:        help.New(),
		Keys:        newDashboardKeyMap(),
	}
}

// Init starts the spinner and the first snapshot fetch
func (m DashboardModel) Init() tea.Cmd {
	return tea.Batch(m.Spinner.Tick, refreshCmd(m.Client))
}

// Update handles messages and updates the model
func (m DashboardModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width = msg.Width
		m.Height = msg.Height
		m.Help.Width = msg.Width
		return m, nil

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.Spinner, cmd = m.Spinner.Update(msg)
		return m, cmd

	case snapshotMsg:
		return m.finishRefresh(msg)

	case opResultMsg:
		return m.finishOp(msg)

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey dispatches a keypress. While a refresh or set operation is in
// flight only quit remains live; everything else would race the pending
// exchange on the shared client.
func (m DashboardModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	if m.ShowingFailure {
		// Any key dismisses the failure overlay
		m.ShowingFailure = false
		return m, nil
	}

	if key.Matches(msg, m.Keys.Quit) {
		return m, tea.Quit
	}

	if m.Refreshing || m.PendingOp != "" {
		return m, nil
	}

	switch {
	case key.Matches(msg, m.Keys.Refresh):
		return m.startRefresh()

	case key.Matches(msg, m.Keys.Power):
		on := true
		if m.Snapshot != nil && m.Snapshot.Power != nil {
			on = !*m.Snapshot.Power
		}
		return m.startOp("power "+onOff(on), func() (bool, error) {
			return m.Client.SetPower(on)
		})

	case key.Matches(msg, m.Keys.Backlight):
		on := true
		if m.Snapshot != nil && m.Snapshot.Backlight != nil {
			on = !*m.Snapshot.Backlight
		}
		return m.startOp("backlight "+onOff(on), func() (bool, error) {
			return m.Client.SetBacklight(on)
		})

	case key.Matches(msg, m.Keys.Mute):
		on := true
		if m.Snapshot != nil && m.Snapshot.Muted != nil {
			on = !*m.Snapshot.Muted
		}
		return m.startOp("mute "+onOff(on), func() (bool, error) {
			return m.Client.SetMute(on)
		})

	case key.Matches(msg, m.Keys.VolumeUp):
		return m.nudgeVolume(volumeStep)

	case key.Matches(msg, m.Keys.VolumeDown):
		return m.nudgeVolume(-volumeStep)

	case key.Matches(msg, m.Keys.Input):
		return m.cycleInput()
	}

	return m, nil
}

// startRefresh kicks off a snapshot fetch
func (m DashboardModel) startRefresh() (tea.Model, tea.Cmd) {
	m.Refreshing = true
	return m, refreshCmd(m.Client)
}

// startOp kicks off a set operation described by op ("power on", "volume 45")
func (m DashboardModel) startOp(op string, call func() (bool, error)) (tea.Model, tea.Cmd) {
	m.PendingOp = op
	return m, opCmd(op, call)
}

// nudgeVolume moves the speaker volume by delta, clamped to 0..100. Without
// a reported volume the first press starts from the midpoint.
func (m DashboardModel) nudgeVolume(delta int) (tea.Model, tea.Cmd) {
	level := 50
	if m.Snapshot != nil && m.Snapshot.SpeakerVolume != nil {
		level = *m.Snapshot.SpeakerVolume
	}
	level += delta
	if level < 0 {
		level = 0
	}
	if level > 100 {
		level = 100
	}
	return m.startOp("volume "+strconv.Itoa(level), func() (bool, error) {
		return m.Client.SetVolume(&level, nil)
	})
}

// cycleInput switches to the next source in the ring. An input outside the
// ring (or no reading at all) restarts from the first entry.
func (m DashboardModel) cycleInput() (tea.Model, tea.Cmd) {
	next := 0
	if m.Snapshot != nil && m.Snapshot.InputSource != nil {
		for i, label := range inputRing {
			if label == *m.Snapshot.InputSource {
				next = (i + 1) % len(inputRing)
				break
			}
		}
	}
	label := inputRing[next]
	code := protocol.InputSource.MustCode(label)
	return m.startOp("input "+label, func() (bool, error) {
		return m.Client.SetInputSource(code, 0)
	})
}

// finishRefresh applies a completed snapshot fetch
func (m DashboardModel) finishRefresh(msg snapshotMsg) (tea.Model, tea.Cmd) {
	m.Refreshing = false

	if msg.err != nil {
		m.ShowingFailure = true
		m.FailureOp = "refresh"
		m.FailureErr = msg.err
		// Keep showing the last good snapshot behind the overlay; the
		// partial one only wins when there is nothing older
		if m.Snapshot == nil {
			m.Snapshot = msg.snap
		}
		return m, nil
	}

	m.Snapshot = msg.snap
	m.FetchedIn = msg.took
	m.LastResult = fmt.Sprintf("refreshed in %.1fs", msg.took.Seconds())
	m.ResultWarn = false
	return m, nil
}

// finishOp applies a completed set operation. Success chases the write with
// a refresh so the panel shows what the display actually did with it.
func (m DashboardModel) finishOp(msg opResultMsg) (tea.Model, tea.Cmd) {
	m.PendingOp = ""

	if msg.err != nil {
		m.ShowingFailure = true
		m.FailureOp = msg.op
		m.FailureErr = msg.err
		return m, nil
	}

	if !msg.accepted {
		m.LastResult = "display refused " + msg.op
		m.ResultWarn = true
		return m, nil
	}

	m.LastResult = msg.op
	m.ResultWarn = false
	return m.startRefresh()
}

// refreshCmd fetches a snapshot off the update loop
func refreshCmd(client Controller) tea.Cmd {
	return func() tea.Msg {
		start := time.Now()
		snap, err := client.FetchStatus()
		return snapshotMsg{snap: snap, err: err, took: time.Since(start)}
	}
}

// opCmd runs a set operation off the update loop
func opCmd(op string, call func() (bool, error)) tea.Cmd {
	return func() tea.Msg {
		accepted, err := call()
		return opResultMsg{op: op, accepted: accepted, err: err}
	}
}

// View renders the dashboard
func (m DashboardModel) View() string {
	if m.ShowingFailure {
		return RenderModal(m.renderFailureContent(), m.Width, m.Height)
	}

	content := m.renderPanel()
	helpText := m.Help.View(m.Keys)
	target := m.DisplayName + " • " + m.Target
	return RenderApplicationContainer(content, helpText, target, m.Width, m.Height)
}

// renderPanel renders the snapshot sections with a status line on top
func (m DashboardModel) renderPanel() string {
	parts := []string{m.renderStatusLine(), ""}

	if m.Snapshot == nil {
		waiting := MissingStyle.Render("Waiting for the first snapshot...")
		return lipgloss.JoinVertical(lipgloss.Left, append(parts, waiting)...)
	}

	parts = append(parts,
		m.renderPowerSection(),
		"",
		m.renderAudioSection(),
		"",
		m.renderHealthSection(),
		"",
		m.renderIdentitySection(),
	)

	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderStatusLine shows in-flight activity or the last operation outcome
func (m DashboardModel) renderStatusLine() string {
	switch {
	case m.Refreshing:
		return m.Spinner.View() + " Refreshing snapshot..."
	case m.PendingOp != "":
		return m.Spinner.View() + " Sending " + m.PendingOp + "..."
	case m.LastResult != "" && m.ResultWarn:
		return WarnStatusStyle.Render("⚠ " + m.LastResult)
	case m.LastResult != "":
		return OKStatusStyle.Render("✓ " + m.LastResult)
	default:
		return ""
	}
}

func (m DashboardModel) renderPowerSection() string {
	snap := m.Snapshot
	return renderSection("POWER AND VIDEO",
		renderField("Power", fmtBool(snap.Power)),
		renderField("Backlight", fmtBool(snap.Backlight)),
		renderField("Input source", fmtString(snap.InputSource)),
		renderField("Brightness", fmtInt(snap.Brightness, "")),
		renderField("Color temperature", fmtInt(snap.ColorTemperature, " K")),
	)
}

func (m DashboardModel) renderAudioSection() string {
	snap := m.Snapshot
	return renderSection("AUDIO",
		renderField("Speaker volume", fmtInt(snap.SpeakerVolume, "")),
		renderField("Audio out volume", fmtInt(snap.AudioOutVolume, "")),
		renderField("Muted", fmtBool(snap.Muted)),
	)
}

func (m DashboardModel) renderHealthSection() string {
	snap := m.Snapshot
	return renderSection("HEALTH",
		renderField("Temperatures", fmtTemperatures(snap.Temperatures)),
		renderField("Smart power", fmtString(snap.SmartPower)),
		renderField("Power-on logo", fmtString(snap.PowerOnLogo)),
		renderField("Cold start", fmtString(snap.ColdStart)),
	)
}

func (m DashboardModel) renderIdentitySection() string {
	snap := m.Snapshot
	fields := []string{
		renderField("Serial number", fmtString(snap.SerialNumber)),
		renderField("Model", fmtMapValue(snap.ModelInfo, "model-number")),
		renderField("Firmware", fmtMapValue(snap.ModelInfo, "firmware-version")),
		renderField("Platform", fmtMapValue(snap.SICPInfo, "platform-label")),
	}
	return renderSection("IDENTITY", fields...)
}

// renderFailureContent builds the failure overlay with the error category,
// message and a troubleshooting hint
func (m DashboardModel) renderFailureContent() string {
	titleStyle := lipgloss.NewStyle().Foreground(ErrorColor).Bold(true)
	title := titleStyle.Render(fmt.Sprintf("✗ %s FAILED", strings.ToUpper(m.FailureOp)))

	parts := []string{title, ""}

	category := "Unknown Error"
	message := ""
	if m.FailureErr != nil {
		var de *display.DisplayError
		if errors.As(m.FailureErr, &de) {
			category = de.Type.String()
			message = de.Message
		} else {
			message = m.FailureErr.Error()
		}
	}

	categoryLine := lipgloss.NewStyle().Foreground(ErrorColor).Bold(true).Render(category)
	parts = append(parts, categoryLine)
	if message != "" {
		parts = append(parts, ValueStyle.Render(message))
	}
	parts = append(parts, "")

	if hint := display.GetTroubleshootingHint(m.FailureErr); hint != "" {
		hintStyle := lipgloss.NewStyle().Foreground(SubtleColor)
		parts = append(parts, hintStyle.Render(hint), "")
	}

	parts = append(parts, MissingStyle.Render("Press any key to continue"))

	content := lipgloss.JoinVertical(lipgloss.Left, parts...)
	return ErrorBoxStyle.Width(60).Render(content)
}

// renderSection renders a titled block of field lines
func renderSection(title string, fields ...string) string {
	parts := append([]string{SectionTitleStyle.Render(title)}, fields...)
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

// renderField renders one label/value line
func renderField(label, value string) string {
	return lipgloss.JoinHorizontal(lipgloss.Left,
		"  ",
		LabelStyle.Render(label),
		value,
	)
}

// Value formatters. A nil pointer means the display did not answer that
// read; it renders as a dimmed "n/a" instead of vanishing from the panel.

func fmtBool(v *bool) string {
	if v == nil {
		return MissingStyle.Render("n/a")
	}
	if *v {
		return OKStatusStyle.Render("On")
	}
	return ValueStyle.Render("Off")
}

func fmtInt(v *int, unit string) string {
	if v == nil {
		return MissingStyle.Render("n/a")
	}
	return ValueStyle.Render(strconv.Itoa(*v) + unit)
}

func fmtString(v *string) string {
	if v == nil {
		return MissingStyle.Render("n/a")
	}
	return ValueStyle.Render(*v)
}

func fmtTemperatures(temps []int) string {
	if len(temps) == 0 {
		return MissingStyle.Render("n/a")
	}
	parts := make([]string, len(temps))
	for i, t := range temps {
		parts[i] = fmt.Sprintf("%d°C", t)
	}
	return ValueStyle.Render(strings.Join(parts, ", "))
}

func fmtMapValue(m map[string]string, field string) string {
	if v, ok := m[field]; ok && v != "" {
		return ValueStyle.Render(v)
	}
	return MissingStyle.Render("n/a")
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// Run starts the dashboard program for one display and blocks until the
// user quits.
func Run(name, target string, client Controller) error {
	p := tea.NewProgram(NewDashboardModel(name, target, client), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("dashboard error: %w", err)
	}
	return nil
}
