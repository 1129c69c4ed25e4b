// Package tui provides a Bubble Tea terminal user interface that walks
// through a simulation run step by step.
package tui

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/cddis"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/config"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/ephemeris"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/model"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/pipeline"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/sdcard"
	"github.com/Gaio-Christiano/GPS-simulador-hackrf/internal/sim"
)

// Styles for the TUI
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FF6B6B")).
			MarginBottom(1)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#4ECDC4"))

	successStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#95E1A3"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	warningStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FFE66D"))

	infoStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#A8DADC"))

	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6C757D"))

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#4ECDC4")).
			Padding(1, 2)

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateToolPath State = iota
	StateLatitude
	StateLongitude
	StateAltitude
	StateDate
	StateTime
	StateRunning
	StateManualEphemeris
	StateCopyChoice
	StateDriveInput
	StateDistributing
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   pipeline.ProgressLevel
}

// Model is the Bubble Tea model for the TUI.
type Model struct {
	state     State
	textInput textinput.Model
	spinner   spinner.Model
	progress  progress.Model
	settings  *config.Settings
	logs      []LogEntry
	err       error

	// inputErr holds the validation message for the field being edited.
	inputErr string

	// Run context
	ctx    context.Context
	cancel context.CancelFunc

	// Pipeline runner and its event stream
	runner *pipeline.Runner
	events chan pipeline.ProgressEvent

	// Collected request fields
	request model.SimulationRequest
	dateStr string

	runStarted time.Time

	// Manual ephemeris fallback
	manualWarnings []string
	manualPending  string

	// Outcome
	result   *pipeline.Result
	copiedTo string
	copyErr  error

	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel() Model {
	settings := config.DefaultSettings()

	ti := textinput.New()
	ti.Placeholder = settings.ToolPath
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	events := make(chan pipeline.ProgressEvent, 64)
	runner := pipeline.NewRunner(settings, func(event pipeline.ProgressEvent) {
		select {
		case events <- event:
		default:
		}
	})

	return Model{
		state:     StateToolPath,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		runner:    runner,
		events:    events,
	}
}

// Init initializes the model. The single waitForEvent receiver armed here
// is re-armed once per ProgressMsg, so pipeline events are always delivered
// in emission order.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick, waitForEvent(m.events))
}

// Message types
type (
	// ProgressMsg carries a pipeline event into the UI.
	ProgressMsg struct {
		Event pipeline.ProgressEvent
	}

	// RunDoneMsg is sent when the pipeline run finishes.
	RunDoneMsg struct {
		Result *pipeline.Result
		Err    error
	}

	// DistributeDoneMsg is sent when the SD card copy finishes.
	DistributeDoneMsg struct {
		Dir string
		Err error
	}

	// TickMsg is for periodic progress updates.
	TickMsg struct{}
)

// Update handles messages and updates the model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.progress.Width = msg.Width - 20
		if m.progress.Width > 80 {
			m.progress.Width = 80
		}
		if m.progress.Width < 20 {
			m.progress.Width = 20
		}
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "ctrl+t":
			m.verbose = !m.verbose
			return m, nil

		case "esc":
			if m.isEditingState() {
				return m, tea.Quit
			}
			if m.state == StateRunning || m.state == StateDistributing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			return m.handleEnter()

		case "y":
			if m.state == StateCopyChoice {
				m.state = StateDriveInput
				m.prepareInput("D: or /media/sdcard", "")
				return m, nil
			}

		case "n":
			if m.state == StateCopyChoice {
				m.state = StateComplete
				return m, nil
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				return m.reset()
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		// Filter verbose messages if not in verbose mode
		if msg.Event.Level != pipeline.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{
				Message: msg.Event.Message,
				Level:   msg.Event.Level,
			})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, waitForEvent(m.events))

	case RunDoneMsg:
		if m.state != StateRunning {
			return m, nil
		}
		switch {
		case msg.Err != nil && m.ctx.Err() != nil:
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		case errors.Is(msg.Err, cddis.ErrAllCandidatesFailed):
			m.state = StateManualEphemeris
			m.manualWarnings = nil
			m.manualPending = ""
			m.prepareInput("/path/to/brdc1560.25n", "")
		case msg.Err != nil:
			m.state = StateError
			m.err = msg.Err
		default:
			m.result = msg.Result
			m.state = StateCopyChoice
		}

	case DistributeDoneMsg:
		if m.state != StateDistributing {
			return m, nil
		}
		m.copiedTo = msg.Dir
		m.copyErr = msg.Err
		m.state = StateComplete

	case TickMsg:
		if m.state == StateRunning {
			received, total := m.runner.GetDownloadProgress()
			var percent float64
			if total > 0 {
				percent = float64(received) / float64(total)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.isEditingState() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// isEditingState reports whether the current state shows the text input.
func (m Model) isEditingState() bool {
	switch m.state {
	case StateToolPath, StateLatitude, StateLongitude, StateAltitude,
		StateDate, StateTime, StateManualEphemeris, StateDriveInput:
		return true
	}
	return false
}

// prepareInput reconfigures the shared text input for the next field.
func (m *Model) prepareInput(placeholder, value string) {
	m.textInput.Placeholder = placeholder
	m.textInput.SetValue(value)
	m.textInput.Focus()
	m.inputErr = ""
}

// handleEnter validates the current field and advances the wizard.
func (m Model) handleEnter() (tea.Model, tea.Cmd) {
	value := strings.TrimSpace(m.textInput.Value())

	switch m.state {
	case StateToolPath:
		if value == "" {
			value = m.settings.ToolPath
		}
		if _, err := sim.CheckTool(value); err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.settings.ToolPath = value
		m.state = StateLatitude
		m.prepareInput("-22.9519", "")

	case StateLatitude:
		v, err := model.ParseCoordinate(value)
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.request.Latitude = v
		m.state = StateLongitude
		m.prepareInput("-43.2105", "")

	case StateLongitude:
		v, err := model.ParseCoordinate(value)
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.request.Longitude = v
		m.state = StateAltitude
		m.prepareInput("710", "")

	case StateAltitude:
		v, err := model.ParseCoordinate(value)
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.request.Altitude = v
		m.state = StateDate
		m.prepareInput(time.Now().Format("2006-01-02"), "")

	case StateDate:
		if _, err := model.ParseDateTime(value, "00:00:00"); err != nil {
			m.inputErr = "use YYYY-MM-DD, like 2025-06-05"
			return m, nil
		}
		m.dateStr = value
		m.state = StateTime
		m.prepareInput("10:00:00", "")

	case StateTime:
		start, err := model.ParseDateTime(m.dateStr, value)
		if err != nil {
			m.inputErr = "use HH:MM:SS, like 10:00:00"
			return m, nil
		}
		m.request.StartTime = start
		m.state = StateRunning
		m.logs = nil
		m.runStarted = time.Now()
		return m, tea.Batch(m.startRun(), m.tickProgress(), m.spinner.Tick)

	case StateManualEphemeris:
		if value == "" {
			m.inputErr = "enter the path of a downloaded ephemeris file"
			return m, nil
		}
		warnings, err := ephemeris.ValidateManualFile(value, m.settings.MinEphemerisBytes)
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		if len(warnings) > 0 && m.manualPending != value {
			m.manualWarnings = nil
			for _, w := range warnings {
				m.manualWarnings = append(m.manualWarnings, w.Message)
			}
			m.manualPending = value
			m.inputErr = ""
			return m, nil
		}
		m.state = StateRunning
		m.logs = nil
		m.runStarted = time.Now()
		return m, tea.Batch(m.startManualRun(value), m.tickProgress(), m.spinner.Tick)

	case StateDriveInput:
		if value == "" {
			m.inputErr = "enter a drive letter like D: or a mount path"
			return m, nil
		}
		root, err := sdcard.ResolveRoot(value)
		if err != nil {
			m.inputErr = err.Error()
			return m, nil
		}
		m.state = StateDistributing
		return m, tea.Batch(m.startDistribute(root), m.spinner.Tick)
	}

	return m, nil
}

// reset returns the model to the first step for another run.
func (m Model) reset() (tea.Model, tea.Cmd) {
	m.cancel()
	m.state = StateToolPath
	m.logs = nil
	m.err = nil
	m.inputErr = ""
	m.request = model.SimulationRequest{}
	m.dateStr = ""
	m.runStarted = time.Time{}
	m.manualWarnings = nil
	m.manualPending = ""
	m.result = nil
	m.copiedTo = ""
	m.copyErr = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.runner = pipeline.NewRunner(m.settings, func(event pipeline.ProgressEvent) {
		select {
		case m.events <- event:
		default:
		}
	})
	m.prepareInput(m.settings.ToolPath, "")
	return m, textinput.Blink
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent receives the next pipeline event.
func waitForEvent(events chan pipeline.ProgressEvent) tea.Cmd {
	return func() tea.Msg {
		return ProgressMsg{Event: <-events}
	}
}

// startRun launches the full pipeline in the background.
func (m *Model) startRun() tea.Cmd {
	ctx, runner, req := m.ctx, m.runner, m.request
	return func() tea.Msg {
		result, err := runner.Run(ctx, req)
		return RunDoneMsg{Result: result, Err: err}
	}
}

// startManualRun launches the pipeline with a user-supplied ephemeris file.
func (m *Model) startManualRun(ephemerisPath string) tea.Cmd {
	ctx, runner, req := m.ctx, m.runner, m.request
	return func() tea.Msg {
		result, err := runner.RunWithEphemeris(ctx, req, ephemerisPath)
		return RunDoneMsg{Result: result, Err: err}
	}
}

// startDistribute copies the artifacts onto the card in the background.
func (m *Model) startDistribute(root string) tea.Cmd {
	ctx, runner := m.ctx, m.runner
	pair := m.result.Pair
	return func() tea.Msg {
		dir, err := runner.Distribute(ctx, pair, root)
		return DistributeDoneMsg{Dir: dir, Err: err}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("🛰  GPS Simulator Prep"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Prepare gps-sdr-sim captures for the PortaPack"))
	b.WriteString("\n\n")

	switch m.state {
	case StateToolPath:
		b.WriteString(m.viewPrompt("Path to the gps-sdr-sim executable:",
			fmt.Sprintf("Leave empty to use: %s", m.settings.ToolPath)))
	case StateLatitude:
		b.WriteString(m.viewPrompt("Latitude to simulate:", "Example: -22.9519 for Cristo Redentor"))
	case StateLongitude:
		b.WriteString(m.viewPrompt("Longitude to simulate:", "Example: -43.2105 for Cristo Redentor"))
	case StateAltitude:
		b.WriteString(m.viewPrompt("Altitude in meters:", "Example: 710 for Cristo Redentor"))
	case StateDate:
		b.WriteString(m.viewPrompt("Simulation date (YYYY-MM-DD):", "The broadcast ephemeris for this date will be downloaded"))
	case StateTime:
		b.WriteString(m.viewPrompt("Simulation start time (HH:MM:SS):", fmt.Sprintf("Date: %s", m.dateStr)))
	case StateRunning:
		b.WriteString(m.viewRunning())
	case StateManualEphemeris:
		b.WriteString(m.viewManualEphemeris())
	case StateCopyChoice:
		b.WriteString(m.viewCopyChoice())
	case StateDriveInput:
		b.WriteString(m.viewPrompt("SD card location:", "A drive letter like D: or a mount path like /media/sdcard"))
	case StateDistributing:
		b.WriteString(m.spinner.View() + " " + subtitleStyle.Render("Copying files to the SD card..."))
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func (m Model) viewPrompt(label, hint string) string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render(label))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	if hint != "" {
		b.WriteString(dimStyle.Render(hint))
		b.WriteString("\n")
	}
	if m.inputErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.inputErr))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewRunning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Preparing the simulation..."))
	if !m.runStarted.IsZero() {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  %s elapsed", time.Since(m.runStarted).Round(time.Second))))
	}
	b.WriteString("\n\n")

	received, total := m.runner.GetDownloadProgress()
	if total > 0 {
		b.WriteString(m.progress.View())
		b.WriteString("\n")
		b.WriteString(infoStyle.Render(fmt.Sprintf("Downloaded: %.1f / %.1f KB", float64(received)/1024, float64(total)/1024)))
		b.WriteString("\n\n")
	}

	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewManualEphemeris() string {
	var b strings.Builder

	b.WriteString(warningStyle.Render("! Automatic download failed."))
	b.WriteString("\n\n")
	b.WriteString(subtitleStyle.Render("Path to a manually downloaded ephemeris file:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Download from cddis.nasa.gov (needs a free account) under"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("gnss/data/daily/<year>/<day>/brdc/, decompress .gz or .Z to .n first."))
	b.WriteString("\n")

	if m.inputErr != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("✗ " + m.inputErr))
		b.WriteString("\n")
	}
	if len(m.manualWarnings) > 0 {
		b.WriteString("\n")
		for _, w := range m.manualWarnings {
			b.WriteString(warningStyle.Render("! " + w))
			b.WriteString("\n")
		}
		b.WriteString(dimStyle.Render("Press enter again to use this file anyway."))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) viewCopyChoice() string {
	var b strings.Builder

	if m.result != nil {
		captureName, configName := m.result.Pair.FileNames()
		b.WriteString(successStyle.Render("✓ Files generated:"))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render("  " + captureName))
		b.WriteString("\n")
		b.WriteString(valueStyle.Render("  " + configName))
		b.WriteString("\n\n")
	}
	b.WriteString(subtitleStyle.Render("Copy them to the PortaPack SD card now? (y/n)"))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	var captureName, configName string
	if m.result != nil {
		captureName, configName = m.result.Pair.FileNames()
	}

	location := fmt.Sprintf("Location: %s", m.request.LocationArg())
	start := fmt.Sprintf("Start:    %s", m.request.StartTime.Format("2006-01-02 15:04:05"))
	files := fmt.Sprintf("Files:    %s\n          %s", captureName, configName)
	where := fmt.Sprintf("Saved in: %s", m.settings.WorkDir)
	if m.copiedTo != "" {
		where = fmt.Sprintf("Copied to: %s", m.copiedTo)
	}

	b.WriteString(boxStyle.Render(fmt.Sprintf("✨ Ready to transmit!\n\n%s\n%s\n%s\n%s", location, start, files, where)))
	b.WriteString("\n")

	if m.copyErr != nil {
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("! SD card copy failed: %v", m.copyErr)))
		b.WriteString("\n")
		b.WriteString(warningStyle.Render(fmt.Sprintf("! The files remain in %s for manual copying.", m.settings.WorkDir)))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render("On the PortaPack: Transmit > GPS Sim > Load file, pick the .c8"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("from the gps folder, start with TX Gain at 0 dB."))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
		b.WriteString("\n")
	}
	if len(m.logs) > 0 {
		b.WriteString("\n")
		b.WriteString(m.renderLogs())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case pipeline.LevelError:
			style = errorStyle
			prefix = "✗"
		case pipeline.LevelWarning:
			style = warningStyle
			prefix = "!"
		case pipeline.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case pipeline.LevelInfo:
			style = infoStyle
			prefix = "›"
		default:
			style = dimStyle
		}
		b.WriteString(style.Render(prefix + " " + log.Message))
		b.WriteString("\n")
	}

	return b.String()
}

func (m Model) getHelpText() string {
	switch m.state {
	case StateRunning, StateDistributing:
		return "esc: cancel • ctrl+t: verbose"
	case StateCopyChoice:
		return "y: copy to SD card • n: skip"
	case StateComplete, StateError:
		return "r: new run • q: quit"
	}
	return "enter: confirm • esc: quit • ctrl+t: verbose"
}

// Run starts the TUI application.
func Run() error {
	p := tea.NewProgram(NewModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
