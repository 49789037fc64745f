// Package tui provides a Bubble Tea terminal user interface for id3recode.
package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/handiism/id3-recode/internal/config"
	"github.com/handiism/id3-recode/internal/convert"
	"github.com/handiism/id3-recode/internal/model"
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
)

// maxLogs is the number of log lines kept on screen.
const maxLogs = 10

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StateScanning
	StateConverting
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   convert.ProgressLevel
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

	// Conversion context
	ctx    context.Context
	cancel context.CancelFunc

	manager *convert.Manager
	events  chan convert.ProgressEvent

	// Conversion progress
	totalFiles     int32
	processedFiles int32
	totalBytes     int64
	processedBytes int64
	summary        model.Summary

	// Options
	backup  bool
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model starting from settings.
func NewModel(settings *config.Settings) Model {
	if settings == nil {
		settings = config.DefaultSettings()
	}

	ti := textinput.New()
	ti.Placeholder = "~/Music/old-rips"
	ti.Focus()
	ti.CharLimit = 1000
	ti.Width = 60

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))

	prog := progress.New(progress.WithDefaultGradient())
	prog.Width = 50

	ctx, cancel := context.WithCancel(context.Background())

	return Model{
		state:     StateInput,
		textInput: ti,
		spinner:   sp,
		progress:  prog,
		settings:  settings,
		logs:      make([]LogEntry, 0),
		ctx:       ctx,
		cancel:    cancel,
		backup:    settings.Backup,
		verbose:   settings.Verbose,
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg carries one event from the manager.
	ProgressMsg struct {
		Event convert.ProgressEvent
	}

	// ScanDoneMsg is sent when the input paths have been expanded.
	ScanDoneMsg struct {
		Manager *convert.Manager
		Err     error
	}

	// ConvertDoneMsg is sent when every file has been processed.
	ConvertDoneMsg struct {
		Summary   model.Summary
		Processed int64
		Total     int64
		Files     int32
		TotalF    int32
		Err       error
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
		m.progress.Width = min(max(msg.Width-20, 20), 80)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			m.cancel()
			return m, tea.Quit

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateConverting || m.state == StateScanning {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput && len(splitPaths(m.textInput.Value())) > 0 {
				m.state = StateScanning
				m.events = make(chan convert.ProgressEvent, 64)
				return m, tea.Batch(m.scan(), m.waitForEvent(), m.spinner.Tick)
			}

		case "tab":
			// Switches between the path field and the option toggles.
			if m.state == StateInput {
				if m.textInput.Focused() {
					m.textInput.Blur()
				} else {
					cmds = append(cmds, m.textInput.Focus())
				}
				return m, tea.Batch(cmds...)
			}

		case "b":
			if m.state == StateInput && !m.textInput.Focused() {
				m.backup = !m.backup
			}

		case "v":
			if m.state == StateInput && !m.textInput.Focused() {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}

		case "r":
			if m.state == StateComplete || m.state == StateError {
				m = m.reset()
				return m, textinput.Blink
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		m = m.appendLog(msg.Event)
		cmds = append(cmds, m.waitForEvent())

	case ScanDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.manager = msg.Manager
			m.state = StateConverting
			cmds = append(cmds, m.startConversion(), m.tickProgress())
		}

	case ConvertDoneMsg:
		m.processedBytes = msg.Processed
		m.totalBytes = msg.Total
		m.processedFiles = msg.Files
		m.totalFiles = msg.TotalF
		m.summary = msg.Summary
		if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.state = StateComplete
		}

	case TickMsg:
		if m.manager != nil && m.state == StateConverting {
			processed, total, files, totalFiles := m.manager.GetProgress()
			m.processedBytes = processed
			m.totalBytes = total
			m.processedFiles = files
			m.totalFiles = totalFiles

			var percent float64
			if totalFiles > 0 {
				percent = float64(files) / float64(totalFiles)
			}
			cmds = append(cmds, m.progress.SetPercent(percent), m.tickProgress())
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	if m.state == StateInput && m.textInput.Focused() {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m Model) appendLog(event convert.ProgressEvent) Model {
	if event.Level == convert.LevelVerbose && !m.verbose {
		return m
	}
	m.logs = append(m.logs, LogEntry{Message: event.Message, Level: event.Level})
	if len(m.logs) > maxLogs {
		m.logs = m.logs[len(m.logs)-maxLogs:]
	}
	return m
}

func (m Model) reset() Model {
	m.state = StateInput
	m.logs = nil
	m.err = nil
	m.processedFiles = 0
	m.totalFiles = 0
	m.processedBytes = 0
	m.totalBytes = 0
	m.summary = model.Summary{}
	m.manager = nil
	m.events = nil
	m.ctx, m.cancel = context.WithCancel(context.Background())
	m.textInput.SetValue("")
	m.textInput.Focus()
	return m
}

// tickProgress returns a command to tick progress updates.
func (m Model) tickProgress() tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(_ time.Time) tea.Msg {
		return TickMsg{}
	})
}

// waitForEvent delivers the next manager event as a ProgressMsg.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	b.WriteString(titleStyle.Render("♪ id3recode"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Repair Shift_JIS tags stored as Latin-1"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StateScanning:
		b.WriteString(m.viewScanning())
	case StateConverting:
		b.WriteString(m.viewConverting())
	case StateComplete:
		b.WriteString(m.viewComplete())
	case StateError:
		b.WriteString(m.viewError())
	}

	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.getHelpText()))

	return b.String()
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Files or folders to convert:"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s Keep a backup copy (b)\n", checkbox(m.backup))
	fmt.Fprintf(&b, "  %s Show field changes (v)\n", checkbox(m.verbose))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Source codec: %s | Extensions: %s",
		m.settings.SourceCodec, strings.Join(m.settings.Extensions, " "))))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewScanning() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Looking for files..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewConverting() string {
	var b strings.Builder

	var percent float64
	if m.totalFiles > 0 {
		percent = float64(m.processedFiles) / float64(m.totalFiles)
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")

	b.WriteString(infoStyle.Render(fmt.Sprintf(
		"Files: %d/%d | Processed: %s of %s",
		m.processedFiles,
		m.totalFiles,
		humanize.Bytes(uint64(m.processedBytes)),
		humanize.Bytes(uint64(m.totalBytes)),
	)))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	style := successStyle
	heading := "Conversion complete"
	if !m.summary.OK() {
		style = warningStyle
		heading = "Conversion finished with failures"
	}

	box := boxStyle.Render(fmt.Sprintf(
		"%s\n\n"+
			"Converted: %d\n"+
			"Skipped:   %d\n"+
			"Failed:    %d\n"+
			"Fields:    %d changed\n"+
			"Size:      %s",
		style.Render(heading),
		m.summary.Converted,
		m.summary.Skipped,
		m.summary.Failed,
		m.summary.Changed,
		humanize.Bytes(uint64(m.summary.Bytes)),
	))
	b.WriteString(box)
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("✗ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		fmt.Fprintf(&b, "  %s", m.err.Error())
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case convert.LevelError:
			style = errorStyle
			prefix = "✗"
		case convert.LevelWarning:
			style = warningStyle
			prefix = "!"
		case convert.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case convert.LevelInfo:
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
	case StateInput:
		if m.textInput.Focused() {
			return "enter: start • tab: options • esc: quit"
		}
		return "enter: start • tab: edit paths • b: backup • v: verbose • esc: quit"
	case StateScanning, StateConverting:
		return "esc: cancel"
	case StateComplete, StateError:
		return "r: convert more • q: quit"
	}
	return ""
}

// splitPaths splits the input on whitespace and commas.
func splitPaths(s string) []string {
	return strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

// scan expands the entered paths and creates the manager.
func (m Model) scan() tea.Cmd {
	ctx := m.ctx
	events := m.events
	paths := splitPaths(m.textInput.Value())

	settings := *m.settings
	settings.Backup = m.backup
	settings.Verbose = m.verbose

	return func() tea.Msg {
		manager := convert.NewManager(&settings, func(event convert.ProgressEvent) {
			select {
			case events <- event:
			case <-ctx.Done():
			}
		})

		if err := manager.Initialize(ctx, paths); err != nil {
			close(events)
			return ScanDoneMsg{Err: err}
		}
		if len(manager.Files()) == 0 {
			close(events)
			return ScanDoneMsg{Err: fmt.Errorf("no matching files in %s", strings.Join(paths, ", "))}
		}
		return ScanDoneMsg{Manager: manager}
	}
}

// startConversion runs the manager in the background. The event channel is
// closed once the manager can no longer report.
func (m Model) startConversion() tea.Cmd {
	ctx := m.ctx
	manager := m.manager
	events := m.events

	return func() tea.Msg {
		defer func() {
			if events != nil {
				close(events)
			}
		}()
		if manager == nil {
			return ConvertDoneMsg{Err: fmt.Errorf("no manager")}
		}

		err := manager.Start(ctx)
		processed, total, files, totalFiles := manager.GetProgress()

		return ConvertDoneMsg{
			Summary:   manager.Summary(),
			Processed: processed,
			Total:     total,
			Files:     files,
			TotalF:    totalFiles,
			Err:       err,
		}
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
