// Package tui provides a Bubble Tea terminal user interface for
// mediasite-downloader.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nbwiss/mediasite-downloader/internal/config"
	"github.com/nbwiss/mediasite-downloader/internal/download"
	"github.com/nbwiss/mediasite-downloader/internal/manifest"
	"github.com/nbwiss/mediasite-downloader/internal/model"
	"github.com/nbwiss/mediasite-downloader/internal/ytdlp"
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

	taskStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#F8B500"))
)

// State represents the current UI state.
type State int

const (
	StateInput State = iota
	StatePreparing
	StateDownloading
	StateComplete
	StateError
)

// LogEntry represents a log message in the UI.
type LogEntry struct {
	Message string
	Level   download.ProgressLevel
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

	// Download context
	ctx    context.Context
	cancel context.CancelFunc

	// Run state
	tasks     []model.DownloadTask
	version   string
	events    chan download.ProgressEvent
	completed int
	summary   model.RunSummary

	// Options
	verbose bool

	width  int
	height int
}

// NewModel creates a new TUI model.
func NewModel(settings *config.Settings) Model {
	ti := textinput.New()
	ti.Placeholder = "urls.txt"
	ti.Focus()
	ti.CharLimit = 500
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
	}
}

// Init initializes the model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, m.spinner.Tick)
}

// Message types
type (
	// ProgressMsg is sent for each dispatcher progress event.
	ProgressMsg struct {
		Event download.ProgressEvent
	}

	// PrepareDoneMsg is sent when the tool probe and manifest parse finish.
	PrepareDoneMsg struct {
		Tasks    []model.DownloadTask
		Warnings []manifest.Warning
		Version  string
		Err      error
	}

	// DownloadDoneMsg is sent when the dispatch run completes.
	DownloadDoneMsg struct {
		Summary model.RunSummary
		Err     error
	}
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

		case "esc":
			if m.state == StateInput {
				return m, tea.Quit
			}
			if m.state == StateDownloading || m.state == StatePreparing {
				m.cancel()
				m.state = StateError
				m.err = fmt.Errorf("cancelled by user")
			}

		case "enter":
			if m.state == StateInput {
				m.state = StatePreparing
				return m, tea.Batch(m.prepare(), m.spinner.Tick)
			}

		case "t":
			if m.state == StateInput {
				m.settings.Tracks = nextTracks(m.settings.Tracks)
			}

		case "v":
			if m.state == StateInput {
				m.verbose = !m.verbose
			}

		case "q":
			if m.state == StateComplete || m.state == StateError {
				return m, tea.Quit
			}
		}

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		cmds = append(cmds, cmd)

	case ProgressMsg:
		if msg.Event.Level == download.LevelSuccess || msg.Event.Level == download.LevelError {
			m.completed++
			if len(m.tasks) > 0 {
				cmds = append(cmds, m.progress.SetPercent(float64(m.completed)/float64(len(m.tasks))))
			}
		}
		if msg.Event.Level != download.LevelVerbose || m.verbose {
			m.logs = append(m.logs, LogEntry{Message: msg.Event.Message, Level: msg.Event.Level})
			// Keep only last 10 logs
			if len(m.logs) > 10 {
				m.logs = m.logs[len(m.logs)-10:]
			}
		}
		cmds = append(cmds, m.waitForEvent())

	case PrepareDoneMsg:
		if msg.Err != nil {
			m.state = StateError
			m.err = msg.Err
		} else {
			m.tasks = msg.Tasks
			m.version = msg.Version
			for _, w := range msg.Warnings {
				m.logs = append(m.logs, LogEntry{Message: "manifest " + w.String(), Level: download.LevelWarning})
			}
			if len(m.tasks) == 0 {
				m.state = StateComplete
				m.summary = model.RunSummary{}
			} else {
				m.state = StateDownloading
				m.events = make(chan download.ProgressEvent, len(m.tasks)*2)
				cmds = append(cmds, m.startDownload(), m.waitForEvent())
			}
		}

	case DownloadDoneMsg:
		m.summary = msg.Summary
		if msg.Err != nil && m.ctx.Err() == nil {
			m.state = StateError
			m.err = msg.Err
		} else if m.ctx.Err() != nil {
			m.state = StateError
			m.err = fmt.Errorf("cancelled by user")
		} else {
			m.state = StateComplete
		}

	case progress.FrameMsg:
		progressModel, cmd := m.progress.Update(msg)
		m.progress = progressModel.(progress.Model)
		cmds = append(cmds, cmd)
	}

	// Update text input
	if m.state == StateInput {
		var cmd tea.Cmd
		m.textInput, cmd = m.textInput.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

// View renders the UI.
func (m Model) View() string {
	var b strings.Builder

	// Header
	b.WriteString(titleStyle.Render("📼 Mediasite Downloader"))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render("Batch-download lecture streams via yt-dlp"))
	b.WriteString("\n\n")

	switch m.state {
	case StateInput:
		b.WriteString(m.viewInput())
	case StatePreparing:
		b.WriteString(m.viewPreparing())
	case StateDownloading:
		b.WriteString(m.viewDownloading())
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

func (m Model) viewInput() string {
	var b strings.Builder

	b.WriteString(subtitleStyle.Render("Manifest file (one \"<name> <url>\" per line):"))
	b.WriteString("\n\n")
	b.WriteString(m.textInput.View())
	b.WriteString("\n\n")

	verboseCheck := "[ ]"
	if m.verbose {
		verboseCheck = "[×]"
	}

	b.WriteString(infoStyle.Render("Options:"))
	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  Tracks: %s (t)\n", m.settings.Tracks))
	b.WriteString(fmt.Sprintf("  %s Verbose output (v)\n", verboseCheck))
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(fmt.Sprintf("Output: %s • Cookies: %s • Concurrency: %d",
		m.settings.OutputDir, m.settings.Browser, m.settings.Concurrency)))
	b.WriteString("\n")

	return b.String()
}

func (m Model) viewPreparing() string {
	var b strings.Builder

	b.WriteString(m.spinner.View())
	b.WriteString(" ")
	b.WriteString(subtitleStyle.Render("Probing yt-dlp and reading manifest..."))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewDownloading() string {
	var b strings.Builder

	b.WriteString(successStyle.Render(fmt.Sprintf("Downloading %d task(s)", len(m.tasks))))
	if m.version != "" {
		b.WriteString(dimStyle.Render(fmt.Sprintf("  yt-dlp %s", m.version)))
	}
	b.WriteString("\n\n")

	var percent float64
	if len(m.tasks) > 0 {
		percent = float64(m.completed) / float64(len(m.tasks))
	}
	b.WriteString(m.progress.ViewAs(percent))
	b.WriteString("\n")
	b.WriteString(infoStyle.Render(fmt.Sprintf("Tasks: %d/%d", m.completed, len(m.tasks))))
	b.WriteString("\n\n")
	b.WriteString(m.renderLogs())

	return b.String()
}

func (m Model) viewComplete() string {
	var b strings.Builder

	box := boxStyle.Render(fmt.Sprintf(
		"✨ Run complete\n\n"+
			"Succeeded: %d\n"+
			"Failed:    %d",
		m.summary.Succeeded(),
		m.summary.Failed(),
	))
	b.WriteString(box)
	b.WriteString("\n")

	for _, o := range m.summary {
		if o.Status == model.StatusFailed {
			b.WriteString(errorStyle.Render(fmt.Sprintf("  ✗ %s: %s", o.Task.Name, o.Diagnostic)))
			b.WriteString("\n")
		}
	}

	return b.String()
}

func (m Model) viewError() string {
	var b strings.Builder

	b.WriteString(errorStyle.Render("❌ Error occurred:"))
	b.WriteString("\n\n")
	if m.err != nil {
		b.WriteString(fmt.Sprintf("  %s", m.err.Error()))
	}

	return b.String()
}

func (m Model) renderLogs() string {
	var b strings.Builder

	for _, log := range m.logs {
		var style lipgloss.Style
		prefix := "•"
		switch log.Level {
		case download.LevelError:
			style = errorStyle
			prefix = "✗"
		case download.LevelWarning:
			style = warningStyle
			prefix = "!"
		case download.LevelSuccess:
			style = successStyle
			prefix = "✓"
		case download.LevelInfo:
			style = taskStyle
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
		return "enter: start • t: tracks • v: verbose • esc: quit"
	case StatePreparing, StateDownloading:
		return "esc: cancel"
	case StateComplete, StateError:
		return "q: quit"
	}
	return ""
}

// prepare probes the fetch tool and parses the manifest.
func (m *Model) prepare() tea.Cmd {
	path := m.textInput.Value()
	if path == "" {
		path = "urls.txt"
	}
	ctx := m.ctx

	return func() tea.Msg {
		client := ytdlp.New(m.settings.YtDlpPath)
		version, err := client.Version(ctx)
		if err != nil {
			return PrepareDoneMsg{Err: err}
		}

		tasks, warnings, err := manifest.ParseFile(path)
		if err != nil {
			return PrepareDoneMsg{Err: err}
		}

		return PrepareDoneMsg{Tasks: tasks, Warnings: warnings, Version: version}
	}
}

// startDownload runs the dispatcher in the background.
func (m *Model) startDownload() tea.Cmd {
	ctx := m.ctx
	settings := m.settings
	tasks := m.tasks
	events := m.events

	return func() tea.Msg {
		client := ytdlp.New(settings.YtDlpPath)
		// Subprocess chatter would tear up the alt screen; the event log
		// carries per-task status instead.
		client.SetOutput(nil, nil)

		dispatcher := download.NewDispatcher(settings, client, func(event download.ProgressEvent) {
			events <- event
		})

		summary, err := dispatcher.Run(ctx, tasks)
		close(events)
		return DownloadDoneMsg{Summary: summary, Err: err}
	}
}

// waitForEvent relays the next dispatcher event into the message loop.
func (m Model) waitForEvent() tea.Cmd {
	events := m.events
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return nil
		}
		return ProgressMsg{Event: event}
	}
}

func nextTracks(current string) string {
	switch current {
	case "both":
		return "video"
	case "video":
		return "audio"
	default:
		return "both"
	}
}

// Run starts the TUI application.
func Run(settings *config.Settings) error {
	p := tea.NewProgram(NewModel(settings), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
