package tui

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-maze/internal/config"
	"github.com/vovakirdan/tui-maze/internal/core"
	"github.com/vovakirdan/tui-maze/internal/render"
	"github.com/vovakirdan/tui-maze/internal/runner"
)

// hudHeight is the number of lines below the maze: status plus two help lines.
const hudHeight = 3

// speedStep is how much Faster/Slower change the speed level.
const speedStep = 5

var (
	statusStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	noticeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Italic(true)
	helpStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

// Options configures a viewer Model.
type Options struct {
	Config      core.RuntimeConfig
	FitTerminal bool // Size the maze to the screen instead of Config.Rows/Cols
	Autoplay    bool // Start generating immediately

	Recorder      runner.Recorder // Optional run history
	Source        string          // Recorded with each run (default "tui")
	ScreenshotDir string          // Default ~/.maze/screenshots
	Logger        *log.Logger     // Default discards

	// Controller overrides the controller built from Config.
	Controller *runner.Controller

	// Context ends the viewer when done, for sessions that drop without quitting.
	Context context.Context
}

// Model is the Bubble Tea model for watching a maze being generated.
type Model struct {
	ctrl     *runner.Controller
	recorder runner.Recorder
	source   string
	logger   *log.Logger
	shotDir  string

	screen   *core.Screen
	config   core.RuntimeConfig
	fit      bool
	autoplay bool
	keys     KeyMap
	help     help.Model

	snap       runner.Snapshot
	saved      bool // Whether the current epoch has been recorded
	hideBanner bool
	notice     string
	done       chan struct{}
	stop       func() // Closes done once
	quitting   bool
}

// NewModel creates a viewer with its own controller.
func NewModel(opts Options) (Model, error) {
	cfg := opts.Config
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if cfg.Speed == 0 {
		cfg.Speed = core.DefaultConfig().Speed
	}
	if opts.FitTerminal {
		cfg.Rows, cfg.Cols = render.FitGrid(cfg.ScreenW, cfg.ScreenH-hudHeight)
	}

	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	ctrl := opts.Controller
	if ctrl == nil {
		var err error
		ctrl, err = runner.New(runner.Options{
			Rows:     cfg.Rows,
			Cols:     cfg.Cols,
			Seed:     cfg.Seed,
			Interval: config.IntervalForSpeed(cfg.Speed),
			Logger:   logger,
		})
		if err != nil {
			return Model{}, fmt.Errorf("cannot create maze: %w", err)
		}
	}

	source := opts.Source
	if source == "" {
		source = "tui"
	}

	shotDir := opts.ScreenshotDir
	if shotDir == "" {
		shotDir = filepath.Join(os.Getenv("HOME"), ".maze", "screenshots")
	}

	h := help.New()
	h.ShowAll = false
	h.Width = cfg.ScreenW

	done := make(chan struct{})
	stop := sync.OnceFunc(func() { close(done) })
	if opts.Context != nil {
		go func() {
			select {
			case <-opts.Context.Done():
				ctrl.Stop()
				stop()
			case <-done:
			}
		}()
	}

	return Model{
		ctrl:     ctrl,
		recorder: opts.Recorder,
		source:   source,
		logger:   logger,
		shotDir:  shotDir,
		screen:   core.NewScreen(cfg.ScreenW, core.Max(1, cfg.ScreenH-hudHeight)),
		config:   cfg,
		fit:      opts.FitTerminal,
		autoplay: opts.Autoplay,
		keys:     DefaultKeyMap(),
		help:     h,
		snap:     ctrl.Snapshot(),
		done:     done,
		stop:     stop,
	}, nil
}

// Init starts listening for controller changes.
func (m Model) Init() tea.Cmd {
	if m.autoplay {
		m.ctrl.Start()
	}
	return waitForChange(m.ctrl.Changes(), m.done)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case ChangeMsg:
		m.refresh()
		return m, waitForChange(m.ctrl.Changes(), m.done)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}
	m.notice = ""

	switch m.keys.MapKey(msg) {
	case core.ActionQuit:
		m.recordAbandoned()
		m.ctrl.Stop()
		m.quitting = true
		m.stop()
		return m, tea.Quit

	case core.ActionStep:
		m.ctrl.Step()

	case core.ActionToggle:
		if m.snap.Done() {
			m.hideBanner = !m.hideBanner
		} else {
			m.ctrl.Toggle()
		}

	case core.ActionReset:
		m.recordAbandoned()
		m.config.Seed = time.Now().UnixNano()
		m.ctrl.Reseed(m.config.Seed)

	case core.ActionFaster:
		m.setSpeed(m.config.Speed + speedStep)

	case core.ActionSlower:
		m.setSpeed(m.config.Speed - speedStep)

	case core.ActionScreenshot:
		path, err := m.saveScreenshot()
		if err != nil {
			m.logger.Warn("screenshot failed", "error", err)
			m.notice = "screenshot failed: " + err.Error()
		} else {
			m.notice = "saved " + path
		}

	case core.ActionHelp:
		m.help.ShowAll = !m.help.ShowAll
	}

	m.refresh()
	return m, nil
}

// handleResize processes window resize events.
// In fit mode a size change starts a new maze that fills the screen.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.config.ScreenW = msg.Width
	m.config.ScreenH = msg.Height
	m.screen.Resize(msg.Width, core.Max(1, msg.Height-hudHeight))
	m.help.Width = msg.Width

	if !m.fit {
		return m, nil
	}

	rows, cols := render.FitGrid(msg.Width, msg.Height-hudHeight)
	if rows == m.snap.Rows && cols == m.snap.Cols {
		return m, nil
	}

	m.recordAbandoned()
	if err := m.ctrl.Resize(rows, cols); err != nil {
		m.logger.Warn("resize failed", "rows", rows, "cols", cols, "error", err)
		return m, nil
	}
	m.config.Rows, m.config.Cols = rows, cols
	m.refresh()
	return m, nil
}

// refresh takes a new snapshot and records the run once it completes.
func (m *Model) refresh() {
	snap := m.ctrl.Snapshot()
	if snap.Epoch != m.snap.Epoch {
		m.saved = false
		m.hideBanner = false
	}
	m.snap = snap

	if snap.Done() && !m.saved {
		m.record(snap)
	}
}

// recordAbandoned records the current run if it grew but never completed.
func (m *Model) recordAbandoned() {
	snap := m.ctrl.Snapshot()
	if snap.Done() || snap.Steps == 0 {
		return
	}
	m.record(snap)
}

func (m *Model) record(snap runner.Snapshot) {
	m.saved = true
	if m.recorder == nil {
		return
	}
	id, err := m.recorder.RecordRun(snap, m.source)
	if err != nil {
		m.logger.Warn("could not record run", "error", err)
		return
	}
	m.logger.Debug("run recorded", "id", id, "completed", snap.Done(), "steps", snap.Steps)
}

// setSpeed clamps level to the valid range and applies it to the controller.
func (m *Model) setSpeed(level int) {
	m.config.Speed = core.Clamp(level, config.MinSpeed, config.MaxSpeed)
	m.ctrl.SetInterval(config.IntervalForSpeed(m.config.Speed))
}

// saveScreenshot saves the current maze as plain text and returns its path.
func (m *Model) saveScreenshot() (string, error) {
	if err := os.MkdirAll(m.shotDir, 0o755); err != nil {
		return "", fmt.Errorf("cannot create %s: %w", m.shotDir, err)
	}

	snap := m.ctrl.Snapshot()
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("maze_%dx%d_%s.txt", snap.Rows, snap.Cols, timestamp)
	path := filepath.Join(m.shotDir, filename)

	content := render.ASCII(snap) + "\n" + render.Status(snap, time.Now()) + "\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		return "", fmt.Errorf("cannot write screenshot: %w", err)
	}
	return path, nil
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	render.Draw(m.screen, m.snap, 0, 0, render.TerminalOptions())
	if m.snap.Done() && !m.hideBanner {
		render.Banner(m.screen, []string{"Maze complete", "r: new maze  space: hide"}, core.ColorBanner)
	}

	status := render.Status(m.snap, time.Now())
	status += fmt.Sprintf("  speed %d (%s)", m.config.Speed, m.ctrl.Interval())
	line := statusStyle.Render(status)
	if m.notice != "" {
		line += "  " + noticeStyle.Render(m.notice)
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		RenderScreen(m.screen),
		line,
		helpStyle.Render(m.help.View(m.keys)),
	)
}

// Snapshot returns the state last shown by the viewer.
func (m Model) Snapshot() runner.Snapshot {
	return m.snap
}

// Run starts the Bubble Tea program with the given options.
func Run(opts Options) error {
	model, err := NewModel(opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err = p.Run()
	return err
}
