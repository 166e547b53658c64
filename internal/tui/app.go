package tui

import (
	"context"
	stderrors "errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/tessro/aiosctl/internal/aios"
	"github.com/tessro/aiosctl/internal/errors"
	"github.com/tessro/aiosctl/internal/monitor"
	"github.com/tessro/aiosctl/internal/tui/components"
	"github.com/tessro/aiosctl/internal/tui/styles"
)

// Panel represents which panel is focused
type Panel int

const (
	PanelNowPlaying Panel = iota
	PanelDevice
)

const (
	errorDuration  = 5 * time.Second
	noticeDuration = 3 * time.Second
)

// Device is the receiver API the dashboard drives. *aios.Device implements it.
type Device interface {
	monitor.Client
	Host() string
	Setup(ctx context.Context) error
	Identity() (aios.DeviceIdentity, bool)
	SetPowerState(ctx context.Context, state aios.PowerState) error
	ChangeVolume(ctx context.Context, dir aios.Direction) error
	ToggleMute(ctx context.Context) error
	Play(ctx context.Context) error
	Pause(ctx context.Context) error
	Next(ctx context.Context) error
	Previous(ctx context.Context) error
}

// Options configures the dashboard.
type Options struct {
	Device        Device
	VolumeControl monitor.VolumeControl
	Refresh       time.Duration
	Theme         string
}

// App holds the TUI application state
type App struct {
	ctx           context.Context
	device        Device
	cache         *monitor.Cache
	volumeControl monitor.VolumeControl
	refreshRate   time.Duration

	// copy writes to the system clipboard
	copy func(string) error
}

// NewApp creates a new TUI application
func NewApp(ctx context.Context, opts Options) *App {
	refresh := opts.Refresh
	if refresh <= 0 {
		refresh = 5 * time.Second
	}
	vc := opts.VolumeControl
	if vc == "" {
		vc = monitor.VolumeExternal
	}
	return &App{
		ctx:           ctx,
		device:        opts.Device,
		cache:         monitor.NewCache(opts.Device),
		volumeControl: vc,
		refreshRate:   refresh,
		copy:          clipboard.WriteAll,
	}
}

// Model is the main TUI model
type Model struct {
	app          *App
	width        int
	height       int
	focusedPanel Panel

	// State
	snap     monitor.Snapshot
	identity *aios.DeviceIdentity

	// Components
	nowPlaying *components.NowPlaying
	deviceView *components.Device
	keys       keyMap
	help       help.Model

	// Error handling
	lastError   error
	errorExpiry time.Time // When to clear the error

	notice       string
	noticeExpiry time.Time

	// Quit flag
	quitting bool
}

// NewModel creates a new TUI model
func NewModel(app *App) Model {
	return Model{
		app:          app,
		focusedPanel: PanelNowPlaying,
		nowPlaying:   components.NewNowPlaying(),
		deviceView:   components.NewDevice(),
		keys:         defaultKeyMap(),
		help:         help.New(),
	}
}

// Messages
type tickMsg time.Time
type refreshMsg struct {
	err error
}
type identityMsg struct {
	identity aios.DeviceIdentity
	err      error
}
type actionMsg struct {
	name string
	err  error
}
type noticeMsg string
type errMsg error

// Commands
func (m Model) tick() tea.Cmd {
	return tea.Tick(m.app.refreshRate, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m Model) refresh() tea.Cmd {
	return func() tea.Msg {
		_, err := m.app.cache.Refresh(m.app.ctx)
		return refreshMsg{err: err}
	}
}

func (m Model) fetchIdentity() tea.Cmd {
	return func() tea.Msg {
		d := m.app.device
		if err := d.Setup(m.app.ctx); err != nil {
			return identityMsg{err: err}
		}
		id, _ := d.Identity()
		return identityMsg{identity: id}
	}
}

// action runs a device command through the cache so failures mark the
// receiver unavailable, then reports back for a refresh.
func (m Model) action(name string, op func(context.Context) error) tea.Cmd {
	return func() tea.Msg {
		err := m.app.cache.Do(m.app.ctx, name, op)
		if err == nil && name == "mute" {
			m.app.cache.MarkMuteToggled()
		}
		return actionMsg{name: name, err: err}
	}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.tick(),
		m.refresh(),
		m.fetchIdentity(),
	)
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.tick(), m.refresh())

	case refreshMsg:
		m.snap = m.app.cache.Snapshot()
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.clearExpired()
		}
		// Retry identity once the receiver answers
		if m.identity == nil && msg.err == nil {
			return m, m.fetchIdentity()
		}
		return m, nil

	case identityMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		id := msg.identity
		m.identity = &id
		return m, nil

	case actionMsg:
		m.snap = m.app.cache.Snapshot()
		if msg.err != nil {
			m.setError(fmt.Errorf("%s: %w", msg.name, msg.err))
			return m, nil
		}
		return m, m.refresh()

	case noticeMsg:
		m.notice = string(msg)
		m.noticeExpiry = time.Now().Add(noticeDuration)
		return m, nil

	case errMsg:
		m.setError(msg)
		return m, nil
	}

	return m, nil
}

func (m *Model) setError(err error) {
	m.lastError = err
	m.errorExpiry = time.Now().Add(errorDuration)
}

func (m *Model) clearExpired() {
	if time.Now().After(m.errorExpiry) {
		m.lastError = nil
	}
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	d := m.app.device

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Focus):
		if m.focusedPanel == PanelNowPlaying {
			m.focusedPanel = PanelDevice
		} else {
			m.focusedPanel = PanelNowPlaying
		}
		return m, nil

	case key.Matches(msg, m.keys.Refresh):
		return m, m.refresh()

	case key.Matches(msg, m.keys.PlayPause):
		if monitor.Display(m.snap) == monitor.StatePlaying {
			return m, m.action("pause", d.Pause)
		}
		return m, m.action("play", d.Play)

	case key.Matches(msg, m.keys.Next):
		return m, m.action("next", d.Next)

	case key.Matches(msg, m.keys.Prev):
		return m, m.action("previous", d.Previous)

	case key.Matches(msg, m.keys.VolUp):
		return m.volume(aios.VolumeUp)

	case key.Matches(msg, m.keys.VolDown):
		return m.volume(aios.VolumeDown)

	case key.Matches(msg, m.keys.Mute):
		if m.app.volumeControl != monitor.VolumeExternal {
			m.setError(errors.ErrVolumeControlInternal)
			return m, nil
		}
		return m, m.action("mute", d.ToggleMute)

	case key.Matches(msg, m.keys.Power):
		target := aios.PowerOn
		if m.snap.Power == aios.PowerOn {
			target = aios.PowerOff
		}
		return m, m.action("power", func(ctx context.Context) error {
			return d.SetPowerState(ctx, target)
		})

	case key.Matches(msg, m.keys.Copy):
		return m, m.copyAlbumArt()
	}

	return m, nil
}

func (m Model) volume(dir aios.Direction) (tea.Model, tea.Cmd) {
	if m.app.volumeControl != monitor.VolumeExternal {
		m.setError(errors.ErrVolumeControlInternal)
		return m, nil
	}
	d := m.app.device
	return m, m.action("volume", func(ctx context.Context) error {
		return d.ChangeVolume(ctx, dir)
	})
}

var errNoAlbumArt = stderrors.New("no album art for the current track")

func (m Model) copyAlbumArt() tea.Cmd {
	uri := m.snap.Playback.AlbumArtURI
	return func() tea.Msg {
		if uri == "" {
			return errMsg(errNoAlbumArt)
		}
		if err := m.app.copy(uri); err != nil {
			return errMsg(fmt.Errorf("copy to clipboard: %w", err))
		}
		return noticeMsg("Copied album art URL")
	}
}

// View renders the UI
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	if m.width == 0 {
		return "Loading..."
	}

	// Left: Now Playing, right: Receiver
	leftWidth := m.width * 60 / 100
	rightWidth := m.width - leftWidth - 2
	helpHeight := lipgloss.Height(m.help.View(m.keys))
	panelHeight := m.height - helpHeight - 3
	if panelHeight < 8 {
		panelHeight = 8
	}

	nowPlaying := m.nowPlaying.Render(m.snap, leftWidth-2, panelHeight, m.focusedPanel == PanelNowPlaying)
	deviceView := m.deviceView.Render(components.DeviceInfo{
		Host:          m.app.device.Host(),
		Identity:      m.identity,
		VolumeControl: m.app.volumeControl,
	}, m.snap, rightWidth-2, panelHeight, m.focusedPanel == PanelDevice)

	main := lipgloss.JoinHorizontal(lipgloss.Top, nowPlaying, deviceView)

	return lipgloss.JoinVertical(lipgloss.Left, main, m.renderStatusBar())
}

func (m Model) renderStatusBar() string {
	status := m.help.View(m.keys)

	now := time.Now()
	switch {
	case m.lastError != nil && now.Before(m.errorExpiry):
		status = styles.Failure.Render("Error: " + m.lastError.Error())
	case m.notice != "" && now.Before(m.noticeExpiry):
		status = styles.Playing.Render(m.notice)
	}

	return lipgloss.NewStyle().
		Width(m.width).
		Padding(0, 1).
		Render(status)
}

// Run starts the TUI application
func Run(ctx context.Context, opts Options) error {
	styles.UseTheme(opts.Theme)

	model := NewModel(NewApp(ctx, opts))
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx))

	_, err := p.Run()
	if stderrors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
