package tui

import (
	"context"
	stderrors "errors"
	"strings"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/tessro/aiosctl/internal/aios"
	"github.com/tessro/aiosctl/internal/errors"
	"github.com/tessro/aiosctl/internal/monitor"
)

type fakeDevice struct {
	mu       sync.Mutex
	power    aios.PowerState
	playback aios.PlaybackState
	calls    []string
	err      error
}

func (f *fakeDevice) record(name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, name)
	return f.err
}

func (f *fakeDevice) GetPowerState(context.Context) (aios.PowerState, error) {
	return f.power, nil
}

func (f *fakeDevice) GetCurrentState(context.Context) (aios.PlaybackState, error) {
	return f.playback, nil
}

func (f *fakeDevice) Host() string { return "192.0.2.10" }

func (f *fakeDevice) Setup(context.Context) error { return nil }

func (f *fakeDevice) Identity() (aios.DeviceIdentity, bool) {
	return aios.DeviceIdentity{FriendlyName: "Living Room", ModelName: "AVR-X2700H", Manufacturer: "Denon"}, true
}

func (f *fakeDevice) SetPowerState(_ context.Context, s aios.PowerState) error {
	return f.record("power:" + string(s))
}

func (f *fakeDevice) ChangeVolume(_ context.Context, d aios.Direction) error {
	return f.record("volume:" + string(d))
}

func (f *fakeDevice) ToggleMute(context.Context) error { return f.record("mute") }
func (f *fakeDevice) Play(context.Context) error       { return f.record("play") }
func (f *fakeDevice) Pause(context.Context) error      { return f.record("pause") }
func (f *fakeDevice) Next(context.Context) error       { return f.record("next") }
func (f *fakeDevice) Previous(context.Context) error   { return f.record("previous") }

func newTestModel(dev *fakeDevice, vc monitor.VolumeControl) Model {
	app := NewApp(context.Background(), Options{Device: dev, VolumeControl: vc})
	app.copy = func(string) error { return nil }
	return NewModel(app)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends a key and runs the resulting command back through Update.
func press(t *testing.T, m Model, k string) Model {
	t.Helper()
	next, cmd := m.Update(keyPress(k))
	m = next.(Model)
	if cmd == nil {
		return m
	}
	next, _ = m.Update(cmd())
	return next.(Model)
}

func TestRefreshUpdatesSnapshot(t *testing.T) {
	dev := &fakeDevice{power: aios.PowerOn, playback: aios.PlaybackState{
		TransportState: aios.TransportPlaying,
		Title:          "Song A",
		Artist:         "Artist",
	}}
	m := newTestModel(dev, monitor.VolumeExternal)

	next, _ := m.Update(m.refresh()())
	m = next.(Model)

	if !m.snap.Available || m.snap.Playback.Title != "Song A" {
		t.Errorf("snap = %+v", m.snap)
	}
}

func TestPlayPauseFollowsState(t *testing.T) {
	tests := []struct {
		name      string
		transport aios.TransportState
		want      string
	}{
		{"playing pauses", aios.TransportPlaying, "pause"},
		{"paused plays", aios.TransportPaused, "play"},
		{"stopped plays", aios.TransportStopped, "play"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dev := &fakeDevice{power: aios.PowerOn, playback: aios.PlaybackState{TransportState: tt.transport}}
			m := newTestModel(dev, monitor.VolumeExternal)
			m.snap = monitor.Snapshot{Power: aios.PowerOn, Playback: dev.playback}

			next, cmd := m.Update(keyPress(" "))
			m = next.(Model)
			if cmd == nil {
				t.Fatal("expected a command")
			}
			cmd()

			if len(dev.calls) != 1 || dev.calls[0] != tt.want {
				t.Errorf("calls = %v, want [%s]", dev.calls, tt.want)
			}
		})
	}
}

func TestVolumeRefusedWhenInternal(t *testing.T) {
	dev := &fakeDevice{power: aios.PowerOn}
	m := newTestModel(dev, monitor.VolumeInternal)

	for _, k := range []string{"+", "-", "m"} {
		next, cmd := m.Update(keyPress(k))
		m = next.(Model)
		if cmd != nil {
			t.Errorf("%q: expected no command", k)
		}
		if !stderrors.Is(m.lastError, errors.ErrVolumeControlInternal) {
			t.Errorf("%q: lastError = %v", k, m.lastError)
		}
	}
	if len(dev.calls) != 0 {
		t.Errorf("device was called: %v", dev.calls)
	}
}

func TestVolumeAndMuteWhenExternal(t *testing.T) {
	dev := &fakeDevice{power: aios.PowerOn}
	m := newTestModel(dev, monitor.VolumeExternal)

	m = press(t, m, "+")
	m = press(t, m, "-")
	m = press(t, m, "m")

	want := []string{"volume:UP", "volume:DOWN", "mute"}
	if strings.Join(dev.calls, ",") != strings.Join(want, ",") {
		t.Errorf("calls = %v, want %v", dev.calls, want)
	}
	if !m.app.cache.Snapshot().Muted {
		t.Error("mute toggle should set the optimistic mute flag")
	}
}

func TestPowerToggle(t *testing.T) {
	dev := &fakeDevice{power: aios.PowerOn}
	m := newTestModel(dev, monitor.VolumeExternal)
	m.snap.Power = aios.PowerOn

	_ = press(t, m, "o")
	if len(dev.calls) != 1 || dev.calls[0] != "power:OFF" {
		t.Errorf("calls = %v, want [power:OFF]", dev.calls)
	}
}

func TestActionErrorMarksUnavailable(t *testing.T) {
	boom := &aios.TransportError{Action: "Next", StatusCode: 500}
	dev := &fakeDevice{power: aios.PowerOn, err: boom}
	m := newTestModel(dev, monitor.VolumeExternal)

	m = press(t, m, "n")
	if !stderrors.Is(m.lastError, boom) {
		t.Errorf("lastError = %v, want %v", m.lastError, boom)
	}
	if m.snap.Available {
		t.Error("failed action should mark the device unavailable")
	}
}

func TestCopyAlbumArt(t *testing.T) {
	dev := &fakeDevice{}
	m := newTestModel(dev, monitor.VolumeExternal)

	var copied string
	m.app.copy = func(s string) error {
		copied = s
		return nil
	}

	m = press(t, m, "c")
	if !stderrors.Is(m.lastError, errNoAlbumArt) {
		t.Errorf("lastError = %v, want %v", m.lastError, errNoAlbumArt)
	}

	m.snap.Playback.AlbumArtURI = "http://192.0.2.10/art.jpg"
	m = press(t, m, "c")
	if copied != "http://192.0.2.10/art.jpg" {
		t.Errorf("copied = %q", copied)
	}
	if m.notice == "" {
		t.Error("expected a notice after copying")
	}
}

func TestQuit(t *testing.T) {
	m := newTestModel(&fakeDevice{}, monitor.VolumeExternal)
	next, cmd := m.Update(keyPress("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should quit")
	}
	if next.(Model).View() != "" {
		t.Error("View should be empty after quitting")
	}
}

func TestViewRendersPanels(t *testing.T) {
	dev := &fakeDevice{power: aios.PowerOn, playback: aios.PlaybackState{
		TransportState: aios.TransportPlaying,
		Title:          "Song A",
		Artist:         "Artist",
	}}
	m := newTestModel(dev, monitor.VolumeExternal)

	if got := m.View(); got != "Loading..." {
		t.Errorf("View before size = %q", got)
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 30})
	m = next.(Model)
	next, _ = m.Update(m.refresh()())
	m = next.(Model)
	next, _ = m.Update(m.fetchIdentity()())
	m = next.(Model)

	view := m.View()
	for _, want := range []string{"Now Playing", "Song A", "Living Room", "AVR-X2700H"} {
		if !strings.Contains(view, want) {
			t.Errorf("View missing %q", want)
		}
	}
}
