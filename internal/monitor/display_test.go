package monitor

import (
	"testing"

	"github.com/tessro/aiosctl/internal/aios"
)

func TestDisplay(t *testing.T) {
	tests := []struct {
		name      string
		power     aios.PowerState
		transport aios.TransportState
		want      DisplayState
	}{
		{"playing", aios.PowerOn, aios.TransportPlaying, StatePlaying},
		{"paused", aios.PowerOn, aios.TransportPaused, StatePaused},
		{"stopped", aios.PowerOn, aios.TransportStopped, StateIdle},
		{"off wins", aios.PowerOff, aios.TransportPlaying, StateOff},
		{"unknown transport", aios.PowerOn, "NO_MEDIA_PRESENT", StateUnknown},
		{"never polled", "", "", StateUnknown},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := Snapshot{Power: tt.power, Playback: aios.PlaybackState{TransportState: tt.transport}}
			if got := Display(s); got != tt.want {
				t.Errorf("Display() = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestCapabilities(t *testing.T) {
	s := Snapshot{Playback: aios.PlaybackState{AvailableActions: aios.ActionPlay | aios.ActionNext}}

	ext := Capabilities(s, VolumeExternal)
	if want := "turn_on,turn_off,volume_step,volume_mute,play,next"; ext.String() != want {
		t.Errorf("external = %s, want %s", ext, want)
	}

	internal := Capabilities(s, VolumeInternal)
	if internal.Has(CapVolumeStep) || internal.Has(CapVolumeMute) {
		t.Errorf("internal should not offer volume: %s", internal)
	}
	if !internal.Has(CapTurnOn | CapTurnOff | CapPlay | CapNext) {
		t.Errorf("internal = %s", internal)
	}
	if internal.Has(CapPause) {
		t.Error("pause should follow available actions")
	}
}

func TestParseVolumeControl(t *testing.T) {
	tests := []struct {
		in      string
		want    VolumeControl
		wantErr bool
	}{
		{"external", VolumeExternal, false},
		{" Internal ", VolumeInternal, false},
		{"both", "", true},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseVolumeControl(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseVolumeControl(%q) err = %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseVolumeControl(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
