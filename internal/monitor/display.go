package monitor

import (
	"fmt"
	"strings"

	"github.com/tessro/aiosctl/internal/aios"
)

// DisplayState is the coarse state shown to users.
type DisplayState string

const (
	StateOff     DisplayState = "off"
	StatePlaying DisplayState = "playing"
	StatePaused  DisplayState = "paused"
	StateIdle    DisplayState = "idle"
	StateUnknown DisplayState = "unknown"
)

var transportDisplay = map[aios.TransportState]DisplayState{
	aios.TransportPlaying: StatePlaying,
	aios.TransportPaused:  StatePaused,
	aios.TransportStopped: StateIdle,
}

// Display maps a snapshot to its display state. Power off wins over any
// transport state.
func Display(s Snapshot) DisplayState {
	if s.Power == aios.PowerOff {
		return StateOff
	}
	if d, ok := transportDisplay[s.Playback.TransportState]; ok {
		return d
	}
	return StateUnknown
}

// VolumeControl selects which device handles volume. With VolumeExternal
// the receiver's ACT service nudges and mutes; with VolumeInternal volume
// belongs to the HEOS player and ACT volume commands are refused.
type VolumeControl string

const (
	VolumeExternal VolumeControl = "external"
	VolumeInternal VolumeControl = "internal"
)

// ParseVolumeControl validates a volume control mode.
func ParseVolumeControl(s string) (VolumeControl, error) {
	switch v := VolumeControl(strings.ToLower(strings.TrimSpace(s))); v {
	case VolumeExternal, VolumeInternal:
		return v, nil
	}
	return "", fmt.Errorf("invalid volume control %q (use external or internal)", s)
}

// Capability is a set of controls a device currently supports.
type Capability uint16

const (
	CapTurnOn Capability = 1 << iota
	CapTurnOff
	CapVolumeStep
	CapVolumeMute
	CapPlay
	CapPause
	CapStop
	CapNext
	CapPrevious
)

var playbackCaps = []struct {
	action aios.Actions
	cap    Capability
}{
	{aios.ActionPlay, CapPlay},
	{aios.ActionPause, CapPause},
	{aios.ActionStop, CapStop},
	{aios.ActionNext, CapNext},
	{aios.ActionPrevious, CapPrevious},
}

var capNames = []struct {
	cap  Capability
	name string
}{
	{CapTurnOn, "turn_on"},
	{CapTurnOff, "turn_off"},
	{CapVolumeStep, "volume_step"},
	{CapVolumeMute, "volume_mute"},
	{CapPlay, "play"},
	{CapPause, "pause"},
	{CapStop, "stop"},
	{CapNext, "next"},
	{CapPrevious, "previous"},
}

// Capabilities returns the controls available for s.
func Capabilities(s Snapshot, vc VolumeControl) Capability {
	caps := CapTurnOn | CapTurnOff
	if vc == VolumeExternal {
		caps |= CapVolumeStep | CapVolumeMute
	}
	for _, pc := range playbackCaps {
		if s.Playback.AvailableActions.Has(pc.action) {
			caps |= pc.cap
		}
	}
	return caps
}

// Has reports whether every capability in c is in the set.
func (s Capability) Has(c Capability) bool {
	return s&c == c
}

// List returns capability names in a fixed order.
func (s Capability) List() []string {
	names := []string{}
	for _, cn := range capNames {
		if s.Has(cn.cap) {
			names = append(names, cn.name)
		}
	}
	return names
}

func (s Capability) String() string {
	return strings.Join(s.List(), ",")
}
