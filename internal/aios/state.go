package aios

import (
	"encoding/json"
	"fmt"
	"strings"
)

// DeviceIdentity is read from the device description at setup.
type DeviceIdentity struct {
	SerialNumber string `json:"serial_number"`
	ModelName    string `json:"model_name"`
	Manufacturer string `json:"manufacturer"`
	DeviceType   string `json:"device_type"`
	FriendlyName string `json:"friendly_name"`
}

// PowerState is the receiver's power state.
type PowerState string

const (
	PowerOn  PowerState = "ON"
	PowerOff PowerState = "OFF"
)

// ParsePowerState accepts "on"/"off" in any case.
func ParsePowerState(s string) (PowerState, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "ON":
		return PowerOn, nil
	case "OFF":
		return PowerOff, nil
	}
	return "", fmt.Errorf("invalid power state %q (use on or off)", s)
}

// Direction is the argument of a relative volume change.
type Direction string

const (
	VolumeUp   Direction = "UP"
	VolumeDown Direction = "DOWN"
)

// ParseDirection accepts "up"/"down" in any case.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "UP":
		return VolumeUp, nil
	case "DOWN":
		return VolumeDown, nil
	}
	return "", fmt.Errorf("invalid volume direction %q (use up or down)", s)
}

// TransportState is the AVTransport TransportState value. Values other than
// the constants below are kept verbatim.
type TransportState string

const (
	TransportPlaying       TransportState = "PLAYING"
	TransportPaused        TransportState = "PAUSED"
	TransportStopped       TransportState = "STOPPED"
	TransportTransitioning TransportState = "TRANSITIONING"
)

// parseTransportState maps a wire value to a TransportState. The device
// reports pause as PAUSED_PLAYBACK.
func parseTransportState(v string) TransportState {
	switch v {
	case "PAUSED_PLAYBACK", "PAUSED":
		return TransportPaused
	}
	return TransportState(v)
}

// Actions is a set of transport actions the device currently allows.
type Actions uint8

const (
	ActionPlay Actions = 1 << iota
	ActionPause
	ActionStop
	ActionNext
	ActionPrevious
)

var actionNames = []struct {
	action Actions
	name   string
}{
	{ActionPlay, "Play"},
	{ActionPause, "Pause"},
	{ActionStop, "Stop"},
	{ActionNext, "Next"},
	{ActionPrevious, "Previous"},
}

// parseActions parses a CurrentTransportActions value such as
// "Play,Pause,Next". Unrecognized tokens are ignored.
func parseActions(v string) Actions {
	var set Actions
	for _, tok := range strings.Split(v, ",") {
		tok = strings.TrimSpace(tok)
		for _, a := range actionNames {
			if strings.EqualFold(tok, a.name) {
				set |= a.action
			}
		}
	}
	return set
}

// Has reports whether every action in a is in the set.
func (s Actions) Has(a Actions) bool {
	return s&a == a
}

// List returns the action names in canonical order.
func (s Actions) List() []string {
	names := []string{}
	for _, a := range actionNames {
		if s.Has(a.action) {
			names = append(names, a.name)
		}
	}
	return names
}

func (s Actions) String() string {
	return strings.Join(s.List(), ",")
}

func (s Actions) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.List())
}

func (s *Actions) UnmarshalJSON(data []byte) error {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return err
	}
	*s = parseActions(strings.Join(names, ","))
	return nil
}

// PlaybackState is one GetCurrentState snapshot.
type PlaybackState struct {
	TransportState   TransportState `json:"transport_state"`
	AvailableActions Actions        `json:"available_actions"`
	Title            string         `json:"title"`
	Artist           string         `json:"artist"`
	AlbumArtURI      string         `json:"album_art_uri"`
}

// HasTrack reports whether the snapshot carries now-playing metadata.
func (s *PlaybackState) HasTrack() bool {
	return s != nil && (s.Title != "" || s.Artist != "")
}
