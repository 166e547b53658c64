package monitor

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/tessro/aiosctl/internal/aios"
)

// Formatter formats events for output.
type Formatter struct {
	showEmoji     bool
	showTimestamp bool
	template      *template.Template
}

// FormatterOption configures a Formatter.
type FormatterOption func(*Formatter)

// WithEmoji enables emoji output.
func WithEmoji(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showEmoji = enabled
	}
}

// WithTimestamp enables timestamp output.
func WithTimestamp(enabled bool) FormatterOption {
	return func(f *Formatter) {
		f.showTimestamp = enabled
	}
}

// WithTemplate sets a custom format template.
func WithTemplate(tmpl *template.Template) FormatterOption {
	return func(f *Formatter) {
		f.template = tmpl
	}
}

// ParseTemplate parses a --format template for WithTemplate.
func ParseTemplate(text string) (*template.Template, error) {
	if text == "" {
		return nil, nil
	}
	t, err := template.New("format").Parse(text)
	if err != nil {
		return nil, fmt.Errorf("invalid format template: %w", err)
	}
	return t, nil
}

// NewFormatter creates a new formatter with the given options.
func NewFormatter(opts ...FormatterOption) *Formatter {
	f := &Formatter{showEmoji: true}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format formats an event as a string.
func (f *Formatter) Format(e Event) string {
	if f.template != nil {
		return f.formatTemplate(e)
	}
	return f.formatLine(e)
}

func (f *Formatter) formatLine(e Event) string {
	var parts []string
	if f.showTimestamp {
		parts = append(parts, e.Timestamp.Format("15:04:05"))
	}
	if f.showEmoji {
		parts = append(parts, eventEmoji(e))
	}
	parts = append(parts, eventDescription(e))
	return strings.Join(parts, " ")
}

func (f *Formatter) formatTemplate(e Event) string {
	data := templateData{
		Type:      EventTypeName(e.Type),
		Emoji:     eventEmoji(e),
		Timestamp: e.Timestamp,
		Time:      e.Timestamp.Format("15:04:05"),
	}
	if s := e.Current; s != nil {
		data.State = string(Display(*s))
		data.Power = string(s.Power)
		data.Transport = string(s.Playback.TransportState)
		data.Actions = s.Playback.AvailableActions.String()
		data.Title = s.Playback.Title
		data.Artist = s.Playback.Artist
		data.AlbumArt = s.Playback.AlbumArtURI
		data.Available = s.Available
		data.Error = s.LastError
		if !s.UpdatedAt.IsZero() {
			data.Updated = humanize.Time(s.UpdatedAt)
		}
	}

	var buf bytes.Buffer
	if err := f.template.Execute(&buf, data); err != nil {
		return f.formatLine(e)
	}
	return buf.String()
}

type templateData struct {
	Type      string
	Emoji     string
	Timestamp time.Time
	Time      string
	State     string
	Power     string
	Transport string
	Actions   string
	Title     string
	Artist    string
	AlbumArt  string
	Available bool
	Error     string
	Updated   string
}

func eventDescription(e Event) string {
	s := e.Current
	if s == nil {
		return "Unknown event"
	}
	switch e.Type {
	case EventPowerChange:
		return fmt.Sprintf("Power: %s", s.Power)
	case EventTransportChange:
		return fmt.Sprintf("State: %s", Display(*s))
	case EventTrackChange:
		if s.Playback.HasTrack() {
			return fmt.Sprintf("Now playing: %s - %s", s.Playback.Artist, s.Playback.Title)
		}
		return "Track cleared"
	case EventActionsChange:
		if s.Playback.AvailableActions == 0 {
			return "Controls: none"
		}
		return fmt.Sprintf("Controls: %s", s.Playback.AvailableActions)
	case EventAvailabilityChange:
		if s.Available {
			return "Device available"
		}
		if s.LastError != "" {
			return fmt.Sprintf("Device unavailable: %s", s.LastError)
		}
		return "Device unavailable"
	default:
		return "Unknown event"
	}
}

func eventEmoji(e Event) string {
	switch e.Type {
	case EventPowerChange:
		if e.Current != nil && e.Current.Power == aios.PowerOff {
			return "💤"
		}
		return "⚡"
	case EventTransportChange:
		if e.Current == nil {
			return "❓"
		}
		switch Display(*e.Current) {
		case StatePlaying:
			return "▶️"
		case StatePaused:
			return "⏸️"
		case StateIdle:
			return "⏹️"
		}
		return "🔄"
	case EventTrackChange:
		return "🎵"
	case EventActionsChange:
		return "🎛️"
	case EventAvailabilityChange:
		if e.Current != nil && e.Current.Available {
			return "✅"
		}
		return "⚠️"
	default:
		return "❓"
	}
}

// EventTypeName returns the stable name of an event type.
func EventTypeName(t EventType) string {
	switch t {
	case EventPowerChange:
		return "power_change"
	case EventTransportChange:
		return "transport_change"
	case EventTrackChange:
		return "track_change"
	case EventActionsChange:
		return "actions_change"
	case EventAvailabilityChange:
		return "availability_change"
	default:
		return "unknown"
	}
}
