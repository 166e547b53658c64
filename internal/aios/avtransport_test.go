package aios

import (
	"context"
	"errors"
	"net/http"
	"testing"
)

func avtClient(t *testing.T, status int, body string) *AVTransport {
	t.Helper()
	rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
		if req.URL.Path != "/upnp/control/renderer_dvc/AVTransport" {
			t.Errorf("path = %s", req.URL.Path)
		}
		return httpResponse(status, body), nil
	})
	return NewAVTransport(&http.Client{Transport: rt}, "192.0.2.1")
}

func TestGetCurrentStatePlaying(t *testing.T) {
	didl := didlItem(`"Song A"`, `"Artist B"`, `"http://192.0.2.1/art.jpg"`)
	event := eventDoc(ptr("PLAYING"), ptr("Play,Pause,Next"), &didl)
	avt := avtClient(t, 200, currentStateReply(event))

	got, err := avt.GetCurrentState(context.Background())
	if err != nil {
		t.Fatalf("GetCurrentState: %v", err)
	}

	want := PlaybackState{
		TransportState:   TransportPlaying,
		AvailableActions: ActionPlay | ActionPause | ActionNext,
		Title:            "Song A",
		Artist:           "Artist B",
		AlbumArtURI:      "http://192.0.2.1/art.jpg",
	}
	if got != want {
		t.Errorf("GetCurrentState() = %+v, want %+v", got, want)
	}
}

func TestGetCurrentStateTransportValues(t *testing.T) {
	tests := []struct {
		wire string
		want TransportState
	}{
		{"PLAYING", TransportPlaying},
		{"PAUSED_PLAYBACK", TransportPaused},
		{"STOPPED", TransportStopped},
		{"TRANSITIONING", TransportTransitioning},
		{"NO_MEDIA_PRESENT", TransportState("NO_MEDIA_PRESENT")},
	}
	for _, tt := range tests {
		t.Run(tt.wire, func(t *testing.T) {
			didl := didlItem("t", "a", "")
			avt := avtClient(t, 200, currentStateReply(eventDoc(ptr(tt.wire), ptr(""), &didl)))

			got, err := avt.GetCurrentState(context.Background())
			if err != nil {
				t.Fatalf("GetCurrentState: %v", err)
			}
			if got.TransportState != tt.want {
				t.Errorf("TransportState = %q, want %q", got.TransportState, tt.want)
			}
			if got.AvailableActions != 0 {
				t.Errorf("AvailableActions = %v, want none", got.AvailableActions)
			}
		})
	}
}

func TestGetCurrentStateMissingFields(t *testing.T) {
	didl := didlItem("t", "a", "u")
	tests := []struct {
		name    string
		body    string
		context string
		field   string
	}{
		{
			name:    "no CurrentState",
			body:    soapReply("urn:schemas-upnp-org:service:AVTransport:1", "GetCurrentState", ""),
			context: "GetCurrentState/soap",
			field:   "CurrentState",
		},
		{
			name:    "no CurrentTrackMetaData",
			body:    currentStateReply(eventDoc(ptr("PLAYING"), ptr("Play"), nil)),
			context: "GetCurrentState/event",
			field:   "CurrentTrackMetaData",
		},
		{
			name:    "no TransportState",
			body:    currentStateReply(eventDoc(nil, ptr("Play"), &didl)),
			context: "GetCurrentState/event",
			field:   "TransportState",
		},
		{
			name:    "no CurrentTransportActions",
			body:    currentStateReply(eventDoc(ptr("PLAYING"), nil, &didl)),
			context: "GetCurrentState/event",
			field:   "CurrentTransportActions",
		},
		{
			name: "no title",
			body: currentStateReply(eventDoc(ptr("PLAYING"), ptr("Play"), ptr(
				`<DIDL-Lite xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/" xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/">`+
					`<item><upnp:artist>a</upnp:artist><upnp:albumArtURI>u</upnp:albumArtURI></item></DIDL-Lite>`))),
			context: "GetCurrentState/metadata",
			field:   "title",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avt := avtClient(t, 200, tt.body)

			_, err := avt.GetCurrentState(context.Background())
			var me *MalformedResponseError
			if !errors.As(err, &me) {
				t.Fatalf("err = %v, want *MalformedResponseError", err)
			}
			if me.Context != tt.context || me.Field != tt.field {
				t.Errorf("MalformedResponseError = {%s %s}, want {%s %s}", me.Context, me.Field, tt.context, tt.field)
			}
		})
	}
}

func TestGetCurrentStateMalformedLevels(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		context string
	}{
		{"soap", "<s:Envelope", "GetCurrentState/soap"},
		{"event", currentStateReply("<Event><InstanceID>"), "GetCurrentState/event"},
		{"metadata", currentStateReply(eventDoc(ptr("STOPPED"), ptr(""), ptr("<DIDL-Lite"))), "GetCurrentState/metadata"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			avt := avtClient(t, 200, tt.body)

			_, err := avt.GetCurrentState(context.Background())
			var me *MalformedResponseError
			if !errors.As(err, &me) {
				t.Fatalf("err = %v, want *MalformedResponseError", err)
			}
			if me.Context != tt.context || me.Err == nil {
				t.Errorf("MalformedResponseError = %+v, want parse error at %s", me, tt.context)
			}
		})
	}
}

func TestGetCurrentStateHTTPError(t *testing.T) {
	avt := avtClient(t, 500, "<not parsed")

	_, err := avt.GetCurrentState(context.Background())
	var te *TransportError
	if !errors.As(err, &te) {
		t.Fatalf("err = %v, want *TransportError", err)
	}
	if te.Action != "GetCurrentState" || te.StatusCode != 500 {
		t.Errorf("TransportError = %+v", te)
	}
}

func TestTransportActions(t *testing.T) {
	const ns = "urn:schemas-upnp-org:service:AVTransport:1"
	tests := []struct {
		action string
		run    func(*AVTransport) error
	}{
		{"Play", func(a *AVTransport) error { return a.Play(context.Background()) }},
		{"Pause", func(a *AVTransport) error { return a.Pause(context.Background()) }},
		{"Next", func(a *AVTransport) error { return a.Next(context.Background()) }},
		{"Previous", func(a *AVTransport) error { return a.Previous(context.Background()) }},
	}
	for _, tt := range tests {
		t.Run(tt.action, func(t *testing.T) {
			var got string
			rt := roundTripFunc(func(req *http.Request) (*http.Response, error) {
				got = req.Header["SOAPACTION"][0]
				return httpResponse(200, ""), nil
			})
			avt := NewAVTransport(&http.Client{Transport: rt}, "192.0.2.1")

			if err := tt.run(avt); err != nil {
				t.Fatalf("%s: %v", tt.action, err)
			}
			if want := `"` + ns + `#` + tt.action + `"`; got != want {
				t.Errorf("SOAPACTION = %s, want %s", got, want)
			}
		})
	}
}

func TestParseActions(t *testing.T) {
	tests := []struct {
		in   string
		want Actions
	}{
		{"", 0},
		{"Play", ActionPlay},
		{"Play,Pause,Next", ActionPlay | ActionPause | ActionNext},
		{"Stop, Previous", ActionStop | ActionPrevious},
		{"Play,Seek,X_DLNA_SeekTime", ActionPlay},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := parseActions(tt.in); got != tt.want {
				t.Errorf("parseActions(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestActionsString(t *testing.T) {
	a := ActionNext | ActionPlay
	if got := a.String(); got != "Play,Next" {
		t.Errorf("String() = %q, want %q", got, "Play,Next")
	}
	if !a.Has(ActionPlay) || a.Has(ActionPause) {
		t.Errorf("Has() wrong for %v", a)
	}
}

func TestStripQuotes(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{`"Song A"`, "Song A"},
		{`Song A`, "Song A"},
		{`""Song""`, `"Song"`},
		{`"open`, "open"},
		{`close"`, "close"},
		{`"`, ""},
		{``, ""},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := stripQuotes(tt.in); got != tt.want {
				t.Errorf("stripQuotes(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
