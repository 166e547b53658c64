package aios

import (
	"bytes"
	"encoding/xml"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) { return f(req) }

type doerFunc func(*http.Request) (*http.Response, error)

func (f doerFunc) Do(req *http.Request) (*http.Response, error) { return f(req) }

func httpResponse(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Status:     http.StatusText(status),
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

// stubDevice starts an httptest server and returns the host and the port
// option pointing at it.
func stubDevice(t *testing.T, h http.Handler) (string, Option) {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)

	host, portStr, err := net.SplitHostPort(strings.TrimPrefix(srv.URL, "http://"))
	if err != nil {
		t.Fatalf("split host port: %v", err)
	}
	port, err := strconv.Atoi(portStr)
	if err != nil {
		t.Fatalf("parse port: %v", err)
	}
	return host, WithPort(port)
}

func escape(s string) string {
	var buf bytes.Buffer
	_ = xml.EscapeText(&buf, []byte(s))
	return buf.String()
}

func soapReply(namespace, action, inner string) string {
	return xml.Header +
		`<s:Envelope xmlns:s="http://schemas.xmlsoap.org/soap/envelope/" s:encodingStyle="http://schemas.xmlsoap.org/soap/encoding/">` +
		`<s:Body><u:` + action + `Response xmlns:u="` + namespace + `">` +
		inner +
		`</u:` + action + `Response></s:Body></s:Envelope>`
}

func didlItem(title, artist, art string) string {
	return `<DIDL-Lite xmlns="urn:schemas-upnp-org:metadata-1-0/DIDL-Lite/"` +
		` xmlns:dc="http://purl.org/dc/elements/1.1/"` +
		` xmlns:upnp="urn:schemas-upnp-org:metadata-1-0/upnp/">` +
		`<item id="1" parentID="0" restricted="1">` +
		`<dc:title>` + escape(title) + `</dc:title>` +
		`<upnp:artist>` + escape(artist) + `</upnp:artist>` +
		`<upnp:albumArtURI>` + escape(art) + `</upnp:albumArtURI>` +
		`<upnp:class>object.item.audioItem.musicTrack</upnp:class>` +
		`</item></DIDL-Lite>`
}

// eventDoc builds the serialized event document. Each element is included
// only when its value is non-nil.
func eventDoc(transport, actions, didl *string) string {
	var b strings.Builder
	b.WriteString(`<Event xmlns="urn:schemas-upnp-org:metadata-1-0/AVT/"><InstanceID val="0">`)
	if transport != nil {
		b.WriteString(`<TransportState val="` + escape(*transport) + `"/>`)
	}
	if actions != nil {
		b.WriteString(`<CurrentTransportActions val="` + escape(*actions) + `"/>`)
	}
	if didl != nil {
		b.WriteString(`<CurrentTrackMetaData val="` + escape(*didl) + `"/>`)
	}
	b.WriteString(`</InstanceID></Event>`)
	return b.String()
}

func currentStateReply(event string) string {
	return soapReply(
		"urn:schemas-upnp-org:service:AVTransport:1",
		"GetCurrentState",
		`<CurrentState>`+escape(event)+`</CurrentState>`,
	)
}

func ptr(s string) *string { return &s }
