package aios

import "context"

const (
	currentStateAction = "GetCurrentState"

	soapContext  = "GetCurrentState/soap"
	eventContext = "GetCurrentState/event"
)

// AVTransport controls playback and reads the now-playing state.
type AVTransport struct {
	soap *SOAPClient
	svc  Service
}

// NewAVTransport creates an AVTransport client for the device at host.
func NewAVTransport(httpClient Doer, host string, opts ...Option) *AVTransport {
	return newAVTransport(NewSOAPClient(httpClient, host, opts...))
}

func newAVTransport(soap *SOAPClient) *AVTransport {
	return &AVTransport{soap: soap, svc: mustService(ServiceAVTransport)}
}

// Play starts playback.
func (t *AVTransport) Play(ctx context.Context) error {
	return t.call(ctx, "Play")
}

// Pause pauses playback.
func (t *AVTransport) Pause(ctx context.Context) error {
	return t.call(ctx, "Pause")
}

// Previous skips to the previous track.
func (t *AVTransport) Previous(ctx context.Context) error {
	return t.call(ctx, "Previous")
}

// Next skips to the next track.
func (t *AVTransport) Next(ctx context.Context) error {
	return t.call(ctx, "Next")
}

func (t *AVTransport) call(ctx context.Context, action string) error {
	_, err := t.soap.Call(ctx, t.svc, action)
	return err
}

// GetCurrentState returns transport state, allowed actions and now-playing
// metadata. The reply nests three documents: the SOAP envelope carries the
// event document as text, whose CurrentTrackMetaData attribute carries a
// DIDL-Lite document.
func (t *AVTransport) GetCurrentState(ctx context.Context) (PlaybackState, error) {
	resp, err := t.soap.Call(ctx, t.svc, currentStateAction)
	if err != nil {
		return PlaybackState{}, err
	}

	event, err := unwrapEnvelope(resp.Body)
	if err != nil {
		return PlaybackState{}, err
	}
	state, didl, err := parseEvent(event)
	if err != nil {
		return PlaybackState{}, err
	}
	md, err := parseTrackMetadata(didl)
	if err != nil {
		return PlaybackState{}, err
	}

	state.Title = md.Title
	state.Artist = md.Artist
	state.AlbumArtURI = md.AlbumArtURI
	return state, nil
}

// unwrapEnvelope returns the serialized event document held as text in the
// CurrentState element.
func unwrapEnvelope(body []byte) (string, error) {
	doc, err := ParseDocument(body)
	if err != nil {
		return "", malformed(soapContext, err)
	}
	el := doc.Find("", "CurrentState")
	if el == nil {
		return "", missing(soapContext, "CurrentState")
	}
	return el.Text, nil
}

// parseEvent reads transport state and actions from the event document and
// returns the serialized DIDL-Lite metadata alongside them.
func parseEvent(event string) (PlaybackState, string, error) {
	doc, err := ParseDocument([]byte(event))
	if err != nil {
		return PlaybackState{}, "", malformed(eventContext, err)
	}

	actions, err := eventVal(doc, "CurrentTransportActions")
	if err != nil {
		return PlaybackState{}, "", err
	}
	transport, err := eventVal(doc, "TransportState")
	if err != nil {
		return PlaybackState{}, "", err
	}
	didl, err := eventVal(doc, "CurrentTrackMetaData")
	if err != nil {
		return PlaybackState{}, "", err
	}

	return PlaybackState{
		TransportState:   parseTransportState(transport),
		AvailableActions: parseActions(actions),
	}, didl, nil
}

func eventVal(doc *Element, name string) (string, error) {
	el := doc.Find(avtNS, name)
	if el == nil {
		return "", missing(eventContext, name)
	}
	v, ok := el.AttrValue("val")
	if !ok {
		return "", missing(eventContext, name+"@val")
	}
	return v, nil
}
