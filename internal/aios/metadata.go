package aios

import "strings"

const metadataContext = "GetCurrentState/metadata"

// trackMetadata is the now-playing subset of a DIDL-Lite item.
type trackMetadata struct {
	Title       string
	Artist      string
	AlbumArtURI string
}

// parseTrackMetadata reads title, artist and album art from a DIDL-Lite
// document. The device wraps each value in double quotes.
func parseTrackMetadata(didl string) (trackMetadata, error) {
	root, err := ParseDocument([]byte(didl))
	if err != nil {
		return trackMetadata{}, malformed(metadataContext, err)
	}

	var md trackMetadata
	fields := []struct {
		space, local string
		dst          *string
	}{
		{dcNS, "title", &md.Title},
		{upnpNS, "artist", &md.Artist},
		{upnpNS, "albumArtURI", &md.AlbumArtURI},
	}

	for _, f := range fields {
		el := root.Find(f.space, f.local)
		if el == nil {
			return trackMetadata{}, missing(metadataContext, f.local)
		}
		*f.dst = stripQuotes(el.Text)
	}
	return md, nil
}

// stripQuotes removes one leading and one trailing double quote, each only
// if present.
func stripQuotes(s string) string {
	s = strings.TrimPrefix(s, `"`)
	return strings.TrimSuffix(s, `"`)
}
