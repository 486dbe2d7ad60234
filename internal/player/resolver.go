// Package player resolves the embeddable player URL for a catalogue item.
package player

import (
	"errors"
	"net/url"
	"strings"

	"github.com/five82/cinemaflow/internal/catalog"
)

// Reasons carried by ConfigError.
var (
	ErrPlayerNotConfigured = errors.New("player domain is not configured")
	ErrNoPlayableSource    = errors.New("no playable source for this title")
)

// ConfigError reports that no player URL can be produced for an item.
type ConfigError struct {
	Reason error
}

func (e *ConfigError) Error() string {
	if e.Reason == nil {
		return "player unavailable"
	}
	return "player unavailable: " + e.Reason.Error()
}

func (e *ConfigError) Unwrap() error {
	return e.Reason
}

// Request describes what to play.
type Request struct {
	Item         catalog.Item
	TrackID      string
	Autoplay     bool
	PlayerDomain string
	Token        string
}

// Source is a resolved player URL.
type Source struct {
	URL        string
	FromDomain bool
	TrackID    string
}

// Resolve picks the player URL for req. The configured player domain is
// preferred and addressed with the item's highest-priority identifier; the
// item's own iframe is the fallback. The translation and autoplay parameters
// are applied to whichever URL wins.
func Resolve(req Request) (Source, error) {
	trackID := strings.TrimSpace(req.TrackID)

	base, fromDomain, err := baseURL(req)
	if err != nil {
		return Source{}, err
	}

	q := base.Query()
	if trackID != "" {
		q.Set("translation", trackID)
	}
	if req.Autoplay {
		q.Set("autoplay", "1")
	}
	base.RawQuery = q.Encode()

	return Source{URL: base.String(), FromDomain: fromDomain, TrackID: trackID}, nil
}

func baseURL(req Request) (*url.URL, bool, error) {
	domain, domainOK := catalog.SafeURL(req.PlayerDomain)
	if domainOK {
		if params, ok := identityParams(req.Item); ok {
			u, err := url.Parse(domain)
			if err == nil {
				q := u.Query()
				q.Set(catalog.ParamToken, req.Token)
				for key, value := range params {
					q.Set(key, value)
				}
				u.RawQuery = q.Encode()
				return u, true, nil
			}
		}
	}

	if iframe, ok := catalog.SafeURL(req.Item.IFrame.String()); ok {
		u, err := url.Parse(iframe)
		if err == nil {
			return u, false, nil
		}
	}

	if !domainOK {
		return nil, false, &ConfigError{Reason: ErrPlayerNotConfigured}
	}
	return nil, false, &ConfigError{Reason: ErrNoPlayableSource}
}

// identityParams returns exactly one identity lookup for the player endpoint.
// A name lookup carries the year along when known.
func identityParams(item catalog.Item) (map[string]string, bool) {
	param, value, ok := item.Identity()
	if !ok {
		return nil, false
	}
	params := map[string]string{param: value}
	if param == catalog.ParamName && item.Year.Present() {
		params[catalog.ParamYear] = item.Year.String()
	}
	return params, true
}

// Track is a playable translation track.
type Track = catalog.Translation

// Tracks returns the item's translation tracks that carry a valid http(s)
// iframe, in catalogue order.
func Tracks(item catalog.Item) []Track {
	tracks := make([]Track, 0, len(item.Translations))
	for _, tr := range item.Translations {
		if catalog.IsHTTPURL(tr.IFrame) {
			tracks = append(tracks, tr)
		}
	}
	return tracks
}

// DefaultTrack returns the first valid track.
func DefaultTrack(item catalog.Item) (Track, bool) {
	tracks := Tracks(item)
	if len(tracks) == 0 {
		return Track{}, false
	}
	return tracks[0], true
}

// TrackLabel renders a track as "Name (Quality)".
func TrackLabel(track Track) string {
	name := strings.TrimSpace(track.Name)
	if name == "" {
		name = "Track " + track.ID
	}
	if quality := strings.TrimSpace(track.Quality); quality != "" {
		return name + " (" + quality + ")"
	}
	return name
}
