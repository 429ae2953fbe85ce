// Package platformurl parses playlist share URLs for the supported
// platforms into a platform tag and playlist id.
package platformurl

import (
	"regexp"
	"strings"

	"github.com/ewatari/crossqueue/internal/domain/track"
)

// Parsed is the result of parsing a playlist URL.
type Parsed struct {
	Platform track.Platform
	ID       string
	Domain   string
}

var reURL = regexp.MustCompile(`^(?:https?://)?(\w+(?:\.\w+)+)/(.+)$`)

var (
	reYouTubeDomain = regexp.MustCompile(`(?i)^(((www\.|m\.)?youtube\.com)|(youtu\.be))$`)
	reYouTubeID     = regexp.MustCompile(`(?i)^/?playlist/?\?(?:[\w\-%]+(?:=[^/&]*)?&)*list=([^/&]+)`)

	reSoundCloudDomain = regexp.MustCompile(`(?i)^(www\.|on\.)?soundcloud\.com$`)
	reSoundCloudPath   = regexp.MustCompile(`(?i)^/?([^?\n]+)/?(?:\?.*)?`)

	reSpotifyDomain = regexp.MustCompile(`(?i)^(open\.|play\.|www\.)?spotify\.com$`)
	// Playlist IDs are base-62.
	reSpotifyID = regexp.MustCompile(`(?i)^/?(?:playlist|album)/([0-9a-zA-Z]+)/?(?:\?.*)?$`)
)

// Parse extracts the platform and playlist id from a share URL.
// Returns false for URLs that do not belong to a supported platform or
// do not point at a playlist.
//
// SoundCloud ids are resource paths (e.g. "user/sets/album"), returned
// without leading or trailing slashes and not normalized.
func Parse(rawURL string) (Parsed, bool) {
	m := reURL.FindStringSubmatch(rawURL)
	if m == nil {
		return Parsed{}, false
	}
	domain, path := m[1], m[2]

	switch {
	case reYouTubeDomain.MatchString(domain):
		id, ok := matchID(reYouTubeID, path)
		if !ok {
			return Parsed{}, false
		}
		return Parsed{Platform: track.PlatformYouTube, ID: id, Domain: domain}, true

	case reSoundCloudDomain.MatchString(domain):
		id, ok := matchID(reSoundCloudPath, path)
		if !ok {
			return Parsed{}, false
		}
		return Parsed{Platform: track.PlatformSoundCloud, ID: id, Domain: domain}, true

	case reSpotifyDomain.MatchString(domain):
		id, ok := matchID(reSpotifyID, path)
		if !ok {
			return Parsed{}, false
		}
		return Parsed{Platform: track.PlatformSpotify, ID: id, Domain: domain}, true
	}

	return Parsed{}, false
}

func matchID(re *regexp.Regexp, path string) (string, bool) {
	m := re.FindStringSubmatch(path)
	if m == nil || m[1] == "" {
		return "", false
	}
	return strings.TrimSuffix(m[1], "/"), true
}
