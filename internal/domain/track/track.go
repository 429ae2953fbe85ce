// Package track provides the Track domain entity and platform tags.
package track

import "strings"

// Platform identifies the source platform of a track or playlist.
// Values are lowercase; the API and cache layers use the same spelling.
type Platform string

const (
	PlatformYouTube    Platform = "youtube"
	PlatformSpotify    Platform = "spotify"
	PlatformSoundCloud Platform = "soundcloud"

	// PlatformMix is the reserved tag for a user-assembled mix of
	// playlists. It is valid as a queue source, never as a track source.
	PlatformMix Platform = "mix"
)

// Platforms lists the playable platforms (PlatformMix excluded).
var Platforms = []Platform{PlatformYouTube, PlatformSpotify, PlatformSoundCloud}

// ParsePlatform normalizes a raw tag to a Platform.
// Returns false for anything that is not a known playable platform.
func ParsePlatform(raw string) (Platform, bool) {
	p := Platform(strings.ToLower(raw))
	for _, known := range Platforms {
		if p == known {
			return p, true
		}
	}
	return "", false
}

// IsQueueSource reports whether the tag is valid as a queue source,
// i.e. a playable platform or the reserved mix tag.
func IsQueueSource(raw string) bool {
	if _, ok := ParsePlatform(raw); ok {
		return true
	}
	return Platform(strings.ToLower(raw)) == PlatformMix
}

// Track represents a single playable track.
// Immutable once fetched from the playlist API.
type Track struct {
	ID        string   // Track ID, unique within its platform
	Platform  Platform // Source platform
	Title     string   // Display title
	Owner     string   // Uploader / artist display name
	Thumbnail string   // Thumbnail URL
	Duration  *float64 // Duration in seconds; nil when the platform cannot report it
}

// Matches reports whether the track matches the given identity.
// Platform comparison is case-insensitive since cached identities
// may carry the platform in either case.
func (t Track) Matches(id, platform string) bool {
	return t.ID == id && strings.EqualFold(string(t.Platform), platform)
}
