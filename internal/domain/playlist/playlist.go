// Package playlist provides playlist and mix domain entities.
package playlist

import (
	"github.com/samber/lo"

	"github.com/ewatari/crossqueue/internal/domain/track"
)

// Info holds playlist metadata without its tracks.
type Info struct {
	Platform    track.Platform
	ID          string
	Title       string
	Owner       string
	Description string
	Thumbnail   string
	ETag        string
}

// Playlist represents a playlist fetched from the API, metadata plus
// its ordered tracks. Length always equals len(Tracks); the API reports
// both and the client rejects responses where they disagree.
type Playlist struct {
	Info
	Length int
	Tracks []track.Track
}

// Ref identifies a playlist (or a cached track) by id and platform.
// The same shape serves queue identity, track identity and mix members,
// so each can be independently present in storage.
type Ref struct {
	ID       string `json:"id" mapstructure:"id" validate:"required"`
	Platform string `json:"platform" mapstructure:"platform" validate:"required"`
}

// Mix is a user-assembled virtual playlist: an ordered list of
// references to underlying platform playlists.
type Mix struct {
	Title     string `json:"title"`
	Playlists []Ref  `json:"playlists"`
}

// TrackIDs returns all track IDs in order.
func (p *Playlist) TrackIDs() []string {
	return lo.Map(p.Tracks, func(t track.Track, _ int) string { return t.ID })
}

// TotalDuration returns the summed duration in seconds of all tracks
// that report one.
func (p *Playlist) TotalDuration() float64 {
	var total float64
	for _, t := range p.Tracks {
		if t.Duration != nil {
			total += *t.Duration
		}
	}
	return total
}

// Concat flattens the playlists' tracks into one ordered list,
// preserving playlist declaration order.
func Concat(playlists []Playlist) []track.Track {
	tracks := make([]track.Track, 0, lo.SumBy(playlists, func(p Playlist) int { return len(p.Tracks) }))
	for _, p := range playlists {
		tracks = append(tracks, p.Tracks...)
	}
	return tracks
}
