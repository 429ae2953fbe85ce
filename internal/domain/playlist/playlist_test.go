package playlist

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ewatari/crossqueue/internal/domain/track"
)

func seconds(s float64) *float64 { return &s }

func TestPlaylist_TrackIDs(t *testing.T) {
	tests := []struct {
		name     string
		tracks   []track.Track
		expected []string
	}{
		{
			name:     "empty playlist",
			tracks:   []track.Track{},
			expected: []string{},
		},
		{
			name: "multiple tracks",
			tracks: []track.Track{
				{ID: "track-1"},
				{ID: "track-2"},
				{ID: "track-3"},
			},
			expected: []string{"track-1", "track-2", "track-3"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &Playlist{Tracks: tt.tracks}
			assert.Equal(t, tt.expected, p.TrackIDs())
		})
	}
}

func TestPlaylist_TotalDuration(t *testing.T) {
	p := &Playlist{
		Tracks: []track.Track{
			{ID: "track-1", Duration: seconds(120)},
			{ID: "track-2", Duration: nil}, // youtube tracks report no duration
			{ID: "track-3", Duration: seconds(210.5)},
		},
	}

	assert.Equal(t, 330.5, p.TotalDuration())
}

func TestConcat(t *testing.T) {
	a := Playlist{Tracks: []track.Track{{ID: "a-1"}, {ID: "a-2"}}}
	b := Playlist{Tracks: []track.Track{}}
	c := Playlist{Tracks: []track.Track{{ID: "c-1"}}}

	tracks := Concat([]Playlist{a, b, c})

	assert.Len(t, tracks, 3)
	assert.Equal(t, "a-1", tracks[0].ID)
	assert.Equal(t, "a-2", tracks[1].ID)
	assert.Equal(t, "c-1", tracks[2].ID)
}
