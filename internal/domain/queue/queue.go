// Package queue provides the live playback queue aggregate.
package queue

import (
	"math/rand"

	"github.com/google/uuid"

	"github.com/ewatari/crossqueue/internal/domain/track"
)

// Queue is the single mutable aggregate describing what is queued for
// playback and where in it we are. ID and Platform always describe the
// source playlist or mix, never an individual track.
//
// Queue is not safe for concurrent use; the coordinator serializes
// access behind its own lock.
type Queue struct {
	Position int
	Tracks   []track.Track
	ID       string
	Platform string

	// Generation changes on every wholesale replacement. Slow async
	// work (rehydration) captures it and discards its result if the
	// queue was replaced in the meantime.
	Generation string
}

// New creates an empty queue.
func New() *Queue {
	return &Queue{Generation: uuid.New().String()}
}

// Set replaces the queue wholesale. Position is always the supplied
// value clamped into range (0 when the track list is empty); it is
// never carried over from the previous queue.
func (q *Queue) Set(tracks []track.Track, id, platform string, position int) {
	if position < 0 || position >= len(tracks) {
		position = 0
	}
	q.Tracks = tracks
	q.ID = id
	q.Platform = platform
	q.Position = position
	q.Generation = uuid.New().String()
}

// Len returns the number of queued tracks.
func (q *Queue) Len() int {
	return len(q.Tracks)
}

// IsEmpty reports whether the queue holds no tracks.
func (q *Queue) IsEmpty() bool {
	return len(q.Tracks) == 0
}

// InRange reports whether position indexes a queued track.
func (q *Queue) InRange(position int) bool {
	return position >= 0 && position < len(q.Tracks)
}

// NowPlaying returns the track at the current position.
// Returns false when the queue is empty or the position is out of range.
func (q *Queue) NowPlaying() (track.Track, bool) {
	if !q.InRange(q.Position) {
		return track.Track{}, false
	}
	return q.Tracks[q.Position], true
}

// Shuffle permutes the track list in place so that the track at the
// current position becomes the new head, then applies a Fisher-Yates
// sweep over the remaining indices. The head is pinned, so every
// permutation of the non-head tracks is equally likely while the
// currently playing track keeps playing from index 0.
//
// Queues of one or zero tracks are left untouched.
func (q *Queue) Shuffle(rng *rand.Rand) {
	n := len(q.Tracks)
	if n <= 1 {
		return
	}

	if q.Position != 0 && q.InRange(q.Position) {
		q.Tracks[0], q.Tracks[q.Position] = q.Tracks[q.Position], q.Tracks[0]
	}
	q.Position = 0

	// Index 0 is the anchor; sweep [1, n-1] only.
	for i := n - 1; i >= 2; i-- {
		r := 1 + rng.Intn(i)
		q.Tracks[i], q.Tracks[r] = q.Tracks[r], q.Tracks[i]
	}
}
