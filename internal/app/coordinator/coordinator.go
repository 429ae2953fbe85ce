// Package coordinator ties the queue, the player registry and the
// cache together into the playback state machine.
package coordinator

import (
	"context"
	"math/rand"
	"sync"
	"time"

	zlog "github.com/rs/zerolog/log"

	"github.com/ewatari/crossqueue/internal/app/cache"
	"github.com/ewatari/crossqueue/internal/app/player"
	"github.com/ewatari/crossqueue/internal/domain/playlist"
	"github.com/ewatari/crossqueue/internal/domain/queue"
	"github.com/ewatari/crossqueue/internal/domain/track"
)

// CacheManager is the persistence collaborator.
type CacheManager interface {
	SetCachedQueue(ref playlist.Ref) error
	SetCachedTrack(ref playlist.Ref) error
	CachedQueue(ctx context.Context) (*cache.RehydratedQueue, bool)
}

// Config holds coordinator policy.
type Config struct {
	// AutoplayOnSet starts playback of the selected position as soon
	// as a queue is set or rehydrated.
	AutoplayOnSet bool
}

// Coordinator is the playback queue state machine.
//
// Every public operation takes the coordinator lock, making queue
// mutations atomic with respect to each other. The lock is NOT held
// across asynchronous adapter state queries or rehydration fetches;
// operations arriving during those windows act on the queue as it is
// at call time. Toggle is therefore last-resolved-wins under rapid
// concurrent use; rehydration instead discards its result when the
// queue generation changed while it was in flight.
type Coordinator struct {
	mu       sync.Mutex
	queue    *queue.Queue
	registry *player.Registry
	cache    CacheManager
	cfg      Config
	rng      *rand.Rand

	rehydrating bool
}

// New creates a coordinator with an empty queue.
func New(registry *player.Registry, cacheMgr CacheManager, cfg Config) *Coordinator {
	return &Coordinator{
		queue:    queue.New(),
		registry: registry,
		cache:    cacheMgr,
		cfg:      cfg,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// SetQueue replaces the queue wholesale and persists its identity.
// Position defaults to 0 when out of range for the new track list.
// Playback only starts here under the autoplay-on-set policy.
func (c *Coordinator) SetQueue(tracks []track.Track, id, platform string, position int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.queue.Set(tracks, id, platform, position)

	if err := c.cache.SetCachedQueue(playlist.Ref{ID: id, Platform: platform}); err != nil {
		zlog.Warn().Msgf("coordinator: failed to persist queue identity: %v", err)
	}

	if c.cfg.AutoplayOnSet {
		c.loadLocked(c.queue.Position)
	}
}

// Load switches playback to the track at position.
// Returns false and leaves all state untouched when position is out of
// range. Otherwise it pauses the currently loaded track on its own
// platform, moves the position, dispatches the load on the new track's
// platform adapter, makes that platform the visible one and persists
// the new last-played identity.
func (c *Coordinator) Load(position int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(position)
}

// LoadNext advances to the next track, failing at the end of the queue.
func (c *Coordinator) LoadNext() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(c.queue.Position + 1)
}

// LoadPrev rewinds to the previous track, failing at the start.
func (c *Coordinator) LoadPrev() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loadLocked(c.queue.Position - 1)
}

func (c *Coordinator) loadLocked(position int) bool {
	if !c.queue.InRange(position) {
		return false
	}

	// Pause the outgoing track before the position moves.
	if current, ok := c.queue.NowPlaying(); ok {
		if adapter, ok := c.registry.Lookup(current.Platform); ok {
			adapter.Pause()
		}
	}

	c.queue.Position = position
	next, _ := c.queue.NowPlaying()

	if adapter, ok := c.registry.Lookup(next.Platform); ok {
		adapter.Load(next.ID, 0)
	} else {
		zlog.Warn().Msgf("coordinator: no adapter registered for %s", next.Platform)
	}

	c.swapLocked(next.Platform)

	if err := c.cache.SetCachedTrack(playlist.Ref{ID: next.ID, Platform: string(next.Platform)}); err != nil {
		zlog.Warn().Msgf("coordinator: failed to persist last-played track: %v", err)
	}
	return true
}

// Play starts playback of the current track. No-op on an empty queue.
func (c *Coordinator) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if adapter, ok := c.currentAdapterLocked(); ok {
		adapter.Play()
	}
}

// Pause pauses the current track. No-op on an empty queue.
func (c *Coordinator) Pause() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if adapter, ok := c.currentAdapterLocked(); ok {
		adapter.Pause()
	}
}

// Toggle flips play/pause on the current track's adapter.
//
// Resolving "is playing" is asynchronous for some platforms, so the
// adapter call runs outside the coordinator lock; rapid concurrent
// toggles race and the last one to resolve wins. This is accepted, not
// serialized.
func (c *Coordinator) Toggle(ctx context.Context) {
	c.mu.Lock()
	adapter, ok := c.currentAdapterLocked()
	c.mu.Unlock()

	if ok {
		adapter.Toggle(ctx)
	}
}

// Swap makes platform's container the visible one and pauses and hides
// every other platform, so only one embed is audible and visible.
func (c *Coordinator) Swap(platform track.Platform) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.swapLocked(platform)
}

func (c *Coordinator) swapLocked(platform track.Platform) {
	for _, p := range track.Platforms {
		adapter, ok := c.registry.Lookup(p)
		if !ok {
			continue
		}
		if p == platform {
			adapter.Show()
		} else {
			adapter.Pause()
			adapter.Hide()
		}
	}
}

// Shuffle permutes the queue, keeping the current track as the new
// head. The loaded track does not move, so no reload is needed.
func (c *Coordinator) Shuffle() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.queue.Shuffle(c.rng)
}

// NowPlaying returns the current track, or false when the queue is
// empty or the position is out of range.
func (c *Coordinator) NowPlaying() (track.Track, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.NowPlaying()
}

// Position returns the current queue position.
func (c *Coordinator) Position() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.Position
}

// Tracks returns a copy of the queued tracks.
func (c *Coordinator) Tracks() []track.Track {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := make([]track.Track, len(c.queue.Tracks))
	copy(result, c.queue.Tracks)
	return result
}

// QueueSource returns the id and platform the queue was built from.
func (c *Coordinator) QueueSource() (id, platform string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.queue.ID, c.queue.Platform
}

// IsRehydrating reports whether a rehydration is in flight. Informational
// only: operations during rehydration are allowed and act on the queue
// as it currently is.
func (c *Coordinator) IsRehydrating() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.rehydrating
}

// Rehydrate reconstructs the queue from the persisted cache.
// The network fetches run without the coordinator lock; if the queue
// was replaced while they were in flight, the stale result is
// discarded. Returns true when the queue was restored.
func (c *Coordinator) Rehydrate(ctx context.Context) bool {
	c.mu.Lock()
	c.rehydrating = true
	generation := c.queue.Generation
	c.mu.Unlock()

	restored, ok := c.cache.CachedQueue(ctx)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.rehydrating = false

	if !ok {
		return false
	}
	if c.queue.Generation != generation {
		zlog.Debug().Msg("coordinator: discarding stale rehydration result")
		return false
	}

	c.queue.Set(restored.Tracks, restored.ID, restored.Platform, restored.Position)
	zlog.Info().Msgf("coordinator: restored queue %s/%s with %d tracks at position %d",
		restored.Platform, restored.ID, len(restored.Tracks), restored.Position)

	if c.cfg.AutoplayOnSet {
		c.loadLocked(c.queue.Position)
	}
	return true
}

func (c *Coordinator) currentAdapterLocked() (player.Player, bool) {
	current, ok := c.queue.NowPlaying()
	if !ok {
		return nil, false
	}
	return c.registry.Lookup(current.Platform)
}
