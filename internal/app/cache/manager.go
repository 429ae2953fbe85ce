// Package cache persists queue identity across reloads and rehydrates
// it back into a concrete track list.
package cache

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/go-playground/validator/v10"
	zlog "github.com/rs/zerolog/log"

	"github.com/ewatari/crossqueue/internal/domain/playlist"
	"github.com/ewatari/crossqueue/internal/domain/track"
	"github.com/ewatari/crossqueue/internal/infra/store"
)

// Storage keys. The queue identity and the last-played track identity
// are stored independently so either can be stale or absent on its own.
const (
	queueKey = "cached-queue"
	trackKey = "cached-track"
)

// PlaylistFetcher fetches playlist contents from the backend API.
type PlaylistFetcher interface {
	GetPlaylist(ctx context.Context, platform track.Platform, id string) (*playlist.Playlist, error)
	GetManyPlaylists(ctx context.Context, refs []playlist.Ref) ([]playlist.Playlist, error)
}

// MixFinder resolves a saved mix by title.
type MixFinder interface {
	FindMix(title string) (*playlist.Mix, bool)
}

// RehydratedQueue is the queue state reconstructed from the cache.
type RehydratedQueue struct {
	Tracks   []track.Track
	ID       string
	Platform string
	Position int
}

// Manager persists and rehydrates queue identity.
type Manager struct {
	store    store.Store
	fetcher  PlaylistFetcher
	mixes    MixFinder
	validate *validator.Validate
}

// New creates a cache manager.
func New(s store.Store, fetcher PlaylistFetcher, mixes MixFinder) *Manager {
	return &Manager{
		store:    s,
		fetcher:  fetcher,
		mixes:    mixes,
		validate: validator.New(),
	}
}

// SetCachedQueue unconditionally records which playlist or mix the
// queue was built from. For mixes the id is the mix title and the
// platform is the reserved "mix" tag.
func (m *Manager) SetCachedQueue(ref playlist.Ref) error {
	return m.write(queueKey, ref)
}

// SetCachedTrack unconditionally records which track last played.
func (m *Manager) SetCachedTrack(ref playlist.Ref) error {
	return m.write(trackKey, ref)
}

// Clear removes both cached identities.
func (m *Manager) Clear() error {
	if err := m.store.Delete(queueKey); err != nil {
		return err
	}
	return m.store.Delete(trackKey)
}

// CachedQueue rehydrates the cached queue identity into a concrete
// track list by replaying playlist fetches, then resolves the starting
// position from the separately cached last-played track.
//
// Returns false when nothing usable is cached or any fetch fails; a mix
// is never partially reconstructed. Corrupt cache entries are treated
// as absent and cleared, never surfaced as errors.
func (m *Manager) CachedQueue(ctx context.Context) (*RehydratedQueue, bool) {
	ref, ok := m.readRef(queueKey)
	if !ok {
		return nil, false
	}

	platform := strings.ToLower(ref.Platform)
	if !track.IsQueueSource(platform) {
		zlog.Warn().Msgf("cache: discarding cached queue with unknown platform %q", ref.Platform)
		_ = m.store.Delete(queueKey)
		return nil, false
	}

	tracks, err := m.fetchTracks(ctx, ref.ID, platform)
	if err != nil {
		zlog.Warn().Msgf("cache: failed to rehydrate queue %s/%s: %v", platform, ref.ID, err)
		return nil, false
	}

	return &RehydratedQueue{
		Tracks:   tracks,
		ID:       ref.ID,
		Platform: platform,
		Position: m.resolvePosition(tracks),
	}, true
}

func (m *Manager) fetchTracks(ctx context.Context, id, platform string) ([]track.Track, error) {
	if platform == string(track.PlatformMix) {
		mix, ok := m.mixes.FindMix(id)
		if !ok {
			return nil, errors.Newf("saved mix %q not found", id)
		}
		playlists, err := m.fetcher.GetManyPlaylists(ctx, mix.Playlists)
		if err != nil {
			return nil, err
		}
		return playlist.Concat(playlists), nil
	}

	p, err := m.fetcher.GetPlaylist(ctx, track.Platform(platform), id)
	if err != nil {
		return nil, err
	}
	return p.Tracks, nil
}

// resolvePosition finds the cached last-played track in the
// reconstructed list, matching on track id and lowercased platform.
// Defaults to 0 when absent or not found.
func (m *Manager) resolvePosition(tracks []track.Track) int {
	ref, ok := m.readRef(trackKey)
	if !ok {
		return 0
	}

	for i, t := range tracks {
		if t.Matches(ref.ID, ref.Platform) {
			return i
		}
	}
	return 0
}

// readRef reads and schema-checks one cached identifier. Any malformed
// or incomplete record fails closed: the key is cleared and absence is
// reported. A bad record under one key never affects the other key.
func (m *Manager) readRef(key string) (playlist.Ref, bool) {
	raw, ok, err := m.store.Get(key)
	if err != nil {
		zlog.Warn().Msgf("cache: failed to read %s: %v", key, err)
		return playlist.Ref{}, false
	}
	if !ok {
		return playlist.Ref{}, false
	}

	var ref playlist.Ref
	if err := json.Unmarshal([]byte(raw), &ref); err != nil {
		zlog.Warn().Msgf("cache: discarding corrupt %s entry: %v", key, err)
		_ = m.store.Delete(key)
		return playlist.Ref{}, false
	}
	if err := m.validate.Struct(ref); err != nil {
		zlog.Warn().Msgf("cache: discarding malformed %s entry: %v", key, err)
		_ = m.store.Delete(key)
		return playlist.Ref{}, false
	}
	return ref, true
}

func (m *Manager) write(key string, ref playlist.Ref) error {
	data, err := json.Marshal(ref)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}
	return m.store.Set(key, string(data))
}
