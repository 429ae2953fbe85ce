// Package library manages the saved library of playlists and mixes.
package library

import (
	"encoding/json"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/ewatari/crossqueue/internal/domain/playlist"
	"github.com/ewatari/crossqueue/internal/infra/store"
)

const (
	mixesKey     = "saved-mixes"
	playlistsKey = "saved-playlists"
)

// Library persists saved playlists and mixes in the key-value store.
// Corrupt entries are treated as absent and cleared, never surfaced.
type Library struct {
	store store.Store
}

// New creates a library over the given store.
func New(s store.Store) *Library {
	return &Library{store: s}
}

// SavePlaylist adds a playlist reference to the saved library.
// Saving an already-saved playlist is a no-op.
func (l *Library) SavePlaylist(ref playlist.Ref) error {
	if ref.ID == "" || ref.Platform == "" {
		return errors.New("playlist reference requires id and platform")
	}

	saved := l.SavedPlaylists()
	if lo.SomeBy(saved, func(r playlist.Ref) bool { return r.ID == ref.ID }) {
		return nil
	}

	return l.write(playlistsKey, append(saved, ref))
}

// SaveMix adds a mix to the saved library, keyed by title.
// Saving a mix whose title is already saved is a no-op.
func (l *Library) SaveMix(mix playlist.Mix) error {
	if mix.Title == "" {
		return errors.New("mix requires a title")
	}
	if len(mix.Playlists) == 0 {
		return errors.New("mix requires at least one playlist")
	}

	saved := l.SavedMixes()
	if lo.SomeBy(saved, func(m playlist.Mix) bool { return m.Title == mix.Title }) {
		return nil
	}

	return l.write(mixesKey, append(saved, mix))
}

// SavedPlaylists returns all valid saved playlist references.
// Invalid entries are dropped; an unparseable key is cleared.
func (l *Library) SavedPlaylists() []playlist.Ref {
	var saved []playlist.Ref
	if !l.read(playlistsKey, &saved) {
		return nil
	}

	return lo.Filter(saved, func(r playlist.Ref, _ int) bool {
		return r.ID != "" && r.Platform != ""
	})
}

// SavedMixes returns all valid saved mixes.
// Invalid entries are dropped; an unparseable key is cleared.
func (l *Library) SavedMixes() []playlist.Mix {
	var saved []playlist.Mix
	if !l.read(mixesKey, &saved) {
		return nil
	}

	return lo.Filter(saved, func(m playlist.Mix, _ int) bool {
		return m.Title != "" && len(m.Playlists) > 0
	})
}

// FindMix looks up a saved mix by title.
func (l *Library) FindMix(title string) (*playlist.Mix, bool) {
	for _, m := range l.SavedMixes() {
		if m.Title == title {
			return &m, true
		}
	}
	return nil, false
}

// read unmarshals the key into out. Returns false when the key is
// absent or corrupt; corrupt keys are cleared.
func (l *Library) read(key string, out any) bool {
	raw, ok, err := l.store.Get(key)
	if err != nil {
		zlog.Warn().Msgf("library: failed to read %s: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	if err := json.Unmarshal([]byte(raw), out); err != nil {
		zlog.Warn().Msgf("library: discarding corrupt %s entry: %v", key, err)
		_ = l.store.Delete(key)
		return false
	}
	return true
}

func (l *Library) write(key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return errors.Wrapf(err, "failed to marshal %s", key)
	}
	return l.store.Set(key, string(data))
}
