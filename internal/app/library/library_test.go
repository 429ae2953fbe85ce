package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewatari/crossqueue/internal/domain/playlist"
	"github.com/ewatari/crossqueue/internal/infra/store"
)

func newLibrary() (*Library, *store.MemoryStore) {
	s := store.NewMemoryStore()
	return New(s), s
}

func TestLibrary_SaveAndListPlaylists(t *testing.T) {
	l, _ := newLibrary()

	assert.Empty(t, l.SavedPlaylists())

	require.NoError(t, l.SavePlaylist(playlist.Ref{ID: "pl-1", Platform: "youtube"}))
	require.NoError(t, l.SavePlaylist(playlist.Ref{ID: "pl-2", Platform: "spotify"}))

	saved := l.SavedPlaylists()
	require.Len(t, saved, 2)
	assert.Equal(t, "pl-1", saved[0].ID)
	assert.Equal(t, "pl-2", saved[1].ID)
}

func TestLibrary_SavePlaylistIsIdempotent(t *testing.T) {
	l, _ := newLibrary()

	require.NoError(t, l.SavePlaylist(playlist.Ref{ID: "pl-1", Platform: "youtube"}))
	require.NoError(t, l.SavePlaylist(playlist.Ref{ID: "pl-1", Platform: "youtube"}))

	assert.Len(t, l.SavedPlaylists(), 1)
}

func TestLibrary_SavePlaylistRejectsIncomplete(t *testing.T) {
	l, _ := newLibrary()

	assert.Error(t, l.SavePlaylist(playlist.Ref{ID: "", Platform: "youtube"}))
	assert.Error(t, l.SavePlaylist(playlist.Ref{ID: "pl-1", Platform: ""}))
}

func TestLibrary_SaveAndFindMix(t *testing.T) {
	l, _ := newLibrary()

	mix := playlist.Mix{
		Title: "road trip",
		Playlists: []playlist.Ref{
			{ID: "pl-1", Platform: "youtube"},
			{ID: "pl-2", Platform: "spotify"},
		},
	}
	require.NoError(t, l.SaveMix(mix))

	found, ok := l.FindMix("road trip")
	require.True(t, ok)
	assert.Equal(t, mix.Playlists, found.Playlists)

	_, ok = l.FindMix("unknown")
	assert.False(t, ok)
}

func TestLibrary_SaveMixValidation(t *testing.T) {
	l, _ := newLibrary()

	assert.Error(t, l.SaveMix(playlist.Mix{Title: "", Playlists: []playlist.Ref{{ID: "x", Platform: "youtube"}}}))
	assert.Error(t, l.SaveMix(playlist.Mix{Title: "empty mix"}))
}

func TestLibrary_CorruptKeyIsClearedAndIgnored(t *testing.T) {
	l, s := newLibrary()
	require.NoError(t, s.Set("saved-mixes", "{not json"))

	assert.Empty(t, l.SavedMixes())

	_, ok, err := s.Get("saved-mixes")
	require.NoError(t, err)
	assert.False(t, ok, "corrupt key should be cleared")
}

func TestLibrary_InvalidEntriesAreFiltered(t *testing.T) {
	l, s := newLibrary()
	require.NoError(t, s.Set("saved-playlists",
		`[{"id":"pl-1","platform":"youtube"},{"id":"","platform":"spotify"},{"platform":"soundcloud"}]`))

	saved := l.SavedPlaylists()
	require.Len(t, saved, 1)
	assert.Equal(t, "pl-1", saved[0].ID)
}
