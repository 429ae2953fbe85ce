package cache

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ewatari/crossqueue/internal/domain/playlist"
	"github.com/ewatari/crossqueue/internal/domain/track"
	"github.com/ewatari/crossqueue/internal/infra/store"
)

// fakeFetcher serves playlists keyed by "platform/id".
type fakeFetcher struct {
	playlists map[string]*playlist.Playlist
	failing   map[string]string // id -> error message
}

func (f *fakeFetcher) GetPlaylist(_ context.Context, platform track.Platform, id string) (*playlist.Playlist, error) {
	if msg, ok := f.failing[id]; ok {
		return nil, errors.New(msg)
	}
	p, ok := f.playlists[string(platform)+"/"+id]
	if !ok {
		return nil, errors.New("playlist not found")
	}
	return p, nil
}

func (f *fakeFetcher) GetManyPlaylists(ctx context.Context, refs []playlist.Ref) ([]playlist.Playlist, error) {
	result := make([]playlist.Playlist, 0, len(refs))
	for _, ref := range refs {
		p, err := f.GetPlaylist(ctx, track.Platform(ref.Platform), ref.ID)
		if err != nil {
			return nil, err
		}
		result = append(result, *p)
	}
	return result, nil
}

type fakeMixes struct {
	mixes map[string]playlist.Mix
}

func (f *fakeMixes) FindMix(title string) (*playlist.Mix, bool) {
	m, ok := f.mixes[title]
	if !ok {
		return nil, false
	}
	return &m, true
}

func ytPlaylist(id string, trackIDs ...string) *playlist.Playlist {
	tracks := make([]track.Track, 0, len(trackIDs))
	for _, tid := range trackIDs {
		tracks = append(tracks, track.Track{ID: tid, Platform: track.PlatformYouTube})
	}
	return &playlist.Playlist{
		Info:   playlist.Info{Platform: track.PlatformYouTube, ID: id},
		Length: len(tracks),
		Tracks: tracks,
	}
}

func newManager(fetcher *fakeFetcher, mixes *fakeMixes) (*Manager, *store.MemoryStore) {
	s := store.NewMemoryStore()
	if fetcher == nil {
		fetcher = &fakeFetcher{}
	}
	if mixes == nil {
		mixes = &fakeMixes{}
	}
	return New(s, fetcher, mixes), s
}

func TestCachedQueue_RoundTrip(t *testing.T) {
	fetcher := &fakeFetcher{playlists: map[string]*playlist.Playlist{
		"youtube/abc": ytPlaylist("abc", "t1", "t2", "t3"),
	}}
	m, _ := newManager(fetcher, nil)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "abc", Platform: "youtube"}))

	q, ok := m.CachedQueue(context.Background())
	require.True(t, ok)
	assert.Equal(t, "abc", q.ID)
	assert.Equal(t, "youtube", q.Platform)
	assert.Len(t, q.Tracks, 3)
	assert.Equal(t, 0, q.Position)
}

func TestCachedQueue_ResolvesLastPlayedPosition(t *testing.T) {
	fetcher := &fakeFetcher{playlists: map[string]*playlist.Playlist{
		"youtube/abc": ytPlaylist("abc", "t1", "t2", "t3"),
	}}
	m, _ := newManager(fetcher, nil)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "abc", Platform: "youtube"}))
	require.NoError(t, m.SetCachedTrack(playlist.Ref{ID: "t2", Platform: "YOUTUBE"}))

	q, ok := m.CachedQueue(context.Background())
	require.True(t, ok)
	assert.Equal(t, 1, q.Position, "platform match is case-insensitive")
}

func TestCachedQueue_UnknownLastPlayedDefaultsToZero(t *testing.T) {
	fetcher := &fakeFetcher{playlists: map[string]*playlist.Playlist{
		"youtube/abc": ytPlaylist("abc", "t1", "t2"),
	}}
	m, _ := newManager(fetcher, nil)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "abc", Platform: "youtube"}))
	require.NoError(t, m.SetCachedTrack(playlist.Ref{ID: "gone", Platform: "youtube"}))

	q, ok := m.CachedQueue(context.Background())
	require.True(t, ok)
	assert.Equal(t, 0, q.Position)
}

func TestCachedQueue_AbsentWhenNothingCached(t *testing.T) {
	m, _ := newManager(nil, nil)

	_, ok := m.CachedQueue(context.Background())
	assert.False(t, ok)
}

func TestCachedQueue_MalformedJSONClearsKey(t *testing.T) {
	m, s := newManager(nil, nil)
	require.NoError(t, s.Set("cached-queue", "{not json"))

	_, ok := m.CachedQueue(context.Background())
	assert.False(t, ok)

	_, present, err := s.Get("cached-queue")
	require.NoError(t, err)
	assert.False(t, present, "corrupt key must be cleared")
}

func TestCachedQueue_WrongShapeClearsKey(t *testing.T) {
	m, s := newManager(nil, nil)
	require.NoError(t, s.Set("cached-queue", `{"something":"else"}`))

	_, ok := m.CachedQueue(context.Background())
	assert.False(t, ok)

	_, present, err := s.Get("cached-queue")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestCachedQueue_UnknownPlatformClearsKey(t *testing.T) {
	m, s := newManager(nil, nil)
	require.NoError(t, s.Set("cached-queue", `{"id":"abc","platform":"vimeo"}`))

	_, ok := m.CachedQueue(context.Background())
	assert.False(t, ok)

	_, present, err := s.Get("cached-queue")
	require.NoError(t, err)
	assert.False(t, present)
}

func TestCachedQueue_CorruptTrackKeyDoesNotAffectQueueKey(t *testing.T) {
	fetcher := &fakeFetcher{playlists: map[string]*playlist.Playlist{
		"youtube/abc": ytPlaylist("abc", "t1", "t2"),
	}}
	m, s := newManager(fetcher, nil)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "abc", Platform: "youtube"}))
	require.NoError(t, s.Set("cached-track", "][garbage"))

	q, ok := m.CachedQueue(context.Background())
	require.True(t, ok, "queue key must survive a corrupt track key")
	assert.Equal(t, 0, q.Position)

	_, present, err := s.Get("cached-track")
	require.NoError(t, err)
	assert.False(t, present, "corrupt track key must be cleared")

	_, present, err = s.Get("cached-queue")
	require.NoError(t, err)
	assert.True(t, present, "queue key must stay intact")
}

func TestCachedQueue_FetchErrorIsAbsent(t *testing.T) {
	fetcher := &fakeFetcher{failing: map[string]string{"abc": "upstream down"}}
	m, _ := newManager(fetcher, nil)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "abc", Platform: "youtube"}))

	_, ok := m.CachedQueue(context.Background())
	assert.False(t, ok)
}

func TestCachedQueue_MixConcatenatesInDeclarationOrder(t *testing.T) {
	fetcher := &fakeFetcher{playlists: map[string]*playlist.Playlist{
		"youtube/pl-a": ytPlaylist("pl-a", "a1", "a2"),
		"youtube/pl-b": ytPlaylist("pl-b", "b1"),
	}}
	mixes := &fakeMixes{mixes: map[string]playlist.Mix{
		"my mix": {
			Title: "my mix",
			Playlists: []playlist.Ref{
				{ID: "pl-a", Platform: "youtube"},
				{ID: "pl-b", Platform: "youtube"},
			},
		},
	}}
	m, _ := newManager(fetcher, mixes)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "my mix", Platform: "mix"}))

	q, ok := m.CachedQueue(context.Background())
	require.True(t, ok)
	assert.Equal(t, "mix", q.Platform)
	require.Len(t, q.Tracks, 3)
	assert.Equal(t, "a1", q.Tracks[0].ID)
	assert.Equal(t, "a2", q.Tracks[1].ID)
	assert.Equal(t, "b1", q.Tracks[2].ID)
}

func TestCachedQueue_PartialMixFailureIsAbsent(t *testing.T) {
	fetcher := &fakeFetcher{
		playlists: map[string]*playlist.Playlist{
			"youtube/pl-a": ytPlaylist("pl-a", "a1", "a2"),
		},
		failing: map[string]string{"pl-b": "not found"},
	}
	mixes := &fakeMixes{mixes: map[string]playlist.Mix{
		"my mix": {
			Title: "my mix",
			Playlists: []playlist.Ref{
				{ID: "pl-a", Platform: "youtube"},
				{ID: "pl-b", Platform: "youtube"},
			},
		},
	}}
	m, _ := newManager(fetcher, mixes)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "my mix", Platform: "mix"}))

	_, ok := m.CachedQueue(context.Background())
	assert.False(t, ok, "no partial mix may be assembled")
}

func TestCachedQueue_UnknownMixIsAbsent(t *testing.T) {
	m, _ := newManager(nil, nil)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "not saved", Platform: "mix"}))

	_, ok := m.CachedQueue(context.Background())
	assert.False(t, ok)
}

func TestClear(t *testing.T) {
	m, s := newManager(nil, nil)

	require.NoError(t, m.SetCachedQueue(playlist.Ref{ID: "abc", Platform: "youtube"}))
	require.NoError(t, m.SetCachedTrack(playlist.Ref{ID: "t1", Platform: "youtube"}))
	require.NoError(t, m.Clear())

	for _, key := range []string{"cached-queue", "cached-track"} {
		_, present, err := s.Get(key)
		require.NoError(t, err)
		assert.False(t, present)
	}
}
