// Package api provides a client for the playlist backend API.
package api

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	zlog "github.com/rs/zerolog/log"

	"github.com/ewatari/crossqueue/internal/domain/playlist"
	"github.com/ewatari/crossqueue/internal/domain/track"
)

// ErrEmptyPlaylistID is returned when the caller passes an empty or
// whitespace-only playlist id. No network call is made in that case.
var ErrEmptyPlaylistID = errors.New("please provide a playlist id to search for")

// Client fetches playlists from the backend API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Config represents API client configuration.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// playlistResponse mirrors the API's playlist wire format.
type playlistResponse struct {
	Platform    string          `json:"platform"`
	PlaylistID  string          `json:"playlist_id"`
	Title       string          `json:"title"`
	Owner       string          `json:"owner"`
	Description string          `json:"description"`
	Thumbnail   string          `json:"thumbnail"`
	ETag        string          `json:"etag"`
	Length      int             `json:"length"`
	Tracks      []trackResponse `json:"tracks"`
}

type trackResponse struct {
	TrackID         string   `json:"track_id"`
	Platform        string   `json:"platform"`
	Title           string   `json:"title"`
	Owner           string   `json:"owner"`
	Thumbnail       string   `json:"thumbnail"`
	DurationSeconds *float64 `json:"duration_seconds"`
}

// errorResponse is the API's error wire format.
type errorResponse struct {
	Error string `json:"error"`
}

// New creates a new API client.
func New(cfg Config) (*Client, error) {
	if cfg.BaseURL == "" {
		return nil, errors.New("api base URL is required")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}

	return &Client{
		baseURL:    strings.TrimRight(cfg.BaseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
	}, nil
}

// GetPlaylist fetches a playlist with its tracks.
// platform must be a lowercase platform tag; id is the platform's
// playlist id. Empty ids short-circuit to ErrEmptyPlaylistID.
func (c *Client) GetPlaylist(ctx context.Context, platform track.Platform, id string) (*playlist.Playlist, error) {
	var resp playlistResponse
	if err := c.get(ctx, "/api/playlist/"+string(platform), id, &resp); err != nil {
		return nil, err
	}
	return toPlaylist(resp), nil
}

// GetPlaylistInfo fetches playlist metadata without tracks.
func (c *Client) GetPlaylistInfo(ctx context.Context, platform track.Platform, id string) (*playlist.Info, error) {
	var resp playlistResponse
	if err := c.get(ctx, "/api/playlist_info/"+string(platform), id, &resp); err != nil {
		return nil, err
	}
	info := toPlaylist(resp).Info
	return &info, nil
}

// GetManyPlaylists fetches every referenced playlist, in order.
// Any single failure fails the whole call; no partial result is returned.
func (c *Client) GetManyPlaylists(ctx context.Context, refs []playlist.Ref) ([]playlist.Playlist, error) {
	playlists := make([]playlist.Playlist, 0, len(refs))
	for _, ref := range refs {
		p, err := c.GetPlaylist(ctx, track.Platform(strings.ToLower(ref.Platform)), ref.ID)
		if err != nil {
			return nil, errors.Wrapf(err, "failed to fetch playlist %s/%s", ref.Platform, ref.ID)
		}
		playlists = append(playlists, *p)
	}
	return playlists, nil
}

// get performs the request and decodes into out, applying the error
// taxonomy: empty id short-circuits, non-JSON bodies are distinguished
// from unreachable endpoints, and upstream-reported errors propagate
// annotated with the HTTP status.
func (c *Client) get(ctx context.Context, path, id string, out *playlistResponse) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrEmptyPlaylistID
	}

	reqURL := c.baseURL + path + "?id=" + url.QueryEscape(id)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return errors.Wrap(err, "failed to create request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return errors.Wrap(err, "API endpoint could not be reached")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read response body")
	}

	// Try the error shape first so upstream errors survive even when
	// the playlist decode below would also succeed on an empty object.
	var apiErr errorResponse
	isJSON := json.Unmarshal(body, &apiErr) == nil

	if !isJSON {
		if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusInternalServerError {
			return errors.New("API endpoint could not be reached")
		}
		return errors.New("the API returned a non-json response")
	}

	if resp.StatusCode != http.StatusOK {
		if apiErr.Error != "" {
			return errors.Newf("%s", apiErr.Error)
		}
		return errors.Newf("%d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}

	if apiErr.Error != "" {
		return errors.Newf("(%d: %s) %s", resp.StatusCode, http.StatusText(resp.StatusCode), apiErr.Error)
	}

	if err := json.Unmarshal(body, out); err != nil {
		return errors.Wrap(err, "the API returned a non-json response")
	}

	if out.Length != len(out.Tracks) {
		zlog.Debug().Msgf("api: playlist %s reports length=%d but has %d tracks, normalizing",
			out.PlaylistID, out.Length, len(out.Tracks))
		out.Length = len(out.Tracks)
	}
	return nil
}

func toPlaylist(resp playlistResponse) *playlist.Playlist {
	tracks := make([]track.Track, 0, len(resp.Tracks))
	for _, tr := range resp.Tracks {
		tracks = append(tracks, track.Track{
			ID:        tr.TrackID,
			Platform:  track.Platform(strings.ToLower(tr.Platform)),
			Title:     tr.Title,
			Owner:     tr.Owner,
			Thumbnail: tr.Thumbnail,
			Duration:  tr.DurationSeconds,
		})
	}

	return &playlist.Playlist{
		Info: playlist.Info{
			Platform:    track.Platform(strings.ToLower(resp.Platform)),
			ID:          resp.PlaylistID,
			Title:       resp.Title,
			Owner:       resp.Owner,
			Description: resp.Description,
			Thumbnail:   resp.Thumbnail,
			ETag:        resp.ETag,
		},
		Length: resp.Length,
		Tracks: tracks,
	}
}
