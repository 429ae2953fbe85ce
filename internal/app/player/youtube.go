package player

import "context"

// YouTubeState mirrors the YouTube embed's player state enum.
type YouTubeState int

const (
	YouTubeStateUnstarted YouTubeState = -1
	YouTubeStateEnded     YouTubeState = 0
	YouTubeStatePlaying   YouTubeState = 1
	YouTubeStatePaused    YouTubeState = 2
	YouTubeStateBuffering YouTubeState = 3
	YouTubeStateCued      YouTubeState = 5
)

// YouTubeSurface is the opaque control surface of the YouTube embed.
// State is queried synchronously via the player state enum.
type YouTubeSurface interface {
	LoadVideoByID(videoID string, startSeconds float64)
	PlayVideo()
	PauseVideo()
	PlayerState() YouTubeState
}

// YouTube adapts the YouTube embed to the Player contract.
type YouTube struct {
	surface     YouTubeSurface
	host        ContainerHost
	containerID string
}

// NewYouTube creates the YouTube adapter. surface may be nil until the
// embed has initialized; every operation tolerates that.
func NewYouTube(surface YouTubeSurface, host ContainerHost, containerID string) *YouTube {
	return &YouTube{surface: surface, host: host, containerID: containerID}
}

func (a *YouTube) Load(trackID string, startSeconds float64) {
	if a.surface == nil {
		return
	}
	a.surface.LoadVideoByID(trackID, startSeconds)
}

func (a *YouTube) Play() {
	if a.surface == nil {
		return
	}
	a.surface.PlayVideo()
}

func (a *YouTube) Pause() {
	if a.surface == nil {
		return
	}
	a.surface.PauseVideo()
}

// Toggle plays when paused, pauses otherwise, matching the embed's
// observable behavior for buffering and cued states.
func (a *YouTube) Toggle(_ context.Context) {
	if a.surface == nil {
		return
	}
	if a.surface.PlayerState() == YouTubeStatePaused {
		a.Play()
	} else {
		a.Pause()
	}
}

func (a *YouTube) IsPlaying(_ context.Context) (bool, error) {
	if a.surface == nil {
		return false, nil
	}
	state := a.surface.PlayerState()
	return state == YouTubeStatePlaying || state == YouTubeStateBuffering, nil
}

func (a *YouTube) Show() { setHidden(a.host, a.containerID, false) }
func (a *YouTube) Hide() { setHidden(a.host, a.containerID, true) }
