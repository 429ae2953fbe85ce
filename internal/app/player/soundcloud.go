package player

import "context"

// DefaultSoundCloudTrackURLBase is the widget's track URL prefix.
// The widget loads tracks by URL, not by bare id.
const DefaultSoundCloudTrackURLBase = "https://soundcloud.com/tracks/"

// SoundCloudSurface is the opaque control surface of the SoundCloud
// widget. The paused state is only available through a callback getter.
type SoundCloudSurface interface {
	Load(trackURL string, autoPlay bool)
	Play()
	Pause()
	IsPaused(callback func(paused bool))
}

// SoundCloud adapts the SoundCloud widget to the Player contract,
// bridging the callback-style state getter into the contract's
// context-aware IsPlaying.
type SoundCloud struct {
	surface      SoundCloudSurface
	host         ContainerHost
	containerID  string
	trackURLBase string
}

// NewSoundCloud creates the SoundCloud adapter. surface may be nil
// until the widget has initialized; every operation tolerates that.
func NewSoundCloud(surface SoundCloudSurface, host ContainerHost, containerID, trackURLBase string) *SoundCloud {
	if trackURLBase == "" {
		trackURLBase = DefaultSoundCloudTrackURLBase
	}
	return &SoundCloud{surface: surface, host: host, containerID: containerID, trackURLBase: trackURLBase}
}

// Load loads the track by URL with auto-play, which is how the widget
// behaves on load regardless; startSeconds is not supported by the
// widget's load call.
func (a *SoundCloud) Load(trackID string, _ float64) {
	if a.surface == nil {
		return
	}
	a.surface.Load(a.trackURLBase+trackID, true)
}

func (a *SoundCloud) Play() {
	if a.surface == nil {
		return
	}
	a.surface.Play()
}

func (a *SoundCloud) Pause() {
	if a.surface == nil {
		return
	}
	a.surface.Pause()
}

// Toggle resolves the paused state asynchronously, then dispatches the
// opposite operation. A ctx timeout while the widget is unresponsive
// leaves playback untouched.
func (a *SoundCloud) Toggle(ctx context.Context) {
	playing, err := a.IsPlaying(ctx)
	if err != nil {
		return
	}
	if playing {
		a.Pause()
	} else {
		a.Play()
	}
}

func (a *SoundCloud) IsPlaying(ctx context.Context) (bool, error) {
	if a.surface == nil {
		return false, nil
	}

	ch := make(chan bool, 1)
	a.surface.IsPaused(func(paused bool) {
		select {
		case ch <- paused:
		default:
		}
	})

	select {
	case paused := <-ch:
		return !paused, nil
	case <-ctx.Done():
		return false, ctx.Err()
	}
}

func (a *SoundCloud) Show() { setHidden(a.host, a.containerID, false) }
func (a *SoundCloud) Hide() { setHidden(a.host, a.containerID, true) }
