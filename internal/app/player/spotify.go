package player

import "context"

// SpotifySurface is the opaque control surface of the Spotify embed.
// The embed exposes no independent play/pause commands, only a toggle;
// paused state is tracked synchronously from the embed's messages.
type SpotifySurface interface {
	LoadTrack(trackID string)
	TogglePlay()
	IsPaused() bool
}

// Spotify adapts the Spotify embed to the Player contract.
//
// Play and Pause are derived from the native toggle, guarded by the
// paused flag so they stay symmetric: issuing toggle while already in
// the target state would desync the tracked flag from the embed.
type Spotify struct {
	surface     SpotifySurface
	host        ContainerHost
	containerID string
}

// NewSpotify creates the Spotify adapter. surface may be nil until the
// embed has initialized; every operation tolerates that.
func NewSpotify(surface SpotifySurface, host ContainerHost, containerID string) *Spotify {
	return &Spotify{surface: surface, host: host, containerID: containerID}
}

func (a *Spotify) Load(trackID string, _ float64) {
	if a.surface == nil {
		return
	}
	a.surface.LoadTrack(trackID)
}

func (a *Spotify) Play() {
	if a.surface == nil {
		return
	}
	if a.surface.IsPaused() {
		a.surface.TogglePlay()
	}
}

func (a *Spotify) Pause() {
	if a.surface == nil {
		return
	}
	if !a.surface.IsPaused() {
		a.surface.TogglePlay()
	}
}

// Toggle uses the native toggle primitive directly; decomposing it into
// Play/Pause would double-guard on the paused flag.
func (a *Spotify) Toggle(_ context.Context) {
	if a.surface == nil {
		return
	}
	a.surface.TogglePlay()
}

func (a *Spotify) IsPlaying(_ context.Context) (bool, error) {
	if a.surface == nil {
		return false, nil
	}
	return !a.surface.IsPaused(), nil
}

func (a *Spotify) Show() { setHidden(a.host, a.containerID, false) }
func (a *Spotify) Hide() { setHidden(a.host, a.containerID, true) }
