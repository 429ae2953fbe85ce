// Package player normalizes the three embeddable platform players
// behind one capability contract.
//
// Each platform's embed exposes its own control surface with its own
// notion of playback state: YouTube reports a synchronous state enum,
// Spotify a synchronous paused flag (and only a toggle primitive for
// control), SoundCloud answers state queries through a callback. The
// adapters translate all of that into the uniform Player contract so
// the coordinator never branches on platform-specific async style.
package player

import "context"

// Player is the capability contract every platform adapter satisfies.
//
// All operations are safe no-ops when the underlying native surface has
// not been initialized; callers are expected to check the registry
// first, but an absent surface must never fault.
type Player interface {
	// Load begins loading the given track. startSeconds of 0 starts
	// from the beginning. Fire-and-forget: the embed may still be
	// buffering when this returns.
	Load(trackID string, startSeconds float64)

	// Play and Pause issue playback control, fire-and-forget.
	Play()
	Pause()

	// Toggle flips between playing and paused. Where the native
	// surface exposes a toggle primitive, it is used directly.
	Toggle(ctx context.Context)

	// IsPlaying reports whether the embed is currently playing.
	// Asynchronous for backends whose state query is callback-based;
	// ctx bounds the wait. An absent surface reports false.
	IsPlaying(ctx context.Context) (bool, error)

	// Show and Hide set the platform's visual container visibility.
	Show()
	Hide()
}

// ContainerHost is the UI collaborator that owns the platform
// containers. Adapters only know container ids, never the DOM.
type ContainerHost interface {
	SetHidden(containerID string, hidden bool)
}

func setHidden(host ContainerHost, containerID string, hidden bool) {
	if host == nil || containerID == "" {
		return
	}
	host.SetHidden(containerID, hidden)
}
