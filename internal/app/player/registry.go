package player

import (
	"sync"

	"github.com/ewatari/crossqueue/internal/domain/track"
)

// Registry holds at most one live adapter per platform.
//
// The embed-initialization layer registers an adapter once its embed is
// ready; the coordinator only looks adapters up. Re-registration is
// allowed and the last write wins. Slots are never evicted.
type Registry struct {
	mu      sync.RWMutex
	players map[track.Platform]Player
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{players: make(map[track.Platform]Player)}
}

// Register binds the adapter to the platform slot, replacing any
// previous binding.
func (r *Registry) Register(platform track.Platform, p Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.players[platform] = p
}

// Lookup returns the adapter for the platform, or false when the
// platform's embed has not initialized yet.
func (r *Registry) Lookup(platform track.Platform) (Player, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.players[platform]
	return p, ok
}

// Platforms returns the platforms with a registered adapter.
func (r *Registry) Platforms() []track.Platform {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]track.Platform, 0, len(r.players))
	for p := range r.players {
		result = append(result, p)
	}
	return result
}
