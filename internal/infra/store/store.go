// Package store provides persisted key-value storage for cache and
// library entries. Values are free-form JSON strings; interpretation is
// left to the caller.
package store

// Store is the persistence surface used by the cache manager and the
// saved library. Get reports absence via its second return value;
// deleting an absent key is not an error.
type Store interface {
	Get(key string) (string, bool, error)
	Set(key, value string) error
	Delete(key string) error
}
