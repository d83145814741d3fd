package ports

import "gen-machineconf/internal/types"

// ChangeDetectorPort memoizes file digests under named keys.
type ChangeDetectorPort interface {
	// Digest returns the hex content digest of path.
	Digest(path string) (string, error)

	// CheckAndUpdate compares the digest of file with the one stored under
	// key. When update is true and they differ, the new digest is persisted
	// before returning. A missing store or key is always changed.
	CheckAndUpdate(key string, file string, update bool) (types.CacheStatus, error)

	// CheckAndUpdateValue is CheckAndUpdate over in-memory content.
	CheckAndUpdateValue(key string, value []byte, update bool) (types.CacheStatus, error)
}
