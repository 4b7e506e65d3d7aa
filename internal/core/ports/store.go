package ports

import "context"

// Snapshot keys for the collection registries. They mirror the storage
// layout the frontend relies on.
const (
	KeyProjects  = "freelance_projects"
	KeyChats     = "freelance_chats"
	KeyResponses = "freelance_projects_responses"
)

// ProfileKey returns the snapshot key holding a single user's profile.
func ProfileKey(userID string) string {
	return "profile_" + userID
}

// SnapshotStore is whole-value key/value storage for collection snapshots.
// Load returns (nil, nil) when the key has never been written.
type SnapshotStore interface {
	Load(ctx context.Context, key string) ([]byte, error)
	Save(ctx context.Context, key string, value []byte) error
}

// PairLock serializes search-or-create sequences on an unordered id pair
// across processes. Acquire blocks until the lock is held or ctx expires;
// the returned release func must always be called.
type PairLock interface {
	Acquire(ctx context.Context, a, b string) (release func(), err error)
}
