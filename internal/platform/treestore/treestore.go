// Package treestore is the boundary to the remote document store: a
// denormalized, hierarchically-keyed tree that is read as whole
// subtrees and written with field-level merges. The store offers no
// query language, joins, or server-side aggregation; callers pull a
// subtree and work on it locally.
//
// Three backends implement the boundary: RESTClient for a hosted tree
// store, PGStore for a self-hosted Postgres document tree, and
// MemoryStore for development and tests.
package treestore

import "context"

// Snapshot is the result of reading one subtree at a point in time.
// Value is nil and Exists is false when nothing lives at the path.
type Snapshot struct {
	Exists bool
	Value  map[string]any
}

// Store models the only two operations the remote store offers.
type Store interface {
	// SnapshotRead atomically returns the entire subtree under path.
	SnapshotRead(ctx context.Context, path string) (Snapshot, error)
	// PartialWrite merges fields into the node at path without
	// touching sibling fields. There is no compare-and-set: the last
	// write to land wins.
	PartialWrite(ctx context.Context, path string, fields map[string]any) error
}
