package treestore

import (
	"context"
	"strings"
	"sync"
)

// MemoryStore keeps the document tree in process memory. It backs the
// seed command, memory-mode serving, and the package tests. Reads
// deep-copy the subtree so callers can mutate their snapshot freely.
type MemoryStore struct {
	mu   sync.RWMutex
	root map[string]any
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: map[string]any{}}
}

func (s *MemoryStore) SnapshotRead(_ context.Context, path string) (Snapshot, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	node := s.root
	for _, seg := range segments(path) {
		child, ok := node[seg].(map[string]any)
		if !ok {
			return Snapshot{}, nil
		}
		node = child
	}
	return Snapshot{Exists: true, Value: deepCopy(node)}, nil
}

func (s *MemoryStore) PartialWrite(_ context.Context, path string, fields map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	node := s.root
	for _, seg := range segments(path) {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[seg] = child
		}
		node = child
	}
	for k, v := range fields {
		node[k] = v
	}
	return nil
}

func segments(path string) []string {
	trimmed := strings.Trim(path, "/")
	if trimmed == "" {
		return nil
	}
	return strings.Split(trimmed, "/")
}

func deepCopy(node map[string]any) map[string]any {
	out := make(map[string]any, len(node))
	for k, v := range node {
		if child, ok := v.(map[string]any); ok {
			out[k] = deepCopy(child)
			continue
		}
		out[k] = v
	}
	return out
}
