package treestore

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgxpool"
)

// PGStore keeps the document tree in Postgres for self-hosted
// deployments: one jsonb document per tree path. The jsonb || operator
// gives PartialWrite its field-merge semantics; sibling fields in the
// stored document are never touched.
type PGStore struct {
	pool *pgxpool.Pool
}

// NewPGStore connects a pool and ensures the tree_nodes table exists.
func NewPGStore(ctx context.Context, databaseURL string, maxConns, minConns int32) (*PGStore, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}
	cfg.MaxConns = maxConns
	cfg.MinConns = minConns

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &PGStore{pool: pool}
	if err := s.ensureSchema(ctx); err != nil {
		pool.Close()
		return nil, err
	}
	return s, nil
}

func (s *PGStore) ensureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS tree_nodes (
			path text PRIMARY KEY,
			doc  jsonb NOT NULL DEFAULT '{}'::jsonb
		)`)
	if err != nil {
		return fmt.Errorf("ensure tree_nodes table: %w", err)
	}
	return nil
}

func (s *PGStore) Close() {
	s.pool.Close()
}

// SnapshotRead prefix-scans every node at or under path and
// reassembles them into one nested mapping.
func (s *PGStore) SnapshotRead(ctx context.Context, path string) (Snapshot, error) {
	p := strings.Trim(path, "/")
	rows, err := s.pool.Query(ctx,
		`SELECT path, doc FROM tree_nodes WHERE path = $1 OR path LIKE $2`,
		p, p+"/%")
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", p, err)
	}
	defer rows.Close()

	tree := map[string]any{}
	found := false
	for rows.Next() {
		var nodePath string
		var raw []byte
		if err := rows.Scan(&nodePath, &raw); err != nil {
			return Snapshot{}, fmt.Errorf("scan %s: %w", p, err)
		}
		var doc map[string]any
		if err := json.Unmarshal(raw, &doc); err != nil {
			return Snapshot{}, fmt.Errorf("decode node %s: %w", nodePath, err)
		}
		graft(tree, strings.TrimPrefix(strings.TrimPrefix(nodePath, p), "/"), doc)
		found = true
	}
	if err := rows.Err(); err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", p, err)
	}
	if !found {
		return Snapshot{}, nil
	}
	return Snapshot{Exists: true, Value: tree}, nil
}

// graft places doc at the relative path inside tree, creating
// intermediate mappings as needed. An empty relative path merges doc
// into the tree root.
func graft(tree map[string]any, rel string, doc map[string]any) {
	node := tree
	for _, seg := range segments(rel) {
		child, ok := node[seg].(map[string]any)
		if !ok {
			child = map[string]any{}
			node[seg] = child
		}
		node = child
	}
	for k, v := range doc {
		node[k] = v
	}
}

func (s *PGStore) PartialWrite(ctx context.Context, path string, fields map[string]any) error {
	p := strings.Trim(path, "/")
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode write for %s: %w", p, err)
	}
	_, err = s.pool.Exec(ctx, `
		INSERT INTO tree_nodes (path, doc) VALUES ($1, $2)
		ON CONFLICT (path) DO UPDATE SET doc = tree_nodes.doc || EXCLUDED.doc`,
		p, body)
	if err != nil {
		return fmt.Errorf("write %s: %w", p, err)
	}
	return nil
}
