package treestore

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// RESTClient talks to a hosted tree store over its JSON REST surface:
// GET {base}/{path}.json returns the subtree (JSON null when nothing
// lives there) and PATCH {base}/{path}.json merges the body's fields
// into the node. There are no retries and no client-side timeout
// beyond what the injected http.Client enforces; a hung call simply
// stays pending.
type RESTClient struct {
	base   string
	token  string
	client *http.Client
	log    zerolog.Logger
}

// NewRESTClient builds a client for the store rooted at base. token,
// when non-empty, is sent as the auth query parameter on every call.
func NewRESTClient(base, token string, client *http.Client, log zerolog.Logger) *RESTClient {
	if client == nil {
		client = &http.Client{}
	}
	return &RESTClient{
		base:   strings.TrimRight(base, "/"),
		token:  token,
		client: client,
		log:    log,
	}
}

func (c *RESTClient) endpoint(path string) string {
	u := c.base + "/" + strings.Trim(path, "/") + ".json"
	if c.token != "" {
		u += "?auth=" + url.QueryEscape(c.token)
	}
	return u
}

func (c *RESTClient) SnapshotRead(ctx context.Context, path string) (Snapshot, error) {
	start := time.Now()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint(path), nil)
	if err != nil {
		return Snapshot{}, fmt.Errorf("build read request for %s: %w", path, err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Snapshot{}, fmt.Errorf("read %s: unexpected status %d", path, resp.StatusCode)
	}

	var value any
	if err := json.NewDecoder(resp.Body).Decode(&value); err != nil {
		return Snapshot{}, fmt.Errorf("decode %s: %w", path, err)
	}

	c.log.Debug().
		Str("path", path).
		Dur("latency", time.Since(start)).
		Msg("snapshot read")

	if value == nil {
		return Snapshot{}, nil
	}
	tree, ok := value.(map[string]any)
	if !ok {
		return Snapshot{}, fmt.Errorf("read %s: subtree is not an object", path)
	}
	return Snapshot{Exists: true, Value: tree}, nil
}

func (c *RESTClient) PartialWrite(ctx context.Context, path string, fields map[string]any) error {
	body, err := json.Marshal(fields)
	if err != nil {
		return fmt.Errorf("encode write for %s: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPatch, c.endpoint(path), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build write request for %s: %w", path, err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("write %s: unexpected status %d", path, resp.StatusCode)
	}

	c.log.Debug().Str("path", path).Msg("partial write")
	return nil
}
