package schema_registry

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Registry provides an interface for interacting with a Confluent-compatible
// schema registry. It handles schema registration, retrieval, caching, and
// compatibility checking.
type Registry interface {
	// GetSchemaByID retrieves a schema definition by its registry ID.
	GetSchemaByID(id int) (string, error)

	// GetLatestSchema retrieves the latest version of a schema for a subject.
	GetLatestSchema(subject string) (*Metadata, error)

	// RegisterSchema registers a schema for a subject and returns its ID.
	// Registering an already-registered schema returns the existing ID.
	RegisterSchema(subject, definition string) (int, error)

	// CheckCompatibility checks a candidate schema against the latest
	// registered version of the subject. When the schema is incompatible the
	// returned violations describe each broken rule.
	CheckCompatibility(subject, definition string) (compatible bool, violations []string, err error)
}

// Observer receives notifications about registry traffic. Implementations
// must be safe for concurrent use; pkg/metrics provides a Prometheus-backed
// one.
type Observer interface {
	// ObserveLookup is called after every request to the registry.
	ObserveLookup(op string, err error)

	// ObserveCacheHit is called when a local cache answers instead of the
	// registry.
	ObserveCacheHit(op string)
}

// Metadata contains metadata about a registered schema.
type Metadata struct {
	ID      int    `json:"id"`
	Version int    `json:"version"`
	Schema  string `json:"schema"`
	Subject string `json:"subject"`
}

// Client is the default implementation of Registry that talks to the registry
// over HTTP.
//
// Schemas are cached by ID and registered IDs by subject+definition, so repeat
// lookups of the same schema never leave the process. Concurrent lookups for
// the same unresolved ID are collapsed into a single request; the fetch is
// idempotent, so duplicates racing past the cache are harmless either way.
type Client struct {
	url        string
	httpClient *http.Client

	schemaCache      map[int]string
	schemaCacheMutex sync.RWMutex

	idCache      map[string]int
	idCacheMutex sync.RWMutex

	lookups singleflight.Group

	observer Observer

	username string
	password string
}

// WithObserver attaches a traffic observer and returns the client for
// chaining. Call before the client is shared between goroutines.
func (c *Client) WithObserver(o Observer) *Client {
	c.observer = o
	return c
}

func (c *Client) observeLookup(op string, err error) {
	if c.observer != nil {
		c.observer.ObserveLookup(op, err)
	}
}

func (c *Client) observeCacheHit(op string) {
	if c.observer != nil {
		c.observer.ObserveCacheHit(op)
	}
}

// NewClient creates a new schema registry client.
func NewClient(cfg Config) (*Client, error) {
	if cfg.URL == "" {
		return nil, fmt.Errorf("schema registry URL is required")
	}

	if cfg.Timeout == 0 {
		cfg.Timeout = 10 * time.Second
	}

	return &Client{
		url: cfg.URL,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
		schemaCache: make(map[int]string),
		idCache:     make(map[string]int),
		username:    cfg.Username,
		password:    cfg.Password,
	}, nil
}

// GetSchemaByID retrieves a schema definition from the registry by its ID.
func (c *Client) GetSchemaByID(id int) (string, error) {
	c.schemaCacheMutex.RLock()
	if definition, ok := c.schemaCache[id]; ok {
		c.schemaCacheMutex.RUnlock()
		c.observeCacheHit("lookup")
		return definition, nil
	}
	c.schemaCacheMutex.RUnlock()

	definition, err, _ := c.lookups.Do(fmt.Sprintf("id:%d", id), func() (any, error) {
		return c.fetchSchemaByID(id)
	})
	if err != nil {
		return "", err
	}
	return definition.(string), nil
}

func (c *Client) fetchSchemaByID(id int) (string, error) {
	var result struct {
		Schema string `json:"schema"`
	}
	url := fmt.Sprintf("%s/schemas/ids/%d", c.url, id)
	err := c.get("lookup", url, &result)
	c.observeLookup("lookup", err)
	if err != nil {
		return "", err
	}

	c.schemaCacheMutex.Lock()
	c.schemaCache[id] = result.Schema
	c.schemaCacheMutex.Unlock()

	return result.Schema, nil
}

// GetLatestSchema retrieves the latest version of a schema for a subject.
func (c *Client) GetLatestSchema(subject string) (*Metadata, error) {
	var metadata Metadata
	url := fmt.Sprintf("%s/subjects/%s/versions/latest", c.url, subject)
	err := c.get("lookup", url, &metadata)
	c.observeLookup("lookup", err)
	if err != nil {
		return nil, err
	}
	metadata.Subject = subject

	c.schemaCacheMutex.Lock()
	c.schemaCache[metadata.ID] = metadata.Schema
	c.schemaCacheMutex.Unlock()

	return &metadata, nil
}

// RegisterSchema registers a schema definition with the registry and returns
// its ID. The registry deduplicates: registering an identical definition for
// the same subject returns the previously assigned ID.
func (c *Client) RegisterSchema(subject, definition string) (int, error) {
	cacheKey := subject + ":" + definition
	c.idCacheMutex.RLock()
	if id, ok := c.idCache[cacheKey]; ok {
		c.idCacheMutex.RUnlock()
		c.observeCacheHit("register")
		return id, nil
	}
	c.idCacheMutex.RUnlock()

	var result struct {
		ID int `json:"id"`
	}
	url := fmt.Sprintf("%s/subjects/%s/versions", c.url, subject)
	err := c.post("register", url, map[string]any{"schema": definition}, &result)
	c.observeLookup("register", err)
	if err != nil {
		return 0, err
	}

	c.idCacheMutex.Lock()
	c.idCache[cacheKey] = result.ID
	c.idCacheMutex.Unlock()

	c.schemaCacheMutex.Lock()
	c.schemaCache[result.ID] = definition
	c.schemaCacheMutex.Unlock()

	return result.ID, nil
}

// CheckCompatibility checks a candidate schema against the latest registered
// version of the subject.
func (c *Client) CheckCompatibility(subject, definition string) (bool, []string, error) {
	var result struct {
		IsCompatible bool     `json:"is_compatible"`
		Messages     []string `json:"messages"`
	}
	url := fmt.Sprintf("%s/compatibility/subjects/%s/versions/latest?verbose=true", c.url, subject)
	err := c.post("compatibility", url, map[string]any{"schema": definition}, &result)
	c.observeLookup("compatibility", err)
	if err != nil {
		return false, nil, err
	}
	return result.IsCompatible, result.Messages, nil
}

func (c *Client) get(op, url string, out any) error {
	req, err := http.NewRequest(http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", contentType)
	return c.do(op, req, out)
}

func (c *Client) post(op, url string, payload, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	return c.do(op, req, out)
}

const contentType = "application/vnd.schemaregistry.v1+json"

func (c *Client) do(op string, req *http.Request, out any) error {
	if c.username != "" {
		req.SetBasicAuth(c.username, c.password)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &RegistryUnavailableError{Op: op, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusInternalServerError {
		body, _ := io.ReadAll(resp.Body)
		return &RegistryUnavailableError{
			Op:  op,
			Err: fmt.Errorf("schema registry returned status %d: %s", resp.StatusCode, string(body)),
		}
	}
	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("schema registry returned status %d: %s", resp.StatusCode, string(body))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}
