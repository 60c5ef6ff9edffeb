package kafka

import (
	"context"
	"crypto/tls"
	"fmt"
	"sync"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"

	"github.com/martourez21/railstream-schema-library/pkg/logger"
)

// Client is a Kafka producer or consumer bound to one messaging destination.
//
// Client moves opaque wire bytes; pairing bytes with a record type is the job
// of the contracts serdes. A producing client publishes with Publish, a
// consuming client reads with Fetch and acknowledges with Commit.
type Client struct {
	cfg Config
	log *logger.Logger

	writer *segmentio.Writer
	reader *segmentio.Reader

	mu     sync.Mutex
	closed bool
}

// NewClient creates a client for the configured destination. The connection is
// established lazily on first use, as segmentio dials per batch.
func NewClient(cfg Config, log *logger.Logger) (*Client, error) {
	if len(cfg.Brokers) == 0 {
		return nil, fmt.Errorf("kafka brokers are required")
	}
	if cfg.Destination == "" {
		return nil, fmt.Errorf("kafka destination is required")
	}
	if cfg.IsConsumer && cfg.GroupID == "" {
		return nil, fmt.Errorf("kafka group id is required for consumers")
	}
	cfg = cfg.withDefaults()

	var tlsConfig *tls.Config
	var err error
	if cfg.TLS.Enabled {
		tlsConfig, err = createTLSConfig(cfg.TLS)
		if err != nil {
			return nil, fmt.Errorf("failed to create TLS config: %w", err)
		}
	}

	var mechanism sasl.Mechanism
	if cfg.SASL.Enabled {
		mechanism, err = createSASLMechanism(cfg.SASL)
		if err != nil {
			return nil, fmt.Errorf("failed to create SASL mechanism: %w", err)
		}
	}

	c := &Client{cfg: cfg, log: log}
	if cfg.IsConsumer {
		c.reader = createReader(cfg, tlsConfig, mechanism, log)
		log.Info("kafka consumer initialized", nil, map[string]interface{}{
			"destination": cfg.Destination,
			"group_id":    cfg.GroupID,
		})
	} else {
		c.writer = createWriter(cfg, tlsConfig, mechanism, log)
		log.Info("kafka producer initialized", nil, map[string]interface{}{
			"destination": cfg.Destination,
		})
	}
	return c, nil
}

// Publish writes one message to the bound destination. The key selects the
// partition; use a record's equipment or sensor identifier so related
// messages stay ordered.
func (c *Client) Publish(ctx context.Context, key, value []byte) error {
	if c.writer == nil {
		return fmt.Errorf("client for %q is not a producer", c.cfg.Destination)
	}
	return c.writer.WriteMessages(ctx, segmentio.Message{Key: key, Value: value})
}

// Fetch returns the next message from the bound destination, blocking until
// one arrives or ctx is done. The message is not committed; call Commit after
// processing succeeds.
func (c *Client) Fetch(ctx context.Context) (segmentio.Message, error) {
	if c.reader == nil {
		return segmentio.Message{}, fmt.Errorf("client for %q is not a consumer", c.cfg.Destination)
	}
	return c.reader.FetchMessage(ctx)
}

// Commit marks messages as processed within the consumer group.
func (c *Client) Commit(ctx context.Context, msgs ...segmentio.Message) error {
	if c.reader == nil {
		return fmt.Errorf("client for %q is not a consumer", c.cfg.Destination)
	}
	return c.reader.CommitMessages(ctx, msgs...)
}

// Destination returns the topic this client is bound to.
func (c *Client) Destination() string {
	return c.cfg.Destination
}

// Close flushes and closes the underlying writer or reader. It is safe to
// call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true

	if c.writer != nil {
		return c.writer.Close()
	}
	if c.reader != nil {
		return c.reader.Close()
	}
	return nil
}
