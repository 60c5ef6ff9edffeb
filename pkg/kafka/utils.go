package kafka

import (
	"crypto/tls"
	"crypto/x509"
	"fmt"
	"os"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/segmentio/kafka-go/sasl"
	"github.com/segmentio/kafka-go/sasl/plain"
	"github.com/segmentio/kafka-go/sasl/scram"

	"github.com/martourez21/railstream-schema-library/pkg/logger"
)

// createErrorLogger adapts the structured logger to segmentio's logging hook.
func createErrorLogger(log *logger.Logger) segmentio.LoggerFunc {
	return segmentio.LoggerFunc(func(msg string, args ...interface{}) {
		log.Error("kafka internal error", nil, map[string]interface{}{
			"error": fmt.Sprintf(msg, args...),
		})
	})
}

func createWriter(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism, log *logger.Logger) *segmentio.Writer {
	writerConfig := segmentio.WriterConfig{
		Brokers:      cfg.Brokers,
		Topic:        cfg.Destination,
		Balancer:     &segmentio.LeastBytes{},
		MaxAttempts:  cfg.MaxAttempts,
		WriteTimeout: cfg.WriteTimeout,
		RequiredAcks: cfg.RequiredAcks,
		ErrorLogger:  createErrorLogger(log),
	}

	if cfg.Async {
		writerConfig.Async = true
		writerConfig.BatchSize = cfg.BatchSize
		writerConfig.BatchTimeout = cfg.BatchTimeout
	}

	writerConfig.Dialer = &segmentio.Dialer{
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}

	return segmentio.NewWriter(writerConfig)
}

func createReader(cfg Config, tlsConfig *tls.Config, mechanism sasl.Mechanism, log *logger.Logger) *segmentio.Reader {
	readerConfig := segmentio.ReaderConfig{
		Brokers:        cfg.Brokers,
		Topic:          cfg.Destination,
		GroupID:        cfg.GroupID,
		MinBytes:       cfg.MinBytes,
		MaxBytes:       cfg.MaxBytes,
		MaxWait:        cfg.MaxWait,
		CommitInterval: cfg.CommitInterval,
		ErrorLogger:    createErrorLogger(log),
	}

	readerConfig.Dialer = &segmentio.Dialer{
		TLS:           tlsConfig,
		SASLMechanism: mechanism,
	}

	return segmentio.NewReader(readerConfig)
}

func createTLSConfig(cfg TLSConfig) (*tls.Config, error) {
	tlsConfig := &tls.Config{
		InsecureSkipVerify: cfg.InsecureSkipVerify,
	}

	if cfg.CACertPath != "" {
		caCert, err := os.ReadFile(cfg.CACertPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CA cert: %w", err)
		}
		caCertPool := x509.NewCertPool()
		if !caCertPool.AppendCertsFromPEM(caCert) {
			return nil, fmt.Errorf("failed to parse CA cert")
		}
		tlsConfig.RootCAs = caCertPool
	}

	if cfg.ClientCertPath != "" && cfg.ClientKeyPath != "" {
		cert, err := tls.LoadX509KeyPair(cfg.ClientCertPath, cfg.ClientKeyPath)
		if err != nil {
			return nil, fmt.Errorf("failed to load client cert: %w", err)
		}
		tlsConfig.Certificates = []tls.Certificate{cert}
	}

	return tlsConfig, nil
}

func createSASLMechanism(cfg SASLConfig) (sasl.Mechanism, error) {
	switch cfg.Mechanism {
	case "PLAIN":
		return plain.Mechanism{
			Username: cfg.Username,
			Password: cfg.Password,
		}, nil
	case "SCRAM-SHA-256":
		return scram.Mechanism(scram.SHA256, cfg.Username, cfg.Password)
	case "SCRAM-SHA-512":
		return scram.Mechanism(scram.SHA512, cfg.Username, cfg.Password)
	default:
		return nil, fmt.Errorf("unsupported SASL mechanism: %s", cfg.Mechanism)
	}
}
