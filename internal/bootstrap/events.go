package bootstrap

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/osse101/modstanding/internal/config"
	"github.com/osse101/modstanding/internal/event"
)

// EventSystem is the wired event plumbing. Bus is for subscribing;
// Publisher is what services publish through.
type EventSystem struct {
	Bus       event.Bus
	Publisher *event.ResilientPublisher
	Transport io.Closer // nil for the in-memory transport
}

// InitializeEventSystem creates the local bus, wraps it with the configured
// external transport and puts a resilient publisher in front of both.
func InitializeEventSystem(cfg *config.Config) (*EventSystem, error) {
	maxRetries := cfg.EventMaxRetries
	if maxRetries == 0 {
		maxRetries = EventDefaultMaxRetries
	}

	retryDelay := cfg.EventRetryDelay
	if retryDelay == 0 {
		retryDelay = EventDefaultRetryDelay
	}

	deadLetterPath := cfg.DeadLetterPath
	if deadLetterPath == "" {
		deadLetterPath = EventDefaultDeadLetterPath
	}

	if err := os.MkdirAll(filepath.Dir(deadLetterPath), DirPermission); err != nil {
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateDeadLetterDir, err)
	}

	forwarder, err := newForwarder(cfg)
	if err != nil {
		return nil, err
	}

	var bus event.Bus = event.NewMemoryBus()
	var transport io.Closer
	if forwarder != nil {
		fb := event.NewForwardingBus(bus, forwarder)
		bus, transport = fb, fb
	}

	publisher, err := event.NewResilientPublisher(bus, maxRetries, retryDelay, deadLetterPath)
	if err != nil {
		if transport != nil {
			_ = transport.Close()
		}
		return nil, fmt.Errorf("%s: %w", ErrMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"transport", cfg.EventTransport,
		"max_retries", maxRetries,
		"retry_delay", retryDelay,
		"deadletter_path", deadLetterPath)

	return &EventSystem{Bus: bus, Publisher: publisher, Transport: transport}, nil
}

// newForwarder returns nil for the in-memory transport
func newForwarder(cfg *config.Config) (event.Forwarder, error) {
	switch cfg.EventTransport {
	case "", config.EventTransportMemory:
		return nil, nil
	case config.EventTransportNATS:
		f, err := event.NewNATSForwarder(cfg.NATSURL, cfg.NATSSubjectPrefix, NATSClientName)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgFailedCreateForwarder+": %w", cfg.EventTransport, err)
		}
		return f, nil
	case config.EventTransportKafka:
		f, err := event.NewKafkaForwarder(cfg.KafkaBrokers, cfg.KafkaTopic)
		if err != nil {
			return nil, fmt.Errorf(ErrMsgFailedCreateForwarder+": %w", cfg.EventTransport, err)
		}
		return f, nil
	default:
		return nil, fmt.Errorf(ErrMsgUnknownTransport, cfg.EventTransport)
	}
}
