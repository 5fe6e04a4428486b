package event

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/osse101/modstanding/internal/logger"
)

// Forwarder ships events to an external transport
type Forwarder interface {
	Forward(ctx context.Context, event Event) error
	Close() error
}

// ForwardingBus delivers events to local subscribers and then to an external transport.
// A forward failure is returned so the ResilientPublisher retries the event.
type ForwardingBus struct {
	local     Bus
	forwarder Forwarder
}

// NewForwardingBus wraps a local bus with a transport forwarder
func NewForwardingBus(local Bus, forwarder Forwarder) *ForwardingBus {
	return &ForwardingBus{local: local, forwarder: forwarder}
}

// Publish delivers locally, then forwards. Both errors are reported.
func (b *ForwardingBus) Publish(ctx context.Context, event Event) error {
	localErr := b.local.Publish(ctx, event)

	var fwdErr error
	if b.forwarder != nil {
		if fwdErr = b.forwarder.Forward(ctx, event); fwdErr != nil {
			logger.FromContext(ctx).Warn(LogMsgForwardFailed, "event_type", event.Type, "error", fwdErr)
		}
	}

	return errors.Join(localErr, fwdErr)
}

// Subscribe registers a local handler
func (b *ForwardingBus) Subscribe(eventType Type, handler Handler) {
	b.local.Subscribe(eventType, handler)
}

// Close closes the underlying forwarder
func (b *ForwardingBus) Close() error {
	if b.forwarder == nil {
		return nil
	}
	err := b.forwarder.Close()
	logger.FromContext(context.Background()).Info(LogMsgForwarderClosed)
	return err
}

func encode(event Event) ([]byte, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgEncodeEvent, event.Type, err)
	}
	return data, nil
}
