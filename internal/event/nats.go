package event

import (
	"context"
	"fmt"

	"github.com/nats-io/nats.go"

	"github.com/osse101/modstanding/internal/logger"
)

// NATSForwarder publishes events on "<prefix>.<event type>" subjects
type NATSForwarder struct {
	conn   *nats.Conn
	prefix string
}

// NewNATSForwarder connects to the NATS server at url
func NewNATSForwarder(url, prefix, clientName string) (*NATSForwarder, error) {
	conn, err := nats.Connect(url,
		nats.Name(clientName),
		nats.Timeout(NATSConnectTimeout),
		nats.ReconnectWait(NATSReconnectWait),
		nats.MaxReconnects(-1),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.FromContext(context.Background()).Warn(LogMsgNATSDisconnected, "error", err)
		}),
		nats.ReconnectHandler(func(c *nats.Conn) {
			logger.FromContext(context.Background()).Info(LogMsgNATSReconnected, "url", c.ConnectedUrl())
		}),
	)
	if err != nil {
		return nil, fmt.Errorf(ErrMsgConnectNATS, url, err)
	}
	return &NATSForwarder{conn: conn, prefix: prefix}, nil
}

// Subject returns the subject an event type is published on
func (f *NATSForwarder) Subject(t Type) string {
	return Subject(f.prefix, t)
}

// Subject joins a subject prefix and an event type
func Subject(prefix string, t Type) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}

// Forward publishes the event and flushes so broker-side failures surface to the retry loop
func (f *NATSForwarder) Forward(ctx context.Context, event Event) error {
	data, err := encode(event)
	if err != nil {
		return err
	}

	msg := nats.NewMsg(f.Subject(event.Type))
	msg.Data = data
	msg.Header.Set(HeaderEventType, string(event.Type))
	msg.Header.Set(HeaderSchemaVersion, event.Version)

	if err := f.conn.PublishMsg(msg); err != nil {
		return fmt.Errorf(ErrMsgPublishNATS, event.Type, err)
	}
	if err := f.conn.FlushWithContext(ctx); err != nil {
		return fmt.Errorf(ErrMsgPublishNATS, event.Type, err)
	}
	return nil
}

// Close drains pending messages and closes the connection
func (f *NATSForwarder) Close() error {
	return f.conn.Drain()
}
