package event

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingForwarder struct {
	forwarded []Event
	err       error
	closed    bool
}

func (f *recordingForwarder) Forward(ctx context.Context, evt Event) error {
	f.forwarded = append(f.forwarded, evt)
	return f.err
}

func (f *recordingForwarder) Close() error {
	f.closed = true
	return nil
}

type recordingWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *recordingWriter) WriteMessages(ctx context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *recordingWriter) Close() error { return nil }

func TestForwardingBus_DeliversLocallyThenForwards(t *testing.T) {
	local := NewMemoryBus()
	fwd := &recordingForwarder{}
	bus := NewForwardingBus(local, fwd)

	handled := 0
	bus.Subscribe(PunishmentApplied, func(ctx context.Context, evt Event) error {
		handled++
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), testEvent("p1")))
	require.NoError(t, bus.Publish(context.Background(), Event{Type: PunishmentApplied}))

	assert.Equal(t, 1, handled)
	assert.Len(t, fwd.forwarded, 2)

	require.NoError(t, bus.Close())
	assert.True(t, fwd.closed)
}

func TestForwardingBus_ForwardErrorSurfaces(t *testing.T) {
	fwd := &recordingForwarder{err: errors.New("broker down")}
	bus := NewForwardingBus(NewMemoryBus(), fwd)

	err := bus.Publish(context.Background(), testEvent("p1"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broker down")
}

func TestForwardingBus_NilForwarder(t *testing.T) {
	bus := NewForwardingBus(NewMemoryBus(), nil)
	assert.NoError(t, bus.Publish(context.Background(), testEvent("p1")))
	assert.NoError(t, bus.Close())
}

func TestSubject(t *testing.T) {
	assert.Equal(t, "moderation.punishment.applied", Subject("moderation", PunishmentApplied))
	assert.Equal(t, "standing.changed", Subject("", StandingChanged))
}

func TestKafkaMessage(t *testing.T) {
	now := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	msg, err := KafkaMessage(testEvent("p1"), now)
	require.NoError(t, err)

	assert.Equal(t, []byte("player-1"), msg.Key)
	assert.Equal(t, now, msg.Time)
	require.Len(t, msg.Headers, 2)
	assert.Equal(t, HeaderEventType, msg.Headers[0].Key)
	assert.Equal(t, string(PunishmentModified), string(msg.Headers[0].Value))

	var decoded Event
	require.NoError(t, json.Unmarshal(msg.Value, &decoded))
	assert.Equal(t, PunishmentModified, decoded.Type)
}

func TestKafkaForwarder_Forward(t *testing.T) {
	w := &recordingWriter{}
	f := &KafkaForwarder{writer: w}

	require.NoError(t, f.Forward(context.Background(), testEvent("p1")))
	require.Len(t, w.msgs, 1)

	w.err = errors.New("leader not available")
	err := f.Forward(context.Background(), testEvent("p2"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), string(PunishmentModified))
}

func TestNewKafkaForwarder_RequiresBrokers(t *testing.T) {
	_, err := NewKafkaForwarder(nil, "topic")
	assert.EqualError(t, err, ErrMsgNoKafkaBrokers)
}
