package events

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emprendevoz/emprende-api/internal/domain/entity"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func quietLogger() *logrus.Logger {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return l
}

func TestPublish_WritesEnvelope(t *testing.T) {
	w := &fakeWriter{}
	NewKafkaPublisher(w, quietLogger()).Publish(context.Background(), entity.EventTransactionCreated, "u1", map[string]any{"amount": 10})

	require.Len(t, w.msgs, 1)
	msg := w.msgs[0]
	assert.Equal(t, "u1", string(msg.Key))
	assert.Equal(t, "type", msg.Headers[0].Key)
	assert.Equal(t, entity.EventTransactionCreated, string(msg.Headers[0].Value))

	var env Envelope
	require.NoError(t, json.Unmarshal(msg.Value, &env))
	assert.Equal(t, entity.EventTransactionCreated, env.Type)
	assert.Equal(t, "u1", env.UserID)
	assert.False(t, env.OccurredAt.IsZero())
}

func TestPublish_NilWriterAndErrorsAreSwallowed(t *testing.T) {
	assert.NotPanics(t, func() {
		NewKafkaPublisher(nil, quietLogger()).Publish(context.Background(), entity.EventBookingCreated, "u1", nil)
		var p *KafkaPublisher
		p.Publish(context.Background(), entity.EventBookingCreated, "u1", nil)
		NewKafkaPublisher(&fakeWriter{err: errors.New("broker down")}, quietLogger()).Publish(context.Background(), entity.EventBookingCreated, "u1", nil)
	})
}
