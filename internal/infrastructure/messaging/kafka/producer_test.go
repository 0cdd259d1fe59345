package kafka

import (
	"context"
	"encoding/json"
	"testing"

	segmentio "github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/laudo"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

type capturingWriter struct {
	messages []segmentio.Message
	err      error
	closed   bool
}

func (w *capturingWriter) WriteMessages(_ context.Context, msgs ...segmentio.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *capturingWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublishWritesKeyedMessage(t *testing.T) {
	w := &capturingWriter{}
	p := newProducerWithWriter(w, logging.NewNopLogger())

	err := p.Publish(context.Background(), TopicLaudoCreated, []byte("laudo-1"), []byte(`{"x":1}`))
	require.NoError(t, err)

	require.Len(t, w.messages, 1)
	assert.Equal(t, TopicLaudoCreated, w.messages[0].Topic)
	assert.Equal(t, []byte("laudo-1"), w.messages[0].Key)
	assert.Equal(t, int64(1), p.Sent())
}

func TestPublishValidation(t *testing.T) {
	p := newProducerWithWriter(&capturingWriter{}, logging.NewNopLogger())

	assert.Error(t, p.Publish(context.Background(), "", []byte("k"), []byte("v")))
	assert.Error(t, p.Publish(context.Background(), TopicLaudoCreated, []byte("k"), nil))
}

func TestPublishAfterClose(t *testing.T) {
	w := &capturingWriter{}
	p := newProducerWithWriter(w, logging.NewNopLogger())

	require.NoError(t, p.Close())
	assert.True(t, w.closed)

	err := p.Publish(context.Background(), TopicLaudoCreated, []byte("k"), []byte("v"))
	assert.ErrorIs(t, err, ErrProducerClosed)
}

func TestPublishFailureCounted(t *testing.T) {
	p := newProducerWithWriter(&capturingWriter{err: assert.AnError}, logging.NewNopLogger())

	err := p.Publish(context.Background(), TopicLaudoCreated, []byte("k"), []byte("v"))
	require.Error(t, err)
	assert.Equal(t, int64(1), p.Failed())
}

func TestNotifierLaudoCreatedEnvelope(t *testing.T) {
	w := &capturingWriter{}
	n := NewNotifier(newProducerWithWriter(w, logging.NewNopLogger()), logging.NewNopLogger())

	l := &laudo.Laudo{
		ID:     common.ID("laudo-1"),
		Code:   "L-2024-0001",
		Status: ltypes.StatusApproved,
		Context: laudo.SharedContext{
			ModelID:  "model-1",
			SectorID: "sec-1",
		},
		Tests: []*laudo.TestRecord{
			{Status: ltypes.StatusApproved},
		},
	}
	n.LaudoCreated(context.Background(), l)

	require.Len(t, w.messages, 1)
	assert.Equal(t, []byte("laudo-1"), w.messages[0].Key)

	var envelope EventEnvelope
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &envelope))
	assert.Equal(t, TopicLaudoCreated, envelope.EventType)
	assert.Equal(t, "1.0", envelope.SchemaVersion)
	assert.NotEmpty(t, envelope.EventID)

	var payload LaudoCreatedPayload
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, "L-2024-0001", payload.Code)
	assert.Equal(t, 1, payload.Total)
	assert.Equal(t, 1, payload.Approved)
}

func TestNotifierSwallowsPublishErrors(t *testing.T) {
	n := NewNotifier(newProducerWithWriter(&capturingWriter{err: assert.AnError}, logging.NewNopLogger()), logging.NewNopLogger())

	// Must not panic or propagate.
	n.LaudoStatusChanged(context.Background(), "laudo-1", "L-2024-0001",
		ltypes.StatusApproved, ltypes.StatusRejected)
}
