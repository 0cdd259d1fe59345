package kafka

import (
	"context"
	"encoding/json"
	"time"

	"github.com/CaiooFerreiraa/lab-system-sub001/internal/domain/laudo"
	"github.com/CaiooFerreiraa/lab-system-sub001/internal/infrastructure/monitoring/logging"
	"github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/common"
	ltypes "github.com/CaiooFerreiraa/lab-system-sub001/pkg/types/laudo"
)

// Notifier publishes laudo lifecycle events through the Producer.  It
// implements the report service's Notifier port: failures are logged and
// swallowed so event-bus trouble never fails a registration.
type Notifier struct {
	producer *Producer
	logger   logging.Logger
}

// NewNotifier wires a Notifier over a connected Producer.
func NewNotifier(producer *Producer, logger logging.Logger) *Notifier {
	return &Notifier{producer: producer, logger: logger}
}

// LaudoCreated publishes a laudo.created event.
func (n *Notifier) LaudoCreated(ctx context.Context, l *laudo.Laudo) {
	total, approved, rejected := l.Counts()
	n.publish(ctx, TopicLaudoCreated, string(l.ID), LaudoCreatedPayload{
		LaudoID:   string(l.ID),
		Code:      l.Code,
		Status:    l.Status,
		ModelID:   string(l.Context.ModelID),
		SectorID:  string(l.Context.SectorID),
		Total:     total,
		Approved:  approved,
		Rejected:  rejected,
		CreatedAt: l.CreatedAt,
	})
}

// LaudoStatusChanged publishes a laudo.status_changed event.
func (n *Notifier) LaudoStatusChanged(ctx context.Context, laudoID common.ID, code string, from, to ltypes.Status) {
	n.publish(ctx, TopicLaudoStatusChanged, string(laudoID), LaudoStatusChangedPayload{
		LaudoID:   string(laudoID),
		Code:      code,
		From:      from,
		To:        to,
		ChangedAt: time.Now().UTC(),
	})
}

func (n *Notifier) publish(ctx context.Context, topic, key string, payload interface{}) {
	envelope, err := NewEnvelope(topic, payload)
	if err != nil {
		n.logger.Error("failed to build event envelope",
			logging.Err(err), logging.String("topic", topic))
		return
	}

	value, err := json.Marshal(envelope)
	if err != nil {
		n.logger.Error("failed to marshal event envelope",
			logging.Err(err), logging.String("topic", topic))
		return
	}

	if err := n.producer.Publish(ctx, topic, []byte(key), value); err != nil {
		n.logger.Warn("event publish failed",
			logging.Err(err),
			logging.String("topic", topic),
			logging.String("key", key))
	}
}
