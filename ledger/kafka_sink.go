package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/segmentio/kafka-go"
	"github.com/yeremiapane/tab-pos/models"
)

type publisher interface {
	Publish(key, value []byte, headers ...kafka.Header) bool
}

// KafkaSink forwards ledger appends to the financial and stock topics.
// Financial events are keyed by revenue id so a sale and its fee stay ordered.
type KafkaSink struct {
	ServiceName string
	Financial   publisher
	Stock       publisher
}

func NewKafkaSink(service string, financial, stock *Producer) *KafkaSink {
	return &KafkaSink{ServiceName: service, Financial: financial, Stock: stock}
}

func (s *KafkaSink) AppendFinancial(tx models.FinancialTransaction) {
	key := tx.ID
	if tx.RelatedID != "" {
		key = tx.RelatedID
	}
	s.Financial.Publish([]byte(key), s.envelope(EventFinancialAppended, key, tx),
		kafka.Header{Key: "x-event-type", Value: []byte(EventFinancialAppended)},
		kafka.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *KafkaSink) AppendStock(m models.StockMovement) {
	s.Stock.Publish([]byte(m.ProductID), s.envelope(EventStockAppended, m.OriginID, m),
		kafka.Header{Key: "x-event-type", Value: []byte(EventStockAppended)},
		kafka.Header{Key: "x-event-version", Value: []byte("1")},
	)
}

func (s *KafkaSink) envelope(eventType, correlation string, payload any) []byte {
	return MustMarshal(Envelope{
		EventID:       uuid.NewString(),
		EventType:     eventType,
		EventVersion:  1,
		OccurredAt:    time.Now().UTC(),
		Producer:      s.ServiceName,
		CorrelationID: correlation,
		Payload:       MustMarshal(payload),
	})
}
