package ledger

import (
	"encoding/json"
	"time"
)

const (
	EventFinancialAppended = "FinancialTransactionAppended"
	EventStockAppended     = "StockMovementAppended"
)

const (
	TopicFinancial = "ledger.financial"
	TopicStock     = "ledger.stock"
)

// Envelope wraps every ledger event published to Kafka.
type Envelope struct {
	EventID       string          `json:"event_id"`
	EventType     string          `json:"event_type"`
	EventVersion  int             `json:"event_version"`
	OccurredAt    time.Time       `json:"occurred_at"`
	Producer      string          `json:"producer"`
	CorrelationID string          `json:"correlation_id,omitempty"`
	Payload       json.RawMessage `json:"payload"`
}

func MustMarshal(v any) []byte {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return b
}

// UnwrapPayload decodes the payload of an envelope into T.
func UnwrapPayload[T any](env Envelope) (T, error) {
	var t T
	err := json.Unmarshal(env.Payload, &t)
	return t, err
}
