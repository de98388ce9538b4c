package ledger

import (
	"context"
	"encoding/json"
	"sync"
	"testing"

	"github.com/segmentio/kafka-go"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/tab-pos/models"
)

type published struct {
	key, value []byte
	headers    []kafka.Header
}

type fakePublisher struct{ msgs []published }

func (f *fakePublisher) Publish(key, value []byte, headers ...kafka.Header) bool {
	f.msgs = append(f.msgs, published{key, value, headers})
	return true
}

func TestKafkaSinkFinancialKeys(t *testing.T) {
	fin, stock := &fakePublisher{}, &fakePublisher{}
	sink := &KafkaSink{ServiceName: "tab-pos", Financial: fin, Stock: stock}

	revenue := models.FinancialTransaction{ID: "rev-1", Type: models.TransactionRevenue, Amount: decimal.RequireFromString("25.00")}
	fee := models.FinancialTransaction{ID: "fee-1", Type: models.TransactionExpense, RelatedID: "rev-1"}
	sink.AppendFinancial(revenue)
	sink.AppendFinancial(fee)

	require.Len(t, fin.msgs, 2)
	assert.Equal(t, "rev-1", string(fin.msgs[0].key))
	assert.Equal(t, "rev-1", string(fin.msgs[1].key), "fee shares the revenue partition")
	assert.Equal(t, []byte(EventFinancialAppended), fin.msgs[0].headers[0].Value)

	var env Envelope
	require.NoError(t, json.Unmarshal(fin.msgs[0].value, &env))
	assert.Equal(t, EventFinancialAppended, env.EventType)
	assert.Equal(t, "tab-pos", env.Producer)
	assert.NotEmpty(t, env.EventID)

	got, err := UnwrapPayload[models.FinancialTransaction](env)
	require.NoError(t, err)
	assert.Equal(t, "rev-1", got.ID)
	assert.True(t, got.Amount.Equal(revenue.Amount))
	assert.Empty(t, stock.msgs)
}

func TestKafkaSinkStockKeyedByProduct(t *testing.T) {
	stock := &fakePublisher{}
	sink := &KafkaSink{ServiceName: "tab-pos", Financial: &fakePublisher{}, Stock: stock}

	sink.AppendStock(models.StockMovement{ID: "m1", ProductID: "p-1", OriginID: "rev-1", Quantity: 2})
	require.Len(t, stock.msgs, 1)
	assert.Equal(t, "p-1", string(stock.msgs[0].key))

	var env Envelope
	require.NoError(t, json.Unmarshal(stock.msgs[0].value, &env))
	assert.Equal(t, "rev-1", env.CorrelationID)
}

type fakeWriter struct {
	mu     sync.Mutex
	msgs   []kafka.Message
	closed bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.msgs = append(w.msgs, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.closed = true
	return nil
}

func TestProducerDropsWhenFullAndFlushesOnClose(t *testing.T) {
	w := &fakeWriter{}
	p := newProducer(w, TopicFinancial, 2)

	assert.True(t, p.Publish([]byte("a"), []byte("1")))
	assert.True(t, p.Publish([]byte("b"), []byte("2")))
	assert.False(t, p.Publish([]byte("c"), []byte("3")))

	p.Start()
	p.Close()
	p.WaitClosed()

	require.Len(t, w.msgs, 2)
	assert.Equal(t, "a", string(w.msgs[0].Key))
	assert.Equal(t, "b", string(w.msgs[1].Key))
	assert.True(t, w.closed)
}
