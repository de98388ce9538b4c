package ledger

import (
	"context"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/utils"
)

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// Producer buffers messages for one topic and writes them from a single goroutine.
type Producer struct {
	topic   string
	w       messageWriter
	inbox   chan kafka.Message
	closeCh chan struct{}
}

func NewProducer(brokers []string, topic string, buf int) *Producer {
	return newProducer(&kafka.Writer{
		Addr:         kafka.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafka.Hash{},
		RequiredAcks: kafka.RequireAll,
	}, topic, buf)
}

func newProducer(w messageWriter, topic string, buf int) *Producer {
	return &Producer{
		topic:   topic,
		w:       w,
		inbox:   make(chan kafka.Message, buf),
		closeCh: make(chan struct{}),
	}
}

// Start runs the write loop until Close; remaining messages are flushed first.
func (p *Producer) Start() {
	go func() {
		defer close(p.closeCh)
		for m := range p.inbox {
			if err := p.w.WriteMessages(context.Background(), m); err != nil {
				utils.ErrorLogger.WithFields(logrus.Fields{
					"topic": p.topic,
					"key":   string(m.Key),
				}).WithError(err).Error("error writing ledger event")
			}
		}
		if err := p.w.Close(); err != nil {
			utils.ErrorLogger.WithField("topic", p.topic).WithError(err).Error("error closing writer")
		}
	}()
}

// Publish never blocks. A full buffer drops the message and logs it.
func (p *Producer) Publish(key, value []byte, headers ...kafka.Header) bool {
	select {
	case p.inbox <- kafka.Message{Key: key, Value: value, Time: time.Now(), Headers: headers}:
		return true
	default:
		utils.ErrorLogger.WithFields(logrus.Fields{
			"topic": p.topic,
			"key":   string(key),
		}).Error("ledger buffer full, event dropped")
		return false
	}
}

func (p *Producer) Close() { close(p.inbox) }

func (p *Producer) WaitClosed() { <-p.closeCh }
