package ledger

import (
	"github.com/sirupsen/logrus"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/utils"
)

// LogSink writes ledger appends to the info log. Used when no broker is configured.
type LogSink struct{}

func (LogSink) AppendFinancial(tx models.FinancialTransaction) {
	utils.InfoLogger.WithFields(logrus.Fields{
		"id":     tx.ID,
		"type":   tx.Type,
		"origin": tx.Origin,
		"amount": tx.Amount.StringFixed(2),
		"status": tx.Status,
		"due":    tx.DueDate.Format("2006-01-02"),
	}).Info(tx.Description)
}

func (LogSink) AppendStock(m models.StockMovement) {
	utils.InfoLogger.WithFields(logrus.Fields{
		"product":   m.ProductID,
		"direction": m.Direction,
		"quantity":  m.Quantity,
		"origin":    m.OriginID,
	}).Info("stock movement")
}
