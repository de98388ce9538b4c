package services

import (
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/tab-pos/models"
)

// LedgerSummary totals the whole financial ledger regardless of status. Receivable is
// the part of Revenue still pending, card sales waiting on their due date.
type LedgerSummary struct {
	Revenue    decimal.Decimal `json:"revenue"`
	Expenses   decimal.Decimal `json:"expenses"`
	Balance    decimal.Decimal `json:"balance"`
	Receivable decimal.Decimal `json:"receivable"`
	Count      int             `json:"count"`
}

func summarize(rows []models.FinancialTransaction) LedgerSummary {
	s := LedgerSummary{Revenue: decimal.Zero, Expenses: decimal.Zero, Receivable: decimal.Zero}
	for _, tx := range rows {
		switch tx.Type {
		case models.TransactionRevenue:
			s.Revenue = s.Revenue.Add(tx.Amount)
			if tx.Status == models.TransactionPending {
				s.Receivable = s.Receivable.Add(tx.Amount)
			}
		case models.TransactionExpense:
			s.Expenses = s.Expenses.Add(tx.Amount)
		}
	}
	s.Balance = s.Revenue.Sub(s.Expenses)
	s.Count = len(rows)
	return s
}

func (e *Engine) LedgerSummary() LedgerSummary {
	e.mu.Lock()
	defer e.mu.Unlock()
	return summarize(e.financial)
}

// MarkPaid settles a pending revenue row once the acquirer has paid it out. Expense rows
// and rows already paid are refused.
func (e *Engine) MarkPaid(txID string) (models.FinancialTransaction, error) {
	e.mu.Lock()
	i := -1
	for k := range e.financial {
		if e.financial[k].ID == txID {
			i = k
			break
		}
	}
	if i < 0 {
		e.mu.Unlock()
		return models.FinancialTransaction{}, notFound("transaction", txID)
	}
	tx := &e.financial[i]
	if tx.Type != models.TransactionRevenue {
		e.mu.Unlock()
		return models.FinancialTransaction{}, preconditionf("transaction %s is not revenue", txID)
	}
	if tx.Status != models.TransactionPending {
		e.mu.Unlock()
		return models.FinancialTransaction{}, preconditionf("transaction %s is already %s", txID, tx.Status)
	}
	tx.Status = models.TransactionPaid
	out := *tx
	fx := e.capture(false, true)
	e.mu.Unlock()
	e.dispatch(fx)
	return out, nil
}
