package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/tab-pos/models"
)

func TestLedgerSummaryAcrossStatuses(t *testing.T) {
	e, _ := newTestEngine(t, models.ModeTable, 2)
	s := e.LedgerSummary()
	assertMoney(t, "0.00", s.Balance)
	assert.Zero(t, s.Count)

	seat(t, e, "tab-1", 2, "p-ten", "p-ten", "p-five")
	_, err := e.Finalize(CheckoutRequest{TabID: "tab-1", MethodID: methodCredit})
	require.NoError(t, err)
	seat(t, e, "tab-2", 1, "p-ten")
	_, err = e.Finalize(CheckoutRequest{TabID: "tab-2", MethodID: methodCash})
	require.NoError(t, err)

	s = e.LedgerSummary()
	assert.Equal(t, 3, s.Count)
	assertMoney(t, "34.13", s.Revenue)
	assertMoney(t, "0.88", s.Expenses)
	assertMoney(t, "33.25", s.Balance)
	assertMoney(t, "24.13", s.Receivable)
}

func TestMarkPaidSettlesPendingRevenue(t *testing.T) {
	e, rec := newTestEngine(t, models.ModeTable, 2)
	seat(t, e, "tab-1", 2, "p-ten", "p-ten", "p-five")
	settled, err := e.Finalize(CheckoutRequest{TabID: "tab-1", MethodID: methodCredit})
	require.NoError(t, err)
	require.Equal(t, models.TransactionPending, settled.Revenue.Status)
	snapsBefore := len(rec.snaps)

	tx, err := e.MarkPaid(settled.Revenue.ID)
	require.NoError(t, err)
	assert.Equal(t, models.TransactionPaid, tx.Status)
	assertMoney(t, "24.13", tx.Amount)

	require.Len(t, rec.snaps, snapsBefore+1)
	last := rec.snaps[len(rec.snaps)-1]
	assert.True(t, last.LedgerDirty)
	assert.False(t, last.TabsDirty)
	assert.Equal(t, models.TransactionPaid, last.Financial[0].Status)

	assertMoney(t, "0.00", e.LedgerSummary().Receivable)
	assertMoney(t, "24.13", e.LedgerSummary().Revenue, "paying out moves nothing out of revenue")
}

func TestMarkPaidRefusals(t *testing.T) {
	e, rec := newTestEngine(t, models.ModeTable, 2)
	seat(t, e, "tab-1", 2, "p-ten")
	settled, err := e.Finalize(CheckoutRequest{TabID: "tab-1", MethodID: methodCredit})
	require.NoError(t, err)
	require.NotNil(t, settled.FeeExpense)

	_, err = e.MarkPaid("nope")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = e.MarkPaid(settled.FeeExpense.ID)
	assert.True(t, IsPrecondition(err), "expenses are not receivable")

	_, err = e.MarkPaid(settled.Revenue.ID)
	require.NoError(t, err)
	snaps := len(rec.snaps)
	_, err = e.MarkPaid(settled.Revenue.ID)
	assert.True(t, IsPrecondition(err), "a paid row cannot be paid twice")
	assert.Len(t, rec.snaps, snaps, "a refusal persists nothing")
}
