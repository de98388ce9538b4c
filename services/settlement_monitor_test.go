package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/tab-pos/models"
)

func TestSettlementMonitorCounts(t *testing.T) {
	monitor := NewSettlementMonitor()
	e, _ := newTestEngine(t, models.ModeTable, 3, func(o *Options) {
		o.Notifiers = append(o.Notifiers, monitor)
	})
	tab := seat(t, e, "tab-1", 2, "p-ten", "p-twenty")
	seat(t, e, "tab-2", 2, "p-ten")

	_, err := e.Finalize(CheckoutRequest{TabID: "tab-1", LineIDs: lineIDs(tab.Items[:1]), MethodID: methodCash})
	require.NoError(t, err)
	_, err = e.Finalize(CheckoutRequest{TabID: "tab-1", MethodID: methodCredit})
	require.NoError(t, err)

	m := monitor.GetMetrics()
	assert.EqualValues(t, 2, m.TotalSettlements)
	assert.EqualValues(t, 1, m.PartialSettlements)
	assertMoney(t, "30.00", m.Gross)
	assertMoney(t, "0.70", m.Fees)
	assertMoney(t, "10.00", m.GrossByMethod["Dinheiro"])
	assert.Equal(t, 1, m.OccupiedTabs)
}
