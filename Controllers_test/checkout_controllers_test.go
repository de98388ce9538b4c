package Controllers_test

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/services"
)

func TestQuoteAndFinalizeWithFee(t *testing.T) {
	s := newTestServer(t, models.ModeTable, 3)
	s.seat("tab-1", 2, "p-ten", "p-ten", "p-five")

	var q services.Quote
	code, _ := s.do(http.MethodPost, "/api/checkout/quote", gin.H{"tab_id": "tab-1", "method_id": "3"}, "", &q)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "25.00", q.Total.StringFixed(2))
	assert.Equal(t, "12.50", q.PerPerson.StringFixed(2))
	assert.Equal(t, "0.88", q.Fee.StringFixed(2))
	assert.Equal(t, "24.13", q.Net.StringFixed(2))

	var st services.Settlement
	code, env := s.do(http.MethodPost, "/api/checkout/finalize", gin.H{"tab_id": "tab-1", "method_id": "3"}, "", &st)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "Settlement finalized", env.Message)
	assert.Equal(t, models.TransactionPending, st.Revenue.Status)
	require.NotNil(t, st.FeeExpense)
	assert.Equal(t, st.Revenue.ID, st.FeeExpense.RelatedID)
	require.NotNil(t, st.Tab)
	assert.Equal(t, models.TabFree, st.Tab.Status)

	var ledger []models.FinancialTransaction
	code, _ = s.do(http.MethodGet, "/api/ledger/financial", nil, "", &ledger)
	require.Equal(t, http.StatusOK, code)
	assert.Len(t, ledger, 2)

	var stock []models.StockMovement
	s.do(http.MethodGet, "/api/ledger/stock", nil, "", &stock)
	assert.Len(t, stock, 2)
}

func TestPartialSettlement(t *testing.T) {
	s := newTestServer(t, models.ModeTable, 2)
	tab := s.seat("tab-1", 2, "p-ten", "p-five")

	var st services.Settlement
	code, _ := s.do(http.MethodPost, "/api/checkout/finalize",
		gin.H{"tab_id": "tab-1", "line_ids": []string{tab.Items[0].ID}, "method_id": "2"}, "", &st)
	require.Equal(t, http.StatusCreated, code)
	assert.True(t, st.Partial)
	assert.Nil(t, st.FeeExpense)
	assert.Equal(t, models.TransactionPaid, st.Revenue.Status)
	require.NotNil(t, st.Tab)
	assert.Equal(t, models.TabOccupied, st.Tab.Status)
	assert.Equal(t, lineIDs(tab.Items[1:]), lineIDs(st.Tab.Items))
}

func TestWalkUpSaleWithChange(t *testing.T) {
	s := newTestServer(t, models.ModeTicket, 2)
	var cart services.Cart
	s.do(http.MethodPost, "/api/carts", nil, "", &cart)
	s.do(http.MethodPost, "/api/carts/"+cart.ID+"/items", gin.H{"product_id": "p-ten"}, "", nil)
	s.do(http.MethodPost, "/api/carts/"+cart.ID+"/items", gin.H{"product_id": "p-five"}, "", nil)

	var st services.Settlement
	code, _ := s.do(http.MethodPost, "/api/checkout/finalize",
		gin.H{"cart_id": cart.ID, "method_id": "1", "tendered": "20.00"}, "", &st)
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "5.00", st.Change.StringFixed(2))
	assert.Empty(t, st.TabID)
	assert.Contains(t, st.Revenue.Description, "Balcão")

	var stats struct {
		Metrics        services.SettlementMetrics `json:"metrics"`
		GrossFormatted string                     `json:"gross_formatted"`
	}
	code, _ = s.do(http.MethodGet, "/api/dashboard/stats", nil, "", &stats)
	require.Equal(t, http.StatusOK, code)
	assert.EqualValues(t, 1, stats.Metrics.WalkUpSales)
	assert.Equal(t, "R$ 15,00", stats.GrossFormatted)
}

func TestCheckoutErrors(t *testing.T) {
	s := newTestServer(t, models.ModeTable, 2)
	tab := s.seat("tab-1", 2, "p-ten")

	cases := []struct {
		name string
		body gin.H
		code int
	}{
		{"no method", gin.H{"tab_id": "tab-1"}, http.StatusUnprocessableEntity},
		{"unknown method", gin.H{"tab_id": "tab-1", "method_id": "42"}, http.StatusUnprocessableEntity},
		{"free tab", gin.H{"tab_id": "tab-2", "method_id": "1"}, http.StatusConflict},
		{"unknown tab", gin.H{"tab_id": "tab-7", "method_id": "1"}, http.StatusNotFound},
		{"unknown line", gin.H{"tab_id": "tab-1", "line_ids": []string{"ghost"}, "method_id": "1"}, http.StatusUnprocessableEntity},
		{"nothing to pay", gin.H{"method_id": "1"}, http.StatusUnprocessableEntity},
	}
	for _, c := range cases {
		code, env := s.do(http.MethodPost, "/api/checkout/finalize", c.body, "", nil)
		assert.Equal(t, c.code, code, "%s: %s", c.name, env.Message)
	}

	var ledger []models.FinancialTransaction
	s.do(http.MethodGet, "/api/ledger/financial", nil, "", &ledger)
	assert.Empty(t, ledger)

	var sel services.TabSelection
	s.do(http.MethodGet, "/api/tabs/tab-1", nil, "", &sel)
	assert.Equal(t, lineIDs(tab.Items), lineIDs(sel.Tab.Items))
}

func TestMarkPaidAndLedgerDashboard(t *testing.T) {
	s := newTestServer(t, models.ModeTable, 2)
	s.seat("tab-1", 2, "p-ten", "p-ten", "p-five")
	var st services.Settlement
	code, _ := s.do(http.MethodPost, "/api/checkout/finalize", gin.H{"tab_id": "tab-1", "method_id": "3"}, "", &st)
	require.Equal(t, http.StatusCreated, code)

	var stats struct {
		Ledger              services.LedgerSummary `json:"ledger"`
		BalanceFormatted    string                 `json:"balance_formatted"`
		ReceivableFormatted string                 `json:"receivable_formatted"`
	}
	code, _ = s.do(http.MethodGet, "/api/dashboard/stats", nil, "", &stats)
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "24.13", stats.Ledger.Revenue.StringFixed(2))
	assert.Equal(t, "0.88", stats.Ledger.Expenses.StringFixed(2))
	assert.Equal(t, "R$ 23,25", stats.BalanceFormatted)
	assert.Equal(t, "R$ 24,13", stats.ReceivableFormatted)

	pay := "/api/ledger/financial/" + st.Revenue.ID + "/pay"
	code, _ = s.do(http.MethodPost, pay, nil, "", nil)
	assert.Equal(t, http.StatusUnauthorized, code)

	token := s.login()
	var tx models.FinancialTransaction
	code, env := s.do(http.MethodPost, pay, nil, token, &tx)
	require.Equal(t, http.StatusOK, code, env.Message)
	assert.Equal(t, models.TransactionPaid, tx.Status)

	code, _ = s.do(http.MethodPost, pay, nil, token, nil)
	assert.Equal(t, http.StatusConflict, code, "already paid")
	code, _ = s.do(http.MethodPost, "/api/ledger/financial/"+st.FeeExpense.ID+"/pay", nil, token, nil)
	assert.Equal(t, http.StatusConflict, code, "fees are not receivable")
	code, _ = s.do(http.MethodPost, "/api/ledger/financial/ghost/pay", nil, token, nil)
	assert.Equal(t, http.StatusNotFound, code)

	s.do(http.MethodGet, "/api/dashboard/stats", nil, "", &stats)
	assert.Equal(t, "R$ 0,00", stats.ReceivableFormatted)
}
