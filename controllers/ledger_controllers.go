package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/kds"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

type LedgerController struct {
	Engine  *services.Engine
	Monitor *services.SettlementMonitor
}

func NewLedgerController(engine *services.Engine, monitor *services.SettlementMonitor) *LedgerController {
	return &LedgerController{Engine: engine, Monitor: monitor}
}

func (lc *LedgerController) GetPaymentMethods(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of payment methods", lc.Engine.PaymentMethods())
}

func (lc *LedgerController) GetFinancialLedger(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Financial ledger", lc.Engine.FinancialLedger())
}

func (lc *LedgerController) GetStockLedger(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "Stock ledger", lc.Engine.StockLedger())
}

// MarkTransactionPaid -> a pending card sale was paid out by the acquirer
func (lc *LedgerController) MarkTransactionPaid(c *gin.Context) {
	tx, err := lc.Engine.MarkPaid(c.Param("tx_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Transaction paid", tx)
}

// GetDashboardStats -> running settlement counters plus ledger-wide totals
func (lc *LedgerController) GetDashboardStats(c *gin.Context) {
	m := lc.Monitor.GetMetrics()
	l := lc.Engine.LedgerSummary()
	utils.RespondJSON(c, http.StatusOK, "Dashboard stats", gin.H{
		"metrics":              m,
		"ledger":               l,
		"board_clients":        kds.ClientCount(),
		"gross_formatted":      utils.FormatCurrency(m.Gross),
		"net_formatted":        utils.FormatCurrency(m.Net),
		"balance_formatted":    utils.FormatCurrency(l.Balance),
		"receivable_formatted": utils.FormatCurrency(l.Receivable),
	})
}

// Health -> database reachability
func Health(c *gin.Context) {
	db := utils.GetDB()
	if db == nil {
		utils.RespondJSON(c, http.StatusOK, "ok", gin.H{"database": "none"})
		return
	}
	sqlDB, err := db.DB()
	if err == nil {
		err = sqlDB.PingContext(c.Request.Context())
	}
	if err != nil {
		utils.RespondError(c, http.StatusServiceUnavailable, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "ok", gin.H{"database": "up"})
}
