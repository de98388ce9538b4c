package controllers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

type ReceiptController struct {
	Engine  *services.Engine
	Catalog services.Catalog
}

func NewReceiptController(engine *services.Engine, catalog services.Catalog) *ReceiptController {
	return &ReceiptController{Engine: engine, Catalog: catalog}
}

type ReceiptItem struct {
	ProductID string `json:"product_id"`
	Name      string `json:"name"`
	Quantity  int    `json:"quantity"`
}

type Receipt struct {
	Number      string          `json:"number"`
	DateTime    time.Time       `json:"date_time"`
	Description string          `json:"description"`
	TabID       string          `json:"tab_id,omitempty"`
	Method      string          `json:"method"`
	Items       []ReceiptItem   `json:"items"`
	Gross       decimal.Decimal `json:"gross"`
	Fee         decimal.Decimal `json:"fee"`
	Net         decimal.Decimal `json:"net"`
	Status      string          `json:"status"`
	DueDate     time.Time       `json:"due_date"`
	Formatted   struct {
		Gross string `json:"gross"`
		Fee   string `json:"fee"`
		Net   string `json:"net"`
	} `json:"formatted"`
}

// GetReceipt -> receipt of one sale, rebuilt from the ledgers
func (rc *ReceiptController) GetReceipt(c *gin.Context) {
	id := c.Param("tx_id")

	var revenue *models.FinancialTransaction
	fee := decimal.Zero
	for _, tx := range rc.Engine.FinancialLedger() {
		switch {
		case tx.ID == id && tx.Origin == models.OriginSale:
			t := tx
			revenue = &t
		case tx.RelatedID == id && tx.Origin == models.OriginFee:
			fee = fee.Add(tx.Amount)
		}
	}
	if revenue == nil {
		utils.RespondError(c, http.StatusNotFound, fmt.Errorf("sale %q not found", id))
		return
	}

	r := Receipt{
		Number:      receiptNumber(*revenue),
		DateTime:    revenue.Date,
		Description: revenue.Description,
		TabID:       revenue.TabID,
		Method:      revenue.PaymentMethodName,
		Items:       []ReceiptItem{},
		Gross:       revenue.Gross,
		Fee:         fee,
		Net:         revenue.Amount,
		Status:      revenue.Status,
		DueDate:     revenue.DueDate,
	}
	for _, m := range rc.Engine.StockLedger() {
		if m.OriginID != id {
			continue
		}
		name := m.ProductID
		if p, ok := rc.Catalog.Product(m.ProductID); ok {
			name = p.Name
		}
		r.Items = append(r.Items, ReceiptItem{ProductID: m.ProductID, Name: name, Quantity: m.Quantity})
	}
	r.Formatted.Gross = utils.FormatCurrency(r.Gross)
	r.Formatted.Fee = utils.FormatCurrency(r.Fee)
	r.Formatted.Net = utils.FormatCurrency(r.Net)

	utils.RespondJSON(c, http.StatusOK, "Receipt detail", r)
}

// receiptNumber -> RCP/20260301/1a2b3c4d
func receiptNumber(tx models.FinancialTransaction) string {
	short := tx.ID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("RCP/%s/%s", tx.Date.Format("20060102"), short)
}
