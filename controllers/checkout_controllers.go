package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

type CheckoutController struct {
	Engine *services.Engine
}

func NewCheckoutController(engine *services.Engine) *CheckoutController {
	return &CheckoutController{Engine: engine}
}

// Quote -> totals, split, change and fee without settling anything
func (cc *CheckoutController) Quote(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	q, err := cc.Engine.Quote(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Checkout quote", q)
}

func (cc *CheckoutController) Finalize(c *gin.Context) {
	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	s, err := cc.Engine.Finalize(req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusCreated, "Settlement finalized", s)
}
