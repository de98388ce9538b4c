package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

type CartController struct {
	Engine *services.Engine
}

func NewCartController(engine *services.Engine) *CartController {
	return &CartController{Engine: engine}
}

func (cc *CartController) CreateCart(c *gin.Context) {
	utils.RespondJSON(c, http.StatusCreated, "Cart created", cc.Engine.NewCart())
}

func (cc *CartController) GetCart(c *gin.Context) {
	cart, err := cc.Engine.Cart(c.Param("cart_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart", cartView(cart))
}

// AddItem -> picks maps step id to the chosen option ids
func (cc *CartController) AddItem(c *gin.Context) {
	var req struct {
		ProductID string         `json:"product_id" binding:"required"`
		Picks     services.Picks `json:"picks"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	cart, err := cc.Engine.AddProduct(c.Param("cart_id"), req.ProductID, req.Picks)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item added", cartView(cart))
}

// UpdateItem -> quantity delta and/or note
func (cc *CartController) UpdateItem(c *gin.Context) {
	var req struct {
		Delta *int    `json:"delta"`
		Note  *string `json:"note"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	if req.Delta == nil && req.Note == nil {
		utils.RespondError(c, http.StatusBadRequest, errors.New("delta or note is required"))
		return
	}

	cart, err := cc.Engine.UpdateLine(c.Param("cart_id"), c.Param("line_id"), req.Delta, req.Note)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item updated", cartView(cart))
}

func (cc *CartController) RemoveItem(c *gin.Context) {
	cart, err := cc.Engine.RemoveLine(c.Param("cart_id"), c.Param("line_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Item removed", cartView(cart))
}

// CommitCart -> without tab_id the cart stays as the walk-up payable set
func (cc *CartController) CommitCart(c *gin.Context) {
	var req struct {
		TabID string `json:"tab_id"`
	}
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			utils.RespondError(c, http.StatusBadRequest, err)
			return
		}
	}
	res, err := cc.Engine.Commit(c.Param("cart_id"), req.TabID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart committed", res)
}

func (cc *CartController) DiscardCart(c *gin.Context) {
	if err := cc.Engine.DiscardCart(c.Param("cart_id")); err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Cart discarded", nil)
}

func cartView(cart services.Cart) gin.H {
	total := cart.Total()
	return gin.H{
		"id":              cart.ID,
		"lines":           cart.Lines,
		"total":           total,
		"total_formatted": utils.FormatCurrency(total),
	}
}
