package controllers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/kds"
	"github.com/yeremiapane/tab-pos/models"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

type TabController struct {
	Engine *services.Engine
}

func NewTabController(engine *services.Engine) *TabController {
	return &TabController{Engine: engine}
}

// GetAllTabs -> board view with elapsed time
func (tc *TabController) GetAllTabs(c *gin.Context) {
	utils.RespondJSON(c, http.StatusOK, "List of tabs", tc.Engine.List())
}

// ConfigureTabs -> resize the registry or switch between tables and tickets
func (tc *TabController) ConfigureTabs(c *gin.Context) {
	var req struct {
		Mode  models.RegistryMode `json:"mode" binding:"required"`
		Count int                 `json:"count"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	tabs, err := tc.Engine.Resize(req.Mode, req.Count)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tabs configured", tabs)
}

// SelectTab -> the tab plus the screen it leads to
func (tc *TabController) SelectTab(c *gin.Context) {
	sel, err := tc.Engine.Select(c.Param("tab_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tab selected", sel)
}

type seatRequest struct {
	PartySize int    `json:"party_size"`
	Location  string `json:"location"`
}

func (tc *TabController) OpenTab(c *gin.Context) {
	var req seatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tab, err := tc.Engine.Open(c.Param("tab_id"), req.PartySize, req.Location)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Tab opened: %s (party=%d)", tab.Label, tab.PeopleCount)
	utils.RespondJSON(c, http.StatusOK, "Tab opened", tab)
}

func (tc *TabController) ClaimReservation(c *gin.Context) {
	var req seatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	tab, err := tc.Engine.ClaimReservation(c.Param("tab_id"), req.PartySize, req.Location)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Reservation claimed", tab)
}

func (tc *TabController) ReserveTab(c *gin.Context) {
	tab, err := tc.Engine.Reserve(c.Param("tab_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Tab reserved", tab)
}

type moveRequest struct {
	TargetID string   `json:"target_id" binding:"required"`
	LineIDs  []string `json:"line_ids"`
}

// TransferTab -> move the whole occupation to a free tab
func (tc *TabController) TransferTab(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	res, err := tc.Engine.Transfer(c.Param("tab_id"), req.TargetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Tab transferred: %s -> %s", res.Source.Label, res.Target.Label)
	utils.RespondJSON(c, http.StatusOK, "Tab transferred", res)
}

func (tc *TabController) MergeTab(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	res, err := tc.Engine.Merge(c.Param("tab_id"), req.TargetID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.InfoLogger.Printf("Tab merged: %s -> %s", res.Source.Label, res.Target.Label)
	utils.RespondJSON(c, http.StatusOK, "Tabs merged", res)
}

func (tc *TabController) TransferItems(c *gin.Context) {
	var req moveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}
	res, err := tc.Engine.TransferItems(c.Param("tab_id"), req.TargetID, req.LineIDs)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	utils.RespondJSON(c, http.StatusOK, "Items transferred", res)
}

// VoidLine -> manager only, see router
func (tc *TabController) VoidLine(c *gin.Context) {
	tab, err := tc.Engine.VoidAuthorized(c.Param("tab_id"), c.Param("line_id"))
	if err != nil {
		respondServiceError(c, err)
		return
	}
	kds.BroadcastStaffNotification(fmt.Sprintf("Item cancelado: %s", tab.Label))
	utils.RespondJSON(c, http.StatusOK, "Line voided", tab)
}
