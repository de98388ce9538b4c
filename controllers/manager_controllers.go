package controllers

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

const managerTokenTTL = 15 * time.Minute

type ManagerController struct {
	Engine *services.Engine
}

func NewManagerController(engine *services.Engine) *ManagerController {
	return &ManagerController{Engine: engine}
}

// Login -> PIN for a short-lived manager token
func (mc *ManagerController) Login(c *gin.Context) {
	var input struct {
		PIN string `json:"pin" binding:"required"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.RespondError(c, http.StatusBadRequest, err)
		return
	}

	if err := mc.Engine.AuthorizeManager(input.PIN); err != nil {
		utils.ErrorLogger.WithField("client", c.ClientIP()).Error("manager login failed")
		respondServiceError(c, err)
		return
	}

	token, err := utils.GenerateToken(utils.RoleManager, managerTokenTTL)
	if err != nil {
		utils.RespondError(c, http.StatusInternalServerError, err)
		return
	}
	utils.InfoLogger.WithField("client", c.ClientIP()).Info("manager logged in")
	utils.RespondJSON(c, http.StatusOK, "Login success", gin.H{
		"token":      token,
		"expires_in": int(managerTokenTTL / time.Second),
	})
}

// Logout -> revoke the current token
func (mc *ManagerController) Logout(c *gin.Context) {
	token := c.GetString("token")
	if token == "" {
		utils.RespondError(c, http.StatusUnauthorized, errors.New("no token"))
		return
	}
	until := time.Now().Add(managerTokenTTL)
	if v, ok := c.Get("token_expiry"); ok {
		until = v.(time.Time)
	}
	utils.BlacklistToken(token, until)
	utils.RespondJSON(c, http.StatusOK, "Logout success", nil)
}
