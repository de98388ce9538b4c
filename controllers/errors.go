package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/yeremiapane/tab-pos/services"
	"github.com/yeremiapane/tab-pos/utils"
)

// statusFor maps engine errors onto HTTP codes.
func statusFor(err error) int {
	switch {
	case services.IsValidation(err):
		return http.StatusUnprocessableEntity
	case services.IsPrecondition(err):
		return http.StatusConflict
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.WithField("path", c.Request.URL.Path).WithError(err).Error("unexpected error")
	}
	utils.RespondError(c, code, err)
}
