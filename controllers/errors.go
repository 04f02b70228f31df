package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
	"github.com/Tejaspatil777/Coffee-Hub-sub001/utils"
)

type CustomError struct {
	Message string
}

func (e *CustomError) Error() string {
	return e.Message
}

var (
	ErrNoPermission = &CustomError{"You do not have permission"}
	ErrInvalidID    = &CustomError{"Invalid id"}
)

// statusFor menerjemahkan error service ke HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, services.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, services.ErrInvalidTransition),
		errors.Is(err, services.ErrConflict),
		errors.Is(err, services.ErrTableUnavailable),
		errors.Is(err, services.ErrNoAvailableTable):
		return http.StatusConflict
	case errors.Is(err, services.ErrValidation),
		errors.Is(err, services.ErrBookingInactive):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func respondServiceError(c *gin.Context, err error) {
	code := statusFor(err)
	if code == http.StatusInternalServerError {
		utils.ErrorLogger.WithField("path", c.FullPath()).Errorf("Request failed: %v", err)
	}
	utils.RespondError(c, code, err)
}

// paramID membaca path param numerik; menulis 400 sendiri jika tidak valid.
func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		utils.RespondError(c, http.StatusBadRequest, fmt.Errorf("%w: %s", ErrInvalidID, name))
		return 0, false
	}
	return uint(id), true
}
