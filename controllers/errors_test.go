package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Tejaspatil777/Coffee-Hub-sub001/services"
)

func TestStatusFor(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{fmt.Errorf("%w: booking 1", services.ErrNotFound), http.StatusNotFound},
		{fmt.Errorf("%w: PENDING -> SERVED", services.ErrInvalidTransition), http.StatusConflict},
		{services.ErrConflict, http.StatusConflict},
		{services.ErrTableUnavailable, http.StatusConflict},
		{services.ErrNoAvailableTable, http.StatusConflict},
		{fmt.Errorf("%w: guests", services.ErrValidation), http.StatusUnprocessableEntity},
		{services.ErrBookingInactive, http.StatusUnprocessableEntity},
		{services.StepError{Step: services.StepRefundPayment, ID: 3, Err: services.ErrNotFound}, http.StatusNotFound},
		{errors.New("disk full"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, statusFor(tt.err), tt.err.Error())
	}
}
