package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/agedcare_server/internal/model"
	"github.com/qs3c/agedcare_server/internal/pkg/card"
	"github.com/qs3c/agedcare_server/internal/pkg/payment"
	"github.com/qs3c/agedcare_server/internal/pkg/response"
	"github.com/qs3c/agedcare_server/internal/service"
)

// writeError 将业务错误映射为响应码
func writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNoSubscription),
		errors.Is(err, service.ErrPlanNotFound):
		response.NotFoundError(c, err.Error())
	case errors.Is(err, model.ErrInsufficientBalance):
		response.InsufficientBalanceError(c, err.Error())
	case errors.Is(err, payment.ErrDeclined):
		response.PaymentError(c, err.Error())
	case errors.Is(err, model.ErrInvalidAmount),
		errors.Is(err, service.ErrPaymentMethodRequired),
		errors.Is(err, service.ErrInvalidCaregivers),
		errors.Is(err, card.ErrMissingDetails),
		errors.Is(err, card.ErrInvalidNumber),
		errors.Is(err, card.ErrInvalidExpiry),
		errors.Is(err, card.ErrInvalidCVV):
		response.ParamError(c, err.Error())
	case errors.Is(err, service.ErrFetchFailed),
		errors.Is(err, service.ErrCreateFailed),
		errors.Is(err, service.ErrUpdateFailed):
		response.ServerError(c, err.Error())
	default:
		response.ServerError(c, "")
	}
}
