package handlers

import (
	"errors"
	"net/http"

	"velour/services/admin"
	"velour/services/booking"
	"velour/services/catalog"
	"velour/services/payment"
	"velour/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// respondError maps service-layer errors onto HTTP statuses. Anything not
// recognized is logged and reported as a 500 without leaking internals.
func respondError(c *gin.Context, err error) {
	var bookingValidation booking.ValidationError
	var paymentValidation payment.ValidationError
	var adminValidation admin.ValidationError
	var catalogValidation catalog.ValidationError
	var transition booking.InvalidTransitionError
	var authErr payment.AuthError
	var gatewayErr payment.GatewayError

	switch {
	case errors.As(err, &bookingValidation),
		errors.As(err, &paymentValidation),
		errors.As(err, &adminValidation),
		errors.As(err, &catalogValidation):
		utils.JSONError(c, http.StatusBadRequest, err.Error(), "")
	case errors.Is(err, admin.ErrInvalidCredentials),
		errors.Is(err, admin.ErrInvalidSecretKey):
		utils.JSONError(c, http.StatusUnauthorized, err.Error(), "")
	case errors.Is(err, booking.ErrNotFound),
		errors.Is(err, payment.ErrBookingNotFound),
		errors.Is(err, payment.ErrClassBookingNotFound),
		errors.Is(err, admin.ErrNotFound),
		errors.Is(err, catalog.ErrServiceNotFound),
		errors.Is(err, catalog.ErrCourseNotFound),
		errors.Is(err, catalog.ErrEmployeeNotFound):
		utils.JSONError(c, http.StatusNotFound, err.Error(), "")
	case errors.Is(err, booking.ErrSlotUnavailable),
		errors.Is(err, payment.ErrPaymentInProgress),
		errors.Is(err, payment.ErrBookingNotPayable),
		errors.Is(err, admin.ErrEmailTaken):
		utils.JSONError(c, http.StatusConflict, err.Error(), "")
	case errors.As(err, &transition):
		utils.JSONError(c, http.StatusUnprocessableEntity, err.Error(), "")
	case errors.As(err, &authErr), errors.As(err, &gatewayErr):
		utils.JSONError(c, http.StatusBadGateway, "payment gateway error", err.Error())
	default:
		zap.L().Error("unhandled error", zap.Error(err))
		utils.JSONError(c, http.StatusInternalServerError, "internal server error", "")
	}
}
