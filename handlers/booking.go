package handlers

import (
	"net/http"

	"velour/models"
	"velour/services/booking"
	"velour/utils"

	"github.com/gin-gonic/gin"
)

// BookingHandler exposes the booking lifecycle, availability and class
// booking endpoints.
type BookingHandler struct {
	Service booking.BookingService
}

// NewBookingHandler creates a new BookingHandler.
func NewBookingHandler(svc booking.BookingService) *BookingHandler {
	return &BookingHandler{Service: svc}
}

// CreateBooking handles POST /api/bookings.
func (bh *BookingHandler) CreateBooking(c *gin.Context) {
	var req models.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	b, err := bh.Service.Create(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// ListBookings handles GET /api/bookings.
func (bh *BookingHandler) ListBookings(c *gin.Context) {
	bookings, err := bh.Service.GetAll(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GetBooking handles GET /api/bookings/:id.
func (bh *BookingHandler) GetBooking(c *gin.Context) {
	b, err := bh.Service.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// ListCustomerBookings handles GET /api/bookings/customer/:identifier, where
// the identifier is a customer email or phone number.
func (bh *BookingHandler) ListCustomerBookings(c *gin.Context) {
	bookings, err := bh.Service.ListByCustomer(c.Request.Context(), c.Param("identifier"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// UpdateBookingStatus handles PATCH /api/bookings/:id/status.
func (bh *BookingHandler) UpdateBookingStatus(c *gin.Context) {
	var input struct {
		Status models.BookingStatus `json:"status"`
	}
	if err := c.ShouldBindJSON(&input); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	b, err := bh.Service.UpdateStatus(c.Request.Context(), c.Param("id"), input.Status)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, b)
}

// DeleteBooking handles DELETE /api/bookings/:id.
func (bh *BookingHandler) DeleteBooking(c *gin.Context) {
	if err := bh.Service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "booking deleted"})
}

// CheckAvailability handles GET /api/bookings/check-availability?date=...
// and returns the booked slots for that date.
func (bh *BookingHandler) CheckAvailability(c *gin.Context) {
	date := c.Query("date")
	if date == "" {
		utils.JSONError(c, http.StatusBadRequest, "date query parameter is required", "")
		return
	}
	slots, err := bh.Service.CheckAvailability(c.Request.Context(), date)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"date": date, "bookedSlots": slots})
}

// CreateClassBooking handles POST /api/class-bookings.
func (bh *BookingHandler) CreateClassBooking(c *gin.Context) {
	var req models.ClassBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.JSONError(c, http.StatusBadRequest, "invalid input", err.Error())
		return
	}
	cb, err := bh.Service.CreateClassBooking(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, cb)
}

// ListClassBookings handles GET /api/class-bookings.
func (bh *BookingHandler) ListClassBookings(c *gin.Context) {
	bookings, err := bh.Service.ListClassBookings(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// DeleteClassBooking handles DELETE /api/class-bookings/:id.
func (bh *BookingHandler) DeleteClassBooking(c *gin.Context) {
	if err := bh.Service.DeleteClassBooking(c.Request.Context(), c.Param("id")); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "class booking deleted"})
}
