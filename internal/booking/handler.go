package booking

import (
	"errors"
	"net/http"

	"github.com/Naveenverma440/activity-booking-app/internal/api"
	"github.com/Naveenverma440/activity-booking-app/internal/auth"
	"github.com/Naveenverma440/activity-booking-app/internal/validation"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// CreateBooking godoc
// @Summary      Book an activity
// @Description  Reserves one spot on an activity for the current user.
// @Tags         bookings
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateBookingRequest  true  "Activity to book"
// @Success      201      {object}  api.DataResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      404      {object}  api.ErrorResponse
// @Failure      409      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/bookings [post]
func (h *Handler) CreateBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Error("User not authenticated"))
		return
	}

	var req CreateBookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(validation.ErrorMessage(err)))
		return
	}

	details, err := h.service.CreateBooking(c.Request.Context(), userID, req.ActivityID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, api.Data(details))
}

// ListMyBookings godoc
// @Summary      List my bookings
// @Description  Returns the current user's bookings with activity details, newest first.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  api.ListResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/bookings [get]
func (h *Handler) ListMyBookings(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Error("User not authenticated"))
		return
	}

	bookings, err := h.service.ListUserBookings(c.Request.Context(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("Failed to fetch bookings"))
		return
	}

	c.JSON(http.StatusOK, api.List(len(bookings), bookings))
}

// CancelBooking godoc
// @Summary      Cancel booking
// @Description  Cancels one of the current user's bookings and releases its spot.
// @Tags         bookings
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Booking ID"
// @Success      200  {object}  api.MessageResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      401  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/bookings/{id} [delete]
func (h *Handler) CancelBooking(c *gin.Context) {
	userID, exists := auth.GetUserID(c)
	if !exists {
		c.JSON(http.StatusUnauthorized, api.Error("User not authenticated"))
		return
	}

	bookingID := c.Param("id")
	if _, err := uuid.Parse(bookingID); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("Invalid booking ID"))
		return
	}

	if err := h.service.CancelBooking(c.Request.Context(), userID, bookingID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, api.Message("Your booking has been cancelled"))
}

func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrActivityNotFound):
		c.JSON(http.StatusNotFound, api.Error("Activity not found"))
	case errors.Is(err, ErrBookingNotFound):
		c.JSON(http.StatusNotFound, api.Error("Booking not found"))
	case errors.Is(err, ErrCapacityExceeded):
		c.JSON(http.StatusBadRequest, api.Error("Sorry, this activity is fully booked"))
	case errors.Is(err, ErrDuplicateBooking):
		c.JSON(http.StatusBadRequest, api.Error("You have already booked this activity"))
	case errors.Is(err, ErrAlreadyCancelled):
		c.JSON(http.StatusBadRequest, api.Error("This booking has already been cancelled"))
	case errors.Is(err, ErrConstraintViolation):
		c.JSON(http.StatusConflict, api.Error("Booking conflict, please try again"))
	default:
		c.JSON(http.StatusInternalServerError, api.Error("Failed to process booking"))
	}
}
