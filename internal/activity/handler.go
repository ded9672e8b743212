package activity

import (
	"errors"
	"net/http"

	"github.com/Naveenverma440/activity-booking-app/internal/api"
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

// ListActivities godoc
// @Summary      List activities
// @Description  Returns all activities, soonest first.
// @Tags         activities
// @Produce      json
// @Success      200  {object}  api.ListResponse
// @Failure      500  {object}  api.ErrorResponse
// @Router       /api/activities [get]
func (h *Handler) ListActivities(c *gin.Context) {
	activities, err := h.service.List(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, api.Error("Failed to fetch activities"))
		return
	}

	c.JSON(http.StatusOK, api.List(len(activities), activities))
}

// GetActivity godoc
// @Summary      Get activity by ID
// @Tags         activities
// @Produce      json
// @Param        id   path      string  true  "Activity ID"
// @Success      200  {object}  api.DataResponse
// @Failure      400  {object}  api.ErrorResponse
// @Failure      404  {object}  api.ErrorResponse
// @Router       /api/activities/{id} [get]
func (h *Handler) GetActivity(c *gin.Context) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, api.Error("Invalid activity ID"))
		return
	}

	a, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			c.JSON(http.StatusNotFound, api.Error("Activity not found"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("Failed to fetch activity"))
		return
	}

	c.JSON(http.StatusOK, api.Data(a))
}

// CreateActivity godoc
// @Summary      Create activity
// @Description  Creates a bookable activity. Requires authentication.
// @Tags         activities
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        request  body      CreateActivityRequest  true  "Activity data"
// @Success      201      {object}  api.DataResponse
// @Failure      400      {object}  api.ErrorResponse
// @Failure      401      {object}  api.ErrorResponse
// @Failure      500      {object}  api.ErrorResponse
// @Router       /api/activities [post]
func (h *Handler) CreateActivity(c *gin.Context) {
	var req CreateActivityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, api.Error(validation.ErrorMessage(err)))
		return
	}

	a, err := h.service.Create(c.Request.Context(), req)
	if err != nil {
		if errors.Is(err, ErrStartsInPast) {
			c.JSON(http.StatusBadRequest, api.Error("Activity date must be in the future"))
			return
		}
		c.JSON(http.StatusInternalServerError, api.Error("Failed to create activity"))
		return
	}

	c.JSON(http.StatusCreated, api.Data(a))
}
