package handlers

import (
	"net/http"

	"psyhub_backend/internal/apperrors"
	"psyhub_backend/internal/middleware"
	"psyhub_backend/internal/models"
	"psyhub_backend/internal/services"
	"psyhub_backend/internal/services/dto"

	"github.com/gin-gonic/gin"
)

type AppointmentHandler struct {
	*BaseHandler
	appointments services.AppointmentService
}

func NewAppointmentHandler(base *BaseHandler, appointments services.AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{BaseHandler: base, appointments: appointments}
}

// Create - POST /api/v1/appointments
func (h *AppointmentHandler) Create(c *gin.Context) {
	var req dto.CreateAppointmentRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	appointment, err := h.appointments.Create(h.GetDB(c), userID, userRole, &req)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, appointment)
}

// UpdateStatus - PATCH /api/v1/appointments/:id/status
func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	var req dto.UpdateAppointmentStatusRequest
	if !h.BindAndValidateJSON(c, &req) {
		return
	}

	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	appointment, err := h.appointments.UpdateStatus(
		h.GetDB(c),
		userID,
		userRole,
		c.Param("id"),
		models.AppointmentStatus(req.Status),
	)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, appointment)
}

// ListMine - GET /api/v1/appointments
func (h *AppointmentHandler) ListMine(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	userRole, _ := middleware.GetUserRole(c)

	appointments, err := h.appointments.ListMine(h.GetDB(c), userID, userRole)
	if err != nil {
		apperrors.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": appointments})
}
