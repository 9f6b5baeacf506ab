package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panda-server/internal/localisation"
	"panda-server/internal/metrics"
	"panda-server/internal/service"
	"panda-server/internal/utils"
)

// AppointmentHandler handles appointment related requests.
type AppointmentHandler struct {
	Service *service.AppointmentService
	responder
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(svc *service.AppointmentService, tr *localisation.Translator, m *metrics.Collector) *AppointmentHandler {
	return &AppointmentHandler{
		Service:   svc,
		responder: responder{entity: "appointment", translator: tr, metrics: m},
	}
}

// GetAppointments handles listing every appointment.
func (h *AppointmentHandler) GetAppointments(c *gin.Context) {
	h.write(c, "list", http.StatusOK, h.Service.List(c.Request.Context()))
}

// CreateAppointment handles booking a new appointment.
func (h *AppointmentHandler) CreateAppointment(c *gin.Context) {
	record, ok := utils.BindRecord(c, h.translator)
	if !ok {
		return
	}
	h.write(c, "create", http.StatusCreated, h.Service.Create(c.Request.Context(), record))
}

// GetAppointmentByID handles fetching a single appointment by its ID.
func (h *AppointmentHandler) GetAppointmentByID(c *gin.Context) {
	h.write(c, "get", http.StatusOK, h.Service.Get(c.Request.Context(), c.Param("id")))
}

// UpdateAppointment handles replacing the details of an appointment. The
// path id is authoritative.
func (h *AppointmentHandler) UpdateAppointment(c *gin.Context) {
	record, ok := utils.BindRecord(c, h.translator)
	if !ok {
		return
	}
	h.write(c, "update", http.StatusOK, h.Service.Update(c.Request.Context(), c.Param("id"), record))
}

// CancelAppointment handles DELETE, which cancels rather than removes.
func (h *AppointmentHandler) CancelAppointment(c *gin.Context) {
	h.write(c, "delete", http.StatusOK, h.Service.Delete(c.Request.Context(), c.Param("id")))
}
