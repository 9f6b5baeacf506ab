package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"panda-server/internal/localisation"
	"panda-server/internal/metrics"
	"panda-server/internal/service"
	"panda-server/internal/utils"
)

// PatientHandler handles patient related requests.
type PatientHandler struct {
	Service *service.PatientService
	responder
}

// NewPatientHandler creates a new PatientHandler.
func NewPatientHandler(svc *service.PatientService, tr *localisation.Translator, m *metrics.Collector) *PatientHandler {
	return &PatientHandler{
		Service:   svc,
		responder: responder{entity: "patient", translator: tr, metrics: m},
	}
}

// GetPatients handles listing every patient.
func (h *PatientHandler) GetPatients(c *gin.Context) {
	h.write(c, "list", http.StatusOK, h.Service.List(c.Request.Context()))
}

// CreatePatient handles registering a new patient.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	record, ok := utils.BindRecord(c, h.translator)
	if !ok {
		return
	}
	h.write(c, "create", http.StatusCreated, h.Service.Create(c.Request.Context(), record))
}

// GetPatient handles fetching a patient by NHS number.
func (h *PatientHandler) GetPatient(c *gin.Context) {
	h.write(c, "get", http.StatusOK, h.Service.Get(c.Request.Context(), c.Param("nhs_number")))
}

// UpdatePatient handles replacing a patient's details.
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	record, ok := utils.BindRecord(c, h.translator)
	if !ok {
		return
	}
	h.write(c, "update", http.StatusOK, h.Service.Update(c.Request.Context(), c.Param("nhs_number"), record))
}

// DeletePatient handles removing a patient.
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	h.write(c, "delete", http.StatusOK, h.Service.Delete(c.Request.Context(), c.Param("nhs_number")))
}
