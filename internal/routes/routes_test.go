package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"panda-server/internal/config"
	"panda-server/internal/localisation"
	"panda-server/internal/metrics"
	"panda-server/internal/repository"
	"panda-server/internal/service"
	"panda-server/internal/utils"
)

const (
	patientBody     = `{"nhs_number":"9434765919","name":"Dr Glenn Clark","date_of_birth":"1996-02-01","postcode":"N6 2FA"}`
	appointmentID   = "01542f70-929f-4c9a-b4fa-e672310d7e78"
	appointmentBody = `{"id":"` + appointmentID + `","patient":"1953262716","status":"active","time":"2025-06-04T16:30:00+01:00","duration":"1h","clinician":"Bethany Rice-Hammond","department":"oncology","postcode":"IM2N 4LG"}`
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newTestRouter(t *testing.T, secret string) *gin.Engine {
	t.Helper()
	return newRouterWithConfig(t, &config.Config{Origin: "*", JWTSecret: secret})
}

func newRouterWithConfig(t *testing.T, cfg *config.Config) *gin.Engine {
	t.Helper()
	r, err := NewRouter(newDependencies(t, cfg))
	require.NoError(t, err)
	return r
}

func newDependencies(t *testing.T, cfg *config.Config) Dependencies {
	t.Helper()
	tr, err := localisation.LoadEmbedded(localisation.DefaultLanguage)
	require.NoError(t, err)

	patients, appointments, err := repository.New(repository.DatabaseMemory, nil)
	require.NoError(t, err)

	log := zap.NewNop()
	return Dependencies{
		Config:       cfg,
		Patients:     service.NewPatientService(patients, log),
		Appointments: service.NewAppointmentService(appointments, log),
		Translator:   tr,
		Metrics:      metrics.NewCollector("panda"),
		Logger:       log,
	}
}

type call struct {
	method, path, body, lang, token string
}

func do(t *testing.T, r *gin.Engine, c call) (int, utils.ResponseData) {
	t.Helper()
	req := httptest.NewRequest(c.method, c.path, strings.NewReader(c.body))
	req.Header.Set("Content-Type", "application/json")
	if c.lang != "" {
		req.Header.Set("Accept-Language", c.lang)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var body utils.ResponseData
	if strings.HasPrefix(rec.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	}
	return rec.Code, body
}

func TestPatientRoutes(t *testing.T) {
	r := newTestRouter(t, "")

	code, body := do(t, r, call{method: http.MethodPost, path: "/api/patients", body: patientBody})
	require.Equal(t, http.StatusCreated, code)
	assert.Equal(t, "new patient added: 9434765919", body.Message)

	code, body = do(t, r, call{method: http.MethodPost, path: "/api/patients", body: patientBody})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "could_not_create_patient", string(body.Errors[0].Key))

	code, body = do(t, r, call{method: http.MethodGet, path: "/api/patients/9434765919"})
	require.Equal(t, http.StatusOK, code)
	data := body.Data.(map[string]interface{})
	assert.Equal(t, "Dr Glenn Clark", data["name"])
	assert.Len(t, data, 4)

	updated := strings.Replace(patientBody, "Dr Glenn Clark", "Glenn Clark", 1)
	code, _ = do(t, r, call{method: http.MethodPut, path: "/api/patients/9434765919", body: updated})
	assert.Equal(t, http.StatusOK, code)

	code, body = do(t, r, call{method: http.MethodGet, path: "/api/patients"})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "patients fetched", body.Message)
	list := body.Data.([]interface{})
	require.Len(t, list, 1)
	assert.Equal(t, "Glenn Clark", list[0].(map[string]interface{})["name"])

	code, _ = do(t, r, call{method: http.MethodDelete, path: "/api/patients/9434765919"})
	assert.Equal(t, http.StatusOK, code)

	code, body = do(t, r, call{method: http.MethodGet, path: "/api/patients/9434765919", lang: "fr-FR"})
	assert.Equal(t, http.StatusNotFound, code)
	assert.Equal(t, "patient non trouvé", body.Message)
}

func TestPatientValidationErrorsAreLocalised(t *testing.T) {
	r := newTestRouter(t, "")

	code, body := do(t, r, call{method: http.MethodPost, path: "/api/patients", body: `{}`, lang: "es"})
	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, body.Errors, 4)
	for _, e := range body.Errors {
		assert.Equal(t, "missing_required_field", string(e.Key))
		assert.Equal(t, "Missing required field: "+e.Params["field"], e.Message)
	}

	code, body = do(t, r, call{method: http.MethodPost, path: "/api/patients", body: `[]`})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "invalid_request_body", string(body.Errors[0].Key))
}

func TestAppointmentRoutes(t *testing.T) {
	r := newTestRouter(t, "")

	code, _ := do(t, r, call{method: http.MethodPost, path: "/api/appointments", body: appointmentBody})
	require.Equal(t, http.StatusCreated, code)

	code, body := do(t, r, call{method: http.MethodDelete, path: "/api/appointments/" + appointmentID})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "appointment cancelled: "+appointmentID, body.Message)

	// Cancelling again still succeeds.
	code, _ = do(t, r, call{method: http.MethodDelete, path: "/api/appointments/" + appointmentID})
	assert.Equal(t, http.StatusOK, code)

	code, body = do(t, r, call{method: http.MethodPut, path: "/api/appointments/" + appointmentID, body: appointmentBody})
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "could_not_update_appointment", string(body.Errors[0].Key))

	code, body = do(t, r, call{method: http.MethodGet, path: "/api/appointments/" + appointmentID})
	require.Equal(t, http.StatusOK, code)
	assert.Equal(t, "cancelled", body.Data.(map[string]interface{})["status"])

	code, _ = do(t, r, call{method: http.MethodDelete, path: "/api/appointments/00000000-0000-0000-0000-000000000000"})
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAppointmentDurationScenario(t *testing.T) {
	r := newTestRouter(t, "")

	bad := strings.Replace(appointmentBody, `"1h"`, `"60minutes"`, 1)
	code, body := do(t, r, call{method: http.MethodPost, path: "/api/appointments", body: bad})
	require.Equal(t, http.StatusBadRequest, code)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "invalid_duration_format", string(body.Errors[0].Key))
}

func TestMutatingRoutesRequireToken(t *testing.T) {
	r := newTestRouter(t, "s3cret")

	code, _ := do(t, r, call{method: http.MethodPost, path: "/api/patients", body: patientBody})
	assert.Equal(t, http.StatusUnauthorized, code)

	code, _ = do(t, r, call{method: http.MethodGet, path: "/api/patients"})
	assert.Equal(t, http.StatusOK, code)

	token, err := utils.GenerateToken("reception", "s3cret", time.Minute)
	require.NoError(t, err)
	code, _ = do(t, r, call{method: http.MethodPost, path: "/api/patients", body: patientBody, token: token})
	assert.Equal(t, http.StatusCreated, code)
}

func TestHealthMetricsAndCORS(t *testing.T) {
	r := newTestRouter(t, "")

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"UP"}`, rec.Body.String())

	do(t, r, call{method: http.MethodGet, path: "/api/patients/1234567890"})
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Contains(t, rec.Body.String(), `panda_service_results_total{entity="patient",kind="not_found",operation="get"} 1`)

	req := httptest.NewRequest(http.MethodOptions, "/api/patients", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec = httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func getWithForwardedFor(r *gin.Engine, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	req.Header.Set("X-Forwarded-For", forwardedFor)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	return rec.Code
}

func TestRateLimitKeysOnPeerAddress(t *testing.T) {
	limit := config.RateLimitConfig{RequestsPerSecond: 0.001, BurstSize: 1}

	deps := newDependencies(t, &config.Config{Origin: "*", RateLimit: limit})
	r, err := NewRouter(deps)
	require.NoError(t, err)

	codes := make([]int, 0, 10)
	for i := 0; i < 10; i++ {
		codes = append(codes, getWithForwardedFor(r, fmt.Sprintf("198.51.100.%d", i)))
	}
	assert.Equal(t, http.StatusOK, codes[0])
	for _, code := range codes[1:] {
		assert.Equal(t, http.StatusTooManyRequests, code)
	}
	assert.Equal(t, 9.0, testutil.ToFloat64(deps.Metrics.RequestsTotal.WithLabelValues("GET", "/health", "429")))

	// httptest requests arrive from 192.0.2.1.
	trusted := newRouterWithConfig(t, &config.Config{
		Origin:         "*",
		TrustedProxies: []string{"192.0.2.1"},
		RateLimit:      limit,
	})
	assert.Equal(t, http.StatusOK, getWithForwardedFor(trusted, "198.51.100.1"))
	assert.Equal(t, http.StatusOK, getWithForwardedFor(trusted, "198.51.100.2"))
	assert.Equal(t, http.StatusTooManyRequests, getWithForwardedFor(trusted, "198.51.100.1"))
}

func TestNewRouterRejectsBadTrustedProxy(t *testing.T) {
	_, err := NewRouter(newDependencies(t, &config.Config{Origin: "*", TrustedProxies: []string{"not-an-ip"}}))
	assert.Error(t, err)
}
