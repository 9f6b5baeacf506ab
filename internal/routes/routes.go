package routes

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"panda-server/internal/config"
	"panda-server/internal/handlers"
	"panda-server/internal/localisation"
	"panda-server/internal/metrics"
	"panda-server/internal/middleware"
	"panda-server/internal/service"
)

// Dependencies are the collaborators the HTTP layer is built from.
type Dependencies struct {
	Config       *config.Config
	Patients     *service.PatientService
	Appointments *service.AppointmentService
	Translator   *localisation.Translator
	Metrics      *metrics.Collector
	Logger       *zap.Logger
}

// NewRouter builds a gin engine with the global middleware chain and every
// route installed. Forwarding headers are honoured only from the configured
// trusted proxies; with none configured the peer address is the client.
func NewRouter(deps Dependencies) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(deps.Config.TrustedProxies); err != nil {
		return nil, fmt.Errorf("setting trusted proxies: %w", err)
	}

	router.Use(gin.Recovery())
	router.Use(cors.New(corsConfig(deps.Config.Origin)))
	router.Use(middleware.LanguageMiddleware(deps.Translator))
	router.Use(middleware.MetricsMiddleware(deps.Metrics))
	router.Use(middleware.LoggerMiddleware(deps.Logger))
	router.Use(middleware.RateLimitMiddleware(deps.Config.RateLimit, deps.Translator))

	SetupRoutes(router, deps)
	return router, nil
}

func corsConfig(origin string) cors.Config {
	corsConfig := cors.DefaultConfig()
	if origin == "" || origin == "*" {
		corsConfig.AllowAllOrigins = true
	} else {
		corsConfig.AllowOrigins = strings.Split(origin, ",")
		corsConfig.AllowCredentials = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Accept", "Accept-Language", "Authorization"}
	return corsConfig
}

// SetupRoutes configures the application routes.
func SetupRoutes(router *gin.Engine, deps Dependencies) {
	patientHandler := handlers.NewPatientHandler(deps.Patients, deps.Translator, deps.Metrics)
	appointmentHandler := handlers.NewAppointmentHandler(deps.Appointments, deps.Translator, deps.Metrics)

	// Reads are public; writes need a bearer token when a secret is configured.
	auth := middleware.AuthMiddleware(deps.Config.JWTSecret, deps.Translator)

	api := router.Group("/api")
	{
		patientRoutes := api.Group("/patients")
		{
			patientRoutes.GET("", patientHandler.GetPatients)
			patientRoutes.POST("", auth, patientHandler.CreatePatient)
			patientRoutes.GET("/:nhs_number", patientHandler.GetPatient)
			patientRoutes.PUT("/:nhs_number", auth, patientHandler.UpdatePatient)
			patientRoutes.DELETE("/:nhs_number", auth, patientHandler.DeletePatient)
		}

		appointmentRoutes := api.Group("/appointments")
		{
			appointmentRoutes.GET("", appointmentHandler.GetAppointments)
			appointmentRoutes.POST("", auth, appointmentHandler.CreateAppointment)
			appointmentRoutes.GET("/:id", appointmentHandler.GetAppointmentByID)
			appointmentRoutes.PUT("/:id", auth, appointmentHandler.UpdateAppointment)
			appointmentRoutes.DELETE("/:id", auth, appointmentHandler.CancelAppointment)
		}
	}

	// Simple health check endpoint
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	router.GET("/metrics", gin.WrapH(deps.Metrics.Handler()))
}
