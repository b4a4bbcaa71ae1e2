package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
	echoSwagger "github.com/swaggo/echo-swagger"

	_ "github.com/Phanuelx/Education-App/docs"
	"github.com/Phanuelx/Education-App/internal/api/handler"
	"github.com/Phanuelx/Education-App/internal/api/middleware"
	"github.com/Phanuelx/Education-App/internal/core/domain"
	"github.com/Phanuelx/Education-App/internal/core/ports"
	"github.com/Phanuelx/Education-App/internal/infrastructure/http/handlers"
)

// Dependencies carries everything the HTTP layer needs.
type Dependencies struct {
	Auth        ports.AuthService
	Identity    ports.IdentityService
	Courses     ports.CourseService
	Classes     ports.ClassService
	Enrollments ports.EnrollmentService

	// Readiness lists the backing services probed by /health/ready.
	Readiness map[string]handlers.Pinger
	// HorizonDays is the default agenda window.
	HorizonDays int

	// Registerer and Gatherer default to the global Prometheus registry.
	Registerer prometheus.Registerer
	Gatherer   prometheus.Gatherer

	Log zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	if deps.Registerer == nil {
		deps.Registerer = prometheus.DefaultRegisterer
	}
	if deps.Gatherer == nil {
		deps.Gatherer = prometheus.DefaultGatherer
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Log)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(requestLogger(deps.Log))
	e.Use(echomiddleware.CORS())
	e.Use(echoprometheus.NewMiddlewareWithConfig(echoprometheus.MiddlewareConfig{
		Subsystem:                 "learning_http",
		Registerer:                deps.Registerer,
		DoNotUseRequestPathFor404: true,
		Skipper: func(c echo.Context) bool {
			return c.Path() == "/metrics"
		},
	}))

	// --- Health probes, metrics and docs (no auth required) ---
	healthHandler := handlers.NewHealthHandler()
	healthDepsHandler := handlers.NewHealthDependenciesHandler(deps.Readiness)

	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", healthDepsHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandlerWithConfig(echoprometheus.HandlerConfig{Gatherer: deps.Gatherer}))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	requireAuth := middleware.Auth(deps.Auth)
	optionalAuth := middleware.OptionalAuth(deps.Auth)
	staff := middleware.RBAC(domain.RoleAdmin, domain.RoleTeacher)
	adminOnly := middleware.RBAC(domain.RoleAdmin)

	// --- Auth routes ---
	authHandler := handler.NewAuthHandler(deps.Auth, deps.Identity)
	auth := e.Group("/auth")
	auth.POST("/register", authHandler.Register)
	auth.POST("/login", authHandler.Login)
	auth.POST("/passcode", authHandler.RequestPasscode)
	auth.POST("/passcode/verify", authHandler.VerifyPasscode)
	auth.POST("/password/reset", authHandler.ResetPassword)

	v1 := e.Group("/v1")

	// --- Users ---
	userHandler := handler.NewUserHandler(deps.Identity)
	users := v1.Group("/users", requireAuth)
	users.GET("", userHandler.List, adminOnly)
	users.POST("", userHandler.Create, adminOnly)
	users.GET("/:id", userHandler.Get)
	users.PUT("/:id", userHandler.Update)
	users.DELETE("/:id", userHandler.Delete, adminOnly)

	// --- Courses ---
	courseHandler := handler.NewCourseHandler(deps.Courses)
	courses := v1.Group("/courses")
	courses.GET("", courseHandler.List, optionalAuth)
	courses.GET("/:id", courseHandler.Get, optionalAuth)
	courses.POST("", courseHandler.Create, requireAuth, staff)
	courses.PUT("/:id", courseHandler.Update, requireAuth, staff)
	courses.DELETE("/:id", courseHandler.Delete, requireAuth, staff)

	// --- Classes ---
	classHandler := handler.NewClassHandler(deps.Classes, deps.Courses, deps.HorizonDays)
	classes := v1.Group("/classes", requireAuth)
	classes.GET("", classHandler.List)
	classes.GET("/upcoming", classHandler.Upcoming)
	classes.GET("/:id", classHandler.Get)
	classes.POST("", classHandler.Create, staff)
	classes.PUT("/:id", classHandler.Update, staff)
	classes.DELETE("/:id", classHandler.Delete, staff)

	v1.GET("/me/agenda", classHandler.Agenda, requireAuth, middleware.RBAC(domain.RoleStudent, domain.RoleTeacher))

	// --- Enrollments ---
	enrollmentHandler := handler.NewEnrollmentHandler(deps.Enrollments)
	enrollments := v1.Group("/enrollments", requireAuth)
	enrollments.POST("", enrollmentHandler.Enroll, middleware.RBAC(domain.RoleStudent, domain.RoleAdmin))
	enrollments.GET("/student/:id", enrollmentHandler.ListByStudent)
	enrollments.GET("/course/:id", enrollmentHandler.ListByCourse, staff)
	enrollments.GET("/:id", enrollmentHandler.Get)
	enrollments.PUT("/:id/status", enrollmentHandler.SetStatus, adminOnly)
	enrollments.DELETE("/:id", enrollmentHandler.Delete)

	return e
}

// requestLogger writes one zerolog line per request.
func requestLogger(log zerolog.Logger) echo.MiddlewareFunc {
	return echomiddleware.RequestLoggerWithConfig(echomiddleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v echomiddleware.RequestLoggerValues) error {
			evt := log.Info()
			switch {
			case v.Status >= 500:
				evt = log.Error().Err(v.Error)
			case v.Error != nil:
				evt = log.Warn().Err(v.Error)
			}
			evt.Str("method", v.Method).
				Str("uri", v.URI).
				Int("status", v.Status).
				Dur("latency", v.Latency).
				Str("request_id", v.RequestID).
				Msg("request")
			return nil
		},
	})
}
