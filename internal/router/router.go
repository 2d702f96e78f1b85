package router

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/kiruthick103/studenthub-api/internal/config"
	"github.com/kiruthick103/studenthub-api/internal/handler"
	"github.com/kiruthick103/studenthub-api/internal/middleware"
	"github.com/kiruthick103/studenthub-api/internal/models"
)

// Dependencies groups router dependencies for registration.
type Dependencies struct {
	AuthHandler         *handler.AuthHandler
	StudentHandler      *handler.StudentHandler
	SubjectHandler      *handler.SubjectHandler
	MarkHandler         *handler.MarkHandler
	AttendanceHandler   *handler.AttendanceHandler
	AssignmentHandler   *handler.AssignmentHandler
	SubmissionHandler   *handler.SubmissionHandler
	AnnouncementHandler *handler.AnnouncementHandler
	MaterialHandler     *handler.MaterialHandler
	StudyPlanHandler    *handler.StudyPlanHandler
	AnalyticsHandler    *handler.AnalyticsHandler
	EventHandler        *handler.EventHandler
	SeedHandler         *handler.SeedHandler
	JWTMiddleware       fiber.Handler
}

// Register wires the HTTP routes into the fiber application.
func Register(app *fiber.App, cfg config.Config, deps Dependencies) {
	api := app.Group("/api", func(c *fiber.Ctx) error {
		c.Set("X-Application", cfg.AppName)
		return c.Next()
	})
	api.Get("/health", handler.HealthCheck(cfg))
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	jwtMiddleware := deps.JWTMiddleware
	if jwtMiddleware == nil {
		jwtMiddleware = func(c *fiber.Ctx) error { return c.Next() }
	}

	if deps.AuthHandler != nil {
		deps.AuthHandler.Register(api.Group("/auth"))
		deps.AuthHandler.RegisterProtected(api.Group("/auth", jwtMiddleware))
	}

	teacher := api.Group("/teacher", jwtMiddleware, middleware.RequireRole(models.RoleTeacher))
	student := api.Group("/student", jwtMiddleware, middleware.RequireRole(models.RoleStudent))
	shared := api.Group("/me", jwtMiddleware)

	if deps.StudentHandler != nil {
		deps.StudentHandler.Register(teacher.Group("/students"))
	}

	if deps.SubjectHandler != nil {
		deps.SubjectHandler.Register(api.Group("/subjects", jwtMiddleware))
		deps.SubjectHandler.RegisterManagement(teacher.Group("/subjects"))
	}

	if deps.MarkHandler != nil {
		deps.MarkHandler.RegisterTeacher(teacher)
		deps.MarkHandler.RegisterStudent(student)
	}

	if deps.AttendanceHandler != nil {
		deps.AttendanceHandler.RegisterTeacher(teacher)
		deps.AttendanceHandler.RegisterStudent(student)
	}

	if deps.AssignmentHandler != nil {
		deps.AssignmentHandler.RegisterTeacher(teacher)
		deps.AssignmentHandler.RegisterStudent(student)
	}

	if deps.SubmissionHandler != nil {
		deps.SubmissionHandler.RegisterTeacher(teacher)
		deps.SubmissionHandler.RegisterStudent(student)
	}

	if deps.AnnouncementHandler != nil {
		deps.AnnouncementHandler.Register(shared)
		deps.AnnouncementHandler.RegisterTeacher(teacher)
	}

	if deps.MaterialHandler != nil {
		deps.MaterialHandler.Register(shared)
		deps.MaterialHandler.RegisterTeacher(teacher)
	}

	if deps.StudyPlanHandler != nil {
		deps.StudyPlanHandler.Register(student)
	}

	if deps.AnalyticsHandler != nil {
		deps.AnalyticsHandler.RegisterTeacher(teacher)
		deps.AnalyticsHandler.RegisterStudent(student)
	}

	if deps.EventHandler != nil {
		deps.EventHandler.Register(shared)
		deps.EventHandler.RegisterTeacher(teacher)
	}

	if deps.SeedHandler != nil {
		deps.SeedHandler.Register(api.Group("/seed"))
	}
}
