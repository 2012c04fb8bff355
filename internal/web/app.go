package web

import (
	"net/http"
	"time"

	"meetingportal/internal/telemetry"
	"meetingportal/internal/web/static"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/filesystem"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type AppConfig struct {
	ServiceName  string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// AuthRequestsPerMinute caps auth API calls per client IP. Zero means 20.
	AuthRequestsPerMinute int
}

// NewApp builds the Fiber application with every route registered.
func NewApp(cfg AppConfig, h *Handler) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               cfg.ServiceName,
		DisableStartupMessage: true,
		ReadTimeout:           cfg.ReadTimeout,
		WriteTimeout:          cfg.WriteTimeout,
		ErrorHandler:          h.handleError,
	})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(telemetry.FiberMiddleware(cfg.ServiceName))
	app.Use(RequestLogger(h.logger))
	app.Use(SecurityHeaders())

	app.Use("/static", filesystem.New(filesystem.Config{
		Root:   http.FS(static.FS),
		MaxAge: 3600,
	}))

	maxAuth := cfg.AuthRequestsPerMinute
	if maxAuth == 0 {
		maxAuth = 20
	}
	authLimiter := limiter.New(limiter.Config{
		Max:        maxAuth,
		Expiration: time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests. Please try again later.",
			})
		},
	})

	app.Get("/health", h.Health)
	app.Get("/", func(c *fiber.Ctx) error {
		return c.Redirect("/login", fiber.StatusSeeOther)
	})

	// Auth screens
	app.Get("/login", h.ShowLoginPage)
	app.Get("/register", h.ShowRegisterPage)
	app.Get("/forgot-password", h.ShowForgotPasswordPage)
	app.Get("/reset-password", h.ShowResetPasswordPage)

	api := app.Group("/api")

	auth := api.Group("/auth", authLimiter)
	auth.Post("/register", h.Register)
	auth.Post("/login", h.Login)
	auth.Post("/logout", h.Logout)
	auth.Post("/forgot-password", h.ForgotPassword)
	auth.Post("/reset-password", h.ResetPassword)

	api.Get("/dashboard", h.RequireUser, h.Dashboard)

	meetings := api.Group("/meetings", h.RequireUser)
	meetings.Get("", h.ListMeetings)
	meetings.Post("", h.CreateMeeting)
	meetings.Get("/:id", h.GetMeeting)
	meetings.Put("/:id", h.UpdateMeeting)
	meetings.Delete("/:id", h.DeleteMeeting)
	meetings.Get("/:id/summary", h.GetMeetingSummary)
	meetings.Get("/:id/calendar.ics", h.ExportMeeting)

	meetings.Post("/:id/attendees", h.AddAttendee)
	meetings.Patch("/:id/attendees/:attendeeID", h.SetAttendeeStatus)
	meetings.Delete("/:id/attendees/:attendeeID", h.RemoveAttendee)

	meetings.Post("/:id/agenda", h.AddAgendaItem)
	meetings.Put("/:id/agenda/:itemID", h.UpdateAgendaItem)
	meetings.Delete("/:id/agenda/:itemID", h.RemoveAgendaItem)

	meetings.Post("/:id/tasks", h.AddTask)
	meetings.Patch("/:id/tasks/:taskID", h.SetTaskStatus)
	meetings.Delete("/:id/tasks/:taskID", h.RemoveTask)

	meetings.Post("/:id/notes", h.AddNote)

	return app
}
