package http

import (
	"os"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/rs/zerolog"

	"github.com/jhoicas/staffops-api/internal/application/auth"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/application/quiz"
	"github.com/jhoicas/staffops-api/internal/application/report"
	"github.com/jhoicas/staffops-api/internal/application/shift"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AppName     string
	CORSOrigins string
	Logger      zerolog.Logger
	JWTSecret   string
	SwaggerPath string // vacío o inexistente = sin /docs

	AuthUC       *auth.AuthUseCase
	CompanyUC    *usecase.CompanyUseCase
	UserUC       *usecase.UserUseCase
	Policies     *usecase.PolicyService
	Shifts       *shift.LifecycleUseCase
	ShiftPDF     *report.PDFUseCase
	IncidentUC   *usecase.IncidentUseCase
	TrainingUC   *usecase.TrainingUseCase
	QuizUC       *quiz.UseCase
	Compliance   *quiz.ComplianceChecker
	ScheduleUC   *usecase.ScheduleUseCase
	TokenChecker ports.BotTokenChecker
	BotToken     string
}

// NewApp aplicación Fiber con middlewares comunes y todas las rutas registradas.
func NewApp(deps RouterDeps) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      deps.AppName,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
		ErrorHandler: fiberErrorHandler,
	})
	app.Use(recover.New())
	app.Use(RequestLogger(deps.Logger))
	origins := deps.CORSOrigins
	if origins == "" {
		origins = "*"
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))

	// Swagger UI: http://localhost:<port>/docs
	if deps.SwaggerPath != "" {
		if _, err := os.Stat(deps.SwaggerPath); err == nil {
			app.Use(swagger.New(swagger.Config{
				BasePath: "/",
				FilePath: deps.SwaggerPath,
				Path:     "docs",
				Title:    "StaffOps API",
			}))
		}
	}

	Router(app, deps)
	return app
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	v := NewValidator()

	system := NewSystemHandler(deps.AppName, deps.TokenChecker, deps.BotToken)
	app.Get("/health", system.Health)
	app.Get("/demo", system.Demo)

	api := app.Group("/api")
	api.Post("/check-token", system.CheckToken)

	// Onboarding (público; /invite lo llama el bot)
	onboarding := NewOnboardingHandler(deps.AuthUC, v)
	ob := api.Group("/onboarding")
	ob.Post("/owner", onboarding.Owner)
	ob.Post("/login", onboarding.Login)
	ob.Post("/invite", onboarding.Invite)

	authn := AuthMiddleware(deps.JWTSecret)
	admin := RequireRole(entity.RoleOwner, entity.RoleManager)
	anyRole := RequireRole(entity.RoleOwner, entity.RoleManager, entity.RoleStaff)

	companyHandler := NewCompanyHandler(deps.CompanyUC, v)
	api.Post("/companies", companyHandler.Create)
	api.Get("/companies", authn, RequireRole(entity.RoleOwner), companyHandler.List)

	// Rutas de una empresa: token válido y de la misma empresa.
	co := api.Group("/companies/:company_id", authn, RequireCompanyScope("company_id"))
	co.Get("/", anyRole, companyHandler.GetByID)
	co.Post("/locations", admin, companyHandler.CreateLocation)
	co.Get("/locations", anyRole, companyHandler.ListLocations)

	users := NewUserHandler(deps.UserUC, v)
	co.Post("/users", admin, users.Create)
	co.Get("/users", admin, users.List)
	co.Post("/invites", admin, users.CreateInvite)
	co.Get("/invites", admin, users.ListInvites)

	policies := NewPolicyHandler(deps.Policies, v)
	co.Get("/policies", anyRole, policies.Get)
	co.Put("/policies", admin, policies.Replace)
	co.Post("/policies", admin, policies.Replace)
	co.Post("/checklists", admin, policies.CreateChecklist)
	co.Get("/checklists", anyRole, policies.ListChecklists)

	shifts := NewShiftHandler(deps.Shifts, deps.ShiftPDF, v)
	co.Post("/shifts/open", anyRole, shifts.Open)
	co.Get("/shifts", anyRole, shifts.List)
	co.Get("/shifts/:shift_id", anyRole, shifts.Get)
	co.Post("/shifts/:shift_id/close", anyRole, shifts.Close)
	co.Get("/shifts/:shift_id/report.pdf", admin, shifts.ReportPDF)

	incidents := NewIncidentHandler(deps.IncidentUC, v)
	co.Post("/incidents", anyRole, incidents.Create)
	co.Get("/incidents", anyRole, incidents.List)
	co.Post("/incidents/:incident_id/resolve", admin, incidents.Resolve)

	training := NewTrainingHandler(deps.TrainingUC, v)
	co.Post("/training/sections", admin, training.CreateSection)
	co.Get("/training/sections", anyRole, training.ListSections)
	co.Post("/training/lessons", admin, training.CreateLesson)
	co.Get("/training/lessons", anyRole, training.ListLessons)

	quizzes := NewQuizHandler(deps.QuizUC, deps.Compliance, v)
	co.Post("/quizzes", admin, quizzes.Create)
	co.Get("/quizzes", anyRole, quizzes.List)
	co.Post("/quizzes/:quiz_id/questions", admin, quizzes.AddQuestion)
	co.Get("/quizzes/:quiz_id/questions", anyRole, quizzes.ListQuestions)
	co.Post("/quizzes/:quiz_id/attempts", anyRole, quizzes.SubmitAttempt)
	co.Get("/quizzes/:quiz_id/attempts", admin, quizzes.ListAttempts)
	co.Get("/compliance/:user_id", anyRole, quizzes.Compliance)

	schedule := NewScheduleHandler(deps.ScheduleUC, v)
	co.Post("/schedule", admin, schedule.CreateEntry)
	co.Get("/schedule", anyRole, schedule.ListEntries)
	co.Post("/mystery-shopper", admin, schedule.CreateMysteryReport)
	co.Get("/mystery-shopper", admin, schedule.ListMysteryReports)
}
