// Package bootstrap arma los casos de uso sobre un conjunto de repositorios.
package bootstrap

import (
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"

	"github.com/jhoicas/staffops-api/internal/application/auth"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/application/quiz"
	"github.com/jhoicas/staffops-api/internal/application/report"
	"github.com/jhoicas/staffops-api/internal/application/shift"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
	"github.com/jhoicas/staffops-api/internal/infrastructure/memory"
	"github.com/jhoicas/staffops-api/internal/infrastructure/pdf"
	"github.com/jhoicas/staffops-api/internal/infrastructure/postgres"
)

// Repos adaptadores de persistencia.
type Repos struct {
	Tx          shift.TxRunner
	Companies   repository.CompanyRepository
	Locations   repository.LocationRepository
	Users       repository.UserRepository
	Credentials repository.CredentialRepository
	Invites     repository.InviteRepository
	Policies    repository.PolicyRepository
	Checklists  repository.ChecklistRepository
	Shifts      repository.ShiftRepository
	Incidents   repository.IncidentRepository
	Training    repository.TrainingRepository
	Quizzes     repository.QuizRepository
	Schedule    repository.ScheduleRepository
	Mystery     repository.MysteryShopperRepository
}

// MemoryRepos repositorios en memoria (STORAGE_DRIVER=memory y tests).
func MemoryRepos(st *memory.Store) Repos {
	return Repos{
		Tx:          st.TxRunner(),
		Companies:   st.Companies(),
		Locations:   st.Locations(),
		Users:       st.Users(),
		Credentials: st.Credentials(),
		Invites:     st.Invites(),
		Policies:    st.Policies(),
		Checklists:  st.Checklists(),
		Shifts:      st.Shifts(),
		Incidents:   st.Incidents(),
		Training:    st.Training(),
		Quizzes:     st.Quizzes(),
		Schedule:    st.Schedule(),
		Mystery:     st.MysteryShopper(),
	}
}

// PostgresRepos repositorios sobre el pool.
func PostgresRepos(pool *pgxpool.Pool) Repos {
	return Repos{
		Tx:          postgres.NewTxRunner(pool),
		Companies:   postgres.NewCompanyRepository(pool),
		Locations:   postgres.NewLocationRepository(pool),
		Users:       postgres.NewUserRepository(pool),
		Credentials: postgres.NewCredentialRepository(pool),
		Invites:     postgres.NewInviteRepository(pool),
		Policies:    postgres.NewPolicyRepository(pool),
		Checklists:  postgres.NewChecklistRepository(pool),
		Shifts:      postgres.NewShiftRepository(pool),
		Incidents:   postgres.NewIncidentRepository(pool),
		Training:    postgres.NewTrainingRepository(pool),
		Quizzes:     postgres.NewQuizRepository(pool),
		Schedule:    postgres.NewScheduleRepository(pool),
		Mystery:     postgres.NewMysteryShopperRepository(pool),
	}
}

// Options dependencias externas de los casos de uso.
type Options struct {
	JWT      auth.JWTConfig
	Notifier ports.Notifier // nil = NopNotifier
	Clock    ports.Clock    // nil = SystemClock
	Logger   zerolog.Logger
}

// Services casos de uso listos para el router y los jobs.
type Services struct {
	Auth       *auth.AuthUseCase
	Companies  *usecase.CompanyUseCase
	Users      *usecase.UserUseCase
	Policies   *usecase.PolicyService
	Shifts     *shift.LifecycleUseCase
	ShiftPDF   *report.PDFUseCase
	Incidents  *usecase.IncidentUseCase
	Training   *usecase.TrainingUseCase
	Quizzes    *quiz.UseCase
	Compliance *quiz.ComplianceChecker
	Schedule   *usecase.ScheduleUseCase
	Reminders  *shift.ReminderJob
}

// Build construye todos los casos de uso.
func Build(r Repos, o Options) *Services {
	clk := o.Clock
	if clk == nil {
		clk = ports.SystemClock{}
	}
	notifier := o.Notifier
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}

	policies := usecase.NewPolicyService(r.Policies, r.Checklists, r.Companies, clk)
	compliance := quiz.NewComplianceChecker(r.Quizzes, policies, clk)

	return &Services{
		Auth: auth.NewAuthUseCase(auth.Repos{
			Companies:   r.Companies,
			Locations:   r.Locations,
			Users:       r.Users,
			Credentials: r.Credentials,
			Invites:     r.Invites,
		}, o.JWT, clk),
		Companies: usecase.NewCompanyUseCase(r.Companies, r.Locations, clk),
		Users:     usecase.NewUserUseCase(r.Users, r.Invites, r.Companies, clk),
		Policies:  policies,
		Shifts: shift.NewLifecycleUseCase(shift.Deps{
			Tx:         r.Tx,
			Shifts:     r.Shifts,
			Companies:  r.Companies,
			Users:      r.Users,
			Locations:  r.Locations,
			Policies:   policies,
			Compliance: compliance,
			Clock:      clk,
			Logger:     o.Logger.With().Str("component", "shift").Logger(),
		}),
		ShiftPDF: report.NewPDFUseCase(r.Shifts, r.Companies, r.Locations, r.Users, pdf.NewMarotoPDFGenerator()),
		Incidents: usecase.NewIncidentUseCase(r.Incidents, r.Companies, r.Shifts, r.Users, policies, notifier, clk,
			o.Logger.With().Str("component", "incidents").Logger()),
		Training:   usecase.NewTrainingUseCase(r.Training, r.Companies, clk),
		Quizzes:    quiz.NewUseCase(r.Quizzes, r.Companies, r.Users, clk),
		Compliance: compliance,
		Schedule:   usecase.NewScheduleUseCase(r.Schedule, r.Mystery, r.Companies, r.Locations, r.Users, clk),
		Reminders: shift.NewReminderJob(r.Shifts, r.Users, policies, notifier, clk,
			o.Logger.With().Str("component", "reminders").Logger()),
	}
}
