package shift_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/quiz"
	"github.com/jhoicas/staffops-api/internal/application/shift"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	shiftrules "github.com/jhoicas/staffops-api/internal/domain/shift"
	"github.com/jhoicas/staffops-api/internal/infrastructure/memory"
)

// ────────────────────────────────────────────────────────────────
// Fixture
// ────────────────────────────────────────────────────────────────

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

type fixture struct {
	store    *memory.Store
	clock    *fakeClock
	policies *usecase.PolicyService
	uc       *shift.LifecycleUseCase
	company  *entity.Company
	user     *entity.User
	location *entity.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	clk := &fakeClock{now: time.Date(2026, 3, 10, 8, 0, 0, 0, time.UTC)}
	policies := usecase.NewPolicyService(st.Policies(), st.Checklists(), st.Companies(), clk)

	c := &entity.Company{ID: "c1", Name: "Café Norte", Timezone: entity.DefaultTimezone, CreatedAt: clk.Now()}
	require.NoError(t, st.Companies().Create(ctx, c))
	u := &entity.User{ID: "u1", CompanyID: c.ID, Name: "Ana", Role: entity.RoleStaff, Status: entity.UserStatusActive}
	require.NoError(t, st.Users().Create(ctx, u))
	l := &entity.Location{ID: "l1", CompanyID: c.ID, Name: "Centro"}
	require.NoError(t, st.Locations().Create(ctx, l))

	uc := shift.NewLifecycleUseCase(shift.Deps{
		Tx:         st.TxRunner(),
		Shifts:     st.Shifts(),
		Companies:  st.Companies(),
		Users:      st.Users(),
		Locations:  st.Locations(),
		Policies:   policies,
		Compliance: quiz.NewComplianceChecker(st.Quizzes(), policies, clk),
		Clock:      clk,
		Logger:     zerolog.Nop(),
	})
	return &fixture{store: st, clock: clk, policies: policies, uc: uc, company: c, user: u, location: l}
}

func ptr[T any](v T) *T { return &v }

// setPolicy reemplaza la política partiendo de los valores por defecto.
func (f *fixture) setPolicy(t *testing.T, in dto.PolicyRequest) {
	t.Helper()
	_, err := f.policies.Replace(context.Background(), f.company.ID, in)
	require.NoError(t, err)
}

// permissive no exige evidencias ni tests.
func permissive() dto.PolicyRequest {
	return dto.PolicyRequest{
		RequireOpeningChecklist: ptr(false),
		RequireClosingChecklist: ptr(false),
		TestsBlockShiftClosure:  ptr(false),
	}
}

func (f *fixture) open(t *testing.T) *dto.ShiftResponse {
	t.Helper()
	s, err := f.uc.Open(context.Background(), shift.OpenInput{
		CompanyID:  f.company.ID,
		LocationID: f.location.ID,
		UserID:     f.user.ID,
	})
	require.NoError(t, err)
	return s
}

// passMonthly registra un test mensual aprobado que termina en finishedAt.
func (f *fixture) passMonthly(t *testing.T, finishedAt time.Time) {
	t.Helper()
	ctx := context.Background()
	q := &entity.Quiz{ID: "q-monthly", CompanyID: f.company.ID, Title: "Mensual", Type: entity.QuizMonthly, PassingScore: 70}
	require.NoError(t, f.store.Quizzes().Create(ctx, q))
	require.NoError(t, f.store.Quizzes().CreateAttempt(ctx, &entity.QuizAttempt{
		ID: "a1", QuizID: q.ID, UserID: f.user.ID, Score: 100, Passed: true,
		StartedAt: finishedAt.Add(-5 * time.Minute), FinishedAt: finishedAt,
	}))
}

// ────────────────────────────────────────────────────────────────
// Open
// ────────────────────────────────────────────────────────────────

func TestOpen_CalculaPlazoDeCierre(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, dto.PolicyRequest{
		RequireOpeningChecklist:   ptr(false),
		ShiftCloseDeadlineMinutes: ptr(45),
	})

	s := f.open(t)

	assert.Equal(t, entity.ShiftOpen, s.Status)
	assert.Equal(t, f.clock.Now(), s.StartAt)
	assert.Equal(t, f.clock.Now().Add(45*time.Minute), s.CloseDeadlineAt)
	assert.Nil(t, s.EndAt)
	assert.Empty(t, s.CashLogs)
}

func TestOpen_SinPoliticaUsaDefaults(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.Open(context.Background(), shift.OpenInput{
		CompanyID: f.company.ID, LocationID: f.location.ID, UserID: f.user.ID,
	})
	require.ErrorIs(t, err, domain.ErrOpeningChecklistRequired)

	s, err := f.uc.Open(context.Background(), shift.OpenInput{
		CompanyID: f.company.ID, LocationID: f.location.ID, UserID: f.user.ID,
		Evidence: shiftEvidence("luces", "caja"),
	})
	require.NoError(t, err)
	assert.Equal(t, f.clock.Now().Add(90*time.Minute), s.CloseDeadlineAt)
	assert.Equal(t, []string{"luces", "caja"}, s.OpenData.Checklist)
}

func TestOpen_SegundoTurnoAbiertoEsConflicto(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, permissive())
	f.open(t)

	_, err := f.uc.Open(context.Background(), shift.OpenInput{
		CompanyID: f.company.ID, LocationID: f.location.ID, UserID: f.user.ID,
	})
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
	assert.ErrorIs(t, err, domain.ErrConflict)
}

func TestOpen_OrdenDeErrores(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	_, err := f.uc.Open(ctx, shift.OpenInput{CompanyID: "nope", LocationID: "x", UserID: "y"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	// la política se evalúa antes que la existencia del usuario
	_, err = f.uc.Open(ctx, shift.OpenInput{CompanyID: f.company.ID, LocationID: "x", UserID: "y"})
	assert.ErrorIs(t, err, domain.ErrOpeningChecklistRequired)

	f.setPolicy(t, permissive())
	_, err = f.uc.Open(ctx, shift.OpenInput{CompanyID: f.company.ID, LocationID: "x", UserID: "y"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = f.uc.Open(ctx, shift.OpenInput{CompanyID: f.company.ID, LocationID: "x", UserID: f.user.ID})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestOpen_UsuarioDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, permissive())
	ctx := context.Background()
	require.NoError(t, f.store.Users().Create(ctx, &entity.User{ID: "u-otro", CompanyID: "c2", Role: entity.RoleStaff, Status: entity.UserStatusActive}))

	_, err := f.uc.Open(ctx, shift.OpenInput{CompanyID: f.company.ID, LocationID: f.location.ID, UserID: "u-otro"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestOpen_CajaCeroExplicita(t *testing.T) {
	f := newFixture(t)
	req := permissive()
	req.RequireCashOpen = ptr(true)
	f.setPolicy(t, req)

	s, err := f.uc.OpenFromRequest(context.Background(), f.company.ID, dto.OpenShiftRequest{
		LocationID:     f.location.ID,
		UserID:         f.user.ID,
		CashOpenAmount: ptr(decimal.Zero),
	})
	require.NoError(t, err)
	require.Len(t, s.CashLogs, 1)
	assert.Equal(t, entity.CashLogOpen, s.CashLogs[0].Type)
	assert.True(t, s.CashLogs[0].Amount.IsZero())
}

func TestOpen_Concurrente_SoloUnoGana(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, permissive())

	const n = 16
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		ok       int
		conflict int
	)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Open(context.Background(), shift.OpenInput{
				CompanyID: f.company.ID, LocationID: f.location.ID, UserID: f.user.ID,
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				ok++
			} else if assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen) {
				conflict++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, ok)
	assert.Equal(t, n-1, conflict)
	open, err := f.store.Shifts().ListOpen(context.Background())
	require.NoError(t, err)
	assert.Len(t, open, 1)
}

// ────────────────────────────────────────────────────────────────
// Close
// ────────────────────────────────────────────────────────────────

func TestClose_RegistraCajaDeAperturaYCierre(t *testing.T) {
	f := newFixture(t)
	req := permissive()
	req.RequireCashOpen = ptr(true)
	req.RequireCashClose = ptr(true)
	f.setPolicy(t, req)
	ctx := context.Background()

	opened, err := f.uc.OpenFromRequest(ctx, f.company.ID, dto.OpenShiftRequest{
		LocationID: f.location.ID, UserID: f.user.ID, CashOpenAmount: ptr(decimal.NewFromFloat(100.0)),
	})
	require.NoError(t, err)

	f.clock.Advance(30 * time.Minute)
	closed, err := f.uc.CloseFromRequest(ctx, f.company.ID, opened.ID, dto.CloseShiftRequest{
		CashCloseAmount: ptr(decimal.NewFromFloat(150.0)),
		Notes:           "sin novedades",
	})
	require.NoError(t, err)

	assert.Equal(t, entity.ShiftClosed, closed.Status)
	require.NotNil(t, closed.EndAt)
	assert.Equal(t, f.clock.Now(), *closed.EndAt)
	require.Len(t, closed.CashLogs, 2)
	assert.Equal(t, entity.CashLogOpen, closed.CashLogs[0].Type)
	assert.True(t, closed.CashLogs[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, entity.CashLogClose, closed.CashLogs[1].Type)
	assert.True(t, closed.CashLogs[1].Amount.Equal(decimal.NewFromInt(150)))
	require.NotNil(t, closed.CloseData)
	assert.Equal(t, "sin novedades", closed.CloseData.Notes)

	stored, err := f.uc.Get(ctx, f.company.ID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftClosed, stored.Status)
	assert.Len(t, stored.CashLogs, 2)
}

func TestClose_PlazoVencidoQuedaExpired(t *testing.T) {
	f := newFixture(t)
	req := permissive()
	req.ShiftCloseDeadlineMinutes = ptr(0)
	f.setPolicy(t, req)
	ctx := context.Background()

	opened := f.open(t)
	f.clock.Advance(time.Second)

	_, err := f.uc.Close(ctx, shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrShiftExpired)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := f.uc.Get(ctx, f.company.ID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftExpired, stored.Status)
	require.NotNil(t, stored.EndAt)
	assert.Nil(t, stored.CloseData)

	// un turno vencido ya no está abierto
	_, err = f.uc.Close(ctx, shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrShiftNotOpen)

	// y libera al usuario para abrir otro
	f.open(t)
}

func TestClose_EnElLimiteExactoNoVence(t *testing.T) {
	f := newFixture(t)
	req := permissive()
	req.ShiftCloseDeadlineMinutes = ptr(60)
	f.setPolicy(t, req)

	opened := f.open(t)
	f.clock.Advance(60 * time.Minute)

	closed, err := f.uc.Close(context.Background(), shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftClosed, closed.Status)
}

func TestClose_TestMensualPendienteBloquea(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, dto.PolicyRequest{
		RequireOpeningChecklist: ptr(false),
		RequireClosingChecklist: ptr(false),
	})
	opened := f.open(t)

	_, err := f.uc.Close(context.Background(), shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrMonthlyTestOverdue)

	stored, err := f.uc.Get(context.Background(), f.company.ID, opened.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftOpen, stored.Status)
}

func TestClose_TestMensualAlDiaPermiteCerrar(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, dto.PolicyRequest{
		RequireOpeningChecklist: ptr(false),
		RequireClosingChecklist: ptr(false),
	})
	f.passMonthly(t, f.clock.Now().Add(-29*24*time.Hour))
	opened := f.open(t)

	closed, err := f.uc.Close(context.Background(), shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID})
	require.NoError(t, err)
	assert.Equal(t, entity.ShiftClosed, closed.Status)
}

func TestClose_TestAntesQueEvidencias(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, dto.PolicyRequest{RequireOpeningChecklist: ptr(false)})
	opened := f.open(t)

	// sin checklist de cierre y sin test: gana el test
	_, err := f.uc.Close(context.Background(), shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrMonthlyTestOverdue)

	f.passMonthly(t, f.clock.Now())
	_, err = f.uc.Close(context.Background(), shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrClosingChecklistRequired)
}

func TestClose_TurnoDeOtraEmpresa(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, permissive())
	opened := f.open(t)
	require.NoError(t, f.store.Companies().Create(context.Background(), &entity.Company{ID: "c2", Name: "Otra"}))

	_, err := f.uc.Close(context.Background(), shift.CloseInput{CompanyID: "c2", ShiftID: opened.ID})
	assert.ErrorIs(t, err, domain.ErrShiftNotFound)
}

func TestClose_TurnoYaCerrado(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, permissive())
	opened := f.open(t)
	in := shift.CloseInput{CompanyID: f.company.ID, ShiftID: opened.ID}

	_, err := f.uc.Close(context.Background(), in)
	require.NoError(t, err)
	_, err = f.uc.Close(context.Background(), in)
	assert.ErrorIs(t, err, domain.ErrShiftNotOpen)
}

// ────────────────────────────────────────────────────────────────
// List
// ────────────────────────────────────────────────────────────────

func TestList_MasRecientesPrimero(t *testing.T) {
	f := newFixture(t)
	f.setPolicy(t, permissive())
	first := f.open(t)
	_, err := f.uc.Close(context.Background(), shift.CloseInput{CompanyID: f.company.ID, ShiftID: first.ID})
	require.NoError(t, err)
	f.clock.Advance(time.Hour)
	second := f.open(t)

	list, err := f.uc.List(context.Background(), f.company.ID, dto.PageRequest{})
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, second.ID, list.Items[0].ID)
	assert.Equal(t, first.ID, list.Items[1].ID)
	assert.Equal(t, 20, list.Page.Limit)
}

func shiftEvidence(items ...string) shiftrules.OpenEvidence {
	return shiftrules.OpenEvidence{Checklist: items}
}
