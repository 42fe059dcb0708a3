package quiz_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/quiz"
	"github.com/jhoicas/staffops-api/internal/application/usecase"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/infrastructure/memory"
)

type fixedClock struct{ now time.Time }

func (c *fixedClock) Now() time.Time { return c.now }

type env struct {
	store      *memory.Store
	clock      *fixedClock
	policies   *usecase.PolicyService
	uc         *quiz.UseCase
	compliance *quiz.ComplianceChecker
}

func newEnv(t *testing.T) *env {
	t.Helper()
	ctx := context.Background()
	st := memory.New()
	clk := &fixedClock{now: time.Date(2026, 5, 1, 12, 0, 0, 0, time.UTC)}
	require.NoError(t, st.Companies().Create(ctx, &entity.Company{ID: "c1", Name: "Bar Sur"}))
	require.NoError(t, st.Users().Create(ctx, &entity.User{ID: "u1", CompanyID: "c1", Role: entity.RoleStaff, Status: entity.UserStatusActive}))
	policies := usecase.NewPolicyService(st.Policies(), st.Checklists(), st.Companies(), clk)
	return &env{
		store:      st,
		clock:      clk,
		policies:   policies,
		uc:         quiz.NewUseCase(st.Quizzes(), st.Companies(), st.Users(), clk),
		compliance: quiz.NewComplianceChecker(st.Quizzes(), policies, clk),
	}
}

// monthlyQuiz crea un quiz mensual con dos preguntas de una sola respuesta correcta (índice 0).
func (e *env) monthlyQuiz(t *testing.T) (quizID string, questionIDs []string) {
	t.Helper()
	ctx := context.Background()
	q, err := e.uc.Create(ctx, "c1", dto.CreateQuizRequest{Title: "Marzo", Type: entity.QuizMonthly})
	require.NoError(t, err)
	for _, text := range []string{"¿Temperatura de la cámara?", "¿Vida útil de la leche abierta?"} {
		qq, err := e.uc.AddQuestion(ctx, "c1", q.ID, dto.AddQuestionRequest{
			Text:           text,
			Answers:        []string{"correcta", "incorrecta"},
			CorrectAnswers: []int{0},
		})
		require.NoError(t, err)
		questionIDs = append(questionIDs, qq.ID)
	}
	return q.ID, questionIDs
}

// ────────────────────────────────────────────────────────────────
// Quizzes
// ────────────────────────────────────────────────────────────────

func TestCreate_PuntajeMinimoPorDefecto(t *testing.T) {
	e := newEnv(t)
	q, err := e.uc.Create(context.Background(), "c1", dto.CreateQuizRequest{Title: "Ingreso", Type: entity.QuizOnboarding})
	require.NoError(t, err)
	assert.Equal(t, entity.DefaultPassingScore, q.PassingScore)

	_, err = e.uc.Create(context.Background(), "nope", dto.CreateQuizRequest{Title: "x", Type: entity.QuizMonthly})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
}

func TestAddQuestion_IndiceFueraDeRango(t *testing.T) {
	e := newEnv(t)
	q, err := e.uc.Create(context.Background(), "c1", dto.CreateQuizRequest{Title: "x", Type: entity.QuizMonthly})
	require.NoError(t, err)

	_, err = e.uc.AddQuestion(context.Background(), "c1", q.ID, dto.AddQuestionRequest{
		Text: "?", Answers: []string{"a", "b"}, CorrectAnswers: []int{2},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidAnswerIndex)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSubmitAttempt_PuntuaYAprueba(t *testing.T) {
	e := newEnv(t)
	quizID, qs := e.monthlyQuiz(t)

	a, err := e.uc.SubmitAttempt(context.Background(), "c1", quizID, dto.SubmitAttemptRequest{
		UserID:  "u1",
		Answers: map[string][]int{qs[0]: {0}, qs[1]: {0}},
	})
	require.NoError(t, err)
	assert.Equal(t, 100, a.Score)
	assert.True(t, a.Passed)
	assert.Equal(t, e.clock.now, a.FinishedAt)

	a, err = e.uc.SubmitAttempt(context.Background(), "c1", quizID, dto.SubmitAttemptRequest{
		UserID:  "u1",
		Answers: map[string][]int{qs[0]: {0}, qs[1]: {1}},
	})
	require.NoError(t, err)
	assert.Equal(t, 50, a.Score)
	assert.False(t, a.Passed)

	list, err := e.uc.ListAttempts(context.Background(), "c1", quizID)
	require.NoError(t, err)
	assert.Len(t, list, 2)
}

func TestSubmitAttempt_InicioFuturoSeIgnora(t *testing.T) {
	e := newEnv(t)
	quizID, _ := e.monthlyQuiz(t)
	future := e.clock.now.Add(time.Hour)

	a, err := e.uc.SubmitAttempt(context.Background(), "c1", quizID, dto.SubmitAttemptRequest{UserID: "u1", StartedAt: &future})
	require.NoError(t, err)
	assert.Equal(t, e.clock.now, a.StartedAt)
	assert.Zero(t, a.Score)
}

func TestSubmitAttempt_QuizOUsuarioAjenos(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quizID, _ := e.monthlyQuiz(t)
	require.NoError(t, e.store.Companies().Create(ctx, &entity.Company{ID: "c2", Name: "Otra"}))

	_, err := e.uc.SubmitAttempt(ctx, "c2", quizID, dto.SubmitAttemptRequest{UserID: "u1"})
	assert.ErrorIs(t, err, domain.ErrQuizNotFound)

	_, err = e.uc.SubmitAttempt(ctx, "c1", quizID, dto.SubmitAttemptRequest{UserID: "fantasma"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

// ────────────────────────────────────────────────────────────────
// Compliance
// ────────────────────────────────────────────────────────────────

func TestIsCompliant_SinQuizzesMensualesNoCumple(t *testing.T) {
	e := newEnv(t)
	ok, err := e.compliance.IsCompliant(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsCompliant_SinExigenciaSiempreCumple(t *testing.T) {
	e := newEnv(t)
	off := false
	_, err := e.policies.Replace(context.Background(), "c1", dto.PolicyRequest{MonthlyTestRequired: &off})
	require.NoError(t, err)

	ok, err := e.compliance.IsCompliant(context.Background(), "c1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestIsCompliant_SoloCuentanAprobadosDentroDeLaVentana(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	quizID, qs := e.monthlyQuiz(t)

	// intento reprobado: no cuenta
	_, err := e.uc.SubmitAttempt(ctx, "c1", quizID, dto.SubmitAttemptRequest{UserID: "u1"})
	require.NoError(t, err)
	ok, err := e.compliance.IsCompliant(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)

	// aprobado hoy
	_, err = e.uc.SubmitAttempt(ctx, "c1", quizID, dto.SubmitAttemptRequest{
		UserID: "u1", Answers: map[string][]int{qs[0]: {0}, qs[1]: {0}},
	})
	require.NoError(t, err)
	ok, err = e.compliance.IsCompliant(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	// exactamente 30 días después sigue al día
	e.clock.now = e.clock.now.Add(quiz.ComplianceWindow)
	ok, err = e.compliance.IsCompliant(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.True(t, ok)

	// un segundo más y vence
	e.clock.now = e.clock.now.Add(time.Second)
	ok, err = e.compliance.IsCompliant(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestIsCompliant_QuizNoMensualNoCuenta(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	q, err := e.uc.Create(ctx, "c1", dto.CreateQuizRequest{Title: "Ingreso", Type: entity.QuizOnboarding})
	require.NoError(t, err)
	_, err = e.uc.SubmitAttempt(ctx, "c1", q.ID, dto.SubmitAttemptRequest{UserID: "u1"})
	require.NoError(t, err)

	ok, err := e.compliance.IsCompliant(ctx, "c1", "u1")
	require.NoError(t, err)
	assert.False(t, ok)
}
