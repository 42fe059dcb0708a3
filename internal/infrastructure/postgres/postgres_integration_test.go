package postgres_test

import (
	"context"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/staffops-api/internal/application/shift"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
	"github.com/jhoicas/staffops-api/internal/infrastructure/postgres"
	"github.com/jhoicas/staffops-api/pkg/config"
)

// Requiere TEST_DB_DSN apuntando a una base desechable; sin ella los tests se omiten.
func setupPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: dsn})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))
	// Segunda pasada: el esquema es idempotente.
	require.NoError(t, postgres.Migrate(ctx, pool))
	return pool
}

type seed struct {
	companyID  string
	locationID string
	userID     string
}

func seedCompany(t *testing.T, pool *pgxpool.Pool) seed {
	t.Helper()
	ctx := context.Background()
	now := time.Now().UTC()
	s := seed{companyID: uuid.NewString(), locationID: uuid.NewString(), userID: uuid.NewString()}
	require.NoError(t, postgres.NewCompanyRepository(pool).Create(ctx,
		&entity.Company{ID: s.companyID, Name: "Café Prueba", Timezone: entity.DefaultTimezone, CreatedAt: now}))
	require.NoError(t, postgres.NewLocationRepository(pool).Create(ctx,
		&entity.Location{ID: s.locationID, CompanyID: s.companyID, Name: "Centro", CreatedAt: now}))
	require.NoError(t, postgres.NewUserRepository(pool).Create(ctx,
		&entity.User{ID: s.userID, CompanyID: s.companyID, Name: "Ana", Role: entity.RoleStaff, Status: entity.UserStatusActive, CreatedAt: now}))
	return s
}

func newOpenShift(s seed, now time.Time, cash *decimal.Decimal) *entity.Shift {
	sh := &entity.Shift{
		ID:              uuid.NewString(),
		CompanyID:       s.companyID,
		LocationID:      s.locationID,
		UserID:          s.userID,
		StartAt:         now,
		Status:          entity.ShiftOpen,
		CloseDeadlineAt: now.Add(90 * time.Minute),
		OpenData:        entity.ShiftOpenData{Checklist: []string{"luces", "caja"}},
	}
	if cash != nil {
		sh.CashLogs = []entity.CashLog{{Type: entity.CashLogOpen, Amount: *cash, CreatedAt: now}}
	}
	return sh
}

// ──────────────────────────────────────────────────────────────
// Turnos
// ──────────────────────────────────────────────────────────────

func TestShiftRepo_OnlyOneOpenPerUser(t *testing.T) {
	pool := setupPool(t)
	s := seedCompany(t, pool)
	repo := postgres.NewShiftRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	require.NoError(t, repo.Create(ctx, newOpenShift(s, now, nil)))
	err := repo.Create(ctx, newOpenShift(s, now, nil))
	assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
}

func TestShiftRepo_CashLogsAppendOnly(t *testing.T) {
	pool := setupPool(t)
	s := seedCompany(t, pool)
	repo := postgres.NewShiftRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	open := decimal.NewFromInt(100)
	sh := newOpenShift(s, now, &open)
	require.NoError(t, repo.Create(ctx, sh))

	sh.Close(now.Add(time.Hour), entity.ShiftCloseData{Checklist: []string{"limpieza"}, Notes: "ok"},
		entity.CashAmount{Supplied: true, Value: decimal.NewFromInt(150)})
	require.NoError(t, repo.Update(ctx, sh))

	got, err := repo.GetByID(ctx, sh.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, entity.ShiftClosed, got.Status)
	require.NotNil(t, got.CloseData)
	assert.Equal(t, "ok", got.CloseData.Notes)
	assert.Equal(t, []string{"luces", "caja"}, got.OpenData.Checklist)
	require.Len(t, got.CashLogs, 2)
	assert.Equal(t, entity.CashLogOpen, got.CashLogs[0].Type)
	assert.True(t, got.CashLogs[0].Amount.Equal(decimal.NewFromInt(100)))
	assert.Equal(t, entity.CashLogClose, got.CashLogs[1].Type)
	assert.True(t, got.CashLogs[1].Amount.Equal(decimal.NewFromInt(150)))

	open2, err := repo.FindOpenByUser(ctx, s.companyID, s.userID)
	require.NoError(t, err)
	assert.Nil(t, open2)
}

func TestShiftRepo_CashAmountKeepsFullPrecision(t *testing.T) {
	pool := setupPool(t)
	s := seedCompany(t, pool)
	repo := postgres.NewShiftRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	open := decimal.RequireFromString("100.125")
	sh := newOpenShift(s, now, &open)
	require.NoError(t, repo.Create(ctx, sh))

	got, err := repo.GetByID(ctx, sh.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got.CashLogs, 1)
	assert.True(t, got.CashLogs[0].Amount.Equal(open), "monto leído: %s", got.CashLogs[0].Amount)
}

func TestShiftRepo_MissingAndMalformedIDs(t *testing.T) {
	pool := setupPool(t)
	repo := postgres.NewShiftRepository(pool)
	ctx := context.Background()

	got, err := repo.GetByID(ctx, uuid.NewString())
	require.NoError(t, err)
	assert.Nil(t, got)

	got, err = repo.GetByID(ctx, "no-es-uuid")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestTxRunner_SerializesOpenPerUser(t *testing.T) {
	pool := setupPool(t)
	s := seedCompany(t, pool)
	runner := postgres.NewTxRunner(pool)
	ctx := context.Background()
	now := time.Now().UTC()

	const workers = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := runner.RunShift(ctx, shift.LockKey(s.companyID, s.userID), func(shifts repository.ShiftRepository) error {
				existing, err := shifts.FindOpenByUser(ctx, s.companyID, s.userID)
				if err != nil {
					return err
				}
				if existing != nil {
					return domain.ErrShiftAlreadyOpen
				}
				return shifts.Create(ctx, newOpenShift(s, now, nil))
			})
			if err == nil {
				mu.Lock()
				success++
				mu.Unlock()
			} else {
				assert.ErrorIs(t, err, domain.ErrShiftAlreadyOpen)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 1, success)

	list, err := postgres.NewShiftRepository(pool).ListByCompany(ctx, s.companyID, 20, 0)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}

// ──────────────────────────────────────────────────────────────
// Política y tests
// ──────────────────────────────────────────────────────────────

func TestPolicyRepo_Upsert(t *testing.T) {
	pool := setupPool(t)
	s := seedCompany(t, pool)
	repo := postgres.NewPolicyRepository(pool)
	ctx := context.Background()

	got, err := repo.Get(ctx, s.companyID)
	require.NoError(t, err)
	assert.Nil(t, got)

	p := entity.DefaultPolicySettings(s.companyID)
	p.UpdatedAt = time.Now().UTC()
	require.NoError(t, repo.Upsert(ctx, p))

	p.ShiftCloseDeadlineMinutes = 15
	p.ReminderScheduleMinutes = []int{5}
	require.NoError(t, repo.Upsert(ctx, p))

	got, err = repo.Get(ctx, s.companyID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 15, got.ShiftCloseDeadlineMinutes)
	assert.Equal(t, []int{5}, got.ReminderScheduleMinutes)
}

func TestQuizRepo_AttemptsFilteredByQuiz(t *testing.T) {
	pool := setupPool(t)
	s := seedCompany(t, pool)
	repo := postgres.NewQuizRepository(pool)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Microsecond)

	monthly := &entity.Quiz{ID: uuid.NewString(), CompanyID: s.companyID, Title: "Mensual", Type: entity.QuizMonthly, PassingScore: 70, CreatedAt: now}
	other := &entity.Quiz{ID: uuid.NewString(), CompanyID: s.companyID, Title: "Ingreso", Type: entity.QuizOnboarding, PassingScore: 70, CreatedAt: now}
	require.NoError(t, repo.Create(ctx, monthly))
	require.NoError(t, repo.Create(ctx, other))
	require.NoError(t, repo.AddQuestion(ctx, &entity.QuizQuestion{
		ID: uuid.NewString(), QuizID: monthly.ID, Text: "¿Hora de apertura?",
		Answers: []string{"8:00", "9:00"}, CorrectAnswers: []int{0},
	}))

	for _, q := range []*entity.Quiz{monthly, other} {
		require.NoError(t, repo.CreateAttempt(ctx, &entity.QuizAttempt{
			ID: uuid.NewString(), QuizID: q.ID, UserID: s.userID, Score: 100, Passed: true,
			Answers: map[string][]int{"q": {0}}, StartedAt: now, FinishedAt: now,
		}))
	}

	attempts, err := repo.ListAttemptsByUser(ctx, s.userID, []string{monthly.ID})
	require.NoError(t, err)
	require.Len(t, attempts, 1)
	assert.Equal(t, monthly.ID, attempts[0].QuizID)
	assert.Equal(t, []int{0}, attempts[0].Answers["q"])

	questions, err := repo.ListQuestions(ctx, monthly.ID)
	require.NoError(t, err)
	require.Len(t, questions, 1)
	assert.Equal(t, []int{0}, questions[0].CorrectAnswers)

	byType, err := repo.ListByCompanyAndType(ctx, s.companyID, entity.QuizMonthly)
	require.NoError(t, err)
	require.Len(t, byType, 1)
}
