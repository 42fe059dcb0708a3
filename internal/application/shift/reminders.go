package shift

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"

	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// ReminderJob avisa a los empleados con turno abierto que se acerca el plazo de cierre.
// Cada marca de reminder_schedule_minutes indica minutos restantes hasta close_deadline_at.
// Solo lee turnos: el vencimiento sigue descubriéndose al cerrar.
type ReminderJob struct {
	shifts   repository.ShiftRepository
	users    repository.UserRepository
	policies PolicyResolver
	notifier ports.Notifier
	clock    ports.Clock
	log      zerolog.Logger

	mu   sync.Mutex
	sent map[string]map[int]bool // shift_id -> marca -> enviado

	cron    *cron.Cron
	entryID cron.EntryID
}

// NewReminderJob construye el job.
func NewReminderJob(
	shifts repository.ShiftRepository,
	users repository.UserRepository,
	policies PolicyResolver,
	notifier ports.Notifier,
	clock ports.Clock,
	log zerolog.Logger,
) *ReminderJob {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &ReminderJob{
		shifts:   shifts,
		users:    users,
		policies: policies,
		notifier: notifier,
		clock:    clock,
		log:      log,
		sent:     make(map[string]map[int]bool),
		cron:     cron.New(),
	}
}

// Start programa el job con una expresión cron (ej. "@every 1m").
func (j *ReminderJob) Start(spec string) error {
	id, err := j.cron.AddFunc(spec, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		if n, err := j.RunOnce(ctx); err != nil {
			j.log.Error().Err(err).Msg("recordatorios de turno")
		} else if n > 0 {
			j.log.Info().Int("sent", n).Msg("recordatorios de turno enviados")
		}
	})
	if err != nil {
		return fmt.Errorf("programar recordatorios: %w", err)
	}
	j.entryID = id
	j.cron.Start()
	return nil
}

// Stop detiene el scheduler y espera a que termine la ejecución en curso.
func (j *ReminderJob) Stop() {
	<-j.cron.Stop().Done()
}

// RunOnce revisa los turnos abiertos y envía los avisos pendientes. Devuelve cuántos envió.
func (j *ReminderJob) RunOnce(ctx context.Context) (int, error) {
	open, err := j.shifts.ListOpen(ctx)
	if err != nil {
		return 0, err
	}
	now := j.clock.Now()
	alive := make(map[string]bool, len(open))
	sent := 0
	for _, s := range open {
		alive[s.ID] = true
		if s.PastDeadline(now) {
			continue
		}
		policy, err := j.policies.Resolve(ctx, s.CompanyID)
		if err != nil {
			return sent, err
		}
		if !policy.RemindersEnabled {
			continue
		}
		due := j.dueMarks(s, policy.ReminderScheduleMinutes, now)
		if len(due) == 0 {
			continue
		}
		ok, err := j.notify(ctx, s, now)
		if err != nil {
			j.log.Warn().Err(err).Str("shift_id", s.ID).Msg("no se pudo enviar recordatorio")
			continue
		}
		j.markSent(s.ID, due)
		if ok {
			sent++
		}
	}
	j.forget(alive)
	return sent, nil
}

// dueMarks marcas alcanzadas (restante <= marca) que aún no se avisaron.
func (j *ReminderJob) dueMarks(s *entity.Shift, marks []int, now time.Time) []int {
	remaining := s.CloseDeadlineAt.Sub(now)
	j.mu.Lock()
	defer j.mu.Unlock()
	var due []int
	for _, m := range marks {
		if remaining <= time.Duration(m)*time.Minute && !j.sent[s.ID][m] {
			due = append(due, m)
		}
	}
	sort.Ints(due)
	return due
}

func (j *ReminderJob) markSent(shiftID string, marks []int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.sent[shiftID] == nil {
		j.sent[shiftID] = make(map[int]bool)
	}
	for _, m := range marks {
		j.sent[shiftID][m] = true
	}
}

func (j *ReminderJob) forget(alive map[string]bool) {
	j.mu.Lock()
	defer j.mu.Unlock()
	for id := range j.sent {
		if !alive[id] {
			delete(j.sent, id)
		}
	}
}

// notify devuelve false si el usuario no tiene Telegram vinculado.
func (j *ReminderJob) notify(ctx context.Context, s *entity.Shift, now time.Time) (bool, error) {
	user, err := j.users.GetByID(ctx, s.UserID)
	if err != nil {
		return false, err
	}
	if user == nil || user.TelegramID == nil {
		return false, nil
	}
	left := s.CloseDeadlineAt.Sub(now).Round(time.Minute)
	text := fmt.Sprintf("Recordatorio: tu turno vence en %d min (%s UTC). Ciérralo a tiempo.",
		int(left.Minutes()), s.CloseDeadlineAt.UTC().Format("15:04"))
	if err := j.notifier.NotifyUser(ctx, *user.TelegramID, text); err != nil {
		return false, err
	}
	return true, nil
}
