// Package memory implementa los puertos de persistencia en memoria de proceso.
// Se usa en tests y con STORAGE_DRIVER=memory para desarrollo local; replica las
// restricciones de unicidad del esquema PostgreSQL. Los valores se copian al
// entrar y salir, de modo que ningún llamador comparte punteros con el store.
package memory

import (
	"sync"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

type table[T any] struct {
	rows  map[string]T
	order []string
}

func newTable[T any]() *table[T] {
	return &table[T]{rows: make(map[string]T)}
}

func (t *table[T]) put(id string, v T) {
	if _, ok := t.rows[id]; !ok {
		t.order = append(t.order, id)
	}
	t.rows[id] = v
}

func (t *table[T]) get(id string) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

// filter recorre en orden de inserción.
func (t *table[T]) filter(keep func(T) bool) []T {
	var out []T
	for _, id := range t.order {
		if v := t.rows[id]; keep(v) {
			out = append(out, v)
		}
	}
	return out
}

// Store agrupa todas las tablas bajo un único RWMutex.
type Store struct {
	mu sync.RWMutex

	companies   *table[*entity.Company]
	locations   *table[*entity.Location]
	users       *table[*entity.User]
	credentials *table[*entity.WebCredential] // clave: username
	invites     *table[*entity.Invite]        // clave: code
	policies    *table[*entity.PolicySettings]
	checklists  *table[*entity.ChecklistTemplate]
	shifts      *table[*entity.Shift]
	incidents   *table[*entity.Incident]
	sections    *table[*entity.TrainingSection]
	lessons     *table[*entity.TrainingLesson]
	quizzes     *table[*entity.Quiz]
	questions   *table[*entity.QuizQuestion]
	attempts    *table[*entity.QuizAttempt]
	schedule    *table[*entity.ScheduleEntry]
	mystery     *table[*entity.MysteryShopperReport]

	tx *TxRunner
}

// New crea un store vacío.
func New() *Store {
	s := &Store{
		companies:   newTable[*entity.Company](),
		locations:   newTable[*entity.Location](),
		users:       newTable[*entity.User](),
		credentials: newTable[*entity.WebCredential](),
		invites:     newTable[*entity.Invite](),
		policies:    newTable[*entity.PolicySettings](),
		checklists:  newTable[*entity.ChecklistTemplate](),
		shifts:      newTable[*entity.Shift](),
		incidents:   newTable[*entity.Incident](),
		sections:    newTable[*entity.TrainingSection](),
		lessons:     newTable[*entity.TrainingLesson](),
		quizzes:     newTable[*entity.Quiz](),
		questions:   newTable[*entity.QuizQuestion](),
		attempts:    newTable[*entity.QuizAttempt](),
		schedule:    newTable[*entity.ScheduleEntry](),
		mystery:     newTable[*entity.MysteryShopperReport](),
	}
	s.tx = newTxRunner(s)
	return s
}

func (s *Store) Companies() *CompanyRepo { return &CompanyRepo{s: s} }
func (s *Store) Locations() *LocationRepo { return &LocationRepo{s: s} }
func (s *Store) Users() *UserRepo { return &UserRepo{s: s} }
func (s *Store) Credentials() *CredentialRepo { return &CredentialRepo{s: s} }
func (s *Store) Invites() *InviteRepo { return &InviteRepo{s: s} }
func (s *Store) Policies() *PolicyRepo { return &PolicyRepo{s: s} }
func (s *Store) Checklists() *ChecklistRepo { return &ChecklistRepo{s: s} }
func (s *Store) Shifts() *ShiftRepo { return &ShiftRepo{s: s} }
func (s *Store) Incidents() *IncidentRepo { return &IncidentRepo{s: s} }
func (s *Store) Training() *TrainingRepo { return &TrainingRepo{s: s} }
func (s *Store) Quizzes() *QuizRepo { return &QuizRepo{s: s} }
func (s *Store) Schedule() *ScheduleRepo { return &ScheduleRepo{s: s} }
func (s *Store) MysteryShopper() *MysteryRepo { return &MysteryRepo{s: s} }
func (s *Store) TxRunner() *TxRunner { return s.tx }

func page[T any](xs []T, limit, offset int) []T {
	if offset >= len(xs) {
		return nil
	}
	xs = xs[offset:]
	if limit > 0 && limit < len(xs) {
		xs = xs[:limit]
	}
	return xs
}

func cloneStrings(xs []string) []string { return append([]string(nil), xs...) }
func cloneInts(xs []int) []int { return append([]int(nil), xs...) }

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
