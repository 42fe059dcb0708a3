package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

type ShiftRepo struct{ s *Store }

// Create falla con domain.ErrShiftAlreadyOpen si el usuario ya tiene un turno OPEN
// (equivalente al índice único parcial de PostgreSQL).
func (r *ShiftRepo) Create(_ context.Context, sh *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if sh.IsOpen() && r.findOpen(sh.CompanyID, sh.UserID) != nil {
		return domain.ErrShiftAlreadyOpen
	}
	r.s.shifts.put(sh.ID, sh.Clone())
	return nil
}

// Update reemplaza el turno; los cash logs existentes se conservan y solo se agregan los nuevos.
func (r *ShiftRepo) Update(_ context.Context, sh *entity.Shift) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	prev, ok := r.s.shifts.get(sh.ID)
	if !ok {
		return domain.ErrShiftNotFound
	}
	next := sh.Clone()
	logs := append([]entity.CashLog(nil), prev.CashLogs...)
	if len(next.CashLogs) > len(prev.CashLogs) {
		logs = append(logs, next.CashLogs[len(prev.CashLogs):]...)
	}
	next.CashLogs = logs
	r.s.shifts.put(sh.ID, next)
	return nil
}

func (r *ShiftRepo) GetByID(_ context.Context, id string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	sh, _ := r.s.shifts.get(id)
	return sh.Clone(), nil
}

// GetForUpdate equivale a GetByID: la exclusión la da el TxRunner.
func (r *ShiftRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shift, error) {
	return r.GetByID(ctx, id)
}

func (r *ShiftRepo) FindOpenByUser(_ context.Context, companyID, userID string) (*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	return r.findOpen(companyID, userID).Clone(), nil
}

func (r *ShiftRepo) findOpen(companyID, userID string) *entity.Shift {
	found := r.s.shifts.filter(func(sh *entity.Shift) bool {
		return sh.CompanyID == companyID && sh.UserID == userID && sh.IsOpen()
	})
	if len(found) == 0 {
		return nil
	}
	return found[0]
}

// ListByCompany más recientes primero.
func (r *ShiftRepo) ListByCompany(_ context.Context, companyID string, limit, offset int) ([]*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	all := r.s.shifts.filter(func(sh *entity.Shift) bool { return sh.CompanyID == companyID })
	sort.SliceStable(all, func(i, j int) bool { return all[i].StartAt.After(all[j].StartAt) })
	var out []*entity.Shift
	for _, sh := range page(all, limit, offset) {
		out = append(out, sh.Clone())
	}
	return out, nil
}

func (r *ShiftRepo) ListOpen(_ context.Context) ([]*entity.Shift, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Shift
	for _, sh := range r.s.shifts.filter(func(sh *entity.Shift) bool { return sh.IsOpen() }) {
		out = append(out, sh.Clone())
	}
	return out, nil
}
