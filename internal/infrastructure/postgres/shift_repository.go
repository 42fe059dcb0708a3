package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var _ repository.ShiftRepository = (*ShiftRepo)(nil)

// ShiftRepo turnos y sus registros de caja (usable con pool o tx).
type ShiftRepo struct {
	q Querier
}

// NewShiftRepository construye el adaptador de turnos. Pasar pool o tx (Querier).
func NewShiftRepository(q Querier) *ShiftRepo {
	return &ShiftRepo{q: q}
}

const shiftColumns = `id, company_id, location_id, user_id, start_at, end_at, status, close_deadline_at, open_data, close_data`

// Create inserta el turno y sus cash logs. El índice parcial uq_shifts_open_per_user
// se traduce a domain.ErrShiftAlreadyOpen.
func (r *ShiftRepo) Create(ctx context.Context, s *entity.Shift) error {
	openData, closeData, err := encodeShiftData(s)
	if err != nil {
		return err
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO shifts (`+shiftColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		s.ID, s.CompanyID, s.LocationID, s.UserID, s.StartAt, s.EndAt, s.Status, s.CloseDeadlineAt, openData, closeData,
	)
	if err != nil {
		if isUniqueViolation(err) && violatedConstraint(err) != "shifts_pkey" {
			return domain.ErrShiftAlreadyOpen
		}
		return fmt.Errorf("insert shift: %w", err)
	}
	return r.insertCashLogs(ctx, s.ID, s.CashLogs)
}

// Update persiste estado y evidencias. Los cash logs son de solo inserción: se agregan
// únicamente los que exceden los ya almacenados.
func (r *ShiftRepo) Update(ctx context.Context, s *entity.Shift) error {
	_, closeData, err := encodeShiftData(s)
	if err != nil {
		return err
	}
	tag, err := r.q.Exec(ctx, `
		UPDATE shifts SET end_at = $2, status = $3, close_data = $4
		WHERE id = $1`,
		s.ID, s.EndAt, s.Status, closeData,
	)
	if err != nil {
		return fmt.Errorf("update shift: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrShiftNotFound
	}
	var stored int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM shift_cash_logs WHERE shift_id = $1`, s.ID).Scan(&stored); err != nil {
		return fmt.Errorf("count cash logs: %w", err)
	}
	if len(s.CashLogs) > stored {
		return r.insertCashLogs(ctx, s.ID, s.CashLogs[stored:])
	}
	return nil
}

// GetByID obtiene un turno con sus cash logs.
func (r *ShiftRepo) GetByID(ctx context.Context, id string) (*entity.Shift, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1`, id)
}

// GetForUpdate obtiene el turno y bloquea la fila (SELECT FOR UPDATE). Requiere tx.
func (r *ShiftRepo) GetForUpdate(ctx context.Context, id string) (*entity.Shift, error) {
	if !isUUID(id) {
		return nil, nil
	}
	return r.getOne(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE id = $1 FOR UPDATE`, id)
}

// FindOpenByUser turno OPEN del usuario, o nil.
func (r *ShiftRepo) FindOpenByUser(ctx context.Context, companyID, userID string) (*entity.Shift, error) {
	return r.getOne(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE company_id = $1 AND user_id = $2 AND status = 'OPEN'`,
		companyID, userID)
}

// ListByCompany más recientes primero.
func (r *ShiftRepo) ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Shift, error) {
	return r.list(ctx,
		`SELECT `+shiftColumns+` FROM shifts WHERE company_id = $1 ORDER BY start_at DESC, id LIMIT $2 OFFSET $3`,
		companyID, limit, offset)
}

// ListOpen todos los turnos OPEN (para el job de recordatorios).
func (r *ShiftRepo) ListOpen(ctx context.Context) ([]*entity.Shift, error) {
	return r.list(ctx, `SELECT `+shiftColumns+` FROM shifts WHERE status = 'OPEN' ORDER BY close_deadline_at`)
}

func (r *ShiftRepo) getOne(ctx context.Context, query string, args ...any) (*entity.Shift, error) {
	s, err := scanShift(r.q.QueryRow(ctx, query, args...))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get shift: %w", err)
	}
	if err := r.loadCashLogs(ctx, []*entity.Shift{s}); err != nil {
		return nil, err
	}
	return s, nil
}

func (r *ShiftRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Shift, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	var list []*entity.Shift
	for rows.Next() {
		s, err := scanShift(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan shift: %w", err)
		}
		list = append(list, s)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list shifts: %w", err)
	}
	if err := r.loadCashLogs(ctx, list); err != nil {
		return nil, err
	}
	return list, nil
}

func scanShift(row interface{ Scan(dest ...any) error }) (*entity.Shift, error) {
	var (
		s         entity.Shift
		openData  []byte
		closeData []byte
	)
	if err := row.Scan(&s.ID, &s.CompanyID, &s.LocationID, &s.UserID, &s.StartAt, &s.EndAt,
		&s.Status, &s.CloseDeadlineAt, &openData, &closeData); err != nil {
		return nil, err
	}
	if len(openData) > 0 {
		if err := json.Unmarshal(openData, &s.OpenData); err != nil {
			return nil, fmt.Errorf("decode open_data: %w", err)
		}
	}
	if len(closeData) > 0 {
		s.CloseData = &entity.ShiftCloseData{}
		if err := json.Unmarshal(closeData, s.CloseData); err != nil {
			return nil, fmt.Errorf("decode close_data: %w", err)
		}
	}
	return &s, nil
}

// encodeShiftData serializa las evidencias a JSONB; close_data nil se guarda como NULL.
func encodeShiftData(s *entity.Shift) (openData string, closeData *string, err error) {
	b, err := json.Marshal(s.OpenData)
	if err != nil {
		return "", nil, fmt.Errorf("encode open_data: %w", err)
	}
	openData = string(b)
	if s.CloseData != nil {
		cb, err := json.Marshal(s.CloseData)
		if err != nil {
			return "", nil, fmt.Errorf("encode close_data: %w", err)
		}
		str := string(cb)
		closeData = &str
	}
	return openData, closeData, nil
}

func (r *ShiftRepo) insertCashLogs(ctx context.Context, shiftID string, logs []entity.CashLog) error {
	for _, l := range logs {
		_, err := r.q.Exec(ctx,
			`INSERT INTO shift_cash_logs (shift_id, type, amount, created_at) VALUES ($1, $2, $3, $4)`,
			shiftID, l.Type, l.Amount, l.CreatedAt)
		if err != nil {
			return fmt.Errorf("insert cash log: %w", err)
		}
	}
	return nil
}

// loadCashLogs completa CashLogs de todos los turnos con una sola consulta.
func (r *ShiftRepo) loadCashLogs(ctx context.Context, shifts []*entity.Shift) error {
	if len(shifts) == 0 {
		return nil
	}
	ids := make([]string, 0, len(shifts))
	byID := make(map[string]*entity.Shift, len(shifts))
	for _, s := range shifts {
		ids = append(ids, s.ID)
		byID[s.ID] = s
	}
	rows, err := r.q.Query(ctx, `
		SELECT shift_id, type, amount, created_at
		FROM shift_cash_logs WHERE shift_id = ANY($1) ORDER BY id`, ids)
	if err != nil {
		return fmt.Errorf("list cash logs: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var (
			shiftID string
			l       entity.CashLog
		)
		if err := rows.Scan(&shiftID, &l.Type, &l.Amount, &l.CreatedAt); err != nil {
			return fmt.Errorf("scan cash log: %w", err)
		}
		if s := byID[shiftID]; s != nil {
			s.CashLogs = append(s.CashLogs, l)
		}
	}
	return rows.Err()
}
