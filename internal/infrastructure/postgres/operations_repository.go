package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var (
	_ repository.IncidentRepository       = (*IncidentRepo)(nil)
	_ repository.TrainingRepository       = (*TrainingRepo)(nil)
	_ repository.ScheduleRepository       = (*ScheduleRepo)(nil)
	_ repository.MysteryShopperRepository = (*MysteryRepo)(nil)
)

// ─── Incidentes ────────────────────────────────────────────────

// IncidentRepo incidentes reportados.
type IncidentRepo struct {
	q Querier
}

// NewIncidentRepository construye el adaptador de incidentes.
func NewIncidentRepository(q Querier) *IncidentRepo {
	return &IncidentRepo{q: q}
}

const incidentColumns = `id, company_id, shift_id, level, category, text, media_url, status, created_at, resolved_at`

func scanIncident(row interface{ Scan(dest ...any) error }) (*entity.Incident, error) {
	var i entity.Incident
	err := row.Scan(&i.ID, &i.CompanyID, &i.ShiftID, &i.Level, &i.Category, &i.Text, &i.MediaURL,
		&i.Status, &i.CreatedAt, &i.ResolvedAt)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

func (r *IncidentRepo) Create(ctx context.Context, i *entity.Incident) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO incidents (`+incidentColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		i.ID, i.CompanyID, i.ShiftID, i.Level, i.Category, i.Text, i.MediaURL, i.Status, i.CreatedAt, i.ResolvedAt)
	if err != nil {
		return fmt.Errorf("insert incident: %w", err)
	}
	return nil
}

func (r *IncidentRepo) GetByID(ctx context.Context, id string) (*entity.Incident, error) {
	if !isUUID(id) {
		return nil, nil
	}
	i, err := scanIncident(r.q.QueryRow(ctx, `SELECT `+incidentColumns+` FROM incidents WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get incident: %w", err)
	}
	return i, nil
}

// Update solo cambia estado y fecha de resolución.
func (r *IncidentRepo) Update(ctx context.Context, i *entity.Incident) error {
	_, err := r.q.Exec(ctx, `UPDATE incidents SET status = $2, resolved_at = $3 WHERE id = $1`,
		i.ID, i.Status, i.ResolvedAt)
	if err != nil {
		return fmt.Errorf("update incident: %w", err)
	}
	return nil
}

// ListByCompany más recientes primero; status vacío = todos.
func (r *IncidentRepo) ListByCompany(ctx context.Context, companyID, status string) ([]*entity.Incident, error) {
	rows, err := r.q.Query(ctx, `
		SELECT `+incidentColumns+` FROM incidents
		WHERE company_id = $1 AND ($2 = '' OR status = $2)
		ORDER BY created_at DESC`, companyID, status)
	if err != nil {
		return nil, fmt.Errorf("list incidents: %w", err)
	}
	defer rows.Close()
	var list []*entity.Incident
	for rows.Next() {
		i, err := scanIncident(rows)
		if err != nil {
			return nil, fmt.Errorf("scan incident: %w", err)
		}
		list = append(list, i)
	}
	return list, rows.Err()
}

// ─── Capacitación ──────────────────────────────────────────────

// TrainingRepo secciones y lecciones.
type TrainingRepo struct {
	q Querier
}

// NewTrainingRepository construye el adaptador de capacitación.
func NewTrainingRepository(q Querier) *TrainingRepo {
	return &TrainingRepo{q: q}
}

func (r *TrainingRepo) CreateSection(ctx context.Context, s *entity.TrainingSection) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO training_sections (id, company_id, title, sort_order, created_at)
		VALUES ($1, $2, $3, $4, $5)`, s.ID, s.CompanyID, s.Title, s.Order, s.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert section: %w", err)
	}
	return nil
}

func (r *TrainingRepo) GetSection(ctx context.Context, id string) (*entity.TrainingSection, error) {
	if !isUUID(id) {
		return nil, nil
	}
	var s entity.TrainingSection
	err := r.q.QueryRow(ctx, `
		SELECT id, company_id, title, sort_order, created_at
		FROM training_sections WHERE id = $1`, id,
	).Scan(&s.ID, &s.CompanyID, &s.Title, &s.Order, &s.CreatedAt)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get section: %w", err)
	}
	return &s, nil
}

func (r *TrainingRepo) ListSections(ctx context.Context, companyID string) ([]*entity.TrainingSection, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, title, sort_order, created_at
		FROM training_sections WHERE company_id = $1 ORDER BY sort_order, created_at`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	defer rows.Close()
	var list []*entity.TrainingSection
	for rows.Next() {
		var s entity.TrainingSection
		if err := rows.Scan(&s.ID, &s.CompanyID, &s.Title, &s.Order, &s.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan section: %w", err)
		}
		list = append(list, &s)
	}
	return list, rows.Err()
}

func (r *TrainingRepo) CreateLesson(ctx context.Context, l *entity.TrainingLesson) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO training_lessons (id, company_id, section_id, title, body, media_links, tags, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		l.ID, l.CompanyID, l.SectionID, l.Title, l.Body, nonNilStrings(l.MediaLinks), nonNilStrings(l.Tags), l.UpdatedAt)
	if err != nil {
		return fmt.Errorf("insert lesson: %w", err)
	}
	return nil
}

// ListLessons sectionID vacío = todas las de la empresa.
func (r *TrainingRepo) ListLessons(ctx context.Context, companyID, sectionID string) ([]*entity.TrainingLesson, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, section_id, title, body, media_links, tags, updated_at
		FROM training_lessons
		WHERE company_id = $1 AND ($2 = '' OR section_id::text = $2)
		ORDER BY updated_at, id`, companyID, sectionID)
	if err != nil {
		return nil, fmt.Errorf("list lessons: %w", err)
	}
	defer rows.Close()
	var list []*entity.TrainingLesson
	for rows.Next() {
		var l entity.TrainingLesson
		if err := rows.Scan(&l.ID, &l.CompanyID, &l.SectionID, &l.Title, &l.Body, &l.MediaLinks, &l.Tags, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan lesson: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// ─── Cronograma y cliente incógnito ────────────────────────────

// ScheduleRepo turnos planificados.
type ScheduleRepo struct {
	q Querier
}

// NewScheduleRepository construye el adaptador del cronograma.
func NewScheduleRepository(q Querier) *ScheduleRepo {
	return &ScheduleRepo{q: q}
}

func (r *ScheduleRepo) Create(ctx context.Context, e *entity.ScheduleEntry) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO schedule_entries (id, company_id, location_id, user_id, start_at, end_at, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		e.ID, e.CompanyID, e.LocationID, e.UserID, e.StartAt, e.EndAt, e.Status, e.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert schedule entry: %w", err)
	}
	return nil
}

// ListByCompany entradas con start_at en [from, to); extremos cero = sin límite.
func (r *ScheduleRepo) ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]*entity.ScheduleEntry, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, location_id, user_id, start_at, end_at, status, created_at
		FROM schedule_entries
		WHERE company_id = $1
		  AND ($2::timestamptz IS NULL OR start_at >= $2)
		  AND ($3::timestamptz IS NULL OR start_at < $3)
		ORDER BY start_at`, companyID, nullTime(from), nullTime(to))
	if err != nil {
		return nil, fmt.Errorf("list schedule: %w", err)
	}
	defer rows.Close()
	var list []*entity.ScheduleEntry
	for rows.Next() {
		var e entity.ScheduleEntry
		if err := rows.Scan(&e.ID, &e.CompanyID, &e.LocationID, &e.UserID, &e.StartAt, &e.EndAt, &e.Status, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan schedule entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// MysteryRepo reportes de cliente incógnito.
type MysteryRepo struct {
	q Querier
}

// NewMysteryShopperRepository construye el adaptador de reportes.
func NewMysteryShopperRepository(q Querier) *MysteryRepo {
	return &MysteryRepo{q: q}
}

func (r *MysteryRepo) Create(ctx context.Context, m *entity.MysteryShopperReport) error {
	answers, err := json.Marshal(m.Answers)
	if err != nil {
		return fmt.Errorf("encode answers: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO mystery_shopper_reports (id, company_id, location_id, user_id, shift_id, score, answers, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		m.ID, m.CompanyID, m.LocationID, m.UserID, m.ShiftID, m.Score, string(answers), m.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert mystery report: %w", err)
	}
	return nil
}

func (r *MysteryRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.MysteryShopperReport, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, location_id, user_id, shift_id, score, answers, created_at
		FROM mystery_shopper_reports WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, fmt.Errorf("list mystery reports: %w", err)
	}
	defer rows.Close()
	var list []*entity.MysteryShopperReport
	for rows.Next() {
		var (
			m       entity.MysteryShopperReport
			answers []byte
		)
		if err := rows.Scan(&m.ID, &m.CompanyID, &m.LocationID, &m.UserID, &m.ShiftID, &m.Score, &answers, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan mystery report: %w", err)
		}
		if err := json.Unmarshal(answers, &m.Answers); err != nil {
			return nil, fmt.Errorf("decode answers: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

func nullTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

func nonNilStrings(xs []string) []string {
	if xs == nil {
		return []string{}
	}
	return xs
}
