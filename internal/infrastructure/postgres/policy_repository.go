package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var _ repository.PolicyRepository = (*PolicyRepo)(nil)

// PolicyRepo una fila de policy_settings por empresa.
type PolicyRepo struct {
	q Querier
}

// NewPolicyRepository construye el adaptador de políticas.
func NewPolicyRepository(q Querier) *PolicyRepo {
	return &PolicyRepo{q: q}
}

// Get devuelve nil, nil si la empresa no tiene política guardada.
func (r *PolicyRepo) Get(ctx context.Context, companyID string) (*entity.PolicySettings, error) {
	if !isUUID(companyID) {
		return nil, nil
	}
	var p entity.PolicySettings
	err := r.q.QueryRow(ctx, `
		SELECT company_id, shift_close_deadline_minutes, reminders_enabled, reminder_schedule_minutes,
		       require_opening_checklist, require_closing_checklist, require_open_photo, require_close_photo,
		       require_cash_open, require_cash_close, tests_block_shift_closure, monthly_test_required,
		       random_test_probability, high_incident_notify_owner, updated_at
		FROM policy_settings WHERE company_id = $1`, companyID,
	).Scan(
		&p.CompanyID, &p.ShiftCloseDeadlineMinutes, &p.RemindersEnabled, &p.ReminderScheduleMinutes,
		&p.RequireOpeningChecklist, &p.RequireClosingChecklist, &p.RequireOpenPhoto, &p.RequireClosePhoto,
		&p.RequireCashOpen, &p.RequireCashClose, &p.TestsBlockShiftClosure, &p.MonthlyTestRequired,
		&p.RandomTestProbability, &p.HighIncidentNotifyOwner, &p.UpdatedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get policy: %w", err)
	}
	return &p, nil
}

// Upsert reemplaza la política completa.
func (r *PolicyRepo) Upsert(ctx context.Context, p *entity.PolicySettings) error {
	marks := p.ReminderScheduleMinutes
	if marks == nil {
		marks = []int{}
	}
	_, err := r.q.Exec(ctx, `
		INSERT INTO policy_settings (
			company_id, shift_close_deadline_minutes, reminders_enabled, reminder_schedule_minutes,
			require_opening_checklist, require_closing_checklist, require_open_photo, require_close_photo,
			require_cash_open, require_cash_close, tests_block_shift_closure, monthly_test_required,
			random_test_probability, high_incident_notify_owner, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (company_id) DO UPDATE SET
			shift_close_deadline_minutes = EXCLUDED.shift_close_deadline_minutes,
			reminders_enabled            = EXCLUDED.reminders_enabled,
			reminder_schedule_minutes    = EXCLUDED.reminder_schedule_minutes,
			require_opening_checklist    = EXCLUDED.require_opening_checklist,
			require_closing_checklist    = EXCLUDED.require_closing_checklist,
			require_open_photo           = EXCLUDED.require_open_photo,
			require_close_photo          = EXCLUDED.require_close_photo,
			require_cash_open            = EXCLUDED.require_cash_open,
			require_cash_close           = EXCLUDED.require_cash_close,
			tests_block_shift_closure    = EXCLUDED.tests_block_shift_closure,
			monthly_test_required        = EXCLUDED.monthly_test_required,
			random_test_probability      = EXCLUDED.random_test_probability,
			high_incident_notify_owner   = EXCLUDED.high_incident_notify_owner,
			updated_at                   = EXCLUDED.updated_at`,
		p.CompanyID, p.ShiftCloseDeadlineMinutes, p.RemindersEnabled, marks,
		p.RequireOpeningChecklist, p.RequireClosingChecklist, p.RequireOpenPhoto, p.RequireClosePhoto,
		p.RequireCashOpen, p.RequireCashClose, p.TestsBlockShiftClosure, p.MonthlyTestRequired,
		p.RandomTestProbability, p.HighIncidentNotifyOwner, p.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("upsert policy: %w", err)
	}
	return nil
}

var _ repository.ChecklistRepository = (*ChecklistRepo)(nil)

// ChecklistRepo plantillas de checklist.
type ChecklistRepo struct {
	q Querier
}

// NewChecklistRepository construye el adaptador de plantillas.
func NewChecklistRepository(q Querier) *ChecklistRepo {
	return &ChecklistRepo{q: q}
}

func (r *ChecklistRepo) Create(ctx context.Context, t *entity.ChecklistTemplate) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO checklist_templates (id, company_id, type, items, created_at)
		VALUES ($1, $2, $3, $4, $5)`,
		t.ID, t.CompanyID, t.Type, t.Items, t.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert checklist: %w", err)
	}
	return nil
}

// ListByCompany checklistType vacío = todos.
func (r *ChecklistRepo) ListByCompany(ctx context.Context, companyID, checklistType string) ([]*entity.ChecklistTemplate, error) {
	rows, err := r.q.Query(ctx, `
		SELECT id, company_id, type, items, created_at
		FROM checklist_templates
		WHERE company_id = $1 AND ($2 = '' OR type = $2)
		ORDER BY created_at, id`, companyID, checklistType)
	if err != nil {
		return nil, fmt.Errorf("list checklists: %w", err)
	}
	defer rows.Close()
	var list []*entity.ChecklistTemplate
	for rows.Next() {
		var t entity.ChecklistTemplate
		if err := rows.Scan(&t.ID, &t.CompanyID, &t.Type, &t.Items, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan checklist: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}
