package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// PolicyService lectura y reemplazo de la política de la empresa.
// Nunca falla por ausencia: sin registro se devuelven los valores por defecto.
type PolicyService struct {
	repo       repository.PolicyRepository
	checklists repository.ChecklistRepository
	companies  repository.CompanyRepository
	clock      ports.Clock
}

// NewPolicyService construye el servicio.
func NewPolicyService(repo repository.PolicyRepository, checklists repository.ChecklistRepository, companies repository.CompanyRepository, clock ports.Clock) *PolicyService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &PolicyService{repo: repo, checklists: checklists, companies: companies, clock: clock}
}

// Resolve devuelve la política almacenada o la de defecto.
func (s *PolicyService) Resolve(ctx context.Context, companyID string) (*entity.PolicySettings, error) {
	p, err := s.repo.Get(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return entity.DefaultPolicySettings(companyID), nil
	}
	return p, nil
}

// Get política vigente de una empresa existente.
func (s *PolicyService) Get(ctx context.Context, companyID string) (*dto.PolicyResponse, error) {
	if _, err := requireCompany(ctx, s.companies, companyID); err != nil {
		return nil, err
	}
	p, err := s.Resolve(ctx, companyID)
	if err != nil {
		return nil, err
	}
	return toPolicyResponse(p), nil
}

// Replace sustituye la política completa; los campos omitidos vuelven al valor por defecto.
func (s *PolicyService) Replace(ctx context.Context, companyID string, in dto.PolicyRequest) (*dto.PolicyResponse, error) {
	if _, err := requireCompany(ctx, s.companies, companyID); err != nil {
		return nil, err
	}
	p := entity.DefaultPolicySettings(companyID)
	setInt(&p.ShiftCloseDeadlineMinutes, in.ShiftCloseDeadlineMinutes)
	setBool(&p.RemindersEnabled, in.RemindersEnabled)
	if in.ReminderScheduleMinutes != nil {
		p.ReminderScheduleMinutes = append([]int(nil), in.ReminderScheduleMinutes...)
	}
	setBool(&p.RequireOpeningChecklist, in.RequireOpeningChecklist)
	setBool(&p.RequireClosingChecklist, in.RequireClosingChecklist)
	setBool(&p.RequireOpenPhoto, in.RequireOpenPhoto)
	setBool(&p.RequireClosePhoto, in.RequireClosePhoto)
	setBool(&p.RequireCashOpen, in.RequireCashOpen)
	setBool(&p.RequireCashClose, in.RequireCashClose)
	setBool(&p.TestsBlockShiftClosure, in.TestsBlockShiftClosure)
	setBool(&p.MonthlyTestRequired, in.MonthlyTestRequired)
	if in.RandomTestProbability != nil {
		p.RandomTestProbability = *in.RandomTestProbability
	}
	setBool(&p.HighIncidentNotifyOwner, in.HighIncidentNotifyOwner)
	p.UpdatedAt = s.clock.Now()

	if err := s.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	return toPolicyResponse(p), nil
}

// CreateChecklist guarda una plantilla de checklist.
func (s *PolicyService) CreateChecklist(ctx context.Context, companyID string, in dto.CreateChecklistRequest) (*dto.ChecklistResponse, error) {
	if _, err := requireCompany(ctx, s.companies, companyID); err != nil {
		return nil, err
	}
	tpl := &entity.ChecklistTemplate{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Type:      in.Type,
		Items:     append([]string(nil), in.Items...),
		CreatedAt: s.clock.Now(),
	}
	if err := s.checklists.Create(ctx, tpl); err != nil {
		return nil, err
	}
	return toChecklistResponse(tpl), nil
}

// ListChecklists plantillas de la empresa, opcionalmente filtradas por tipo.
func (s *PolicyService) ListChecklists(ctx context.Context, companyID, checklistType string) ([]dto.ChecklistResponse, error) {
	if _, err := requireCompany(ctx, s.companies, companyID); err != nil {
		return nil, err
	}
	list, err := s.checklists.ListByCompany(ctx, companyID, checklistType)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ChecklistResponse, 0, len(list))
	for _, t := range list {
		out = append(out, *toChecklistResponse(t))
	}
	return out, nil
}

func setBool(dst *bool, v *bool) {
	if v != nil {
		*dst = *v
	}
}

func setInt(dst *int, v *int) {
	if v != nil {
		*dst = *v
	}
}

func toPolicyResponse(p *entity.PolicySettings) *dto.PolicyResponse {
	out := &dto.PolicyResponse{
		CompanyID:                 p.CompanyID,
		ShiftCloseDeadlineMinutes: p.ShiftCloseDeadlineMinutes,
		RemindersEnabled:          p.RemindersEnabled,
		ReminderScheduleMinutes:   nonNil(p.ReminderScheduleMinutes),
		RequireOpeningChecklist:   p.RequireOpeningChecklist,
		RequireClosingChecklist:   p.RequireClosingChecklist,
		RequireOpenPhoto:          p.RequireOpenPhoto,
		RequireClosePhoto:         p.RequireClosePhoto,
		RequireCashOpen:           p.RequireCashOpen,
		RequireCashClose:          p.RequireCashClose,
		TestsBlockShiftClosure:    p.TestsBlockShiftClosure,
		MonthlyTestRequired:       p.MonthlyTestRequired,
		RandomTestProbability:     p.RandomTestProbability,
		HighIncidentNotifyOwner:   p.HighIncidentNotifyOwner,
	}
	if !p.UpdatedAt.IsZero() {
		t := p.UpdatedAt
		out.UpdatedAt = &t
	}
	return out
}

func toChecklistResponse(t *entity.ChecklistTemplate) *dto.ChecklistResponse {
	return &dto.ChecklistResponse{
		ID:        t.ID,
		CompanyID: t.CompanyID,
		Type:      t.Type,
		Items:     t.Items,
		CreatedAt: t.CreatedAt,
	}
}
