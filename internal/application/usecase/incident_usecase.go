package usecase

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// policyResolver contrato mínimo para leer la política (lo implementa *PolicyService).
type policyResolver interface {
	Resolve(ctx context.Context, companyID string) (*entity.PolicySettings, error)
}

// IncidentUseCase reporte y resolución de incidentes.
type IncidentUseCase struct {
	incidents repository.IncidentRepository
	companies repository.CompanyRepository
	shifts    repository.ShiftRepository
	users     repository.UserRepository
	policies  policyResolver
	notifier  ports.Notifier
	clock     ports.Clock
	log       zerolog.Logger
}

// NewIncidentUseCase construye el caso de uso.
func NewIncidentUseCase(
	incidents repository.IncidentRepository,
	companies repository.CompanyRepository,
	shifts repository.ShiftRepository,
	users repository.UserRepository,
	policies policyResolver,
	notifier ports.Notifier,
	clock ports.Clock,
	log zerolog.Logger,
) *IncidentUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if notifier == nil {
		notifier = ports.NopNotifier{}
	}
	return &IncidentUseCase{
		incidents: incidents,
		companies: companies,
		shifts:    shifts,
		users:     users,
		policies:  policies,
		notifier:  notifier,
		clock:     clock,
		log:       log,
	}
}

// Create registra un incidente. Los HIGH se notifican a los dueños si la política lo indica;
// un fallo de notificación no revierte el alta.
func (uc *IncidentUseCase) Create(ctx context.Context, companyID string, in dto.CreateIncidentRequest) (*dto.IncidentResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	if in.ShiftID != nil && *in.ShiftID != "" {
		s, err := uc.shifts.GetByID(ctx, *in.ShiftID)
		if err != nil {
			return nil, err
		}
		if s == nil || s.CompanyID != companyID {
			return nil, domain.ErrShiftNotFound
		}
	}
	inc := &entity.Incident{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		ShiftID:   in.ShiftID,
		Level:     in.Level,
		Category:  in.Category,
		Text:      in.Text,
		MediaURL:  in.MediaURL,
		Status:    entity.IncidentStatusOpen,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.incidents.Create(ctx, inc); err != nil {
		return nil, err
	}
	if inc.Level == entity.IncidentHigh {
		uc.notifyOwners(ctx, inc)
	}
	return toIncidentResponse(inc), nil
}

// List incidentes de la empresa; status vacío = todos.
func (uc *IncidentUseCase) List(ctx context.Context, companyID, status string) ([]dto.IncidentResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	list, err := uc.incidents.ListByCompany(ctx, companyID, status)
	if err != nil {
		return nil, err
	}
	out := make([]dto.IncidentResponse, 0, len(list))
	for _, inc := range list {
		out = append(out, *toIncidentResponse(inc))
	}
	return out, nil
}

// Resolve marca el incidente como resuelto. Resolver dos veces no es error.
func (uc *IncidentUseCase) Resolve(ctx context.Context, companyID, incidentID string) (*dto.IncidentResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	inc, err := uc.incidents.GetByID(ctx, incidentID)
	if err != nil {
		return nil, err
	}
	if inc == nil || inc.CompanyID != companyID {
		return nil, domain.ErrIncidentNotFound
	}
	if inc.Status != entity.IncidentStatusResolved {
		now := uc.clock.Now()
		inc.Status = entity.IncidentStatusResolved
		inc.ResolvedAt = &now
		if err := uc.incidents.Update(ctx, inc); err != nil {
			return nil, err
		}
	}
	return toIncidentResponse(inc), nil
}

func (uc *IncidentUseCase) notifyOwners(ctx context.Context, inc *entity.Incident) {
	policy, err := uc.policies.Resolve(ctx, inc.CompanyID)
	if err != nil {
		uc.log.Warn().Err(err).Str("incident_id", inc.ID).Msg("no se pudo leer la política para notificar")
		return
	}
	if !policy.HighIncidentNotifyOwner {
		return
	}
	owners, err := uc.users.ListByRole(ctx, inc.CompanyID, entity.RoleOwner)
	if err != nil {
		uc.log.Warn().Err(err).Str("incident_id", inc.ID).Msg("no se pudo listar dueños")
		return
	}
	text := fmt.Sprintf("Incidente HIGH [%s]: %s", inc.Category, inc.Text)
	for _, o := range owners {
		if o.TelegramID == nil {
			continue
		}
		if err := uc.notifier.NotifyUser(ctx, *o.TelegramID, text); err != nil {
			uc.log.Warn().Err(err).Str("incident_id", inc.ID).Str("user_id", o.ID).Msg("notificación de incidente fallida")
		}
	}
}

func toIncidentResponse(i *entity.Incident) *dto.IncidentResponse {
	return &dto.IncidentResponse{
		ID:         i.ID,
		CompanyID:  i.CompanyID,
		ShiftID:    i.ShiftID,
		Level:      i.Level,
		Category:   i.Category,
		Text:       i.Text,
		MediaURL:   i.MediaURL,
		Status:     i.Status,
		CreatedAt:  i.CreatedAt,
		ResolvedAt: i.ResolvedAt,
	}
}
