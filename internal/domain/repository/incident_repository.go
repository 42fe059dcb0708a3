package repository

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// IncidentRepository puerto de persistencia para Incident.
type IncidentRepository interface {
	Create(ctx context.Context, incident *entity.Incident) error
	GetByID(ctx context.Context, id string) (*entity.Incident, error)
	Update(ctx context.Context, incident *entity.Incident) error
	ListByCompany(ctx context.Context, companyID, status string) ([]*entity.Incident, error)
}
