package repository

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// PolicyRepository puerto para PolicySettings. Get devuelve (nil, nil) si la empresa no configuró política.
type PolicyRepository interface {
	Get(ctx context.Context, companyID string) (*entity.PolicySettings, error)
	Upsert(ctx context.Context, policy *entity.PolicySettings) error
}

// ChecklistRepository puerto para plantillas de checklist.
type ChecklistRepository interface {
	Create(ctx context.Context, tpl *entity.ChecklistTemplate) error
	ListByCompany(ctx context.Context, companyID, checklistType string) ([]*entity.ChecklistTemplate, error)
}
