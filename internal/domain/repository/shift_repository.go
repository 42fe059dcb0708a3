package repository

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// ShiftRepository puerto de persistencia para Shift.
// Create inserta el turno con sus cash logs iniciales; Update reescribe estado, end_at y close_data
// y agrega los cash logs nuevos (los existentes nunca se modifican).
type ShiftRepository interface {
	Create(ctx context.Context, shift *entity.Shift) error
	Update(ctx context.Context, shift *entity.Shift) error
	GetByID(ctx context.Context, id string) (*entity.Shift, error)
	// GetForUpdate obtiene el turno bloqueando la fila hasta el fin de la transacción.
	GetForUpdate(ctx context.Context, id string) (*entity.Shift, error)
	FindOpenByUser(ctx context.Context, companyID, userID string) (*entity.Shift, error)
	ListByCompany(ctx context.Context, companyID string, limit, offset int) ([]*entity.Shift, error)
	ListOpen(ctx context.Context) ([]*entity.Shift, error)
}
