package repository

import (
	"context"
	"time"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// ScheduleRepository puerto para el cronograma.
type ScheduleRepository interface {
	Create(ctx context.Context, entry *entity.ScheduleEntry) error
	// ListByCompany devuelve las entradas que empiezan en [from, to); tiempos cero = sin límite.
	ListByCompany(ctx context.Context, companyID string, from, to time.Time) ([]*entity.ScheduleEntry, error)
}

// MysteryShopperRepository puerto para reportes de cliente incógnito.
type MysteryShopperRepository interface {
	Create(ctx context.Context, report *entity.MysteryShopperReport) error
	ListByCompany(ctx context.Context, companyID string) ([]*entity.MysteryShopperReport, error)
}
