package shift

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// TxRunner ejecuta fn dentro de una transacción serializada por lockKey, pasando un
// ShiftRepository atado a esa transacción. Si fn devuelve nil se confirma; si no, se revierte.
type TxRunner interface {
	RunShift(ctx context.Context, lockKey string, fn func(shifts repository.ShiftRepository) error) error
}

// PolicyResolver devuelve la política vigente (o la de defecto) de una empresa.
type PolicyResolver interface {
	Resolve(ctx context.Context, companyID string) (*entity.PolicySettings, error)
}

// ComplianceChecker informa si el usuario tiene el test mensual al día.
type ComplianceChecker interface {
	IsCompliant(ctx context.Context, companyID, userID string) (bool, error)
}

// LockKey clave de serialización de todas las operaciones de turno de un usuario.
func LockKey(companyID, userID string) string {
	return companyID + ":" + userID
}
