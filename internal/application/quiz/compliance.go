package quiz

import (
	"context"
	"time"

	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// ComplianceWindow antigüedad máxima del último test mensual aprobado.
const ComplianceWindow = 30 * 24 * time.Hour

// PolicyResolver devuelve la política vigente de la empresa.
type PolicyResolver interface {
	Resolve(ctx context.Context, companyID string) (*entity.PolicySettings, error)
}

// ComplianceChecker decide si un usuario tiene el test mensual al día.
type ComplianceChecker struct {
	quizzes  repository.QuizRepository
	policies PolicyResolver
	clock    ports.Clock
}

// NewComplianceChecker construye el verificador.
func NewComplianceChecker(quizzes repository.QuizRepository, policies PolicyResolver, clock ports.Clock) *ComplianceChecker {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &ComplianceChecker{quizzes: quizzes, policies: policies, clock: clock}
}

// IsCompliant: sin exigencia mensual siempre true; sin quizzes mensuales o sin intentos aprobados false;
// en otro caso el último aprobado debe haber terminado dentro de la ventana de 30 días.
func (c *ComplianceChecker) IsCompliant(ctx context.Context, companyID, userID string) (bool, error) {
	policy, err := c.policies.Resolve(ctx, companyID)
	if err != nil {
		return false, err
	}
	if !policy.MonthlyTestRequired {
		return true, nil
	}
	monthly, err := c.quizzes.ListByCompanyAndType(ctx, companyID, entity.QuizMonthly)
	if err != nil {
		return false, err
	}
	if len(monthly) == 0 {
		return false, nil
	}
	ids := make([]string, 0, len(monthly))
	for _, q := range monthly {
		ids = append(ids, q.ID)
	}
	attempts, err := c.quizzes.ListAttemptsByUser(ctx, userID, ids)
	if err != nil {
		return false, err
	}
	var latest time.Time
	for _, a := range attempts {
		if a.Passed && a.FinishedAt.After(latest) {
			latest = a.FinishedAt
		}
	}
	if latest.IsZero() {
		return false, nil
	}
	return !latest.Before(c.clock.Now().Add(-ComplianceWindow)), nil
}
