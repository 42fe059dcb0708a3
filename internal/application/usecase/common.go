package usecase

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// requireCompany devuelve la empresa o domain.ErrCompanyNotFound.
func requireCompany(ctx context.Context, repo repository.CompanyRepository, companyID string) (*entity.Company, error) {
	c, err := repo.GetByID(ctx, companyID)
	if err != nil {
		return nil, err
	}
	if c == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return c, nil
}

func nonNil[T any](xs []T) []T {
	if xs == nil {
		return []T{}
	}
	return xs
}
