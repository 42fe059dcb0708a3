package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// CompanyUseCase aplica reglas de negocio para empresas y sus puntos de venta.
type CompanyUseCase struct {
	repo      repository.CompanyRepository
	locations repository.LocationRepository
	clock     ports.Clock
}

// NewCompanyUseCase construye el caso de uso con los puertos de persistencia.
func NewCompanyUseCase(repo repository.CompanyRepository, locations repository.LocationRepository, clock ports.Clock) *CompanyUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &CompanyUseCase{repo: repo, locations: locations, clock: clock}
}

// Create crea una nueva empresa. Sin timezone se usa entity.DefaultTimezone.
func (uc *CompanyUseCase) Create(ctx context.Context, in dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	tz, err := normalizeTimezone(in.Timezone)
	if err != nil {
		return nil, err
	}
	company := &entity.Company{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Timezone:  tz,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.repo.Create(ctx, company); err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// GetByID obtiene una empresa por ID.
func (uc *CompanyUseCase) GetByID(ctx context.Context, id string) (*dto.CompanyResponse, error) {
	company, err := requireCompany(ctx, uc.repo, id)
	if err != nil {
		return nil, err
	}
	return entityToCompanyResponse(company), nil
}

// List lista empresas con paginación.
func (uc *CompanyUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(ctx, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.CompanyResponse, 0, len(list))
	for _, c := range list {
		items = append(items, *entityToCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset},
	}, nil
}

// CreateLocation agrega un punto de venta a la empresa.
func (uc *CompanyUseCase) CreateLocation(ctx context.Context, companyID string, in dto.CreateLocationRequest) (*dto.LocationResponse, error) {
	if _, err := requireCompany(ctx, uc.repo, companyID); err != nil {
		return nil, err
	}
	loc := &entity.Location{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Name:      in.Name,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.locations.Create(ctx, loc); err != nil {
		return nil, err
	}
	return entityToLocationResponse(loc), nil
}

// ListLocations puntos de venta de la empresa.
func (uc *CompanyUseCase) ListLocations(ctx context.Context, companyID string) ([]dto.LocationResponse, error) {
	if _, err := requireCompany(ctx, uc.repo, companyID); err != nil {
		return nil, err
	}
	list, err := uc.locations.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *entityToLocationResponse(l))
	}
	return out, nil
}

// normalizeTimezone valida el nombre IANA; vacío equivale a la zona por defecto.
func normalizeTimezone(tz string) (string, error) {
	if tz == "" {
		return entity.DefaultTimezone, nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return "", domain.ErrInvalidTimezone
	}
	return tz, nil
}

func entityToCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	if c == nil {
		return nil
	}
	return &dto.CompanyResponse{
		ID:        c.ID,
		Name:      c.Name,
		Timezone:  c.Timezone,
		CreatedAt: c.CreatedAt,
	}
}

func entityToLocationResponse(l *entity.Location) *dto.LocationResponse {
	return &dto.LocationResponse{
		ID:        l.ID,
		CompanyID: l.CompanyID,
		Name:      l.Name,
		CreatedAt: l.CreatedAt,
	}
}
