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

// ScheduleUseCase cronograma y reportes de cliente incógnito.
type ScheduleUseCase struct {
	schedule  repository.ScheduleRepository
	mystery   repository.MysteryShopperRepository
	companies repository.CompanyRepository
	locations repository.LocationRepository
	users     repository.UserRepository
	clock     ports.Clock
}

// NewScheduleUseCase construye el caso de uso.
func NewScheduleUseCase(
	schedule repository.ScheduleRepository,
	mystery repository.MysteryShopperRepository,
	companies repository.CompanyRepository,
	locations repository.LocationRepository,
	users repository.UserRepository,
	clock ports.Clock,
) *ScheduleUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &ScheduleUseCase{schedule: schedule, mystery: mystery, companies: companies, locations: locations, users: users, clock: clock}
}

// CreateEntry planifica un turno. end_at debe ser posterior a start_at.
func (uc *ScheduleUseCase) CreateEntry(ctx context.Context, companyID string, in dto.CreateScheduleRequest) (*dto.ScheduleResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	if !in.EndAt.After(in.StartAt) {
		return nil, domain.ErrInvalidTimeRange
	}
	if err := uc.requireLocation(ctx, companyID, in.LocationID); err != nil {
		return nil, err
	}
	if err := uc.requireUser(ctx, companyID, in.UserID); err != nil {
		return nil, err
	}
	status := in.Status
	if status == "" {
		status = entity.SchedulePlanned
	}
	e := &entity.ScheduleEntry{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		LocationID: in.LocationID,
		UserID:     in.UserID,
		StartAt:    in.StartAt,
		EndAt:      in.EndAt,
		Status:     status,
		CreatedAt:  uc.clock.Now(),
	}
	if err := uc.schedule.Create(ctx, e); err != nil {
		return nil, err
	}
	return toScheduleResponse(e), nil
}

// ListEntries entradas que empiezan en [from, to).
func (uc *ScheduleUseCase) ListEntries(ctx context.Context, companyID string, from, to time.Time) ([]dto.ScheduleResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	list, err := uc.schedule.ListByCompany(ctx, companyID, from, to)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ScheduleResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toScheduleResponse(e))
	}
	return out, nil
}

// CreateMysteryReport registra una evaluación de cliente incógnito.
func (uc *ScheduleUseCase) CreateMysteryReport(ctx context.Context, companyID string, in dto.CreateMysteryReportRequest) (*dto.MysteryReportResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	if err := uc.requireLocation(ctx, companyID, in.LocationID); err != nil {
		return nil, err
	}
	if in.UserID != nil && *in.UserID != "" {
		if err := uc.requireUser(ctx, companyID, *in.UserID); err != nil {
			return nil, err
		}
	}
	answers := in.Answers
	if answers == nil {
		answers = map[string]any{}
	}
	r := &entity.MysteryShopperReport{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		LocationID: in.LocationID,
		UserID:     in.UserID,
		ShiftID:    in.ShiftID,
		Score:      in.Score,
		Answers:    answers,
		CreatedAt:  uc.clock.Now(),
	}
	if err := uc.mystery.Create(ctx, r); err != nil {
		return nil, err
	}
	return toMysteryResponse(r), nil
}

// ListMysteryReports reportes de la empresa.
func (uc *ScheduleUseCase) ListMysteryReports(ctx context.Context, companyID string) ([]dto.MysteryReportResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	list, err := uc.mystery.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MysteryReportResponse, 0, len(list))
	for _, r := range list {
		out = append(out, *toMysteryResponse(r))
	}
	return out, nil
}

func (uc *ScheduleUseCase) requireLocation(ctx context.Context, companyID, id string) error {
	l, err := uc.locations.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if l == nil || l.CompanyID != companyID {
		return domain.ErrLocationNotFound
	}
	return nil
}

func (uc *ScheduleUseCase) requireUser(ctx context.Context, companyID, id string) error {
	u, err := uc.users.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if u == nil || u.CompanyID != companyID {
		return domain.ErrUserNotFound
	}
	return nil
}

func toScheduleResponse(e *entity.ScheduleEntry) *dto.ScheduleResponse {
	return &dto.ScheduleResponse{
		ID:         e.ID,
		CompanyID:  e.CompanyID,
		LocationID: e.LocationID,
		UserID:     e.UserID,
		StartAt:    e.StartAt,
		EndAt:      e.EndAt,
		Status:     e.Status,
	}
}

func toMysteryResponse(r *entity.MysteryShopperReport) *dto.MysteryReportResponse {
	return &dto.MysteryReportResponse{
		ID:         r.ID,
		CompanyID:  r.CompanyID,
		LocationID: r.LocationID,
		UserID:     r.UserID,
		ShiftID:    r.ShiftID,
		Score:      r.Score,
		Answers:    r.Answers,
		CreatedAt:  r.CreatedAt,
	}
}
