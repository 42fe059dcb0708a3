package usecase

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// TrainingUseCase secciones y lecciones de capacitación.
type TrainingUseCase struct {
	repo      repository.TrainingRepository
	companies repository.CompanyRepository
	clock     ports.Clock
}

// NewTrainingUseCase construye el caso de uso.
func NewTrainingUseCase(repo repository.TrainingRepository, companies repository.CompanyRepository, clock ports.Clock) *TrainingUseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &TrainingUseCase{repo: repo, companies: companies, clock: clock}
}

func (uc *TrainingUseCase) CreateSection(ctx context.Context, companyID string, in dto.CreateSectionRequest) (*dto.SectionResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	sec := &entity.TrainingSection{
		ID:        uuid.New().String(),
		CompanyID: companyID,
		Title:     in.Title,
		Order:     in.Order,
		CreatedAt: uc.clock.Now(),
	}
	if err := uc.repo.CreateSection(ctx, sec); err != nil {
		return nil, err
	}
	return toSectionResponse(sec), nil
}

func (uc *TrainingUseCase) ListSections(ctx context.Context, companyID string) ([]dto.SectionResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListSections(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SectionResponse, 0, len(list))
	for _, s := range list {
		out = append(out, *toSectionResponse(s))
	}
	return out, nil
}

// CreateLesson la sección debe pertenecer a la empresa.
func (uc *TrainingUseCase) CreateLesson(ctx context.Context, companyID string, in dto.CreateLessonRequest) (*dto.LessonResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	sec, err := uc.repo.GetSection(ctx, in.SectionID)
	if err != nil {
		return nil, err
	}
	if sec == nil || sec.CompanyID != companyID {
		return nil, domain.ErrSectionNotFound
	}
	lesson := &entity.TrainingLesson{
		ID:         uuid.New().String(),
		CompanyID:  companyID,
		SectionID:  in.SectionID,
		Title:      in.Title,
		Body:       in.Body,
		MediaLinks: append([]string(nil), in.MediaLinks...),
		Tags:       append([]string(nil), in.Tags...),
		UpdatedAt:  uc.clock.Now(),
	}
	if err := uc.repo.CreateLesson(ctx, lesson); err != nil {
		return nil, err
	}
	return toLessonResponse(lesson), nil
}

func (uc *TrainingUseCase) ListLessons(ctx context.Context, companyID, sectionID string) ([]dto.LessonResponse, error) {
	if _, err := requireCompany(ctx, uc.companies, companyID); err != nil {
		return nil, err
	}
	list, err := uc.repo.ListLessons(ctx, companyID, sectionID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.LessonResponse, 0, len(list))
	for _, l := range list {
		out = append(out, *toLessonResponse(l))
	}
	return out, nil
}

func toSectionResponse(s *entity.TrainingSection) *dto.SectionResponse {
	return &dto.SectionResponse{ID: s.ID, CompanyID: s.CompanyID, Title: s.Title, Order: s.Order, CreatedAt: s.CreatedAt}
}

func toLessonResponse(l *entity.TrainingLesson) *dto.LessonResponse {
	return &dto.LessonResponse{
		ID:         l.ID,
		CompanyID:  l.CompanyID,
		SectionID:  l.SectionID,
		Title:      l.Title,
		Body:       l.Body,
		MediaLinks: nonNil(l.MediaLinks),
		Tags:       nonNil(l.Tags),
		UpdatedAt:  l.UpdatedAt,
	}
}
