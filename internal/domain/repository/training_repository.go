package repository

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// TrainingRepository puerto para secciones y lecciones de capacitación.
type TrainingRepository interface {
	CreateSection(ctx context.Context, section *entity.TrainingSection) error
	GetSection(ctx context.Context, id string) (*entity.TrainingSection, error)
	ListSections(ctx context.Context, companyID string) ([]*entity.TrainingSection, error)
	CreateLesson(ctx context.Context, lesson *entity.TrainingLesson) error
	// ListLessons filtra por sección si sectionID no está vacío.
	ListLessons(ctx context.Context, companyID, sectionID string) ([]*entity.TrainingLesson, error)
}
