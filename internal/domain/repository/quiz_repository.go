package repository

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// QuizRepository puerto para quizzes, preguntas e intentos.
type QuizRepository interface {
	Create(ctx context.Context, quiz *entity.Quiz) error
	GetByID(ctx context.Context, id string) (*entity.Quiz, error)
	ListByCompany(ctx context.Context, companyID string) ([]*entity.Quiz, error)
	ListByCompanyAndType(ctx context.Context, companyID, quizType string) ([]*entity.Quiz, error)

	AddQuestion(ctx context.Context, q *entity.QuizQuestion) error
	ListQuestions(ctx context.Context, quizID string) ([]*entity.QuizQuestion, error)

	CreateAttempt(ctx context.Context, a *entity.QuizAttempt) error
	ListAttemptsByQuiz(ctx context.Context, quizID string) ([]*entity.QuizAttempt, error)
	// ListAttemptsByUser devuelve los intentos del usuario sobre cualquiera de quizIDs.
	ListAttemptsByUser(ctx context.Context, userID string, quizIDs []string) ([]*entity.QuizAttempt, error)
}
