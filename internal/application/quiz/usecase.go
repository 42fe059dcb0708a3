// Package quiz gestiona tests de conocimiento: preguntas, intentos puntuados y
// el control de test mensual que bloquea el cierre de turnos.
package quiz

import (
	"context"
	"sort"

	"github.com/google/uuid"

	"github.com/jhoicas/staffops-api/internal/application/dto"
	"github.com/jhoicas/staffops-api/internal/application/ports"
	"github.com/jhoicas/staffops-api/internal/domain"
	"github.com/jhoicas/staffops-api/internal/domain/entity"
	scoring "github.com/jhoicas/staffops-api/internal/domain/quiz"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

// UseCase casos de uso de quizzes.
type UseCase struct {
	quizzes   repository.QuizRepository
	companies repository.CompanyRepository
	users     repository.UserRepository
	clock     ports.Clock
}

// NewUseCase construye el caso de uso.
func NewUseCase(quizzes repository.QuizRepository, companies repository.CompanyRepository, users repository.UserRepository, clock ports.Clock) *UseCase {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	return &UseCase{quizzes: quizzes, companies: companies, users: users, clock: clock}
}

// Create crea un quiz. PassingScore por defecto 70.
func (uc *UseCase) Create(ctx context.Context, companyID string, in dto.CreateQuizRequest) (*dto.QuizResponse, error) {
	if err := uc.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	passing := entity.DefaultPassingScore
	if in.PassingScore != nil {
		passing = *in.PassingScore
	}
	q := &entity.Quiz{
		ID:           uuid.New().String(),
		CompanyID:    companyID,
		Title:        in.Title,
		Type:         in.Type,
		PassingScore: passing,
		CreatedAt:    uc.clock.Now(),
	}
	if err := uc.quizzes.Create(ctx, q); err != nil {
		return nil, err
	}
	return toQuizResponse(q), nil
}

// List quizzes de la empresa.
func (uc *UseCase) List(ctx context.Context, companyID string) ([]dto.QuizResponse, error) {
	if err := uc.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	list, err := uc.quizzes.ListByCompany(ctx, companyID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuizResponse, 0, len(list))
	for _, q := range list {
		out = append(out, *toQuizResponse(q))
	}
	return out, nil
}

// AddQuestion agrega una pregunta. Los índices correctos deben existir en answers.
func (uc *UseCase) AddQuestion(ctx context.Context, companyID, quizID string, in dto.AddQuestionRequest) (*dto.QuestionResponse, error) {
	if _, err := uc.quizOf(ctx, companyID, quizID); err != nil {
		return nil, err
	}
	for _, idx := range in.CorrectAnswers {
		if idx < 0 || idx >= len(in.Answers) {
			return nil, domain.ErrInvalidAnswerIndex
		}
	}
	q := &entity.QuizQuestion{
		ID:             uuid.New().String(),
		QuizID:         quizID,
		Text:           in.Text,
		Answers:        append([]string(nil), in.Answers...),
		CorrectAnswers: append([]int(nil), in.CorrectAnswers...),
		Explanation:    in.Explanation,
	}
	if err := uc.quizzes.AddQuestion(ctx, q); err != nil {
		return nil, err
	}
	return toQuestionResponse(q), nil
}

// ListQuestions preguntas de un quiz.
func (uc *UseCase) ListQuestions(ctx context.Context, companyID, quizID string) ([]dto.QuestionResponse, error) {
	if _, err := uc.quizOf(ctx, companyID, quizID); err != nil {
		return nil, err
	}
	list, err := uc.quizzes.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.QuestionResponse, 0, len(list))
	for _, q := range list {
		out = append(out, *toQuestionResponse(q))
	}
	return out, nil
}

// SubmitAttempt puntúa y registra un intento.
func (uc *UseCase) SubmitAttempt(ctx context.Context, companyID, quizID string, in dto.SubmitAttemptRequest) (*dto.AttemptResponse, error) {
	q, err := uc.quizOf(ctx, companyID, quizID)
	if err != nil {
		return nil, err
	}
	user, err := uc.users.GetByID(ctx, in.UserID)
	if err != nil {
		return nil, err
	}
	if user == nil || user.CompanyID != companyID {
		return nil, domain.ErrUserNotFound
	}
	questions, err := uc.quizzes.ListQuestions(ctx, quizID)
	if err != nil {
		return nil, err
	}
	now := uc.clock.Now()
	started := now
	if in.StartedAt != nil && !in.StartedAt.After(now) {
		started = *in.StartedAt
	}
	score := scoring.Score(questions, in.Answers)
	a := &entity.QuizAttempt{
		ID:         uuid.New().String(),
		QuizID:     quizID,
		UserID:     in.UserID,
		Score:      score,
		Passed:     scoring.Passed(score, q.PassingScore),
		Answers:    copyAnswers(in.Answers),
		StartedAt:  started,
		FinishedAt: now,
	}
	if err := uc.quizzes.CreateAttempt(ctx, a); err != nil {
		return nil, err
	}
	return toAttemptResponse(a), nil
}

// ListAttempts intentos de un quiz, del más reciente al más antiguo.
func (uc *UseCase) ListAttempts(ctx context.Context, companyID, quizID string) ([]dto.AttemptResponse, error) {
	if _, err := uc.quizOf(ctx, companyID, quizID); err != nil {
		return nil, err
	}
	list, err := uc.quizzes.ListAttemptsByQuiz(ctx, quizID)
	if err != nil {
		return nil, err
	}
	sort.SliceStable(list, func(i, j int) bool { return list[i].FinishedAt.After(list[j].FinishedAt) })
	out := make([]dto.AttemptResponse, 0, len(list))
	for _, a := range list {
		out = append(out, *toAttemptResponse(a))
	}
	return out, nil
}

func (uc *UseCase) quizOf(ctx context.Context, companyID, quizID string) (*entity.Quiz, error) {
	if err := uc.requireCompany(ctx, companyID); err != nil {
		return nil, err
	}
	q, err := uc.quizzes.GetByID(ctx, quizID)
	if err != nil {
		return nil, err
	}
	if q == nil || q.CompanyID != companyID {
		return nil, domain.ErrQuizNotFound
	}
	return q, nil
}

func (uc *UseCase) requireCompany(ctx context.Context, companyID string) error {
	c, err := uc.companies.GetByID(ctx, companyID)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func copyAnswers(in map[string][]int) map[string][]int {
	out := make(map[string][]int, len(in))
	for k, v := range in {
		out[k] = append([]int(nil), v...)
	}
	return out
}

func toQuizResponse(q *entity.Quiz) *dto.QuizResponse {
	return &dto.QuizResponse{
		ID:           q.ID,
		CompanyID:    q.CompanyID,
		Title:        q.Title,
		Type:         q.Type,
		PassingScore: q.PassingScore,
		CreatedAt:    q.CreatedAt,
	}
}

func toQuestionResponse(q *entity.QuizQuestion) *dto.QuestionResponse {
	return &dto.QuestionResponse{
		ID:             q.ID,
		QuizID:         q.QuizID,
		Text:           q.Text,
		Answers:        q.Answers,
		CorrectAnswers: q.CorrectAnswers,
		Explanation:    q.Explanation,
	}
}

func toAttemptResponse(a *entity.QuizAttempt) *dto.AttemptResponse {
	return &dto.AttemptResponse{
		ID:         a.ID,
		QuizID:     a.QuizID,
		UserID:     a.UserID,
		Score:      a.Score,
		Passed:     a.Passed,
		Answers:    a.Answers,
		StartedAt:  a.StartedAt,
		FinishedAt: a.FinishedAt,
	}
}
