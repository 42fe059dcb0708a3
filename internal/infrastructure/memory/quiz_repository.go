package memory

import (
	"context"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var _ repository.QuizRepository = (*QuizRepo)(nil)

type QuizRepo struct{ s *Store }

func cloneQuestion(q *entity.QuizQuestion) *entity.QuizQuestion {
	c := *q
	c.Answers = cloneStrings(q.Answers)
	c.CorrectAnswers = cloneInts(q.CorrectAnswers)
	return &c
}

func cloneAttempt(a *entity.QuizAttempt) *entity.QuizAttempt {
	c := *a
	c.Answers = make(map[string][]int, len(a.Answers))
	for k, v := range a.Answers {
		c.Answers[k] = cloneInts(v)
	}
	return &c
}

func (r *QuizRepo) Create(_ context.Context, q *entity.Quiz) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.quizzes.put(q.ID, clonePtr(q))
	return nil
}

func (r *QuizRepo) GetByID(_ context.Context, id string) (*entity.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	q, _ := r.s.quizzes.get(id)
	return clonePtr(q), nil
}

func (r *QuizRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Quiz, error) {
	return r.ListByCompanyAndType(ctx, companyID, "")
}

func (r *QuizRepo) ListByCompanyAndType(_ context.Context, companyID, quizType string) ([]*entity.Quiz, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Quiz
	for _, q := range r.s.quizzes.filter(func(q *entity.Quiz) bool {
		return q.CompanyID == companyID && (quizType == "" || q.Type == quizType)
	}) {
		out = append(out, clonePtr(q))
	}
	return out, nil
}

func (r *QuizRepo) AddQuestion(_ context.Context, q *entity.QuizQuestion) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.questions.put(q.ID, cloneQuestion(q))
	return nil
}

func (r *QuizRepo) ListQuestions(_ context.Context, quizID string) ([]*entity.QuizQuestion, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.QuizQuestion
	for _, q := range r.s.questions.filter(func(q *entity.QuizQuestion) bool { return q.QuizID == quizID }) {
		out = append(out, cloneQuestion(q))
	}
	return out, nil
}

func (r *QuizRepo) CreateAttempt(_ context.Context, a *entity.QuizAttempt) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.attempts.put(a.ID, cloneAttempt(a))
	return nil
}

func (r *QuizRepo) ListAttemptsByQuiz(_ context.Context, quizID string) ([]*entity.QuizAttempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.QuizAttempt
	for _, a := range r.s.attempts.filter(func(a *entity.QuizAttempt) bool { return a.QuizID == quizID }) {
		out = append(out, cloneAttempt(a))
	}
	return out, nil
}

func (r *QuizRepo) ListAttemptsByUser(_ context.Context, userID string, quizIDs []string) ([]*entity.QuizAttempt, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	ids := make(map[string]bool, len(quizIDs))
	for _, id := range quizIDs {
		ids[id] = true
	}
	var out []*entity.QuizAttempt
	for _, a := range r.s.attempts.filter(func(a *entity.QuizAttempt) bool { return a.UserID == userID && ids[a.QuizID] }) {
		out = append(out, cloneAttempt(a))
	}
	return out, nil
}
