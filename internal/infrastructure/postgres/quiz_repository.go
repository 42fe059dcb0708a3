package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/repository"
)

var _ repository.QuizRepository = (*QuizRepo)(nil)

// QuizRepo tests, preguntas e intentos.
type QuizRepo struct {
	q Querier
}

// NewQuizRepository construye el adaptador de tests.
func NewQuizRepository(q Querier) *QuizRepo {
	return &QuizRepo{q: q}
}

const quizColumns = `id, company_id, title, type, passing_score, created_at`

func scanQuiz(row interface{ Scan(dest ...any) error }) (*entity.Quiz, error) {
	var q entity.Quiz
	if err := row.Scan(&q.ID, &q.CompanyID, &q.Title, &q.Type, &q.PassingScore, &q.CreatedAt); err != nil {
		return nil, err
	}
	return &q, nil
}

func (r *QuizRepo) Create(ctx context.Context, q *entity.Quiz) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quizzes (`+quizColumns+`) VALUES ($1, $2, $3, $4, $5, $6)`,
		q.ID, q.CompanyID, q.Title, q.Type, q.PassingScore, q.CreatedAt)
	if err != nil {
		return fmt.Errorf("insert quiz: %w", err)
	}
	return nil
}

func (r *QuizRepo) GetByID(ctx context.Context, id string) (*entity.Quiz, error) {
	if !isUUID(id) {
		return nil, nil
	}
	q, err := scanQuiz(r.q.QueryRow(ctx, `SELECT `+quizColumns+` FROM quizzes WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get quiz: %w", err)
	}
	return q, nil
}

func (r *QuizRepo) ListByCompany(ctx context.Context, companyID string) ([]*entity.Quiz, error) {
	return r.listQuizzes(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE company_id = $1 ORDER BY created_at, id`, companyID)
}

func (r *QuizRepo) ListByCompanyAndType(ctx context.Context, companyID, quizType string) ([]*entity.Quiz, error) {
	return r.listQuizzes(ctx,
		`SELECT `+quizColumns+` FROM quizzes WHERE company_id = $1 AND type = $2 ORDER BY created_at, id`,
		companyID, quizType)
}

func (r *QuizRepo) listQuizzes(ctx context.Context, query string, args ...any) ([]*entity.Quiz, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list quizzes: %w", err)
	}
	defer rows.Close()
	var list []*entity.Quiz
	for rows.Next() {
		q, err := scanQuiz(rows)
		if err != nil {
			return nil, fmt.Errorf("scan quiz: %w", err)
		}
		list = append(list, q)
	}
	return list, rows.Err()
}

// AddQuestion las preguntas se listan en orden de inserción.
func (r *QuizRepo) AddQuestion(ctx context.Context, q *entity.QuizQuestion) error {
	_, err := r.q.Exec(ctx, `
		INSERT INTO quiz_questions (id, quiz_id, text, answers, correct_answers, explanation, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, clock_timestamp())`,
		q.ID, q.QuizID, q.Text, nonNilStrings(q.Answers), nonNilInts(q.CorrectAnswers), q.Explanation)
	if err != nil {
		return fmt.Errorf("insert question: %w", err)
	}
	return nil
}

func (r *QuizRepo) ListQuestions(ctx context.Context, quizID string) ([]*entity.QuizQuestion, error) {
	if !isUUID(quizID) {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, quiz_id, text, answers, correct_answers, explanation
		FROM quiz_questions WHERE quiz_id = $1 ORDER BY created_at, id`, quizID)
	if err != nil {
		return nil, fmt.Errorf("list questions: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuizQuestion
	for rows.Next() {
		var q entity.QuizQuestion
		if err := rows.Scan(&q.ID, &q.QuizID, &q.Text, &q.Answers, &q.CorrectAnswers, &q.Explanation); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		list = append(list, &q)
	}
	return list, rows.Err()
}

const attemptColumns = `id, quiz_id, user_id, score, passed, answers, started_at, finished_at`

func (r *QuizRepo) CreateAttempt(ctx context.Context, a *entity.QuizAttempt) error {
	answers, err := json.Marshal(a.Answers)
	if err != nil {
		return fmt.Errorf("encode attempt answers: %w", err)
	}
	_, err = r.q.Exec(ctx, `
		INSERT INTO quiz_attempts (`+attemptColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		a.ID, a.QuizID, a.UserID, a.Score, a.Passed, string(answers), a.StartedAt, a.FinishedAt)
	if err != nil {
		return fmt.Errorf("insert attempt: %w", err)
	}
	return nil
}

func (r *QuizRepo) ListAttemptsByQuiz(ctx context.Context, quizID string) ([]*entity.QuizAttempt, error) {
	if !isUUID(quizID) {
		return nil, nil
	}
	return r.listAttempts(ctx,
		`SELECT `+attemptColumns+` FROM quiz_attempts WHERE quiz_id = $1 ORDER BY finished_at DESC`, quizID)
}

// ListAttemptsByUser intentos del usuario restringidos a quizIDs.
func (r *QuizRepo) ListAttemptsByUser(ctx context.Context, userID string, quizIDs []string) ([]*entity.QuizAttempt, error) {
	if len(quizIDs) == 0 || !isUUID(userID) {
		return nil, nil
	}
	return r.listAttempts(ctx, `
		SELECT `+attemptColumns+` FROM quiz_attempts
		WHERE user_id = $1 AND quiz_id::text = ANY($2)
		ORDER BY finished_at DESC`, userID, quizIDs)
}

func (r *QuizRepo) listAttempts(ctx context.Context, query string, args ...any) ([]*entity.QuizAttempt, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	defer rows.Close()
	var list []*entity.QuizAttempt
	for rows.Next() {
		var (
			a       entity.QuizAttempt
			answers []byte
		)
		if err := rows.Scan(&a.ID, &a.QuizID, &a.UserID, &a.Score, &a.Passed, &answers, &a.StartedAt, &a.FinishedAt); err != nil {
			return nil, fmt.Errorf("scan attempt: %w", err)
		}
		if err := json.Unmarshal(answers, &a.Answers); err != nil {
			return nil, fmt.Errorf("decode attempt answers: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

func nonNilInts(xs []int) []int {
	if xs == nil {
		return []int{}
	}
	return xs
}
