package dto

import "time"

// CreateQuizRequest alta de un test. PassingScore nil = 70.
type CreateQuizRequest struct {
	Title        string `json:"title" validate:"required,min=1,max=200"`
	Type         string `json:"type" validate:"required,oneof=onboarding monthly random"`
	PassingScore *int   `json:"passing_score" validate:"omitempty,min=0,max=100"`
}

// QuizResponse salida de un test.
type QuizResponse struct {
	ID           string    `json:"id"`
	CompanyID    string    `json:"company_id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	PassingScore int       `json:"passing_score"`
	CreatedAt    time.Time `json:"created_at"`
}

// AddQuestionRequest pregunta con índices de respuestas correctas.
type AddQuestionRequest struct {
	Text           string   `json:"text" validate:"required,min=1,max=2000"`
	Answers        []string `json:"answers" validate:"required,min=2,dive,required"`
	CorrectAnswers []int    `json:"correct_answers" validate:"required,min=1,dive,min=0"`
	Explanation    string   `json:"explanation" validate:"omitempty,max=2000"`
}

// QuestionResponse salida de una pregunta.
type QuestionResponse struct {
	ID             string   `json:"id"`
	QuizID         string   `json:"quiz_id"`
	Text           string   `json:"text"`
	Answers        []string `json:"answers"`
	CorrectAnswers []int    `json:"correct_answers,omitempty"` // vacío para staff
	Explanation    string   `json:"explanation,omitempty"`
}

// SubmitAttemptRequest respuestas de un intento: question_id -> índices elegidos.
type SubmitAttemptRequest struct {
	UserID    string           `json:"user_id" validate:"required"`
	Answers   map[string][]int `json:"answers"`
	StartedAt *time.Time       `json:"started_at"`
}

// AttemptResponse resultado de un intento.
type AttemptResponse struct {
	ID         string           `json:"id"`
	QuizID     string           `json:"quiz_id"`
	UserID     string           `json:"user_id"`
	Score      int              `json:"score"`
	Passed     bool             `json:"passed"`
	Answers    map[string][]int `json:"answers"`
	StartedAt  time.Time        `json:"started_at"`
	FinishedAt time.Time        `json:"finished_at"`
}

// ComplianceResponse estado del test mensual de un usuario.
type ComplianceResponse struct {
	UserID    string `json:"user_id"`
	Compliant bool   `json:"compliant"`
}
