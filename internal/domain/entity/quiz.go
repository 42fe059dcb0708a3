package entity

import "time"

// Tipos de quiz.
const (
	QuizOnboarding = "onboarding"
	QuizMonthly    = "monthly"
	QuizRandom     = "random"
)

// DefaultPassingScore puntaje mínimo cuando no se indica otro.
const DefaultPassingScore = 70

// Quiz test de conocimiento.
type Quiz struct {
	ID           string
	CompanyID    string
	Title        string
	Type         string
	PassingScore int // 0..100
	CreatedAt    time.Time
}

// QuizQuestion pregunta de un quiz. CorrectAnswers son índices sobre Answers.
type QuizQuestion struct {
	ID             string
	QuizID         string
	Text           string
	Answers        []string
	CorrectAnswers []int
	Explanation    string
}

// QuizAttempt intento resuelto (inmutable). Answers: question_id -> índices elegidos.
type QuizAttempt struct {
	ID         string
	QuizID     string
	UserID     string
	Score      int
	Passed     bool
	Answers    map[string][]int
	StartedAt  time.Time
	FinishedAt time.Time
}
