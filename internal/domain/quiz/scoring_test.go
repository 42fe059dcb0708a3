package quiz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
	"github.com/jhoicas/staffops-api/internal/domain/quiz"
)

func questions(correct ...[]int) []*entity.QuizQuestion {
	out := make([]*entity.QuizQuestion, 0, len(correct))
	for i, c := range correct {
		out = append(out, &entity.QuizQuestion{
			ID:             string(rune('a' + i)),
			Answers:        []string{"uno", "dos", "tres", "cuatro"},
			CorrectAnswers: c,
		})
	}
	return out
}

func TestScore_SinPreguntas_EsCero(t *testing.T) {
	assert.Equal(t, 0, quiz.Score(nil, map[string][]int{"a": {0}}))
}

func TestScore_TresDeCuatro(t *testing.T) {
	qs := questions([]int{0}, []int{1}, []int{2}, []int{3})
	answers := map[string][]int{"a": {0}, "b": {1}, "c": {2}, "d": {0}}

	score := quiz.Score(qs, answers)
	assert.Equal(t, 75, score)
	assert.True(t, quiz.Passed(score, 70))
	assert.False(t, quiz.Passed(score, 80))
}

func TestScore_MultiSeleccion_OrdenYDuplicadosNoImportan(t *testing.T) {
	qs := questions([]int{1, 3})

	assert.Equal(t, 100, quiz.Score(qs, map[string][]int{"a": {3, 1}}))
	assert.Equal(t, 100, quiz.Score(qs, map[string][]int{"a": {1, 3, 3}}))
	assert.Equal(t, 0, quiz.Score(qs, map[string][]int{"a": {1}}), "subconjunto no da crédito parcial")
	assert.Equal(t, 0, quiz.Score(qs, map[string][]int{"a": {1, 2, 3}}))
}

func TestScore_PreguntaSinResponder(t *testing.T) {
	qs := questions([]int{0}, []int{1}, []int{2})
	assert.Equal(t, 33, quiz.Score(qs, map[string][]int{"a": {0}}))
}

func TestScore_Redondeo(t *testing.T) {
	qs := questions([]int{0}, []int{0}, []int{0})
	assert.Equal(t, 67, quiz.Score(qs, map[string][]int{"a": {0}, "b": {0}}))
}

func TestPassed_Limite(t *testing.T) {
	assert.True(t, quiz.Passed(70, 70))
	assert.False(t, quiz.Passed(69, 70))
	assert.True(t, quiz.Passed(0, 0))
}
