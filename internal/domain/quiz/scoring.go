package quiz

import (
	"math"

	"github.com/jhoicas/staffops-api/internal/domain/entity"
)

// Score calcula el puntaje 0..100 de un intento.
// Una pregunta es correcta si el conjunto de índices elegido coincide exactamente con el correcto
// (el orden y los duplicados no importan). Sin preguntas el puntaje es 0.
func Score(questions []*entity.QuizQuestion, answers map[string][]int) int {
	if len(questions) == 0 {
		return 0
	}
	correct := 0
	for _, q := range questions {
		if sameSet(answers[q.ID], q.CorrectAnswers) {
			correct++
		}
	}
	return int(math.Round(100 * float64(correct) / float64(len(questions))))
}

// Passed informa si score alcanza el mínimo del quiz.
func Passed(score, passingScore int) bool {
	return score >= passingScore
}

func sameSet(a, b []int) bool {
	sa, sb := toSet(a), toSet(b)
	if len(sa) != len(sb) {
		return false
	}
	for k := range sa {
		if _, ok := sb[k]; !ok {
			return false
		}
	}
	return true
}

func toSet(xs []int) map[int]struct{} {
	s := make(map[int]struct{}, len(xs))
	for _, x := range xs {
		s[x] = struct{}{}
	}
	return s
}
