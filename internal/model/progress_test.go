package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestModuleItemTypeOf(t *testing.T) {
	m := &Module{
		Content: ModuleContent{
			Lessons: []Lesson{{ID: "lesson-1"}, {ID: "lesson-intro"}},
			Quizzes: []Quiz{{ID: "quiz-1"}},
		},
	}

	cases := []struct {
		id    string
		want  ItemType
		known bool
	}{
		{"lesson-1", ItemLesson, true},
		{"lesson-intro", ItemLesson, true},
		{"quiz-1", ItemQuiz, true},
		{"lesson-99", "", false},
		{"quiz-final", "", false},
	}

	for _, c := range cases {
		got, ok := m.ItemTypeOf(c.id)
		assert.Equal(t, c.known, ok, c.id)
		assert.Equal(t, c.want, got, c.id)
	}
}

func TestModuleDerivedCounts(t *testing.T) {
	m := &Module{
		Content: ModuleContent{
			Lessons: []Lesson{
				{ID: "lesson-1", Duration: 10},
				{ID: "lesson-2", Duration: 20},
			},
			Quizzes: []Quiz{{ID: "quiz-1"}},
		},
	}

	assert.Equal(t, 2, m.TotalLessons())
	assert.Equal(t, 1, m.TotalQuizzes())
	assert.Equal(t, 30, m.EstimatedDuration())
}
