package service

import (
	"testing"

	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/util"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestModuleSummaryDerivesFromContent(t *testing.T) {
	env := newTestEnv(t)

	summaries, total, err := env.content.ListModules(1, 20)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, summaries, 1)

	s := summaries[0]
	assert.Equal(t, 3, s.TotalLessons)
	assert.Equal(t, 1, s.TotalQuizzes)
	assert.Equal(t, 35, s.EstimatedDuration) // 10 + 15 + 10
}

func TestCreateModuleRejectsBadContent(t *testing.T) {
	env := newTestEnv(t)

	err := env.content.CreateModule(&model.Module{
		Title: "dup ids",
		Content: model.ModuleContent{
			Lessons: []model.Lesson{{ID: "lesson-1"}, {ID: "lesson-1"}},
		},
	})
	assert.Error(t, err)

	err = env.content.CreateModule(&model.Module{
		Title: "bad anchor",
		Content: model.ModuleContent{
			Lessons: []model.Lesson{{ID: "lesson-1"}},
			Quizzes: []model.Quiz{{ID: "quiz-1", AfterLessonID: "lesson-9", PassingScore: 70}},
		},
	})
	assert.Error(t, err)

	err = env.content.CreateModule(&model.Module{
		Title: "bad passing score",
		Content: model.ModuleContent{
			Lessons: []model.Lesson{{ID: "lesson-1"}},
			Quizzes: []model.Quiz{{ID: "quiz-1", PassingScore: 150}},
		},
	})
	assert.Error(t, err)
}

func TestContentDocumentRoundTrip(t *testing.T) {
	env := newTestEnv(t)

	loaded, err := env.content.GetModule(env.module.ID)
	require.NoError(t, err)

	require.Len(t, loaded.Content.Lessons, 3)
	require.Len(t, loaded.Content.Quizzes, 1)
	assert.Equal(t, "lesson-2", loaded.Content.Quizzes[0].AfterLessonID)
	assert.Equal(t, 70, loaded.Content.Quizzes[0].PassingScore)
	assert.Equal(t, model.Tags{"c", "memory"}, loaded.Tags)
}

func TestDeleteModuleCascades(t *testing.T) {
	env := newTestEnv(t)

	env.record(t, "lesson-1", true, 10, nil)
	env.record(t, "lesson-2", true, 10, nil)
	env.record(t, "lesson-3", true, 10, nil)
	_, err := env.certs.Issue(env.user.ID, env.module.ID)
	require.NoError(t, err)

	require.NoError(t, env.content.DeleteModule(env.module.ID))

	var lessonRows, moduleRows, certRows int64
	env.db.Model(&model.LessonProgress{}).Where("module_id = ?", env.module.ID).Count(&lessonRows)
	env.db.Model(&model.ModuleProgress{}).Where("module_id = ?", env.module.ID).Count(&moduleRows)
	env.db.Model(&model.Certificate{}).Where("module_id = ?", env.module.ID).Count(&certRows)

	assert.Zero(t, lessonRows)
	assert.Zero(t, moduleRows)
	assert.Zero(t, certRows)
}

func TestUpdateModuleValidatesContent(t *testing.T) {
	env := newTestEnv(t)

	badContent := model.ModuleContent{
		Lessons: []model.Lesson{{ID: "a"}, {ID: "a"}},
	}
	_, err := env.content.UpdateModule(env.module.ID, ModuleUpdateRequest{Content: &badContent})
	assert.Error(t, err)

	title := "Renamed"
	updated, err := env.content.UpdateModule(env.module.ID, ModuleUpdateRequest{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)

	_, err = env.content.UpdateModule(9999, ModuleUpdateRequest{Title: &title})
	assert.ErrorIs(t, err, util.ErrModuleNotFound)
}
