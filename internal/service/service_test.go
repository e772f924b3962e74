package service

import (
	"path/filepath"
	"testing"

	"learnlocal_backend/internal/config"
	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/repository"
	"learnlocal_backend/pkg/logger"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	db       *gorm.DB
	cfg      *config.Config
	progress *ProgressService
	certs    *CertificateService
	content  *ContentService
	user     *model.User
	module   *model.Module
}

// newTestEnv opens a throwaway sqlite store with the production schema and
// seeds one user and one module matching the canonical scenario: three
// lessons and one quiz anchored after lesson-2.
func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger.Log = zap.NewNop()

	dsn := filepath.Join(t.TempDir(), "test.db") + "?_foreign_keys=on"
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&model.User{},
		&model.Module{},
		&model.ModuleProgress{},
		&model.LessonProgress{},
		&model.Certificate{},
	))

	user := &model.User{Username: "ada", Email: "ada@example.com", Password: "x"}
	require.NoError(t, db.Create(user).Error)

	module := &model.Module{
		Title:      "Pointers and Memory",
		Difficulty: "intermediate",
		Tags:       model.Tags{"c", "memory"},
		Version:    "1.0.0",
		Content: model.ModuleContent{
			Lessons: []model.Lesson{
				{ID: "lesson-1", Title: "Addresses", Duration: 10},
				{ID: "lesson-2", Title: "Dereferencing", Duration: 15},
				{ID: "lesson-3", Title: "Ownership", Duration: 10},
			},
			Quizzes: []model.Quiz{
				{ID: "quiz-1", Title: "Checkpoint", AfterLessonID: "lesson-2", PassingScore: 70},
			},
		},
	}
	require.NoError(t, db.Create(module).Error)

	cfg := &config.Config{
		Certificate: config.CertificateConfig{Prefix: "CERT", LessonThreshold: 0.8},
	}

	userRepo := repository.NewUserRepository(db)
	moduleRepo := repository.NewModuleRepository(db)
	progressRepo := repository.NewProgressRepository(db)
	certRepo := repository.NewCertificateRepository(db)

	return &testEnv{
		db:       db,
		cfg:      cfg,
		progress: NewProgressService(moduleRepo, progressRepo, db),
		certs:    NewCertificateService(certRepo, userRepo, moduleRepo, progressRepo, cfg),
		content:  NewContentService(moduleRepo),
		user:     user,
		module:   module,
	}
}

func (e *testEnv) record(t *testing.T, itemID string, completed bool, delta int, score *int) *model.LessonProgress {
	t.Helper()
	lp, err := e.progress.RecordLessonOutcome(e.user.ID, LessonOutcomeRequest{
		ModuleID:       e.module.ID,
		ItemID:         itemID,
		Completed:      completed,
		TimeSpentDelta: delta,
		QuizScore:      score,
	})
	require.NoError(t, err)
	return lp
}

func intPtr(v int) *int { return &v }
