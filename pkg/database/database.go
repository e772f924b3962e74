package database

import (
	"fmt"
	"log"

	"learnlocal_backend/internal/config"
	"learnlocal_backend/internal/model"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// InitDB opens the embedded SQLite store. Foreign keys are enforced so
// deleting a module or user cascades to its progress rows and certificates.
func InitDB(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	dsn := fmt.Sprintf("%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=%d",
		cfg.Path,
		cfg.BusyTimeoutMS,
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})

	if err != nil {
		return nil, err
	}

	log.Println("Database connection established")

	err = db.AutoMigrate(
		&model.User{},
		&model.Module{},
		&model.ModuleProgress{},
		&model.LessonProgress{},
		&model.Certificate{},
	)

	if err != nil {
		return nil, err
	}

	log.Println("Database migration completed")

	seedModules(db)

	return db, nil
}

// seedModules inserts a starter module when the store is empty, so a fresh
// install has something to show before any content is imported.
func seedModules(db *gorm.DB) {
	var count int64
	db.Model(&model.Module{}).Count(&count)
	if count > 0 {
		return
	}

	starter := &model.Module{
		Title:       "Getting Started",
		Description: "A short walkthrough of lessons, quizzes and certificates.",
		Difficulty:  "beginner",
		Tags:        model.Tags{"intro", "tutorial"},
		Version:     "1.0.0",
		Content: model.ModuleContent{
			Lessons: []model.Lesson{
				{
					ID:       "lesson-1",
					Title:    "Welcome",
					Duration: 5,
					Blocks: []model.ContentBlock{
						{Type: model.BlockText, Text: "Modules are made of lessons and quizzes. Finish them all to earn a certificate."},
					},
				},
				{
					ID:       "lesson-2",
					Title:    "Tracking your progress",
					Duration: 5,
					Blocks: []model.ContentBlock{
						{Type: model.BlockText, Text: "Progress is saved locally. You can revisit lessons at any time; time spent adds up."},
					},
				},
			},
			Quizzes: []model.Quiz{
				{
					ID:            "quiz-1",
					Title:         "Check your understanding",
					AfterLessonID: "lesson-2",
					PassingScore:  70,
					Questions: []model.Question{
						{
							ID:      "q1",
							Prompt:  "When is a certificate issued?",
							Options: []string{"Immediately", "After enough lessons are completed", "Never"},
							Answer:  1,
						},
					},
				},
			},
		},
	}

	if err := db.Create(starter).Error; err != nil {
		log.Printf("failed to seed starter module: %v", err)
	}
}
