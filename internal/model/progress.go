package model

import (
	"time"
)

// ItemType is the discriminator stored with each progress row. It is
// resolved from the module's content document, never from the id shape.
type ItemType string

const (
	ItemLesson ItemType = "lesson"
	ItemQuiz   ItemType = "quiz"
)

// ModuleProgress is the per-user aggregate for one module. One row per
// (user, module) pair.
type ModuleProgress struct {
	ID                 uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID             uint       `gorm:"uniqueIndex:idx_user_module;not null" json:"userId"`
	ModuleID           uint       `gorm:"uniqueIndex:idx_user_module;not null" json:"moduleId"`
	ProgressPercentage int        `gorm:"default:0" json:"progressPercentage"`
	Completed          bool       `gorm:"default:false" json:"completed"`
	StartedAt          time.Time  `json:"startedAt"`
	CompletionDate     *time.Time `json:"completionDate,omitempty"`
	LastAccessed       time.Time  `json:"lastAccessed"`
	CreatedAt          time.Time  `json:"createdAt"`
	UpdatedAt          time.Time  `json:"updatedAt"`
}

func (ModuleProgress) TableName() string {
	return "module_progress"
}

// LessonProgress records completion, accumulated time and an optional quiz
// score for one lesson or quiz. One row per (user, module, item).
type LessonProgress struct {
	ID          uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	UserID      uint       `gorm:"uniqueIndex:idx_user_module_item;not null" json:"userId"`
	ModuleID    uint       `gorm:"uniqueIndex:idx_user_module_item;not null" json:"moduleId"`
	ItemID      string     `gorm:"size:64;uniqueIndex:idx_user_module_item;not null" json:"itemId"`
	ItemType    ItemType   `gorm:"size:10;not null" json:"itemType"`
	Completed   bool       `gorm:"default:false" json:"completed"`
	TimeSpent   int        `gorm:"default:0" json:"timeSpent"` // seconds, accumulated
	QuizScore   *int       `json:"quizScore,omitempty"`        // percentage, quiz rows only
	CompletedAt *time.Time `json:"completedAt,omitempty"`
	CreatedAt   time.Time  `json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (LessonProgress) TableName() string {
	return "lesson_progress"
}
