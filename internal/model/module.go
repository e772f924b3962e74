package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
)

type BlockType string

const (
	BlockText  BlockType = "text"
	BlockImage BlockType = "image"
	BlockVideo BlockType = "video"
	BlockCode  BlockType = "code"
)

// ContentBlock is one unit inside a lesson: a paragraph, an image, a
// video reference or a code sample.
type ContentBlock struct {
	Type     BlockType `json:"type"`
	Text     string    `json:"text,omitempty"`
	URL      string    `json:"url,omitempty"`
	Language string    `json:"language,omitempty"`
	Caption  string    `json:"caption,omitempty"`
}

// Lesson is immutable once authored. Its ID is unique within the module
// and follows the "lesson-*" convention.
type Lesson struct {
	ID       string         `json:"id"`
	Title    string         `json:"title"`
	Duration int            `json:"duration"` // minutes
	Blocks   []ContentBlock `json:"blocks"`
}

type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  int      `json:"answer"`
}

// Quiz optionally anchors after a lesson via AfterLessonID, which the
// presentation layer uses to sequence it into the lesson flow.
type Quiz struct {
	ID            string     `json:"id"`
	Title         string     `json:"title"`
	AfterLessonID string     `json:"afterLessonId,omitempty"`
	PassingScore  int        `json:"passingScore"` // percentage
	Questions     []Question `json:"questions"`
}

// ModuleContent is the embedded structured document holding the ordered
// lessons and quizzes of a module. Stored as a JSON column.
type ModuleContent struct {
	Lessons []Lesson `json:"lessons"`
	Quizzes []Quiz   `json:"quizzes"`
}

func (c ModuleContent) Value() (driver.Value, error) {
	return json.Marshal(c)
}

func (c *ModuleContent) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, c)
	case string:
		return json.Unmarshal([]byte(v), c)
	case nil:
		*c = ModuleContent{}
		return nil
	}
	return errors.New("unsupported type for ModuleContent")
}

type Tags []string

func (t Tags) Value() (driver.Value, error) {
	return json.Marshal(t)
}

func (t *Tags) Scan(value interface{}) error {
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	case nil:
		*t = nil
		return nil
	}
	return errors.New("unsupported type for Tags")
}

// swagger:model Module
type Module struct {
	BaseModel
	Title       string        `gorm:"size:255;not null" json:"title"`
	Description string        `gorm:"type:text" json:"description"`
	Difficulty  string        `gorm:"size:20;default:'beginner'" json:"difficulty"`
	Tags        Tags          `gorm:"type:json" json:"tags"`
	Version     string        `gorm:"size:20;default:'1.0.0'" json:"version"`
	Content     ModuleContent `gorm:"type:json" json:"content"`

	Progress     []ModuleProgress `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
	ItemProgress []LessonProgress `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
	Certificates []Certificate    `gorm:"foreignKey:ModuleID;constraint:OnDelete:CASCADE" json:"-"`
}

func (Module) TableName() string {
	return "modules"
}

func (m *Module) TotalLessons() int {
	return len(m.Content.Lessons)
}

func (m *Module) TotalQuizzes() int {
	return len(m.Content.Quizzes)
}

// ItemTypeOf resolves an item id against the content document. The second
// return value is false when the module contains no such lesson or quiz.
func (m *Module) ItemTypeOf(itemID string) (ItemType, bool) {
	for _, l := range m.Content.Lessons {
		if l.ID == itemID {
			return ItemLesson, true
		}
	}
	for _, q := range m.Content.Quizzes {
		if q.ID == itemID {
			return ItemQuiz, true
		}
	}
	return "", false
}

// EstimatedDuration is derived from the content document, never stored.
func (m *Module) EstimatedDuration() int {
	total := 0
	for _, l := range m.Content.Lessons {
		total += l.Duration
	}
	return total
}
