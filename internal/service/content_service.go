package service

import (
	"errors"
	"fmt"

	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/repository"
	"learnlocal_backend/internal/util"

	"gorm.io/gorm"
)

type ContentService struct {
	ModuleRepo *repository.ModuleRepository
}

func NewContentService(moduleRepo *repository.ModuleRepository) *ContentService {
	return &ContentService{ModuleRepo: moduleRepo}
}

// ModuleSummary is the list view: metadata plus the counts and duration
// derived from the content document.
type ModuleSummary struct {
	ID                uint       `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description"`
	Difficulty        string     `json:"difficulty"`
	Tags              model.Tags `json:"tags"`
	Version           string     `json:"version"`
	TotalLessons      int        `json:"totalLessons"`
	TotalQuizzes      int        `json:"totalQuizzes"`
	EstimatedDuration int        `json:"estimatedDuration"` // minutes
}

func summarize(m *model.Module) ModuleSummary {
	return ModuleSummary{
		ID:                m.ID,
		Title:             m.Title,
		Description:       m.Description,
		Difficulty:        m.Difficulty,
		Tags:              m.Tags,
		Version:           m.Version,
		TotalLessons:      m.TotalLessons(),
		TotalQuizzes:      m.TotalQuizzes(),
		EstimatedDuration: m.EstimatedDuration(),
	}
}

func (s *ContentService) ListModules(page, limit int) ([]ModuleSummary, int64, error) {
	modules, total, err := s.ModuleRepo.List(page, limit)
	if err != nil {
		return nil, 0, err
	}

	summaries := make([]ModuleSummary, len(modules))
	for i := range modules {
		summaries[i] = summarize(&modules[i])
	}
	return summaries, total, nil
}

func (s *ContentService) GetModule(id uint) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

// validateContent rejects documents whose item ids collide or whose quizzes
// reference unknown lessons, before they can poison progress counting.
func validateContent(content *model.ModuleContent) error {
	seen := make(map[string]bool)
	lessons := make(map[string]bool)

	for _, l := range content.Lessons {
		if l.ID == "" {
			return fmt.Errorf("lesson %q has no id", l.Title)
		}
		if seen[l.ID] {
			return fmt.Errorf("duplicate item id %q", l.ID)
		}
		seen[l.ID] = true
		lessons[l.ID] = true
	}

	for _, q := range content.Quizzes {
		if q.ID == "" {
			return fmt.Errorf("quiz %q has no id", q.Title)
		}
		if seen[q.ID] {
			return fmt.Errorf("duplicate item id %q", q.ID)
		}
		seen[q.ID] = true

		if q.AfterLessonID != "" && !lessons[q.AfterLessonID] {
			return fmt.Errorf("quiz %q anchors to unknown lesson %q", q.ID, q.AfterLessonID)
		}
		if q.PassingScore < 0 || q.PassingScore > 100 {
			return fmt.Errorf("quiz %q passing score out of range", q.ID)
		}
	}

	return nil
}

func (s *ContentService) CreateModule(module *model.Module) error {
	if err := validateContent(&module.Content); err != nil {
		return err
	}
	return s.ModuleRepo.Create(module)
}

type ModuleUpdateRequest struct {
	Title       *string              `json:"title"`
	Description *string              `json:"description"`
	Difficulty  *string              `json:"difficulty"`
	Tags        *model.Tags          `json:"tags"`
	Version     *string              `json:"version"`
	Content     *model.ModuleContent `json:"content"`
}

func (s *ContentService) UpdateModule(id uint, req ModuleUpdateRequest) (*model.Module, error) {
	module, err := s.GetModule(id)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		module.Title = *req.Title
	}
	if req.Description != nil {
		module.Description = *req.Description
	}
	if req.Difficulty != nil {
		module.Difficulty = *req.Difficulty
	}
	if req.Tags != nil {
		module.Tags = *req.Tags
	}
	if req.Version != nil {
		module.Version = *req.Version
	}
	if req.Content != nil {
		if err := validateContent(req.Content); err != nil {
			return nil, err
		}
		module.Content = *req.Content
	}

	if err := s.ModuleRepo.Update(module); err != nil {
		return nil, err
	}
	return module, nil
}

// DeleteModule removes the module and, through the foreign-key cascades,
// every progress row and certificate that depends on it.
func (s *ContentService) DeleteModule(id uint) error {
	if _, err := s.GetModule(id); err != nil {
		return err
	}
	return s.ModuleRepo.Delete(id)
}
