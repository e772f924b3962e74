package service

import (
	"errors"
	"math"
	"time"

	"learnlocal_backend/internal/model"
	"learnlocal_backend/internal/repository"
	"learnlocal_backend/internal/util"
	"learnlocal_backend/pkg/logger"
	"learnlocal_backend/pkg/monitoring"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type ProgressService struct {
	ModuleRepo   *repository.ModuleRepository
	ProgressRepo *repository.ProgressRepository
	DB           *gorm.DB
}

func NewProgressService(
	moduleRepo *repository.ModuleRepository,
	progressRepo *repository.ProgressRepository,
	db *gorm.DB,
) *ProgressService {
	return &ProgressService{
		ModuleRepo:   moduleRepo,
		ProgressRepo: progressRepo,
		DB:           db,
	}
}

type LessonOutcomeRequest struct {
	ModuleID       uint   `json:"moduleId" binding:"required"`
	ItemID         string `json:"itemId" binding:"required"`
	Completed      bool   `json:"completed"`
	TimeSpentDelta int    `json:"timeSpentDelta"`
	QuizScore      *int   `json:"quizScore"`
}

type ModuleProgressView struct {
	ModuleProgress *model.ModuleProgress  `json:"moduleProgress"`
	Items          []model.LessonProgress `json:"items"`
}

// RecordLessonOutcome records one lesson or quiz interaction and recomputes
// the module aggregate. The whole sequence runs in a single transaction, so a
// crash mid-way can never leave the aggregate behind the lesson rows.
func (s *ProgressService) RecordLessonOutcome(userID uint, req LessonOutcomeRequest) (*model.LessonProgress, error) {
	if req.TimeSpentDelta < 0 {
		return nil, util.ErrInvalidTimeSpent
	}
	if req.QuizScore != nil && (*req.QuizScore < 0 || *req.QuizScore > 100) {
		return nil, util.ErrInvalidQuizScore
	}

	module, err := s.ModuleRepo.FindByID(req.ModuleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}

	itemType, ok := module.ItemTypeOf(req.ItemID)
	if !ok {
		return nil, util.ErrItemNotInModule
	}
	now := time.Now()

	var result model.LessonProgress
	err = s.DB.Transaction(func(tx *gorm.DB) error {
		pr := repository.NewProgressRepository(tx)

		// 1. 模块进度行：首次交互时创建，否则只更新访问时间
		mp, err := pr.FindModuleProgress(userID, req.ModuleID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			mp = &model.ModuleProgress{
				UserID:       userID,
				ModuleID:     req.ModuleID,
				StartedAt:    now,
				LastAccessed: now,
			}
			if err := pr.CreateModuleProgress(mp); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			if err := pr.UpdateModuleProgress(mp.ID, map[string]interface{}{
				"last_accessed": now,
			}); err != nil {
				return err
			}
		}

		// 2. 课时行：时间累加，完成标志替换，完成时间只在转变时设置
		lp, err := pr.FindLessonProgress(userID, req.ModuleID, req.ItemID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			lp = &model.LessonProgress{
				UserID:    userID,
				ModuleID:  req.ModuleID,
				ItemID:    req.ItemID,
				ItemType:  itemType,
				Completed: req.Completed,
				TimeSpent: req.TimeSpentDelta,
			}
			if itemType == model.ItemQuiz {
				lp.QuizScore = req.QuizScore
			}
			if req.Completed {
				lp.CompletedAt = &now
			}
			if err := pr.CreateLessonProgress(lp); err != nil {
				return err
			}
		} else if err != nil {
			return err
		} else {
			updates := map[string]interface{}{
				"completed":  req.Completed,
				"time_spent": gorm.Expr("time_spent + ?", req.TimeSpentDelta),
			}
			if itemType == model.ItemQuiz && req.QuizScore != nil {
				updates["quiz_score"] = *req.QuizScore
			}
			if req.Completed && !lp.Completed {
				updates["completed_at"] = now
			}
			if err := pr.UpdateLessonProgress(lp.ID, updates); err != nil {
				return err
			}
		}

		// 3. 重新计算模块聚合
		if err := s.recomputeAggregate(pr, userID, module, now); err != nil {
			return err
		}

		saved, err := pr.FindLessonProgress(userID, req.ModuleID, req.ItemID)
		if err != nil {
			return err
		}
		result = *saved
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.LessonOutcomes.WithLabelValues(string(itemType)).Inc()

	return &result, nil
}

// recomputeAggregate rederives percentage and completion from the lesson rows
// and the module's content document. Completion is monotonic: once a module
// is completed the flag and its date are never rewritten.
func (s *ProgressService) recomputeAggregate(pr *repository.ProgressRepository, userID uint, module *model.Module, now time.Time) error {
	totalLessons := module.TotalLessons()
	totalQuizzes := module.TotalQuizzes()
	totalItems := totalLessons + totalQuizzes
	if totalItems == 0 {
		return nil
	}

	completedLessons, err := pr.CountCompleted(userID, module.ID, model.ItemLesson)
	if err != nil {
		return err
	}
	completedQuizzes, err := pr.CountCompleted(userID, module.ID, model.ItemQuiz)
	if err != nil {
		return err
	}

	// 内容修订后可能残留已删除条目的进度行,截断计数保证百分比落在 0–100
	if completedLessons > int64(totalLessons) {
		completedLessons = int64(totalLessons)
	}
	if completedQuizzes > int64(totalQuizzes) {
		completedQuizzes = int64(totalQuizzes)
	}

	mp, err := pr.FindModuleProgress(userID, module.ID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	} else if err != nil {
		return err
	}

	percentage := int(math.Round(100 * float64(completedLessons+completedQuizzes) / float64(totalItems)))
	updates := map[string]interface{}{
		"progress_percentage": percentage,
	}

	allDone := completedLessons >= int64(totalLessons) && completedQuizzes >= int64(totalQuizzes)
	if allDone && !mp.Completed {
		updates["completed"] = true
		updates["completion_date"] = now
		logger.Log.Info("module completed",
			zap.Uint("userId", userID),
			zap.Uint("moduleId", module.ID),
		)
	}

	return pr.UpdateModuleProgress(mp.ID, updates)
}

// GetModuleProgress returns the cached aggregate (nil when the user never
// touched the module) together with every lesson/quiz row.
func (s *ProgressService) GetModuleProgress(userID, moduleID uint) (*ModuleProgressView, error) {
	view := &ModuleProgressView{Items: []model.LessonProgress{}}

	mp, err := s.ProgressRepo.FindModuleProgress(userID, moduleID)
	if err == nil {
		view.ModuleProgress = mp
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	items, err := s.ProgressRepo.ListLessonProgress(userID, moduleID)
	if err != nil {
		return nil, err
	}
	view.Items = items

	return view, nil
}

// IsModuleCompleted rederives completion from counts instead of trusting the
// cached flag, so a read that races the first write still gets an answer.
func (s *ProgressService) IsModuleCompleted(userID, moduleID uint) (bool, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, util.ErrModuleNotFound
		}
		return false, err
	}

	totalLessons := module.TotalLessons()
	totalQuizzes := module.TotalQuizzes()
	if totalLessons+totalQuizzes == 0 {
		return false, nil
	}

	completedLessons, err := s.ProgressRepo.CountCompleted(userID, moduleID, model.ItemLesson)
	if err != nil {
		return false, err
	}
	completedQuizzes, err := s.ProgressRepo.CountCompleted(userID, moduleID, model.ItemQuiz)
	if err != nil {
		return false, err
	}

	return completedLessons >= int64(totalLessons) && completedQuizzes >= int64(totalQuizzes), nil
}

// Reset permanently removes all progress for the pair. Issued certificates
// are left alone.
func (s *ProgressService) Reset(userID, moduleID uint) (int64, error) {
	var removed int64
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		removed, err = repository.NewProgressRepository(tx).DeleteForModule(userID, moduleID)
		return err
	})
	if err != nil {
		return 0, err
	}

	logger.Log.Info("progress reset",
		zap.Uint("userId", userID),
		zap.Uint("moduleId", moduleID),
		zap.Int64("rowsRemoved", removed),
	)
	return removed, nil
}

type OverallProgress struct {
	TotalModules     int `json:"totalModules"`
	CompletedModules int `json:"completedModules"`
	TotalTimeSpent   int `json:"totalTimeSpent"` // seconds
}

func (s *ProgressService) GetOverallProgress(userID uint) (*OverallProgress, error) {
	totalModules, err := s.ModuleRepo.Count()
	if err != nil {
		return nil, err
	}

	completedModules, err := s.ProgressRepo.CountCompletedModules(userID)
	if err != nil {
		return nil, err
	}

	totalTime, err := s.ProgressRepo.SumTotalTime(userID)
	if err != nil {
		return nil, err
	}

	return &OverallProgress{
		TotalModules:     int(totalModules),
		CompletedModules: int(completedModules),
		TotalTimeSpent:   totalTime,
	}, nil
}
