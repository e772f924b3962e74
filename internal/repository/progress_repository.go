package repository

import (
	"database/sql"

	"learnlocal_backend/internal/model"

	"gorm.io/gorm"
)

type ProgressRepository struct {
	DB *gorm.DB
}

func NewProgressRepository(db *gorm.DB) *ProgressRepository {
	return &ProgressRepository{DB: db}
}

func (r *ProgressRepository) FindModuleProgress(userID, moduleID uint) (*model.ModuleProgress, error) {
	var mp model.ModuleProgress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).First(&mp).Error
	return &mp, err
}

func (r *ProgressRepository) CreateModuleProgress(mp *model.ModuleProgress) error {
	return r.DB.Create(mp).Error
}

func (r *ProgressRepository) UpdateModuleProgress(id uint, updates map[string]interface{}) error {
	return r.DB.Model(&model.ModuleProgress{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

func (r *ProgressRepository) FindLessonProgress(userID, moduleID uint, itemID string) (*model.LessonProgress, error) {
	var lp model.LessonProgress
	err := r.DB.Where("user_id = ? AND module_id = ? AND item_id = ?", userID, moduleID, itemID).
		First(&lp).Error
	return &lp, err
}

func (r *ProgressRepository) ListLessonProgress(userID, moduleID uint) ([]model.LessonProgress, error) {
	var rows []model.LessonProgress
	err := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).
		Order("item_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *ProgressRepository) CreateLessonProgress(lp *model.LessonProgress) error {
	return r.DB.Create(lp).Error
}

func (r *ProgressRepository) UpdateLessonProgress(id uint, updates map[string]interface{}) error {
	return r.DB.Model(&model.LessonProgress{}).
		Where("id = ?", id).
		Updates(updates).
		Error
}

// CountCompleted counts completed rows of one item type. Quiz rows only
// count when a score was recorded.
func (r *ProgressRepository) CountCompleted(userID, moduleID uint, itemType model.ItemType) (int64, error) {
	q := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND module_id = ? AND completed = ? AND item_type = ?",
			userID, moduleID, true, itemType)
	if itemType == model.ItemQuiz {
		q = q.Where("quiz_score IS NOT NULL")
	}

	var count int64
	err := q.Count(&count).Error
	return count, err
}

func (r *ProgressRepository) SumCompletedTime(userID, moduleID uint) (int, error) {
	var total sql.NullInt64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ? AND module_id = ? AND completed = ?", userID, moduleID, true).
		Select("SUM(time_spent)").
		Scan(&total).Error
	if err != nil || !total.Valid {
		return 0, err
	}
	return int(total.Int64), nil
}

// DeleteForModule erases the aggregate row and every lesson/quiz row for the
// pair. Returns how many rows were removed.
func (r *ProgressRepository) DeleteForModule(userID, moduleID uint) (int64, error) {
	lessons := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&model.LessonProgress{})
	if lessons.Error != nil {
		return 0, lessons.Error
	}

	aggregate := r.DB.Where("user_id = ? AND module_id = ?", userID, moduleID).
		Delete(&model.ModuleProgress{})
	if aggregate.Error != nil {
		return lessons.RowsAffected, aggregate.Error
	}

	return lessons.RowsAffected + aggregate.RowsAffected, nil
}

func (r *ProgressRepository) CountCompletedModules(userID uint) (int64, error) {
	var count int64
	err := r.DB.Model(&model.ModuleProgress{}).
		Where("user_id = ? AND completed = ?", userID, true).
		Count(&count).Error
	return count, err
}

func (r *ProgressRepository) SumTotalTime(userID uint) (int, error) {
	var total sql.NullInt64
	err := r.DB.Model(&model.LessonProgress{}).
		Where("user_id = ?", userID).
		Select("SUM(time_spent)").
		Scan(&total).Error
	if err != nil || !total.Valid {
		return 0, err
	}
	return int(total.Int64), nil
}
