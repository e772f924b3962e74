package repository

import (
	"learnlocal_backend/internal/model"

	"gorm.io/gorm"
)

type ModuleRepository struct {
	DB *gorm.DB
}

func NewModuleRepository(db *gorm.DB) *ModuleRepository {
	return &ModuleRepository{DB: db}
}

func (r *ModuleRepository) Create(module *model.Module) error {
	return r.DB.Create(module).Error
}

func (r *ModuleRepository) FindByID(id uint) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, id).Error
	return &module, err
}

func (r *ModuleRepository) List(page, limit int) ([]model.Module, int64, error) {
	var modules []model.Module
	var total int64

	if err := r.DB.Model(&model.Module{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	err := r.DB.Order("id ASC").
		Offset((page - 1) * limit).
		Limit(limit).
		Find(&modules).Error
	return modules, total, err
}

func (r *ModuleRepository) Update(module *model.Module) error {
	return r.DB.Save(module).Error
}

// Delete removes the module permanently. The delete is unscoped so the
// foreign-key cascades fire and take progress rows and certificates with it.
func (r *ModuleRepository) Delete(id uint) error {
	return r.DB.Unscoped().Delete(&model.Module{}, id).Error
}

func (r *ModuleRepository) Count() (int64, error) {
	var total int64
	err := r.DB.Model(&model.Module{}).Count(&total).Error
	return total, err
}
