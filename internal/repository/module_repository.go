package repository

import (
	"course_forge_backend/internal/model"

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

func (r *ModuleRepository) FindByID(id string) (*model.Module, error) {
	var module model.Module
	err := r.DB.First(&module, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &module, nil
}

// FindByCourseID 按排序位升序返回课程的全部模块
func (r *ModuleRepository) FindByCourseID(courseID string) ([]model.Module, error) {
	var modules []model.Module
	err := r.DB.Where("course_id = ?", courseID).
		Order("`index` ASC").
		Find(&modules).Error
	return modules, err
}

func (r *ModuleRepository) Updates(id string, updates map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Module{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

func (r *ModuleRepository) Delete(id string) (int64, error) {
	res := r.DB.Delete(&model.Module{}, "id = ?", id)
	return res.RowsAffected, res.Error
}

// MaxIndex 课程内现有的最大排序位，无模块时为 0
func (r *ModuleRepository) MaxIndex(courseID string) (int, error) {
	var max int
	err := r.DB.Model(&model.Module{}).
		Where("course_id = ?", courseID).
		Select("COALESCE(MAX(`index`), 0)").
		Scan(&max).Error
	return max, err
}
