package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"course_forge_backend/internal/editor"
	"course_forge_backend/internal/model"
	"course_forge_backend/internal/repository"
	"course_forge_backend/internal/util"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type ModuleService struct {
	ModuleRepo *repository.ModuleRepository
	CourseRepo *repository.CourseRepository
	Revalidate *RevalidateService
	DB         *gorm.DB
}

func NewModuleService(moduleRepo *repository.ModuleRepository, courseRepo *repository.CourseRepository, revalidate *RevalidateService, db *gorm.DB) *ModuleService {
	return &ModuleService{
		ModuleRepo: moduleRepo,
		CourseRepo: courseRepo,
		Revalidate: revalidate,
		DB:         db,
	}
}

type CreateModuleRequest struct {
	CourseID string          `json:"courseId" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Content  string          `json:"content"`
	Sections json.RawMessage `json:"sections"`
	Media    []string        `json:"media"`
	Index    int             `json:"index"`
}

type UpdateModuleRequest struct {
	Name     string          `json:"name" binding:"required"`
	Content  string          `json:"content"`
	Sections json.RawMessage `json:"sections"`
	Media    []string        `json:"media"`
	Index    int             `json:"index"`
}

// ModuleOrder 重排序的一项
type ModuleOrder struct {
	ModuleID string `json:"moduleId" binding:"required"`
	Index    int    `json:"index"`
}

// resolveContent validates a structured section payload and flattens it
// through the serializer. The structured form is kept for storage; the flat
// text is a derived projection. Requests without sections fall back to the
// raw content field.
func resolveContent(content string, rawSections json.RawMessage) (string, datatypes.JSON, error) {
	if len(rawSections) == 0 || string(rawSections) == "null" {
		return strings.TrimSpace(content), nil, nil
	}

	sections, err := editor.ParseSections(rawSections)
	if err != nil {
		return "", nil, fmt.Errorf("%w: %v", util.ErrInvalidSections, err)
	}
	normalized, err := editor.MarshalSections(sections)
	if err != nil {
		return "", nil, err
	}
	return editor.Serialize(sections), datatypes.JSON(normalized), nil
}

func (s *ModuleService) ownedCourse(userID uint, courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	if course.CreatorID != userID {
		return nil, util.ErrPermissionDenied
	}
	return course, nil
}

func (s *ModuleService) CreateModule(userID uint, req CreateModuleRequest) (*model.Module, error) {
	if _, err := s.ownedCourse(userID, req.CourseID); err != nil {
		return nil, err
	}

	content, sections, err := resolveContent(req.Content, req.Sections)
	if err != nil {
		return nil, err
	}

	index := req.Index
	if index <= 0 {
		max, err := s.ModuleRepo.MaxIndex(req.CourseID)
		if err != nil {
			return nil, err
		}
		index = max + 1
	}

	module := &model.Module{
		StringIDBase: model.StringIDBase{ID: util.GenerateID("module")},
		CourseID:     req.CourseID,
		Name:         strings.TrimSpace(req.Name),
		Index:        index,
		Content:      content,
		Sections:     sections,
		Media:        datatypes.NewJSONSlice(req.Media),
	}
	if err := s.ModuleRepo.Create(module); err != nil {
		return nil, err
	}

	s.Revalidate.CoursePages(req.CourseID)
	return module, nil
}

func (s *ModuleService) UpdateModule(userID uint, moduleID string, req UpdateModuleRequest) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCourse(userID, module.CourseID); err != nil {
		return nil, err
	}

	content, sections, err := resolveContent(req.Content, req.Sections)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"name":    strings.TrimSpace(req.Name),
		"content": content,
		"media":   datatypes.NewJSONSlice(req.Media),
	}
	if sections != nil {
		updates["sections"] = sections
	}
	if req.Index > 0 {
		updates["index"] = req.Index
	}

	if _, err := s.ModuleRepo.Updates(moduleID, updates); err != nil {
		return nil, err
	}

	s.Revalidate.CoursePages(module.CourseID)
	return s.ModuleRepo.FindByID(moduleID)
}

func (s *ModuleService) DeleteModule(userID uint, moduleID string) error {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrModuleNotFound
		}
		return err
	}
	if _, err := s.ownedCourse(userID, module.CourseID); err != nil {
		return err
	}

	if _, err := s.ModuleRepo.Delete(moduleID); err != nil {
		return err
	}

	s.Revalidate.CoursePages(module.CourseID)
	return nil
}

func (s *ModuleService) GetModule(moduleID string) (*model.Module, error) {
	module, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	return module, nil
}

// GetModulesByCourseID 按排序位升序
func (s *ModuleService) GetModulesByCourseID(courseID string) ([]model.Module, error) {
	return s.ModuleRepo.FindByCourseID(courseID)
}

// ReorderModules bulk-assigns new ordinal positions in one transaction:
// either every module lands on its new index or none do. Modules outside the
// course reject the whole batch.
func (s *ModuleService) ReorderModules(userID uint, courseID string, orders []ModuleOrder) error {
	if _, err := s.ownedCourse(userID, courseID); err != nil {
		return err
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for _, order := range orders {
			var module model.Module
			if err := tx.First(&module, "id = ?", order.ModuleID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return util.ErrModuleNotFound
				}
				return err
			}
			if module.CourseID != courseID {
				return util.ErrModuleNotInCourse
			}
			if err := tx.Model(&model.Module{}).
				Where("id = ?", order.ModuleID).
				Update("index", order.Index).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	s.Revalidate.CoursePages(courseID)
	return nil
}

// DuplicateModule copies name (suffixed), content, sections, and media by
// value into a new module placed after the course's current maximum ordinal.
func (s *ModuleService) DuplicateModule(userID uint, moduleID string) (*model.Module, error) {
	original, err := s.ModuleRepo.FindByID(moduleID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrModuleNotFound
		}
		return nil, err
	}
	if _, err := s.ownedCourse(userID, original.CourseID); err != nil {
		return nil, err
	}

	max, err := s.ModuleRepo.MaxIndex(original.CourseID)
	if err != nil {
		return nil, err
	}

	copied := &model.Module{
		StringIDBase: model.StringIDBase{ID: util.GenerateID("module")},
		CourseID:     original.CourseID,
		Name:         original.Name + " (Copy)",
		Index:        max + 1,
		Content:      original.Content,
		Sections:     append(datatypes.JSON(nil), original.Sections...),
		Media:        datatypes.NewJSONSlice([]string(original.Media)),
	}
	if err := s.ModuleRepo.Create(copied); err != nil {
		return nil, err
	}

	s.Revalidate.CoursePages(original.CourseID)
	return copied, nil
}
