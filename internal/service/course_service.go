package service

import (
	"errors"

	"course_forge_backend/internal/model"
	"course_forge_backend/internal/repository"
	"course_forge_backend/internal/util"
	"course_forge_backend/pkg/monitoring"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CourseService struct {
	CourseRepo *repository.CourseRepository
	ModuleRepo *repository.ModuleRepository
	Revalidate *RevalidateService
	DB         *gorm.DB
}

func NewCourseService(courseRepo *repository.CourseRepository, moduleRepo *repository.ModuleRepository, revalidate *RevalidateService, db *gorm.DB) *CourseService {
	return &CourseService{
		CourseRepo: courseRepo,
		ModuleRepo: moduleRepo,
		Revalidate: revalidate,
		DB:         db,
	}
}

type CreateCourseRequest struct {
	CourseID    string   `json:"courseId"`
	Name        string   `json:"name" binding:"required"`
	Description string   `json:"description"`
	Background  string   `json:"background"`
	IsPublic    *bool    `json:"isPublic"`
	Categories  []string `json:"categories" binding:"required,min=1"`
	Difficulty  string   `json:"difficulty" binding:"required,oneof=Beginner Intermediate Advanced"`
}

type UpdateCourseRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Background  string   `json:"background"`
	IsPublic    *bool    `json:"isPublic"`
	Categories  []string `json:"categories"`
	Difficulty  string   `json:"difficulty" binding:"omitempty,oneof=Beginner Intermediate Advanced"`
}

func validateCategories(categories []string) error {
	for _, c := range categories {
		if !model.Category(c).Valid() {
			return util.ErrInvalidCategory
		}
	}
	return nil
}

// CreateCourse 创建课程并在同一事务内创建配对的零值排名记录
func (s *CourseService) CreateCourse(creatorID uint, req CreateCourseRequest) (*model.Course, error) {
	if err := validateCategories(req.Categories); err != nil {
		return nil, err
	}

	courseID := req.CourseID
	if courseID == "" {
		courseID = util.GenerateID("course")
	}

	isPublic := true
	if req.IsPublic != nil {
		isPublic = *req.IsPublic
	}

	course := &model.Course{
		StringIDBase: model.StringIDBase{ID: courseID},
		Name:         req.Name,
		Description:  req.Description,
		Background:   req.Background,
		CreatorID:    creatorID,
		IsPublic:     isPublic,
		Categories:   datatypes.NewJSONSlice(req.Categories),
		Difficulty:   model.Difficulty(req.Difficulty),
		IsOriginal:   true,
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(course).Error; err != nil {
			return err
		}
		ranking := &model.CourseRanking{
			StringIDBase: model.StringIDBase{ID: util.RankingID(courseID)},
			CourseID:     courseID,
			CreatorID:    creatorID,
		}
		return tx.Create(ranking).Error
	})
	if err != nil {
		return nil, err
	}

	s.Revalidate.CourseList()
	return course, nil
}

// UpdateCourse 字段级补丁更新，空字段保持原值
func (s *CourseService) UpdateCourse(userID uint, courseID string, req UpdateCourseRequest) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if course.CreatorID != userID {
		return util.ErrPermissionDenied
	}

	updates := map[string]interface{}{}
	if req.Name != "" {
		updates["name"] = req.Name
	}
	if req.Description != "" {
		updates["description"] = req.Description
	}
	if req.Background != "" {
		updates["background"] = req.Background
	}
	if req.IsPublic != nil {
		updates["is_public"] = *req.IsPublic
	}
	if len(req.Categories) > 0 {
		if err := validateCategories(req.Categories); err != nil {
			return err
		}
		updates["categories"] = datatypes.NewJSONSlice(req.Categories)
	}
	if req.Difficulty != "" {
		updates["difficulty"] = req.Difficulty
	}

	if len(updates) == 0 {
		return nil
	}

	if _, err := s.CourseRepo.Updates(courseID, updates); err != nil {
		return err
	}

	s.Revalidate.CoursePages(courseID)
	return nil
}

// DeleteCourse removes the course together with its ranking, votes, and
// modules in one transaction. Cascading to modules is a deliberate decision;
// orphaned modules have no read path of their own.
func (s *CourseService) DeleteCourse(userID uint, courseID string) error {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrCourseNotFound
		}
		return err
	}
	if course.CreatorID != userID {
		return util.ErrPermissionDenied
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Delete(&model.Module{}, "course_id = ?", courseID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.Vote{}, "course_id = ?", courseID).Error; err != nil {
			return err
		}
		if err := tx.Delete(&model.CourseRanking{}, "course_id = ?", courseID).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Course{}, "id = ?", courseID).Error
	})
	if err != nil {
		return err
	}

	s.Revalidate.CoursePages(courseID)
	return nil
}

func (s *CourseService) GetCourse(courseID string) (*model.Course, error) {
	course, err := s.CourseRepo.FindByID(courseID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}
	return course, nil
}

func (s *CourseService) GetCourses(filter repository.CourseFilter) ([]model.Course, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 10
	}
	return s.CourseRepo.List(filter)
}

func (s *CourseService) GetUserCourses(userID uint) ([]model.Course, error) {
	return s.CourseRepo.FindByCreator(userID)
}

func (s *CourseService) GetUserCourseStats(userID uint) (*repository.CreatorStats, error) {
	return s.CourseRepo.StatsByCreator(userID)
}

func (s *CourseService) GetUserTopCourses(userID uint, limit int) ([]model.Course, error) {
	if limit <= 0 {
		limit = 5
	}
	return s.CourseRepo.TopByCreator(userID, limit)
}

func (s *CourseService) GetUserRecentActivity(userID uint, limit int) ([]model.Course, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.CourseRepo.RecentByCreator(userID, limit)
}

// ForkCourse duplicates a course's metadata and modules under a new owner.
// The fork is always public, never original, carries a pointer back to its
// source, and starts with a fresh zeroed ranking regardless of how the
// original has been voted. One transaction covers course, ranking, and the
// module copies.
func (s *CourseService) ForkCourse(creatorID uint, originalID, newID string) (*model.Course, error) {
	original, err := s.CourseRepo.FindByID(originalID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrCourseNotFound
		}
		return nil, err
	}

	if newID == "" {
		newID = util.GenerateID("course")
	}

	fork := &model.Course{
		StringIDBase: model.StringIDBase{ID: newID},
		Name:         original.Name + " (Forked)",
		Description:  original.Description,
		Background:   original.Background,
		CreatorID:    creatorID,
		IsPublic:     true,
		Categories:   datatypes.NewJSONSlice([]string(original.Categories)),
		Difficulty:   original.Difficulty,
		IsOriginal:   false,
		ForkedFrom:   originalID,
	}

	err = s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(fork).Error; err != nil {
			return err
		}

		ranking := &model.CourseRanking{
			StringIDBase: model.StringIDBase{ID: util.RankingID(newID)},
			CourseID:     newID,
			CreatorID:    creatorID,
		}
		if err := tx.Create(ranking).Error; err != nil {
			return err
		}

		var modules []model.Module
		if err := tx.Where("course_id = ?", originalID).
			Order("`index` ASC").
			Find(&modules).Error; err != nil {
			return err
		}
		for _, m := range modules {
			copied := model.Module{
				StringIDBase: model.StringIDBase{ID: util.GenerateID("module")},
				CourseID:     newID,
				Name:         m.Name,
				Index:        m.Index,
				Content:      m.Content,
				Sections:     append(datatypes.JSON(nil), m.Sections...),
				Media:        datatypes.NewJSONSlice([]string(m.Media)),
			}
			if err := tx.Create(&copied).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	monitoring.ForkCounter.Inc()
	s.Revalidate.CourseList()
	return fork, nil
}
