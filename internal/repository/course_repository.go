package repository

import (
	"course_forge_backend/internal/model"

	"gorm.io/gorm"
)

type CourseRepository struct {
	DB *gorm.DB
}

func NewCourseRepository(db *gorm.DB) *CourseRepository {
	return &CourseRepository{DB: db}
}

// CourseFilter 课程列表查询条件
type CourseFilter struct {
	Category   string
	Difficulty string
	Search     string
	Page       int
	Limit      int
	SortBy     string // createdAt | score
}

const (
	SortByCreatedAt = "createdAt"
	SortByScore     = "score"
)

func (r *CourseRepository) Create(course *model.Course) error {
	return r.DB.Create(course).Error
}

func (r *CourseRepository) FindByID(id string) (*model.Course, error) {
	var course model.Course
	err := r.DB.Preload("Ranking").First(&course, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &course, nil
}

func (r *CourseRepository) Updates(id string, updates map[string]interface{}) (int64, error) {
	res := r.DB.Model(&model.Course{}).Where("id = ?", id).Updates(updates)
	return res.RowsAffected, res.Error
}

// List 公开课程，支持分类/难度/关键词过滤与两种排序。
// 按评分排序时连接 course_rankings，对应原始数据里评分不在课程记录上的事实。
func (r *CourseRepository) List(filter CourseFilter) ([]model.Course, int64, error) {
	query := r.DB.Model(&model.Course{}).Where("courses.is_public = ?", true)

	if filter.Category != "" {
		// categories 为 JSON 数组文本，按带引号的成员匹配
		query = query.Where("courses.categories LIKE ?", `%"`+filter.Category+`"%`)
	}
	if filter.Difficulty != "" {
		query = query.Where("courses.difficulty = ?", filter.Difficulty)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("courses.name LIKE ? OR courses.description LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.SortBy == SortByScore {
		query = query.
			Joins("LEFT JOIN course_rankings ON course_rankings.course_id = courses.id").
			Order("course_rankings.score DESC")
	} else {
		query = query.Order("courses.created_at DESC")
	}

	if filter.Limit > 0 {
		offset := (filter.Page - 1) * filter.Limit
		if offset < 0 {
			offset = 0
		}
		query = query.Offset(offset).Limit(filter.Limit)
	}

	var courses []model.Course
	err := query.Preload("Ranking").Find(&courses).Error
	return courses, total, err
}

func (r *CourseRepository) FindByCreator(creatorID uint) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Ranking").
		Where("creator_id = ?", creatorID).
		Order("created_at DESC").
		Find(&courses).Error
	return courses, err
}

// RecentByCreator 创建者最近更新的课程
func (r *CourseRepository) RecentByCreator(creatorID uint, limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.Preload("Ranking").
		Where("creator_id = ?", creatorID).
		Order("updated_at DESC").
		Limit(limit).
		Find(&courses).Error
	return courses, err
}

// TopByCreator 创建者评分最高的课程
func (r *CourseRepository) TopByCreator(creatorID uint, limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN course_rankings ON course_rankings.course_id = courses.id").
		Where("courses.creator_id = ?", creatorID).
		Order("course_rankings.score DESC").
		Limit(limit).
		Preload("Ranking").
		Find(&courses).Error
	return courses, err
}

// CreatorStats 创建者课程统计
type CreatorStats struct {
	TotalCourses    int64   `json:"totalCourses"`
	OriginalCourses int64   `json:"originalCourses"`
	ForkedCourses   int64   `json:"forkedCourses"`
	PublicCourses   int64   `json:"publicCourses"`
	PrivateCourses  int64   `json:"privateCourses"`
	TotalUpvotes    int64   `json:"totalUpvotes"`
	TotalDownvotes  int64   `json:"totalDownvotes"`
	AverageScore    float64 `json:"averageScore"`
}

func (r *CourseRepository) StatsByCreator(creatorID uint) (*CreatorStats, error) {
	var stats CreatorStats

	err := r.DB.Model(&model.Course{}).
		Select(
			"COUNT(*) AS total_courses, " +
				"COALESCE(SUM(CASE WHEN is_original THEN 1 ELSE 0 END),0) AS original_courses, " +
				"COALESCE(SUM(CASE WHEN is_original THEN 0 ELSE 1 END),0) AS forked_courses, " +
				"COALESCE(SUM(CASE WHEN is_public THEN 1 ELSE 0 END),0) AS public_courses, " +
				"COALESCE(SUM(CASE WHEN is_public THEN 0 ELSE 1 END),0) AS private_courses").
		Where("creator_id = ?", creatorID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	err = r.DB.Model(&model.CourseRanking{}).
		Select("COALESCE(SUM(upvotes),0) AS total_upvotes, "+
			"COALESCE(SUM(downvotes),0) AS total_downvotes, "+
			"COALESCE(AVG(score),0) AS average_score").
		Joins("JOIN courses ON courses.id = course_rankings.course_id").
		Where("courses.creator_id = ?", creatorID).
		Scan(&stats).Error
	if err != nil {
		return nil, err
	}

	return &stats, nil
}
