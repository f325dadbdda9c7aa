package repository

import (
	"course_forge_backend/internal/model"

	"gorm.io/gorm"
)

type RankingRepository struct {
	DB *gorm.DB
}

func NewRankingRepository(db *gorm.DB) *RankingRepository {
	return &RankingRepository{DB: db}
}

func (r *RankingRepository) Create(ranking *model.CourseRanking) error {
	return r.DB.Create(ranking).Error
}

func (r *RankingRepository) FindByCourseID(courseID string) (*model.CourseRanking, error) {
	var ranking model.CourseRanking
	err := r.DB.First(&ranking, "course_id = ?", courseID).Error
	if err != nil {
		return nil, err
	}
	return &ranking, nil
}

// TopCourses 评分最高的公开课程
func (r *RankingRepository) TopCourses(limit int) ([]model.Course, error) {
	var courses []model.Course
	err := r.DB.
		Joins("JOIN course_rankings ON course_rankings.course_id = courses.id").
		Where("courses.is_public = ?", true).
		Order("course_rankings.score DESC").
		Limit(limit).
		Preload("Ranking").
		Find(&courses).Error
	return courses, err
}
