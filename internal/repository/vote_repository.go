package repository

import (
	"course_forge_backend/internal/model"

	"gorm.io/gorm"
)

type VoteRepository struct {
	DB *gorm.DB
}

func NewVoteRepository(db *gorm.DB) *VoteRepository {
	return &VoteRepository{DB: db}
}

func (r *VoteRepository) FindByCourseAndUser(courseID string, userID uint) (*model.Vote, error) {
	var vote model.Vote
	err := r.DB.First(&vote, "course_id = ? AND user_id = ?", courseID, userID).Error
	if err != nil {
		return nil, err
	}
	return &vote, nil
}

// Counts 按投票行聚合计数，排名计数器以此为准
func (r *VoteRepository) Counts(tx *gorm.DB, courseID string) (up int64, down int64, err error) {
	if err = tx.Model(&model.Vote{}).
		Where("course_id = ? AND is_upvote = ?", courseID, true).
		Count(&up).Error; err != nil {
		return 0, 0, err
	}
	if err = tx.Model(&model.Vote{}).
		Where("course_id = ? AND is_upvote = ?", courseID, false).
		Count(&down).Error; err != nil {
		return 0, 0, err
	}
	return up, down, nil
}
