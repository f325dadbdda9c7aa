package service

import (
	"errors"

	"course_forge_backend/internal/model"
	"course_forge_backend/internal/repository"
	"course_forge_backend/internal/util"
	"course_forge_backend/pkg/monitoring"

	"gorm.io/gorm"
)

// ScorePolicy derives a ranking score from vote totals. The vote-difference
// formula is the current policy; swapping in something Elo-like touches only
// the service construction, not the call sites.
type ScorePolicy interface {
	Score(upvotes, downvotes int) int
}

// VoteDifference 当前评分策略：score = 赞 − 踩
type VoteDifference struct{}

func (VoteDifference) Score(upvotes, downvotes int) int {
	return upvotes - downvotes
}

type RankingService struct {
	RankingRepo *repository.RankingRepository
	VoteRepo    *repository.VoteRepository
	Revalidate  *RevalidateService
	Policy      ScorePolicy
	DB          *gorm.DB
}

func NewRankingService(rankingRepo *repository.RankingRepository, voteRepo *repository.VoteRepository, revalidate *RevalidateService, db *gorm.DB) *RankingService {
	return &RankingService{
		RankingRepo: rankingRepo,
		VoteRepo:    voteRepo,
		Revalidate:  revalidate,
		Policy:      VoteDifference{},
		DB:          db,
	}
}

// Vote records one user's vote on a course. Voting the same direction twice
// retracts the vote; the opposite direction switches it. The vote row, the
// recount, and the ranking update commit in one transaction, so counters
// always equal the aggregated vote rows.
func (s *RankingService) Vote(userID uint, courseID string, isUpvote bool) (*model.CourseRanking, error) {
	var ranking model.CourseRanking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.First(&ranking, "course_id = ?", courseID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return util.ErrRankingNotFound
			}
			return err
		}

		var existing model.Vote
		err := tx.First(&existing, "course_id = ? AND user_id = ?", courseID, userID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			vote := model.Vote{
				StringIDBase: model.StringIDBase{ID: util.GenerateID("vote")},
				CourseID:     courseID,
				UserID:       userID,
				IsUpvote:     isUpvote,
			}
			if err := tx.Create(&vote).Error; err != nil {
				return err
			}
		case err != nil:
			return err
		case existing.IsUpvote == isUpvote:
			// 同方向重复投票 = 撤销
			if err := tx.Delete(&existing).Error; err != nil {
				return err
			}
		default:
			if err := tx.Model(&existing).Update("is_upvote", isUpvote).Error; err != nil {
				return err
			}
		}

		up, down, err := s.VoteRepo.Counts(tx, courseID)
		if err != nil {
			return err
		}

		ranking.Upvotes = int(up)
		ranking.Downvotes = int(down)
		ranking.Score = s.Policy.Score(ranking.Upvotes, ranking.Downvotes)
		return tx.Model(&model.CourseRanking{}).
			Where("id = ?", ranking.ID).
			Updates(map[string]interface{}{
				"upvotes":   ranking.Upvotes,
				"downvotes": ranking.Downvotes,
				"score":     ranking.Score,
			}).Error
	})
	if err != nil {
		return nil, err
	}

	direction := "down"
	if isUpvote {
		direction = "up"
	}
	monitoring.VoteCounter.WithLabelValues(direction).Inc()

	s.Revalidate.CoursePages(courseID)
	return &ranking, nil
}

// TopCourses 评分最高的公开课程
func (s *RankingService) TopCourses(limit int) ([]model.Course, error) {
	if limit <= 0 {
		limit = 10
	}
	return s.RankingRepo.TopCourses(limit)
}
