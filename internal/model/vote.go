package model

// Vote is one user's standing vote on one course. The (course, user) pair is
// unique: re-voting the same direction retracts the vote, the opposite
// direction switches it. Ranking counters are derived from these rows.
type Vote struct {
	StringIDBase
	CourseID string `gorm:"size:64;not null;uniqueIndex:idx_votes_course_user" json:"courseId"`
	UserID   uint   `gorm:"not null;uniqueIndex:idx_votes_course_user" json:"userId"`
	IsUpvote bool   `gorm:"not null" json:"isUpvote"`
}

func (Vote) TableName() string {
	return "votes"
}
