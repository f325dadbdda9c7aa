package model

import "gorm.io/datatypes"

type Difficulty string

const (
	Beginner     Difficulty = "Beginner"
	Intermediate Difficulty = "Intermediate"
	Advanced     Difficulty = "Advanced"
)

// Category 课程分类（封闭集合）
type Category string

const (
	CategoryWeb3      Category = "Web3"
	CategoryAIML      Category = "AI/ML"
	CategoryFullStack Category = "Full Stack Development"
	CategoryMarketing Category = "Marketing"
	CategoryDesigns   Category = "Designs"
)

var AllCategories = []Category{
	CategoryWeb3, CategoryAIML, CategoryFullStack, CategoryMarketing, CategoryDesigns,
}

func (c Category) Valid() bool {
	for _, known := range AllCategories {
		if c == known {
			return true
		}
	}
	return false
}

// Course 可发布的课程。分叉课程的 IsOriginal 恒为 false 且 ForkedFrom 指向源课程。
// swagger:model
type Course struct {
	StringIDBase
	Name        string                      `gorm:"size:255;not null" json:"name"`
	Description string                      `gorm:"type:text" json:"description"`
	Background  string                      `gorm:"size:512" json:"background"`
	CreatorID   uint                        `gorm:"index;not null" json:"creatorId"`
	// 布尔列不带数据库默认值：带 default 标签的零值字段会被 gorm 从
	// INSERT 中省略，显式的 false 永远写不进去。默认值由服务层负责。
	IsPublic   bool                        `json:"isPublic"`
	Categories datatypes.JSONSlice[string] `json:"categories"`
	Difficulty Difficulty                  `gorm:"size:32;not null" json:"difficulty"`
	IsOriginal bool                        `json:"isOriginal"`
	ForkedFrom  string                      `gorm:"size:64;index" json:"forkedFrom,omitempty"`

	Ranking *CourseRanking `gorm:"foreignKey:CourseID;references:ID" json:"ranking,omitempty"`
}

func (Course) TableName() string {
	return "courses"
}

// CourseRanking is the 1:1 denormalized vote tally for a course, keyed by
// <courseID>_ranking. It lives and dies in the same transaction as its course.
// swagger:model
type CourseRanking struct {
	StringIDBase
	CourseID  string `gorm:"size:64;uniqueIndex;not null" json:"courseId"`
	CreatorID uint   `gorm:"index" json:"creatorId"`
	Upvotes   int    `gorm:"default:0" json:"upvotes"`
	Downvotes int    `gorm:"default:0" json:"downvotes"`
	Score     int    `gorm:"default:0;index" json:"score"`
}

func (CourseRanking) TableName() string {
	return "course_rankings"
}
