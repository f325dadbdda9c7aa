package model

import "gorm.io/datatypes"

// Module 课程的有序子单元
//
// Content is the flattened text projection of Sections; Sections keeps the
// structured block array so editing can round-trip. Index ordering is a
// convention maintained by the service layer, not a database constraint.
// swagger:model
type Module struct {
	StringIDBase
	CourseID string                      `gorm:"size:64;index;not null" json:"courseId"`
	Name     string                      `gorm:"size:255;not null" json:"name"`
	Index    int                         `gorm:"default:0" json:"index"`
	Content  string                      `gorm:"type:text" json:"content"`
	Sections datatypes.JSON              `json:"sections,omitempty"`
	Media    datatypes.JSONSlice[string] `json:"media"`
}

func (Module) TableName() string {
	return "modules"
}
