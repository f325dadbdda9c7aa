package editor

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// SectionKind 模块内容块类型
type SectionKind string

const (
	KindHeading    SectionKind = "heading"
	KindParagraph  SectionKind = "paragraph"
	KindList       SectionKind = "list"
	KindQuote      SectionKind = "quote"
	KindCode       SectionKind = "code"
	KindDivider    SectionKind = "divider"
	KindMedia      SectionKind = "media"
	KindAssessment SectionKind = "assessment"
)

// KnownKinds is the closed set of block kinds the editor understands.
var KnownKinds = []SectionKind{
	KindHeading, KindParagraph, KindList, KindQuote,
	KindCode, KindDivider, KindMedia, KindAssessment,
}

func (k SectionKind) Valid() bool {
	for _, known := range KnownKinds {
		if k == known {
			return true
		}
	}
	return false
}

type ListType string

const (
	ListOrdered   ListType = "ordered"
	ListUnordered ListType = "unordered"
)

// Assessment 测验块的题目数据
type Assessment struct {
	Question     string   `json:"question"`
	Options      []string `json:"options"`
	CorrectIndex int      `json:"correctIndex"`
	Explanation  string   `json:"explanation,omitempty"`
}

// Section is one block of module content. Kind decides which of the
// kind-specific fields are meaningful; the rest stay at their zero value.
type Section struct {
	ID         string      `json:"id"`
	Kind       SectionKind `json:"kind"`
	Content    string      `json:"content,omitempty"`
	Level      int         `json:"level,omitempty"`
	ListType   ListType    `json:"listType,omitempty"`
	Items      []string    `json:"items,omitempty"`
	MediaURL   string      `json:"mediaUrl,omitempty"`
	Assessment *Assessment `json:"assessment,omitempty"`
}

// Clone 深拷贝，切片与测验数据不共享底层数组
func (s Section) Clone() Section {
	out := s
	if s.Items != nil {
		out.Items = append([]string(nil), s.Items...)
	}
	if s.Assessment != nil {
		a := *s.Assessment
		a.Options = append([]string(nil), s.Assessment.Options...)
		out.Assessment = &a
	}
	return out
}

// NewSection constructs a section of the given kind with its defaults:
// heading starts at level 1, list starts unordered with one empty item,
// assessment starts with four empty options and the first marked correct.
func NewSection(kind SectionKind) Section {
	s := Section{
		ID:   newSectionID(),
		Kind: kind,
	}
	switch kind {
	case KindHeading:
		s.Level = 1
	case KindList:
		s.ListType = ListUnordered
		s.Items = []string{""}
	case KindAssessment:
		s.Assessment = &Assessment{
			Options:      []string{"", "", "", ""},
			CorrectIndex: 0,
		}
	}
	return s
}

func newSectionID() string {
	return "section_" + strings.ReplaceAll(uuid.New().String(), "-", "")[:12]
}

// ParseSections decodes a tagged-variant block array from an API payload and
// rejects unknown kinds instead of silently dropping them. Blocks missing an
// id get one assigned so later editor operations can address them.
func ParseSections(raw []byte) ([]Section, error) {
	var sections []Section
	if err := json.Unmarshal(raw, &sections); err != nil {
		return nil, fmt.Errorf("invalid sections payload: %w", err)
	}
	for i := range sections {
		if sections[i].ID == "" {
			sections[i].ID = newSectionID()
		}
	}
	if err := ValidateSections(sections); err != nil {
		return nil, err
	}
	return sections, nil
}

// ValidateSections enforces the cross-field consistency the block model
// itself does not: recognized kinds, heading level 1-6, list type present,
// assessment correct index in bounds of its options.
func ValidateSections(sections []Section) error {
	for i, s := range sections {
		if !s.Kind.Valid() {
			return fmt.Errorf("section %d: unrecognized kind %q", i, s.Kind)
		}
		switch s.Kind {
		case KindHeading:
			if s.Level < 1 || s.Level > 6 {
				return fmt.Errorf("section %d: heading level %d out of range 1-6", i, s.Level)
			}
		case KindList:
			if s.ListType != ListOrdered && s.ListType != ListUnordered {
				return fmt.Errorf("section %d: invalid list type %q", i, s.ListType)
			}
		case KindAssessment:
			if s.Assessment == nil {
				return fmt.Errorf("section %d: assessment block without assessment data", i)
			}
			if s.Assessment.CorrectIndex < 0 || s.Assessment.CorrectIndex >= len(s.Assessment.Options) {
				return fmt.Errorf("section %d: correct option index %d out of bounds", i, s.Assessment.CorrectIndex)
			}
		}
	}
	return nil
}

// MarshalSections 规范化后的块序列编码，用于持久化
func MarshalSections(sections []Section) ([]byte, error) {
	if len(sections) == 0 {
		return []byte("[]"), nil
	}
	return json.Marshal(sections)
}
