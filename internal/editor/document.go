package editor

// Direction 块移动方向
type Direction int

const (
	MoveUp Direction = iota
	MoveDown
)

// Document is the editor's in-memory working state: an ordered sequence of
// sections. It is a plain value with no locking; one request owns one
// document. Nothing is persisted until the owning service submits the
// serialized result.
type Document struct {
	sections []Section
}

// NewDocument 空文档
func NewDocument() *Document {
	return &Document{}
}

// NewModuleDocument seeds a fresh module with a single default heading,
// matching what the editor shows for a brand-new module.
func NewModuleDocument() *Document {
	d := &Document{}
	d.Append(KindHeading, -1)
	return d
}

// FromSections builds a document over a copy of the given blocks.
func FromSections(sections []Section) *Document {
	d := &Document{sections: make([]Section, 0, len(sections))}
	for _, s := range sections {
		d.sections = append(d.sections, s.Clone())
	}
	return d
}

func (d *Document) Len() int {
	return len(d.sections)
}

// Sections returns a copy of the current block sequence.
func (d *Document) Sections() []Section {
	out := make([]Section, 0, len(d.sections))
	for _, s := range d.sections {
		out = append(out, s.Clone())
	}
	return out
}

// Append inserts a new section of kind with kind-appropriate defaults.
// afterIndex < 0 or past the end appends at the end; otherwise the section
// lands immediately after afterIndex. Always succeeds.
func (d *Document) Append(kind SectionKind, afterIndex int) Section {
	s := NewSection(kind)
	if afterIndex < 0 || afterIndex >= len(d.sections)-1 {
		d.sections = append(d.sections, s)
		return s
	}
	d.sections = append(d.sections, Section{})
	copy(d.sections[afterIndex+2:], d.sections[afterIndex+1:])
	d.sections[afterIndex+1] = s
	return s
}

// SectionPatch 部分更新，nil 字段保持原值
type SectionPatch struct {
	Content    *string
	Level      *int
	ListType   *ListType
	Items      *[]string
	MediaURL   *string
	Assessment *Assessment
}

// Update merges the patch into the section matching id. Heading levels are
// clamped to 1-6 and an assessment correct index is clamped into bounds, so
// the document never leaves Update inconsistent. No-op when id is absent.
func (d *Document) Update(id string, patch SectionPatch) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	s := &d.sections[i]
	if patch.Content != nil {
		s.Content = *patch.Content
	}
	if patch.Level != nil {
		level := *patch.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		s.Level = level
	}
	if patch.ListType != nil {
		s.ListType = *patch.ListType
	}
	if patch.Items != nil {
		s.Items = append([]string(nil), (*patch.Items)...)
	}
	if patch.MediaURL != nil {
		s.MediaURL = *patch.MediaURL
	}
	if patch.Assessment != nil {
		a := *patch.Assessment
		a.Options = append([]string(nil), patch.Assessment.Options...)
		if a.CorrectIndex < 0 {
			a.CorrectIndex = 0
		}
		if len(a.Options) > 0 && a.CorrectIndex >= len(a.Options) {
			a.CorrectIndex = len(a.Options) - 1
		}
		s.Assessment = &a
	}
	return true
}

// Remove deletes the section matching id; no-op when absent.
func (d *Document) Remove(id string) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	d.sections = append(d.sections[:i], d.sections[i+1:]...)
	return true
}

// Move swaps the section matching id with its immediate neighbor. The first
// section cannot move up and the last cannot move down; both are no-ops.
func (d *Document) Move(id string, dir Direction) bool {
	i := d.indexOf(id)
	if i < 0 {
		return false
	}
	j := i - 1
	if dir == MoveDown {
		j = i + 1
	}
	if j < 0 || j >= len(d.sections) {
		return false
	}
	d.sections[i], d.sections[j] = d.sections[j], d.sections[i]
	return true
}

// Serialize 当前块序列的扁平文本投影
func (d *Document) Serialize() string {
	return Serialize(d.sections)
}

func (d *Document) indexOf(id string) int {
	for i, s := range d.sections {
		if s.ID == id {
			return i
		}
	}
	return -1
}
