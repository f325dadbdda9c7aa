package editor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSerializeEmpty(t *testing.T) {
	assert.Equal(t, "", Serialize(nil))
	assert.Equal(t, "", Serialize([]Section{}))
}

func TestSerializeSingleBlocks(t *testing.T) {
	tests := []struct {
		name    string
		section Section
		want    string
	}{
		{
			name:    "heading level 2",
			section: Section{Kind: KindHeading, Level: 2, Content: "Intro"},
			want:    "## Intro",
		},
		{
			name:    "heading level defaults to 1 when unset",
			section: Section{Kind: KindHeading, Content: "Top"},
			want:    "# Top",
		},
		{
			name:    "paragraph verbatim",
			section: Section{Kind: KindParagraph, Content: "plain text"},
			want:    "plain text",
		},
		{
			name:    "ordered list",
			section: Section{Kind: KindList, ListType: ListOrdered, Items: []string{"a", "b"}},
			want:    "1. a\n2. b",
		},
		{
			name:    "unordered list",
			section: Section{Kind: KindList, ListType: ListUnordered, Items: []string{"a", "b"}},
			want:    "• a\n• b",
		},
		{
			name:    "quote",
			section: Section{Kind: KindQuote, Content: "wise words"},
			want:    "> wise words",
		},
		{
			name:    "code fenced",
			section: Section{Kind: KindCode, Content: "x := 1"},
			want:    "```\nx := 1\n```",
		},
		{
			name:    "media",
			section: Section{Kind: KindMedia, MediaURL: "https://cdn.example.com/a.png"},
			want:    "[Media: https://cdn.example.com/a.png]",
		},
		{
			name:    "assessment keeps only the question",
			section: Section{Kind: KindAssessment, Assessment: &Assessment{Question: "What is Go?", Options: []string{"a", "b"}, CorrectIndex: 1}},
			want:    "[Quiz: What is Go?]",
		},
		{
			name:    "divider",
			section: Section{Kind: KindDivider},
			want:    "---",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Serialize([]Section{tt.section}))
		})
	}
}

func TestSerializeJoinsWithBlankLine(t *testing.T) {
	got := Serialize([]Section{
		{Kind: KindHeading, Level: 1, Content: "Title"},
		{Kind: KindParagraph, Content: "body"},
		{Kind: KindDivider},
	})
	assert.Equal(t, "# Title\n\nbody\n\n---", got)
}

func TestSerializeIsDeterministic(t *testing.T) {
	sections := []Section{
		{Kind: KindHeading, Level: 3, Content: "h"},
		{Kind: KindList, ListType: ListOrdered, Items: []string{"one", "two"}},
	}
	first := Serialize(sections)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, Serialize(sections))
	}
}

func TestDocumentSerializeMatchesPackageSerialize(t *testing.T) {
	d := NewDocument()
	s := d.Append(KindHeading, -1)
	content := "Intro"
	level := 2
	d.Update(s.ID, SectionPatch{Content: &content, Level: &level})

	assert.Equal(t, "## Intro", d.Serialize())
}
