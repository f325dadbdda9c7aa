package editor

import (
	"fmt"
	"strings"
)

// Serialize projects an ordered block sequence into the flat text stored on a
// module. The projection is deterministic: the same sequence always yields
// the same string. Blocks are joined with one blank line; an empty sequence
// yields the empty string.
//
// Assessment blocks keep only their question in the flat form; the full quiz
// data survives in the persisted section array, not here.
func Serialize(sections []Section) string {
	if len(sections) == 0 {
		return ""
	}
	parts := make([]string, 0, len(sections))
	for _, s := range sections {
		parts = append(parts, serializeSection(s))
	}
	return strings.Join(parts, "\n\n")
}

func serializeSection(s Section) string {
	switch s.Kind {
	case KindHeading:
		level := s.Level
		if level < 1 {
			level = 1
		}
		if level > 6 {
			level = 6
		}
		return strings.Repeat("#", level) + " " + s.Content
	case KindParagraph:
		return s.Content
	case KindList:
		lines := make([]string, 0, len(s.Items))
		for i, item := range s.Items {
			if s.ListType == ListOrdered {
				lines = append(lines, fmt.Sprintf("%d. %s", i+1, item))
			} else {
				lines = append(lines, "• "+item)
			}
		}
		return strings.Join(lines, "\n")
	case KindQuote:
		return "> " + s.Content
	case KindCode:
		return "```\n" + s.Content + "\n```"
	case KindMedia:
		return fmt.Sprintf("[Media: %s]", s.MediaURL)
	case KindAssessment:
		question := ""
		if s.Assessment != nil {
			question = s.Assessment.Question
		}
		return fmt.Sprintf("[Quiz: %s]", question)
	case KindDivider:
		return "---"
	default:
		return s.Content
	}
}
