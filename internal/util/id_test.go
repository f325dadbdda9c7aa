package util

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGenerateIDFormat(t *testing.T) {
	id := GenerateID("course")
	assert.Regexp(t, regexp.MustCompile(`^course_\d{13}_[0-9a-f]{9}$`), id)
}

func TestGenerateIDUnique(t *testing.T) {
	seen := make(map[string]bool)
	for i := 0; i < 1000; i++ {
		id := GenerateID("module")
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestRankingID(t *testing.T) {
	assert.Equal(t, "course_1700000000000_abc123def_ranking", RankingID("course_1700000000000_abc123def"))
}

func TestGenerateRandomStringLength(t *testing.T) {
	assert.Len(t, GenerateRandomString(16), 16)
	assert.Len(t, GenerateRandomString(64), 32, "capped at the uuid's hex length")
	assert.NotEqual(t, GenerateRandomString(16), GenerateRandomString(16))
}
