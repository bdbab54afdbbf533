package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchStatusValid(t *testing.T) {
	valid := []MatchStatus{StatusPlayed, StatusCanceled, StatusRescheduled, StatusToBePlayed}
	for _, s := range valid {
		assert.True(t, s.Valid(), "expected %q to be valid", s)
	}

	invalid := []MatchStatus{"", "pending", "Played", "done"}
	for _, s := range invalid {
		assert.False(t, s.Valid(), "expected %q to be invalid", s)
	}
}

func TestValidDate(t *testing.T) {
	assert.True(t, ValidDate("2026-03-14"))
	assert.True(t, ValidDate("2026-12-01"))

	assert.False(t, ValidDate("14-03-2026"))
	assert.False(t, ValidDate("2026-13-01"))
	assert.False(t, ValidDate("2026-3-1"))
	assert.False(t, ValidDate(""))
}

func TestValidTime(t *testing.T) {
	assert.True(t, ValidTime("09:30"))
	assert.True(t, ValidTime("18:00"))

	assert.False(t, ValidTime("24:00"))
	assert.False(t, ValidTime("9:30"))
	assert.False(t, ValidTime("18:00:00"))
	assert.False(t, ValidTime(""))
}
