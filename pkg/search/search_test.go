package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseDate(t *testing.T) {
	want := time.Date(2026, 10, 15, 7, 30, 0, 0, time.UTC)

	for _, in := range []string{
		"2026-10-15T07:30:00Z",
		"2026-10-15T07:30:00",
		"Thu, 15 Oct 2026 07:30:00 GMT",
		"2026-10-15 07:30:00",
	} {
		got, ok := ParseDate(in)
		assert.True(t, ok, in)
		assert.True(t, want.Equal(got), "%s -> %s", in, got)
	}

	_, ok := ParseDate("")
	assert.False(t, ok)
	_, ok = ParseDate("yesterday-ish")
	assert.False(t, ok)
}
