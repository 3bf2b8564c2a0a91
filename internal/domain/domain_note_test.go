package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNote_Apply(t *testing.T) {
	created := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	creator := "Tester"
	n := &Note{ID: 7, Title: "Old", Content: "Old content", TimeCreated: created}

	n.Apply("New", "New content", &creator)

	assert.Equal(t, int64(7), n.ID)
	assert.Equal(t, created, n.TimeCreated)
	assert.Equal(t, "New", n.Title)
	assert.Equal(t, "New content", n.Content)
	assert.Equal(t, "Tester", *n.Creator)
	assert.Nil(t, n.TimeUpdated)
}

func TestNote_CreatorOr(t *testing.T) {
	empty := ""
	named := "Ada"

	assert.Equal(t, "Unknown", (&Note{}).CreatorOr("Unknown"))
	assert.Equal(t, "Unknown", (&Note{Creator: &empty}).CreatorOr("Unknown"))
	assert.Equal(t, "Ada", (&Note{Creator: &named}).CreatorOr("Unknown"))
}
