package usecase

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitContent(t *testing.T) {
	text := "# Notes from Atomic Habits\n\n" +
		"- You do not rise to the level of your goals, you fall to your systems.\n" +
		"- Make it obvious, make it attractive.\n" +
		"  Make it easy and satisfying.\n" +
		"* ok\n\n" +
		"> Every action you take is a vote\n> for the type of person you wish to become.\n\n" +
		"\"The best time to plant a tree was 20 years ago.\" - Chinese proverb\n\n" +
		"Habits are the compound interest of self-improvement.\n\n" +
		"Habits are the compound interest of self-improvement."

	items := SplitContent(text)
	require.Len(t, items, 5)

	assert.Equal(t, "You do not rise to the level of your goals, you fall to your systems.", items[0].Content)
	assert.Equal(t, "Make it obvious, make it attractive. Make it easy and satisfying.", items[1].Content)
	assert.Equal(t, "Every action you take is a vote for the type of person you wish to become.", items[2].Content)
	assert.Equal(t, "The best time to plant a tree was 20 years ago.", items[3].Content)
	assert.Equal(t, "Chinese proverb", items[3].Source)
	assert.Equal(t, "Habits are the compound interest of self-improvement.", items[4].Content)

	for _, it := range items {
		assert.Equal(t, "gem", it.Type)
		assert.Equal(t, "other", it.ContextSlug)
		assert.InDelta(t, 0.3, it.Confidence, 1e-9)
	}
}

func TestSplitContent_Empty(t *testing.T) {
	assert.Empty(t, SplitContent(""))
	assert.Empty(t, SplitContent("short\n\n- tiny"))
}
