package chroma

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestTruncateUTF8(t *testing.T) {
	assert.Equal(t, "short", truncateUTF8("short", 10))
	assert.Equal(t, "abcde", truncateUTF8("abcdefgh", 5))

	// "é" is two bytes, so a cut at an odd offset lands mid rune
	text := strings.Repeat("é", 10)
	got := truncateUTF8(text, 5)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, "éé", got)

	long := strings.Repeat("a", maxDocumentLen-1) + "日本"
	got = truncateUTF8(long, maxDocumentLen)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, maxDocumentLen-1, len(got))
}
