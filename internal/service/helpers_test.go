package service

import (
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestStringPreview(t *testing.T) {
	require.Equal(t, "short", stringPreview("short", 10))
	require.Equal(t, "exact", stringPreview("exact", 5))
	require.Equal(t, "abc", stringPreview("abcdef", 3))
	require.Equal(t, "", stringPreview("abc", 0))
}

func TestStringPreviewKeepsRunesIntact(t *testing.T) {
	preview := stringPreview("héllo wörld, völlig übertrieben", 8)
	require.True(t, utf8.ValidString(preview))
	require.Equal(t, "héllo wö", preview)

	preview = stringPreview("日本語のテキスト", 3)
	require.True(t, utf8.ValidString(preview))
	require.Equal(t, "日本語", preview)
}
