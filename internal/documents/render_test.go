package documents

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTextPreservesBytes(t *testing.T) {
	content := "line one\nline two — ünïcode"
	out := Text(content)
	assert.Equal(t, []byte(content), out)
	assert.Len(t, out, len(content))
}

func TestMarkdownPreservesBytes(t *testing.T) {
	content := "# Title\n\n- item"
	assert.Equal(t, []byte(content), Markdown(content))
}

func TestPDFDeterministic(t *testing.T) {
	a, err := PDF("same content")
	require.NoError(t, err)
	b, err := PDF("same content")
	require.NoError(t, err)

	require.NotEmpty(t, a)
	assert.Equal(t, "%PDF-", string(a[:5]))
	assert.Equal(t, a, b)
}

func TestDocxIsZipArchive(t *testing.T) {
	out, err := Docx("body text")
	require.NoError(t, err)
	require.Greater(t, len(out), 2)
	assert.Equal(t, byte('P'), out[0])
	assert.Equal(t, byte('K'), out[1])
}
