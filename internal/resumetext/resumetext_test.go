package resumetext

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadText(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  Go developer\nKubernetes  \n"), 0o600))

	text, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, "Go developer\nKubernetes", text)
}

func TestReadTruncates(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cv.md")
	require.NoError(t, os.WriteFile(path, []byte(strings.Repeat("ж", MaxRunes+10)), 0o600))

	text, err := Read(path)
	require.NoError(t, err)
	assert.Equal(t, MaxRunes, utf8.RuneCountInString(text))
}

func TestReadDocumentUsesConverter(t *testing.T) {
	original := convertPath
	defer func() { convertPath = original }()

	var got string
	convertPath = func(path string) (string, error) {
		got = path
		return " Resume body ", nil
	}

	text, err := Read("/tmp/cv.PDF")
	require.NoError(t, err)
	assert.Equal(t, "Resume body", text)
	assert.Equal(t, "/tmp/cv.PDF", got)

	convertPath = func(string) (string, error) { return "", errors.New("corrupt") }
	_, err = Read("/tmp/cv.docx")
	require.ErrorContains(t, err, "corrupt")
}

func TestReadUnsupported(t *testing.T) {
	_, err := Read("photo.png")
	require.ErrorIs(t, err, ErrUnsupportedType)
	assert.False(t, Supported("photo.png"))
	assert.True(t, Supported("CV.Docx"))
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "none.txt"))
	require.Error(t, err)
}
