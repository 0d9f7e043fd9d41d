// Package resumetext extracts plain text from resume files.
package resumetext

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"code.sajari.com/docconv"
	"github.com/yuvaraj18181818-cloud/Hire-AI/internal/utils"
)

// MaxRunes bounds the text kept from a single resume.
const MaxRunes = 8000

// ErrUnsupportedType is returned for file extensions that cannot be read.
var ErrUnsupportedType = errors.New("unsupported resume file type")

// convertPath is replaced in tests.
var convertPath = func(path string) (string, error) {
	res, err := docconv.ConvertPath(path)
	if err != nil {
		return "", err
	}
	return res.Body, nil
}

// Supported reports whether the extension of path can be read.
func Supported(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt", ".txt", ".md":
		return true
	default:
		return false
	}
}

// Read returns the text of a resume file, cut to MaxRunes.
func Read(path string) (string, error) {
	var text string

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".pdf", ".docx", ".doc", ".rtf", ".odt":
		body, err := convertPath(path)
		if err != nil {
			return "", fmt.Errorf("parse document %q: %w", path, err)
		}
		text = body
	case ".txt", ".md":
		content, err := os.ReadFile(path)
		if err != nil {
			return "", fmt.Errorf("read text file %q: %w", path, err)
		}
		text = string(content)
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedType, ext)
	}

	text = strings.ToValidUTF8(text, "")
	return utils.TruncateRunes(strings.TrimSpace(text), MaxRunes), nil
}
