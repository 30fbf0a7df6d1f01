package export

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const reelNameLen = 8

// SanitizeName keeps letters, digits and a few punctuation marks, replacing
// anything else with '_'. Control characters are dropped.
func SanitizeName(s string, maxLen int) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsControl(r):
		case unicode.IsLetter(r), unicode.IsDigit(r), strings.ContainsRune(" -_.,()", r):
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}

	cleaned := strings.TrimSpace(b.String())
	if runes := []rune(cleaned); maxLen > 0 && len(runes) > maxLen {
		cleaned = string(runes[:maxLen])
	}
	return cleaned
}

// SanitizeReelName returns an upper case reel name of at most eight ASCII
// letters, digits or underscores.
func SanitizeReelName(s string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(s) {
		if b.Len() == reelNameLen {
			break
		}
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// FileName returns the EDL file name for a take.
func FileName(takeName string) string {
	name := strings.ReplaceAll(SanitizeName(takeName, 64), " ", "_")
	if name == "" {
		name = "take"
	}
	return name + ".edl"
}

// ValidateOutputDir checks that dir is a clean, existing directory.
func ValidateOutputDir(dir string) error {
	if strings.TrimSpace(dir) == "" {
		return fmt.Errorf("output_dir is required")
	}
	for _, part := range strings.Split(filepath.ToSlash(dir), "/") {
		if part == ".." {
			return fmt.Errorf("output_dir cannot contain path traversal")
		}
	}
	if filepath.Clean(dir) != dir {
		return fmt.Errorf("output_dir must be clean path")
	}

	info, err := os.Stat(dir)
	switch {
	case os.IsNotExist(err):
		return fmt.Errorf("output_dir does not exist")
	case err != nil:
		return fmt.Errorf("invalid output_dir: %w", err)
	case !info.IsDir():
		return fmt.Errorf("output_dir is not a directory")
	}
	return nil
}

// WriteEDL writes the EDL text into dir and returns the file path.
func WriteEDL(dir, takeName, edl string) (string, error) {
	if err := ValidateOutputDir(dir); err != nil {
		return "", err
	}
	path := filepath.Join(dir, FileName(takeName))
	if err := os.WriteFile(path, []byte(edl), 0o644); err != nil {
		return "", fmt.Errorf("write edl: %w", err)
	}
	return path, nil
}
