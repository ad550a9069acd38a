package errors

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/colornames"
)

// maxLabelLength bounds titles and string names so they fit a diagram.
const maxLabelLength = 128

// hexColorRegex matches #rgb and #rrggbb colors.
var hexColorRegex = regexp.MustCompile(`^#([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// ValidateColor checks that s is an SVG color keyword or a hex color.
// Both the SVG and PNG surfaces understand exactly this set.
func ValidateColor(s string) error {
	if s == "" {
		return New(ErrCodeInvalidColor, "color cannot be empty")
	}
	if hexColorRegex.MatchString(s) {
		return nil
	}
	if _, ok := colornames.Map[strings.ToLower(s)]; ok {
		return nil
	}
	return New(ErrCodeInvalidColor, "unknown color: %q (use an SVG color name or #rrggbb)", s)
}

// ValidateLabel checks a title or string name for safety.
// Empty labels are valid and mean "no label".
func ValidateLabel(s string) error {
	if utf8.RuneCountInString(s) > maxLabelLength {
		return New(ErrCodeInvalidInput, "label too long (max %d characters)", maxLabelLength)
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return New(ErrCodeInvalidInput, "label contains invalid control characters")
		}
	}
	return nil
}

// ValidatePath validates an output file path supplied by a user.
//
// Validation rules:
//   - Path cannot be empty
//   - Maximum length of 500 characters
//   - No null bytes or control characters
func ValidatePath(path string) error {
	if path == "" {
		return New(ErrCodeInvalidPath, "path cannot be empty")
	}

	const maxPathLength = 500
	if len(path) > maxPathLength {
		return New(ErrCodeInvalidPath, "path too long (max %d characters)", maxPathLength)
	}

	for _, r := range path {
		if r == '\x00' || unicode.IsControl(r) {
			return New(ErrCodeInvalidPath, "path contains invalid characters")
		}
	}
	return nil
}
