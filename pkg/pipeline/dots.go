package pipeline

import (
	"strconv"
	"strings"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/layout"
	"github.com/matzehuels/fretboard/pkg/errors"
)

// ParseDots parses a comma-separated list of string:fret[:color] entries,
// as accepted by the CLI --dots flag and the dots query parameter.
func ParseDots(s string) ([]layout.Dot, error) {
	var dots []layout.Dot
	for _, entry := range strings.Split(s, ",") {
		entry = strings.TrimSpace(entry)
		if entry == "" {
			continue
		}
		parts := strings.SplitN(entry, ":", 3)
		if len(parts) < 2 {
			return nil, errors.New(errors.ErrCodeInvalidInput,
				"dot %q: want string:fret[:color]", entry)
		}
		str, err := strconv.Atoi(parts[0])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "dot %q: string", entry)
		}
		fret, err := strconv.Atoi(parts[1])
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "dot %q: fret", entry)
		}
		d := layout.Dot{FretCoord: layout.FretCoord{String: str, Fret: fret}}
		if len(parts) == 3 {
			d.Color = parts[2]
		}
		dots = append(dots, d)
	}
	return dots, nil
}

// FormatDots is the inverse of [ParseDots].
func FormatDots(dots []layout.Dot) string {
	parts := make([]string, len(dots))
	for i, d := range dots {
		s := strconv.Itoa(d.String) + ":" + strconv.Itoa(d.Fret)
		if d.Color != "" {
			s += ":" + d.Color
		}
		parts[i] = s
	}
	return strings.Join(parts, ",")
}
