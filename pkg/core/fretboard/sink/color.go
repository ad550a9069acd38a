package sink

import (
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"

	"github.com/matzehuels/fretboard/pkg/errors"
)

// ParseColor resolves an SVG color keyword or a #rgb / #rrggbb hex value.
// It accepts exactly the strings [errors.ValidateColor] accepts.
func ParseColor(s string) (color.RGBA, bool) {
	if errors.ValidateColor(s) != nil {
		return color.RGBA{}, false
	}
	if strings.HasPrefix(s, "#") {
		return parseHex(s[1:])
	}
	c, ok := colornames.Map[strings.ToLower(s)]
	return c, ok
}

func parseHex(h string) (color.RGBA, bool) {
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	case 6:
	default:
		return color.RGBA{}, false
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return color.RGBA{}, false
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}, true
}

// colorOr returns the parsed color of s, or fallback when s is not a color.
func colorOr(s string, fallback color.RGBA) color.RGBA {
	if c, ok := ParseColor(s); ok {
		return c
	}
	return fallback
}
