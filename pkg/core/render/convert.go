// Package render converts rendered SVG documents into formats that need an
// external rasterizer.
package render

import (
	"bytes"
	"context"
	"os/exec"
	"strings"

	"github.com/matzehuels/fretboard/pkg/errors"
)

// ConverterBinary is the librsvg command line tool used for conversion.
const ConverterBinary = "rsvg-convert"

const installHint = "install librsvg:\n  macOS:  brew install librsvg\n  Linux:  apt install librsvg2-bin"

// lookPath is replaced in tests.
var lookPath = exec.LookPath

// CanConvert reports whether rsvg-convert is on PATH.
func CanConvert() bool {
	_, err := lookPath(ConverterBinary)
	return err == nil
}

// ToPDF converts SVG bytes to PDF using rsvg-convert.
func ToPDF(ctx context.Context, svg []byte) ([]byte, error) {
	return rsvgConvert(ctx, svg, "pdf")
}

func rsvgConvert(ctx context.Context, svg []byte, format string, extraArgs ...string) ([]byte, error) {
	bin, err := lookPath(ConverterBinary)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeUnsupported, err, "%s export requires %s; %s", format, ConverterBinary, installHint)
	}

	args := append([]string{"-f", format}, extraArgs...)
	cmd := exec.CommandContext(ctx, bin, args...)
	cmd.Stdin = bytes.NewReader(svg)

	var out, errBuf bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &errBuf

	if err := cmd.Run(); err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "%s: %s", ConverterBinary, strings.TrimSpace(errBuf.String()))
	}
	return out.Bytes(), nil
}
