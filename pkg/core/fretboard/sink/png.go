package sink

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"io"
	"math"
	"sync"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/matzehuels/fretboard/pkg/core/fretboard/surface"
	"github.com/matzehuels/fretboard/pkg/errors"
)

const (
	defaultPNGScale = 2.0 // output pixels per canvas unit
	supersample     = 2   // internal oversampling before downscaling
	strokeWidth     = 1.0 // canvas units, the SVG default
	bezierCircle    = 0.5522847498
	maxPNGPixels    = 8192 * 8192
)

var (
	black = color.RGBA{A: 0xff}
	white = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

var goRegular = sync.OnceValues(func() (*opentype.Font, error) {
	return opentype.Parse(goregular.TTF)
})

// PNGOption configures a [PNGSurface].
type PNGOption func(*PNGSurface)

// WithScale sets the output resolution in pixels per canvas unit
// (default 2.0 for 2x resolution). Values that are not positive are ignored.
func WithScale(scale float64) PNGOption {
	return func(s *PNGSurface) {
		if scale > 0 {
			s.scale = scale
		}
	}
}

// WithBackground sets the background color. An empty or unknown color
// leaves the background transparent.
func WithBackground(c string) PNGOption {
	return func(s *PNGSurface) { s.background = c }
}

// PNGHost returns a host creating PNG surfaces configured with opts.
func PNGHost(opts ...PNGOption) surface.Host {
	return surface.HostFunc(func(width, height float64) (surface.Surface, error) {
		return NewPNGSurface(width, height, opts...)
	})
}

// PNGSurface is a retained raster canvas. Pointer events are never produced
// by a raster image; subscriptions are accepted and stay silent.
type PNGSurface struct {
	retained

	width, height float64
	scale         float64
	background    string
}

// NewPNGSurface creates a width × height raster canvas.
func NewPNGSurface(width, height float64, opts ...PNGOption) (*PNGSurface, error) {
	if !(width > 0) || !(height > 0) {
		return nil, errors.New(errors.ErrCodeSurfaceUnavailable,
			"png canvas needs a positive size, got %vx%v", width, height)
	}
	s := &PNGSurface{
		retained:   newRetained("png"),
		width:      width,
		height:     height,
		scale:      defaultPNGScale,
		background: "white",
	}
	for _, opt := range opts {
		opt(s)
	}
	if px := width * s.scale * height * s.scale; px > maxPNGPixels {
		return nil, errors.New(errors.ErrCodeSurfaceUnavailable,
			"png canvas of %v px at scale %v is too large", px, s.scale)
	}
	return s, nil
}

func (s *PNGSurface) pixelSize() (int, int) {
	return int(math.Ceil(s.width * s.scale)), int(math.Ceil(s.height * s.scale))
}

// Image rasterizes the current drawing.
func (s *PNGSurface) Image() (*image.RGBA, error) {
	fnt, err := goRegular()
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "load font")
	}

	w, h := s.pixelSize()
	k := s.scale * supersample
	large := image.NewRGBA(image.Rect(0, 0, w*supersample, h*supersample))
	if bg, ok := ParseColor(s.background); ok {
		draw.Draw(large, large.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	}

	r := &rasterizer{dst: large, k: k, font: fnt, faces: make(map[float64]font.Face)}
	defer r.close()
	for _, e := range s.visible() {
		switch e.kind {
		case lineElement:
			r.line(e.a, e.b, colorOr(e.color, black))
		case circleElement:
			r.circle(e.a, e.r, colorOr(e.color, white))
		case textElement:
			if err := r.text(e.a, e.text, e.size); err != nil {
				return nil, err
			}
		}
	}

	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(out, out.Bounds(), large, large.Bounds(), draw.Over, nil)
	return out, nil
}

// Encode writes the drawing as PNG to w.
func (s *PNGSurface) Encode(w io.Writer) error {
	img, err := s.Image()
	if err != nil {
		return err
	}
	return png.Encode(w, img)
}

// Bytes returns the drawing encoded as PNG.
func (s *PNGSurface) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := s.Encode(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// rasterizer draws canvas-space primitives onto an image scaled by k.
type rasterizer struct {
	dst   *image.RGBA
	k     float64
	font  *opentype.Font
	faces map[float64]font.Face
	z     *vector.Rasterizer
}

func (r *rasterizer) path() *vector.Rasterizer {
	b := r.dst.Bounds()
	if r.z == nil {
		r.z = vector.NewRasterizer(b.Dx(), b.Dy())
	} else {
		r.z.Reset(b.Dx(), b.Dy())
	}
	return r.z
}

func (r *rasterizer) fill(c color.Color) {
	r.z.Draw(r.dst, r.dst.Bounds(), image.NewUniform(c), image.Point{})
}

func (r *rasterizer) pt(v float64) float32 { return float32(v * r.k) }

// line strokes a segment as a quad of width strokeWidth.
func (r *rasterizer) line(a, b surface.Point, c color.Color) {
	dx, dy := b.X-a.X, b.Y-a.Y
	length := math.Hypot(dx, dy)
	if length == 0 {
		return
	}
	nx, ny := -dy/length*strokeWidth/2, dx/length*strokeWidth/2

	z := r.path()
	z.MoveTo(r.pt(a.X+nx), r.pt(a.Y+ny))
	z.LineTo(r.pt(b.X+nx), r.pt(b.Y+ny))
	z.LineTo(r.pt(b.X-nx), r.pt(b.Y-ny))
	z.LineTo(r.pt(a.X-nx), r.pt(a.Y-ny))
	z.ClosePath()
	r.fill(c)
}

// circle fills a disc with a black outline centered on its edge.
func (r *rasterizer) circle(center surface.Point, radius float64, fill color.Color) {
	r.disc(center, radius+strokeWidth/2, black)
	if inner := radius - strokeWidth/2; inner > 0 {
		r.disc(center, inner, fill)
	}
}

func (r *rasterizer) disc(c surface.Point, radius float64, col color.Color) {
	k := bezierCircle * radius
	z := r.path()
	z.MoveTo(r.pt(c.X+radius), r.pt(c.Y))
	z.CubeTo(r.pt(c.X+radius), r.pt(c.Y+k), r.pt(c.X+k), r.pt(c.Y+radius), r.pt(c.X), r.pt(c.Y+radius))
	z.CubeTo(r.pt(c.X-k), r.pt(c.Y+radius), r.pt(c.X-radius), r.pt(c.Y+k), r.pt(c.X-radius), r.pt(c.Y))
	z.CubeTo(r.pt(c.X-radius), r.pt(c.Y-k), r.pt(c.X-k), r.pt(c.Y-radius), r.pt(c.X), r.pt(c.Y-radius))
	z.CubeTo(r.pt(c.X+k), r.pt(c.Y-radius), r.pt(c.X+radius), r.pt(c.Y-k), r.pt(c.X+radius), r.pt(c.Y))
	z.ClosePath()
	r.fill(col)
}

// text draws s horizontally centered on at, with at on the baseline.
func (r *rasterizer) text(at surface.Point, s string, size float64) error {
	face, err := r.face(size * r.k)
	if err != nil {
		return err
	}
	width := font.MeasureString(face, s)
	d := &font.Drawer{
		Dst:  r.dst,
		Src:  image.NewUniform(black),
		Face: face,
		Dot: fixed.Point26_6{
			X: fixed.Int26_6(at.X*r.k*64) - width/2,
			Y: fixed.Int26_6(at.Y * r.k * 64),
		},
	}
	d.DrawString(s)
	return nil
}

func (r *rasterizer) face(size float64) (font.Face, error) {
	if f, ok := r.faces[size]; ok {
		return f, nil
	}
	f, err := opentype.NewFace(r.font, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingNone,
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "create %vpt font face", size)
	}
	r.faces[size] = f
	return f, nil
}

func (r *rasterizer) close() {
	for _, f := range r.faces {
		f.Close()
	}
}
