// Package refpainter is a reference paint.Painter that rasterizes a box
// tree to an in-memory image.RGBA. It exists so this module is
// exercisable end-to-end without an embedder supplying its own painter;
// production use is expected to supply a Painter backed by a real
// graphics API.
//
// Since .clm fonts carry only metrics (no outlines, unless hasGlyphPath is
// set), glyphs are rendered as a placeholder label using
// golang.org/x/image/font/basicfont rather than an invented outline. This
// keeps the reference painter honest about what it can and cannot draw
// without a real glyph rasterizer wired in.
package refpainter

import (
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"

	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/paint"
)

// Painter rasterizes onto a fixed-size image.RGBA canvas using an affine
// transform stack (translate/scale/rotate) matching paint.Painter's
// contract.
type Painter struct {
	img   *image.RGBA
	color color.RGBA

	strokeWidth float32
	cap         paint.LineCap
	join        paint.LineJoin

	tx, ty      float32
	sx, sy      float32
	angle       float32
}

// New creates a Painter over a fresh canvas of the given pixel size.
func New(width, height int) *Painter {
	p := &Painter{img: image.NewRGBA(image.Rect(0, 0, width, height))}
	p.Reset()
	return p
}

// Image returns the rasterized canvas.
func (p *Painter) Image() *image.RGBA { return p.img }

func (p *Painter) SetColor(c paint.ARGB) {
	a := byte(c >> 24)
	r := byte(c >> 16)
	g := byte(c >> 8)
	b := byte(c)
	p.color = color.RGBA{R: r, G: g, B: b, A: a}
}

func (p *Painter) SetStroke(width, miter float32, cap paint.LineCap, join paint.LineJoin) {
	p.strokeWidth = width
	p.cap = cap
	p.join = join
}

func (p *Painter) Translate(dx, dy float32) { p.tx += dx; p.ty += dy }
func (p *Painter) Scale(sx, sy float32)      { p.sx *= sx; p.sy *= sy }
func (p *Painter) Rotate(angle float32)      { p.angle += angle }

func (p *Painter) Reset() {
	p.color = color.RGBA{A: 0xff}
	p.strokeWidth = 1
	p.tx, p.ty = 0, 0
	p.sx, p.sy = 1, 1
	p.angle = 0
}

// transform applies the current translate/scale/rotate stack to a point.
func (p *Painter) transform(x, y float32) (float32, float32) {
	x, y = x*p.sx, y*p.sy
	if p.angle != 0 {
		s, c := float32(math.Sin(float64(p.angle))), float32(math.Cos(float64(p.angle)))
		x, y = x*c-y*s, x*s+y*c
	}
	return x + p.tx, y + p.ty
}

func (p *Painter) DrawGlyph(fontID fontctx.FontID, glyphID int32, x, y, scale float32) {
	px, py := p.transform(x, y)
	face := basicfont.Face7x13
	d := &font.Drawer{
		Dst:  p.img,
		Src:  image.NewUniform(p.color),
		Face: face,
		Dot:  fixed.P(int(px), int(py)),
	}
	d.DrawString("□") // placeholder box glyph; no outline data to rasterize
}

func (p *Painter) DrawLine(x1, y1, x2, y2 float32) {
	x1, y1 = p.transform(x1, y1)
	x2, y2 = p.transform(x2, y2)
	v := vector.NewRasterizer(p.img.Bounds().Dx(), p.img.Bounds().Dy())
	half := p.strokeWidth / 2
	if half <= 0 {
		half = 0.5
	}
	dx, dy := x2-x1, y2-y1
	length := float32(math.Hypot(float64(dx), float64(dy)))
	if length == 0 {
		return
	}
	nx, ny := -dy/length*half, dx/length*half
	v.MoveTo(x1+nx, y1+ny)
	v.LineTo(x2+nx, y2+ny)
	v.LineTo(x2-nx, y2-ny)
	v.LineTo(x1-nx, y1-ny)
	v.ClosePath()
	p.fillRasterizer(v)
}

func (p *Painter) DrawRect(x, y, w, h float32) {
	p.strokeRectPath(x, y, w, h)
}

func (p *Painter) FillRect(x, y, w, h float32) {
	x0, y0 := p.transform(x, y)
	x1, y1 := p.transform(x+w, y+h)
	draw.Draw(p.img, image.Rect(int(x0), int(y0), int(x1), int(y1)), image.NewUniform(p.color), image.Point{}, draw.Over)
}

func (p *Painter) DrawRoundRect(x, y, w, h, rx, ry float32) {
	p.strokeRectPath(x, y, w, h) // corner rounding approximated as a plain rect
}

func (p *Painter) FillRoundRect(x, y, w, h, rx, ry float32) {
	p.FillRect(x, y, w, h) // corner rounding approximated as a plain fill
}

func (p *Painter) strokeRectPath(x, y, w, h float32) {
	p.DrawLine(x, y, x+w, y)
	p.DrawLine(x+w, y, x+w, y+h)
	p.DrawLine(x+w, y+h, x, y+h)
	p.DrawLine(x, y+h, x, y)
}

func (p *Painter) fillRasterizer(v *vector.Rasterizer) {
	mask := image.NewAlpha(p.img.Bounds())
	v.Draw(mask, mask.Bounds(), image.NewUniform(color.Opaque), image.Point{})
	draw.DrawMask(p.img, p.img.Bounds(), image.NewUniform(p.color), image.Point{}, mask, image.Point{}, draw.Over)
}
