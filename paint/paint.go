// Package paint declares the abstract drawing surface boxes render onto.
// A reference implementation over golang.org/x/image/font, for
// environments that just want a rasterized bitmap, lives in the
// paint/refpainter sub-package.
package paint

import "github.com/npillmayer/mtex/core/fontctx"

// LineCap and LineJoin mirror the small stroke-style vocabulary most 2D
// graphics APIs expose.
type LineCap uint8
type LineJoin uint8

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// ARGB is a 32-bit packed color, alpha in the high byte.
type ARGB uint32

// Painter is the minimum drawing surface the box tree needs in order to
// render itself. It is externally provided; the engine neither creates
// nor owns one.
type Painter interface {
	SetColor(c ARGB)
	SetStroke(width, miter float32, cap LineCap, join LineJoin)
	Translate(dx, dy float32)
	Scale(sx, sy float32)
	Rotate(angle float32)
	Reset()

	DrawGlyph(fontID fontctx.FontID, glyphID int32, x, y, scale float32)
	DrawLine(x1, y1, x2, y2 float32)
	DrawRect(x, y, w, h float32)
	FillRect(x, y, w, h float32)
	DrawRoundRect(x, y, w, h, rx, ry float32)
	FillRoundRect(x, y, w, h, rx, ry float32)
}
