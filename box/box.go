// Package box implements the positioned, measured node tree a formula
// lowers into. A Box is immutable after construction except for its
// Shift, which a parent box may set once while arranging children.
package box

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/paint"
)

func tracer() tracing.Trace {
	return tracing.Select("mtex.box")
}

// Alignment positions a box's children (or a box within an enclosing
// extent), used by Fraction/Stack/Operator/ZStack layout.
type Alignment uint8

const (
	AlignCenter Alignment = iota
	AlignLeft
	AlignRight
)

// Metrics is the shared {width, height, depth, shift} quadruple every Box
// variant carries. Height and depth are both measured as non-negative
// extents above/below the baseline.
type Metrics struct {
	Width, Height, Depth, Shift dimen.DU
}

// CopyMetrics duplicates another box's metrics, mirroring the original's
// Box::copyMetrics (used by decorator/wrapper boxes that adopt a child's
// size without becoming that child).
func (m *Metrics) CopyMetrics(other Metrics) { *m = other }

// Box is the capability interface every positioned node in the output
// tree implements.
type Box interface {
	// Draw renders this box at (x, y), the box's own reference point,
	// baseline-left, translating the painter by Shift before drawing
	// children.
	Draw(p paint.Painter, x, y dimen.DU)
	// LastFontID returns the id of the rightmost descendant with a known
	// font, or fontctx.NoFontID.
	LastFontID() fontctx.FontID
	// M returns this box's current metrics.
	M() Metrics
	// SetShift sets the vertical offset a parent applies before drawing
	// this box (positive shift moves the box down).
	SetShift(shift dimen.DU)
}

// base implements the Metrics bookkeeping shared by every Box variant,
// exactly as the original's Box base class centralizes copyMetrics/shift.
type base struct {
	m Metrics
}

func (b *base) M() Metrics          { return b.m }
func (b *base) SetShift(s dimen.DU) { b.m.Shift = s }

// ---------------------------------------------------------------------------

// CharBox wraps a single resolved glyph.
type CharBox struct {
	base
	Char fontctx.Char
}

// NewCharBox creates a CharBox with metrics {width, height, depth} scaled
// by the Char's own Scale field (set by Env.GetChar).
func NewCharBox(c fontctx.Char, width, height, depth dimen.DU) *CharBox {
	cb := &CharBox{Char: c}
	cb.m = Metrics{Width: width, Height: height, Depth: depth}
	return cb
}

func (b *CharBox) Draw(p paint.Painter, x, y dimen.DU) {
	p.DrawGlyph(b.Char.FontID, int32(b.Char.GlyphID), float32(x), float32(y+b.m.Shift), b.Char.Scale)
}

func (b *CharBox) LastFontID() fontctx.FontID { return b.Char.FontID }

// ---------------------------------------------------------------------------

// StrutBox is an invisible spacer with fixed metrics and nothing to draw.
type StrutBox struct {
	base
}

// NewStrutBox creates an invisible box occupying exactly {w, h, d}.
func NewStrutBox(w, h, d dimen.DU) *StrutBox {
	s := &StrutBox{}
	s.m = Metrics{Width: w, Height: h, Depth: d}
	return s
}

func (b *StrutBox) Draw(p paint.Painter, x, y dimen.DU) {}
func (b *StrutBox) LastFontID() fontctx.FontID          { return fontctx.NoFontID }

// ---------------------------------------------------------------------------

// GlueBox is elastic inter-atom spacing; its Width may be negative (a
// "negative skip" such as \negthinspace).
type GlueBox struct {
	base
}

// NewGlueBox creates a glue box of the given natural width.
func NewGlueBox(w dimen.DU) *GlueBox {
	g := &GlueBox{}
	g.m = Metrics{Width: w}
	return g
}

func (b *GlueBox) Draw(p paint.Painter, x, y dimen.DU) {}
func (b *GlueBox) LastFontID() fontctx.FontID          { return fontctx.NoFontID }

// ---------------------------------------------------------------------------

// RuleBox is a visible, filled horizontal bar: the fraction bar, an
// overline/underline, or a radical's rule. It has zero depth; its top
// sits `thickness` above the baseline.
type RuleBox struct {
	base
}

// NewRuleBox creates a filled rule of the given width and thickness.
func NewRuleBox(width, thickness dimen.DU) *RuleBox {
	r := &RuleBox{}
	r.m = Metrics{Width: width, Height: thickness}
	return r
}

func (b *RuleBox) Draw(p paint.Painter, x, y dimen.DU) {
	p.FillRect(float32(x), float32(y-b.m.Height+b.m.Shift), float32(b.m.Width), float32(b.m.Height))
}

func (b *RuleBox) LastFontID() fontctx.FontID { return fontctx.NoFontID }

// ---------------------------------------------------------------------------

// group holds children in insertion order, shared by HorizontalBox and
// VerticalBox.
type group struct {
	base
	children []Box
}

func (g *group) Add(b Box) { g.children = append(g.children, b) }

// LastFontID returns the id of the rightmost child with a known font,
// mirroring BoxGroup::lastFontId's right-to-left scan.
func (g *group) LastFontID() fontctx.FontID {
	for i := len(g.children) - 1; i >= 0; i-- {
		if id := g.children[i].LastFontID(); id != fontctx.NoFontID {
			return id
		}
	}
	return fontctx.NoFontID
}

// ---------------------------------------------------------------------------

// HorizontalBox lays its children out left to right, accumulating width
// and taking the max height/depth across children.
type HorizontalBox struct {
	group
}

// NewHorizontalBox creates an empty horizontal box.
func NewHorizontalBox() *HorizontalBox { return &HorizontalBox{} }

// Append adds b as the next child, extending this box's metrics.
func (h *HorizontalBox) Append(b Box) {
	h.Add(b)
	m := b.M()
	h.m.Width += m.Width
	h.m.Height = dimen.Max(h.m.Height, m.Height-m.Shift)
	h.m.Depth = dimen.Max(h.m.Depth, m.Depth+m.Shift)
}

// SetExtent overrides the accumulated height/depth with an explicit
// vertical extent. No layout in this module calls it.
func (h *HorizontalBox) SetExtent(height, depth dimen.DU) {
	h.m.Height, h.m.Depth = height, depth
}

func (h *HorizontalBox) Draw(p paint.Painter, x, y dimen.DU) {
	y += h.m.Shift
	cx := x
	for _, c := range h.children {
		c.Draw(p, cx, y)
		cx += c.M().Width
	}
}

// ---------------------------------------------------------------------------

// VerticalBox stacks children top to bottom. Its height is the one fixed
// by SetHeight; its depth grows so that every child's bottom fits inside
// the box, and its width is the max across children unless SetWidth
// fixes it. Unlike HorizontalBox,
// children are positioned at explicit baseline offsets rather than
// glued edge to edge, so it tracks those offsets alongside group.children.
type VerticalBox struct {
	group
	offsets []dimen.DU
}

// NewVerticalBox creates an empty vertical box.
func NewVerticalBox() *VerticalBox { return &VerticalBox{} }

// SetHeight fixes the box's height (its top, measured above the eventual
// baseline) before children are appended. Composite layouts (Fraction,
// Stack) need this: the vbox's own baseline is a caller-chosen reference
// point, not simply "first child's baseline", so Append alone cannot
// derive it.
func (v *VerticalBox) SetHeight(h dimen.DU) { v.m.Height = h }

// SetWidth fixes the box's width explicitly, overriding the running max
// Append would otherwise compute (used when children are pre-padded to a
// uniform width).
func (v *VerticalBox) SetWidth(w dimen.DU) { v.m.Width = w }

// Append adds b below the current stack, extending this box's metrics.
// cy tracks the running baseline offset of the box being appended,
// measured from this VerticalBox's own top.
func (v *VerticalBox) Append(b Box, cy dimen.DU) {
	v.Add(b)
	v.offsets = append(v.offsets, cy)
	m := b.M()
	v.m.Width = dimen.Max(v.m.Width, m.Width)
	bottom := cy + m.Depth
	if bottom > v.m.Height+v.m.Depth {
		v.m.Depth = bottom - v.m.Height
	}
}

func (v *VerticalBox) Draw(p paint.Painter, x, y dimen.DU) {
	top := y + v.m.Shift - v.m.Height
	for i, c := range v.children {
		c.Draw(p, x, top+v.offsets[i])
	}
}

// ---------------------------------------------------------------------------

// DecoratorBox wraps another box, forwarding its metrics unless
// overridden, and translating drawing by its own Shift.
type DecoratorBox struct {
	base
	Base Box
}

// NewDecoratorBox wraps base, copying its metrics.
func NewDecoratorBox(base Box) *DecoratorBox {
	d := &DecoratorBox{Base: base}
	d.m = base.M()
	return d
}

func (d *DecoratorBox) Draw(p paint.Painter, x, y dimen.DU) {
	d.Base.Draw(p, x, y+d.m.Shift)
}

func (d *DecoratorBox) LastFontID() fontctx.FontID { return d.Base.LastFontID() }
