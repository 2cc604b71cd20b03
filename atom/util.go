package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/core/otf"
)

// glyphOf resolves a Char's glyph record, or nil if the font/glyph id is
// unresolvable.
func glyphOf(e *env.Env, c fontctx.Char) *otf.Glyph {
	f := e.FontContext().GetFont(c.FontID)
	if f == nil {
		return nil
	}
	return f.Glyph(c.GlyphID)
}

// topAttachmentOf returns a CharSymbol's top-accent attachment point,
// falling back to width/2 when the glyph declares none, or the given
// box's own width/2 if cs is not a CharSymbol.
func topAttachmentOf(e *env.Env, cs Atom, b box.Box) dimen.DU {
	sym, ok := cs.(CharSymbol)
	if !ok {
		return b.M().Width / 2
	}
	c := sym.GetChar(e)
	g := glyphOf(e, c)
	if g == nil || !g.HasTopAccentAttachment() {
		return b.M().Width / 2
	}
	return dimen.DU(float32(g.TopAccentAttachment) * c.Scale)
}

// padWithOffset places b at horizontal offset `lead` within a box of
// total width `width`, used to align two vertically-stacked boxes (base,
// accent) on a shared attachment point rather than on their left edges.
func padWithOffset(b box.Box, lead, width dimen.DU) box.Box {
	h := box.NewHorizontalBox()
	if lead > 0 {
		h.Append(box.NewGlueBox(lead))
	}
	h.Append(b)
	if trail := width - (lead + b.M().Width); trail > 0 {
		h.Append(box.NewGlueBox(trail))
	}
	return h
}

// charOf resolves an Atom's Char if it is a CharSymbol, or reports false.
func charOf(e *env.Env, a Atom) (fontctx.Char, bool) {
	sym, ok := a.(CharSymbol)
	if !ok {
		return fontctx.Char{}, false
	}
	return sym.GetChar(e), true
}

// ligatureSubst reports whether the active font substitutes a and b's
// adjacent glyphs with a single ligature glyph, returning the replacement
// Char. Only CharSymbol pairs resolving into the same font are considered.
func ligatureSubst(e *env.Env, a, b Atom) (fontctx.Char, bool) {
	ca, ok := charOf(e, a)
	if !ok {
		return fontctx.Char{}, false
	}
	cb, ok := charOf(e, b)
	if !ok || cb.FontID != ca.FontID {
		return fontctx.Char{}, false
	}
	f := e.FontContext().GetFont(ca.FontID)
	if f == nil {
		return fontctx.Char{}, false
	}
	gid, ok := f.Ligature([]otf.GlyphID{ca.GlyphID, cb.GlyphID})
	if !ok {
		return fontctx.Char{}, false
	}
	out := ca
	out.GlyphID = gid
	return out, true
}

// classKern returns the extra horizontal kern between two adjacent
// CharSymbol atoms sharing a font: the left glyph's own KernRecord entry
// against the right glyph if present, else the font's class-kerning
// fallback table, scaled to the current style.
func classKern(e *env.Env, left, right Atom) dimen.DU {
	cl, ok := charOf(e, left)
	if !ok {
		return 0
	}
	cr, ok := charOf(e, right)
	if !ok || cr.FontID != cl.FontID {
		return 0
	}
	f := e.FontContext().GetFont(cl.FontID)
	if f == nil {
		return 0
	}
	if gl := f.Glyph(cl.GlyphID); gl != nil {
		if k := gl.Kerns.Kern(cr.GlyphID); k != 0 {
			return dimen.DU(float32(k) * cl.Scale)
		}
	}
	if k := f.ClassKerning(uint16(cl.GlyphID), uint16(cr.GlyphID)); k != 0 {
		return dimen.DU(float32(k) * cl.Scale)
	}
	return 0
}
