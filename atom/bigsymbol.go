package atom

import (
	"fmt"

	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/env"
)

// BigSymbolAtom is a named symbol (typically a large operator such as
// \sum or \int) rendered at a larger vertical glyph variant, stepping
// through the glyph's own vertical size variants rather than scaling the
// glyph. Step 0 is the symbol's plain glyph; each further step picks the
// next larger variant, clamped to the largest available.
type BigSymbolAtom struct {
	base
	symbolName string
	sizeStep   int
}

// NewBigSymbolAtom resolves symbolName at construction time; any
// missing named symbol raises ErrSymbolNotFound rather than failing
// later at lay-out.
func NewBigSymbolAtom(symbolName string, sizeStep int) (*BigSymbolAtom, error) {
	if _, ok := LookupSymbol(symbolName); !ok {
		return nil, fmt.Errorf("%w: %q", ErrSymbolNotFound, symbolName)
	}
	return &BigSymbolAtom{symbolName: symbolName, sizeStep: sizeStep}, nil
}

func (a *BigSymbolAtom) LeftType() AtomType  { return Op }
func (a *BigSymbolAtom) RightType() AtomType { return Op }
func (a *BigSymbolAtom) Limits() LimitsType  { return LimitsNormal }

// CreateBox walks the glyph's vertical variant list sizeStep entries in
// from the smallest (its own plain glyph), stopping at the largest if
// sizeStep overruns the list.
func (a *BigSymbolAtom) CreateBox(e *env.Env) (box.Box, error) {
	sym, _ := LookupSymbol(a.symbolName)
	c := e.GetSymbolChar(sym.Unicode)
	g := glyphOf(e, c)
	if g == nil || g.Math == nil || a.sizeStep <= 0 {
		return charBoxFor(e, c), nil
	}
	variants := g.Math.VerticalVariants.List()
	if len(variants) == 0 {
		return charBoxFor(e, c), nil
	}
	idx := a.sizeStep
	if idx >= len(variants) {
		idx = len(variants) - 1
	}
	vc := c
	vc.GlyphID = variants[idx].Glyph
	return charBoxFor(e, vc), nil
}
