package atom

import (
	"fmt"

	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/core/otf"
)

// ExtensibleAtom stretches a named symbol (a delimiter, radical sign, or
// brace) to at least a required size, choosing the smallest large
// variant that suffices or, failing that, building a glyph assembly from
// start/extender/end parts. requiredSize is evaluated against the env
// snapshot at createBox time; for a Stack sibling this closure typically
// reads back that sibling's StackAtom.MaxWidth, a two-pass lay-out
// replacing the source's back-pointer into the enclosing Stack.
type ExtensibleAtom struct {
	base
	symbolName    string
	horizontal    bool
	requiredSize  func(e *env.Env) dimen.DU
}

// NewExtensibleAtom resolves symbolName against the symbol table at
// construction time; any missing named symbol raises ErrSymbolNotFound
// rather than failing later at lay-out.
func NewExtensibleAtom(symbolName string, horizontal bool, requiredSize func(e *env.Env) dimen.DU) (*ExtensibleAtom, error) {
	if _, ok := LookupSymbol(symbolName); !ok {
		return nil, fmt.Errorf("%w: %q", ErrSymbolNotFound, symbolName)
	}
	return &ExtensibleAtom{symbolName: symbolName, horizontal: horizontal, requiredSize: requiredSize}, nil
}

// CreateBox picks a variant whose advance covers the required size, or
// else assembles one from the glyph's assembly recipe, repeating
// extender parts and overlapping consecutive parts by the largest common
// connector value both sides tolerate.
func (a *ExtensibleAtom) CreateBox(e *env.Env) (box.Box, error) {
	sym, _ := LookupSymbol(a.symbolName)
	c := e.GetSymbolChar(sym.Unicode)
	g := glyphOf(e, c)
	if g == nil {
		return charBoxFor(e, c), nil
	}
	required := int16(a.requiredSize(e) / dimen.DU(c.Scale))

	if g.Math != nil {
		variants := g.Math.HorizontalVariants
		assembly := g.Math.HorizontalAssembly
		if !a.horizontal {
			variants = g.Math.VerticalVariants
			assembly = g.Math.VerticalAssembly
		}
		if v, ok := variants.Smallest(required); ok && (v.Advance >= required || len(assembly.Parts) == 0) {
			vc := c
			vc.GlyphID = v.Glyph
			return charBoxFor(e, vc), nil
		}
		if parts := assembly.Parts; len(parts) > 0 {
			return assembleBox(e, parts, a.requiredSize(e), c), nil
		}
	}
	return charBoxFor(e, c), nil
}

// assembleBox lays out an assembly recipe, repeating its (sole) extender
// part enough times to reach required, and overlapping consecutive parts
// by min(leftEndConnector, rightStartConnector) scaled.
func assembleBox(e *env.Env, parts []otf.AssemblyPart, required dimen.DU, c fontctx.Char) box.Box {
	scale := dimen.DU(c.Scale)
	var fixedAdvance dimen.DU
	var extenderIdx = -1
	for i, p := range parts {
		if p.IsExtender() {
			if extenderIdx < 0 {
				extenderIdx = i
			}
			continue
		}
		// a part loses at most its start connector to the overlap before it
		fixedAdvance += dimen.DU(p.FullAdvance-p.StartConnector) * scale
	}
	repeats := 0
	if extenderIdx >= 0 {
		ext := parts[extenderIdx]
		extAdv := dimen.DU(ext.FullAdvance-ext.StartConnector) * scale
		if extAdv > 0 {
			if need := required - fixedAdvance; need > 0 {
				repeats = int(need/extAdv) + 1
			}
		}
	}

	h := box.NewHorizontalBox()
	var prevEnd int16
	emit := func(p otf.AssemblyPart, first bool) {
		pc := c
		pc.GlyphID = p.Glyph
		pb := charBoxFor(e, pc)
		if !first {
			overlap := dimen.DU(minI16(prevEnd, p.StartConnector)) * scale
			if overlap > 0 {
				h.Append(box.NewGlueBox(-overlap))
			}
		}
		h.Append(pb)
		prevEnd = p.EndConnector
	}

	first := true
	for i, p := range parts {
		if p.IsExtender() && i == extenderIdx {
			for r := 0; r < repeats; r++ {
				emit(p, first)
				first = false
			}
			continue
		}
		if p.IsExtender() {
			continue // additional extender slots collapse to the single repeated one above
		}
		emit(p, first)
		first = false
	}
	return h
}

func minI16(a, b int16) int16 {
	if a < b {
		return a
	}
	return b
}
