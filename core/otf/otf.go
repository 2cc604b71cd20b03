/*
Package otf implements the compact binary font-metric data model consumed
by the typesetting engine. Fonts are not parsed from
raw OpenType: they are loaded from a precompiled ".clm" blob produced by an
offline tool, carrying exactly the subset of OpenType MATH / kerning data
the engine needs.

The byte-reading style is adapted from the teacher's
core/font/ot/bytes.go (in-memory font segments, no io.ReaderAt), and the
table/record shapes are grounded on MicroTeX's lib/otf/{otf,glyph}.cpp and
lib/otf/clm.h (see original_source/).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package otf

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'mtex.otf'
func tracer() tracing.Trace {
	return tracing.Select("mtex.otf")
}

// GlyphID indexes Font.glyphs. -1 means "no glyph".
type GlyphID int32

// NoGlyph is the sentinel glyph id returned when a codepoint has no mapping.
const NoGlyph GlyphID = -1

// ---------------------------------------------------------------------------

// KernRecord holds per-adjacent-glyph kerning adjustments for one glyph,
// sorted ascending by the adjacent glyph id (mirrors glyph.cpp's
// KernRecord::operator[]).
type KernRecord struct {
	glyphIDs []uint16
	kerns    []int16
}

// emptyKernRecord is the shared sentinel for glyphs with no kern entries,
// mirroring the source's single static KernRecord::empty instance.
var emptyKernRecord = &KernRecord{}

// Kern returns the kerning adjustment against an adjacent glyph, or 0 if
// there is no entry for it.
func (k *KernRecord) Kern(adjacent GlyphID) int16 {
	if k == nil || len(k.glyphIDs) == 0 {
		return 0
	}
	i := binIndexOf(len(k.glyphIDs), func(i int) int {
		return int(adjacent) - int(k.glyphIDs[i])
	}, false)
	if i < 0 {
		return 0
	}
	return k.kerns[i]
}

// ---------------------------------------------------------------------------

// Variant is one alternate in an ordered list of progressively larger glyphs
// usable to build an extensible character.
type Variant struct {
	Glyph   GlyphID
	Advance int16
}

// Variants is an ordered list of increasingly large alternates for a glyph.
type Variants struct {
	list []Variant
}

var emptyVariants = &Variants{}

// List returns the ordered variant list, largest last.
func (v *Variants) List() []Variant {
	if v == nil {
		return nil
	}
	return v.list
}

// Smallest returns the first variant whose Advance is >= required, or the
// largest variant if none suffices.
func (v *Variants) Smallest(required int16) (Variant, bool) {
	if v == nil || len(v.list) == 0 {
		return Variant{}, false
	}
	for _, vi := range v.list {
		if vi.Advance >= required {
			return vi, true
		}
	}
	return v.list[len(v.list)-1], true
}

// ---------------------------------------------------------------------------

// AssemblyPartFlag marks special behaviour for an assembly part.
type AssemblyPartFlag uint8

// Extender marks an assembly part that may be repeated to fill space.
const Extender AssemblyPartFlag = 1 << 0

// AssemblyPart is one piece of a glyph-assembly recipe.
type AssemblyPart struct {
	Glyph          GlyphID
	StartConnector int16
	EndConnector   int16
	FullAdvance    int16
	Flags          AssemblyPartFlag
}

// IsExtender reports whether this part may be repeated.
func (p AssemblyPart) IsExtender() bool { return p.Flags&Extender != 0 }

// GlyphAssembly is a start/extender(s)/middle/end recipe for building an
// arbitrarily large extensible glyph.
type GlyphAssembly struct {
	Parts             []AssemblyPart
	ItalicsCorrection int16
}

var emptyAssembly = &GlyphAssembly{}

// ---------------------------------------------------------------------------

// MathKern is a sorted (by height) list of correction values used for the
// four-corner kerning of scripts against their base glyph. Lookup returns
// the record whose height is the greatest one <= the query height,
// preserving the "closest predecessor" semantics of
// glyph.cpp's MathKern::indexOf.
type MathKern struct {
	heights []int32
	kerns   []int16
}

var emptyMathKern = &MathKern{}

// At returns the kern value for a given query height.
func (mk *MathKern) At(height int32) int16 {
	if mk == nil || len(mk.heights) == 0 {
		return 0
	}
	i := binIndexOf(len(mk.heights), func(i int) int {
		return int(height - mk.heights[i])
	}, true)
	if i < 0 {
		return mk.kerns[0]
	}
	return mk.kerns[i]
}

// MathKernCorner identifies one of the four corners of a glyph's bounding
// box for MathKern lookup.
type MathKernCorner uint8

// The four corners, matching OpenType MATH MathKernInfoRecord order.
const (
	TopRight MathKernCorner = iota
	TopLeft
	BottomRight
	BottomLeft
)

// MathKernRecord bundles the four corner MathKerns for a single glyph.
type MathKernRecord struct {
	corners [4]*MathKern
}

var emptyMathKernRecord = &MathKernRecord{corners: [4]*MathKern{emptyMathKern, emptyMathKern, emptyMathKern, emptyMathKern}}

// Corner returns the MathKern table for one corner; never nil.
func (r *MathKernRecord) Corner(c MathKernCorner) *MathKern {
	if r == nil || r.corners[c] == nil {
		return emptyMathKern
	}
	return r.corners[c]
}

// ---------------------------------------------------------------------------

// Math is the MATH-table sub-record of a glyph: its variant lists,
// assembly recipes and four-corner kerning.
type Math struct {
	HorizontalVariants *Variants
	VerticalVariants   *Variants
	HorizontalAssembly *GlyphAssembly
	VerticalAssembly   *GlyphAssembly
	Kerns              *MathKernRecord
}

var emptyMath = &Math{
	HorizontalVariants: emptyVariants,
	VerticalVariants:   emptyVariants,
	HorizontalAssembly: emptyAssembly,
	VerticalAssembly:   emptyAssembly,
	Kerns:              emptyMathKernRecord,
}

// ---------------------------------------------------------------------------

// Glyph is an immutable glyph metrics record.
type Glyph struct {
	Width               int16
	Height              int16
	Depth               int16
	Italic              int16
	TopAccentAttachment int16
	Kerns               *KernRecord
	Math                *Math // nil iff the font is not a math font
	Path                []byte
}

// HasTopAccentAttachment reports whether this glyph declares an explicit
// top-accent attachment point (as opposed to falling back to width/2).
func (g *Glyph) HasTopAccentAttachment() bool {
	return g != nil && g.Math != nil && g.TopAccentAttachment != 0
}

// ---------------------------------------------------------------------------

// MathConsts mirrors the scalar parameters of the OpenType MATH table.
// Values are in font design units except the two percentage fields.
type MathConsts struct {
	ScriptPercentScaleDown       int16
	ScriptScriptPercentScaleDown int16

	AxisHeight            int16
	AccentBaseHeight      int16
	RadicalRuleThickness  int16
	FractionRuleThickness int16

	SuperscriptShiftUp           int16
	SuperscriptShiftUpCramped    int16
	SuperscriptBaselineDropMax   int16
	SubscriptShiftDown           int16
	SubscriptBaselineDropMin     int16
	SubSuperscriptGapMin         int16
	SuperscriptBottomMinWithSub  int16
	SpaceAfterScript             int16

	UpperLimitGapMin            int16
	UpperLimitBaselineRiseMin   int16
	LowerLimitGapMin            int16
	LowerLimitBaselineDropMin   int16

	StretchStackGapAboveMin int16
	StretchStackGapBelowMin int16

	FractionNumeratorDisplayStyleShiftUp     int16
	FractionNumeratorShiftUp                 int16
	FractionNumeratorGapMin                  int16
	FractionNumeratorDisplayStyleGapMin      int16
	FractionDenominatorDisplayStyleShiftDown int16
	FractionDenominatorShiftDown             int16
	FractionDenominatorGapMin                int16
	FractionDenominatorDisplayStyleGapMin    int16

	OverbarVerticalGap     int16
	OverbarRuleThickness   int16
	OverbarExtraAscender   int16
	UnderbarVerticalGap    int16
	UnderbarRuleThickness  int16
	UnderbarExtraDescender int16

	RadicalVerticalGap            int16
	RadicalDisplayStyleVerticalGap int16
	RadicalExtraAscender          int16
	RadicalKernBeforeDegree       int16
	RadicalKernAfterDegree        int16
	RadicalDegreeBottomRaisePercent int16

	DelimitedSubFormulaMinHeight  int16
	DelimiterDisplayStyleShortfall int16
}

// ---------------------------------------------------------------------------

// ClassKerning is a fallback kern table indexed not by individual glyph ids
// but by two glyph-classes (left class, right class), used when a glyph
// pair has no direct KernRecord entry (mirrors otf.cpp's ClassKerning).
type ClassKerning struct {
	leftClassOf  map[uint16]int
	rightClassOf map[uint16]int
	table        [][]int16
}

// Lookup returns the class-kerning value for a glyph pair, and whether an
// entry was found.
func (ck *ClassKerning) Lookup(left, right uint16) (int16, bool) {
	if ck == nil {
		return 0, false
	}
	li, ok := ck.leftClassOf[left]
	if !ok {
		return 0, false
	}
	ri, ok := ck.rightClassOf[right]
	if !ok {
		return 0, false
	}
	if li >= len(ck.table) || ri >= len(ck.table[li]) {
		return 0, false
	}
	return ck.table[li][ri], true
}

// ---------------------------------------------------------------------------

// Font is an immutable, loaded .clm font.
type Font struct {
	Name string

	em      int16
	xHeight int16
	ascent  int16
	descent int16

	isMathFont   bool
	hasGlyphPath bool

	unicodes   []uint32 // strictly ascending
	glyphOfCP  []GlyphID

	glyphs []*Glyph

	ligatures *ligatureTable

	classKernings []*ClassKerning

	mathConsts *MathConsts
}

// Em returns the font's units-per-em.
func (f *Font) Em() int16 { return f.em }

// XHeight returns the font's x-height in design units.
func (f *Font) XHeight() int16 { return f.xHeight }

// IsMathFont reports whether this font carries a MATH table.
func (f *Font) IsMathFont() bool { return f.isMathFont }

// MathConsts returns the font's MATH constants, or nil if not a math font.
func (f *Font) MathConsts() *MathConsts { return f.mathConsts }

// GlyphCount returns the number of glyphs in the font.
func (f *Font) GlyphCount() int { return len(f.glyphs) }

// GlyphID returns the glyph id mapped to a codepoint, or NoGlyph if there is
// none.
func (f *Font) GlyphID(codepoint rune) GlyphID {
	i := binIndexOf(len(f.unicodes), func(i int) int {
		return int(uint32(codepoint)) - int(f.unicodes[i])
	}, false)
	if i < 0 {
		return NoGlyph
	}
	return f.glyphOfCP[i]
}

// Glyph returns the glyph for a glyph id, or nil if id is out of range.
func (f *Font) Glyph(id GlyphID) *Glyph {
	if id < 0 || int(id) >= len(f.glyphs) {
		return nil
	}
	return f.glyphs[id]
}

// GlyphOfRune resolves a codepoint directly to its Glyph, or nil.
func (f *Font) GlyphOfRune(codepoint rune) *Glyph {
	return f.Glyph(f.GlyphID(codepoint))
}

// Space returns the font's space-glyph width, falling back to em/3 if the
// font has no glyph for U+0020.
func (f *Font) Space() int16 {
	if g := f.GlyphOfRune(' '); g != nil {
		return g.Width
	}
	return f.em / 3
}

// ClassKerning looks up the class-kerning fallback across all registered
// class-kerning tables, returning the first match (mirrors otf.cpp's
// Otf::classKerning).
func (f *Font) ClassKerning(left, right uint16) int16 {
	for _, ck := range f.classKernings {
		if v, ok := ck.Lookup(left, right); ok {
			return v
		}
	}
	return 0
}

// Ligature looks up a ligature substitution for a sequence of glyph ids,
// returning the replacement glyph id and whether one was found.
func (f *Font) Ligature(seq []GlyphID) (GlyphID, bool) {
	return f.ligatures.lookup(seq)
}

// ---------------------------------------------------------------------------

// Sentinel error kinds.
var (
	ErrEOF               = errors.New("otf: unexpected end of buffer")
	ErrUnsupportedFormat = errors.New("otf: unsupported .clm format version")
	ErrCorruptFont       = errors.New("otf: corrupt font data")
)
