// Package glue implements TeX's inter-atom spacing rules: a table indexed
// by the type of the two adjacent atoms (and the current style) selects
// one of a handful of named "skips", each a {space, stretch, shrink}
// triple in mu, grounded on the original's lib/core/glue.h.
package glue

import (
	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
)

func tracer() tracing.Trace {
	return tracing.Select("mtex.glue")
}

// AtomType classifies an atom for the purposes of the glue table; it
// mirrors TeX's eight math atom classes.
type AtomType uint8

const (
	Ord AtomType = iota
	Op
	Bin
	Rel
	Open
	Close
	Punct
	Inner
)

// SpaceType names an explicit TeX math-mode spacing command (\, \:, \;,
// \quad, \qquad, or the implicit none/thin/med/thick skips the glue table
// selects between adjacent atoms).
type SpaceType uint8

const (
	NoneSkip SpaceType = iota
	ThinSkip
	MedSkip
	ThickSkip
	NegThinSkip
	NegMedSkip
	NegThickSkip
	Quad
	Qquad
)

// Box is the {space, stretch, shrink} triple a Get call returns, already
// converted to font design units at the caller's Env.
type Box struct {
	Space, Stretch, Shrink dimen.DU
}

// IsZero reports whether this is a no-op glue (no space component, no
// elasticity).
func (b Box) IsZero() bool { return b.Space == 0 && b.Stretch == 0 && b.Shrink == 0 }

// muValues are the nine TeX skip magnitudes in mu, shared by all callers of
// a given SpaceType: {space, stretch, shrink}. thin/med/thick carry
// nonzero stretch/shrink only in display/text style; script/scriptScript
// rows collapse most of them to NoneSkip, which the table below encodes
// directly rather than re-deriving per style.
var muValues = map[SpaceType][3]int16{
	NoneSkip:     {0, 0, 0},
	ThinSkip:     {3, 0, 0},
	MedSkip:      {4, 2, 4},
	ThickSkip:    {5, 5, 0},
	NegThinSkip:  {-3, 0, 0},
	NegMedSkip:   {-4, -2, -4},
	NegThickSkip: {-5, -5, 0},
	Quad:         {18, 0, 0},
	Qquad:        {36, 0, 0},
}

// styleCategory buckets an Env's TexStyle into the three rows the glue
// table distinguishes: most entries that are nonzero in display/text
// collapse to NoneSkip in script and scriptScript.
type styleCategory uint8

const (
	catDisplayText styleCategory = iota
	catScript
	catScriptScript
)

func categoryOf(style env.TexStyle) styleCategory {
	switch {
	case style < env.Script:
		return catDisplayText
	case style < env.ScriptScript:
		return catScript
	default:
		return catScriptScript
	}
}

// table[left][right] gives the SpaceType for display/text style. Script
// style demotes every nonzero entry to NoneSkip except Bin or Rel next
// to Ord, which narrow to ThinSkip (see narrowedInScript); scriptScript
// style demotes every entry to NoneSkip. This mirrors the classic TeX Appendix G
// inter-atom spacing matrix.
var table = [8][8]SpaceType{
	/*           Ord          Op           Bin          Rel          Open         Close        Punct        Inner      */
	/*Ord  */ {NoneSkip, ThinSkip, MedSkip, ThickSkip, NoneSkip, NoneSkip, NoneSkip, ThinSkip},
	/*Op   */ {ThinSkip, ThinSkip, NoneSkip, ThickSkip, NoneSkip, NoneSkip, NoneSkip, ThinSkip},
	/*Bin  */ {MedSkip, MedSkip, NoneSkip, NoneSkip, MedSkip, NoneSkip, NoneSkip, MedSkip},
	/*Rel  */ {ThickSkip, ThickSkip, NoneSkip, NoneSkip, ThickSkip, NoneSkip, NoneSkip, ThickSkip},
	/*Open */ {NoneSkip, NoneSkip, NoneSkip, NoneSkip, NoneSkip, NoneSkip, NoneSkip, NoneSkip},
	/*Close*/ {NoneSkip, ThinSkip, MedSkip, ThickSkip, NoneSkip, NoneSkip, NoneSkip, ThinSkip},
	/*Punct*/ {ThinSkip, ThinSkip, NoneSkip, ThinSkip, ThinSkip, ThinSkip, ThinSkip, ThinSkip},
	/*Inner*/ {ThinSkip, ThinSkip, MedSkip, ThickSkip, ThinSkip, NoneSkip, ThinSkip, ThinSkip},
}

// narrowedInScript holds the handful of (left,right) pairs whose
// display/text spacing survives, narrowed, into script style rather than
// collapsing to NoneSkip outright; everything else does collapse.
var narrowedInScript = map[[2]AtomType]SpaceType{
	{Bin, Ord}: ThinSkip,
	{Ord, Bin}: ThinSkip,
	{Rel, Ord}: ThinSkip,
	{Ord, Rel}: ThinSkip,
}

func lookup(ltype, rtype AtomType, cat styleCategory) SpaceType {
	base := table[ltype][rtype]
	if cat == catDisplayText || base == NoneSkip {
		return base
	}
	if narrowed, ok := narrowedInScript[[2]AtomType{ltype, rtype}]; ok && cat == catScript {
		return narrowed
	}
	return NoneSkip
}

// Get returns the glue to insert between two adjacent atoms of the given
// types, scaled to e's current style and mu.
func Get(ltype, rtype AtomType, e *env.Env) Box {
	st := lookup(ltype, rtype, categoryOf(e.Style()))
	return GetSkip(st, e)
}

// GetSkip returns the glue box for an explicit SpaceType.
func GetSkip(st SpaceType, e *env.Env) Box {
	mu, ok := muValues[st]
	if !ok {
		tracer().Errorf("glue: unknown space type %v", st)
		return Box{}
	}
	oneMu := dimen.DU(e.Em()) / 18
	return Box{
		Space:   oneMu * dimen.DU(mu[0]),
		Stretch: oneMu * dimen.DU(mu[1]),
		Shrink:  oneMu * dimen.DU(mu[2]),
	}
}

// GetSpaceAtomTypes returns just the space component, matching the
// original's Glue::getSpace(AtomType,AtomType,Env) convenience overload.
func GetSpaceAtomTypes(ltype, rtype AtomType, e *env.Env) dimen.DU {
	return Get(ltype, rtype, e).Space
}

// GetSpaceSkip mirrors Glue::getSpace(SpaceType,Env).
func GetSpaceSkip(st SpaceType, e *env.Env) dimen.DU {
	return GetSkip(st, e).Space
}
