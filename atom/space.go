package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/glue"
)

// SpaceAtom is a hard whitespace atom, either a named TeX skip
// (\thinspace, \quad, ...) or an explicit dimensioned box in any of the
// registered length units.
type SpaceAtom struct {
	base
	named       bool
	spaceType   glue.SpaceType
	width       float32
	height      float32
	depth       float32
	unit        dimen.Unit
}

// NewNamedSpaceAtom creates a space atom for one of the glue package's
// named skips.
func NewNamedSpaceAtom(st glue.SpaceType) *SpaceAtom {
	return &SpaceAtom{named: true, spaceType: st}
}

// NewDimensionedSpaceAtom creates an explicit {width, height, depth}
// space in the given unit, mirroring SpaceAtom(UnitType, w, h, d).
func NewDimensionedSpaceAtom(unit dimen.Unit, width, height, depth float32) *SpaceAtom {
	return &SpaceAtom{unit: unit, width: width, height: height, depth: depth}
}

// EmptySpaceAtom is a zero-width, zero-height space, mirroring
// SpaceAtom::empty().
func EmptySpaceAtom() *SpaceAtom { return NewDimensionedSpaceAtom(dimen.UnitEm, 0, 0, 0) }

func (a *SpaceAtom) CreateBox(e *env.Env) (box.Box, error) {
	if a.named {
		w := glue.GetSpaceSkip(a.spaceType, e)
		return box.NewGlueBox(w), nil
	}
	w := e.Fsize(a.unit, a.width)
	h := e.Fsize(a.unit, a.height)
	d := e.Fsize(a.unit, a.depth)
	if h == 0 && d == 0 {
		return box.NewGlueBox(w), nil
	}
	return box.NewStrutBox(w, h, d), nil
}
