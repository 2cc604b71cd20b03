package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
)

// StackElement names one of the three positions a StackAtom arranges.
// CreateBox always appends them top to bottom as over, base, under; the
// order slice a StackAtom stores is not consulted during lay-out.
type StackElement uint8

const (
	StackOver StackElement = iota
	StackUnder
	StackBase
)

var defaultStackOrder = []StackElement{StackOver, StackUnder, StackBase}

// StackArgs describes one optional over/under part of a StackAtom.
type StackArgs struct {
	Atom        Atom
	SpaceUnit   dimen.Unit
	Space       float32
	IsScript    bool
	IsAutoSpace bool
}

// Present reports whether this StackArgs carries an atom.
func (s StackArgs) Present() bool { return s.Atom != nil }

// AutoSpace creates a StackArgs whose kern is derived automatically from
// the MATH stretch-stack constants rather than an explicit dimension.
func AutoSpace(a Atom, isScript bool) StackArgs {
	return StackArgs{Atom: a, IsScript: isScript, IsAutoSpace: true}
}

// StackAtom positions optional over/under atoms relative to a base, with
// kerns governed by the MATH stretchStack/over/under gaps.
type StackAtom struct {
	base
	baseAtom   Atom
	over       StackArgs
	under      StackArgs
	order      []StackElement
	maxWidth   dimen.DU
}

// NewStackAtom creates a stack with a base and optional over/under parts.
func NewStackAtom(baseAtom Atom, over, under StackArgs) *StackAtom {
	return &StackAtom{baseAtom: baseAtom, over: over, under: under, order: defaultStackOrder}
}

func (a *StackAtom) LeftType() AtomType {
	if a.baseAtom == nil {
		return Ord
	}
	return a.baseAtom.LeftType()
}

func (a *StackAtom) RightType() AtomType {
	if a.baseAtom == nil {
		return Ord
	}
	return a.baseAtom.RightType()
}

// MaxWidth returns the width computed by the most recent CreateBox call,
// letting an ExtensibleAtom sibling (e.g. a stretched arrow) request an
// identical width on its own createBox pass: a two-pass lay-out
// replacing the source's back-pointer into the enclosing Stack.
func (a *StackAtom) MaxWidth() dimen.DU { return a.maxWidth }

// CreateBox lays out base, then over/under shifted by a kern derived
// either from an explicit dimension or from the MATH stretch-stack gap
// constants.
func (a *StackAtom) CreateBox(e *env.Env) (box.Box, error) {
	baseBox, err := a.baseAtom.CreateBox(e)
	if err != nil {
		return nil, err
	}
	width := baseBox.M().Width

	var overBox, underBox box.Box
	var overGap, underGap dimen.DU
	mf := e.FontContext().MathFont()
	var aboveMin, belowMin dimen.DU
	if mf != nil && mf.MathConsts() != nil {
		c := mf.MathConsts()
		s := e.CurrentScale()
		aboveMin = dimen.DU(float32(c.StretchStackGapAboveMin) * s)
		belowMin = dimen.DU(float32(c.StretchStackGapBelowMin) * s)
	}

	if a.over.Present() {
		if err := e.WithStyle(e.SupStyle(), func() error {
			var err error
			overBox, err = a.over.Atom.CreateBox(e)
			return err
		}); err != nil {
			return nil, err
		}
		if a.over.IsAutoSpace {
			overGap = aboveMin
		} else {
			overGap = e.Fsize(a.over.SpaceUnit, a.over.Space)
		}
		width = dimen.Max(width, overBox.M().Width)
	}
	if a.under.Present() {
		if err := e.WithStyle(e.SubStyle(), func() error {
			var err error
			underBox, err = a.under.Atom.CreateBox(e)
			return err
		}); err != nil {
			return nil, err
		}
		if a.under.IsAutoSpace {
			underGap = belowMin
		} else {
			underGap = e.Fsize(a.under.SpaceUnit, a.under.Space)
		}
		width = dimen.Max(width, underBox.M().Width)
	}
	a.maxWidth = width

	baseBox = padTo(baseBox, width, box.AlignCenter)
	if overBox != nil {
		overBox = padTo(overBox, width, box.AlignCenter)
	}
	if underBox != nil {
		underBox = padTo(underBox, width, box.AlignCenter)
	}

	height := baseBox.M().Height
	if overBox != nil {
		height += overGap + overBox.M().Height + overBox.M().Depth
	}
	v := box.NewVerticalBox()
	v.SetHeight(height)
	v.SetWidth(width)

	cy := dimen.DU(0)
	if overBox != nil {
		cy = overBox.M().Height
		v.Append(overBox, cy)
		cy += overBox.M().Depth + overGap
	}
	cy += baseBox.M().Height
	v.Append(baseBox, cy)
	if underBox != nil {
		cy += baseBox.M().Depth + underGap + underBox.M().Height
		v.Append(underBox, cy)
	}
	return v, nil
}
