package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
)

// OperatorAtom is a "big operator" (or an atom acting as one) together
// with its under/over limits. Its own edges and limits preference
// forward to base, matching OperatorAtom::leftType/rightType and the
// constructor's `_limitsType = _base->_limitsType`.
type OperatorAtom struct {
	opBase      Atom
	under, over Atom
}

// NewOperatorAtom creates an operator with optional under/over limit
// atoms (either may be nil).
func NewOperatorAtom(opBase, under, over Atom) *OperatorAtom {
	return &OperatorAtom{opBase: opBase, under: under, over: over}
}

func (a *OperatorAtom) LeftType() AtomType  { return a.opBase.LeftType() }
func (a *OperatorAtom) RightType() AtomType { return a.opBase.RightType() }
func (a *OperatorAtom) Limits() LimitsType  { return a.opBase.Limits() }

// CreateBox uses Stack semantics with the MATH limit-gap constants when
// limits should be stacked (limits==display, or limits==normal and the
// current style is display); otherwise falls back to ordinary
// subscript/superscript placement via ScriptsAtom.
func (a *OperatorAtom) CreateBox(e *env.Env) (box.Box, error) {
	useStack := a.Limits() == LimitsDisplay || (a.Limits() == LimitsNormal && e.Style() < env.Text)
	if !useStack {
		sc := NewScriptsAtom(a.opBase, a.over, a.under)
		return sc.CreateBox(e)
	}

	baseBox, err := a.opBase.CreateBox(e)
	if err != nil {
		return nil, err
	}
	width := baseBox.M().Width

	var overBox, underBox box.Box
	mf := e.FontContext().MathFont()
	var upperGapMin, upperRiseMin, lowerGapMin, lowerDropMin dimen.DU
	if mf != nil && mf.MathConsts() != nil {
		c := mf.MathConsts()
		s := e.CurrentScale()
		upperGapMin = dimen.DU(float32(c.UpperLimitGapMin) * s)
		upperRiseMin = dimen.DU(float32(c.UpperLimitBaselineRiseMin) * s)
		lowerGapMin = dimen.DU(float32(c.LowerLimitGapMin) * s)
		lowerDropMin = dimen.DU(float32(c.LowerLimitBaselineDropMin) * s)
	}

	var overGap, underGap dimen.DU
	if a.over != nil {
		if err := e.WithStyle(e.SupStyle(), func() error {
			var err error
			overBox, err = a.over.CreateBox(e)
			return err
		}); err != nil {
			return nil, err
		}
		overGap = dimen.Max(upperGapMin, upperRiseMin-baseBox.M().Height)
		width = dimen.Max(width, overBox.M().Width)
	}
	if a.under != nil {
		if err := e.WithStyle(e.SubStyle(), func() error {
			var err error
			underBox, err = a.under.CreateBox(e)
			return err
		}); err != nil {
			return nil, err
		}
		underGap = dimen.Max(lowerGapMin, lowerDropMin-baseBox.M().Depth)
		width = dimen.Max(width, underBox.M().Width)
	}

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
