package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/otf"
)

// ScriptsAtom attaches an optional superscript and/or subscript to a base
// atom. NewScriptsAtomChecked rejects a *BreakMarkAtom base; a break has
// no glyph for a script to attach to.
type ScriptsAtom struct {
	scriptsBase   Atom
	sup, sub Atom
}

// NewScriptsAtom attaches sup/sub (either may be nil) to scriptsBase.
func NewScriptsAtom(scriptsBase, sup, sub Atom) *ScriptsAtom {
	return &ScriptsAtom{scriptsBase: scriptsBase, sup: sup, sub: sub}
}

// NewScriptsAtomChecked is NewScriptsAtom but returns
// ErrScriptsOnBreakMark when scriptsBase is a BreakMarkAtom.
func NewScriptsAtomChecked(scriptsBase, sup, sub Atom) (*ScriptsAtom, error) {
	if _, isBreak := scriptsBase.(*BreakMarkAtom); isBreak {
		return nil, ErrScriptsOnBreakMark
	}
	return NewScriptsAtom(scriptsBase, sup, sub), nil
}

func (a *ScriptsAtom) LeftType() AtomType  { return a.scriptsBase.LeftType() }
func (a *ScriptsAtom) RightType() AtomType { return Ord }
func (a *ScriptsAtom) Limits() LimitsType  { return LimitsNormal }

func baseGlyph(e *env.Env, a Atom) *otf.Glyph {
	cs, ok := a.(CharSymbol)
	if !ok {
		return nil
	}
	return glyphOf(e, cs.GetChar(e))
}

// scriptKern looks up the four-corner MathKern correction for a script
// attached to base: the base glyph's own corner plus the script glyph's
// opposing corner, both queried at the same nominal height. It returns 0
// unless both glyphs carry MATH data, in which case the lookup degrades
// to the table's default of 0 for either corner that has no kern record.
func scriptKern(e *env.Env, baseG, scriptG *otf.Glyph, baseCorner, scriptCorner otf.MathKernCorner, shift dimen.DU) dimen.DU {
	if baseG == nil || baseG.Math == nil || scriptG == nil || scriptG.Math == nil {
		return 0
	}
	scale := e.CurrentScale()
	if scale == 0 {
		return 0
	}
	height := int32(shift / dimen.DU(scale))
	k := baseG.Math.Kerns.Corner(baseCorner).At(height) + scriptG.Math.Kerns.Corner(scriptCorner).At(height)
	return dimen.DU(float32(k) * scale)
}

// CreateBox places the superscript/subscript using the MATH table's
// superscript/subscriptShiftUp/Down constants, corrected by
// superscriptBaselineDropMax, the base's italic correction, and the
// four-corner MathKern nudge between base and script glyph where both
// carry kern data. A present sup+sub pair has its gap widened to at
// least subSuperscriptGapMin.
func (a *ScriptsAtom) CreateBox(e *env.Env) (box.Box, error) {
	baseBox, err := a.scriptsBase.CreateBox(e)
	if err != nil {
		return nil, err
	}
	if a.sup == nil && a.sub == nil {
		return baseBox, nil
	}

	mf := e.FontContext().MathFont()
	var mc struct {
		supShiftUp, supShiftUpCramped, supDropMax    dimen.DU
		subShiftDown, subDropMin, gapMin, bottomMin  dimen.DU
		spaceAfter                                   dimen.DU
	}
	if mf != nil && mf.MathConsts() != nil {
		c := mf.MathConsts()
		s := e.CurrentScale()
		mc.supShiftUp = dimen.DU(float32(c.SuperscriptShiftUp) * s)
		mc.supShiftUpCramped = dimen.DU(float32(c.SuperscriptShiftUpCramped) * s)
		mc.supDropMax = dimen.DU(float32(c.SuperscriptBaselineDropMax) * s)
		mc.subShiftDown = dimen.DU(float32(c.SubscriptShiftDown) * s)
		mc.subDropMin = dimen.DU(float32(c.SubscriptBaselineDropMin) * s)
		mc.gapMin = dimen.DU(float32(c.SubSuperscriptGapMin) * s)
		mc.bottomMin = dimen.DU(float32(c.SuperscriptBottomMinWithSub) * s)
		mc.spaceAfter = dimen.DU(float32(c.SpaceAfterScript) * s)
	}

	baseG := baseGlyph(e, a.scriptsBase)
	var italic dimen.DU
	if baseG != nil {
		italic = dimen.DU(float32(baseG.Italic) * e.CurrentScale())
	}

	h := box.NewHorizontalBox()
	h.Append(baseBox)

	var supBox, subBox box.Box
	if a.sup != nil {
		if err := e.WithStyle(e.SupStyle(), func() error {
			var err error
			supBox, err = a.sup.CreateBox(e)
			return err
		}); err != nil {
			return nil, err
		}
	}
	if a.sub != nil {
		if err := e.WithStyle(e.SubStyle(), func() error {
			var err error
			subBox, err = a.sub.CreateBox(e)
			return err
		}); err != nil {
			return nil, err
		}
	}

	shiftUp := mc.supShiftUp
	if e.Style().Cramped() {
		shiftUp = mc.supShiftUpCramped
	}
	shiftDown := mc.subShiftDown
	if supBox != nil {
		shiftUp = dimen.Max(shiftUp, baseBox.M().Height-mc.supDropMax)
	}
	if subBox != nil {
		shiftDown = dimen.Max(shiftDown, baseBox.M().Depth+mc.subDropMin)
	}
	if supBox != nil && subBox != nil {
		gap := (shiftUp - supBox.M().Depth) - (subBox.M().Height - shiftDown)
		if need := mc.gapMin - gap; need > 0 {
			half := need / 2
			shiftUp += half
			shiftDown += need - half
		}
		if need := mc.bottomMin - (shiftUp - supBox.M().Depth); need > 0 {
			shiftUp += need
		}
	}

	base := italic
	if base < 0 {
		base = 0
	}

	switch {
	case supBox != nil && subBox != nil:
		width := dimen.Max(supBox.M().Width, subBox.M().Width)
		height := shiftUp + supBox.M().Height
		v := box.NewVerticalBox()
		v.SetHeight(height)
		v.SetWidth(width)
		v.Append(supBox, supBox.M().Height)
		v.Append(subBox, shiftUp+shiftDown-subBox.M().Depth)
		scriptX := base + scriptKern(e, baseG, baseGlyph(e, a.sup), otf.TopRight, otf.BottomLeft, shiftUp)
		if scriptX > 0 {
			h.Append(box.NewGlueBox(scriptX))
		}
		h.Append(v)
	case supBox != nil:
		scriptX := base + scriptKern(e, baseG, baseGlyph(e, a.sup), otf.TopRight, otf.BottomLeft, shiftUp)
		sb := box.NewDecoratorBox(supBox)
		sb.SetShift(-shiftUp)
		if scriptX > 0 {
			h.Append(box.NewGlueBox(scriptX))
		}
		h.Append(sb)
	case subBox != nil:
		scriptX := base + scriptKern(e, baseG, baseGlyph(e, a.sub), otf.BottomRight, otf.TopLeft, shiftDown)
		sb := box.NewDecoratorBox(subBox)
		sb.SetShift(shiftDown)
		if scriptX > 0 {
			h.Append(box.NewGlueBox(scriptX))
		}
		h.Append(sb)
	}
	if mc.spaceAfter > 0 {
		h.Append(box.NewGlueBox(mc.spaceAfter))
	}
	return h, nil
}
