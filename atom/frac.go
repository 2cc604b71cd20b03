package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
)

// FracAtom is a fraction: numerator over denominator, optionally
// separated by a rule. Its own edges are always inner, matching
// FracAtom::leftType/rightType.
type FracAtom struct {
	base
	num, dnom         Atom
	rule              bool
	thickness         dimen.DU // 0 means "use MathConsts.FractionRuleThickness"
	numAlign, dnomAlign box.Alignment
}

// NewFracAtom creates a ruled fraction with an optional explicit rule
// thickness (0 defers to the math font's own FractionRuleThickness).
func NewFracAtom(num, dnom Atom, rule bool, thickness dimen.DU) *FracAtom {
	return &FracAtom{
		base:      base{atomType: Inner},
		num:       num,
		dnom:      dnom,
		rule:      rule,
		thickness: thickness,
		numAlign:  box.AlignCenter,
		dnomAlign: box.AlignCenter,
	}
}

// NewFracAtomAligned creates a ruled fraction with explicit per-part
// alignment (left/right/center), mirroring the source's second
// constructor overload.
func NewFracAtomAligned(num, dnom Atom, numAlign, dnomAlign box.Alignment) *FracAtom {
	f := NewFracAtom(num, dnom, true, 0)
	f.numAlign, f.dnomAlign = checkAlign(numAlign), checkAlign(dnomAlign)
	return f
}

func checkAlign(a box.Alignment) box.Alignment {
	if a == box.AlignLeft || a == box.AlignRight {
		return a
	}
	return box.AlignCenter
}

// padTo wraps b in a width-`width` HorizontalBox, positioning it per
// align; center pads both sides, left/right pads only the trailing or
// leading side.
func padTo(b box.Box, width dimen.DU, align box.Alignment) box.Box {
	extra := width - b.M().Width
	if extra <= 0 {
		return b
	}
	h := box.NewHorizontalBox()
	switch align {
	case box.AlignLeft:
		h.Append(b)
		h.Append(box.NewGlueBox(extra))
	case box.AlignRight:
		h.Append(box.NewGlueBox(extra))
		h.Append(b)
	default:
		h.Append(box.NewGlueBox(extra / 2))
		h.Append(b)
		h.Append(box.NewGlueBox(extra - extra/2))
	}
	return h
}

// CreateBox lays out the numerator in numStyle and the denominator in
// dnomStyle, applies the MATH-constants gaps (display vs text variants),
// and centers the rule on the axis. The numerator/denominator shift
// formulas follow TeX's classic fraction algorithm: each side's shift is
// widened, never narrowed, to keep at least the MATH table's minimum gap
// against the rule.
func (a *FracAtom) CreateBox(e *env.Env) (box.Box, error) {
	var numBox, dnomBox box.Box
	var err error
	if err = e.WithStyle(e.NumStyle(), func() error {
		numBox, err = a.num.CreateBox(e)
		return err
	}); err != nil {
		return nil, err
	}
	if err = e.WithStyle(e.DnomStyle(), func() error {
		dnomBox, err = a.dnom.CreateBox(e)
		return err
	}); err != nil {
		return nil, err
	}

	width := dimen.Max(numBox.M().Width, dnomBox.M().Width)
	numBox = padTo(numBox, width, a.numAlign)
	dnomBox = padTo(dnomBox, width, a.dnomAlign)

	mf := e.FontContext().MathFont()
	var mc struct {
		numDispShiftUp, numShiftUp, numDispGap, numGap           dimen.DU
		dnomDispShiftDown, dnomShiftDown, dnomDispGap, dnomGap    dimen.DU
	}
	if mf != nil && mf.MathConsts() != nil {
		c := mf.MathConsts()
		s := e.CurrentScale()
		mc.numDispShiftUp = dimen.DU(float32(c.FractionNumeratorDisplayStyleShiftUp) * s)
		mc.numShiftUp = dimen.DU(float32(c.FractionNumeratorShiftUp) * s)
		mc.numDispGap = dimen.DU(float32(c.FractionNumeratorDisplayStyleGapMin) * s)
		mc.numGap = dimen.DU(float32(c.FractionNumeratorGapMin) * s)
		mc.dnomDispShiftDown = dimen.DU(float32(c.FractionDenominatorDisplayStyleShiftDown) * s)
		mc.dnomShiftDown = dimen.DU(float32(c.FractionDenominatorShiftDown) * s)
		mc.dnomDispGap = dimen.DU(float32(c.FractionDenominatorDisplayStyleGapMin) * s)
		mc.dnomGap = dimen.DU(float32(c.FractionDenominatorGapMin) * s)
	}

	display := e.Style() < env.Text
	u, v := mc.numShiftUp, mc.dnomShiftDown
	numGap, dnomGap := mc.numGap, mc.dnomGap
	if display {
		u, v = mc.numDispShiftUp, mc.dnomDispShiftDown
		numGap, dnomGap = mc.numDispGap, mc.dnomDispGap
	}

	axis := dimen.DU(e.AxisHeight())
	thickness := a.thickness
	if thickness == 0 {
		thickness = dimen.DU(e.RuleThickness())
	}
	if !a.rule {
		thickness = 0
	}

	if need := axis + thickness/2 + numGap - (u - numBox.M().Depth); need > 0 {
		u += need
	}
	if need := (dnomBox.M().Height - v) - (axis - thickness/2 - dnomGap); need > 0 {
		v += need
	}

	height := u + numBox.M().Height

	// Every child's "cy" is its baseline's distance below the vbox's top,
	// which sits `height` above the fraction's own baseline: numBox's top
	// is flush with the vbox top by construction (height == u +
	// numBox.Height), the rule floats at axis+thickness/2, and dnomBox's
	// baseline sits v below the fraction's baseline.
	v2 := box.NewVerticalBox()
	v2.SetHeight(height)
	v2.SetWidth(width)
	v2.Append(numBox, numBox.M().Height)
	if a.rule && thickness > 0 {
		v2.Append(box.NewRuleBox(width, thickness), height-axis+thickness/2)
	}
	v2.Append(dnomBox, height+v)

	return v2, nil
}
