package atom

import (
	"errors"
	"fmt"

	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
)

// ErrFencedMiddleCount is returned by NewFencedAtomWithMiddle when the
// middle-separator count does not match parts-1.
var ErrFencedMiddleCount = errors.New("atom: fenced middle separator count must equal len(parts)-1")

// FencedAtom brackets one or more body parts between (vertically)
// extensible left/right delimiters, with optional extensible middle
// separators between parts. An empty delimiter name denotes a "null
// delimiter" (TeX's nulldelimiterspace case): no glyph is placed, only
// reserved space.
type FencedAtom struct {
	base
	left, right string
	parts       []Atom
	middles     []string
}

// NewFencedAtom brackets a single body atom between left and right.
func NewFencedAtom(left string, body Atom, right string) *FencedAtom {
	return &FencedAtom{left: left, right: right, parts: []Atom{body}}
}

// NewFencedAtomWithMiddle brackets parts between left and right,
// inserting the extensible middle delimiter middles[i] between parts[i]
// and parts[i+1] (an empty middles[i] means "no separator there").
func NewFencedAtomWithMiddle(left string, parts []Atom, middles []string, right string) (*FencedAtom, error) {
	if len(parts) == 0 {
		return nil, fmt.Errorf("atom: fenced requires at least one part")
	}
	if len(middles) != len(parts)-1 {
		return nil, ErrFencedMiddleCount
	}
	return &FencedAtom{left: left, right: right, parts: parts, middles: middles}, nil
}

func (a *FencedAtom) LeftType() AtomType  { return Open }
func (a *FencedAtom) RightType() AtomType { return Close }

// delimiterRequirement sizes a vertical delimiter to clear the body's
// extent around the math axis, never smaller than
// delimitedSubFormulaMinHeight.
func delimiterRequirement(e *env.Env, b box.Box) dimen.DU {
	axis := dimen.DU(e.AxisHeight())
	extent := dimen.Max(b.M().Height-axis, b.M().Depth+axis) * 2
	var minHeight dimen.DU
	if mf := e.FontContext().MathFont(); mf != nil && mf.MathConsts() != nil {
		minHeight = dimen.DU(float32(mf.MathConsts().DelimitedSubFormulaMinHeight) * e.CurrentScale())
	}
	return dimen.Max(extent, minHeight)
}

func delimiterBox(e *env.Env, name string, required dimen.DU) (box.Box, error) {
	if name == "" {
		return box.NewStrutBox(0, 0, 0), nil
	}
	ext, err := NewExtensibleAtom(name, false, func(*env.Env) dimen.DU { return required })
	if err != nil {
		return nil, err
	}
	return ext.CreateBox(e)
}

// CreateBox lays out the body parts (and any middle separators) first to
// measure their combined extent, then sizes left/right/middle delimiters
// to clear that extent around the math axis.
func (a *FencedAtom) CreateBox(e *env.Env) (box.Box, error) {
	partBoxes := make([]box.Box, len(a.parts))
	for i, p := range a.parts {
		b, err := p.CreateBox(e)
		if err != nil {
			return nil, err
		}
		partBoxes[i] = b
	}
	var maxH, maxD dimen.DU
	for _, pb := range partBoxes {
		maxH = dimen.Max(maxH, pb.M().Height)
		maxD = dimen.Max(maxD, pb.M().Depth)
	}
	required := delimiterRequirement(e, box.NewStrutBox(0, maxH, maxD))

	body := box.NewHorizontalBox()
	for i, pb := range partBoxes {
		if i > 0 && a.middles[i-1] != "" {
			mb, err := delimiterBox(e, a.middles[i-1], required)
			if err != nil {
				return nil, err
			}
			body.Append(mb)
		}
		body.Append(pb)
	}

	leftBox, err := delimiterBox(e, a.left, required)
	if err != nil {
		return nil, err
	}
	rightBox, err := delimiterBox(e, a.right, required)
	if err != nil {
		return nil, err
	}

	h := box.NewHorizontalBox()
	h.Append(leftBox)
	h.Append(body)
	h.Append(rightBox)
	return h, nil
}
