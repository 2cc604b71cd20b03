package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
)

// AccentedAtom places an accent symbol above a base atom, grounded on
// atom_accent.h. Its own edges forward to the base, matching
// AccentedAtom::leftType/rightType.
type AccentedAtom struct {
	base
	accentee Atom
	accenter *SymbolAtom
	fitSize  bool
	fake     bool
}

// NewAccentedAtom creates an accent over base, given the accent's symbol
// name.
func NewAccentedAtom(accentee Atom, accentSymbolName string, fitSize, fake bool) (*AccentedAtom, error) {
	sym, err := NewSymbolAtom(accentSymbolName)
	if err != nil {
		return nil, err
	}
	return &AccentedAtom{accentee: accentee, accenter: sym, fitSize: fitSize, fake: fake}, nil
}

func (a *AccentedAtom) LeftType() AtomType  { return a.accentee.LeftType() }
func (a *AccentedAtom) RightType() AtomType { return a.accentee.RightType() }

// CreateBox selects between the base's topAccentAttachment and the
// accent glyph's own, to decide horizontal placement, optionally
// substituting a horizontal variant of the accent that approximates the
// base's width, and places the accent directly on top of the base, or
// at accentBaseHeight above the baseline when the base is shorter than
// that.
func (a *AccentedAtom) CreateBox(e *env.Env) (box.Box, error) {
	baseBox, err := a.accentee.CreateBox(e)
	if err != nil {
		return nil, err
	}

	var accentBox box.Box
	var accentChar = a.accenter.GetChar(e)
	if !a.fake && a.fitSize {
		if g := glyphOf(e, accentChar); g != nil && g.Math != nil {
			if v, ok := g.Math.HorizontalVariants.Smallest(int16(baseBox.M().Width)); ok {
				scaledChar := accentChar
				scaledChar.GlyphID = v.Glyph
				accentBox = charBoxFor(e, scaledChar)
			}
		}
	}
	if accentBox == nil {
		accentBox, err = a.accenter.CreateBox(e)
		if err != nil {
			return nil, err
		}
	}

	baseAttach := topAttachmentOf(e, a.accentee, baseBox)
	accentAttach := topAttachmentOf(e, a.accenter, accentBox)

	baseLead := dimen.Max(0, accentAttach-baseAttach)
	accentLead := dimen.Max(0, baseAttach-accentAttach)
	width := dimen.Max(baseLead+baseBox.M().Width, accentLead+accentBox.M().Width)

	baseBox = padWithOffset(baseBox, baseLead, width)
	accentBox = padWithOffset(accentBox, accentLead, width)

	var baseHeightMin dimen.DU
	if mf := e.FontContext().MathFont(); mf != nil && mf.MathConsts() != nil {
		baseHeightMin = dimen.DU(float32(mf.MathConsts().AccentBaseHeight) * e.CurrentScale())
	}

	// gap raises the accent so its lowest point clears accentBaseHeight
	// above the baseline even when the base glyph is shorter than that.
	gap := dimen.Max(0, baseHeightMin-baseBox.M().Height)
	height := baseBox.M().Height + gap + accentBox.M().Height + accentBox.M().Depth

	v := box.NewVerticalBox()
	v.SetHeight(height)
	v.SetWidth(width)
	v.Append(accentBox, accentBox.M().Height)
	v.Append(baseBox, height)
	return v, nil
}
