package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/mathver"
)

// FontStyleAtom applies a FontStyle (e.g. bold, italic, script, fraktur)
// to an inner atom for the duration of its lay-out. Nested is passed
// through to env.WithFontStyle: a non-nested style switch replaces the
// current style outright, a nested one composes with it (e.g.
// bold-italic).
type FontStyleAtom struct {
	base
	inner      Atom
	style      mathver.FontStyle
	isMathMode bool
	nested     bool
}

// NewFontStyleAtom wraps inner so it is laid out under style.
func NewFontStyleAtom(inner Atom, style mathver.FontStyle, isMathMode, nested bool) *FontStyleAtom {
	return &FontStyleAtom{inner: inner, style: style, isMathMode: isMathMode, nested: nested}
}

func (a *FontStyleAtom) LeftType() AtomType  { return a.inner.LeftType() }
func (a *FontStyleAtom) RightType() AtomType { return a.inner.RightType() }

func (a *FontStyleAtom) CreateBox(e *env.Env) (box.Box, error) {
	var b box.Box
	err := e.WithFontStyle(a.style, a.isMathMode, a.nested, func() error {
		var err error
		b, err = a.inner.CreateBox(e)
		return err
	})
	return b, err
}

// MathFontAtom switches the active math font (and its display style) for
// the rest of the enclosing scope, then lays out inner under that font.
type MathFontAtom struct {
	base
	inner     Atom
	fontName  string
	mathStyle mathver.MathStyle
}

// NewMathFontAtom wraps inner so it is laid out after selecting fontName
// as the active math font.
func NewMathFontAtom(inner Atom, fontName string, mathStyle mathver.MathStyle) *MathFontAtom {
	return &MathFontAtom{inner: inner, fontName: fontName, mathStyle: mathStyle}
}

func (a *MathFontAtom) LeftType() AtomType  { return a.inner.LeftType() }
func (a *MathFontAtom) RightType() AtomType { return a.inner.RightType() }

func (a *MathFontAtom) CreateBox(e *env.Env) (box.Box, error) {
	if err := e.SelectMathFont(a.fontName, a.mathStyle); err != nil {
		return nil, err
	}
	return a.inner.CreateBox(e)
}
