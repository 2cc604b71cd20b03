package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/mathver"
)

// TextAtom mixes literal UTF-8 text into a math row, e.g. \text{...}.
// Its left/right type is always ordinary, matching the source's
// TextAtom::leftType/rightType.
type TextAtom struct {
	base
	text     []rune
	mathMode bool
}

// NewTextAtom creates a TextAtom over a literal UTF-8 string.
func NewTextAtom(text string, mathMode bool) *TextAtom {
	return &TextAtom{base: base{atomType: Ord}, text: []rune(text), mathMode: mathMode}
}

// Append adds one more codepoint to the literal text, mirroring
// TextAtom::append (used by an incremental parser building the string
// rune by rune).
func (a *TextAtom) Append(code rune) { a.text = append(a.text, code) }

func (a *TextAtom) CreateBox(e *env.Env) (box.Box, error) {
	h := box.NewHorizontalBox()
	for _, r := range a.text {
		c := e.GetChar(r, a.mathMode, mathver.Invalid)
		h.Append(charBoxFor(e, c))
	}
	return h, nil
}
