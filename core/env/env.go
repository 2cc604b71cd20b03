// Package env carries the mutable-but-scoped layout state threaded through
// a single createBox traversal: the current TeX style, the active math and
// text font-style bitmasks, and the metric queries atoms use to convert
// font design units into the current style's scale.
package env

import (
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/core/mathver"
)

func tracer() tracing.Trace {
	return tracing.Select("mtex.env")
}

// TexStyle is TeX's display/text/script/scriptScript ladder, encoded as an
// integer 0..7: even values are uncramped, odd are cramped.
type TexStyle int8

const (
	Display             TexStyle = 0
	DisplayCramped      TexStyle = 1
	Text                TexStyle = 2
	TextCramped         TexStyle = 3
	Script              TexStyle = 4
	ScriptCramped       TexStyle = 5
	ScriptScript        TexStyle = 6
	ScriptScriptCramped TexStyle = 7
)

// Cramped reports whether style is one of the four cramped variants, used
// e.g. inside radicals and denominators where superscripts rise less.
func (s TexStyle) Cramped() bool { return s%2 == 1 }

// pixelsPerPoint is the ambient device-resolution scale used by Ppem()
// below; it mirrors the original's process-wide Env::PIXELS_PER_POINT and
// is set once at startup by the embedding application.
var (
	pixelsPerPoint   float32 = 1.0
	pixelsPerPointMu sync.RWMutex
)

// SetPixelsPerPoint configures the device-resolution scale applied to
// Env.Ppem. Typical values: 1.0 for a 72dpi reference device, 96/72 for a
// 96dpi screen.
func SetPixelsPerPoint(ppp float32) {
	pixelsPerPointMu.Lock()
	defer pixelsPerPointMu.Unlock()
	pixelsPerPoint = ppp
}

func pixelsPerPointValue() float32 {
	pixelsPerPointMu.RLock()
	defer pixelsPerPointMu.RUnlock()
	return pixelsPerPoint
}

// Env is the layout environment threaded through a single createBox
// traversal. It is not safe for concurrent use by multiple goroutines; a
// render pass owns exactly one Env and mutates it only through the scoped
// With* methods below.
type Env struct {
	style      TexStyle
	textWidth  float32 // 1e18 when unconstrained
	lineSpace  float32
	textSize   float32
	scaleFactor float32

	mathFontStyle mathver.FontStyle
	textFontStyle mathver.FontStyle

	lastFontID fontctx.FontID
	fctx       *fontctx.Context
}

// New creates an Env for a fresh render pass at the given initial style and
// text size (in points), bound to fctx for font/metric lookups.
func New(style TexStyle, fctx *fontctx.Context, textSize float32) *Env {
	return &Env{
		style:       style,
		textWidth:   float32(1e18),
		scaleFactor: 1,
		textSize:    textSize,
		lastFontID:  fontctx.NoFontID,
		fctx:        fctx,
	}
}

func (e *Env) Style() TexStyle     { return e.style }
func (e *Env) TextWidth() float32  { return e.textWidth }
func (e *Env) LineSpace() float32  { return e.lineSpace }
func (e *Env) TextSize() float32   { return e.textSize }
func (e *Env) ScaleFactor() float32 { return e.scaleFactor }
func (e *Env) LastFontID() fontctx.FontID { return e.lastFontID }
func (e *Env) MathFontStyle() mathver.FontStyle { return e.mathFontStyle }
func (e *Env) TextFontStyle() mathver.FontStyle { return e.textFontStyle }
func (e *Env) FontContext() *fontctx.Context    { return e.fctx }

func (e *Env) SetTextWidth(w float32)    { e.textWidth = w }
func (e *Env) SetLineSpace(s float32)    { e.lineSpace = s }
func (e *Env) SetScaleFactor(f float32)  { e.scaleFactor = f }
func (e *Env) SetLastFontID(id fontctx.FontID) { e.lastFontID = id }

// WithStyle runs body with the Env's style temporarily set to style,
// restoring the previous style on every exit path including a panic or
// error return from body.
func (e *Env) WithStyle(style TexStyle, body func() error) error {
	saved := e.style
	e.style = style
	defer func() { e.style = saved }()
	return body()
}

// WithFontStyle scopes a font-style bit to the duration of body. When
// nested is true the requested bits are OR-ed onto the current style word
// when false the style word is replaced by the requested bits. In both
// cases the saved style word is restored verbatim on exit.
func (e *Env) WithFontStyle(style mathver.FontStyle, isMathMode, nested bool, body func() error) error {
	target := &e.textFontStyle
	if isMathMode {
		target = &e.mathFontStyle
	}
	saved := *target
	if nested {
		*target = saved | style
	} else {
		*target = style
	}
	defer func() { *target = saved }()
	return body()
}

// numStyle, dnomStyle, crampStyle, subStyle, supStyle and rootStyle are
// pure integer-arithmetic transitions on the 0..7 TexStyle index,
// reproducing TeX's scriptstyle family exactly, grounded on the original
// Env::numStyle/dnomStyle/... formulas.
func (e *Env) CrampStyle() TexStyle {
	s := int8(e.style)
	if s%2 == 1 {
		return TexStyle(s)
	}
	return TexStyle(s + 1)
}

func (e *Env) NumStyle() TexStyle {
	s := int8(e.style)
	return TexStyle(s + 2 - 2*(s/6))
}

func (e *Env) DnomStyle() TexStyle {
	s := int8(e.style)
	return TexStyle(2*(s/2) + 1 + 2 - 2*(s/6))
}

func (e *Env) SubStyle() TexStyle {
	s := int8(e.style)
	return TexStyle(2*(s/4) + 4 + 1)
}

func (e *Env) SupStyle() TexStyle {
	s := int8(e.style)
	return TexStyle(2*(s/4) + 4 + (s % 2))
}

func (e *Env) RootStyle() TexStyle { return ScriptScript }

// Scale returns the scale factor that should be applied to font design
// units to obtain this Env's effective size for style: 1 for display/text,
// MathConsts.ScriptPercentScaleDown/100 for script, and
// ScriptScriptPercentScaleDown/100 for scriptScript (cramped variants
// share their base's scale).
func (e *Env) Scale(style TexStyle) float32 {
	if style < Script {
		return 1
	}
	mf := e.fctx.MathFont()
	if mf == nil {
		return 1
	}
	mc := mf.MathConsts()
	if mc == nil {
		return 1
	}
	percent := mc.ScriptPercentScaleDown
	if style >= ScriptScript {
		percent = mc.ScriptScriptPercentScaleDown
	}
	return float32(percent) / 100.0
}

// CurrentScale is Scale(e.Style()).
func (e *Env) CurrentScale() float32 { return e.Scale(e.style) }

// Upem is the math font's units-per-em.
func (e *Env) Upem() float32 {
	mf := e.fctx.MathFont()
	if mf == nil {
		return 1000
	}
	return float32(mf.Em())
}

// Em is upem scaled by the current style.
func (e *Env) Em() float32 { return e.Upem() * e.CurrentScale() }

// Ppem is the device-pixel size of one em at the Env's text size.
func (e *Env) Ppem() float32 { return pixelsPerPointValue() * e.textSize }

// XHeight is the last-used font's x-height, scaled by the current style.
func (e *Env) XHeight() float32 {
	f := e.fctx.GetFont(e.lastFontID)
	if f == nil {
		f = e.fctx.MainFont()
	}
	if f == nil {
		return 0
	}
	return float32(f.XHeight()) * e.CurrentScale()
}

// Space returns the inter-word space in the current mode, scaled.
func (e *Env) Space(isMathMode bool) float32 {
	if isMathMode {
		mf := e.fctx.MathFont()
		if mf == nil {
			return 0
		}
		return float32(mf.Space()) * e.CurrentScale()
	}
	mf := e.fctx.MainFont()
	if mf == nil {
		return 0
	}
	return float32(mf.Space()) * e.CurrentScale()
}

// RuleThickness is MathConsts.FractionRuleThickness scaled.
func (e *Env) RuleThickness() float32 {
	mf := e.fctx.MathFont()
	if mf == nil {
		return 0
	}
	mc := mf.MathConsts()
	if mc == nil {
		return 0
	}
	return float32(mc.FractionRuleThickness) * e.CurrentScale()
}

// AxisHeight is MathConsts.AxisHeight scaled.
func (e *Env) AxisHeight() float32 {
	mf := e.fctx.MathFont()
	if mf == nil {
		return 0
	}
	mc := mf.MathConsts()
	if mc == nil {
		return 0
	}
	return float32(mc.AxisHeight) * e.CurrentScale()
}

// GetChar resolves code to a Char, defaulting style to the Env's own
// math/text font-style word when style is mathver.Invalid, grounded on
// Env::getChar.
func (e *Env) GetChar(code rune, isMathMode bool, style mathver.FontStyle) fontctx.Char {
	target := style
	if style == mathver.Invalid {
		if isMathMode {
			target = e.mathFontStyle
		} else {
			target = e.textFontStyle
		}
	}
	c := e.fctx.GetChar(code, target, isMathMode)
	c.Scale = e.CurrentScale()
	return c
}

// GetSymbolChar resolves a named symbol's fixed codepoint using the Env's
// current math font style.
func (e *Env) GetSymbolChar(symbolCode rune) fontctx.Char {
	c := e.fctx.GetSymbolChar(symbolCode, e.mathFontStyle)
	c.Scale = e.CurrentScale()
	return c
}

// PixelUnit is the number of design units per point at the Env's current
// text size: pixelsPerPoint*Upem/Ppem, which equals Upem/TextSize since
// Ppem is TextSize*pixelsPerPoint.
func (e *Env) PixelUnit() float32 {
	ppem := e.Ppem()
	if ppem == 0 {
		return 0
	}
	return pixelsPerPointValue() * e.Upem() / ppem
}

// SelectMathFont switches the active math font and, in the same step, the
// ambient MathVersion style used for alphanumeric mapping.
func (e *Env) SelectMathFont(name string, mstyle mathver.MathStyle) error {
	if err := e.fctx.SelectMathFont(name); err != nil {
		return err
	}
	mathver.SetMathStyle(mstyle)
	return nil
}
