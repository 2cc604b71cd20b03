package atom

import (
	"fmt"

	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/core/mathver"
)

// CharSymbol is the common capability of atoms that resolve to exactly
// one glyph, grounded on atom_char.h's CharSymbol superclass. The text
// flag is recorded by MarkAsText and reported by IsText; no lay-out code
// in this package sets or reads it.
type CharSymbol interface {
	Atom
	IsMathMode() bool
	GetChar(e *env.Env) fontctx.Char
	Unicode() rune
	IsText() bool
	MarkAsText()
}

// charMark implements the isText/markAsText bookkeeping shared by every
// CharSymbol variant.
type charMark struct {
	isText bool
}

func (c *charMark) IsText() bool    { return c.isText }
func (c *charMark) MarkAsText()     { c.isText = true }
func (c *charMark) clearMark()      { c.isText = false }

// charBoxFor builds a CharBox from a resolved Char, reading its glyph's
// metrics from the owning font and scaling them by the Char's own Scale.
// An unresolved glyph (font.Glyph returns nil) yields a zero-metric box
// rather than a panic: the '?' substitution already happened inside
// fontctx.GetChar.
func charBoxFor(e *env.Env, c fontctx.Char) box.Box {
	e.SetLastFontID(c.FontID)
	f := e.FontContext().GetFont(c.FontID)
	if f == nil {
		return box.NewCharBox(c, 0, 0, 0)
	}
	g := f.Glyph(c.GlyphID)
	if g == nil {
		return box.NewCharBox(c, 0, 0, 0)
	}
	s := c.Scale
	return box.NewCharBox(c,
		dimen.DU(float32(g.Width)*s),
		dimen.DU(float32(g.Height)*s),
		dimen.DU(float32(g.Depth)*s),
	)
}

// ---------------------------------------------------------------------------

// FixedChar wraps an already-resolved Char, independent of any text
// style. Used internally by extensible/delimiter construction, which has
// already picked a concrete glyph id and just needs a box around it.
type FixedChar struct {
	base
	charMark
	chr fontctx.Char
}

// NewFixedChar wraps chr.
func NewFixedChar(chr fontctx.Char) *FixedChar {
	return &FixedChar{chr: chr}
}

func (a *FixedChar) IsMathMode() bool            { return false }
func (a *FixedChar) GetChar(e *env.Env) fontctx.Char { return a.chr }
func (a *FixedChar) Unicode() rune               { return a.chr.MappedCode }

func (a *FixedChar) CreateBox(e *env.Env) (box.Box, error) {
	return charBoxFor(e, a.chr), nil
}

// ---------------------------------------------------------------------------

// Symbol is one entry of the named-symbol table, grounded on
// uni_symbol.h's Symbol struct.
type Symbol struct {
	Unicode rune
	Type    AtomType
	Limits  LimitsType
	Name    string
}

var symbolTable = map[string]Symbol{
	"plus":     {'+', Bin, LimitsNormal, "plus"},
	"minus":    {0x2212, Bin, LimitsNormal, "minus"},
	"times":    {0x00D7, Bin, LimitsNormal, "times"},
	"div":      {0x00F7, Bin, LimitsNormal, "div"},
	"pm":       {0x00B1, Bin, LimitsNormal, "pm"},
	"cdot":     {0x22C5, Bin, LimitsNormal, "cdot"},
	"equals":   {'=', Rel, LimitsNormal, "equals"},
	"neq":      {0x2260, Rel, LimitsNormal, "neq"},
	"leq":      {0x2264, Rel, LimitsNormal, "leq"},
	"geq":      {0x2265, Rel, LimitsNormal, "geq"},
	"in":       {0x2208, Rel, LimitsNormal, "in"},
	"to":       {0x2192, Rel, LimitsNormal, "to"},
	"sum":      {0x2211, Op, LimitsDisplay, "sum"},
	"prod":     {0x220F, Op, LimitsDisplay, "prod"},
	"int":      {0x222B, Op, LimitsNone, "int"},
	"lim":      {0x2217, Op, LimitsNone, "lim"}, // placeholder glyph; \lim is usually rendered as text, kept minimal here
	"alpha":    {0x03B1, Ord, LimitsNormal, "alpha"},
	"beta":     {0x03B2, Ord, LimitsNormal, "beta"},
	"gamma":    {0x03B3, Ord, LimitsNormal, "gamma"},
	"pi":       {0x03C0, Ord, LimitsNormal, "pi"},
	"infty":    {0x221E, Ord, LimitsNormal, "infty"},
	"partial":  {0x2202, Ord, LimitsNormal, "partial"},
	"nabla":    {0x2207, Ord, LimitsNormal, "nabla"},
	"lparen":   {'(', Open, LimitsNormal, "lparen"},
	"rparen":   {')', Close, LimitsNormal, "rparen"},
	"lbrack":   {'[', Open, LimitsNormal, "lbrack"},
	"rbrack":   {']', Close, LimitsNormal, "rbrack"},
	"lbrace":   {'{', Open, LimitsNormal, "lbrace"},
	"rbrace":   {'}', Close, LimitsNormal, "rbrace"},
	"vert":     {'|', Open, LimitsNormal, "vert"},
	"comma":    {',', Punct, LimitsNormal, "comma"},
	"semicolon": {';', Punct, LimitsNormal, "semicolon"},
}

// LookupSymbol returns the named symbol, or false if name is not
// registered.
func LookupSymbol(name string) (Symbol, bool) {
	s, ok := symbolTable[name]
	return s, ok
}

// ErrSymbolNotFound is returned by NewSymbolAtom for an unknown name.
var ErrSymbolNotFound = fmt.Errorf("atom: symbol not found")

// SymbolAtom looks up a named symbol-table entry.
type SymbolAtom struct {
	base
	charMark
	sym Symbol
}

// NewSymbolAtom resolves name against the symbol table at construction
// time, raising ErrSymbolNotFound immediately rather than deferring
// failure to layout.
func NewSymbolAtom(name string) (*SymbolAtom, error) {
	sym, ok := LookupSymbol(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrSymbolNotFound, name)
	}
	return &SymbolAtom{base: base{atomType: sym.Type, limits: sym.Limits}, sym: sym}, nil
}

func (a *SymbolAtom) IsMathMode() bool { return true }
func (a *SymbolAtom) Unicode() rune    { return a.sym.Unicode }
func (a *SymbolAtom) Name() string     { return a.sym.Name }

func (a *SymbolAtom) GetChar(e *env.Env) fontctx.Char {
	return e.GetSymbolChar(a.sym.Unicode)
}

func (a *SymbolAtom) CreateBox(e *env.Env) (box.Box, error) {
	return charBoxFor(e, a.GetChar(e)), nil
}

// ---------------------------------------------------------------------------

// CharAtom carries a rune, a font style, and a math-mode flag through the
// math-alphanumeric mapper.
type CharAtom struct {
	base
	charMark
	unicode   rune
	fontStyle mathver.FontStyle
	mathMode  bool
}

// NewCharAtom creates a CharAtom with an explicit font style;
// mathver.Invalid means "use the environment's current font-style stack",
// pinned to the text/math font-style stack per mode.
func NewCharAtom(unicode rune, style mathver.FontStyle, mathMode bool) *CharAtom {
	return &CharAtom{unicode: unicode, fontStyle: style, mathMode: mathMode}
}

// NewCharAtomDefaultStyle creates a CharAtom that always defers to the
// environment's current font style.
func NewCharAtomDefaultStyle(unicode rune, mathMode bool) *CharAtom {
	return NewCharAtom(unicode, mathver.Invalid, mathMode)
}

func (a *CharAtom) IsMathMode() bool { return a.mathMode }
func (a *CharAtom) Unicode() rune    { return a.unicode }

func (a *CharAtom) GetChar(e *env.Env) fontctx.Char {
	return e.GetChar(a.unicode, a.mathMode, a.fontStyle)
}

func (a *CharAtom) CreateBox(e *env.Env) (box.Box, error) {
	return charBoxFor(e, a.GetChar(e)), nil
}

// ---------------------------------------------------------------------------

// BreakMarkAtom is a zero-width marker an explicit line break may occur
// at. It carries no glyph and accepts no attached scripts (see
// ErrScriptsOnBreakMark).
type BreakMarkAtom struct {
	base
}

// NewBreakMarkAtom creates a break-mark atom.
func NewBreakMarkAtom() *BreakMarkAtom { return &BreakMarkAtom{} }

func (a *BreakMarkAtom) CreateBox(e *env.Env) (box.Box, error) {
	return zeroBox(), nil
}
