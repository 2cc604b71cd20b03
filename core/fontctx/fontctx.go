/*
Package fontctx implements the process-wide font context: registering
math fonts, selecting the current one, and resolving a
codepoint+style to a concrete glyph in a concrete font. Grounded on the
teacher's core/font/fontregistry/registry.go (a sync.Mutex-guarded registry
keyed by normalized name, with lazy caching).

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package fontctx

import (
	"errors"
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mtex/core/mathver"
	"github.com/npillmayer/mtex/core/otf"
)

func tracer() tracing.Trace {
	return tracing.Select("mtex.fontctx")
}

// Sentinel errors.
var (
	ErrFontNotRegistered = errors.New("fontctx: font not registered")
	ErrNoMainFont        = errors.New("fontctx: no main font registered")
	ErrNoCurrentMathFont = errors.New("fontctx: no math font selected")
)

// NoFontID is the sentinel "no font" id, mirroring FontContext::NO_FONT in
// the original source.
const NoFontID = -1

// FontID identifies a registered font.
type FontID int32

// Context is the process-wide font registry and current-selection state.
// Registration must be externally serialized by callers; once
// registration is complete, reads are safe for concurrent use.
type Context struct {
	mu    sync.RWMutex
	byID  []*otf.Font
	ids   map[string]FontID
	mainF FontID
	curM  FontID
}

// New creates a font context with a registered main (text) font. The main
// font is registered once and never unselected.
func New(mainName string, mainFont *otf.Font) *Context {
	c := &Context{
		ids:   make(map[string]FontID),
		mainF: NoFontID,
		curM:  NoFontID,
	}
	c.byID = append(c.byID, mainFont)
	id := FontID(len(c.byID) - 1)
	c.ids[mainName] = id
	c.mainF = id
	tracer().Infof("fontctx: registered main font %q as #%d", mainName, id)
	return c
}

// RegisterMathFont loads a .clm font from path and registers it by name. If
// no math font has been selected yet, it becomes the current one.
func (c *Context) RegisterMathFont(name, clmPath string) (FontID, error) {
	f, err := otf.LoadFile(clmPath)
	if err != nil {
		return NoFontID, fmt.Errorf("fontctx: loading math font %q: %w", name, err)
	}
	return c.RegisterMathFontData(name, f)
}

// RegisterMathFontData registers an already-loaded math font.
func (c *Context) RegisterMathFontData(name string, f *otf.Font) (FontID, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if id, ok := c.ids[name]; ok {
		return id, nil
	}
	c.byID = append(c.byID, f)
	id := FontID(len(c.byID) - 1)
	c.ids[name] = id
	if c.curM == NoFontID {
		c.curM = id
	}
	tracer().Infof("fontctx: registered math font %q as #%d", name, id)
	return id, nil
}

// SelectMathFont sets the current math font by name.
func (c *Context) SelectMathFont(name string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	id, ok := c.ids[name]
	if !ok {
		return fmt.Errorf("%w: %q", ErrFontNotRegistered, name)
	}
	c.curM = id
	return nil
}

// GetFont returns the font registered under id. The returned handle's
// lifetime equals that of the Context.
func (c *Context) GetFont(id FontID) *otf.Font {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if id < 0 || int(id) >= len(c.byID) {
		return nil
	}
	return c.byID[id]
}

// MainFontID returns the id of the registered main (text) font.
func (c *Context) MainFontID() FontID { return c.mainF }

// MathFontID returns the id of the currently selected math font, or
// NoFontID if none has been registered yet.
func (c *Context) MathFontID() FontID {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.curM
}

// MathFont returns the currently selected math font, or nil.
func (c *Context) MathFont() *otf.Font {
	return c.GetFont(c.MathFontID())
}

// MainFont returns the registered main (text) font.
func (c *Context) MainFont() *otf.Font {
	return c.GetFont(c.mainF)
}

// ---------------------------------------------------------------------------

// Char is a cheap value describing a resolved character-glyph. Scale is
// left at 1; the caller (Env) applies the environment's current style
// scale.
type Char struct {
	Code       rune
	MappedCode rune
	FontID     FontID
	GlyphID    otf.GlyphID
	Scale      float32
}

// IsValid reports whether a glyph id was actually resolved.
func (c Char) IsValid() bool { return c.GlyphID >= 0 }

// GetChar resolves a codepoint to a Char in the current math or main font,
// applying the math-alphanumeric mapping when isMathMode is set.
func (c *Context) GetChar(code rune, style mathver.FontStyle, isMathMode bool) Char {
	mapped := code
	if isMathMode {
		mapped = mathver.Map(style, code)
	}
	fid := c.mainF
	font := c.MainFont()
	if isMathMode {
		fid = c.MathFontID()
		font = c.MathFont()
	}
	if font == nil {
		tracer().Errorf("fontctx: getChar(%q): no font available", code)
		return Char{Code: code, MappedCode: mapped, FontID: NoFontID, GlyphID: otf.NoGlyph, Scale: 1}
	}
	gid := font.GlyphID(mapped)
	if gid == otf.NoGlyph {
		tracer().Infof("fontctx: no glyph for U+%04X in font #%d, substituting '?'", mapped, fid)
		gid = font.GlyphID('?')
	}
	return Char{Code: code, MappedCode: mapped, FontID: fid, GlyphID: gid, Scale: 1}
}

// GetSymbolChar resolves a named symbol to a Char via its fixed codepoint
// in the given font style.
func (c *Context) GetSymbolChar(symbolCode rune, style mathver.FontStyle) Char {
	return c.GetChar(symbolCode, style, true)
}
