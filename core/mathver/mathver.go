// Package mathver maps ASCII/Greek codepoints onto the Mathematical
// Alphanumeric Symbols Unicode block (U+1D400-U+1D7FF), the mechanism TeX
// math mode uses to paint a plain letter in italic, bold, fraktur, script,
// etc without the caller choosing a distinct font.
package mathver

import (
	"sync"

	"github.com/emirpasic/gods/maps/treemap"
	"github.com/npillmayer/schuko/tracing"
)

func tracer() tracing.Trace {
	return tracing.Select("mtex.mathver")
}

// FontStyle is a 16-bit bitmask over the composable math font attributes.
// It doubles as the "bold italic sans-serif" style word attached to an
// atom and as the channel selector this package's Map function consumes.
type FontStyle uint16

const (
	None FontStyle = 0

	Rm   FontStyle = 1 << 0
	Bf   FontStyle = 1 << 1
	It   FontStyle = 1 << 2
	Sf   FontStyle = 1 << 3
	Tt   FontStyle = 1 << 4
	Cal  FontStyle = 1 << 5
	Frak FontStyle = 1 << 6
	Bb   FontStyle = 1 << 7

	// composed convenience styles, as found by findClosestStyle
	BfIt   = Bf | It
	BfCal  = Bf | Cal
	BfFrak = Bf | Frak
	SfBf   = Sf | Bf
	SfIt   = Sf | It
	SfBfIt = Sf | Bf | It

	// Invalid is the all-ones sentinel meaning "unset, use the
	// environment's current default".
	Invalid FontStyle = 0xFFFF
)

// IsUnspecified reports whether style carries no bits at all.
func IsUnspecified(style FontStyle) bool { return style == None }

func hasBit(style, bit FontStyle) bool {
	return style != Invalid && style&bit != 0
}

// IsRoman, IsBold, IsItalic, IsSansSerif and IsMono test individual bits of
// the style word, tolerating the Invalid sentinel (always false).
func IsRoman(style FontStyle) bool    { return hasBit(style, Rm) }
func IsBold(style FontStyle) bool     { return hasBit(style, Bf) }
func IsItalic(style FontStyle) bool   { return hasBit(style, It) }
func IsSansSerif(style FontStyle) bool { return hasBit(style, Sf) }
func IsMono(style FontStyle) bool     { return hasBit(style, Tt) }

var composedStyles = []FontStyle{BfIt, BfCal, BfFrak, SfBf, SfIt, SfBfIt}

func countSetBits(v uint16) int {
	n := 0
	for v != 0 {
		n += int(v & 1)
		v >>= 1
	}
	return n
}

// FindClosestStyle returns the composed style (from the small fixed set of
// bold-italic/bold-calligraphic/.../sans-bold-italic combinations) whose
// bits overlap src the most, breaking ties in favor of the first candidate
// with strictly greater similarity. Used when a font only ships a handful
// of blended weights and a request must be rounded to the nearest one.
func FindClosestStyle(src FontStyle) FontStyle {
	var best FontStyle = None
	similarity := 0
	for _, style := range composedStyles {
		n := countSetBits(uint16(src) & uint16(style))
		if n > similarity {
			best = style
			similarity = n
		}
	}
	return best
}

// MathStyle selects which of the five alphanumeric channels (digit, small
// and capital latin, small and capital greek) render upright vs italic,
// per the table:
//
//	style    latin  Latin  greek  Greek
//	TeX      it     it     it     up
//	ISO      it     it     it     it
//	French   it     up     up     up
//	upright  up     up     up     up
type MathStyle uint8

const (
	TeX MathStyle = iota
	ISO
	French
	Upright
)

// LetterType classifies a codepoint into one of the five channels this
// package knows how to re-style, or LetterNone if Map should pass it through
// unchanged.
type LetterType uint8

const (
	LetterNone LetterType = iota
	LetterDigit
	LetterLatinSmall
	LetterLatinCapital
	LetterGreekSmall
	LetterGreekCapital
)

// version bundles the five base codepoints (one per channel, for the
// "upright/plain" representative of that channel) a mathVersion maps from,
// together with the FontStyle that selects it.
type version struct {
	digit, latinSmall, latinCapital, greekSmall, greekCapital rune
	style                                                     FontStyle
}

// classify determines which channel code belongs to and its offset from
// that channel's base codepoint.
func classify(code rune) (LetterType, rune) {
	switch {
	case code >= '0' && code <= '9':
		return LetterDigit, code - '0'
	case code >= 'a' && code <= 'z':
		return LetterLatinSmall, code - 'a'
	case code >= 'A' && code <= 'Z':
		return LetterLatinCapital, code - 'A'
	case code >= 0x03B1 && code <= 0x03C9: // greek small alpha..omega
		return LetterGreekSmall, code - 0x03B1
	case code >= 0x0391 && code <= 0x03A9: // greek capital Alpha..Omega
		return LetterGreekCapital, code - 0x0391
	default:
		return LetterNone, 0
	}
}

func (v version) base(lt LetterType) (rune, bool) {
	switch lt {
	case LetterDigit:
		return v.digit, true
	case LetterLatinSmall:
		return v.latinSmall, true
	case LetterLatinCapital:
		return v.latinCapital, true
	case LetterGreekSmall:
		return v.greekSmall, true
	case LetterGreekCapital:
		return v.greekCapital, true
	default:
		return 0, false
	}
}

// mapCode applies this version's base codepoints to code, substituting any
// reserved slot via the shared reservedSlots table.
func (v version) mapCode(code rune) rune {
	lt, offset := classify(code)
	base, ok := v.base(lt)
	if !ok {
		return code
	}
	mapped := base + offset
	if repl, found := reservedSlot(mapped); found {
		return repl
	}
	return mapped
}

// Mathematical Alphanumeric Symbols base codepoints, one row per version,
// taken directly from the Unicode block layout (digit/latinSmall/
// latinCapital/greekSmall/greekCapital bases for each style combination).
// Only the combinations this mapping actually needs are populated; an
// unlisted combination falls back to the plain (unstyled) identity
// mapping.
var (
	plain = version{'0', 'a', 'A', 0x03B1, 0x0391, None}

	boldVersion      = version{0x1D7CE, 0x1D41A, 0x1D400, 0x1D6C2, 0x1D6A8, Bf}
	italicVersion    = version{'0', 0x1D44E, 0x1D434, 0x1D6FC, 0x1D6E2, It}
	boldItalicVer    = version{0x1D7CE, 0x1D482, 0x1D468, 0x1D736, 0x1D71C, BfIt}
	sansVersion      = version{0x1D7E2, 0x1D5BA, 0x1D5A0, 0x03B1, 0x0391, Sf}
	sansBoldVersion  = version{0x1D7EC, 0x1D5EE, 0x1D5D4, 0x1D770, 0x1D756, SfBf}
	sansItalicVer    = version{0x1D7E2, 0x1D622, 0x1D608, 0x03B1, 0x0391, SfIt}
	sansBoldItalic   = version{0x1D7EC, 0x1D656, 0x1D63C, 0x1D7AA, 0x1D790, SfBfIt}
	monoVersion      = version{0x1D7F6, 0x1D68A, 0x1D670, 0x03B1, 0x0391, Tt}
	calVersion       = version{'0', 0x1D4B6, 0x1D49C, 0x03B1, 0x0391, Cal}
	boldCalVersion   = version{0x1D7CE, 0x1D4EA, 0x1D4D0, 0x03B1, 0x0391, BfCal}
	frakVersion      = version{'0', 0x1D51E, 0x1D504, 0x03B1, 0x0391, Frak}
	boldFrakVersion  = version{0x1D7CE, 0x1D586, 0x1D56C, 0x1D736, 0x1D71C, BfFrak}
	doubleStruckVer  = version{0x1D7D8, 0x1D552, 0x1D538, 0x03B1, 0x0391, Bb}
)

// reservedSlots maps Unicode's documented <reserved> holes in the
// Mathematical Alphanumeric block to the pre-existing letterlike-symbol
// codepoint that carries the same glyph, e.g. italic math 'h' (U+1D455,
// reserved) is really the Planck-constant glyph U+210E.
var reservedSlots *treemap.Map
var reservedSlotsOnce sync.Once

func initReservedSlots() {
	reservedSlots = treemap.NewWithIntComparator()
	add := func(from, to rune) { reservedSlots.Put(int(from), to) }
	// italic latin, mathematical italic small h -> PLANCK CONSTANT
	add(0x1D455, 0x210E)
	// script capitals with pre-existing letterlike equivalents
	add(0x1D49D, 0x212C) // B -> SCRIPT CAPITAL B
	add(0x1D4A0, 0x2130) // E -> SCRIPT CAPITAL E
	add(0x1D4A1, 0x2131) // F -> SCRIPT CAPITAL F
	add(0x1D4A3, 0x210B) // H -> SCRIPT CAPITAL H
	add(0x1D4A4, 0x2110) // I -> SCRIPT CAPITAL I
	add(0x1D4A7, 0x2112) // L -> SCRIPT CAPITAL L
	add(0x1D4A8, 0x2133) // M -> SCRIPT CAPITAL M
	add(0x1D4AD, 0x211B) // R -> SCRIPT CAPITAL R
	add(0x1D4BA, 0x212F) // e -> SCRIPT SMALL E
	add(0x1D4BC, 0x210A) // g -> SCRIPT SMALL G
	add(0x1D4C4, 0x2134) // o -> SCRIPT SMALL O
	// fraktur with pre-existing letterlike equivalents
	add(0x1D506, 0x212D) // C -> BLACK-LETTER CAPITAL C
	add(0x1D50B, 0x210C) // H -> BLACK-LETTER CAPITAL H
	add(0x1D50C, 0x2111) // I -> BLACK-LETTER CAPITAL I
	add(0x1D515, 0x211C) // R -> BLACK-LETTER CAPITAL R
	add(0x1D51D, 0x2128) // Z -> BLACK-LETTER CAPITAL Z
	// double-struck with pre-existing letterlike equivalents
	add(0x1D53A, 0x2102) // C -> DOUBLE-STRUCK CAPITAL C
	add(0x1D53F, 0x210D) // H -> DOUBLE-STRUCK CAPITAL H
	add(0x1D545, 0x2115) // N -> DOUBLE-STRUCK CAPITAL N
	add(0x1D547, 0x2119) // P -> DOUBLE-STRUCK CAPITAL P
	add(0x1D548, 0x211A) // Q -> DOUBLE-STRUCK CAPITAL Q
	add(0x1D549, 0x211D) // R -> DOUBLE-STRUCK CAPITAL R
	add(0x1D551, 0x2124) // Z -> DOUBLE-STRUCK CAPITAL Z
}

func reservedSlot(code rune) (rune, bool) {
	reservedSlotsOnce.Do(initReservedSlots)
	v, found := reservedSlots.Get(int(code))
	if !found {
		return code, false
	}
	return v.(rune), true
}

var (
	currentStyle   MathStyle = TeX
	currentStyleMu sync.RWMutex
)

// SetMathStyle selects the global MathStyle used by Map when resolving
// codepoints whose FontStyle does not itself force italic or upright.
func SetMathStyle(style MathStyle) {
	currentStyleMu.Lock()
	defer currentStyleMu.Unlock()
	currentStyle = style
}

func getMathStyle() MathStyle {
	currentStyleMu.RLock()
	defer currentStyleMu.RUnlock()
	return currentStyle
}

// versionFor picks the version for an explicit FontStyle; with no style
// bit set it falls back to the ambient MathStyle, which decides per
// letter channel:
//
//	style    latin  Latin  greek  Greek
//	TeX      it     it     it     up
//	ISO      it     it     it     it
//	French   it     up     up     up
//	upright  up     up     up     up
func versionFor(style MathStyle, fs FontStyle, lt LetterType) version {
	switch {
	case IsSansSerif(fs) && IsBold(fs) && IsItalic(fs):
		return sansBoldItalic
	case IsSansSerif(fs) && IsItalic(fs):
		return sansItalicVer
	case IsSansSerif(fs) && IsBold(fs):
		return sansBoldVersion
	case hasBit(fs, Cal) && IsBold(fs):
		return boldCalVersion
	case hasBit(fs, Frak) && IsBold(fs):
		return boldFrakVersion
	case IsBold(fs) && IsItalic(fs):
		return boldItalicVer
	case IsItalic(fs):
		return italicVersion
	case IsBold(fs) && IsSansSerif(fs):
		return sansBoldVersion
	case IsSansSerif(fs) && IsItalic(fs):
		return sansItalicVer
	case IsSansSerif(fs):
		return sansVersion
	case IsBold(fs):
		return boldVersion
	case IsMono(fs):
		return monoVersion
	case hasBit(fs, Cal) && IsBold(fs):
		return boldCalVersion
	case hasBit(fs, Cal):
		return calVersion
	case hasBit(fs, Frak) && IsBold(fs):
		return boldFrakVersion
	case hasBit(fs, Frak):
		return frakVersion
	case hasBit(fs, Bb):
		return doubleStruckVer
	}
	// no explicit style requested: fall back to the ambient MathStyle,
	// which decides italic-vs-upright per channel.
	switch style {
	case ISO:
		return italicVersion
	case French:
		if lt == LetterLatinSmall {
			return italicVersion
		}
		return plain
	case Upright:
		return plain
	default: // TeX
		switch lt {
		case LetterGreekCapital:
			return plain
		case LetterNone:
			return plain
		default:
			return italicVersion
		}
	}
}

// Map resolves code to its version-specific Mathematical Alphanumeric
// codepoint given the requested FontStyle, falling back to the ambient
// MathStyle (see SetMathStyle) when style carries none of the composable
// bits this package recognizes. Characters outside digits/Latin/Greek map
// to themselves.
func Map(style FontStyle, code rune) rune {
	lt, _ := classify(code)
	if lt == LetterNone {
		return code
	}
	v := versionFor(getMathStyle(), style, lt)
	mapped := v.mapCode(code)
	if mapped != code {
		tracer().Debugf("mathver: mapped U+%04X -> U+%04X (style=%v)", code, mapped, style)
	}
	return mapped
}
