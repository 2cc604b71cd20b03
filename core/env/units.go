package env

import "github.com/npillmayer/mtex/core/dimen"

// Fsize converts a value given in unit u to font design units at e's
// current state. k is the caller's coefficient: Fsize(u, k) = k * Fsize(u, 1).
//
// The "pt" (bp) baseline follows PIXELS_PER_POINT·upem/ppem (e.PixelUnit);
// every other unit is defined relative to it or to em/ex/ruleThickness,
// mirroring original_source/src/env/units.cpp's conversion table.
func (e *Env) Fsize(u dimen.Unit, k float32) dimen.DU {
	bp := e.PixelUnit()
	pt := bp * 0.99626401
	switch u {
	case dimen.UnitEm:
		return dimen.DU(k * e.Em())
	case dimen.UnitEx:
		return dimen.DU(k * e.XHeight())
	case dimen.UnitMu:
		return dimen.DU(k * e.Em() / 18)
	case dimen.UnitPixel:
		return dimen.DU(k * bp)
	case dimen.UnitPoint:
		return dimen.DU(k * bp)
	case dimen.UnitPica:
		return dimen.DU(k * bp * 12)
	case dimen.UnitPT:
		return dimen.DU(k * pt)
	case dimen.UnitCM:
		return dimen.DU(k * pt * 28.346456693)
	case dimen.UnitMM:
		return dimen.DU(k * pt * 28.346456693 / 10)
	case dimen.UnitIN:
		return dimen.DU(k * pt * 72)
	case dimen.UnitSP:
		return dimen.DU(k * pt * 65536)
	case dimen.UnitDD:
		return dimen.DU(k * bp * 1.0660349422)
	case dimen.UnitCC:
		return dimen.DU(k * bp * 1.0660349422 * 12)
	case dimen.UnitTT:
		return dimen.DU(k * e.RuleThickness())
	default:
		return dimen.DU(k * bp)
	}
}
