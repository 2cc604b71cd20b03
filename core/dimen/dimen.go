/*
Package dimen implements font design-unit arithmetic and the TeX length
units a math formula may be specified in.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2021 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dimen

import (
	"errors"
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// foldUnitName case-folds a unit name the way GetUnit needs: locale- and
// case-independent comparison, since unit names are ASCII TeX tokens
// rather than natural-language text that would need a specific language's
// casing rules.
var foldUnitName = cases.Fold()

func foldUnit(s string) string {
	return foldUnitName.String(strings.TrimSpace(s))
}

// DU is a font design unit: layout arithmetic throughout this module is
// carried out in DU, a quantity relative to a font's unitsPerEm and the
// current Env scale factor. Unlike the teacher's print-oriented dimen.DU
// (fixed scaled big points), a DU only becomes a physical size once an Env
// resolves it.
type DU float32

// Zero is the neutral design unit.
const Zero DU = 0

// Infinity is the largest usable dimension; used as a "no limit" sentinel.
const Infinity DU = DU(math.MaxFloat32 / 2)

// Some very stretchable dimensions, mirroring TeX's fil/fill/filll orders.
const (
	Fil   DU = Infinity - 3
	Fill  DU = Infinity - 2
	Filll DU = Infinity - 1
)

// String is a Stringer implementation for debugging.
func (d DU) String() string {
	return fmt.Sprintf("%.2fdu", float32(d))
}

// Min returns the smaller of two design units.
func Min(a, b DU) DU {
	if a < b {
		return a
	}
	return b
}

// Max returns the greater of two design units.
func Max(a, b DU) DU {
	if a > b {
		return a
	}
	return b
}

// Clamp restricts d to [lo, hi].
func Clamp(d, lo, hi DU) DU {
	return Max(lo, Min(hi, d))
}

// ---------------------------------------------------------------------------

// Unit identifies one of the length units a TeX-flavoured markup document
// may specify a dimension in.
type Unit int8

// Unit identifiers. Values are not part of any wire format, only the names
// below are; new units may be added in any order.
const (
	UnitNone Unit = iota
	UnitEm
	UnitEx
	UnitPixel
	UnitPoint // "bp", big (PDF) point
	UnitPica
	UnitMu
	UnitCM
	UnitMM
	UnitIN
	UnitSP
	UnitPT // printer's point, 1/72.27in
	UnitDD
	UnitCC
	UnitTT // rule-thickness multiple
)

// unitNames is the canonical name table, mirroring the sorted array in
// original_source/src/env/units.cpp (kept here as a map since Go gives us
// O(1) lookup for free instead of hand-rolled binary search).
var unitNames = map[string]Unit{
	"bp":    UnitPoint,
	"cc":    UnitCC,
	"cm":    UnitCM,
	"dd":    UnitDD,
	"em":    UnitEm,
	"ex":    UnitEx,
	"in":    UnitIN,
	"mm":    UnitMM,
	"mu":    UnitMu,
	"pc":    UnitPica,
	"pica":  UnitPica,
	"pix":   UnitPixel,
	"pixel": UnitPixel,
	"pt":    UnitPT,
	"px":    UnitPixel,
	"sp":    UnitSP,
	"tt":    UnitTT,
}

// GetUnit resolves a canonical unit name (case-insensitive) to a Unit.
// Unknown names fall back to UnitPixel, matching the contract of
// original_source's Units::getUnit.
func GetUnit(name string) Unit {
	if u, ok := unitNames[foldUnit(name)]; ok {
		return u
	}
	return UnitPixel
}

// Name returns a canonical textual name for a Unit such that
// GetUnit(u.Name()) == u for every registered unit.
func (u Unit) Name() string {
	switch u {
	case UnitEm:
		return "em"
	case UnitEx:
		return "ex"
	case UnitPixel:
		return "px"
	case UnitPoint:
		return "bp"
	case UnitPica:
		return "pc"
	case UnitMu:
		return "mu"
	case UnitCM:
		return "cm"
	case UnitMM:
		return "mm"
	case UnitIN:
		return "in"
	case UnitSP:
		return "sp"
	case UnitPT:
		return "pt"
	case UnitDD:
		return "dd"
	case UnitCC:
		return "cc"
	case UnitTT:
		return "tt"
	}
	return ""
}

// ---------------------------------------------------------------------------

var lengthPattern = regexp.MustCompile(`^\s*([+-]?[0-9]*\.?[0-9]+)\s*([a-zA-Z]*)\s*$`)

// ParseLength parses a "<number><unit>" string (e.g. "2.5pt", "-1mu", "3").
// An empty unit suffix resolves to UnitPixel, following GetUnit's fallback
// rule: unknown unit names parse to pixel.
func ParseLength(s string) (Unit, float64, error) {
	m := lengthPattern.FindStringSubmatch(s)
	if m == nil {
		return UnitNone, 0, errors.New("dimen: malformed length " + strconv.Quote(s))
	}
	f, err := strconv.ParseFloat(m[1], 64)
	if err != nil {
		return UnitNone, 0, fmt.Errorf("dimen: malformed length %q: %w", s, err)
	}
	if m[2] == "" {
		return UnitPixel, f, nil
	}
	return GetUnit(m[2]), f, nil
}
