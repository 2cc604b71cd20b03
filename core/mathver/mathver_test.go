package mathver

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestMapIdentityOutsideAlphabet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.mathver")
	defer teardown()
	if got := Map(None, '+'); got != '+' {
		t.Errorf("expected identity mapping for '+', got %q", got)
	}
}

func TestMapItalicLatinSmall(t *testing.T) {
	SetMathStyle(TeX)
	got := Map(None, 'h')
	if got != 0x210E {
		t.Errorf("expected italic 'h' to resolve to Planck constant U+210E, got U+%04X", got)
	}
}

func TestMapUprightStyleIsIdentityForAscii(t *testing.T) {
	SetMathStyle(Upright)
	defer SetMathStyle(TeX)
	if got := Map(None, 'x'); got != 'x' {
		t.Errorf("expected upright style to leave 'x' unchanged, got U+%04X", got)
	}
}

func TestMapFrenchUppercaseStaysUpright(t *testing.T) {
	SetMathStyle(French)
	defer SetMathStyle(TeX)
	if got := Map(None, 'X'); got != 'X' {
		t.Errorf("expected French style to leave capital 'X' upright, got U+%04X", got)
	}
	if got := Map(None, 'x'); got == 'x' {
		t.Errorf("expected French style to italicize small 'x'")
	}
}

func TestMapBoldDigit(t *testing.T) {
	got := Map(Bf, '7')
	want := rune(0x1D7CE + 7)
	if got != want {
		t.Errorf("expected bold '7' to map to U+%04X, got U+%04X", want, got)
	}
}

func TestFindClosestStyle(t *testing.T) {
	if got := FindClosestStyle(Sf | Bf | It); got != SfBfIt {
		t.Errorf("expected sfbfit as closest style, got %v", got)
	}
	if got := FindClosestStyle(Rm); got != None {
		t.Errorf("expected no composed style for plain roman, got %v", got)
	}
}

func TestBitPredicatesRejectInvalid(t *testing.T) {
	if IsBold(Invalid) || IsItalic(Invalid) || IsRoman(Invalid) {
		t.Errorf("expected all bit predicates to return false for Invalid sentinel")
	}
}
