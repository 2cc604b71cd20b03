package dimen

import (
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

func TestParseLength(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.core")
	defer teardown()
	//
	u, f, err := ParseLength("12px")
	if err != nil {
		t.Errorf("(1) %s", err.Error())
	} else if u != UnitPixel || f != 12 {
		t.Errorf("(1) expected 12px, got %v%s", f, u.Name())
	}
	//
	u, f, err = ParseLength("0")
	if err != nil {
		t.Errorf("(2) %s", err.Error())
	} else if f != 0 || u != UnitPixel {
		t.Errorf("(2) expected 0px, got %v%s", f, u.Name())
	}
	//
	u, f, err = ParseLength("2.5MU")
	if err != nil {
		t.Errorf("(3) %s", err.Error())
	} else if u != UnitMu || f != 2.5 {
		t.Errorf("(3) expected 2.5mu, got %v%s", f, u.Name())
	}
	//
	if _, _, err = ParseLength("not-a-length"); err == nil {
		t.Errorf("(4) expected parse error for malformed length")
	}
}

func TestUnitRoundTrip(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.core")
	defer teardown()
	units := []Unit{
		UnitEm, UnitEx, UnitPixel, UnitPoint, UnitPica, UnitMu,
		UnitCM, UnitMM, UnitIN, UnitSP, UnitPT, UnitDD, UnitCC, UnitTT,
	}
	for _, u := range units {
		if got := GetUnit(u.Name()); got != u {
			t.Errorf("round-trip failed for unit %d: name %q resolved to %d", u, u.Name(), got)
		}
	}
}

func TestMinMaxClamp(t *testing.T) {
	if Min(3, 5) != 3 || Max(3, 5) != 5 {
		t.Errorf("min/max mismatch")
	}
	if Clamp(10, 0, 5) != 5 || Clamp(-1, 0, 5) != 0 || Clamp(3, 0, 5) != 3 {
		t.Errorf("clamp mismatch")
	}
}
