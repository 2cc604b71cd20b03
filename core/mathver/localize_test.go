package mathver

import "testing"

func TestLocalizeDigitsConvertsArabicIndic(t *testing.T) {
	got := LocalizeDigits("٣٩")
	if got != "39" {
		t.Errorf("expected Arabic-Indic digits to map to \"39\", got %q", got)
	}
}

func TestLocalizeDigitsConvertsArabicDecimalSeparator(t *testing.T) {
	got := LocalizeDigits("٣٫٥")
	if got != "3.5" {
		t.Errorf("expected Arabic decimal separator to map to '.', got %q", got)
	}
}

func TestLocalizeDigitsConvertsDevanagari(t *testing.T) {
	got := LocalizeDigits("८९")
	if got != "89" {
		t.Errorf("expected Devanagari digits to map to \"89\", got %q", got)
	}
}

func TestLocalizeDigitsLeavesAsciiAndOtherRunesUnchanged(t *testing.T) {
	got := LocalizeDigits("x=12.5")
	if got != "x=12.5" {
		t.Errorf("expected ASCII input to pass through unchanged, got %q", got)
	}
}
