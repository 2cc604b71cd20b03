package mathver

// LocalizeDigits rewrites any non-Latin decimal digit in s to its ASCII
// '0'-'9' equivalent, along with the Arabic decimal separator (U+066B),
// leaving every other rune untouched. Math input may arrive with digits
// from a reader's native script; the rest of this package, and anything
// downstream that parses a numeric atom, only ever recognizes ASCII
// digits, so this substitution happens once at the boundary.
func LocalizeDigits(s string) string {
	runes := []rune(s)
	changed := false
	for i, r := range runes {
		if d, ok := localizeDigit(r); ok {
			runes[i] = d
			changed = true
		}
	}
	if !changed {
		return s
	}
	return string(runes)
}

// localizeDigit maps a single rune from one of several scripts' decimal
// digit blocks (and the Arabic decimal separator) onto its ASCII
// equivalent. A rune outside all of these ranges is returned unchanged
// with ok=false.
func localizeDigit(c rune) (rune, bool) {
	switch {
	case c == 0x066B: // Arabic decimal separator
		return '.', true
	case c >= 0x0660 && c <= 0x0669: // Arabic-Indic
		return c - 0x0630, true
	case c >= 0x06F0 && c <= 0x06F9: // Extended Arabic-Indic
		return c - 0x06C0, true
	case c >= 0x0966 && c <= 0x096F: // Devanagari
		return c - 0x0936, true
	case c >= 0x09E6 && c <= 0x09EF: // Bengali
		return c - 0x09B6, true
	case c >= 0x0A66 && c <= 0x0A6F: // Gurmukhi
		return c - 0x0A36, true
	case c >= 0x0AE6 && c <= 0x0AEF: // Gujarati
		return c - 0x0AB6, true
	case c >= 0x0B66 && c <= 0x0B6F: // Oriya
		return c - 0x0B36, true
	case c >= 0x0C66 && c <= 0x0C6F: // Telugu
		return c - 0x0C36, true
	case c >= 0x0D66 && c <= 0x0D6F: // Malayalam
		return c - 0x0D36, true
	case c >= 0x0E50 && c <= 0x0E59: // Thai
		return c - 0x0E20, true
	case c >= 0x0ED0 && c <= 0x0ED9: // Lao
		return c - 0x0EA0, true
	case c >= 0x0F20 && c <= 0x0F29: // Tibetan
		return c - 0x0EF0, true
	case c >= 0x1040 && c <= 0x1049: // Myanmar
		return c - 0x1010, true
	case c >= 0x17E0 && c <= 0x17E9: // Khmer
		return c - 0x17B0, true
	case c >= 0x1810 && c <= 0x1819: // Mongolian
		return c - 0x17E0, true
	case c >= 0x1B50 && c <= 0x1B59: // Balinese
		return c - 0x1B20, true
	case c >= 0x1BB0 && c <= 0x1BB9: // Sundanese
		return c - 0x1B80, true
	case c >= 0x1C40 && c <= 0x1C49: // Lepcha
		return c - 0x1C10, true
	case c >= 0x1C50 && c <= 0x1C59: // Ol Chiki
		return c - 0x1C20, true
	case c >= 0xA8D0 && c <= 0xA8D9: // Saurashtra
		return c - 0xA8A0, true
	}
	return c, false
}
