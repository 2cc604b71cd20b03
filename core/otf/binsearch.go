package otf

import "github.com/emirpasic/gods/utils"

// binIndexOf implements the "negative-aware comparator" binary search
// contract used throughout the original MicroTeX source (glyph.cpp,
// otf.cpp): cmp(i) returns target-a[i]; a zero means an exact match at i.
// When returnClosest is true and no exact match exists, the index of the
// greatest element that still compares <= 0 (i.e. the closest predecessor)
// is returned instead of -1.
func binIndexOf(n int, cmp func(i int) int, returnClosest bool) int {
	lo, hi := 0, n-1
	closest := -1
	for lo <= hi {
		mid := lo + (hi-lo)/2
		c := cmp(mid)
		switch {
		case c == 0:
			return mid
		case c < 0:
			hi = mid - 1
		default: // c > 0
			closest = mid
			lo = mid + 1
		}
	}
	if returnClosest {
		return closest
	}
	return -1
}

// validateAscending checks that codepoints are in strictly ascending order,
// the invariant the binary search above depends on. It is deliberately
// built on gods/utils's integer comparator,
// since that is the comparator vocabulary the rest of the table-building
// code (class-kerning, ligatures) in this package already speaks.
func validateAscending(codepoints []uint32) bool {
	for i := 1; i < len(codepoints); i++ {
		if utils.UInt32Comparator(codepoints[i-1], codepoints[i]) >= 0 {
			return false
		}
	}
	return true
}
