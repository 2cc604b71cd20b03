package otf

import (
	"strconv"
	"strings"

	"github.com/derekparker/trie"
)

// ligatureTable stores ligature substitutions keyed by the sequence of
// component glyph ids, e.g. {f, i} -> fi, held in a trie. lookup matches
// the whole given sequence exactly; it does not search for the longest
// matching prefix.
type ligatureTable struct {
	t *trie.Trie
}

// glyphSeqKey encodes a glyph-id sequence as a trie key. Glyph ids are
// small, non-negative indices, so a comma-joined decimal encoding keeps the
// trie's per-rune branching sane without requiring a custom alphabet.
func glyphSeqKey(seq []GlyphID) string {
	parts := make([]string, len(seq))
	for i, g := range seq {
		parts[i] = strconv.Itoa(int(g))
	}
	return strings.Join(parts, ",")
}

func newLigatureTable() *ligatureTable {
	return &ligatureTable{t: trie.New()}
}

func (lt *ligatureTable) add(seq []GlyphID, replacement GlyphID) {
	lt.t.Add(glyphSeqKey(seq), int(replacement))
}

func (lt *ligatureTable) lookup(seq []GlyphID) (GlyphID, bool) {
	if lt == nil || lt.t == nil {
		return NoGlyph, false
	}
	node, ok := lt.t.Find(glyphSeqKey(seq))
	if !ok {
		return NoGlyph, false
	}
	meta := node.Meta()
	if meta == nil {
		return NoGlyph, false
	}
	return GlyphID(meta.(int)), true
}
