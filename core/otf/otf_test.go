package otf

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// buildMinimalFont hand-encodes a tiny .clm blob: one glyph 'x' with a kern
// against glyph 1, no math table, no glyph path.
func buildMinimalFont(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("CLM1")
	buf.WriteByte(CLMVersion)
	buf.WriteByte(0) // flags: not a math font, no glyph path

	u16 := func(v uint16) { binary.Write(&buf, binary.BigEndian, v) }
	i16 := func(v int16) { binary.Write(&buf, binary.BigEndian, v) }

	u16(1000) // em
	u16(500)  // xHeight
	u16(800)  // ascent
	u16(200)  // descent

	// unicode index: just 'x' -> glyph 0
	u16(1)
	u16(uint16('x'))
	u16(0)

	// ligature table: empty
	u16(0)

	// class kerning: 0 tables
	u16(0)

	// glyphs: 1 glyph
	u16(1)
	i16(500) // width
	i16(700) // height
	i16(0)   // depth
	i16(10)  // italic
	i16(250) // topAccentAttachment
	// kern record: 1 entry against glyph 1, kern -20
	u16(1)
	u16(1)
	i16(-20)

	return buf.Bytes()
}

func TestLoadMinimalFont(t *testing.T) {
	data := buildMinimalFont(t)
	f, err := Load(data)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if f.Em() != 1000 || f.XHeight() != 500 {
		t.Errorf("unexpected metadata: em=%d xHeight=%d", f.Em(), f.XHeight())
	}
	if f.IsMathFont() {
		t.Errorf("font should not be a math font")
	}
	id := f.GlyphID('x')
	if id != 0 {
		t.Errorf("expected glyph id 0 for 'x', got %d", id)
	}
	g := f.Glyph(id)
	if g == nil || g.Width != 500 {
		t.Fatalf("unexpected glyph: %+v", g)
	}
	if g.Kerns.Kern(1) != -20 {
		t.Errorf("expected kern -20 against glyph 1, got %d", g.Kerns.Kern(1))
	}
	if g.Kerns.Kern(99) != 0 {
		t.Errorf("expected 0 kern for unknown adjacent glyph")
	}
	if f.GlyphID('z') != NoGlyph {
		t.Errorf("expected NoGlyph for unmapped codepoint")
	}
	if f.GlyphOfRune('x').Width != 500 {
		t.Errorf("GlyphOfRune mismatch")
	}
	if f.Space() != f.Em()/3 {
		t.Errorf("expected fallback space = em/3, got %d", f.Space())
	}
}

func TestLoadRejectsBadMagic(t *testing.T) {
	data := buildMinimalFont(t)
	data[0] = 'X'
	if _, err := Load(data); err != ErrUnsupportedFormat {
		t.Errorf("expected ErrUnsupportedFormat, got %v", err)
	}
}

func TestLoadRejectsTruncated(t *testing.T) {
	data := buildMinimalFont(t)
	if _, err := Load(data[:len(data)-3]); err != ErrEOF {
		t.Errorf("expected ErrEOF, got %v", err)
	}
}

func TestBinIndexOf(t *testing.T) {
	a := []int{1, 3, 5, 7, 9}
	cmp := func(target int) func(int) int {
		return func(i int) int { return target - a[i] }
	}
	if i := binIndexOf(len(a), cmp(5), false); i != 2 {
		t.Errorf("exact match expected at 2, got %d", i)
	}
	if i := binIndexOf(len(a), cmp(4), false); i != -1 {
		t.Errorf("expected -1 for no exact match, got %d", i)
	}
	if i := binIndexOf(len(a), cmp(4), true); i != 1 {
		t.Errorf("expected closest predecessor at 1 (value 3), got %d", i)
	}
	if i := binIndexOf(len(a), cmp(0), true); i != -1 {
		t.Errorf("expected -1 when query is below all elements, got %d", i)
	}
}
