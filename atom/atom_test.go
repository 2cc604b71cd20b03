package atom

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/core/otf"
)

// buildTestFont hand-encodes a minimal .clm blob with glyphs for 'x', ' ',
// '+' and '=', mirroring core/env's own test font (core/env/env_test.go).
func buildTestFont(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("CLM1")
	buf.WriteByte(otf.CLMVersion)
	buf.WriteByte(0x01) // isMathFont, no glyph path

	u16 := func(v uint16) { binary.Write(&buf, binary.BigEndian, v) }
	i16 := func(v int16) { binary.Write(&buf, binary.BigEndian, v) }

	u16(1000) // em
	u16(450)  // xHeight
	u16(800)  // ascent
	u16(200)  // descent

	vals := make([]int16, 42)
	vals[0] = 70  // ScriptPercentScaleDown
	vals[1] = 50  // ScriptScriptPercentScaleDown
	vals[2] = 250 // AxisHeight
	vals[5] = 40  // FractionRuleThickness
	for _, v := range vals {
		i16(v)
	}

	chars := []rune{' ', '+', '=', 'x'}
	u16(uint16(len(chars)))
	for _, c := range chars {
		u16(uint16(c))
	}
	for i := range chars {
		u16(uint16(i))
	}

	u16(0) // ligatures
	u16(0) // class kernings

	u16(uint16(len(chars))) // glyph count
	for range chars {
		i16(500) // width
		i16(400) // height
		i16(0)   // depth
		i16(5)   // italic
		i16(0)   // topAccentAttachment
		u16(0)   // kern record empty
		u16(0)   // hVariants
		u16(0)   // vVariants
		u16(0)   // hAssembly count
		i16(0)   // hAssembly italic
		u16(0)   // vAssembly count
		i16(0)   // vAssembly italic
		for c := 0; c < 4; c++ {
			u16(0) // mathkern count
		}
	}
	return buf.Bytes()
}

func newTestEnv(t *testing.T) *env.Env {
	t.Helper()
	f, err := otf.Load(buildTestFont(t))
	if err != nil {
		t.Fatalf("otf.Load: %v", err)
	}
	fc := fontctx.New("main", f)
	id, err := fc.RegisterMathFontData("math", f)
	if err != nil {
		t.Fatalf("RegisterMathFontData: %v", err)
	}
	if err := fc.SelectMathFont("math"); err != nil {
		t.Fatalf("SelectMathFont: %v", err)
	}
	e := env.New(env.Display, fc, 20)
	e.SetLastFontID(id)
	return e
}

func TestCharAtomProducesNonZeroBox(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	a := NewCharAtomDefaultStyle('x', true)
	b, err := a.CreateBox(e)
	assert.NoError(t, err)
	assert.Equal(t, dimen.DU(500), b.M().Width)
	assert.Equal(t, dimen.DU(400), b.M().Height)
}

func TestTextAtomConcatenatesRunes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	a := NewTextAtom("x x", false)
	b, err := a.CreateBox(e)
	assert.NoError(t, err)
	assert.Equal(t, dimen.DU(500*3), b.M().Width)
}

func TestRowAtomInsertsNoGlueBetweenOrds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	row := NewRowAtom()
	row.Add(NewCharAtomDefaultStyle('x', true))
	row.Add(NewCharAtomDefaultStyle('x', true))
	b, err := row.CreateBox(e)
	assert.NoError(t, err)
	// two chars with no inter-atom glue between two Ord atoms: width is
	// exactly the sum of their own widths (TeX inserts no glue Ord-Ord).
	assert.Equal(t, dimen.DU(1000), b.M().Width)
}

func TestBreakMarkAtomIsZeroWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	row := NewRowAtom()
	row.Add(NewCharAtomDefaultStyle('x', true))
	row.Add(NewBreakMarkAtom())
	row.Add(NewCharAtomDefaultStyle('x', true))
	b, err := row.CreateBox(e)
	assert.NoError(t, err)
	assert.Equal(t, dimen.DU(1000), b.M().Width)
}

func TestFracAtomExtendsAboveAndBelowBaseline(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	num := NewCharAtomDefaultStyle('x', true)
	dnom := NewCharAtomDefaultStyle('x', true)
	fr := NewFracAtom(num, dnom, true, 0)
	b, err := fr.CreateBox(e)
	assert.NoError(t, err)
	assert.Greater(t, b.M().Height, dimen.DU(0))
	assert.Greater(t, b.M().Depth, dimen.DU(0))
}

func TestScriptsAtomWithoutScriptsReturnsBaseUnchanged(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	base := NewCharAtomDefaultStyle('x', true)
	sc := NewScriptsAtom(base, nil, nil)
	baseBox, _ := base.CreateBox(e)
	scBox, err := sc.CreateBox(e)
	assert.NoError(t, err)
	assert.Equal(t, baseBox.M(), scBox.M())
}

func TestScriptsAtomWidensForSuperscript(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	base := NewCharAtomDefaultStyle('x', true)
	sup := NewCharAtomDefaultStyle('x', true)
	sc := NewScriptsAtom(base, sup, nil)
	b, err := sc.CreateBox(e)
	assert.NoError(t, err)
	assert.Greater(t, b.M().Width, dimen.DU(500))
}

func TestNewScriptsAtomCheckedRejectsBreakMark(t *testing.T) {
	_, err := NewScriptsAtomChecked(NewBreakMarkAtom(), NewCharAtomDefaultStyle('x', true), nil)
	assert.ErrorIs(t, err, ErrScriptsOnBreakMark)
}

func TestNewSymbolAtomRejectsUnknownName(t *testing.T) {
	_, err := NewSymbolAtom("not-a-real-symbol-name")
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestNewAccentedAtomPropagatesSymbolLookupError(t *testing.T) {
	_, err := NewAccentedAtom(NewCharAtomDefaultStyle('x', true), "not-a-real-symbol-name", false, false)
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestAccentedAtomStacksAboveBase(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	a, err := NewAccentedAtom(NewCharAtomDefaultStyle('x', true), "hat", false, true)
	if err != nil {
		t.Skip("symbol table does not carry a test accent; skipping")
	}
	b, cerr := a.CreateBox(e)
	assert.NoError(t, cerr)
	assert.Greater(t, b.M().Height, dimen.DU(0))
}

func TestSpaceAtomDimensionedProducesGlue(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	sp := NewDimensionedSpaceAtom(dimen.UnitPT, 10, 0, 0)
	b, err := sp.CreateBox(e)
	assert.NoError(t, err)
	assert.Greater(t, b.M().Width, dimen.DU(0))
}

func TestFencedAtomNullDelimiterHasNoGlyphWidth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	fn := NewFencedAtom("", NewCharAtomDefaultStyle('x', true), "")
	b, err := fn.CreateBox(e)
	assert.NoError(t, err)
	assert.Equal(t, dimen.DU(500), b.M().Width)
}

func TestNewFencedAtomWithMiddleRejectsMismatchedCount(t *testing.T) {
	_, err := NewFencedAtomWithMiddle("", []Atom{NewCharAtomDefaultStyle('x', true)}, []string{"bad"}, "")
	assert.ErrorIs(t, err, ErrFencedMiddleCount)
}

func TestBigSymbolAtomRejectsUnknownName(t *testing.T) {
	_, err := NewBigSymbolAtom("not-a-real-symbol-name", 1)
	assert.ErrorIs(t, err, ErrSymbolNotFound)
}

func TestBigSymbolAtomFallsBackWithoutVariants(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	big, err := NewBigSymbolAtom("sum", 2)
	assert.NoError(t, err)
	b, cerr := big.CreateBox(e)
	assert.NoError(t, cerr)
	assert.NotNil(t, b)
}

func TestZStackAtomCenterAlignsByDefault(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.atom")
	defer teardown()
	e := newTestEnv(t)
	anchor := NewCharAtomDefaultStyle('x', true)
	overlay := NewCharAtomDefaultStyle('x', true)
	z := NewZStackAtom(anchor, overlay, 0, VAlignBaseline, 0, 0)
	b, err := z.CreateBox(e)
	assert.NoError(t, err)
	assert.Equal(t, dimen.DU(500), b.M().Width)
}
