package env

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/core/mathver"
	"github.com/npillmayer/mtex/core/otf"
)

// buildMathFont hand-encodes a minimal .clm blob carrying a MathConsts
// table and two glyphs, 'x' and ' ', mirroring the layout core/otf's loader
// tests exercise.
func buildMathFont(t *testing.T) []byte {
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

	// MathConsts: 42 i16 fields
	vals := make([]int16, 42)
	vals[0] = 70 // ScriptPercentScaleDown
	vals[1] = 50 // ScriptScriptPercentScaleDown
	vals[2] = 250 // AxisHeight
	vals[5] = 40  // FractionRuleThickness
	for _, v := range vals {
		i16(v)
	}

	// unicode index: 'x' -> glyph 0, ' ' -> glyph 1
	u16(2)
	u16(uint16(' '))
	u16(uint16('x'))
	u16(1) // glyph for ' '
	u16(0) // glyph for 'x'

	u16(0) // ligatures: empty
	u16(0) // class kernings: none

	// glyphs: 2
	u16(2)
	// glyph 0: 'x'
	i16(500)
	i16(400)
	i16(0)
	i16(5)
	i16(0)
	u16(0) // kern record empty
	// math sub-record: hVariants, vVariants, hAssembly, vAssembly, 4 mathkerns
	u16(0)          // hVariants count 0
	u16(0)          // vVariants count 0
	u16(0)          // hAssembly count 0
	i16(0)          // hAssembly italic (since count 0)
	u16(0)          // vAssembly count 0
	i16(0)          // vAssembly italic
	for c := 0; c < 4; c++ {
		u16(0) // mathkern count 0
	}
	// glyph 1: ' '
	i16(250)
	i16(0)
	i16(0)
	i16(0)
	i16(0)
	u16(0)
	u16(0)
	u16(0)
	u16(0)
	i16(0)
	u16(0)
	i16(0)
	for c := 0; c < 4; c++ {
		u16(0)
	}

	return buf.Bytes()
}

func newTestEnv(t *testing.T) *Env {
	t.Helper()
	f, err := otf.Load(buildMathFont(t))
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
	e := New(Display, fc, 20)
	e.SetLastFontID(id)
	return e
}

func TestStyleTransitions(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.env")
	defer teardown()
	e := newTestEnv(t)
	if got := e.NumStyle(); got != Text {
		t.Errorf("expected numStyle(display)=text, got %v", got)
	}
	if got := e.DnomStyle(); got != TextCramped {
		t.Errorf("expected dnomStyle(display)=textCramped, got %v", got)
	}
	if got := e.CrampStyle(); got != DisplayCramped {
		t.Errorf("expected crampStyle(display)=displayCramped, got %v", got)
	}
	if got := e.RootStyle(); got != ScriptScript {
		t.Errorf("expected rootStyle=scriptScript, got %v", got)
	}
}

func approxEqual(a, b float32) bool {
	d := a - b
	return d > -0.0001 && d < 0.0001
}

func TestScaleByStyle(t *testing.T) {
	e := newTestEnv(t)
	if got := e.Scale(Display); got != 1 {
		t.Errorf("expected display scale=1, got %v", got)
	}
	if got := e.Scale(Script); !approxEqual(got, 0.7) {
		t.Errorf("expected script scale=0.7, got %v", got)
	}
	if got := e.Scale(ScriptScript); !approxEqual(got, 0.5) {
		t.Errorf("expected scriptScript scale=0.5, got %v", got)
	}
}

func TestWithFontStyleRestoresOnExit(t *testing.T) {
	e := newTestEnv(t)
	before := e.MathFontStyle()
	err := e.WithFontStyle(mathver.Bf, true, false, func() error {
		if e.MathFontStyle() != mathver.Bf {
			t.Errorf("expected bf set during body")
		}
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.MathFontStyle() != before {
		t.Errorf("expected font style restored after WithFontStyle, got %v", e.MathFontStyle())
	}
}

func TestWithFontStyleNestedOrsBits(t *testing.T) {
	e := newTestEnv(t)
	_ = e.WithFontStyle(mathver.Bf, true, false, func() error {
		return e.WithFontStyle(mathver.It, true, true, func() error {
			if e.MathFontStyle() != mathver.Bf|mathver.It {
				t.Errorf("expected bf|it while nested, got %v", e.MathFontStyle())
			}
			return nil
		})
	})
	if e.MathFontStyle() != mathver.None {
		t.Errorf("expected font style fully restored, got %v", e.MathFontStyle())
	}
}

func TestWithFontStylePopsOnError(t *testing.T) {
	e := newTestEnv(t)
	before := e.MathFontStyle()
	_ = e.WithFontStyle(mathver.It, true, false, func() error {
		return errBoom
	})
	if e.MathFontStyle() != before {
		t.Errorf("expected pop even when body returns an error")
	}
}

var errBoom = &testError{"boom"}

type testError struct{ msg string }

func (e *testError) Error() string { return e.msg }

func TestMetricQueries(t *testing.T) {
	e := newTestEnv(t)
	if got := e.Em(); got != 1000 {
		t.Errorf("expected em=1000 at display scale, got %v", got)
	}
	if got := e.AxisHeight(); got != 250 {
		t.Errorf("expected axisHeight=250, got %v", got)
	}
	if got := e.RuleThickness(); got != 40 {
		t.Errorf("expected ruleThickness=40, got %v", got)
	}
	if got := e.XHeight(); got != 450 {
		t.Errorf("expected xHeight=450, got %v", got)
	}
}

func TestGetCharDefaultsToEnvStyle(t *testing.T) {
	e := newTestEnv(t)
	c := e.GetChar('x', true, mathver.Invalid)
	if !c.IsValid() {
		t.Fatalf("expected valid char for 'x'")
	}
}
