package glue

import (
	"bytes"
	"encoding/binary"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"

	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/fontctx"
	"github.com/npillmayer/mtex/core/otf"
)

func buildFont(t *testing.T) []byte {
	t.Helper()
	var buf bytes.Buffer
	buf.WriteString("CLM1")
	buf.WriteByte(otf.CLMVersion)
	buf.WriteByte(0x01)
	u16 := func(v uint16) { binary.Write(&buf, binary.BigEndian, v) }
	i16 := func(v int16) { binary.Write(&buf, binary.BigEndian, v) }
	u16(1800) // em, so 1mu = 100 design units
	u16(500)
	u16(800)
	u16(200)
	vals := make([]int16, 42)
	vals[0], vals[1] = 70, 50
	for _, v := range vals {
		i16(v)
	}
	u16(0) // unicode index empty
	u16(0) // ligatures
	u16(0) // class kernings
	u16(0) // glyphs count
	return buf.Bytes()
}

func newTestEnv(t *testing.T) *env.Env {
	t.Helper()
	f, err := otf.Load(buildFont(t))
	if err != nil {
		t.Fatalf("otf.Load: %v", err)
	}
	fc := fontctx.New("main", f)
	if _, err := fc.RegisterMathFontData("math", f); err != nil {
		t.Fatalf("register: %v", err)
	}
	if err := fc.SelectMathFont("math"); err != nil {
		t.Fatalf("select: %v", err)
	}
	return env.New(env.Display, fc, 20)
}

func TestGetMedSkipBetweenOrdAndBin(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "mtex.glue")
	defer teardown()
	e := newTestEnv(t)
	b := Get(Ord, Bin, e)
	if b.Space != 400 { // 4mu * (1800/18)
		t.Errorf("expected med skip space=400, got %v", b.Space)
	}
}

func TestGetNoneSkipBetweenOpenClose(t *testing.T) {
	e := newTestEnv(t)
	b := Get(Open, Open, e)
	if !b.IsZero() {
		t.Errorf("expected zero glue between Open,Open, got %+v", b)
	}
}

func TestScriptStyleCollapsesMostEntries(t *testing.T) {
	e := newTestEnv(t)
	_ = e.WithStyle(env.Script, func() error {
		b := Get(Ord, Op, e)
		if !b.IsZero() {
			t.Errorf("expected Ord,Op glue to collapse to none in script style, got %+v", b)
		}
		narrowed := Get(Bin, Ord, e)
		if narrowed.IsZero() {
			t.Errorf("expected Bin,Ord to narrow (not collapse) in script style")
		}
		return nil
	})
}

func TestGetSkipQuad(t *testing.T) {
	e := newTestEnv(t)
	b := GetSkip(Quad, e)
	if b.Space != 1800 { // 18mu * 100
		t.Errorf("expected quad space=1800, got %v", b.Space)
	}
}
