package box

import (
	"testing"

	"github.com/npillmayer/schuko/testconfig"
	"github.com/stretchr/testify/assert"

	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/fontctx"
)

func TestStrutBoxHasNoFont(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	s := NewStrutBox(10, 20, 5)
	assert.Equal(t, fontctx.NoFontID, s.LastFontID())
	assert.Equal(t, dimen.DU(20), s.M().Height)
}

func TestHorizontalBoxAccumulatesWidthAndExtent(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	h := NewHorizontalBox()
	h.Append(NewStrutBox(10, 20, 5))
	h.Append(NewStrutBox(15, 10, 8))
	assert.Equal(t, dimen.DU(25), h.M().Width)
	assert.Equal(t, dimen.DU(20), h.M().Height)
	assert.Equal(t, dimen.DU(8), h.M().Depth)
}

func TestHorizontalBoxAccountsForChildShift(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	h := NewHorizontalBox()
	shifted := NewStrutBox(10, 20, 0)
	shifted.SetShift(5)
	h.Append(shifted)
	assert.Equal(t, dimen.DU(15), h.M().Height)
	assert.Equal(t, dimen.DU(5), h.M().Depth)
}

func TestGroupLastFontIDScansRightToLeft(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	h := NewHorizontalBox()
	ch := NewCharBox(fontctx.Char{FontID: 3, GlyphID: 1}, 10, 10, 0)
	h.Append(ch)
	h.Append(NewStrutBox(5, 5, 0))
	assert.Equal(t, fontctx.FontID(3), h.LastFontID())
}

func TestDecoratorBoxForwardsMetrics(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	base := NewStrutBox(10, 20, 5)
	d := NewDecoratorBox(base)
	assert.Equal(t, base.M(), d.M())
	assert.Equal(t, fontctx.NoFontID, d.LastFontID())
}

func TestGlueBoxCanBeNegative(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	g := NewGlueBox(-10)
	assert.Equal(t, dimen.DU(-10), g.M().Width)
}

func TestVerticalBoxPositionsChildrenAtExplicitOffsets(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	v := NewVerticalBox()
	v.SetHeight(100)
	v.SetWidth(50)
	v.Append(NewStrutBox(50, 10, 0), 10)
	v.Append(NewStrutBox(50, 10, 0), 100)
	assert.Equal(t, dimen.DU(100), v.M().Height)
	assert.Equal(t, dimen.DU(0), v.M().Depth)
}

func TestVerticalBoxGrowsDepthForLateChild(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	v := NewVerticalBox()
	v.SetHeight(20)
	v.Append(NewStrutBox(10, 20, 5), 25)
	assert.Equal(t, dimen.DU(10), v.M().Depth)
}

func TestRuleBoxHasThicknessAsHeightAndNoFont(t *testing.T) {
	teardown := testconfig.QuickConfig(t)
	defer teardown()
	//
	r := NewRuleBox(30, 4)
	assert.Equal(t, dimen.DU(30), r.M().Width)
	assert.Equal(t, dimen.DU(4), r.M().Height)
	assert.Equal(t, fontctx.NoFontID, r.LastFontID())
}
