package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
)

// VAlign positions a ZStackAtom's overlay vertically against the anchor.
type VAlign uint8

const (
	VAlignBaseline VAlign = iota
	VAlignTop
	VAlignCenter
	VAlignBottom
)

// ZStackAtom lays an overlay atom on top of an anchor atom, positioned by
// a horizontal/vertical alignment pair plus a fine offset, without
// affecting the anchor's own edges or advance. The combined box's
// metrics are the anchor's, widened only if the overlay would otherwise
// spill past its edges.
type ZStackAtom struct {
	base
	anchor, overlay        Atom
	halign                 box.Alignment
	valign                 VAlign
	xOffset, yOffset       dimen.DU
}

// NewZStackAtom places overlay against anchor using halign/valign, offset
// by (xOffset, yOffset) from the resulting alignment point.
func NewZStackAtom(anchor, overlay Atom, halign box.Alignment, valign VAlign, xOffset, yOffset dimen.DU) *ZStackAtom {
	return &ZStackAtom{anchor: anchor, overlay: overlay, halign: halign, valign: valign, xOffset: xOffset, yOffset: yOffset}
}

func (a *ZStackAtom) LeftType() AtomType  { return a.anchor.LeftType() }
func (a *ZStackAtom) RightType() AtomType { return a.anchor.RightType() }

func (a *ZStackAtom) CreateBox(e *env.Env) (box.Box, error) {
	anchorBox, err := a.anchor.CreateBox(e)
	if err != nil {
		return nil, err
	}
	overlayBox, err := a.overlay.CreateBox(e)
	if err != nil {
		return nil, err
	}

	var dx dimen.DU
	switch a.halign {
	case box.AlignLeft:
		dx = 0
	case box.AlignRight:
		dx = anchorBox.M().Width - overlayBox.M().Width
	default:
		dx = (anchorBox.M().Width - overlayBox.M().Width) / 2
	}
	dx += a.xOffset

	var dy dimen.DU // vertical shift applied to overlay, + is downward
	switch a.valign {
	case VAlignTop:
		dy = -(anchorBox.M().Height - overlayBox.M().Height)
	case VAlignBottom:
		dy = anchorBox.M().Depth - overlayBox.M().Depth
	case VAlignCenter:
		top := -anchorBox.M().Height
		bottom := anchorBox.M().Depth
		dy = top + ((bottom-top)-(overlayBox.M().Height+overlayBox.M().Depth))/2 + overlayBox.M().Height
	default: // VAlignBaseline
		dy = 0
	}
	dy += a.yOffset

	width := dimen.Max(anchorBox.M().Width, dx+overlayBox.M().Width)
	leftSpill := dimen.DU(0)
	if dx < 0 {
		leftSpill = -dx
	}
	height := dimen.Max(anchorBox.M().Height, overlayBox.M().Height-dy)

	v := box.NewVerticalBox()
	v.SetHeight(height)
	v.SetWidth(width + leftSpill)

	positioned := box.NewDecoratorBox(overlayBox)
	positioned.SetShift(dy)

	row := box.NewHorizontalBox()
	if leftSpill > 0 {
		row.Append(box.NewGlueBox(leftSpill))
	}
	row.Append(box.NewDecoratorBox(anchorBox))
	anchorRow := row

	overlayRow := box.NewHorizontalBox()
	if lead := leftSpill + dx; lead > 0 {
		overlayRow.Append(box.NewGlueBox(lead))
	}
	overlayRow.Append(positioned)

	v.Append(anchorRow, height)
	v.Append(overlayRow, height)
	return v, nil
}
