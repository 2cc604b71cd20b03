package atom

import (
	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/glue"
)

// RowAtom is an ordered sequence of atoms laid out left to right with
// TeX inter-atom glue inserted between adjacent pairs. Its own
// LeftType/RightType forward to its first/last child (Ord for an empty
// row), matching
// the source's RowAtom::leftType/rightType delegating to the first/last
// element.
type RowAtom struct {
	base
	children []Atom
}

// NewRowAtom creates an empty row.
func NewRowAtom() *RowAtom { return &RowAtom{} }

// Add appends a to the row.
func (r *RowAtom) Add(a Atom) { r.children = append(r.children, a) }

func (r *RowAtom) LeftType() AtomType {
	if len(r.children) == 0 {
		return Ord
	}
	return r.children[0].LeftType()
}

func (r *RowAtom) RightType() AtomType {
	if len(r.children) == 0 {
		return Ord
	}
	return r.children[len(r.children)-1].RightType()
}

// CreateBox walks the children left-to-right, tracking the previous
// atom's right AtomType, and inserts a GlueBox from the glue table (C8)
// between adjacent atoms of differing spacing needs. BreakMarkAtom
// children contribute a zero-width box and do not participate in glue
// lookup on either side beyond their own box.
//
// Before falling back to ordinary glue, two adjacent CharSymbol children
// sharing a font are first offered to the font's ligature table; a match
// collapses both into a single substituted glyph. Failing that, the pair
// is kerned using the left glyph's own KernRecord entry, or the font's
// class-kerning fallback when no direct entry exists.
func (r *RowAtom) CreateBox(e *env.Env) (box.Box, error) {
	h := box.NewHorizontalBox()
	havePrev := false
	var prevType AtomType
	var prevAtom Atom

	i := 0
	for i < len(r.children) {
		child := r.children[i]
		if _, isBreak := child.(*BreakMarkAtom); isBreak {
			b, err := child.CreateBox(e)
			if err != nil {
				return nil, err
			}
			h.Append(b)
			prevAtom = nil
			havePrev = false
			i++
			continue
		}

		if i+1 < len(r.children) {
			if lig, ok := ligatureSubst(e, child, r.children[i+1]); ok {
				if havePrev {
					g := glue.Get(prevType, child.LeftType(), e)
					if !g.IsZero() {
						h.Append(box.NewGlueBox(g.Space))
					}
				}
				h.Append(charBoxFor(e, lig))
				prevType = r.children[i+1].RightType()
				prevAtom = nil
				havePrev = true
				i += 2
				continue
			}
		}

		if havePrev {
			g := glue.Get(prevType, child.LeftType(), e)
			if !g.IsZero() {
				h.Append(box.NewGlueBox(g.Space))
			}
			if prevAtom != nil {
				if k := classKern(e, prevAtom, child); k != 0 {
					h.Append(box.NewGlueBox(k))
				}
			}
		}
		b, err := child.CreateBox(e)
		if err != nil {
			return nil, err
		}
		h.Append(b)
		prevType = child.RightType()
		prevAtom = child
		havePrev = true
		i++
	}
	return h, nil
}
