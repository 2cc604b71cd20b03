package otf

import (
	"fmt"
	"os"

	"github.com/emirpasic/gods/maps/treemap"
)

// CLMVersion is the only .clm format version this loader accepts.
const CLMVersion = 1

var clmMagic = [4]byte{'C', 'L', 'M', '1'}

// fontBinSegm is an in-memory byte segment, adapted from the teacher's
// core/font/ot/bytes.go: we always decode a whole font blob held in memory,
// never an io.ReaderAt, so there is no point copying through a Read buffer.
type fontBinSegm struct {
	b   []byte
	pos int
}

func (s *fontBinSegm) remaining() int { return len(s.b) - s.pos }

func (s *fontBinSegm) u8() (byte, error) {
	if s.remaining() < 1 {
		return 0, ErrEOF
	}
	v := s.b[s.pos]
	s.pos++
	return v, nil
}

func (s *fontBinSegm) u16() (uint16, error) {
	if s.remaining() < 2 {
		return 0, ErrEOF
	}
	v := uint16(s.b[s.pos])<<8 | uint16(s.b[s.pos+1])
	s.pos += 2
	return v, nil
}

func (s *fontBinSegm) i16() (int16, error) {
	v, err := s.u16()
	return int16(v), err
}

func (s *fontBinSegm) u32() (uint32, error) {
	if s.remaining() < 4 {
		return 0, ErrEOF
	}
	v := uint32(s.b[s.pos])<<24 | uint32(s.b[s.pos+1])<<16 | uint32(s.b[s.pos+2])<<8 | uint32(s.b[s.pos+3])
	s.pos += 4
	return v, nil
}

func (s *fontBinSegm) bytes(n int) ([]byte, error) {
	if s.remaining() < n {
		return nil, ErrEOF
	}
	v := s.b[s.pos : s.pos+n]
	s.pos += n
	return v, nil
}

// ---------------------------------------------------------------------------

// LoadFile loads a .clm font from a path on disk.
func LoadFile(path string) (*Font, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("otf: cannot read %s: %w", path, err)
	}
	return Load(data)
}

// Load decodes a .clm font from an in-memory byte range.
func Load(data []byte) (*Font, error) {
	s := &fontBinSegm{b: data}
	if s.remaining() < 6 {
		return nil, ErrEOF
	}
	magic, err := s.bytes(4)
	if err != nil {
		return nil, err
	}
	for i := 0; i < 4; i++ {
		if magic[i] != clmMagic[i] {
			return nil, ErrUnsupportedFormat
		}
	}
	version, err := s.u8()
	if err != nil {
		return nil, err
	}
	if version != CLMVersion {
		return nil, ErrUnsupportedFormat
	}
	flagsByte, err := s.u8()
	if err != nil {
		return nil, err
	}
	isMathFont := flagsByte&0x01 != 0
	hasGlyphPath := flagsByte&0x02 != 0

	f := &Font{isMathFont: isMathFont, hasGlyphPath: hasGlyphPath}

	em, err := s.u16()
	if err != nil {
		return nil, err
	}
	xHeight, err := s.u16()
	if err != nil {
		return nil, err
	}
	ascent, err := s.u16()
	if err != nil {
		return nil, err
	}
	descent, err := s.u16()
	if err != nil {
		return nil, err
	}
	f.em, f.xHeight, f.ascent, f.descent = int16(em), int16(xHeight), int16(ascent), int16(descent)

	if isMathFont {
		mc, err := readMathConsts(s)
		if err != nil {
			return nil, err
		}
		f.mathConsts = mc
	}

	if err := readUnicodeIndex(s, f); err != nil {
		return nil, err
	}
	lig, err := readLigatures(s)
	if err != nil {
		return nil, err
	}
	f.ligatures = lig

	cks, err := readClassKernings(s)
	if err != nil {
		return nil, err
	}
	f.classKernings = cks

	if err := readGlyphs(s, f); err != nil {
		return nil, err
	}

	tracer().Infof("otf: loaded font with %d glyphs, %d codepoints, mathFont=%v",
		len(f.glyphs), len(f.unicodes), f.isMathFont)
	return f, nil
}

func readUnicodeIndex(s *fontBinSegm, f *Font) error {
	count, err := s.u16()
	if err != nil {
		return err
	}
	f.unicodes = make([]uint32, count)
	for i := range f.unicodes {
		cp, err := s.u16()
		if err != nil {
			return err
		}
		f.unicodes[i] = uint32(cp)
	}
	f.glyphOfCP = make([]GlyphID, count)
	for i := range f.glyphOfCP {
		gid, err := s.u16()
		if err != nil {
			return err
		}
		f.glyphOfCP[i] = GlyphID(gid)
	}
	if !validateAscending(f.unicodes) {
		return ErrCorruptFont
	}
	return nil
}

func readLigatures(s *fontBinSegm) (*ligatureTable, error) {
	count, err := s.u16()
	if err != nil {
		return nil, err
	}
	lt := newLigatureTable()
	for i := uint16(0); i < count; i++ {
		seqLen, err := s.u16()
		if err != nil {
			return nil, err
		}
		seq := make([]GlyphID, seqLen)
		for j := range seq {
			gid, err := s.u16()
			if err != nil {
				return nil, err
			}
			seq[j] = GlyphID(gid)
		}
		repl, err := s.u16()
		if err != nil {
			return nil, err
		}
		lt.add(seq, GlyphID(repl))
	}
	return lt, nil
}

// readClassKernings decodes the class-kerning tables. Each table's class
// maps are read into a treemap sorted by glyph id and then copied into
// plain Go maps, which serve the lookups.
func readClassKernings(s *fontBinSegm) ([]*ClassKerning, error) {
	count, err := s.u16()
	if err != nil {
		return nil, err
	}
	tables := make([]*ClassKerning, 0, count)
	for t := uint16(0); t < count; t++ {
		ck, err := readOneClassKerning(s)
		if err != nil {
			return nil, err
		}
		tables = append(tables, ck)
	}
	return tables, nil
}

func readOneClassKerning(s *fontBinSegm) (*ClassKerning, error) {
	leftTree := treemap.NewWithIntComparator()
	leftCount, err := s.u16()
	if err != nil {
		return nil, err
	}
	leftClasses := 0
	for i := uint16(0); i < leftCount; i++ {
		gid, err := s.u16()
		if err != nil {
			return nil, err
		}
		cls, err := s.u16()
		if err != nil {
			return nil, err
		}
		leftTree.Put(int(gid), int(cls))
		if int(cls)+1 > leftClasses {
			leftClasses = int(cls) + 1
		}
	}
	rightTree := treemap.NewWithIntComparator()
	rightCount, err := s.u16()
	if err != nil {
		return nil, err
	}
	rightClasses := 0
	for i := uint16(0); i < rightCount; i++ {
		gid, err := s.u16()
		if err != nil {
			return nil, err
		}
		cls, err := s.u16()
		if err != nil {
			return nil, err
		}
		rightTree.Put(int(gid), int(cls))
		if int(cls)+1 > rightClasses {
			rightClasses = int(cls) + 1
		}
	}
	table := make([][]int16, leftClasses)
	for i := range table {
		table[i] = make([]int16, rightClasses)
		for j := range table[i] {
			v, err := s.i16()
			if err != nil {
				return nil, err
			}
			table[i][j] = v
		}
	}
	ck := &ClassKerning{
		leftClassOf:  treeToMap(leftTree),
		rightClassOf: treeToMap(rightTree),
		table:        table,
	}
	return ck, nil
}

func treeToMap(t *treemap.Map) map[uint16]int {
	m := make(map[uint16]int, t.Size())
	it := t.Iterator()
	for it.Next() {
		m[uint16(it.Key().(int))] = it.Value().(int)
	}
	return m
}

func readGlyphs(s *fontBinSegm, f *Font) error {
	count, err := s.u16()
	if err != nil {
		return err
	}
	f.glyphs = make([]*Glyph, count)
	for i := range f.glyphs {
		g, err := readOneGlyph(s, f.isMathFont, f.hasGlyphPath)
		if err != nil {
			return err
		}
		f.glyphs[i] = g
	}
	for _, id := range f.glyphOfCP {
		if id < 0 || int(id) >= len(f.glyphs) {
			return ErrCorruptFont
		}
	}
	return nil
}

func readOneGlyph(s *fontBinSegm, isMathFont, hasGlyphPath bool) (*Glyph, error) {
	g := &Glyph{}
	vals := make([]int16, 5)
	for i := range vals {
		v, err := s.i16()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	g.Width, g.Height, g.Depth, g.Italic, g.TopAccentAttachment = vals[0], vals[1], vals[2], vals[3], vals[4]

	kr, err := readKernRecord(s)
	if err != nil {
		return nil, err
	}
	g.Kerns = kr

	if isMathFont {
		m, err := readMath(s)
		if err != nil {
			return nil, err
		}
		g.Math = m
	}

	if hasGlyphPath {
		n, err := s.u32()
		if err != nil {
			return nil, err
		}
		path, err := s.bytes(int(n))
		if err != nil {
			return nil, err
		}
		g.Path = path
	}
	return g, nil
}

func readKernRecord(s *fontBinSegm) (*KernRecord, error) {
	count, err := s.u16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return emptyKernRecord, nil
	}
	kr := &KernRecord{glyphIDs: make([]uint16, count), kerns: make([]int16, count)}
	for i := 0; i < int(count); i++ {
		gid, err := s.u16()
		if err != nil {
			return nil, err
		}
		k, err := s.i16()
		if err != nil {
			return nil, err
		}
		kr.glyphIDs[i], kr.kerns[i] = gid, k
	}
	return kr, nil
}

func readVariants(s *fontBinSegm) (*Variants, error) {
	count, err := s.u16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return emptyVariants, nil
	}
	v := &Variants{list: make([]Variant, count)}
	for i := range v.list {
		gid, err := s.u16()
		if err != nil {
			return nil, err
		}
		adv, err := s.i16()
		if err != nil {
			return nil, err
		}
		v.list[i] = Variant{Glyph: GlyphID(gid), Advance: adv}
	}
	return v, nil
}

func readAssembly(s *fontBinSegm) (*GlyphAssembly, error) {
	count, err := s.u16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		italic, err := s.i16()
		if err != nil {
			return nil, err
		}
		if italic == 0 {
			return emptyAssembly, nil
		}
		return &GlyphAssembly{ItalicsCorrection: italic}, nil
	}
	parts := make([]AssemblyPart, count)
	for i := range parts {
		gid, err := s.u16()
		if err != nil {
			return nil, err
		}
		start, err := s.i16()
		if err != nil {
			return nil, err
		}
		end, err := s.i16()
		if err != nil {
			return nil, err
		}
		full, err := s.i16()
		if err != nil {
			return nil, err
		}
		flags, err := s.u8()
		if err != nil {
			return nil, err
		}
		parts[i] = AssemblyPart{
			Glyph: GlyphID(gid), StartConnector: start, EndConnector: end,
			FullAdvance: full, Flags: AssemblyPartFlag(flags),
		}
	}
	italic, err := s.i16()
	if err != nil {
		return nil, err
	}
	return &GlyphAssembly{Parts: parts, ItalicsCorrection: italic}, nil
}

func readMathKern(s *fontBinSegm) (*MathKern, error) {
	count, err := s.u16()
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return emptyMathKern, nil
	}
	mk := &MathKern{heights: make([]int32, count), kerns: make([]int16, count)}
	for i := 0; i < int(count); i++ {
		h, err := s.u32()
		if err != nil {
			return nil, err
		}
		k, err := s.i16()
		if err != nil {
			return nil, err
		}
		mk.heights[i], mk.kerns[i] = int32(h), k
	}
	return mk, nil
}

func readMathKernRecord(s *fontBinSegm) (*MathKernRecord, error) {
	r := &MathKernRecord{}
	for c := 0; c < 4; c++ {
		mk, err := readMathKern(s)
		if err != nil {
			return nil, err
		}
		r.corners[c] = mk
	}
	return r, nil
}

func readMath(s *fontBinSegm) (*Math, error) {
	hv, err := readVariants(s)
	if err != nil {
		return nil, err
	}
	vv, err := readVariants(s)
	if err != nil {
		return nil, err
	}
	ha, err := readAssembly(s)
	if err != nil {
		return nil, err
	}
	va, err := readAssembly(s)
	if err != nil {
		return nil, err
	}
	kr, err := readMathKernRecord(s)
	if err != nil {
		return nil, err
	}
	return &Math{
		HorizontalVariants: hv, VerticalVariants: vv,
		HorizontalAssembly: ha, VerticalAssembly: va,
		Kerns: kr,
	}, nil
}

func readMathConsts(s *fontBinSegm) (*MathConsts, error) {
	var vals [42]int16
	for i := range vals {
		v, err := s.i16()
		if err != nil {
			return nil, err
		}
		vals[i] = v
	}
	mc := &MathConsts{
		ScriptPercentScaleDown: vals[0], ScriptScriptPercentScaleDown: vals[1],
		AxisHeight: vals[2], AccentBaseHeight: vals[3],
		RadicalRuleThickness: vals[4], FractionRuleThickness: vals[5],
		SuperscriptShiftUp: vals[6], SuperscriptShiftUpCramped: vals[7],
		SuperscriptBaselineDropMax: vals[8], SubscriptShiftDown: vals[9],
		SubscriptBaselineDropMin: vals[10], SubSuperscriptGapMin: vals[11],
		SuperscriptBottomMinWithSub: vals[12], SpaceAfterScript: vals[13],
		UpperLimitGapMin: vals[14], UpperLimitBaselineRiseMin: vals[15],
		LowerLimitGapMin: vals[16], LowerLimitBaselineDropMin: vals[17],
		StretchStackGapAboveMin: vals[18], StretchStackGapBelowMin: vals[19],
		FractionNumeratorDisplayStyleShiftUp: vals[20], FractionNumeratorShiftUp: vals[21],
		FractionNumeratorGapMin: vals[22], FractionNumeratorDisplayStyleGapMin: vals[23],
		FractionDenominatorDisplayStyleShiftDown: vals[24], FractionDenominatorShiftDown: vals[25],
		FractionDenominatorGapMin: vals[26], FractionDenominatorDisplayStyleGapMin: vals[27],
		OverbarVerticalGap: vals[28], OverbarRuleThickness: vals[29], OverbarExtraAscender: vals[30],
		UnderbarVerticalGap: vals[31], UnderbarRuleThickness: vals[32], UnderbarExtraDescender: vals[33],
		RadicalVerticalGap: vals[34], RadicalDisplayStyleVerticalGap: vals[35],
		RadicalExtraAscender: vals[36], RadicalKernBeforeDegree: vals[37],
		RadicalKernAfterDegree: vals[38], RadicalDegreeBottomRaisePercent: vals[39],
		DelimitedSubFormulaMinHeight: vals[40], DelimiterDisplayStyleShortfall: vals[41],
	}
	return mc, nil
}
