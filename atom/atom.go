// Package atom implements the atom algebra: the tagged-variant AST a
// parser builds and the createBox lowering that turns it into a
// box.Box tree. Atoms are immutable once constructed; a single Atom may
// be shared by several parents (the atom graph is a DAG), so CreateBox
// does not mutate its receiver, with one exception: StackAtom.CreateBox
// records the width it computed, which StackAtom.MaxWidth returns.
package atom

import (
	"errors"

	"github.com/npillmayer/schuko/tracing"

	"github.com/npillmayer/mtex/box"
	"github.com/npillmayer/mtex/core/dimen"
	"github.com/npillmayer/mtex/core/env"
	"github.com/npillmayer/mtex/core/glue"
)

func tracer() tracing.Trace {
	return tracing.Select("mtex.atom")
}

// AtomType is glue.AtomType's own type: TeX's eight math atom classes
// double as the left/right classification every Atom exposes for Row's
// glue lookup.
type AtomType = glue.AtomType

const (
	Ord   = glue.Ord
	Op    = glue.Op
	Bin   = glue.Bin
	Rel   = glue.Rel
	Open  = glue.Open
	Close = glue.Close
	Punct = glue.Punct
	Inner = glue.Inner
)

// LimitsType controls whether a big operator's scripts are laid out as
// stacked limits or ordinary sub/superscripts.
type LimitsType uint8

const (
	LimitsNormal  LimitsType = iota // limits iff current style is display
	LimitsDisplay                   // always stacked
	LimitsNone                      // always sub/superscript
)

// Atom is the capability every AST node implements: a minimal capability
// interface replacing deep inheritance.
type Atom interface {
	// CreateBox lowers this atom into a positioned box, given a snapshot
	// of the current layout environment. Pure function of env's current
	// state; any style change it needs is scoped via env.WithStyle /
	// env.WithFontStyle and is guaranteed to be undone on return.
	CreateBox(e *env.Env) (box.Box, error)
	// LeftType and RightType classify this atom's two edges for Row's
	// inter-atom glue lookup.
	LeftType() AtomType
	RightType() AtomType
	// Limits reports this atom's limits placement preference; only
	// meaningful for OperatorAtom, but every atom answers it so Row
	// doesn't need a type switch.
	Limits() LimitsType
}

// base supplies the common defaults (ordinary atom type, normal limits)
// that most variants inherit unmodified, mirroring how few of the
// source's atom classes actually override leftType/rightType/limits.
type base struct {
	atomType AtomType
	limits   LimitsType
}

func (b base) LeftType() AtomType  { return b.atomType }
func (b base) RightType() AtomType { return b.atomType }
func (b base) Limits() LimitsType  { return b.limits }

// ErrScriptsOnBreakMark is returned by NewScriptsAtomChecked when asked to
// attach scripts to a BreakMarkAtom: a break has no glyph for a script to
// attach to, so this is rejected at construction time rather than
// silently accepted and ignored.
var ErrScriptsOnBreakMark = errors.New("atom: scripts are not defined on a BreakMarkAtom")

// zeroBox is the "nothing to draw, no extent" box BreakMarkAtom returns.
func zeroBox() box.Box { return box.NewStrutBox(0, 0, 0) }

// widthOf returns a box's width. No createBox implementation in this
// package calls it.
func widthOf(b box.Box) dimen.DU { return b.M().Width }
