// Command mtexdump loads one or more .clm font files and prints their
// metrics: the face-level numbers, the MATH constants table (if the font
// is a math font), and, when -rune is given, a single glyph's own
// metrics. It is a read-only inspection tool, not a renderer.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/pterm/pterm"

	"github.com/npillmayer/mtex/core/otf"
)

func tracer() tracing.Trace {
	return tracing.Select("mtex.mtexdump")
}

func main() {
	initDisplay()

	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":    "go",
		"trace.mtex.mtexdump": "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Println("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	runeFlag := flag.String("rune", "", "Single rune to look up and dump glyph metrics for")
	flag.Parse()
	tracer().SetTraceLevel(levelFromName(*tlevel))

	if flag.NArg() == 0 {
		pterm.Error.Println("usage: mtexdump [-trace level] [-rune r] font.clm [font.clm ...]")
		os.Exit(2)
	}

	for _, path := range flag.Args() {
		dumpFont(path, *runeFlag)
	}
}

func initDisplay() {
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

func levelFromName(name string) tracing.TraceLevel {
	switch name {
	case "Debug":
		return tracing.LevelDebug
	case "Error":
		return tracing.LevelError
	default:
		return tracing.LevelInfo
	}
}

func dumpFont(path, runeArg string) {
	data, err := os.ReadFile(path)
	if err != nil {
		pterm.Error.Printfln("%s: %v", path, err)
		return
	}
	f, err := otf.Load(data)
	if err != nil {
		pterm.Error.Printfln("%s: %v", path, err)
		return
	}

	pterm.Info.Printfln("%s", path)
	pterm.Printfln("  em=%d xHeight=%d isMathFont=%v glyphs=%d", f.Em(), f.XHeight(), f.IsMathFont(), f.GlyphCount())

	if mc := f.MathConsts(); mc != nil {
		pterm.Printfln("  MathConsts: axisHeight=%d fractionRuleThickness=%d scriptPercentScaleDown=%d scriptScriptPercentScaleDown=%d",
			mc.AxisHeight, mc.FractionRuleThickness, mc.ScriptPercentScaleDown, mc.ScriptScriptPercentScaleDown)
	}

	if runeArg == "" {
		return
	}
	r := []rune(runeArg)[0]
	gid := f.GlyphID(r)
	if gid == otf.NoGlyph {
		pterm.Error.Printfln("  U+%04X: no glyph mapping", r)
		return
	}
	g := f.Glyph(gid)
	if g == nil {
		pterm.Error.Printfln("  U+%04X: glyph id %d out of range", r, gid)
		return
	}
	pterm.Printfln("  U+%04X -> glyph %d: width=%d height=%d depth=%d italic=%d", r, gid, g.Width, g.Height, g.Depth, g.Italic)
}
