package main

import (
	"encoding/hex"
	"fmt"
	"os"
	"strings"

	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/sfntfix/internal/fontload"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/thatisuday/commando"
)

func main() {
	commando.
		SetExecutableName("ot-tools").
		SetVersion("v0.0.1").
		SetDescription("CLI for editing SFNT fonts with arbitrary tables and repairing their checksums.")

	commando.
		Register("info").
		SetDescription("Print the table directory and diagnostics for an SFNT font.").
		SetShortDescription("font diagnostics").
		AddArgument("font", "SFNT font file path", "").
		AddArgument("tables...", "optional list of table tags to dump (e.g. head,maxp)", "").
		AddFlag("relative,r", "table offsets are relative to the start of table data", commando.Bool, nil).
		AddFlag("errors,e", "print parse warnings", commando.Bool, nil).
		AddFlag("verbose,V", "trace library operations", commando.Bool, nil).
		SetAction(withTracing(runInfoCommand))

	commando.
		Register("fix").
		SetDescription("Recompute all table checksums and the checksum adjustment of a font.").
		SetShortDescription("repair checksums").
		AddArgument("font", "SFNT font file path", "").
		AddFlag("output,o", "output file ('-' overwrites the input font)", commando.String, "-").
		AddFlag("relative,r", "table offsets are relative to the start of table data", commando.Bool, nil).
		AddFlag("skip-invalid,s", "skip tables with invalid tags instead of stopping", commando.Bool, nil).
		AddFlag("verbose,V", "trace library operations", commando.Bool, nil).
		SetAction(withTracing(runFixCommand))

	commando.
		Register("replace").
		SetDescription("Replace the content of a table and repair checksums.").
		SetShortDescription("replace a table").
		AddArgument("font", "SFNT font file path", "").
		AddArgument("tag", "table tag", "").
		AddArgument("data", "file holding the new content (or hex string with --hex)", "").
		AddFlag("output,o", "output file ('-' overwrites the input font)", commando.String, "-").
		AddFlag("hex,x", "data argument is a hex string", commando.Bool, nil).
		AddFlag("relative,r", "table offsets are relative to the start of table data", commando.Bool, nil).
		AddFlag("nofix,n", "leave checksums stale", commando.Bool, nil).
		AddFlag("verbose,V", "trace library operations", commando.Bool, nil).
		SetAction(withTracing(runReplaceCommand))

	commando.
		Register("insert").
		SetDescription("Insert a new table and repair checksums.").
		SetShortDescription("insert a table").
		AddArgument("font", "SFNT font file path", "").
		AddArgument("tag", "table tag", "").
		AddArgument("data", "file holding the content (or hex string with --hex)", "").
		AddFlag("position,p", "directory position (-1 appends)", commando.Int, -1).
		AddFlag("output,o", "output file ('-' overwrites the input font)", commando.String, "-").
		AddFlag("hex,x", "data argument is a hex string", commando.Bool, nil).
		AddFlag("relative,r", "table offsets are relative to the start of table data", commando.Bool, nil).
		AddFlag("nofix,n", "leave checksums stale", commando.Bool, nil).
		AddFlag("verbose,V", "trace library operations", commando.Bool, nil).
		SetAction(withTracing(runInsertCommand))

	commando.
		Register("verify").
		SetDescription("Check checksums of a font and probe its acceptance by SFNT parsers.").
		SetShortDescription("verify a font").
		AddArgument("font", "SFNT font file path", "").
		AddFlag("relative,r", "table offsets are relative to the start of table data", commando.Bool, nil).
		AddFlag("verbose,V", "trace library operations", commando.Bool, nil).
		SetAction(withTracing(runVerifyCommand))

	commando.Parse(nil)
}

type action func(map[string]commando.ArgValue, map[string]commando.FlagValue)

// withTracing configures tracing from flag --verbose before running a command.
func withTracing(run action) action {
	return func(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
		setupTracing(traceLevel(flags))
		run(args, flags)
	}
}

// traceLevel is Debug with --verbose and Error otherwise.
func traceLevel(flags map[string]commando.FlagValue) string {
	if f, ok := flags["verbose"]; ok && mustFlagBool(f, "verbose") {
		return "Debug"
	}
	return "Error"
}

// setupTracing routes the traces of the font packages to the Go logger.
func setupTracing(level string) {
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.font.sfnt":  level,
		"trace.font.query": level,
		"trace.font.load":  level,
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fatalf("cannot configure tracing: %v", err)
	}
	tracing.SetTraceSelector(trace2go.Selector())
}

// parseOptions translates command flags into parse options. Fonts in the wild
// use offsets relative to the start of the file, thus this is the default.
func parseOptions(flags map[string]commando.FlagValue) []ot.ParseOption {
	var opts []ot.ParseOption
	if f, ok := flags["relative"]; !ok || !mustFlagBool(f, "relative") {
		opts = append(opts, ot.AbsoluteOffsets)
	}
	if f, ok := flags["skip-invalid"]; ok && mustFlagBool(f, "skip-invalid") {
		opts = append(opts, ot.SkipInvalidTags)
	}
	return opts
}

// outputPath returns the output file, given by flag --output, defaulting to
// the input file.
func outputPath(input string, flags map[string]commando.FlagValue) string {
	out, err := flags["output"].GetString()
	if err != nil {
		fatalf("invalid --output flag: %v", err)
	}
	if out = strings.TrimSpace(out); out == "" || out == "-" {
		return input
	}
	return out
}

// tableData reads the content of a table, either from a file or from a hex string.
func tableData(arg string, isHex bool) ([]byte, error) {
	if isHex {
		return hex.DecodeString(strings.TrimPrefix(arg, "0x"))
	}
	return os.ReadFile(arg)
}

func splitCSVSpace(spec string) []string {
	return strings.FieldsFunc(spec, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t' || r == '\n'
	})
}

func mustLoadFont(path string, opts []ot.ParseOption) *ot.FontImage {
	f, err := fontload.LoadFontImage(path, opts...)
	if err != nil {
		fatalf("cannot load font %s: %v", path, err)
	}
	return f.Image
}

func mustFontArg(args map[string]commando.ArgValue) string {
	fontPath := strings.TrimSpace(args["font"].Value)
	if fontPath == "" {
		fatalf("font path is required")
	}
	return fontPath
}

func mustFlagInt(flag commando.FlagValue, name string) int {
	n, err := flag.GetInt()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return n
}

func mustFlagBool(flag commando.FlagValue, name string) bool {
	b, err := flag.GetBool()
	if err != nil {
		fatalf("invalid --%s flag: %v", name, err)
	}
	return b
}

func fatalf(format string, args ...interface{}) {
	_, _ = fmt.Fprintf(os.Stderr, "ot-tools: "+format+"\n", args...)
	os.Exit(1)
}
