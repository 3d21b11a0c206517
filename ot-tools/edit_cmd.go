package main

import (
	"fmt"
	"os"

	"github.com/npillmayer/sfntfix/internal/fontload"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/npillmayer/sfntfix/otquery"
	"github.com/thatisuday/commando"
)

func runFixCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontArg(args)
	img := mustLoadFont(fontPath, parseOptions(flags))
	report := img.FixChecksums()
	fmt.Print(formatReport(report))
	mustWrite(outputPath(fontPath, flags), img)
}

func runReplaceCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontArg(args)
	img := mustLoadFont(fontPath, parseOptions(flags))
	data, err := tableData(args["data"].Value, mustFlagBool(flags["hex"], "hex"))
	if err != nil {
		fatalf("cannot read table data: %v", err)
	}
	fix := !mustFlagBool(flags["nofix"], "nofix")
	if err = img.UpdateTable(ot.T(args["tag"].Value), data, fix); err != nil {
		fatalf("%v", err)
	}
	mustWrite(outputPath(fontPath, flags), img)
}

func runInsertCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontArg(args)
	img := mustLoadFont(fontPath, parseOptions(flags))
	data, err := tableData(args["data"].Value, mustFlagBool(flags["hex"], "hex"))
	if err != nil {
		fatalf("cannot read table data: %v", err)
	}
	fix := !mustFlagBool(flags["nofix"], "nofix")
	pos := mustFlagInt(flags["position"], "position")
	if err = insertTable(img, ot.T(args["tag"].Value), data, pos, fix); err != nil {
		fatalf("%v", err)
	}
	mustWrite(outputPath(fontPath, flags), img)
}

// insertTable inserts a table at a directory position, with negative positions
// appending the table.
func insertTable(img *ot.FontImage, tag ot.Tag, data []byte, pos int, fix bool) error {
	if pos < 0 {
		pos = img.Directory().Len()
	}
	return img.InsertTable(tag, data, pos, fix)
}

func runVerifyCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontArg(args)
	img := mustLoadFont(fontPath, parseOptions(flags))
	ok := verify(img)
	if !ok {
		os.Exit(2)
	}
}

// verify prints the integrity report and parser verdicts for a font, and
// reports whether the font passes both.
func verify(img *ot.FontImage) bool {
	report := otquery.Verify(img)
	fmt.Printf("Integrity: %s\n", report.String())
	for _, tag := range report.Mismatches() {
		fmt.Printf("  checksum of '%s' wrong\n", tag.Printable())
	}
	verdicts := fontload.Probe(img.Serialize())
	for _, v := range verdicts {
		fmt.Printf("Probe: %s\n", v.String())
	}
	return report.OK() && fontload.Accepted(verdicts)
}

func formatReport(report *ot.SweepReport) string {
	s := ""
	for _, res := range report.Results {
		s += fmt.Sprintf("'%s' %s", res.Tag.Printable(), res.Status)
		if res.Status == ot.StatusRepaired {
			s += fmt.Sprintf(" (%08x -> %08x)", res.Stored, res.Computed)
		}
		if res.Err != nil {
			s += fmt.Sprintf(": %v", res.Err)
		}
		s += "\n"
	}
	return s + report.String() + "\n"
}

func mustWrite(path string, img *ot.FontImage) {
	if err := fontload.WriteFont(path, img); err != nil {
		fatalf("cannot write font %s: %v", path, err)
	}
	fmt.Printf("Wrote %s\n", path)
}
