package main

import (
	"encoding/hex"
	"fmt"

	"github.com/npillmayer/sfntfix/internal/fontload"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/npillmayer/sfntfix/otquery"
	"github.com/pterm/pterm"
)

const dumpSize = 64

func printDirectory(img *ot.FontImage) {
	pterm.Printf("%v\n", img.Header())
	data := [][]string{
		{"Pos", "Tag", "Checksum", "Offset", "Length", "Last sweep"},
	}
	status := map[ot.Tag]string{}
	if sweep, ok := img.LastSweep().Unwrap(); ok {
		for _, res := range sweep.Results {
			status[res.Tag] = res.Status.String()
		}
	}
	for i, rec := range img.Directory().Records() {
		s, ok := status[rec.Tag]
		if !ok {
			s = "-"
		}
		data = append(data, []string{
			fmt.Sprintf("%d", i),
			rec.Tag.Printable(),
			fmt.Sprintf("%08x", rec.Checksum),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
			s,
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printTableData(tag ot.Tag, b []byte) {
	pterm.Printf("table %s has %d bytes, checksum %08x\n", tag.Printable(), len(b), ot.Checksum(b))
	if len(b) > dumpSize {
		pterm.Print(hex.Dump(b[:dumpSize]))
		pterm.Println("...")
		return
	}
	pterm.Print(hex.Dump(b))
}

func printReport(report *ot.SweepReport) {
	data := [][]string{
		{"Tag", "Status", "Stored", "Computed"},
	}
	for _, res := range report.Results {
		data = append(data, []string{
			res.Tag.Printable(),
			res.Status.String(),
			fmt.Sprintf("%08x", res.Stored),
			fmt.Sprintf("%08x", res.Computed),
		})
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	if report.Aborted {
		pterm.Warning.Println("checksum sweep stopped at an invalid tag")
	}
	if report.GlobalErr != nil {
		pterm.Warning.Printf("checksum adjustment not set: %v\n", report.GlobalErr)
	} else {
		pterm.Printf("checksum adjustment %08x (was %08x)\n", report.Global.Adjustment, report.Global.Previous)
	}
}

func headOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	pterm.Printf("font type: %s\n", otquery.FontType(intp.font))
	for k, v := range otquery.NameInfo(intp.font) {
		pterm.Printf("%-10s: %s\n", k, v)
	}
	h, ok := otquery.HeadInfo(intp.font)
	if !ok {
		pterm.Warning.Println("table 'head' missing or too short")
		return nil, false
	}
	pterm.Printf("version %d.%d, revision %08x, units per em %d\n",
		h.MajorVersion, h.MinorVersion, h.FontRevision, h.UnitsPerEm)
	pterm.Printf("checksum adjustment %08x, magic %08x\n", h.CheckSumAdjustment, h.MagicNumber)
	if m, ok := otquery.MaxPInfo(intp.font); ok {
		pterm.Printf("%d glyphs\n", m.NumGlyphs)
		if m.Truncated {
			pterm.Warning.Println("table 'maxp' version 1.0 lacks its TrueType profile")
		}
	}
	return nil, false
}

func fixOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	printReport(intp.font.FixChecksums())
	intp.dirty = true
	return nil, false
}

func verifyOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	report := otquery.Verify(intp.font)
	if report.OK() {
		pterm.Success.Println(report.String())
	} else {
		pterm.Warning.Println(report.String())
	}
	for _, v := range fontload.Probe(intp.font.Serialize()) {
		if v.Accepted {
			pterm.Success.Println(v.String())
		} else {
			pterm.Error.Println(v.String())
		}
	}
	return nil, false
}
