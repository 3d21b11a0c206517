package main

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/npillmayer/sfntfix/ot"
	"github.com/npillmayer/sfntfix/otquery"
	"github.com/thatisuday/commando"
)

func runInfoCommand(args map[string]commando.ArgValue, flags map[string]commando.FlagValue) {
	fontPath := mustFontArg(args)
	img := mustLoadFont(fontPath, parseOptions(flags))

	fmt.Printf("Path: %s\n", fontPath)
	fmt.Printf("Type: %s\n", otquery.FontType(img))
	names := otquery.NameInfo(img)
	if family := names["family"]; family != "" {
		fmt.Printf("Family: %s\n", family)
	}
	if sub := names["subfamily"]; sub != "" {
		fmt.Printf("Subfamily: %s\n", sub)
	}
	if version := names["version"]; version != "" {
		fmt.Printf("Version: %s\n", version)
	}
	fmt.Printf("Header: %v\n", img.Header())
	fmt.Print(formatDirectory(img))

	warns := img.Warnings()
	fmt.Printf("Issues: warnings=%d\n", len(warns))

	if len(args["tables"].Value) > 0 {
		printSelectedTables(img, args["tables"].Value)
	}
	if mustFlagBool(flags["errors"], "errors") {
		for _, w := range warns {
			fmt.Printf("warning: %s\n", w.String())
		}
	}
}

// formatDirectory lists the table records in directory order.
func formatDirectory(img *ot.FontImage) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Tables (%d):\n", img.Directory().Len()))
	for i, rec := range img.Directory().Records() {
		sb.WriteString(fmt.Sprintf("%4d  %-6s checksum=%08x offset=%-8d length=%d\n",
			i, "'"+rec.Tag.Printable()+"'", rec.Checksum, rec.Offset, rec.Length))
	}
	return sb.String()
}

func printSelectedTables(img *ot.FontImage, raw string) {
	requested := splitCSVSpace(raw)
	for _, t := range requested {
		tagName := strings.TrimSpace(t)
		if tagName == "" {
			continue
		}
		b, ok := img.Table(ot.T(tagName))
		if !ok {
			fmt.Printf("table %s: missing\n", tagName)
			continue
		}
		fmt.Printf("table %s: size=%d checksum=%08x\n", tagName, len(b), ot.Checksum(b))
		fmt.Print(hex.Dump(b))
	}
}
