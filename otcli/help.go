package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(topic)
	switch t {
	case "checksum", "checksums", "fix":
		pterm.Info.Println("Checksums")
		pterm.Println(`
	Every table record holds a checksum of the table's content, i.e. the sum
	of its big-endian 32-bit words. Table 'head' is excluded; instead it holds
	field checkSumAdjustment (bytes 8-11), which makes the sum of the complete
	font file equal 0xB1B0AFBA.
	+------------+---------------------------------------+
	| fix        | repair table checksums and adjustment |
	| verify     | check without repairing, probe font   |
	+------------+---------------------------------------+
	`)
	case "edit", "update", "insert":
		pterm.Info.Println("Editing")
		pterm.Println(`
	table:<tag>            select a table and show its content
	update:<file>          replace content of selected table with file content
	update:<hex>:hex       ... with hex-encoded bytes
	update:<text>:text     ... with literal text
	insert:<tag>[:<pos>]   insert an empty table and select it
	write[:<file>]         write the font

	Steps may be chained: "insert:zzzz:3 update:cafe:hex fix write"
	`)
	default:
		pterm.Info.Println("Commands: load, tables, table, head, update, insert, fix, verify, write, quit")
		pterm.Println("Help topics: help:edit, help:checksum")
	}
}
