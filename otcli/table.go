package main

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/npillmayer/sfntfix/internal/fontload"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/pterm/pterm"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	printDirectory(intp.font)
	return nil, false
}

func tableOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	tag, ok := op.hasArg()
	if !ok {
		return errors.New("usage: table:<tag>"), false
	}
	b, ok := intp.font.Table(ot.T(tag))
	if !ok {
		return errors.New("table not found in font"), false
	}
	intp.table = ot.T(tag)
	tracer().Infof("setting table: %v", tag)
	printTableData(intp.table, b)
	return nil, false
}

// tableData decodes a table payload from a command argument. Format "hex" takes
// the argument as a hex string, format "text" as literal bytes, everything else
// as a file name.
func tableData(op *Op) ([]byte, error) {
	switch op.format {
	case "hex":
		return hex.DecodeString(op.arg)
	case "text":
		return []byte(op.arg), nil
	}
	if op.noArg() {
		return nil, errors.New("missing table data")
	}
	return os.ReadFile(op.arg)
}

// updateOp replaces the content of the current table. Checksums are left
// stale, use 'fix' to repair them.
func updateOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkTable(); err != nil {
		return err, false
	}
	data, err := tableData(op)
	if err != nil {
		return err, false
	}
	if err = intp.font.UpdateTable(intp.table, data, false); err != nil {
		return err, false
	}
	intp.dirty = true
	pterm.Printf("table %s now has %d bytes\n", intp.table.Printable(), len(data))
	return nil, false
}

// insertOp inserts an empty table at a directory position and selects it.
// The position defaults to the end of the directory.
func insertOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	tag, ok := op.hasArg()
	if !ok {
		return errors.New("usage: insert:<tag>[:<position>]"), false
	}
	pos := intp.font.Directory().Len()
	if op.format != "" {
		p, err := strconv.Atoi(op.format)
		if err != nil {
			return fmt.Errorf("directory position not numeric: %v", op.format), false
		}
		pos = p
	}
	if err := intp.font.InsertTable(ot.T(tag), nil, pos, false); err != nil {
		return err, false
	}
	intp.table, intp.dirty = ot.T(tag), true
	pterm.Printf("inserted table %s at position %d\n", intp.table.Printable(),
		intp.font.Directory().Index(intp.table))
	return nil, false
}

func writeOp(intp *Intp, op *Op) (error, bool) {
	if err := intp.checkFont(); err != nil {
		return err, false
	}
	path := intp.path
	if p, ok := op.hasArg(); ok {
		path = p
	}
	if path == "" {
		return errors.New("usage: write:<font file>"), false
	}
	if err := fontload.WriteFont(path, intp.font); err != nil {
		return err, false
	}
	intp.path, intp.dirty = path, false
	pterm.Success.Printf("font written to %s\n", path)
	return nil, false
}
