package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	intp := &Intp{}
	cmd, err := intp.parseCommand("insert:zzzz:3  update:cafe:hex fix")
	require.NoError(t, err)
	require.Equal(t, 3, cmd.count)
	require.Equal(t, Op{code: INSERT, arg: "zzzz", format: "3"}, cmd.op[0])
	require.Equal(t, Op{code: UPDATE, arg: "cafe", format: "hex"}, cmd.op[1])
	require.Equal(t, FIX, cmd.op[2].code)
	require.Equal(t, NOOP, cmd.op[3].code)
	cmd, err = intp.parseCommand("frobnicate")
	require.NoError(t, err)
	require.Equal(t, HELP, cmd.op[0].code)
}

func TestEditSession(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "tyse.fonts")
	defer teardown()
	//
	img, err := ot.Parse([]byte{0, 1, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0})
	require.NoError(t, err)
	require.NoError(t, img.InsertTable(ot.T("head"), make([]byte, 54), 0, true))
	path := filepath.Join(t.TempDir(), "font.ttf")
	require.NoError(t, os.WriteFile(path, img.Serialize(), 0o644))
	//
	intp := &Intp{}
	run := func(line string) bool {
		cmd, err := intp.parseCommand(line)
		require.NoError(t, err)
		err, quit := intp.execute(cmd)
		require.NoError(t, err, line)
		return quit
	}
	cmd, _ := intp.parseCommand("tables")
	err, _ = intp.execute(cmd)
	require.ErrorIs(t, err, ERR_NO_FONT)
	run("load:" + path)
	run("insert:zzzz update:cafebabe01:hex tables")
	require.True(t, intp.dirty)
	require.Equal(t, ot.T("zzzz"), intp.table)
	require.False(t, ot.VerifyGlobal(intp.font.Serialize()))
	run("fix verify head write")
	require.False(t, intp.dirty)
	b, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, ot.VerifyGlobal(b))
	require.Equal(t, 2, intp.font.Directory().Len())
	require.True(t, run("table:zzzz quit"))
}
