package main

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/sfntfix/internal/fontload"
	"github.com/npillmayer/sfntfix/ot"
	"github.com/pterm/pterm"
)

// tracer traces with key 'tyse.fonts'
func tracer() tracing.Trace {
	return tracing.Select("tyse.fonts")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":  "go",
		"trace.tyse.fonts": "Info",
		"trace.font.sfnt":  "Info",
		"trace.font.query": "Info",
		"trace.font.load":  "Info",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font to load")
	absolute := flag.Bool("absolute", true, "Table offsets are relative to start of file")
	skipInvalid := flag.Bool("skip-invalid", false, "Checksum sweep skips invalid tags instead of stopping")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError) // will set the correct level later
	pterm.Info.Println("Welcome to SFNT fixer CLI") // colored welcome message
	//
	// set up REPL
	repl, err := readline.New("sfnt > ")
	if err != nil {
		tracer().Errorf("%s", err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl}
	if *absolute {
		intp.opts = append(intp.opts, ot.AbsoluteOffsets)
	}
	if *skipInvalid {
		intp.opts = append(intp.opts, ot.SkipInvalidTags)
	}
	//
	// load font to use
	if *fontname != "" {
		if err := intp.loadFont(*fontname); err != nil { // font name provided by flag
			tracer().Errorf("%s", err.Error())
			os.Exit(4)
		}
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	level, err := traceLevel(*tlevel)
	if err != nil {
		tracer().Errorf("%s", err.Error())
		os.Exit(5)
	}
	for _, key := range []string{"tyse.fonts", "font.sfnt", "font.query", "font.load"} {
		tracing.Select(key).SetTraceLevel(level)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

func traceLevel(name string) (tracing.TraceLevel, error) {
	switch name {
	case "Debug":
		return tracing.LevelDebug, nil
	case "Info":
		return tracing.LevelInfo, nil
	case "Error":
		return tracing.LevelError, nil
	}
	return tracing.LevelError, fmt.Errorf("invalid trace level: %s", name)
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font  *ot.FontImage
	path  string // file the font has been loaded from
	opts  []ot.ParseOption
	repl  *readline.Instance
	table ot.Tag // currently selected table, or 0
	dirty bool   // font has been edited since loading or writing
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	sb := strings.Builder{}
	sb.WriteString(fmt.Sprintf("( font=%s, %d tables", intp.path, intp.font.Directory().Len()))
	if intp.table != 0 {
		sb.WriteString(fmt.Sprintf(", table=%s", intp.table.Printable()))
	}
	if intp.dirty {
		sb.WriteString(", modified")
	}
	sb.WriteString(" )")
	return sb.String()
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		cmd, err := intp.parseCommand(line)
		if err != nil {
			tracer().Errorf("%s", err.Error())
			continue
		}
		err, quit := intp.execute(cmd)
		if err != nil {
			tracer().Errorf("%s", err.Error())
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

type Op struct {
	code   int
	arg    string
	format string
}

type Command struct {
	count int
	op    [32]Op
}

const NOOP = -1
const (
	// op-code QUIT will not have arguments
	QUIT int = iota
	// op-codes below may have arguments
	HELP
	LOAD
	TABLES
	TABLE
	HEAD
	UPDATE
	INSERT
	FIX
	VERIFY
	WRITE
)

var opMap = map[string]int{
	"quit":   QUIT,
	"help":   HELP,
	"load":   LOAD,
	"tables": TABLES,
	"table":  TABLE,
	"head":   HEAD,
	"update": UPDATE,
	"insert": INSERT,
	"fix":    FIX,
	"verify": VERIFY,
	"write":  WRITE,
}

var opNames = []string{
	"quit",
	"help",
	"load",
	"tables",
	"table",
	"head",
	"update",
	"insert",
	"fix",
	"verify",
	"write",
}

var command = Command{}

func resetCommand() {
	command.count = 0
	for i := range command.op {
		command.op[i].code = NOOP
		command.op[i].arg = ""
		command.op[i].format = ""
	}
}

// parseCommand splits a line into steps, which are executed in order.
// A step has the form "op:arg:format", e.g. "table:cmap" or "update:cafe:hex".
func (intp *Intp) parseCommand(line string) (*Command, error) {
	resetCommand()
	steps := strings.Fields(line)
	if len(steps) > len(command.op) {
		return nil, fmt.Errorf("too many steps in command: %d", len(steps))
	}
	command.count = len(steps)
	for i, step := range steps {
		c := strings.Split(step, ":")
		code, ok := opMap[strings.ToLower(c[0])]
		if !ok {
			code = HELP
		}
		command.op[i].code = code
		command.op[i].arg = ""
		if command.op[i].code == QUIT {
			return &command, nil
		}
		tracer().Debugf("parsed command: %v", c)
		command.op[i].arg = getOptArg(c, 1)
		command.op[i].format = getOptArg(c, 2)
		if command.op[i].arg == "" {
			tracer().Debugf("%s", opNames[command.op[i].code])
		} else {
			tracer().Debugf("%s: '%s'", opNames[command.op[i].code], command.op[i].arg)
		}
	}
	return &command, nil
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:   quitOp,
	HELP:   helpOp,
	LOAD:   loadOp,
	TABLES: tablesOp,
	TABLE:  tableOp,
	HEAD:   headOp,
	UPDATE: updateOp,
	INSERT: insertOp,
	FIX:    fixOp,
	VERIFY: verifyOp,
	WRITE:  writeOp,
}

func (intp *Intp) execute(cmd *Command) (err error, stop bool) {
	tracer().Debugf("cmd = %v", cmd.op[:cmd.count])
	for _, c := range cmd.op {
		if c.code == NOOP {
			break
		}
		f, ok := commandFn[c.code]
		if !ok {
			pterm.Error.Printf("unknown command code: %d\n", c.code)
			return nil, false
		}
		err, stop = f(intp, &c)
		if err != nil {
			pterm.Error.Println(err)
			return
		}
		if stop {
			return
		}
	}
	return
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	if intp.dirty {
		pterm.Warning.Println("font has unsaved modifications")
	}
	return nil, true
}

// --- Font Loading -----------------------------------------------------

func loadOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		return errors.New("usage: load:<font file>"), false
	}
	return intp.loadFont(op.arg), false
}

func (intp *Intp) loadFont(fontname string) error {
	f, err := fontload.LoadFontImage(fontname, intp.opts...)
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontname, err)
		return err
	}
	intp.font, intp.path, intp.table, intp.dirty = f.Image, fontname, 0, false
	tracer().Infof("loaded SFNT font = %s", f.Fontname)
	for _, w := range f.Image.Warnings() {
		pterm.Warning.Println(w.String())
	}
	pterm.Printf("font tables: %v\n", f.Image.Directory().Tags())
	return nil
}

// ----------------------------------------------------------------------

var ERR_NO_FONT = errors.New("no font loaded")
var ERR_NO_TABLE = errors.New("no table set")

func (intp *Intp) checkFont() error {
	if intp.font == nil {
		return ERR_NO_FONT
	}
	return nil
}

func (intp *Intp) checkTable() error {
	if err := intp.checkFont(); err != nil {
		return err
	}
	if intp.table == 0 {
		return ERR_NO_TABLE
	}
	return nil
}

func getOptArg(s []string, inx int) string {
	if len(s) > inx {
		return s[inx]
	}
	return ""
}

func (op *Op) noArg() bool {
	return op.arg == ""
}

func (op *Op) hasArg() (string, bool) {
	if op.arg == "" {
		return "", false
	}
	return op.arg, true
}
