package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/chzyer/readline"
	prtxt "github.com/jedib0t/go-pretty/v6/text"

	happy "github.com/Clinery1/happy-esolang/pkg"
)

const welcomeMessage = "Welcome to %s [V%s]"

func prompt(toolname string) string {
	return prtxt.FgGreen.Sprint(toolname + "> ")
}

// commandInterpreter receives every line that is not a REPL command.
type commandInterpreter interface {
	InterpretCommand(string)
	Classes(io.Writer)
}

type repl struct {
	interpreter commandInterpreter
	readline    *readline.Instance
	stderr      io.Writer
	toolname    string
	version     string
	editmode    string
}

func newREPL(toolname, version string) (*repl, error) {
	histfile := fmt.Sprintf("%s/%s-repl-history.tmp", os.TempDir(), toolname)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:              prompt(toolname),
		HistoryFile:         histfile,
		AutoComplete:        replCompleter,
		InterruptPrompt:     "^C",
		EOFPrompt:           "exit",
		HistorySearchFold:   true,
		FuncFilterInputRune: filterReplInput,
	})
	if err != nil {
		return nil, err
	}

	return &repl{
		readline: rl,
		stderr:   rl.Stderr(),
		toolname: toolname,
		version:  version,
		editmode: "emacs",
	}, nil
}

var replCompleter = readline.NewPrefixCompleter(
	readline.PcItem("help"),
	readline.PcItem("bye"),
	readline.PcItem("mode",
		readline.PcItem("vi"),
		readline.PcItem("emacs"),
	),
	readline.PcItem("classes"),
)

func (r *repl) Outputs() (io.Writer, io.Writer) {
	return r.readline.Stdout(), r.readline.Stderr()
}

func (r *repl) displayCommands(out io.Writer) {
	fmt.Fprintf(out, welcomeMessage, r.toolname, r.version)
	io.WriteString(out, "\n\nThe following commands are available:\n\n")
	io.WriteString(out, "  help               : print this message\n")
	io.WriteString(out, "  bye                : quit\n")
	io.WriteString(out, "  mode [mode]        : display or set current editing mode\n")
	io.WriteString(out, "  classes            : list the classes defined so far\n")
	io.WriteString(out, "\nAnything else is read as program text. Classes are kept for the\n")
	io.WriteString(out, "rest of the session, statements like 1>MAIN run right away.\n")
}

// Prompt reads lines until bye, ^C on an empty line or end of input.
func (r *repl) Prompt() {
	defer r.readline.Close()

	fmt.Fprintf(r.stderr, welcomeMessage+"\n", r.toolname, r.version)
	for {
		line, err := r.readline.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				break
			}
			continue
		} else if err == io.EOF {
			break
		}

		line = strings.TrimSpace(line)
		words := strings.Fields(line)
		command := ""
		if len(words) > 0 {
			command = words[0]
		}

		if r.executeCommand(command, words, line) {
			break
		}
	}
}

// executeCommand runs a REPL command or hands the line to the interpreter.
// It returns true when the session should end.
func (r *repl) executeCommand(cmd string, args []string, line string) bool {
	switch cmd {
	case "":
	case "help":
		r.displayCommands(r.stderr)
	case "bye":
		io.WriteString(r.stderr, "> goodbye!\n")
		return true
	case "mode":
		if len(args) > 1 && (args[1] == "vi" || args[1] == "emacs") {
			r.readline.SetVimMode(args[1] == "vi")
			r.editmode = args[1]
			return false
		}
		fmt.Fprintf(r.stderr, "> current input mode: %s\n", r.editmode)
	case "classes":
		if r.interpreter != nil {
			r.interpreter.Classes(r.stderr)
		}
	default:
		tracer().Debugf("call interpreter on: '%s'", line)
		if r.interpreter != nil {
			r.interpreter.InterpretCommand(line)
		}
	}

	return false
}

// Input filter for the REPL. Blocks ctrl-z.
func filterReplInput(r rune) (rune, bool) {
	switch r {
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

// session is a program that grows line by line.
type session struct {
	program  *happy.Program
	stdout   io.Writer
	stderr   io.Writer
	settings settings
}

func newSession(stdout, stderr io.Writer, s settings) *session {
	return &session{
		program:  &happy.Program{Classes: make(map[uint32]*happy.Class)},
		stdout:   stdout,
		stderr:   stderr,
		settings: s,
	}
}

// InterpretCommand parses line as program text. Its classes replace any
// earlier class with the same number; its statements run against every class
// known so far.
func (s *session) InterpretCommand(line string) {
	prog, err := happy.Parse(line)
	if err != nil {
		fmt.Fprintln(s.stderr, happy.NewDiagnosticPrinter(line, "", s.settings.Color).Render(err))
		return
	}

	for id, class := range prog.Classes {
		if _, exists := s.program.Classes[id]; exists {
			tracer().Infof("class %d redefined", id)
		}
		s.program.Classes[id] = class
	}

	if len(prog.Statements) == 0 {
		return
	}

	var out strings.Builder
	run := &happy.Program{Classes: s.program.Classes, Statements: prog.Statements}
	err = happy.NewInterpreter(run, &out, s.settings.config()).Run()

	if out.Len() > 0 {
		fmt.Fprintln(s.stdout, out.String())
	}
	if err != nil {
		fmt.Fprintln(s.stderr, happy.NewDiagnosticPrinter(line, "", s.settings.Color).Render(err))
	}
}

func (s *session) Classes(w io.Writer) {
	fmt.Fprintln(w, happy.Outline(s.program))
}
