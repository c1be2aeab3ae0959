package main

import (
	"fmt"
	"io"

	"github.com/npillmayer/schuko/tracing"
	"github.com/spf13/cobra"

	happy "github.com/Clinery1/happy-esolang/pkg"
)

const (
	toolName      = "happy"
	version       = "0.1.0"
	defaultSource = "program.happy"
)

func tracer() tracing.Trace {
	return tracing.Select("happy.cli")
}

// app carries the state shared by all commands of one invocation.
type app struct {
	stdout   io.Writer
	stderr   io.Writer
	settings settings
	exit     int
}

// run executes the command line and returns the process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	root, a := newRootCmd(stdout, stderr)
	root.SetArgs(args)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(stderr, "error:", err)
		return 2
	}

	return a.exit
}

func newRootCmd(stdout, stderr io.Writer) (*cobra.Command, *app) {
	a := &app{stdout: stdout, stderr: stderr}

	root := &cobra.Command{
		Use:   toolName,
		Short: "Interpreter for the happy language",
		Long: `happy runs programs made of numbered classes of UPPER-case functions.

  1: HI: x="hello", x, ;;
  1>HI
`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			s, err := loadSettings(cmd.Flags())
			if err != nil {
				return err
			}

			a.settings = s
			return configureTracing(s)
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)

	flags := root.PersistentFlags()
	flags.String("trace", "error", "trace level (error, info, debug)")
	flags.Bool("color", true, "colour diagnostics")
	flags.Int("max-depth", 0, "maximum call depth, 0 for unlimited")
	flags.Int("max-steps", 0, "maximum operations per run, 0 for unlimited")

	root.AddCommand(
		&cobra.Command{
			Use:   "run [file]",
			Short: "Run a program",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.runCmd,
		},
		&cobra.Command{
			Use:   "check [file]",
			Short: "Parse a program and report problems",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.checkCmd,
		},
		&cobra.Command{
			Use:   "ir [file]",
			Short: "Print the LLVM IR of a program",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.irCmd,
		},
		&cobra.Command{
			Use:   "outline [file]",
			Short: "List the classes, functions and statements of a program",
			Args:  cobra.MaximumNArgs(1),
			RunE:  a.outlineCmd,
		},
		&cobra.Command{
			Use:   "repl",
			Short: "Start an interactive session",
			Args:  cobra.NoArgs,
			RunE:  a.replCmd,
		},
	)

	return root, a
}

func (a *app) compiler() *happy.Compiler {
	return happy.NewCompiler(a.settings.config())
}

// compile parses the file named in args. Failures are reported here, set the
// exit code and yield a nil unit.
func (a *app) compile(args []string) (*happy.Compiler, *happy.Unit) {
	filename := defaultSource
	if len(args) > 0 {
		filename = args[0]
	}

	c := a.compiler()
	unit, err := c.Compile(filename)
	switch {
	case err != nil && unit == nil:
		fmt.Fprintln(a.stderr, "error:", err)
		a.exit = 1
		return c, nil
	case err != nil:
		fmt.Fprintln(a.stderr, unit.Diagnostic(err, a.settings.Color))
		a.exit = 1
		return c, nil
	}

	tracer().Infof("parsed %s: %d classes, %d statements", filename, len(unit.Program.Classes), len(unit.Program.Statements))
	return c, unit
}

// runCmd only fails the process on a parse error. A run that stops on a
// missing class or function is reported but still exits 0.
func (a *app) runCmd(cmd *cobra.Command, args []string) error {
	c, unit := a.compile(args)
	if unit == nil {
		return nil
	}

	if err := c.Run(unit, a.stdout); err != nil {
		fmt.Fprintln(a.stderr, unit.Diagnostic(err, a.settings.Color))
	}

	return nil
}

func (a *app) checkCmd(cmd *cobra.Command, args []string) error {
	_, unit := a.compile(args)
	if unit == nil {
		return nil
	}

	for _, finding := range happy.NewContextAnalyser(unit.Program).Do() {
		fmt.Fprintln(a.stderr, "warning:", finding)
	}

	fmt.Fprintln(a.stdout, "ok")
	return nil
}

func (a *app) irCmd(cmd *cobra.Command, args []string) error {
	c, unit := a.compile(args)
	if unit == nil {
		return nil
	}

	fmt.Fprintln(a.stdout, c.IR(unit))
	return nil
}

func (a *app) outlineCmd(cmd *cobra.Command, args []string) error {
	_, unit := a.compile(args)
	if unit == nil {
		return nil
	}

	fmt.Fprintln(a.stdout, happy.Outline(unit.Program))
	return nil
}

func (a *app) replCmd(cmd *cobra.Command, args []string) error {
	r, err := newREPL(toolName, version)
	if err != nil {
		return err
	}

	stdout, stderr := r.Outputs()
	r.interpreter = newSession(stdout, stderr, a.settings)
	r.Prompt()

	return nil
}
