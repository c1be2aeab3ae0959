package happy

import (
	"io"
	"os"
)

// Unit is a source file and, once parsed, its program.
type Unit struct {
	Filename string
	Source   string
	Program  *Program
}

// Diagnostic renders err against the unit's source.
func (u *Unit) Diagnostic(err error, color bool) string {
	return NewDiagnosticPrinter(u.Source, u.Filename, color).Render(err)
}

type Compiler struct {
	Config Config
}

func NewCompiler(config Config) *Compiler {
	return &Compiler{Config: config}
}

// Compile reads and parses filename. On a parse error the returned unit
// still carries the source so the error can be rendered.
func (c *Compiler) Compile(filename string) (*Unit, error) {
	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return c.CompileFromReader(filename, f)
}

func (c *Compiler) CompileFromReader(filename string, reader io.Reader) (*Unit, error) {
	src, err := io.ReadAll(reader)
	if err != nil {
		return nil, err
	}

	unit := &Unit{Filename: filename, Source: string(src)}

	prog, err := Parse(unit.Source)
	if err != nil {
		return unit, err
	}

	unit.Program = prog
	return unit, nil
}

func (c *Compiler) Run(u *Unit, out io.Writer) error {
	return NewInterpreter(u.Program, out, c.Config).Run()
}

func (c *Compiler) IR(u *Unit) string {
	return NewLLVMGenerator(u.Program).Do().String()
}
