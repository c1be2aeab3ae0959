package happy

import (
	"fmt"
	"sort"
)

// CompileError is a finding of the static analysis. None of them stop a
// program from running; the same situations fail at run time, when reached.
type CompileError interface {
	fmt.Stringer
}

type UndefinedError struct {
	Loc      Position
	Class    uint32
	Function string
}

func (e UndefinedError) String() string {
	return fmt.Sprintf("%s undefined: %d>%s", e.Loc, e.Class, e.Function)
}

type UnusedFunctionError struct {
	Class    uint32
	Function string
}

func (e UnusedFunctionError) String() string {
	return fmt.Sprintf("function %d>%s is never called", e.Class, e.Function)
}

type SymbolTable struct {
	Entries map[string]*Function
}

func NewSymbolTable() *SymbolTable {
	return &SymbolTable{
		Entries: make(map[string]*Function),
	}
}

func symbolKey(class uint32, name string) string {
	return fmt.Sprintf("%d>%s", class, name)
}

func (t *SymbolTable) Add(class uint32, fn *Function) {
	t.Entries[symbolKey(class, fn.Name)] = fn
}

func (t *SymbolTable) Get(class uint32, name string) *Function {
	return t.Entries[symbolKey(class, name)]
}

type ContextAnalyzer struct {
	program *Program
	stab    *SymbolTable
	used    map[string]bool
	errors  []CompileError
}

func NewContextAnalyser(program *Program) *ContextAnalyzer {
	stab := NewSymbolTable()
	for id, class := range program.Classes {
		for _, fn := range class.Functions {
			stab.Add(id, fn)
		}
	}

	return &ContextAnalyzer{
		program: program,
		stab:    stab,
		used:    make(map[string]bool),
	}
}

// Do reports calls to undefined functions, top-level statements first, then
// class by class, followed by functions nothing calls.
func (c *ContextAnalyzer) Do() []CompileError {
	c.errors = nil

	for _, stmt := range c.program.Statements {
		c.resolve(stmt.Class, stmt.Function, stmt.Pos)
	}

	ids := sortedClassIDs(c.program)
	for _, id := range ids {
		for _, name := range sortedFunctionNames(c.program.Classes[id]) {
			c.analyze(c.program.Classes[id].Functions[name].Operations)
		}
	}

	for _, id := range ids {
		for _, name := range sortedFunctionNames(c.program.Classes[id]) {
			if !c.used[symbolKey(id, name)] {
				c.errors = append(c.errors, UnusedFunctionError{Class: id, Function: name})
			}
		}
	}

	return c.errors
}

func (c *ContextAnalyzer) analyze(ops []Operation) {
	for _, op := range ops {
		switch o := op.(type) {
		case *CallOperation:
			c.resolve(o.Class, o.Function, o.Pos)
		case *Conditional:
			c.analyze([]Operation{o.Condition})
			c.analyze(o.Then)
			c.analyze(o.Else)
		}
	}
}

func (c *ContextAnalyzer) resolve(class uint32, name string, pos Position) {
	if c.stab.Get(class, name) == nil {
		c.errors = append(c.errors, UndefinedError{Loc: pos, Class: class, Function: name})
		return
	}

	c.used[symbolKey(class, name)] = true
}

func sortedClassIDs(p *Program) []uint32 {
	ids := make([]uint32, 0, len(p.Classes))
	for id := range p.Classes {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	return ids
}
