package happy

import (
	"fmt"
	"io"

	"github.com/emirpasic/gods/stacks/linkedliststack"
)

// Config bounds a run. Zero values mean unlimited.
type Config struct {
	MaxDepth int
	MaxSteps int
}

// Interpreter runs a Program. Calls are kept on an explicit stack of
// activations rather than on the Go stack, so recursion depth is bounded by
// memory (or Config.MaxDepth) only.
type Interpreter struct {
	program *Program
	out     io.Writer
	config  Config

	scopes *Scopes
	calls  *linkedliststack.Stack
	steps  int
}

// activation is an operation list being worked through. Function bodies own
// a frame; conditional branches run in the frame of their function.
type activation struct {
	ops   []Operation
	pc    int
	frame bool
	name  string
}

func NewInterpreter(program *Program, out io.Writer, config Config) *Interpreter {
	return &Interpreter{
		program: program,
		out:     out,
		config:  config,
		scopes:  NewScopes(),
		calls:   linkedliststack.New(),
	}
}

// Depth is the number of frames currently on the scope stack.
func (in *Interpreter) Depth() int {
	return in.scopes.Depth()
}

// Run executes the top-level statements in order. The first failure stops
// the run; no later statement executes. Frames are discarded either way.
func (in *Interpreter) Run() error {
	in.steps = 0
	for _, stmt := range in.program.Statements {
		if err := in.Call(stmt.Class, stmt.Function, stmt.Pos); err != nil {
			return err
		}
	}

	return nil
}

// Call runs a single function to completion.
func (in *Interpreter) Call(class uint32, name string, pos Position) error {
	err := in.call(class, name, pos)
	if err == nil {
		err = in.loop()
	}

	if err != nil {
		runTracer().Errorf("run aborted: %v", err)
		in.reset()
		return err
	}

	return nil
}

func (in *Interpreter) reset() {
	in.calls.Clear()
	in.scopes.Clear()
}

func (in *Interpreter) lookup(class uint32, name string, pos Position) (*Function, error) {
	c, ok := in.program.Classes[class]
	if !ok {
		return nil, &RuntimeError{Kind: RuntimeMissingClass, Class: class, Function: name, Pos: pos}
	}

	fn, ok := c.Functions[name]
	if !ok {
		return nil, &RuntimeError{Kind: RuntimeMissingFunction, Class: class, Function: name, Pos: pos}
	}

	return fn, nil
}

func (in *Interpreter) call(class uint32, name string, pos Position) error {
	fn, err := in.lookup(class, name, pos)
	if err != nil {
		return err
	}

	if in.config.MaxDepth > 0 && in.scopes.Depth() >= in.config.MaxDepth {
		return &RuntimeError{Kind: RuntimeRecursionLimit, Class: class, Function: name, Limit: in.config.MaxDepth, Pos: pos}
	}

	in.scopes.Push()
	in.calls.Push(&activation{ops: fn.Operations, frame: true, name: fmt.Sprintf("%d>%s", class, name)})
	runTracer().Debugf("enter %d>%s, depth %d", class, name, in.scopes.Depth())

	return nil
}

func (in *Interpreter) loop() error {
	for !in.calls.Empty() {
		top, _ := in.calls.Peek()
		act := top.(*activation)

		if act.pc >= len(act.ops) {
			in.calls.Pop()
			if act.frame {
				in.scopes.Pop()
				runTracer().Debugf("leave %s", act.name)
			}

			continue
		}

		op := act.ops[act.pc]
		act.pc++

		if err := in.step(op); err != nil {
			return err
		}
	}

	return nil
}

func (in *Interpreter) step(op Operation) error {
	in.steps++
	if in.config.MaxSteps > 0 && in.steps > in.config.MaxSteps {
		return &RuntimeError{Kind: RuntimeStepQuota, Limit: in.config.MaxSteps}
	}

	switch o := op.(type) {
	case *CallOperation:
		return in.call(o.Class, o.Function, o.Pos)
	case *Conditional:
		return in.conditional(o)
	}

	in.exec(op)
	return nil
}

func (in *Interpreter) conditional(c *Conditional) error {
	switch cond := c.Condition.(type) {
	case *CallOperation, *Conditional:
		// Both yield None, so the otherwise branch runs once they are done.
		in.schedule(c.Else)
		return in.step(cond)
	}

	if in.exec(c.Condition).IsTrue() {
		in.schedule(c.Then)
	} else {
		in.schedule(c.Else)
	}

	return nil
}

func (in *Interpreter) schedule(ops []Operation) {
	if len(ops) == 0 {
		return
	}

	in.calls.Push(&activation{ops: ops})
}

// exec runs an operation that does not transfer control and returns its
// result: the new value of the left variable, or None.
func (in *Interpreter) exec(op Operation) Data {
	frame := in.scopes.Top()

	switch o := op.(type) {
	case *BinaryOperation:
		left, right := frame.Get(o.Left), frame.Get(o.Right)

		var result Data
		switch {
		case o.Operation.IsArithmetic():
			result = left.Arithmetic(o.Operation, right)
		case o.Operation.IsComparison():
			result = NewBool(left.Comparison(o.Operation, right))
		default:
			result = left.Logic(o.Operation, right)
		}

		frame.Set(o.Left, result)
		return result
	case *NotOperation:
		result := frame.Get(o.Var).Not()
		frame.Set(o.Var, result)
		return result
	case *AssignOperation:
		value := o.Value
		for value.Kind() == KindVar {
			value = frame.Get(value.VarName())
		}

		frame.Set(o.Var, value)
		return value
	case *LoadOperation:
		return frame.Get(o.Var)
	case *PrintOperation:
		if _, err := io.WriteString(in.out, frame.Get(o.Var).String()); err != nil {
			runTracer().Errorf("print %s: %v", o.Var, err)
		}
	}

	return NewNone()
}
