package happy

import (
	"fmt"
	"sort"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	"github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"
)

type ValueLookup struct {
	vals map[string]value.Value
}

func NewValueLookup() *ValueLookup {
	return &ValueLookup{
		vals: make(map[string]value.Value),
	}
}

func (l *ValueLookup) Get(id string) (value.Value, bool) {
	val, ok := l.vals[id]
	return val, ok
}

func (l *ValueLookup) Set(id string, val value.Value) {
	l.vals[id] = val
}

type IRGenerator interface {
	Do() IR
}

type IR interface {
	fmt.Stringer
}

// LLVMIRBuilder lowers a Program to an LLVM module. Each function becomes
// `i1 @happy.<class>.<NAME>()` returning true on failure, and `@main` runs the
// top-level statements.
type LLVMIRBuilder struct {
	mod     *ir.Module
	values  *ValueLookup
	strings map[string]constant.Constant
	classes map[uint32]bool
}

func NewLLVMIRBuilder() *LLVMIRBuilder {
	builder := &LLVMIRBuilder{
		mod:     ir.NewModule(),
		values:  NewValueLookup(),
		strings: make(map[string]constant.Constant),
		classes: make(map[uint32]bool),
	}

	defineBuiltins(builder)
	return builder
}

func functionSymbol(class uint32, name string) string {
	return fmt.Sprintf("happy.%d.%s", class, name)
}

func (b *LLVMIRBuilder) builtin(name string) value.Value {
	f, ok := b.values.Get(name)
	if !ok {
		panic("undeclared runtime function: " + name)
	}

	return f
}

// str returns an i8* to a private NUL-terminated copy of s.
func (b *LLVMIRBuilder) str(s string) constant.Constant {
	if c, ok := b.strings[s]; ok {
		return c
	}

	data := constant.NewCharArrayFromString(s + "\x00")
	glob := b.mod.NewGlobalDef(fmt.Sprintf(".str.%d", len(b.strings)), data)
	glob.Immutable = true
	glob.Linkage = enum.LinkagePrivate

	zero := constant.NewInt(types.I64, 0)
	ptr := constant.NewGetElementPtr(data.Typ, glob, zero, zero)
	b.strings[s] = ptr

	return ptr
}

func (b *LLVMIRBuilder) declare(class uint32, fn *Function) {
	f := b.mod.NewFunc(functionSymbol(class, fn.Name), types.I1)
	b.values.Set(functionSymbol(class, fn.Name), f)
}

func (b *LLVMIRBuilder) function(class uint32, fn *Function) {
	v, _ := b.values.Get(functionSymbol(class, fn.Name))
	f := v.(*ir.Func)

	entry := f.NewBlock("entry")
	fail := f.NewBlock("fail")
	fail.NewRet(constant.NewBool(true))

	entry.NewCall(b.builtin(builtinFramePush))
	end := b.operations(f, entry, fail, fn.Operations)
	end.NewCall(b.builtin(builtinFramePop))
	end.NewRet(constant.NewBool(false))
}

func (b *LLVMIRBuilder) operations(f *ir.Func, block, fail *ir.Block, ops []Operation) *ir.Block {
	for _, op := range ops {
		block, _ = b.operation(f, block, fail, op)
	}

	return block
}

// operation appends op to block. It returns the block execution continues in
// and the i1 result a conditional tests.
func (b *LLVMIRBuilder) operation(f *ir.Func, block, fail *ir.Block, op Operation) (*ir.Block, value.Value) {
	switch o := op.(type) {
	case *BinaryOperation:
		return block, block.NewCall(b.builtin(binaryBuiltins[o.Operation]), b.str(o.Left), b.str(o.Right))
	case *NotOperation:
		return block, block.NewCall(b.builtin(builtinNot), b.str(o.Var))
	case *LoadOperation:
		return block, block.NewCall(b.builtin(builtinLoad), b.str(o.Var))
	case *AssignOperation:
		return block, b.assign(block, o)
	case *PrintOperation:
		block.NewCall(b.builtin(builtinPrint), b.str(o.Var))
	case *CallOperation:
		return b.call(f, block, fail, o.Class, o.Function), constant.NewBool(false)
	case *Conditional:
		return b.conditional(f, block, fail, o), constant.NewBool(false)
	}

	return block, constant.NewBool(false)
}

func (b *LLVMIRBuilder) assign(block *ir.Block, o *AssignOperation) value.Value {
	name := b.str(o.Var)

	switch v := o.Value; v.Kind() {
	case KindNumber:
		return block.NewCall(b.builtin(builtinAssignNum), name, constant.NewFloat(types.Double, v.Number()))
	case KindString:
		// Strings may hold NUL, so the length travels with the pointer.
		return block.NewCall(b.builtin(builtinAssignStr), name, b.str(v.Str()), constant.NewInt(types.I64, int64(len(v.Str()))))
	case KindBool:
		return block.NewCall(b.builtin(builtinAssignBool), name, constant.NewBool(v.Bool()))
	case KindVar:
		return block.NewCall(b.builtin(builtinAssignVar), name, b.str(v.VarName()))
	default:
		return block.NewCall(b.builtin(builtinAssignNone), name)
	}
}

// call branches to fail when the callee fails. A callee that does not exist
// reports itself through the runtime and fails unconditionally.
func (b *LLVMIRBuilder) call(f *ir.Func, block, fail *ir.Block, class uint32, name string) *ir.Block {
	next := f.NewBlock("")

	callee, ok := b.values.Get(functionSymbol(class, name))
	if !ok {
		block.NewCall(b.builtin(builtinMissing), b.str(b.missingMessage(class, name)))
		block.NewBr(fail)
		return next
	}

	failed := block.NewCall(callee)
	block.NewCondBr(failed, fail, next)

	return next
}

func (b *LLVMIRBuilder) missingMessage(class uint32, name string) string {
	if !b.classes[class] {
		return (&RuntimeError{Kind: RuntimeMissingClass, Class: class}).Error()
	}

	return (&RuntimeError{Kind: RuntimeMissingFunction, Function: name}).Error()
}

func (b *LLVMIRBuilder) conditional(f *ir.Func, block, fail *ir.Block, c *Conditional) *ir.Block {
	block, cond := b.operation(f, block, fail, c.Condition)

	then := f.NewBlock("")
	otherwise := f.NewBlock("")
	join := f.NewBlock("")
	block.NewCondBr(cond, then, otherwise)

	b.operations(f, then, fail, c.Then).NewBr(join)
	b.operations(f, otherwise, fail, c.Else).NewBr(join)

	return join
}

func (b *LLVMIRBuilder) main(stmts []Statement) {
	f := b.mod.NewFunc("main", types.I32)
	entry := f.NewBlock("entry")
	done := f.NewBlock("done")
	done.NewRet(constant.NewInt(types.I32, 0))

	block := entry
	for _, stmt := range stmts {
		block = b.call(f, block, done, stmt.Class, stmt.Function)
	}

	block.NewBr(done)
}

type LLVMGenerator struct {
	program *Program
}

func NewLLVMGenerator(program *Program) *LLVMGenerator {
	return &LLVMGenerator{
		program: program,
	}
}

func (g LLVMGenerator) Do() IR {
	return g.Module()
}

// Module lowers the program. Classes and functions are emitted in sorted
// order so the output is stable.
func (g LLVMGenerator) Module() *ir.Module {
	builder := NewLLVMIRBuilder()

	ids := sortedClassIDs(g.program)
	for _, id := range ids {
		builder.classes[id] = true
		for _, name := range sortedFunctionNames(g.program.Classes[id]) {
			builder.declare(id, g.program.Classes[id].Functions[name])
		}
	}

	for _, id := range ids {
		for _, name := range sortedFunctionNames(g.program.Classes[id]) {
			builder.function(id, g.program.Classes[id].Functions[name])
		}
	}

	builder.main(g.program.Statements)

	return builder.mod
}

func sortedFunctionNames(c *Class) []string {
	names := make([]string, 0, len(c.Functions))
	for name := range c.Functions {
		names = append(names, name)
	}
	sort.Strings(names)

	return names
}
