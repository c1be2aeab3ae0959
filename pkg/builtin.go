package happy

import (
	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/types"
)

// Runtime entry points the lowered module links against. Every operation on
// variables goes through the runtime, which owns the frames; the i1 results
// report whether the left variable now holds boolean true.
const (
	builtinFramePush  = "happy_frame_push"
	builtinFramePop   = "happy_frame_pop"
	builtinPrint      = "happy_print"
	builtinLoad       = "happy_load"
	builtinNot        = "happy_not"
	builtinAssignNum  = "happy_assign_num"
	builtinAssignStr  = "happy_assign_str"
	builtinAssignBool = "happy_assign_bool"
	builtinAssignVar  = "happy_assign_var"
	builtinAssignNone = "happy_assign_none"
	builtinMissing    = "happy_missing"
)

var binaryBuiltins = map[BinaryOp]string{
	BinaryAddition:       "happy_add",
	BinarySubtraction:    "happy_sub",
	BinaryMultiplication: "happy_mul",
	BinaryDivision:       "happy_div",
	BinaryModulo:         "happy_mod",
	BinaryEqual:          "happy_eq",
	BinaryNotEqual:       "happy_ne",
	BinaryGreater:        "happy_gt",
	BinaryLess:           "happy_lt",
	BinaryGreaterEqual:   "happy_ge",
	BinaryLessEqual:      "happy_le",
	BinaryAnd:            "happy_and",
	BinaryOr:             "happy_or",
}

func defineBuiltins(b *LLVMIRBuilder) {
	defineBuiltinFunc(b, builtinFramePush, types.Void)
	defineBuiltinFunc(b, builtinFramePop, types.Void)
	defineBuiltinFunc(b, builtinPrint, types.Void, ir.NewParam("var", types.I8Ptr))
	defineBuiltinFunc(b, builtinLoad, types.I1, ir.NewParam("var", types.I8Ptr))
	defineBuiltinFunc(b, builtinNot, types.I1, ir.NewParam("var", types.I8Ptr))
	defineBuiltinFunc(b, builtinAssignNum, types.I1, ir.NewParam("var", types.I8Ptr), ir.NewParam("n", types.Double))
	defineBuiltinFunc(b, builtinAssignStr, types.I1, ir.NewParam("var", types.I8Ptr), ir.NewParam("s", types.I8Ptr), ir.NewParam("len", types.I64))
	defineBuiltinFunc(b, builtinAssignBool, types.I1, ir.NewParam("var", types.I8Ptr), ir.NewParam("b", types.I1))
	defineBuiltinFunc(b, builtinAssignVar, types.I1, ir.NewParam("var", types.I8Ptr), ir.NewParam("src", types.I8Ptr))
	defineBuiltinFunc(b, builtinAssignNone, types.I1, ir.NewParam("var", types.I8Ptr))
	defineBuiltinFunc(b, builtinMissing, types.Void, ir.NewParam("msg", types.I8Ptr))

	for _, name := range sortedBinaryBuiltins() {
		defineBuiltinFunc(b, name, types.I1, ir.NewParam("left", types.I8Ptr), ir.NewParam("right", types.I8Ptr))
	}
}

func defineBuiltinFunc(b *LLVMIRBuilder, name string, ret types.Type, params ...*ir.Param) {
	f := b.mod.NewFunc(name, ret, params...)
	b.values.Set(name, f)
}

func sortedBinaryBuiltins() []string {
	order := []BinaryOp{
		BinaryAddition, BinarySubtraction, BinaryMultiplication, BinaryDivision, BinaryModulo,
		BinaryEqual, BinaryNotEqual, BinaryGreater, BinaryLess, BinaryGreaterEqual, BinaryLessEqual,
		BinaryAnd, BinaryOr,
	}

	names := make([]string, 0, len(order))
	for _, op := range order {
		names = append(names, binaryBuiltins[op])
	}

	return names
}
