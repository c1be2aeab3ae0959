package happy

import (
	"testing"

	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValueLookup(t *testing.T) {
	vals := NewValueLookup()

	val1 := constant.NewInt(types.I32, 1)
	val2 := constant.NewInt(types.I32, 2)

	vals.Set("id1", val1)
	vals.Set("id2", val2)

	got, ok := vals.Get("id1")
	assert.True(t, ok)
	assert.Equal(t, val1, got)

	got, ok = vals.Get("id2")
	assert.True(t, ok)
	assert.Equal(t, val2, got)

	_, ok = vals.Get("id3")
	assert.False(t, ok)
}

func TestLLVMGenerator(t *testing.T) {
	prog, err := Parse(`
2: B: y="hi", y; A: ;;
1: A: x=1.5, y=x, x+y, (x>y)?{2>B}:{x!}, b=true, n=z, 3>C;;
1>A 2>B`)
	require.NoError(t, err)

	mod := NewLLVMGenerator(prog).Module()

	var names []string
	for _, f := range mod.Funcs {
		names = append(names, f.Name())
	}
	assert.Subset(t, names, []string{"happy.1.A", "happy.2.A", "happy.2.B", "main"})
	assert.Equal(t, "main", names[len(names)-1])

	out := NewLLVMGenerator(prog).Do().String()

	cases := []string{
		"declare void @happy_frame_push()",
		"declare i1 @happy_add(i8* %left, i8* %right)",
		"define i1 @happy.1.A()",
		"define i1 @happy.2.B()",
		"define i32 @main()",
		"call void @happy_frame_push()",
		"call i1 @happy_assign_num(",
		"double 1.5",
		"call i1 @happy_assign_var(",
		"call i1 @happy_assign_bool(",
		"call i1 @happy_assign_str(",
		"call i1 @happy_gt(",
		"call i1 @happy_not(",
		"call i1 @happy.2.B()",
		"call void @happy_print(",
		"call void @happy_missing(",
		`c"Not a class: ` + "`3`" + `\00"`,
		`c"hi\00"`,
		"ret i1 true",
		"ret i32 0",
	}

	for _, c := range cases {
		assert.Contains(t, out, c)
	}
}

func TestLLVMGeneratorStable(t *testing.T) {
	prog, err := Parse("3: C: ;; 1: B: 3>C; A: 1>B;; 2: Z: x, 1>Q;; 1>A 2>Z")
	require.NoError(t, err)

	first := NewLLVMGenerator(prog).Do().String()
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, NewLLVMGenerator(prog).Do().String())
	}

	assert.Contains(t, first, `c"Not a function: `+"`Q`"+`\00"`)
}

func TestLLVMGeneratorStringLength(t *testing.T) {
	prog, err := Parse(`1: A: x="a\0b";; 1>A`)
	require.NoError(t, err)

	out := NewLLVMGenerator(prog).Do().String()
	assert.Contains(t, out, "declare i1 @happy_assign_str(i8* %var, i8* %s, i64 %len)")
	assert.Contains(t, out, `c"a\00b\00"`)
	assert.Contains(t, out, "i64 3)")
}

func TestLLVMIRBuilderStrings(t *testing.T) {
	b := NewLLVMIRBuilder()

	first := b.str("x")
	assert.Equal(t, first, b.str("x"), "identical strings share one global")
	assert.NotEqual(t, first, b.str("y"))
	assert.Len(t, b.mod.Globals, 2)
}
