package happy

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDiagnostic(t *testing.T) {
	cases := []struct {
		data   string
		expect string
	}{
		{
			"1: A x;;",
			"error: expected ':'\n  --> line 1, column 6\n 1 | 1: A x;;\n   |      ^",
		},
		{
			"1: A: x=1, ;;\n1: B: ;;",
			"error: class already defined (1)\n  --> line 2, column 1\n 2 | 1: B: ;;\n   | ^",
		},
		{
			"1: A: x=\"ü\\q\";;",
			"error: invalid escape sequence\n  --> line 1, column 12\n 1 | 1: A: x=\"ü\\q\";;\n   |            ^",
		},
		{
			"1: A:\tx ? y;;",
			"error: expected operation (unknown operator after `x`)\n  --> line 1, column 9\n 1 | 1: A:\tx ? y;;\n   |      \t  ^",
		},
		{
			"1: A: x",
			"error: unexpected end of input\n  --> line 1, column 8\n 1 | 1: A: x\n   |        ^",
		},
	}

	for _, c := range cases {
		_, err := Parse(c.data)
		require.Error(t, err, c.data)
		assert.Equal(t, c.expect, Diagnostic(c.data, err), c.data)
	}
}

func TestDiagnosticRuntime(t *testing.T) {
	src := "1: A: 2>B;;\n1>A"

	prog, err := Parse(src)
	require.NoError(t, err)

	err = NewInterpreter(prog, nil, Config{}).Run()
	require.Error(t, err)

	got := NewDiagnosticPrinter(src, "main.happy", false).Render(err)
	assert.Equal(t, "runtime error: Not a class: `2`\n  --> main.happy:1:7\n 1 | 1: A: 2>B;;\n   |       ^", got)
}

func TestDiagnosticWithoutPosition(t *testing.T) {
	assert.Equal(t, "error: boom", Diagnostic("1>A", errors.New("boom")))
	assert.Equal(t, "runtime error: step quota exceeded (3)", Diagnostic("1>A", &RuntimeError{Kind: RuntimeStepQuota, Limit: 3}))
}

func TestDiagnosticColor(t *testing.T) {
	_, err := Parse("1: A x;;")
	require.Error(t, err)

	got := NewDiagnosticPrinter("1: A x;;", "", true).Render(err)
	assert.Contains(t, got, "expected ':'")
	assert.Contains(t, got, "1: A x;;")
}
