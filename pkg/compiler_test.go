package happy

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompiler(t *testing.T) {
	path := filepath.Join(t.TempDir(), "program.happy")
	require.NoError(t, os.WriteFile(path, []byte("1: A: x=\"hello\", x, ;;\n1>A"), 0o644))

	c := NewCompiler(Config{})
	unit, err := c.Compile(path)
	require.NoError(t, err)
	assert.Equal(t, path, unit.Filename)

	var out strings.Builder
	require.NoError(t, c.Run(unit, &out))
	assert.Equal(t, "hello", out.String())

	assert.Contains(t, c.IR(unit), "define i1 @happy.1.A()")
}

func TestCompilerParseError(t *testing.T) {
	c := NewCompiler(Config{})

	unit, err := c.CompileFromReader("bad.happy", strings.NewReader("1: A x;;"))
	require.Error(t, err)
	require.NotNil(t, unit)
	assert.Nil(t, unit.Program)
	assert.Equal(t, "1: A x;;", unit.Source)
	assert.Contains(t, unit.Diagnostic(err, false), "--> bad.happy:1:6")
}

func TestCompilerMissingFile(t *testing.T) {
	_, err := NewCompiler(Config{}).Compile(filepath.Join(t.TempDir(), "missing.happy"))
	assert.Error(t, err)
}

func TestCompilerConfig(t *testing.T) {
	c := NewCompiler(Config{MaxDepth: 3})

	unit, err := c.CompileFromReader("", strings.NewReader("1: A: x=1, x, 1>A;; 1>A"))
	require.NoError(t, err)

	var out strings.Builder
	err = c.Run(unit, &out)
	require.Error(t, err)
	assert.Equal(t, RuntimeRecursionLimit, err.(*RuntimeError).Kind)
	assert.Equal(t, "111", out.String())
}
