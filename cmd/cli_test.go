package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSource(t *testing.T, src string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "program.happy")
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	return path
}

func TestRun(t *testing.T) {
	cases := []struct {
		args   []string
		src    string
		exit   int
		stdout string
		stderr string
	}{
		{[]string{"run"}, "1: A: x=\"hello\", x, ;;\n1>A", 0, "hello", ""},
		{[]string{"run"}, "1: A x;;", 1, "", "expected ':'"},
		{[]string{"run"}, "1: A: x=\"a\", x;; 1>A 2>A 1>A", 0, "a", "Not a class: `2`"},
		{[]string{"run"}, "1: A: 1>B;; 1>A", 0, "", "Not a function: `B`"},
		{[]string{"run", "--max-depth", "2"}, "1: A: x=1, x, 1>A;; 1>A", 0, "11", "recursion depth exceeded (limit 2)"},
		{[]string{"run", "--max-steps=3"}, "1: A: x=1, x, 1>A;; 1>A", 0, "1", "step quota exceeded (3)"},
		{[]string{"check"}, "1: A: ; B: ;; 1>A", 0, "ok\n", "function 1>B is never called"},
		{[]string{"check"}, "1: A: 2>B;;", 0, "ok\n", "undefined: 2>B"},
		{[]string{"check"}, "1: A: ;; 1: B: ;;", 1, "", "class already defined"},
		{[]string{"ir"}, "1: A: x;; 1>A", 0, "define i32 @main()", ""},
		{[]string{"outline"}, "1: A: x, 1>A;; 1>A", 0, "FUNCTION", ""},
	}

	for _, c := range cases {
		args := append(c.args, "--color=false", writeSource(t, c.src))

		var stdout, stderr strings.Builder
		exit := run(args, &stdout, &stderr)

		assert.Equal(t, c.exit, exit, "%v: %s", c.args, stderr.String())
		if c.args[0] == "run" {
			assert.Equal(t, c.stdout, stdout.String(), "%v", c.args)
		} else {
			assert.Contains(t, stdout.String(), c.stdout, "%v", c.args)
		}
		assert.Contains(t, stderr.String(), c.stderr, "%v", c.args)
	}
}

func TestRunDiagnosticUsesFilename(t *testing.T) {
	path := writeSource(t, "1: A x;;")

	var stdout, stderr strings.Builder
	assert.Equal(t, 1, run([]string{"run", "--color=false", path}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "--> "+path+":1:6")
}

func TestRunMissingFile(t *testing.T) {
	var stdout, stderr strings.Builder
	assert.Equal(t, 1, run([]string{"run", filepath.Join(t.TempDir(), "nope.happy")}, &stdout, &stderr))
	assert.Contains(t, stderr.String(), "error:")
}

func TestRunUsageErrors(t *testing.T) {
	cases := [][]string{
		{"run", "a", "b"},
		{"nope"},
		{"run", "--trace=loud", "x.happy"},
		{"run", "--max-depth=-1", "x.happy"},
	}

	for _, args := range cases {
		var stdout, stderr strings.Builder
		assert.Equal(t, 2, run(args, &stdout, &stderr), "%v", args)
		assert.NotEmpty(t, stderr.String(), "%v", args)
	}
}

func TestSettings(t *testing.T) {
	root, _ := newRootCmd(nil, nil)

	s, err := loadSettings(root.PersistentFlags())
	require.NoError(t, err)
	assert.Equal(t, settings{Trace: "error", Color: true}, s)

	t.Setenv("HAPPY_MAX_STEPS", "10")
	t.Setenv("HAPPY_COLOR", "false")
	t.Setenv("HAPPY_TRACE", "debug")

	s, err = loadSettings(root.PersistentFlags())
	require.NoError(t, err)
	assert.Equal(t, settings{Trace: "debug", Color: false, MaxSteps: 10}, s)

	require.NoError(t, root.PersistentFlags().Parse([]string{"--max-steps=20", "--max-depth=5"}))

	s, err = loadSettings(root.PersistentFlags())
	require.NoError(t, err)
	assert.Equal(t, settings{Trace: "debug", Color: false, MaxSteps: 20, MaxDepth: 5}, s)
}

func TestEnvKey(t *testing.T) {
	assert.Equal(t, "max-depth", envKey("HAPPY_MAX_DEPTH"))
	assert.Equal(t, "trace", envKey("HAPPY_TRACE"))
}
