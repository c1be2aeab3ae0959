package happy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestContextAnalyzer(t *testing.T) {
	cases := []struct {
		data   string
		expect []string
	}{
		{"1: A: x;; 1>A", nil},
		{"1: A: 1>A;;", nil},
		{
			"1: A: 1>B, (x)?{2>C};; 1>A 3>D",
			[]string{"1:28 undefined: 3>D", "1:7 undefined: 1>B", "1:17 undefined: 2>C"},
		},
		{
			"1: A: ; B: ;; 2: C: (1>A)?{}:{};; 2>C",
			[]string{"function 1>B is never called"},
		},
		{
			"2: B: ;; 1: A: ;;",
			[]string{"function 1>A is never called", "function 2>B is never called"},
		},
	}

	for _, c := range cases {
		prog, err := Parse(c.data)
		require.NoError(t, err, c.data)

		var got []string
		for _, e := range NewContextAnalyser(prog).Do() {
			got = append(got, e.String())
		}

		assert.Equal(t, c.expect, got, c.data)
	}
}

func TestSymbolTable(t *testing.T) {
	stab := NewSymbolTable()
	fn := &Function{Name: "A"}

	stab.Add(1, fn)
	assert.Equal(t, fn, stab.Get(1, "A"))
	assert.Nil(t, stab.Get(2, "A"))
	assert.Nil(t, stab.Get(1, "B"))
}
