package happy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScannerWhile(t *testing.T) {
	s := NewScanner("123abc")

	assert.Equal(t, "", s.While(LowerLetters))
	assert.Equal(t, "123", s.While(Digits))
	assert.Equal(t, "abc", s.While(LowerLetters))
	assert.True(t, s.EOF())
	assert.Equal(t, "", s.While(LowerLetters))
}

func TestScannerUntil(t *testing.T) {
	cases := []struct {
		data   string
		delims []string
		expect string
		rest   string
	}{
		{`abc"def`, []string{`"`, `\`}, "abc", `"def`},
		{`ab\c"`, []string{`"`, `\`}, "ab", `\c"`},
		{`no delimiter`, []string{`"`}, "no delimiter", ""},
		{`"`, []string{`"`}, "", `"`},
		{`héllo}`, []string{"}"}, "héllo", "}"},
	}

	for _, c := range cases {
		s := NewScanner(c.data)
		assert.Equal(t, c.expect, s.UntilAny(c.delims...))
		assert.Equal(t, c.rest, s.Source()[s.Offset():])
	}
}

func TestScannerUntilCounted(t *testing.T) {
	s := NewScanner("48}")
	assert.Equal(t, "48", s.UntilCounted("}", 6))
	assert.True(t, s.Then("}"))

	s = NewScanner("1234567}")
	assert.Equal(t, "123456", s.UntilCounted("}", 6))
	assert.False(t, s.Then("}"))
}

func TestScannerThenAndTest(t *testing.T) {
	s := NewScanner(">= x")

	assert.False(t, s.Then("=="))
	assert.True(t, s.Test(">", "<"))
	assert.True(t, s.Test(">="))
	assert.Equal(t, 0, s.Offset())

	assert.True(t, s.Then(">="))
	assert.Equal(t, 2, s.Offset())
	assert.Equal(t, "x", s.Skip().While(LowerLetters))
	assert.False(t, s.Test(";"))
}

func TestScannerEat(t *testing.T) {
	s := NewScanner("4é!")

	got, err := s.Eat(2)
	require.NoError(t, err)
	assert.Equal(t, "4é", got)

	_, err = s.Eat(2)
	require.Error(t, err)

	perr, ok := err.(*ParseError)
	require.True(t, ok)
	assert.Equal(t, ErrUnexpectedEOF, perr.Kind)
	assert.False(t, perr.Important)
	assert.Equal(t, "!", s.Source()[s.Offset():], "a failed Eat must not move the cursor")
}

func TestScannerForkCommit(t *testing.T) {
	s := NewScanner("12: A")

	child := s.Fork()
	assert.Equal(t, "12", child.While(Digits))
	assert.Equal(t, 0, s.Offset(), "parent moves only on commit")

	s.Commit(child)
	assert.Equal(t, 2, s.Offset())

	discarded := s.Fork()
	discarded.Skip().Then(":")
	assert.Equal(t, 2, s.Offset())

	other := NewScanner("12: A")
	other.While(Digits)
	other.Then(":")
	s.Commit(other)
	assert.Equal(t, 2, s.Offset(), "a cursor that was not forked from s is ignored")

	grandchild := s.Fork().Fork()
	grandchild.Skip().Then(":")
	s.Commit(grandchild)
	assert.Equal(t, 2, s.Offset(), "only direct children commit")

	behind := s.Fork()
	s.Then(":")
	s.Commit(behind)
	assert.Equal(t, 3, s.Offset(), "a child behind the parent is ignored")
}

func TestScannerPosition(t *testing.T) {
	s := NewScanner("1:\n  Ä: x")
	s.While(Digits)
	assert.Equal(t, Position{Offset: 1, Line: 1, Column: 2}, s.Position())

	s.Then(":")
	s.Skip()
	s.While(UpperLetters)
	assert.Equal(t, Position{Offset: 5, Line: 2, Column: 3}, s.Position())

	s.Then("Ä")
	assert.Equal(t, 4, s.Position().Column, "columns count runes, not bytes")
}
