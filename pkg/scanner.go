package happy

import (
	"strings"
	"unicode/utf8"
)

// Character sets accepted by Scanner.While.
const (
	Whitespace   = " \t\r\n"
	Digits       = "0123456789"
	LowerLetters = "abcdefghijklmnopqrstuvwxyz"
	UpperLetters = "ABCDEFGHIJKLMNOPQRSTUVWXYZ"
	HexDigits    = "0123456789abcdefABCDEF"
)

// Scanner is a cursor over immutable source text. Every method either
// advances past what it matched or leaves the cursor where it was.
//
// A Scanner can be forked: the child starts at the parent's position and
// reads the same text. Commit moves the parent to the child's position;
// dropping the child leaves the parent untouched.
type Scanner struct {
	src    string
	pos    int
	parent *Scanner
}

func NewScanner(src string) *Scanner {
	return &Scanner{src: src}
}

func (s *Scanner) Source() string {
	return s.src
}

func (s *Scanner) Offset() int {
	return s.pos
}

func (s *Scanner) EOF() bool {
	return s.pos >= len(s.src)
}

// Fork opens a child cursor at the current position.
func (s *Scanner) Fork() *Scanner {
	return &Scanner{src: s.src, pos: s.pos, parent: s}
}

// Commit advances s to the position reached by child. A child that went
// backwards, or that was not forked from s, is ignored.
func (s *Scanner) Commit(child *Scanner) {
	if child.parent != s || child.pos < s.pos {
		return
	}

	s.pos = child.pos
}

// Skip consumes whitespace and returns s for chaining.
func (s *Scanner) Skip() *Scanner {
	s.While(Whitespace)
	return s
}

// While consumes the longest prefix made of runes in set.
func (s *Scanner) While(set string) string {
	start := s.pos
	for s.pos < len(s.src) {
		r, size := utf8.DecodeRuneInString(s.src[s.pos:])
		if !strings.ContainsRune(set, r) {
			break
		}

		s.pos += size
	}

	return s.src[start:s.pos]
}

// UntilAny consumes up to, but not including, the first occurrence of any of
// the delimiters. Without a delimiter in sight it consumes the rest of the
// input.
func (s *Scanner) UntilAny(delims ...string) string {
	start := s.pos
	for s.pos < len(s.src) {
		if s.Test(delims...) {
			break
		}

		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}

	return s.src[start:s.pos]
}

// UntilCounted consumes at most max runes, stopping before delim.
func (s *Scanner) UntilCounted(delim string, max int) string {
	start := s.pos
	for n := 0; n < max && s.pos < len(s.src) && !s.Test(delim); n++ {
		_, size := utf8.DecodeRuneInString(s.src[s.pos:])
		s.pos += size
	}

	return s.src[start:s.pos]
}

// Then consumes lit if the input continues with it.
func (s *Scanner) Then(lit string) bool {
	if !strings.HasPrefix(s.src[s.pos:], lit) {
		return false
	}

	s.pos += len(lit)
	return true
}

// Test reports whether the input continues with any of lits, without
// consuming anything.
func (s *Scanner) Test(lits ...string) bool {
	rest := s.src[s.pos:]
	for _, lit := range lits {
		if strings.HasPrefix(rest, lit) {
			return true
		}
	}

	return false
}

// Eat consumes exactly n runes.
func (s *Scanner) Eat(n int) (string, error) {
	start := s.pos
	end := s.pos
	for i := 0; i < n; i++ {
		if end >= len(s.src) {
			return "", s.Error(ErrUnexpectedEOF, false)
		}

		_, size := utf8.DecodeRuneInString(s.src[end:])
		end += size
	}

	s.pos = end
	return s.src[start:end], nil
}

// Position resolves the cursor to a line and column.
func (s *Scanner) Position() Position {
	return positionAt(s.src, s.pos)
}

func (s *Scanner) Error(kind ErrorKind, important bool) *ParseError {
	return &ParseError{
		Kind:      kind,
		Important: important,
		Pos:       s.Position(),
	}
}

func (s *Scanner) Errorf(kind ErrorKind, important bool, detail string) *ParseError {
	err := s.Error(kind, important)
	err.Detail = detail
	return err
}

func positionAt(src string, offset int) Position {
	if offset > len(src) {
		offset = len(src)
	}

	line := 1 + strings.Count(src[:offset], "\n")
	lineStart := strings.LastIndexByte(src[:offset], '\n') + 1

	return Position{
		Offset: offset,
		Line:   line,
		Column: utf8.RuneCountInString(src[lineStart:offset]) + 1,
	}
}
