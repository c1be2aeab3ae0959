package happy

import "fmt"

type ErrorKind int

const (
	ErrUnexpectedEOF ErrorKind = iota
	ErrExpectedClassName
	ErrExpectedFunctionName
	ErrExpectedVariableName
	ErrExpectedOperation
	ErrExpectedColon
	ErrExpectedSemicolon
	ErrExpectedParenthesisEnd
	ErrExpectedConditionalBlock
	ErrExpectedConditionalBlockEnd
	ErrExpectedConditionalOtherwiseBlock
	ErrExpectedConditionalOtherwiseBlockEnd
	ErrExpectedNumber
	ErrExpectedCall
	ErrInvalidEscape
	ErrInvalidASCIIEscape
	ErrInvalidUnicodeEscape
	ErrNumericOverflow
	ErrInvalidNumber
	ErrDuplicateFunction
	ErrDuplicateClass
)

var errorKindNames = map[ErrorKind]string{
	ErrUnexpectedEOF:                        "unexpected end of input",
	ErrExpectedClassName:                    "expected class number",
	ErrExpectedFunctionName:                 "expected function name",
	ErrExpectedVariableName:                 "expected variable name",
	ErrExpectedOperation:                    "expected operation",
	ErrExpectedColon:                        "expected ':'",
	ErrExpectedSemicolon:                    "expected ';'",
	ErrExpectedParenthesisEnd:               "expected ')'",
	ErrExpectedConditionalBlock:             "expected '?{' after condition",
	ErrExpectedConditionalBlockEnd:          "expected '}' closing conditional block",
	ErrExpectedConditionalOtherwiseBlock:    "expected '{' after ':'",
	ErrExpectedConditionalOtherwiseBlockEnd: "expected '}' closing otherwise block",
	ErrExpectedNumber:                       "expected number",
	ErrExpectedCall:                         "expected call",
	ErrInvalidEscape:                        "invalid escape sequence",
	ErrInvalidASCIIEscape:                   "invalid \\x escape",
	ErrInvalidUnicodeEscape:                 "invalid \\u escape",
	ErrNumericOverflow:                      "numeric overflow",
	ErrInvalidNumber:                        "invalid number",
	ErrDuplicateFunction:                    "function already defined",
	ErrDuplicateClass:                       "class already defined",
}

func (k ErrorKind) String() string {
	if name, ok := errorKindNames[k]; ok {
		return name
	}

	return fmt.Sprintf("ErrorKind(%d)", int(k))
}

// Position locates a byte offset in the source. Line and Column are 1-based,
// Column counts runes.
type Position struct {
	Offset int
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}

// ParseError is a syntax violation. An Important error aborts the whole parse,
// even when raised inside a production the caller could backtrack out of.
type ParseError struct {
	Kind      ErrorKind
	Important bool
	Pos       Position
	Detail    string
}

func (e *ParseError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("parse error at %s: %s: %s", e.Pos, e.Kind, e.Detail)
	}

	return fmt.Sprintf("parse error at %s: %s", e.Pos, e.Kind)
}

type RuntimeErrorKind int

const (
	RuntimeMissingClass RuntimeErrorKind = iota
	RuntimeMissingFunction
	RuntimeRecursionLimit
	RuntimeStepQuota
)

// RuntimeError aborts a run. Pos is the call site, or the zero Position for
// quota errors.
type RuntimeError struct {
	Kind     RuntimeErrorKind
	Class    uint32
	Function string
	Limit    int
	Pos      Position
}

func (e *RuntimeError) Error() string {
	switch e.Kind {
	case RuntimeMissingClass:
		return fmt.Sprintf("Not a class: `%d`", e.Class)
	case RuntimeMissingFunction:
		return fmt.Sprintf("Not a function: `%s`", e.Function)
	case RuntimeRecursionLimit:
		return fmt.Sprintf("recursion depth exceeded (limit %d)", e.Limit)
	case RuntimeStepQuota:
		return fmt.Sprintf("step quota exceeded (%d)", e.Limit)
	default:
		return "runtime error"
	}
}
