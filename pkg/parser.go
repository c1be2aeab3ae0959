package happy

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

// operatorOrder is the order operators are tried after a variable name.
// Longer tokens come before their prefixes.
var operatorOrder = []string{"==", ">=", "<=", ">", "<", "!=", "!", "|", "&", "=", "+", "-", "*", "//", "/"}

type Parser struct {
	s *Scanner
}

func NewParser(src string) *Parser {
	return &Parser{s: NewScanner(src)}
}

// Parse reads a whole program.
func Parse(src string) (*Program, error) {
	return NewParser(src).Run()
}

func (p *Parser) fork() *Parser {
	return &Parser{s: p.s.Fork()}
}

func (p *Parser) Run() (*Program, error) {
	prog := &Program{Classes: make(map[uint32]*Class)}

	for !p.s.Skip().EOF() {
		start := p.s.Position()

		sub := p.fork()
		class, err := sub.class()
		if err == nil {
			if _, exists := prog.Classes[class.ID]; exists {
				return nil, &ParseError{
					Kind:      ErrDuplicateClass,
					Important: true,
					Pos:       start,
					Detail:    strconv.FormatUint(uint64(class.ID), 10),
				}
			}

			p.s.Commit(sub.s)
			prog.Classes[class.ID] = class
			parseTracer().Debugf("class %d with %d functions", class.ID, len(class.Functions))
			continue
		}

		if err.Important {
			return nil, err
		}

		parseTracer().Debugf("no class at %s (%s), trying a statement", start, err.Kind)

		stmt, err := p.statement()
		if err != nil {
			return nil, err
		}

		prog.Statements = append(prog.Statements, stmt)
	}

	return prog, nil
}

func (p *Parser) statement() (Statement, *ParseError) {
	pos := p.s.Position()

	num := p.s.While(Digits)
	if num == "" {
		return Statement{}, p.s.Error(ErrExpectedCall, true)
	}

	id, err := p.classID(num)
	if err != nil {
		return Statement{}, err
	}

	if !p.s.Skip().Then(">") {
		return Statement{}, p.s.Error(ErrExpectedCall, true)
	}

	name := p.s.Skip().While(UpperLetters)
	if name == "" {
		return Statement{}, p.s.Error(ErrExpectedFunctionName, true)
	}

	return Statement{Class: id, Function: name, Pos: pos}, nil
}

func (p *Parser) class() (*Class, *ParseError) {
	num := p.s.While(Digits)
	if num == "" {
		return nil, p.s.Error(ErrExpectedClassName, false)
	}

	if !p.s.Skip().Then(":") {
		return nil, p.s.Error(ErrExpectedColon, false)
	}

	id, err := p.classID(num)
	if err != nil {
		return nil, err
	}

	// Past `N:` nothing else can match, so every failure is final.
	class := &Class{ID: id, Functions: make(map[string]*Function)}
	for !p.s.Skip().Then(";") {
		if p.s.EOF() {
			return nil, p.s.Errorf(ErrUnexpectedEOF, true, "class "+num+" is not closed with ';'")
		}

		pos := p.s.Position()
		fn, err := p.function()
		if err != nil {
			err.Important = true
			return nil, err
		}

		if _, exists := class.Functions[fn.Name]; exists {
			parseTracer().Debugf("duplicate function %s in class %d", fn.Name, id)
			return nil, &ParseError{Kind: ErrDuplicateFunction, Important: true, Pos: pos, Detail: fn.Name}
		}

		class.Functions[fn.Name] = fn
	}

	return class, nil
}

func (p *Parser) function() (*Function, *ParseError) {
	name := p.s.While(UpperLetters)
	if name == "" {
		return nil, p.s.Error(ErrExpectedFunctionName, false)
	}

	if !p.s.Skip().Then(":") {
		return nil, p.s.Error(ErrExpectedColon, true)
	}

	ops, err := p.operations(";")
	if err != nil {
		return nil, err
	}

	if !p.s.Skip().Then(";") {
		return nil, p.s.Error(ErrExpectedSemicolon, true)
	}

	return &Function{Name: name, Operations: ops}, nil
}

// operations reads a comma separated operation list up to, not including, one
// of the terminators.
func (p *Parser) operations(terminators ...string) ([]Operation, *ParseError) {
	var ops []Operation
	for !p.s.Skip().Test(terminators...) {
		op, err := p.operation()
		if err != nil {
			return nil, err
		}

		ops = append(ops, op)

		if !p.s.Skip().Then(",") {
			break
		}
	}

	return ops, nil
}

func (p *Parser) operation() (Operation, *ParseError) {
	if p.s.Then("(") {
		return p.conditional()
	}

	if name := p.s.While(LowerLetters); name != "" {
		return p.simpleOperation(name)
	}

	pos := p.s.Position()
	if num := p.s.While(Digits); num != "" {
		return p.call(num, pos)
	}

	if p.s.EOF() {
		return nil, p.s.Error(ErrUnexpectedEOF, true)
	}

	return nil, p.s.Error(ErrExpectedOperation, true)
}

func (p *Parser) conditional() (Operation, *ParseError) {
	p.s.Skip()
	cond, err := p.operation()
	if err != nil {
		return nil, err
	}

	if !p.s.Skip().Then(")") {
		return nil, p.s.Error(ErrExpectedParenthesisEnd, true)
	}

	if !p.s.Skip().Then("?") || !p.s.Skip().Then("{") {
		return nil, p.s.Error(ErrExpectedConditionalBlock, true)
	}

	then, err := p.block()
	if err != nil {
		return nil, err
	}

	if !p.s.Skip().Then("}") {
		return nil, p.s.Error(ErrExpectedConditionalBlockEnd, true)
	}

	if !p.s.Skip().Then(":") {
		return &Conditional{Condition: cond, Then: then}, nil
	}

	if !p.s.Skip().Then("{") {
		return nil, p.s.Error(ErrExpectedConditionalOtherwiseBlock, true)
	}

	otherwise, err := p.block()
	if err != nil {
		return nil, err
	}

	if !p.s.Skip().Then("}") {
		return nil, p.s.Error(ErrExpectedConditionalOtherwiseBlockEnd, true)
	}

	if otherwise == nil {
		otherwise = []Operation{}
	}

	return &Conditional{Condition: cond, Then: then, Else: otherwise}, nil
}

// block reads the inside of `{...}`. A trailing `;` before the brace is allowed.
func (p *Parser) block() ([]Operation, *ParseError) {
	ops, err := p.operations("}", ";")
	if err != nil {
		return nil, err
	}

	p.s.Skip().Then(";")
	return ops, nil
}

func (p *Parser) call(num string, pos Position) (Operation, *ParseError) {
	id, err := p.classID(num)
	if err != nil {
		return nil, err
	}

	if !p.s.Skip().Then(">") {
		return nil, p.s.Error(ErrExpectedCall, true)
	}

	name := p.s.Skip().While(UpperLetters)
	if name == "" {
		return nil, p.s.Error(ErrExpectedFunctionName, true)
	}

	return &CallOperation{Class: id, Function: name, Pos: pos}, nil
}

func (p *Parser) simpleOperation(name string) (Operation, *ParseError) {
	p.s.Skip()

	switch {
	case p.s.Test(",", ";", "}"):
		return &PrintOperation{Var: name}, nil
	case p.s.Test(")"):
		return &LoadOperation{Var: name}, nil
	}

	for _, tok := range operatorOrder {
		if !p.s.Then(tok) {
			continue
		}

		switch tok {
		case "!":
			return &NotOperation{Var: name}, nil
		case "=":
			value, err := p.data()
			if err != nil {
				return nil, err
			}

			return &AssignOperation{Var: name, Value: value}, nil
		}

		other, err := p.varName()
		if err != nil {
			return nil, err
		}

		return &BinaryOperation{Operation: BinaryOp(tok), Left: name, Right: other}, nil
	}

	if p.s.EOF() {
		return nil, p.s.Error(ErrUnexpectedEOF, true)
	}

	return nil, p.s.Errorf(ErrExpectedOperation, true, "unknown operator after `"+name+"`")
}

func (p *Parser) varName() (string, *ParseError) {
	name := p.s.Skip().While(LowerLetters)
	if name == "" {
		return "", p.s.Error(ErrExpectedVariableName, true)
	}

	return name, nil
}

func (p *Parser) data() (Data, *ParseError) {
	p.s.Skip()

	if p.s.Then(`"`) {
		return p.str()
	}

	if name := p.s.While(LowerLetters); name != "" {
		switch name {
		case "true":
			return NewBool(true), nil
		case "false":
			return NewBool(false), nil
		}

		return NewVar(name), nil
	}

	return p.number()
}

func (p *Parser) number() (Data, *ParseError) {
	start := p.s.Offset()

	p.s.While(Digits)
	if p.s.Then(".") {
		p.s.While(Digits)
	}

	text := p.s.Source()[start:p.s.Offset()]
	if text == "" {
		return Data{}, p.s.Error(ErrExpectedNumber, true)
	}

	n, err := strconv.ParseFloat(text, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			return Data{}, p.s.Errorf(ErrNumericOverflow, true, text)
		}

		return Data{}, p.s.Errorf(ErrInvalidNumber, true, text)
	}

	return NewNumber(n), nil
}

func (p *Parser) str() (Data, *ParseError) {
	var str strings.Builder
	for {
		str.WriteString(p.s.UntilAny(`"`, `\`))

		switch {
		case p.s.Then(`"`):
			return NewString(str.String()), nil
		case p.s.Then(`\`):
			if err := p.escape(&str); err != nil {
				return Data{}, err
			}
		default:
			return Data{}, p.s.Errorf(ErrUnexpectedEOF, true, "unterminated string")
		}
	}
}

func (p *Parser) escape(str *strings.Builder) *ParseError {
	switch {
	case p.s.Then("n"):
		str.WriteByte('\n')
	case p.s.Then("t"):
		str.WriteByte('\t')
	case p.s.Then("r"):
		str.WriteByte('\r')
	case p.s.Then("0"):
		str.WriteByte(0)
	case p.s.Then(`"`):
		str.WriteByte('"')
	case p.s.Then(`\`):
		str.WriteByte('\\')
	case p.s.Then("x"):
		digits, err := p.s.Eat(2)
		if perr, ok := err.(*ParseError); ok {
			perr.Important = true
			return perr
		}

		if !isHex(digits) {
			return p.s.Error(ErrInvalidASCIIEscape, true)
		}

		n, _ := strconv.ParseUint(digits, 16, 8)
		str.WriteRune(rune(n))
	case p.s.Then("u"):
		if !p.s.Then("{") {
			return p.s.Error(ErrInvalidUnicodeEscape, true)
		}

		digits := p.s.UntilCounted("}", 6)
		if digits == "" || !isHex(digits) || !p.s.Then("}") {
			return p.s.Errorf(ErrInvalidUnicodeEscape, true, digits)
		}

		n, _ := strconv.ParseUint(digits, 16, 32)
		if r := rune(n); utf8.ValidRune(r) {
			str.WriteRune(r)
			return nil
		}

		return p.s.Errorf(ErrInvalidUnicodeEscape, true, digits)
	default:
		return p.s.Error(ErrInvalidEscape, true)
	}

	return nil
}

func (p *Parser) classID(num string) (uint32, *ParseError) {
	n, err := strconv.ParseUint(num, 10, 32)
	if err != nil {
		return 0, p.s.Errorf(ErrNumericOverflow, true, num)
	}

	return uint32(n), nil
}

func isHex(s string) bool {
	for _, r := range s {
		if !strings.ContainsRune(HexDigits, r) {
			return false
		}
	}

	return true
}
