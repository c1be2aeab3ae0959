package happy

import (
	"math"
	"strconv"
)

type DataKind int

const (
	KindNone DataKind = iota
	KindVar
	KindNumber
	KindString
	KindBool
)

func (k DataKind) String() string {
	switch k {
	case KindVar:
		return "var"
	case KindNumber:
		return "number"
	case KindString:
		return "string"
	case KindBool:
		return "bool"
	default:
		return "none"
	}
}

// Data is a runtime value or a literal. The zero Data is None, the value of
// every variable that was never written.
type Data struct {
	kind DataKind
	data any
}

func NewNone() Data            { return Data{} }
func NewVar(name string) Data  { return Data{kind: KindVar, data: name} }
func NewNumber(n float64) Data { return Data{kind: KindNumber, data: n} }
func NewString(s string) Data  { return Data{kind: KindString, data: s} }
func NewBool(b bool) Data      { return Data{kind: KindBool, data: b} }

func (d Data) Kind() DataKind { return d.kind }
func (d Data) IsNone() bool   { return d.kind == KindNone }
func (d Data) IsTrue() bool   { return d.kind == KindBool && d.Bool() }

func (d Data) Number() float64 {
	n, _ := d.data.(float64)
	return n
}

func (d Data) Str() string {
	if d.kind != KindString {
		return ""
	}

	return d.data.(string)
}

func (d Data) Bool() bool {
	b, _ := d.data.(bool)
	return b
}

func (d Data) VarName() string {
	if d.kind != KindVar {
		return ""
	}

	return d.data.(string)
}

// Arithmetic applies op to d and o. Number pairs compute, a pair of strings
// concatenates under addition, anything else leaves d unchanged.
func (d Data) Arithmetic(op BinaryOp, o Data) Data {
	if d.kind == KindString && o.kind == KindString && op == BinaryAddition {
		return NewString(d.Str() + o.Str())
	}

	if d.kind != KindNumber || o.kind != KindNumber {
		return d
	}

	a, b := d.Number(), o.Number()
	switch op {
	case BinaryAddition:
		return NewNumber(a + b)
	case BinarySubtraction:
		return NewNumber(a - b)
	case BinaryMultiplication:
		return NewNumber(a * b)
	case BinaryDivision:
		return NewNumber(a / b)
	case BinaryModulo:
		return NewNumber(math.Mod(a, b))
	}

	return d
}

// Compare orders d against o. ok is false for pairs of different kinds and
// for NaN, which makes every comparison except != false.
func (d Data) Compare(o Data) (cmp int, ok bool) {
	if d.kind != o.kind {
		return 0, false
	}

	switch d.kind {
	case KindNone:
		return 0, true
	case KindBool:
		a, b := d.Bool(), o.Bool()
		switch {
		case a == b:
			return 0, true
		case !a:
			return -1, true
		default:
			return 1, true
		}
	case KindString:
		a, b := d.Str(), o.Str()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		}
		return 0, true
	case KindNumber:
		a, b := d.Number(), o.Number()
		switch {
		case a < b:
			return -1, true
		case a > b:
			return 1, true
		case a == b:
			return 0, true
		}
	}

	return 0, false
}

// Comparison evaluates a comparison operator as a boolean.
func (d Data) Comparison(op BinaryOp, o Data) bool {
	cmp, ok := d.Compare(o)
	if op == BinaryNotEqual {
		return !ok || cmp != 0
	}

	if !ok {
		return false
	}

	switch op {
	case BinaryEqual:
		return cmp == 0
	case BinaryGreater:
		return cmp > 0
	case BinaryLess:
		return cmp < 0
	case BinaryGreaterEqual:
		return cmp >= 0
	case BinaryLessEqual:
		return cmp <= 0
	}

	return false
}

// Logic applies & or | when both sides are booleans.
func (d Data) Logic(op BinaryOp, o Data) Data {
	if d.kind != KindBool || o.kind != KindBool {
		return d
	}

	switch op {
	case BinaryAnd:
		return NewBool(d.Bool() && o.Bool())
	case BinaryOr:
		return NewBool(d.Bool() || o.Bool())
	}

	return d
}

func (d Data) Not() Data {
	if d.kind != KindBool {
		return d
	}

	return NewBool(!d.Bool())
}

// String renders d the way Print writes it.
func (d Data) String() string {
	switch d.kind {
	case KindBool:
		return strconv.FormatBool(d.Bool())
	case KindNumber:
		return formatNumber(d.Number())
	case KindString:
		return d.Str()
	case KindVar:
		return "Var `" + d.VarName() + "`"
	default:
		return "None"
	}
}

func formatNumber(n float64) string {
	switch {
	case math.IsInf(n, 1):
		return "inf"
	case math.IsInf(n, -1):
		return "-inf"
	case math.IsNaN(n):
		return "NaN"
	}

	return strconv.FormatFloat(n, 'f', -1, 64)
}
