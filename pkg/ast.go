package happy

// Program is the parsed source. It is built once by the parser and never
// mutated while running.
type Program struct {
	Classes    map[uint32]*Class
	Statements []Statement
}

// Statement is a top-level `N>NAME` call, run in source order.
type Statement struct {
	Class    uint32
	Function string
	Pos      Position
}

type Class struct {
	ID        uint32
	Functions map[string]*Function
}

type Function struct {
	Name       string
	Operations []Operation
}

type Operation interface{}

type BinaryOp string

const (
	BinaryAddition       BinaryOp = "+"
	BinarySubtraction    BinaryOp = "-"
	BinaryMultiplication BinaryOp = "*"
	BinaryDivision       BinaryOp = "/"
	BinaryModulo         BinaryOp = "//"
	BinaryEqual          BinaryOp = "=="
	BinaryNotEqual       BinaryOp = "!="
	BinaryGreater        BinaryOp = ">"
	BinaryLess           BinaryOp = "<"
	BinaryGreaterEqual   BinaryOp = ">="
	BinaryLessEqual      BinaryOp = "<="
	BinaryAnd            BinaryOp = "&"
	BinaryOr             BinaryOp = "|"
)

func (op BinaryOp) IsArithmetic() bool {
	switch op {
	case BinaryAddition, BinarySubtraction, BinaryMultiplication, BinaryDivision, BinaryModulo:
		return true
	}

	return false
}

func (op BinaryOp) IsComparison() bool {
	switch op {
	case BinaryEqual, BinaryNotEqual, BinaryGreater, BinaryLess, BinaryGreaterEqual, BinaryLessEqual:
		return true
	}

	return false
}

// BinaryOperation combines Left with Right and stores the result in Left.
type BinaryOperation struct {
	Operation BinaryOp
	Left      string
	Right     string
}

type NotOperation struct {
	Var string
}

type AssignOperation struct {
	Var   string
	Value Data
}

type PrintOperation struct {
	Var string
}

// LoadOperation is a bare variable used as a condition: `(x)?{...}`.
type LoadOperation struct {
	Var string
}

type CallOperation struct {
	Class    uint32
	Function string
	Pos      Position
}

// Conditional runs Then when Condition yields boolean true and Else
// otherwise. A nil Else means there was no otherwise block.
type Conditional struct {
	Condition Operation
	Then      []Operation
	Else      []Operation
}
