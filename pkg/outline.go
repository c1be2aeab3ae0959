package happy

import (
	"fmt"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Outline renders a table of the classes and functions of p, followed by the
// top-level statements.
func Outline(p *Program) string {
	t := table.NewWriter()
	t.AppendHeader(table.Row{"Class", "Function", "Operations", "Calls"})

	for _, id := range sortedClassIDs(p) {
		class := p.Classes[id]
		for _, name := range sortedFunctionNames(class) {
			fn := class.Functions[name]
			t.AppendRow(table.Row{id, name, countOperations(fn.Operations), strings.Join(callTargets(fn.Operations), " ")})
		}
	}

	var b strings.Builder
	b.WriteString(t.Render())
	b.WriteString("\n")

	s := table.NewWriter()
	s.AppendHeader(table.Row{"#", "Statement"})
	for i, stmt := range p.Statements {
		s.AppendRow(table.Row{i + 1, fmt.Sprintf("%d>%s", stmt.Class, stmt.Function)})
	}
	b.WriteString(s.Render())

	return b.String()
}

func countOperations(ops []Operation) int {
	n := 0
	for _, op := range ops {
		n++
		if c, ok := op.(*Conditional); ok {
			n += countOperations([]Operation{c.Condition}) + countOperations(c.Then) + countOperations(c.Else)
		}
	}

	return n
}

func callTargets(ops []Operation) []string {
	var targets []string
	for _, op := range ops {
		switch o := op.(type) {
		case *CallOperation:
			targets = append(targets, fmt.Sprintf("%d>%s", o.Class, o.Function))
		case *Conditional:
			targets = append(targets, callTargets([]Operation{o.Condition})...)
			targets = append(targets, callTargets(o.Then)...)
			targets = append(targets, callTargets(o.Else)...)
		}
	}

	return targets
}
