package test

import (
	"fmt"
	"math/rand"
	"strings"
)

const validOperations = "x=1;y=2.5;x+y;x-y;x*y;x/y;x//y;x==y;x!=y;x>y;x<y;x>=y;x<=y;b=true;b!;b&c;b|c;s=\"this is a string\";s=\"esc\\n\\t\\x41\\u{1F600}\";s=\"this is a longer string containing a bunch of text: Lorem ipsum dolor sit amet, consectetur adipiscing elit, sed do eiusmod tempor incididunt ut labore et dolore magna aliqua.\";s=\"\";x;y=x;(x==y)?{x, y}:{y};(b)?{s}"

// GetRandomOperations returns size operations separated by commas.
func GetRandomOperations(size int) string {
	return GetRandomOperationsWithSep(size, ", ")
}

func GetRandomOperationsWithSep(size int, sep string) string {
	valid := strings.Split(validOperations, ";")

	var ops []string
	for len(ops) < size {
		ops = append(ops, valid[rand.Intn(len(valid))])
	}

	return strings.Join(ops, sep)
}

// GetRandomProgram returns a program of roughly size operations spread over
// one class, with a statement calling every function.
func GetRandomProgram(size int) string {
	const perFunction = 20

	var b strings.Builder
	var stmts []string

	b.WriteString("1:\n")
	for n := 0; n*perFunction < size || n == 0; n++ {
		name := functionName(n)
		count := perFunction
		if rest := size - n*perFunction; rest < count {
			count = rest
		}

		fmt.Fprintf(&b, "  %s: %s;\n", name, GetRandomOperations(count))
		stmts = append(stmts, "1>"+name)
	}
	b.WriteString(";\n")
	b.WriteString(strings.Join(stmts, "\n"))

	return b.String()
}

// functionName maps n to A, B, ..., Z, BA, BB, ...
func functionName(n int) string {
	if n == 0 {
		return "A"
	}

	var name []byte
	for ; n > 0; n /= 26 {
		name = append([]byte{byte('A' + n%26)}, name...)
	}

	return string(name)
}
