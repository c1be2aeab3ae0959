// Package happy parses and runs happy programs.
//
// A program is a set of numbered classes holding upper-case named functions,
// and a list of top-level `N>NAME` calls run in order:
//
//	1: HI: x="hello", x, ;;
//	1>HI
//
// Operations act on the variables of the innermost running function only.
// Variables are never declared; reading or writing an unknown name creates it
// with the value None. Looping is done with recursive calls.
package happy

import "github.com/npillmayer/schuko/tracing"

func parseTracer() tracing.Trace {
	return tracing.Select("happy.parser")
}

func runTracer() tracing.Trace {
	return tracing.Select("happy.interp")
}
