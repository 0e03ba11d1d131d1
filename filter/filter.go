package filter

import (
	"strings"

	"github.com/s0up4200/plexroulette/roulette"
)

// defaultCompiler caches compiled filters across calls
var defaultCompiler = NewExprCompiler(WithCache(100))

// CompileFilter compiles an expression with the shared caching compiler
func CompileFilter(expression string) (CompiledFilter, error) {
	return defaultCompiler.Compile(expression)
}

// CreateFilter returns a match function for the expression.
// An empty expression matches every item.
func CreateFilter(expression string) (func(roulette.Item) bool, error) {
	if strings.TrimSpace(expression) == "" {
		return func(roulette.Item) bool { return true }, nil
	}

	compiled, err := CompileFilter(expression)
	if err != nil {
		return nil, err
	}
	return compiled.Evaluate, nil
}

// All returns a match function that requires every non-nil function to match
func All(funcs ...func(roulette.Item) bool) func(roulette.Item) bool {
	var active []func(roulette.Item) bool
	for _, f := range funcs {
		if f != nil {
			active = append(active, f)
		}
	}

	return func(item roulette.Item) bool {
		for _, f := range active {
			if !f(item) {
				return false
			}
		}
		return true
	}
}
