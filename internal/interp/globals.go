package interp

import "math"

// seedGlobals binds the constants spec.md §4.5 requires in every fresh
// global scope, under both their plain and diacritic-preserving
// spellings. Built-in functions are seeded separately by
// internal/builtins, which only depends on these Value types, not the
// reverse.
func seedGlobals(env *Environment) {
	null := Value(NewNull())
	truthy := Value(NewInt(1))
	falsy := Value(NewInt(0))
	pi := Value(NewFloat(math.Pi))

	env.Define("shunya", null)
	env.Define("shUnya", null)
	env.Define("satya", truthy)
	env.Define("asatya", falsy)
	env.Define("pi", pi)
}
