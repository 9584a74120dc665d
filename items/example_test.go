package items_test

import (
	"fmt"

	"github.com/katalvlaran/itemnet/items"
)

// ExampleSelection_Resolve follows one item through two column drops.
func ExampleSelection_Resolve() {
	arena, _, _ := items.Prepare([]string{"calm", "tense", "calm", "worried", "relaxed"}, nil)
	// i1..i4 = calm, tense, worried, relaxed
	sel := items.All(arena)
	// drop "calm", then "worried"
	sel, _ = sel.Restrict([]int{1, 2, 3})
	sel, _ = sel.Restrict([]int{0, 2})

	for _, l := range sel.Labels() {
		ai, p, _ := sel.Resolve(l)
		fmt.Printf("%s -> arena %d %q\n", l, ai, p)
	}
	// Output:
	// i1 -> arena 1 "tense"
	// i2 -> arena 3 "relaxed"
}
