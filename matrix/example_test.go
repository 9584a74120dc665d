package matrix_test

import (
	"fmt"

	"github.com/katalvlaran/itemnet/matrix"
)

// ExampleObservations shows the provider-output → observations × items layout.
func ExampleObservations() {
	vecs := [][]float32{
		{0.1, 0.2, 0.3, 0.4}, // item 0
		{0.4, 0.3, 0.2, 0.1}, // item 1
	}
	m, err := matrix.Observations(vecs)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	r, c := m.Dims()
	corr, _ := matrix.Correlation(m)
	fmt.Printf("%d×%d, r01=%.1f\n", r, c, corr.At(0, 1))
	// Output:
	// 4×2, r01=-1.0
}
