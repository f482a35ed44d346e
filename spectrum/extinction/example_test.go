package extinction_test

import (
	"fmt"

	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-asad/spectrum/extinction"
)

func ExampleAxis() {
	r, _ := extinction.Axis(0, 0.5, 0.1)
	fmt.Println(len(r))

	// Output:
	// 6
}

func ExampleCorrector_Expand() {
	s, _ := spectrum.NewSeries("obs", []float64{4000, 5000, 6000}, [][]float64{{1, 1, 1}})
	o := spectrum.NewObservation(s, spectrum.LinearAxis(0, 0.01))

	c, _ := extinction.New()
	out, _ := c.Expand(o, 0, 0.02, 0.01)
	fmt.Println(out.NumRows(), out.Flux[0])

	// Output:
	// 3 [1 1 1]
}
