package spectrum_test

import (
	"fmt"

	"github.com/cwbudde/algo-asad/spectrum"
)

func ExampleSeries_Normalize() {
	s, _ := spectrum.NewSeries("demo", []float64{4000, 4010, 4020}, [][]float64{{2, 4, 8}})
	out := s.Normalize(4010)
	fmt.Println(out.Flux[0])

	// Output:
	// [0.5 1 2]
}

func ExampleSeries_WavelengthIndex() {
	s, _ := spectrum.NewSeries("demo", []float64{4000, 4010, 4020, 4030}, nil)
	is, ie, _ := s.WavelengthIndex(4005, 4020)
	fmt.Println(is, ie)

	// Output:
	// 1 2
}

func ExampleAxis_Materialize() {
	ages := spectrum.LinearAxis(6.6, 0.05)
	fmt.Printf("%.2f\n", ages.Materialize(3))

	// Output:
	// [6.60 6.65 6.70]
}
