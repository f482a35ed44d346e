package resample_test

import (
	"fmt"

	"github.com/cwbudde/algo-asad/spectrum"
	"github.com/cwbudde/algo-asad/spectrum/resample"
)

func ExampleResampler_Series() {
	wl := []float64{0, 1, 2, 3, 4, 5, 6, 7, 8, 9}
	s, _ := spectrum.NewSeries("demo", wl, [][]float64{wl})

	r, _ := resample.New()
	out, _ := r.Series(s, 2, resample.ModeModel)
	fmt.Println(out.Wavelength, out.Step())

	// Output:
	// [1 3 5 7] 2
}
