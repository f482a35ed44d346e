package summary_test

import (
	"fmt"

	"github.com/cwbudde/algo-asad/stats/summary"
)

func ExampleCalculate() {
	s := summary.Calculate([]float64{1, -3, 2, 0})
	fmt.Printf("mean=%.1f maxabs=%.1f range=%.1f\n", s.Mean, s.MaxAbs, s.Range)

	// Output:
	// mean=0.0 maxabs=3.0 range=5.0
}

func ExampleAccumulator() {
	var a summary.Accumulator
	a.Update([]float64{1, -1})
	a.Update([]float64{1, -1})
	s := a.Result()
	fmt.Printf("len=%d rms=%.1f\n", s.Length, s.RMS)

	// Output:
	// len=4 rms=1.0
}
