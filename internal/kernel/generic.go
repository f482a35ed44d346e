package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Global.Register(Backend{
		Name:            "generic",
		SIMDLevel:       cpu.SIMDNone,
		Priority:        0,
		Mul:             mulGeneric,
		SquaredDistance: squaredDistanceGeneric,
		WindowMean:      windowMean,
	})
}

func mulGeneric(dst, a, b []float64) {
	if len(a) != len(dst) || len(b) != len(dst) {
		panic("kernel: Mul length mismatch")
	}
	for i := range dst {
		dst[i] = a[i] * b[i]
	}
}

func squaredDistanceGeneric(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("kernel: SquaredDistance length mismatch")
	}

	var sum float64
	for i := range x {
		d := x[i] - y[i]
		// explicit conversion keeps the product rounded before the add (no FMA)
		sum += float64(d * d)
	}
	return sum
}

func windowMean(src []float64, offset, width int) float64 {
	var total float64
	for _, v := range src[offset : offset+width] {
		total += v
	}
	return total / float64(width)
}
