package kernel

import (
	"sync"

	"github.com/cwbudde/algo-vecmath"
)

var scratchPool = sync.Pool{
	New: func() any {
		buf := make([]float64, 0, 1024)
		return &buf
	},
}

func getScratch(n int) (diff, sq []float64, buf *[]float64) {
	buf = scratchPool.Get().(*[]float64)
	if cap(*buf) < 2*n {
		*buf = make([]float64, 2*n)
	}
	*buf = (*buf)[:2*n]
	return (*buf)[:n], (*buf)[n:], buf
}

func putScratch(buf *[]float64) {
	scratchPool.Put(buf)
}

func mulVecmath(dst, a, b []float64) {
	vecmath.MulBlock(dst, a, b)
}

func squaredDistanceVecmath(x, y []float64) float64 {
	if len(x) != len(y) {
		panic("kernel: SquaredDistance length mismatch")
	}

	diff, sq, buf := getScratch(len(x))
	defer putScratch(buf)

	for i := range x {
		diff[i] = x[i] - y[i]
	}
	vecmath.MulBlock(sq, diff, diff)

	var sum float64
	for _, v := range sq {
		sum += v
	}
	return sum
}
