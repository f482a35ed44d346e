package fit

import (
	"math"
	"sync"

	algofft "github.com/MeKo-Christian/algo-fft"
)

// CrossCorrelation returns 1 minus the peak of the normalized
// cross-correlation of x and y over all lags. Identical non-zero rows score
// 0, and the result lies in [0, 2]. A row with zero energy scores 1.
//
// The correlation is computed with an FFT plan; if no plan can be built the
// direct O(n²) sum is used.
func CrossCorrelation(x, y []float64) float64 {
	checkLengths("CrossCorrelation", x, y)

	norm := l2Norm(x) * l2Norm(y)
	if norm == 0 || len(x) == 0 {
		return 1
	}

	corr, err := correlateFFT(x, y)
	if err != nil {
		corr = correlateDirect(x, y)
	}

	peak := math.Inf(-1)
	for _, v := range corr {
		peak = math.Max(peak, v)
	}

	return 1 - clamp(peak/norm, -1, 1)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}

func l2Norm(x []float64) float64 {
	var sum float64
	for _, v := range x {
		sum += v * v
	}
	return math.Sqrt(sum)
}

// workspace holds one FFT plan with its buffers. A workspace is used by one
// goroutine at a time.
type workspace struct {
	plan *algofft.Plan[complex128]
	a, b []complex128
	fa   []complex128
	fb   []complex128
}

var (
	poolMu sync.Mutex
	pools  = map[int]*sync.Pool{}
)

func workspacePool(size int) *sync.Pool {
	poolMu.Lock()
	defer poolMu.Unlock()

	p, ok := pools[size]
	if !ok {
		p = &sync.Pool{}
		pools[size] = p
	}
	return p
}

func getWorkspace(size int) (*workspace, error) {
	if ws, ok := workspacePool(size).Get().(*workspace); ok {
		return ws, nil
	}

	plan, err := algofft.NewPlan64(size)
	if err != nil {
		return nil, err
	}

	return &workspace{
		plan: plan,
		a:    make([]complex128, size),
		b:    make([]complex128, size),
		fa:   make([]complex128, size),
		fb:   make([]complex128, size),
	}, nil
}

func putWorkspace(size int, ws *workspace) {
	workspacePool(size).Put(ws)
}

// correlateFFT returns the circular correlation of the zero-padded rows,
// which equals the linear correlation at every lag.
func correlateFFT(x, y []float64) ([]float64, error) {
	n := len(x)
	size := nextPowerOf2(2*n - 1)

	ws, err := getWorkspace(size)
	if err != nil {
		return nil, err
	}
	defer putWorkspace(size, ws)

	for i := range ws.a {
		ws.a[i], ws.b[i] = 0, 0
	}
	for i := 0; i < n; i++ {
		ws.a[i] = complex(x[i], 0)
		ws.b[i] = complex(y[i], 0)
	}

	if err := ws.plan.Forward(ws.fa, ws.a); err != nil {
		return nil, err
	}
	if err := ws.plan.Forward(ws.fb, ws.b); err != nil {
		return nil, err
	}

	for i := range ws.fa {
		fb := ws.fb[i]
		ws.fa[i] *= complex(real(fb), -imag(fb))
	}

	if err := ws.plan.Inverse(ws.a, ws.fa); err != nil {
		return nil, err
	}

	out := make([]float64, size)
	for i, v := range ws.a {
		out[i] = real(v)
	}
	return out, nil
}

func correlateDirect(x, y []float64) []float64 {
	n := len(x)
	out := make([]float64, 2*n-1)
	for lag := -(n - 1); lag < n; lag++ {
		var sum float64
		for i := 0; i < n; i++ {
			if j := i - lag; j >= 0 && j < n {
				sum += x[i] * y[j]
			}
		}
		out[lag+n-1] = sum
	}
	return out
}

func nextPowerOf2(n int) int {
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}
