package match

import (
	"math"

	"github.com/cwbudde/algo-asad/spectrum/table"
	"github.com/cwbudde/algo-asad/stats/summary"
)

// Result is the outcome of one Compute.
type Result struct {
	Name string

	// Stat[r][a] is the statistic of reddening row r against age row a.
	Stat [][]float64
	// ChosenModel[r] is the age index with the lowest statistic in row r.
	ChosenModel []int

	MinObservation int
	MinModel       int
	MinStat        float64
	MinAge         float64
	MinReddening   float64
}

// Record renders the best match as one fixed-width line.
func (r *Result) Record() string {
	return table.FormatChosen(r.Name, r.MinAge, r.MinReddening)
}

// Candidate is one cell of an error region.
type Candidate struct {
	Reddening float64
	Age       float64
	Stat      float64
	Row       int
	Col       int
}

// Residual is the difference between the best model row and the best
// observation row.
type Residual struct {
	Wavelength []float64
	Diff       []float64
	Summary    summary.Stats
}

// less orders statistics with NaN after every number, so a NaN cell never
// wins over a finite one.
func less(a, b float64) bool {
	if math.IsNaN(b) {
		return !math.IsNaN(a)
	}
	return a < b
}

// argmin returns the lowest index holding the minimum of row.
func argmin(row []float64) int {
	best := 0
	for i := 1; i < len(row); i++ {
		if less(row[i], row[best]) {
			best = i
		}
	}
	return best
}

// reduce fills the chosen model per row and the global minimum.
func reduce(stat [][]float64) (chosen []int, minRow, minCol int) {
	chosen = make([]int, len(stat))
	for r, row := range stat {
		chosen[r] = argmin(row)
	}

	for r := 1; r < len(stat); r++ {
		if less(stat[r][chosen[r]], stat[minRow][chosen[minRow]]) {
			minRow = r
		}
	}
	return chosen, minRow, chosen[minRow]
}
