package table

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/cwbudde/algo-asad/spectrum"
)

// Write emits s as a table: the wavelength followed by one %10.6g column
// per flux row.
func Write(w io.Writer, s *spectrum.Series) error {
	bw := bufio.NewWriter(w)
	for i, wl := range s.Wavelength {
		fmt.Fprint(bw, wl)
		for _, row := range s.Flux {
			fmt.Fprintf(bw, " %10.6g", row[i])
		}
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// WriteModel writes m preceded by a '#' line holding its ages, the layout
// ReadModel reads back into an explicit age axis.
func WriteModel(w io.Writer, m *spectrum.Model) error {
	ages := m.Ages()
	parts := make([]string, len(ages))
	for i, a := range ages {
		parts[i] = strconv.FormatFloat(a, 'g', -1, 64)
	}
	if _, err := fmt.Fprintf(w, "# %s\n", strings.Join(parts, " ")); err != nil {
		return err
	}
	return Write(w, m.Series)
}

// FormatChosen renders one best-match line: the name left-aligned in 40
// columns followed by age and reddening in 10-column fields.
func FormatChosen(name string, age, reddening float64) string {
	return fmt.Sprintf("%-40s%10f%10f\n", name, age, reddening)
}

// WriteChosen writes FormatChosen(name, age, reddening) to w.
func WriteChosen(w io.Writer, name string, age, reddening float64) error {
	_, err := io.WriteString(w, FormatChosen(name, age, reddening))
	return err
}
