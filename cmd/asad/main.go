// Command asad estimates the age and reddening of star clusters by matching
// observed spectra against grids of synthetic model spectra.
//
// Usage:
//
//	asad match  --model MODEL [flags] OBSERVATION...
//	asad region --model MODEL [flags] OBSERVATION...
//	asad stats
//	asad backends
//
// Settings may also come from a TOML file (--config) or ASAD_* environment
// variables, e.g. ASAD_INTERP=2 or ASAD_REDDENING_END=1.
//
// Examples:
//
//	asad match --model miles.txt ngc1866.txt
//	asad match --model miles.txt --interp 3 --wavelength-start 4000 --wavelength-end 6000 obs/*.txt
//	asad match --model bc03.ised --model-format galaxev --write-prepared out ngc1866.txt
//	asad region --model miles.txt --delta 0.5 ngc1866.txt
//	asad backends
package main

import (
	"fmt"
	"os"
)

func main() {
	if err := newRootCmd(os.Stdout, os.Stderr).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
