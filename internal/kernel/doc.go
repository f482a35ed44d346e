// Package kernel provides the vector kernels used by the resampler, the
// extinction corrector and the statistical tests, in interchangeable
// backends.
//
// The "generic" backend is pure Go and is the reference arithmetic. The
// "vecmath" backend routes element-wise products through algo-vecmath's SIMD
// kernels (SSE2/AVX2 on amd64, NEON on arm64). Both backends accumulate sums
// in the same order, so their results are bit-identical.
//
// Backends register themselves in [Global]. [Select] picks one by name, or
// by CPU features when the name is empty or "auto".
package kernel
