//go:build arm64 && !purego

package kernel

import "github.com/cwbudde/algo-vecmath/cpu"

func init() {
	Global.Register(Backend{
		Name:            "vecmath",
		SIMDLevel:       cpu.SIMDNEON,
		Priority:        10,
		Mul:             mulVecmath,
		SquaredDistance: squaredDistanceVecmath,
		WindowMean:      windowMean,
	})
}
